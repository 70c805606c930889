package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmitrijs2005/suimirror/internal/client/mirror"
	"github.com/dmitrijs2005/suimirror/internal/client/services"
)

var (
	errRejected  = errors.New("rejected by server")
	errDuplicate = errors.New("duplicate data, nothing sent")
)

// Login asks for credentials (the user name may be given as an argument),
// opens a session and loads the initial state.
func (a *App) Login(ctx context.Context, args []string) error {
	userName := ""
	if len(args) > 0 {
		userName = args[0]
	}
	if userName == "" {
		def := a.config.Username
		if last := a.prefs.LastUser(ctx); last != "" {
			def = last
		}
		prompt := "Enter user name"
		if def != "" {
			prompt += fmt.Sprintf(" [%s]", def)
		}
		text, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		userName = text
		if userName == "" {
			userName = def
		}
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if !a.store.Login(ctx, userName, string(password)) {
		return errRejected
	}
	a.loggedIn = true
	a.userName = userName
	a.prefs.RememberUser(ctx, userName)
	printlnFn("Login successful")

	a.startSession(ctx)
	return nil
}

func (a *App) Logout(ctx context.Context, args []string) error {
	a.stopRefreshWatcher()
	a.store.Logout(ctx)
	a.loggedIn = false
	a.userName = ""
	printlnFn("Logged out")
	return nil
}

func (a *App) Refresh(ctx context.Context, args []string) error {
	if !a.store.Refresh(ctx) {
		return errRejected
	}
	printlnFn(fmt.Sprintf("Up to date (cursor %d)", a.store.Mirror().LastLoad()))
	return nil
}

// Show prints one part of the mirror as JSON.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	m := a.store.Mirror()

	switch name := args[0]; name {
	case "config":
		return printJSON(m.Config())
	case "onlines":
		return printJSON(m.Onlines())
	case "settings":
		return printJSON(map[string]any{
			"subURI":        m.SubURI(),
			"enableTraffic": m.EnableTraffic(),
			"lastLoad":      m.LastLoad(),
		})
	default:
		objs := m.Collection(mirror.Collection(name))
		if objs == nil {
			return errUsage
		}
		return printJSON(objs)
	}
}

// Save submits a change: save <object> <action> [initUsers] [json].
// The JSON document is the rest of the line and may contain spaces. Without
// it the document is read from the following lines.
func (a *App) Save(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	object, action, rest := args[0], args[1], args[2:]

	var initUsers []uint
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "{") && !strings.HasPrefix(rest[0], "[") {
		ids, err := parseIDList(rest[0])
		if err != nil {
			return err
		}
		initUsers = ids
		rest = rest[1:]
	}

	doc := strings.Join(rest, " ")
	if doc == "" {
		text, err := GetMultiline(a.reader, "Enter JSON payload", a.out)
		if err != nil {
			return err
		}
		doc = text
	}

	payload, err := parseJSON(doc)
	if err != nil {
		return err
	}
	if a.isDuplicate(object, action, payload) {
		return errDuplicate
	}
	if !a.store.Submit(ctx, object, action, payload, initUsers) {
		return errRejected
	}
	return nil
}

// isDuplicate checks a save payload against the mirror before it is sent.
// Deletes and object classes without a uniqueness rule always pass.
func (a *App) isDuplicate(object, action string, payload any) bool {
	if action == "del" {
		return false
	}
	switch object {
	case "clients":
		if action == "addbulk" {
			names := payloadNames(payload)
			return len(names) > 0 && a.store.CheckBulkClientNames(names)
		}
		id, name, _ := payloadKeys(payload)
		return name != "" && a.store.CheckClientName(id, name)
	case "inbounds", "outbounds", "services", "endpoints":
		id, _, tag := payloadKeys(payload)
		return tag != "" && a.store.CheckTag(services.ObjectDisplayName(object), id, tag)
	}
	return false
}

// payloadKeys reads id, name and tag from a decoded JSON object.
func payloadKeys(payload any) (id int, name, tag string) {
	m, ok := payload.(map[string]any)
	if !ok {
		return 0, "", ""
	}
	switch v := m["id"].(type) {
	case json.Number:
		if n, err := v.Int64(); err == nil {
			id = int(n)
		}
	case float64:
		id = int(v)
	}
	name, _ = m["name"].(string)
	tag, _ = m["tag"].(string)
	return id, name, tag
}

// payloadNames collects client names from a bulk payload: either a list of
// names or a list of client objects.
func payloadNames(payload any) []string {
	items, ok := payload.([]any)
	if !ok {
		return nil
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			names = append(names, v)
		case map[string]any:
			if n, ok := v["name"].(string); ok {
				names = append(names, n)
			}
		}
	}
	return names
}

func (a *App) GetInbounds(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return errUsage
	}
	var ids []uint
	if len(args) == 1 {
		var err error
		if ids, err = parseIDList(args[0]); err != nil {
			return err
		}
	}
	return printJSON(a.store.LoadInbounds(ctx, ids))
}

func (a *App) GetClient(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parseInt(args[0])
	if err != nil {
		return err
	}
	c := a.store.LoadClient(ctx, id)
	if c.ID == 0 {
		printlnFn("No such client")
		return nil
	}
	return printJSON(c)
}

func (a *App) CheckName(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	id, err := parseInt(args[0])
	if err != nil {
		return err
	}
	printVerdict(a.store.CheckClientName(id, args[1]))
	return nil
}

func (a *App) CheckNames(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	printVerdict(a.store.CheckBulkClientNames(splitList(args[0])))
	return nil
}

func (a *App) CheckTag(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	id, err := parseInt(args[1])
	if err != nil {
		return err
	}
	printVerdict(a.store.CheckTag(args[0], id, args[2]))
	return nil
}

func (a *App) ReloadItems(ctx context.Context, args []string) error {
	switch len(args) {
	case 0:
		printlnFn("Reload items:", strings.Join(a.prefs.ReloadItems(ctx), ","))
		return nil
	case 1:
		items := splitList(args[0])
		if args[0] == "clear" {
			items = nil
		}
		if !a.prefs.SetReloadItems(ctx, items) {
			return errors.New("cannot store reload items")
		}
		return nil
	default:
		return errUsage
	}
}

// Prefs lists the stored preferences, or drops them all with "clear".
func (a *App) Prefs(ctx context.Context, args []string) error {
	switch {
	case len(args) == 0:
		all := a.prefs.All(ctx)
		keys := make([]string, 0, len(all))
		for k := range all {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			printlnFn(fmt.Sprintf("%s=%s", k, all[k]))
		}
		if last := a.prefs.LastLogin(ctx); !last.IsZero() {
			printlnFn("Last login:", last.UTC().Format(time.RFC3339))
		}
		return nil
	case len(args) == 1 && args[0] == "clear":
		if !a.prefs.Forget(ctx) {
			return errors.New("cannot clear preferences")
		}
		printlnFn("Preferences cleared")
		return nil
	default:
		return errUsage
	}
}

func printVerdict(duplicate bool) {
	if duplicate {
		printlnFn("duplicate")
	} else {
		printlnFn("ok")
	}
}
