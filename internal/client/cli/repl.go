package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// errUsage is returned by a command handler when its arguments are wrong.
// The REPL answers with the command's usage line.
var errUsage = errors.New("usage")

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Refresh(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Save(ctx context.Context, args []string) error
	GetInbounds(ctx context.Context, args []string) error
	GetClient(ctx context.Context, args []string) error
	CheckName(ctx context.Context, args []string) error
	CheckNames(ctx context.Context, args []string) error
	CheckTag(ctx context.Context, args []string) error
	Nodes(ctx context.Context, args []string) error
	Tokens(ctx context.Context, args []string) error
	GenToken(ctx context.Context, args []string) error
	DelToken(ctx context.Context, args []string) error
	DelNode(ctx context.Context, args []string) error
	SyncNode(ctx context.Context, args []string) error
	Keys(ctx context.Context, args []string) error
	NewKey(ctx context.Context, args []string) error
	SetKey(ctx context.Context, args []string) error
	DelKey(ctx context.Context, args []string) error
	Webhook(ctx context.Context, args []string) error
	SetWebhook(ctx context.Context, args []string) error
	ReloadItems(ctx context.Context, args []string) error
	Prefs(ctx context.Context, args []string) error
}

type command struct {
	usage string
	run   func(execIface, context.Context, []string) error
}

var commands = map[string]command{
	"logout":      {"logout", execIface.Logout},
	"refresh":     {"refresh", execIface.Refresh},
	"show":        {"show <inbounds|outbounds|services|endpoints|clients|tls|config|onlines|settings>", execIface.Show},
	"save":        {"save <object> <action> [initUsers] [json]", execIface.Save},
	"getinbounds": {"getinbounds [id,id,...]", execIface.GetInbounds},
	"getclient":   {"getclient <id>", execIface.GetClient},
	"checkname":   {"checkname <id> <name>", execIface.CheckName},
	"checknames":  {"checknames <name,name,...>", execIface.CheckNames},
	"checktag":    {"checktag <object> <id> <tag>", execIface.CheckTag},
	"nodes":       {"nodes", execIface.Nodes},
	"tokens":      {"tokens", execIface.Tokens},
	"gentoken":    {"gentoken <name> <expiresAt>", execIface.GenToken},
	"deltoken":    {"deltoken <id>", execIface.DelToken},
	"delnode":     {"delnode <id>", execIface.DelNode},
	"syncnode":    {"syncnode <id>", execIface.SyncNode},
	"keys":        {"keys", execIface.Keys},
	"newkey":      {"newkey <name>", execIface.NewKey},
	"setkey":      {"setkey <id> <name> <true|false>", execIface.SetKey},
	"delkey":      {"delkey <id>", execIface.DelKey},
	"webhook":     {"webhook", execIface.Webhook},
	"setwebhook":  {"setwebhook <url> <secret> <true|false>", execIface.SetWebhook},
	"reloaditems": {"reloaditems [item,item,...|clear]", execIface.ReloadItems},
	"prefs":       {"prefs [clear]", execIface.Prefs},
}

const (
	helpLoggedOut = "Available commands: login, help, exit"
	helpLoggedIn  = "Available commands: refresh, show, save, getinbounds, getclient, checkname, checknames, checktag, " +
		"nodes, tokens, gentoken, deltoken, delnode, syncnode, keys, newkey, setkey, delkey, webhook, setwebhook, " +
		"reloaditems, prefs, logout, help, exit"
)

// runREPL starts a simple read-eval-print loop for the suimirror CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Everything except help, login and exit needs
// a session. The loop exits on EOF or when the user types "exit" or "quit".
//
// Handlers report failures through the notifier themselves; an error returned
// here is either errUsage, answered with the usage line, or printed as is.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("sui %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := splitLine(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpLoggedIn)
			} else {
				printlnFn(helpLoggedOut)
			}
			continue

		case "login":
			if err := a.Login(ctx, args); err != nil {
				printlnFn("Login failed:", err)
			}
			continue

		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		c, ok := commands[cmd]
		if !ok {
			printlnFn("Unknown command:", cmd)
			continue
		}
		if !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}
		if err := c.run(a, ctx, args); err != nil {
			if errors.Is(err, errUsage) {
				printlnFn("Usage:", c.usage)
			} else {
				printlnFn("Error:", err)
			}
		}
	}
}

// splitLine breaks a command line into words. From the first word that opens
// a JSON document ('{' or '[') the rest of the line is one argument, kept
// byte for byte.
func splitLine(line string) []string {
	var parts []string
	rest := strings.TrimSpace(line)
	for rest != "" {
		if rest[0] == '{' || rest[0] == '[' {
			return append(parts, rest)
		}
		i := strings.IndexFunc(rest, unicode.IsSpace)
		if i < 0 {
			return append(parts, rest)
		}
		parts = append(parts, rest[:i])
		rest = strings.TrimLeftFunc(rest[i:], unicode.IsSpace)
	}
	return parts
}
