package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/suimirror/internal/client/models"
	"github.com/dmitrijs2005/suimirror/internal/client/services"
)

func (a *App) Nodes(ctx context.Context, args []string) error {
	a.store.LoadNodeMode(ctx)
	a.store.LoadNodes(ctx)
	a.store.LoadNodeOnlines(ctx)

	mode, ro := a.store.Mirror().NodeMode()
	printlnFn(fmt.Sprintf("Mode: %s (read-only: %t)", mode, ro))
	for _, n := range a.store.Mirror().Nodes() {
		printlnFn(fmt.Sprintf("%d\t%s\t%s\t%s\tenable=%t", n.ID, n.Name, n.Address, n.Status, n.Enable))
	}
	return nil
}

func (a *App) Tokens(ctx context.Context, args []string) error {
	a.store.LoadNodeTokens(ctx)
	for _, t := range a.store.Mirror().NodeTokens() {
		printlnFn(fmt.Sprintf("%d\t%s\t%s\texpires=%d\tused=%t", t.ID, t.Name, t.Token, t.ExpiresAt, t.Used))
	}
	return nil
}

func (a *App) GenToken(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	expiresAt, err := parseInt64(args[1])
	if err != nil {
		return err
	}
	tok := a.store.GenerateNodeToken(ctx, args[0], expiresAt)
	if tok == nil {
		return errRejected
	}
	printlnFn("Token:", tok.Token)
	return nil
}

func (a *App) DelToken(ctx context.Context, args []string) error {
	return a.withID(args, func(id uint) bool { return a.store.DeleteNodeToken(ctx, id) })
}

func (a *App) DelNode(ctx context.Context, args []string) error {
	return a.withID(args, func(id uint) bool { return a.store.DeleteNode(ctx, id) })
}

func (a *App) SyncNode(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if out := a.store.SyncNode(ctx, id); out == services.OutcomeFailed {
		return errRejected
	}
	return nil
}

func (a *App) Keys(ctx context.Context, args []string) error {
	a.store.LoadAPIKeys(ctx)
	for _, k := range a.store.Mirror().APIKeys() {
		printlnFn(fmt.Sprintf("%d\t%s\tenable=%t\tlastUsed=%d", k.ID, k.Name, k.Enable, k.LastUsedAt))
	}
	return nil
}

func (a *App) NewKey(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	key := a.store.CreateAPIKey(ctx, strings.Join(args, " "))
	if key == nil {
		return nil
	}
	printlnFn("Key (shown once):", key.Key)
	return nil
}

func (a *App) SetKey(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	enable, err := parseBool(args[2])
	if err != nil {
		return err
	}
	if !a.store.UpdateAPIKey(ctx, id, args[1], enable) {
		return errRejected
	}
	return nil
}

func (a *App) DelKey(ctx context.Context, args []string) error {
	return a.withID(args, func(id uint) bool { return a.store.DeleteAPIKey(ctx, id) })
}

func (a *App) Webhook(ctx context.Context, args []string) error {
	a.store.LoadWebhookConfig(ctx)
	return printJSON(a.store.Mirror().WebhookConfig())
}

func (a *App) SetWebhook(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	enable, err := parseBool(args[2])
	if err != nil {
		return err
	}
	cfg := models.WebhookConfig{CallbackURL: args[0], CallbackSecret: args[1], Enable: enable}
	if !a.store.SaveWebhookConfig(ctx, cfg) {
		return errRejected
	}
	return nil
}

func (a *App) withID(args []string, fn func(id uint) bool) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	if !fn(id) {
		return errRejected
	}
	return nil
}
