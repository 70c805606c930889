package services

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/suimirror/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/suimirror/internal/logging"
)

const (
	reloadItemsKey = "reloadItems"
	lastUserKey    = "username"
	lastLoginKey   = "lastLoginAt"
)

// Preferences are the few client settings that survive restarts.
type Preferences interface {
	// ReloadItems returns the collections the user wants auto-refreshed.
	ReloadItems(ctx context.Context) []string
	SetReloadItems(ctx context.Context, items []string) bool
	// LastUser returns the user name of the last successful login.
	LastUser(ctx context.Context) string
	// RememberUser stores the user name together with the login time.
	RememberUser(ctx context.Context, username string) bool
	// LastLogin is the zero time when nobody has logged in yet.
	LastLogin(ctx context.Context) time.Time
	// All returns every stored preference as text, keyed by name.
	All(ctx context.Context) map[string]string
	// Forget drops all stored preferences.
	Forget(ctx context.Context) bool
}

type preferences struct {
	repo metadata.Repository
	log  logging.Logger
	now  func() time.Time
}

func NewPreferences(repo metadata.Repository, log logging.Logger) Preferences {
	if log == nil {
		log = logging.Nop()
	}
	return &preferences{repo: repo, log: log, now: time.Now}
}

func (p *preferences) ReloadItems(ctx context.Context) []string {
	raw, err := p.repo.Get(ctx, reloadItemsKey)
	if err != nil {
		p.log.Warn(ctx, "cannot read reload items", "err", err)
		return []string{}
	}
	if len(raw) == 0 {
		return []string{}
	}
	return strings.Split(string(raw), ",")
}

// SetReloadItems replaces the list. An empty list removes the key.
func (p *preferences) SetReloadItems(ctx context.Context, items []string) bool {
	var err error
	if len(items) == 0 {
		err = p.repo.Delete(ctx, reloadItemsKey)
	} else {
		err = p.repo.Set(ctx, reloadItemsKey, []byte(strings.Join(items, ",")))
	}
	if err != nil {
		p.log.Warn(ctx, "cannot store reload items", "err", err)
		return false
	}
	return true
}

func (p *preferences) LastUser(ctx context.Context) string {
	raw, err := p.repo.Get(ctx, lastUserKey)
	if err != nil {
		p.log.Warn(ctx, "cannot read last user", "err", err)
		return ""
	}
	return string(raw)
}

func (p *preferences) RememberUser(ctx context.Context, username string) bool {
	err := p.repo.SetMany(ctx, map[string][]byte{
		lastUserKey:  []byte(username),
		lastLoginKey: []byte(strconv.FormatInt(p.now().Unix(), 10)),
	})
	if err != nil {
		p.log.Warn(ctx, "cannot store last user", "err", err)
		return false
	}
	return true
}

func (p *preferences) LastLogin(ctx context.Context) time.Time {
	raw, err := p.repo.Get(ctx, lastLoginKey)
	if err != nil {
		p.log.Warn(ctx, "cannot read last login", "err", err)
		return time.Time{}
	}
	secs, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil || secs <= 0 {
		return time.Time{}
	}
	return time.Unix(secs, 0)
}

func (p *preferences) All(ctx context.Context) map[string]string {
	values, err := p.repo.List(ctx)
	if err != nil {
		p.log.Warn(ctx, "cannot list preferences", "err", err)
		return map[string]string{}
	}
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = string(v)
	}
	return out
}

func (p *preferences) Forget(ctx context.Context) bool {
	if err := p.repo.Clear(ctx); err != nil {
		p.log.Warn(ctx, "cannot clear preferences", "err", err)
		return false
	}
	return true
}
