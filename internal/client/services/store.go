package services

import (
	"context"
	"errors"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/suimirror/internal/client/client"
	"github.com/dmitrijs2005/suimirror/internal/client/i18n"
	"github.com/dmitrijs2005/suimirror/internal/client/mirror"
	"github.com/dmitrijs2005/suimirror/internal/client/notify"
	"github.com/dmitrijs2005/suimirror/internal/logging"
)

var errLoadFailed = errors.New("load failed")

// Store is the session facade: every service bound to one mirror, plus the
// login/logout lifecycle.
type Store struct {
	SyncService
	MutationService
	LookupService
	Validator
	NodeRegistry
	AccessKeyRegistry
	WebhookService

	deps Deps
}

func NewStore(gateway client.Gateway, m *mirror.Mirror, notifier notify.Notifier, printer i18n.Translator, log logging.Logger) *Store {
	return NewStoreWithDeps(Deps{
		Gateway:  gateway,
		Mirror:   m,
		Notifier: notifier,
		Printer:  printer,
		Logger:   log,
	})
}

func NewStoreWithDeps(d Deps) *Store {
	d = d.normalize()
	return &Store{
		SyncService:       NewSyncService(d),
		MutationService:   NewMutationService(d),
		LookupService:     NewLookupService(d),
		Validator:         NewValidator(d),
		NodeRegistry:      NewNodeRegistry(d),
		AccessKeyRegistry: NewAccessKeyRegistry(d),
		WebhookService:    NewWebhookService(d),
		deps:              d,
	}
}

func (s *Store) Mirror() *mirror.Mirror {
	return s.deps.Mirror
}

// Login opens a server session. The mirror is reset so nothing from a
// previous session leaks into the new one.
func (s *Store) Login(ctx context.Context, username, password string) bool {
	if _, err := s.deps.Gateway.Post(ctx, "login", url.Values{
		"user": {username},
		"pass": {password},
	}); err != nil {
		s.deps.Logger.Warn(ctx, "login failed", "user", username, "err", err)
		return false
	}
	s.deps.Mirror.Reset()
	s.deps.Logger.Info(ctx, "logged in", "user", username)
	return true
}

// Logout ends the server session and clears the mirror. The mirror is
// cleared even when the server call fails.
func (s *Store) Logout(ctx context.Context) bool {
	_, err := s.deps.Gateway.Get(ctx, "logout", nil)
	s.deps.Mirror.Reset()
	if err != nil {
		s.deps.Logger.Warn(ctx, "logout failed", "err", err)
		return false
	}
	return true
}

// Bootstrap performs the initial full load followed by the sub-resource
// loads, which run concurrently. It reports whether everything loaded.
func (s *Store) Bootstrap(ctx context.Context) bool {
	ok := s.Refresh(ctx)

	loads := []func(context.Context) bool{
		s.LoadNodeMode,
		s.LoadNodes,
		s.LoadNodeTokens,
		s.LoadAPIKeys,
		s.LoadWebhookConfig,
	}

	var g errgroup.Group
	for _, load := range loads {
		g.Go(func() error {
			if !load(ctx) {
				return errLoadFailed
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return false
	}
	return ok
}
