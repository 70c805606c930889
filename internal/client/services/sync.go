package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/suimirror/internal/client/models"
	"github.com/dmitrijs2005/suimirror/internal/client/notify"
)

// SyncService keeps the mirror current with the server.
type SyncService interface {
	// Refresh requests everything changed since the last successful
	// reconciliation and merges it into the mirror. It reports whether the
	// server answered successfully.
	Refresh(ctx context.Context) bool
}

type syncService struct {
	Deps
}

func NewSyncService(d Deps) SyncService {
	return &syncService{Deps: d.normalize()}
}

func (s *syncService) Refresh(ctx context.Context) bool {
	params := url.Values{}
	if lu := s.Mirror.LastLoad(); lu > 0 {
		params.Set("lu", strconv.FormatInt(lu, 10))
	}

	env, err := s.Gateway.Get(ctx, "load", params)
	if err != nil {
		s.Logger.Warn(ctx, "load failed", "err", err)
		return false
	}

	d, err := models.ParseDiff(env.Obj)
	if err != nil {
		s.Logger.Error(ctx, "malformed load response", "err", err)
		return false
	}

	if d.LastLog != "" {
		s.Notifier.Notify(notify.Notice{
			Level:    notify.LevelError,
			Title:    s.Printer.T("error.core"),
			Message:  d.LastLog,
			Duration: noticeDuration,
		})
	}

	s.Mirror.ApplyLoad(d, s.Now())
	s.Logger.Debug(ctx, "load applied", "last_load", s.Mirror.LastLoad(), "full", d.HasConfig())
	return true
}
