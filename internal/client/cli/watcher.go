package cli

import (
	"context"
	"time"
)

// startRefreshWatcher refreshes the mirror every RefreshInterval until the
// session ends. A running watcher is replaced.
func (a *App) startRefreshWatcher(ctx context.Context) {
	a.watchMu.Lock()
	defer a.watchMu.Unlock()
	a.stopWatcherLocked()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	a.stopWatcher, a.watchDone = cancel, done
	go func() {
		defer close(done)
		a.watchRefresh(ctx, a.config.RefreshInterval)
	}()
}

// stopRefreshWatcher returns once the watcher goroutine has exited, so no
// refresh can land in the mirror after it.
func (a *App) stopRefreshWatcher() {
	a.watchMu.Lock()
	defer a.watchMu.Unlock()
	a.stopWatcherLocked()
}

func (a *App) stopWatcherLocked() {
	if a.stopWatcher == nil {
		return
	}
	a.stopWatcher()
	<-a.watchDone
	a.stopWatcher, a.watchDone = nil, nil
}

func (a *App) watchRefresh(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.refreshOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// refreshOnce runs one background cycle: the incremental load, then the
// sub-resources the user asked to keep fresh.
func (a *App) refreshOnce(ctx context.Context) {
	if a.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.RequestTimeout)
		defer cancel()
	}

	a.store.Refresh(ctx)
	for _, item := range a.prefs.ReloadItems(ctx) {
		switch item {
		case "nodes":
			a.store.LoadNodes(ctx)
		case "nodeTokens":
			a.store.LoadNodeTokens(ctx)
		case "apiKeys":
			a.store.LoadAPIKeys(ctx)
		case "webhook":
			a.store.LoadWebhookConfig(ctx)
		}
	}
}
