// Package services implements the client-side operations of the panel
// store: incremental sync, mutations, uniqueness checks and the node, API key
// and webhook managers. Every service shares one Mirror; none of them return
// transport errors to the caller. Failures are logged, the gateway has
// already notified the user, and the caller gets a boolean, nil or Outcome.
package services

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/suimirror/internal/client/client"
	"github.com/dmitrijs2005/suimirror/internal/client/i18n"
	"github.com/dmitrijs2005/suimirror/internal/client/mirror"
	"github.com/dmitrijs2005/suimirror/internal/client/notify"
	"github.com/dmitrijs2005/suimirror/internal/logging"
)

// noticeDuration is the display hint for success and core-error notices.
const noticeDuration = 5 * time.Second

// Deps bundles what every service needs. Zero-valued optional fields are
// filled with no-op implementations by normalize.
type Deps struct {
	Gateway  client.Gateway
	Mirror   *mirror.Mirror
	Notifier notify.Notifier
	Printer  i18n.Translator
	Logger   logging.Logger
	// Now is the clock used for the sync cursor. Defaults to time.Now.
	Now func() time.Time
}

func (d Deps) normalize() Deps {
	if d.Mirror == nil {
		d.Mirror = mirror.New()
	}
	if d.Notifier == nil {
		d.Notifier = notify.Discard{}
	}
	if d.Printer == nil {
		d.Printer = i18n.New("en")
	}
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

func (d Deps) notifySuccess(message string, dur time.Duration) {
	d.Notifier.Notify(notify.Notice{
		Level:    notify.LevelSuccess,
		Title:    d.Printer.T("success"),
		Message:  message,
		Duration: dur,
	})
}

func (d Deps) notifyError(message string) {
	d.Notifier.Notify(notify.Notice{Level: notify.LevelError, Message: message})
}

// load fetches a list endpoint into dst. A null obj leaves dst nil, which the
// mirror setters store as an empty list.
func (d Deps) load(ctx context.Context, action string, dst any) bool {
	env, err := d.Gateway.Get(ctx, action, nil)
	if err != nil {
		d.Logger.Warn(ctx, "load failed", "action", action, "err", err)
		return false
	}
	if err := env.Decode(dst); err != nil {
		d.Logger.Error(ctx, "malformed response", "action", action, "err", err)
		return false
	}
	return true
}

func (d Deps) post(ctx context.Context, action string, form url.Values) bool {
	if _, err := d.Gateway.Post(ctx, action, form); err != nil {
		d.Logger.Warn(ctx, "request failed", "action", action, "err", err)
		return false
	}
	return true
}

func formatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
