package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/suimirror/internal/client/mirror"
	"github.com/dmitrijs2005/suimirror/internal/client/models"
)

// WebhookService reads and writes the panel's single webhook config.
type WebhookService interface {
	// LoadWebhookConfig stores the server config in the mirror. A server
	// without a config yields the default one.
	LoadWebhookConfig(ctx context.Context) bool
	SaveWebhookConfig(ctx context.Context, cfg models.WebhookConfig) bool
}

type webhookService struct {
	Deps
}

func NewWebhookService(d Deps) WebhookService {
	return &webhookService{Deps: d.normalize()}
}

func (s *webhookService) LoadWebhookConfig(ctx context.Context) bool {
	env, err := s.Gateway.Get(ctx, "webhookConfig", nil)
	if err != nil {
		s.Logger.Warn(ctx, "webhook config load failed", "err", err)
		return false
	}

	cfg := mirror.DefaultWebhookConfig
	if err := env.Decode(&cfg); err != nil {
		s.Logger.Error(ctx, "malformed webhook config", "err", err)
		return false
	}
	s.Mirror.SetWebhookConfig(cfg)
	return true
}

func (s *webhookService) SaveWebhookConfig(ctx context.Context, cfg models.WebhookConfig) bool {
	ok := s.post(ctx, "saveWebhookConfig", url.Values{
		"callbackUrl":    {cfg.CallbackURL},
		"callbackSecret": {cfg.CallbackSecret},
		"enable":         {strconv.FormatBool(cfg.Enable)},
	})
	if !ok {
		return false
	}
	s.notifySuccess(s.Printer.T("actions.save")+" "+s.Printer.T("webhook.title"), 0)
	s.LoadWebhookConfig(ctx)
	return true
}
