package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/suimirror/internal/client/mirror"
	"github.com/dmitrijs2005/suimirror/internal/client/models"
)

func TestLoadWebhookConfig(t *testing.T) {
	e := newEnv(t)
	e.gw.on("webhookConfig",
		ok(`{"id": 1, "callbackUrl": "https://hook.example/cb", "callbackSecret": "s3cret", "enable": true}`),
		ok(`null`),
		rejected("denied"),
	)
	s := NewWebhookService(e.deps)

	require.True(t, s.LoadWebhookConfig(context.Background()))
	want := models.WebhookConfig{ID: 1, CallbackURL: "https://hook.example/cb", CallbackSecret: "s3cret", Enable: true}
	assert.Equal(t, want, e.m.WebhookConfig())

	require.True(t, s.LoadWebhookConfig(context.Background()))
	assert.Equal(t, mirror.DefaultWebhookConfig, e.m.WebhookConfig())

	e.m.SetWebhookConfig(want)
	assert.False(t, s.LoadWebhookConfig(context.Background()))
	assert.Equal(t, want, e.m.WebhookConfig())
}

func TestSaveWebhookConfig(t *testing.T) {
	e := newEnv(t)
	e.gw.on("webhookConfig", ok(`{"callbackUrl": "https://hook.example/cb", "callbackSecret": "x", "enable": false}`))
	cfg := models.WebhookConfig{CallbackURL: "https://hook.example/cb", CallbackSecret: "x", Enable: false}

	require.True(t, NewWebhookService(e.deps).SaveWebhookConfig(context.Background(), cfg))

	c, _ := e.gw.last("saveWebhookConfig")
	assert.Equal(t, "https://hook.example/cb", c.Values.Get("callbackUrl"))
	assert.Equal(t, "x", c.Values.Get("callbackSecret"))
	assert.Equal(t, "false", c.Values.Get("enable"))
	assert.Equal(t, []string{"POST saveWebhookConfig", "GET webhookConfig"}, e.gw.actions())
	assert.Equal(t, cfg, e.m.WebhookConfig())

	last, _ := e.rec.Last()
	assert.Equal(t, "Save Webhook", last.Message)
}

func TestSaveWebhookConfig_Failure(t *testing.T) {
	e := newEnv(t)
	e.gw.on("saveWebhookConfig", unavailable())

	assert.False(t, NewWebhookService(e.deps).SaveWebhookConfig(context.Background(), models.WebhookConfig{Enable: true}))
	assert.Equal(t, []string{"POST saveWebhookConfig"}, e.gw.actions())
	assert.Empty(t, e.rec.Notices())
}
