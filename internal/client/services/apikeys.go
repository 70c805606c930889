package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/suimirror/internal/client/models"
)

// AccessKeyRegistry manages the API keys external callers authenticate with.
type AccessKeyRegistry interface {
	LoadAPIKeys(ctx context.Context) bool
	// CreateAPIKey returns the created key, including its secret, or nil on
	// failure. The secret is only ever returned here.
	CreateAPIKey(ctx context.Context, name string) *models.APIKey
	UpdateAPIKey(ctx context.Context, id uint, name string, enable bool) bool
	DeleteAPIKey(ctx context.Context, id uint) bool
}

type accessKeyRegistry struct {
	Deps
}

func NewAccessKeyRegistry(d Deps) AccessKeyRegistry {
	return &accessKeyRegistry{Deps: d.normalize()}
}

func (r *accessKeyRegistry) LoadAPIKeys(ctx context.Context) bool {
	var keys []models.APIKey
	if !r.load(ctx, "apiKeys", &keys) {
		return false
	}
	r.Mirror.SetAPIKeys(keys)
	return true
}

func (r *accessKeyRegistry) CreateAPIKey(ctx context.Context, name string) *models.APIKey {
	env, err := r.Gateway.Post(ctx, "createApiKey", url.Values{"name": {name}})
	if err != nil {
		r.Logger.Warn(ctx, "api key creation failed", "err", err)
		return nil
	}

	r.notified("actions.new")
	r.LoadAPIKeys(ctx)

	if env.IsNull() {
		return nil
	}
	var key models.APIKey
	if err := env.Decode(&key); err != nil {
		r.Logger.Error(ctx, "malformed api key", "err", err)
		return nil
	}
	return &key
}

func (r *accessKeyRegistry) UpdateAPIKey(ctx context.Context, id uint, name string, enable bool) bool {
	ok := r.post(ctx, "updateApiKey", url.Values{
		"id":     {formatID(id)},
		"name":   {name},
		"enable": {strconv.FormatBool(enable)},
	})
	if !ok {
		return false
	}
	r.notified("actions.save")
	r.LoadAPIKeys(ctx)
	return true
}

func (r *accessKeyRegistry) DeleteAPIKey(ctx context.Context, id uint) bool {
	if !r.post(ctx, "deleteApiKey", url.Values{"id": {formatID(id)}}) {
		return false
	}
	r.notified("actions.del")
	r.LoadAPIKeys(ctx)
	return true
}

func (r *accessKeyRegistry) notified(actionKey string) {
	r.notifySuccess(r.Printer.T(actionKey)+" "+r.Printer.T("apiKey.title"), 0)
}
