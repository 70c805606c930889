package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/suimirror/internal/client/models"
)

// LookupService fetches full entities on demand, e.g. to open an editor.
// Results are returned to the caller and never stored in the mirror.
type LookupService interface {
	// LoadInbounds returns the inbounds with the given ids, or all of them
	// when ids is empty. Empty on failure.
	LoadInbounds(ctx context.Context, ids []uint) []models.Object
	// LoadClient returns the client with the given id, or the zero Object
	// when it does not exist or the call fails.
	LoadClient(ctx context.Context, id int) models.Object
}

type lookupService struct {
	Deps
}

func NewLookupService(d Deps) LookupService {
	return &lookupService{Deps: d.normalize()}
}

func (s *lookupService) LoadInbounds(ctx context.Context, ids []uint) []models.Object {
	params := url.Values{}
	if len(ids) > 0 {
		params.Set("id", joinIDs(ids))
	}

	env, err := s.Gateway.Get(ctx, "inbounds", params)
	if err != nil {
		s.Logger.Warn(ctx, "inbounds lookup failed", "err", err)
		return []models.Object{}
	}

	var body struct {
		Inbounds []models.Object `json:"inbounds"`
	}
	if err := env.Decode(&body); err != nil {
		s.Logger.Error(ctx, "malformed inbounds response", "err", err)
		return []models.Object{}
	}
	if body.Inbounds == nil {
		return []models.Object{}
	}
	return body.Inbounds
}

func (s *lookupService) LoadClient(ctx context.Context, id int) models.Object {
	params := url.Values{}
	if id > 0 {
		params.Set("id", strconv.Itoa(id))
	}

	env, err := s.Gateway.Get(ctx, "clients", params)
	if err != nil {
		s.Logger.Warn(ctx, "client lookup failed", "id", id, "err", err)
		return models.Object{}
	}

	var body struct {
		Clients []models.Object `json:"clients"`
	}
	if err := env.Decode(&body); err != nil {
		s.Logger.Error(ctx, "malformed clients response", "err", err)
		return models.Object{}
	}
	if len(body.Clients) == 0 {
		return models.Object{}
	}
	return body.Clients[0]
}
