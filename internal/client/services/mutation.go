package services

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/suimirror/internal/client/models"
)

// MutationService submits create/update/delete requests for panel objects.
type MutationService interface {
	// Submit posts payload for object/action. On success it notifies the user
	// and merges the returned diff into the mirror. Nothing is merged on
	// failure.
	Submit(ctx context.Context, object, action string, payload any, initUsers []uint) bool
}

type mutationService struct {
	Deps
}

func NewMutationService(d Deps) MutationService {
	return &mutationService{Deps: d.normalize()}
}

func (s *mutationService) Submit(ctx context.Context, object, action string, payload any, initUsers []uint) bool {
	log := s.Logger.With("object", object, "action", action)

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		log.Error(ctx, "cannot encode payload", "err", err)
		s.notifyError(err.Error())
		return false
	}

	form := url.Values{}
	form.Set("object", object)
	form.Set("action", action)
	form.Set("data", string(data))
	if len(initUsers) > 0 {
		form.Set("initUsers", joinIDs(initUsers))
	}

	env, err := s.Gateway.Post(ctx, "save", form)
	if err != nil {
		log.Warn(ctx, "save failed", "err", err)
		return false
	}

	s.notifySuccess(s.Printer.T("actions."+action)+" "+s.Printer.T("objects."+ObjectDisplayName(object)), noticeDuration)

	d, err := models.ParseDiff(env.Obj)
	if err != nil {
		// The server accepted the change; the next refresh will pick it up.
		log.Error(ctx, "malformed save response", "err", err)
		return true
	}
	s.Mirror.Apply(d, s.Now())
	return true
}

// ObjectDisplayName turns a plural object class into the singular used for
// display keys. "tls" and "config" are already singular.
func ObjectDisplayName(object string) string {
	switch object {
	case "tls", "config":
		return object
	}
	_, size := utf8.DecodeLastRuneInString(object)
	return object[:len(object)-size]
}

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}
