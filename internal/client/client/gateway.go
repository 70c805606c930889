package client

import (
	"context"
	"net/url"

	"github.com/dmitrijs2005/suimirror/internal/client/models"
)

// Gateway executes calls against the panel API. action is the endpoint name
// under api/ ("load", "save", "nodes", ...).
//
// A non-nil error always means the call failed; when the server answered with
// success=false the error matches ErrRejected and the envelope is returned too.
type Gateway interface {
	Get(ctx context.Context, action string, params url.Values) (models.Envelope, error)
	Post(ctx context.Context, action string, form url.Values) (models.Envelope, error)
}
