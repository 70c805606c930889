package services

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/suimirror/internal/client/models"
	"github.com/dmitrijs2005/suimirror/internal/client/notify"
)

// NodeRegistry manages the multi-node part of the panel: the node mode, the
// registered worker nodes and the tokens workers register with.
type NodeRegistry interface {
	LoadNodeMode(ctx context.Context) bool
	LoadNodes(ctx context.Context) bool
	LoadNodeTokens(ctx context.Context) bool
	// LoadNodeOnlines clears the per-node online snapshots. The server has no
	// endpoint for them yet.
	LoadNodeOnlines(ctx context.Context) Outcome
	// GenerateNodeToken returns the new token, or nil on failure.
	GenerateNodeToken(ctx context.Context, name string, expiresAt int64) *models.NodeToken
	DeleteNodeToken(ctx context.Context, id uint) bool
	UpdateNode(ctx context.Context, node models.Node) bool
	DeleteNode(ctx context.Context, id uint) bool
	// SyncNode tells the user node sync is not available yet.
	SyncNode(ctx context.Context, id uint) Outcome
}

type nodeRegistry struct {
	Deps
}

func NewNodeRegistry(d Deps) NodeRegistry {
	return &nodeRegistry{Deps: d.normalize()}
}

func (r *nodeRegistry) LoadNodeMode(ctx context.Context) bool {
	env, err := r.Gateway.Get(ctx, "nodeMode", nil)
	if err != nil {
		r.Logger.Warn(ctx, "node mode load failed", "err", err)
		return false
	}
	var info models.NodeModeInfo
	if err := env.Decode(&info); err != nil {
		r.Logger.Error(ctx, "malformed node mode", "err", err)
		return false
	}
	r.Mirror.SetNodeMode(info)
	return true
}

func (r *nodeRegistry) LoadNodes(ctx context.Context) bool {
	var nodes []models.Node
	if !r.load(ctx, "nodes", &nodes) {
		return false
	}
	r.Mirror.SetNodes(nodes)
	return true
}

func (r *nodeRegistry) LoadNodeTokens(ctx context.Context) bool {
	var tokens []models.NodeToken
	if !r.load(ctx, "nodeTokens", &tokens) {
		return false
	}
	r.Mirror.SetNodeTokens(tokens)
	return true
}

func (r *nodeRegistry) LoadNodeOnlines(ctx context.Context) Outcome {
	r.Mirror.SetNodeOnlines(nil)
	return OutcomeNotImplemented
}

func (r *nodeRegistry) GenerateNodeToken(ctx context.Context, name string, expiresAt int64) *models.NodeToken {
	env, err := r.Gateway.Post(ctx, "generateNodeToken", url.Values{
		"name":      {name},
		"expiresAt": {strconv.FormatInt(expiresAt, 10)},
	})
	if err != nil {
		r.Logger.Warn(ctx, "node token generation failed", "err", err)
		return nil
	}

	r.notifySuccess(r.Printer.T("node.tokenGenerated"), 0)
	r.LoadNodeTokens(ctx)

	if env.IsNull() {
		return nil
	}
	var token models.NodeToken
	if err := env.Decode(&token); err != nil {
		r.Logger.Error(ctx, "malformed node token", "err", err)
		return nil
	}
	return &token
}

func (r *nodeRegistry) DeleteNodeToken(ctx context.Context, id uint) bool {
	if !r.post(ctx, "deleteNodeToken", url.Values{"id": {formatID(id)}}) {
		return false
	}
	r.notifySuccess(r.Printer.T("actions.del")+" "+r.Printer.T("node.token"), 0)
	r.LoadNodeTokens(ctx)
	return true
}

func (r *nodeRegistry) UpdateNode(ctx context.Context, node models.Node) bool {
	if !r.saveNode(ctx, "edit", node) {
		return false
	}
	r.notifySuccess(r.Printer.T("actions.save")+" "+r.Printer.T("objects.node"), 0)
	r.LoadNodes(ctx)
	return true
}

func (r *nodeRegistry) DeleteNode(ctx context.Context, id uint) bool {
	if !r.saveNode(ctx, "del", map[string]uint{"id": id}) {
		return false
	}
	r.notifySuccess(r.Printer.T("actions.del")+" "+r.Printer.T("objects.node"), 0)
	r.LoadNodes(ctx)
	return true
}

// saveNode goes through the generic save endpoint. Node changes do not come
// back as a diff, so the node list is reloaded instead of merged.
func (r *nodeRegistry) saveNode(ctx context.Context, action string, payload any) bool {
	data, err := json.Marshal(payload)
	if err != nil {
		r.Logger.Error(ctx, "cannot encode node", "err", err)
		return false
	}
	return r.post(ctx, "save", url.Values{
		"object": {"nodes"},
		"action": {action},
		"data":   {string(data)},
	})
}

func (r *nodeRegistry) SyncNode(ctx context.Context, id uint) Outcome {
	r.Logger.Info(ctx, "node sync requested", "node_id", id)
	r.Notifier.Notify(notify.Notice{Level: notify.LevelInfo, Message: r.Printer.T("node.syncPending")})
	return OutcomeNotImplemented
}
