// Package mirror holds the in-memory copy of the server-owned panel state for
// one session.
//
// A Mirror is created at session start, populated by the first full load,
// refreshed in place by partial loads and cleared with Reset when the session
// ends. Collections are only ever replaced as a whole; individual entities are
// never patched. All access goes through the methods below, which copy data
// in and out under a lock, so readers never see a half-applied response.
package mirror

import (
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/suimirror/internal/client/models"
)

// Collection names one of the entity collections refreshed by load and save.
type Collection string

const (
	Inbounds   Collection = "inbounds"
	Outbounds  Collection = "outbounds"
	Services   Collection = "services"
	Endpoints  Collection = "endpoints"
	Clients    Collection = "clients"
	TLSConfigs Collection = "tls"
)

// Collections lists every Collection in display order.
var Collections = []Collection{Inbounds, Outbounds, Services, Endpoints, Clients, TLSConfigs}

// DefaultWebhookConfig is what the mirror holds before the webhook config is
// loaded and when the server has none.
var DefaultWebhookConfig = models.WebhookConfig{}

type Mirror struct {
	mu sync.RWMutex

	lastLoad      int64
	subURI        string
	enableTraffic bool
	onlines       models.Onlines
	config        models.ConfigBlob
	collections   map[Collection][]models.Object

	nodeMode    models.NodeMode
	isReadOnly  bool
	nodes       []models.Node
	nodeTokens  []models.NodeToken
	nodeOnlines []models.NodeOnlines
	apiKeys     []models.APIKey
	webhook     models.WebhookConfig
}

func New() *Mirror {
	m := &Mirror{}
	m.reset()
	return m
}

// Reset discards everything and returns the mirror to the never-loaded state.
func (m *Mirror) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reset()
}

func (m *Mirror) reset() {
	m.lastLoad = 0
	m.subURI = ""
	m.enableTraffic = false
	m.onlines = emptyOnlines()
	m.config = models.ConfigBlob{}
	m.collections = make(map[Collection][]models.Object, len(Collections))
	for _, c := range Collections {
		m.collections[c] = []models.Object{}
	}
	m.nodeMode = models.NodeModeStandalone
	m.isReadOnly = false
	m.nodes = []models.Node{}
	m.nodeTokens = []models.NodeToken{}
	m.nodeOnlines = []models.NodeOnlines{}
	m.apiKeys = []models.APIKey{}
	m.webhook = DefaultWebhookConfig
}

// LastLoad is the Unix time of the last successful reconciliation, 0 if none.
func (m *Mirror) LastLoad() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastLoad
}

func (m *Mirror) SubURI() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.subURI
}

func (m *Mirror) EnableTraffic() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enableTraffic
}

func (m *Mirror) Onlines() models.Onlines {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneOnlines(m.onlines)
}

// Config returns a shallow copy of the server configuration document.
func (m *Mirror) Config() models.ConfigBlob {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.config)
}

// Collection returns a copy of c. Unknown collections yield nil.
func (m *Mirror) Collection(c Collection) []models.Object {
	m.mu.RLock()
	defer m.mu.RUnlock()
	objs, ok := m.collections[c]
	if !ok {
		return nil
	}
	return slices.Clone(objs)
}

func (m *Mirror) Clients() []models.Object { return m.Collection(Clients) }

func (m *Mirror) Inbounds() []models.Object { return m.Collection(Inbounds) }

func (m *Mirror) NodeMode() (models.NodeMode, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.nodeMode, m.isReadOnly
}

// SetNodeMode stores the node role. An empty mode means standalone.
func (m *Mirror) SetNodeMode(info models.NodeModeInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodeMode = info.Mode
	if m.nodeMode == "" {
		m.nodeMode = models.NodeModeStandalone
	}
	m.isReadOnly = info.IsReadOnly
}

func (m *Mirror) Nodes() []models.Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.nodes)
}

func (m *Mirror) SetNodes(nodes []models.Node) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodes = orEmpty(slices.Clone(nodes))
}

func (m *Mirror) NodeTokens() []models.NodeToken {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.nodeTokens)
}

func (m *Mirror) SetNodeTokens(tokens []models.NodeToken) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodeTokens = orEmpty(slices.Clone(tokens))
}

func (m *Mirror) NodeOnlines() []models.NodeOnlines {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.nodeOnlines)
}

func (m *Mirror) SetNodeOnlines(onlines []models.NodeOnlines) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nodeOnlines = orEmpty(slices.Clone(onlines))
}

func (m *Mirror) APIKeys() []models.APIKey {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.apiKeys)
}

func (m *Mirror) SetAPIKeys(keys []models.APIKey) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.apiKeys = orEmpty(slices.Clone(keys))
}

func (m *Mirror) WebhookConfig() models.WebhookConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.webhook
}

func (m *Mirror) SetWebhookConfig(cfg models.WebhookConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.webhook = cfg
}

// advance moves the cursor to now. It never moves backwards.
func (m *Mirror) advance(now time.Time) {
	if ts := now.Unix(); ts > m.lastLoad {
		m.lastLoad = ts
	}
}

func emptyOnlines() models.Onlines {
	return models.Onlines{Inbound: []string{}, Outbound: []string{}, User: []string{}}
}

func cloneOnlines(o models.Onlines) models.Onlines {
	return models.Onlines{
		Inbound:  orEmpty(slices.Clone(o.Inbound)),
		Outbound: orEmpty(slices.Clone(o.Outbound)),
		User:     orEmpty(slices.Clone(o.User)),
	}
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
