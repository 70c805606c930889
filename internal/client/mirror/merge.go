package mirror

import (
	"maps"
	"slices"
	"time"

	"github.com/dmitrijs2005/suimirror/internal/client/models"
)

// Apply merges a save or load diff and advances the cursor.
//
// Collections and config are replaced whenever their key is present in the
// response, so an explicit empty list or null clears them. subURI and
// enableTraffic only change when the response value is non-empty / true; an
// empty string or false leaves the previous value in place.
func (m *Mirror) Apply(d models.Diff, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.merge(d)
	m.advance(now)
}

// ApplyLoad applies a load response. The online snapshot is always replaced
// (a missing snapshot counts as empty). Everything else is merged only when
// the response carries a config section; without it the server is saying
// nothing changed since the cursor. The cursor advances either way.
func (m *Mirror) ApplyLoad(d models.Diff, now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d.Onlines != nil {
		m.onlines = cloneOnlines(*d.Onlines)
	} else {
		m.onlines = emptyOnlines()
	}
	if d.HasConfig() {
		m.merge(d)
	}
	m.advance(now)
}

func (m *Mirror) merge(d models.Diff) {
	if d.SubURI != "" {
		m.subURI = d.SubURI
	}
	if d.EnableTraffic {
		m.enableTraffic = true
	}
	if d.HasConfig() {
		m.config = maps.Clone(d.Config.Value)
	}

	replace := func(c Collection, f models.Field[[]models.Object]) {
		if f.Present {
			m.collections[c] = orEmpty(slices.Clone(f.Value))
		}
	}
	replace(Clients, d.Clients)
	replace(Inbounds, d.Inbounds)
	replace(Outbounds, d.Outbounds)
	replace(Services, d.Services)
	replace(Endpoints, d.Endpoints)
	replace(TLSConfigs, d.TLS)
}
