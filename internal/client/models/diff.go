package models

import (
	"encoding/json"
	"fmt"
)

// Field is a JSON value together with whether its key was present at all.
// A present null value has Present set and Value left at its zero value.
type Field[T any] struct {
	Present bool
	Value   T
}

// Set returns a present Field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{Present: true, Value: v}
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Present = true
	if isNull(b) {
		var zero T
		f.Value = zero
		return nil
	}
	return json.Unmarshal(b, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// Diff is the payload returned by the load and save endpoints.
type Diff struct {
	Onlines       *Onlines          `json:"onlines,omitempty"`
	LastLog       string            `json:"lastLog,omitempty"`
	Config        Field[ConfigBlob] `json:"config"`
	SubURI        string            `json:"subURI,omitempty"`
	EnableTraffic bool              `json:"enableTraffic,omitempty"`
	Clients       Field[[]Object]   `json:"clients"`
	Inbounds      Field[[]Object]   `json:"inbounds"`
	Outbounds     Field[[]Object]   `json:"outbounds"`
	Services      Field[[]Object]   `json:"services"`
	Endpoints     Field[[]Object]   `json:"endpoints"`
	TLS           Field[[]Object]   `json:"tls"`
}

// ParseDiff decodes an envelope obj. A null or missing obj yields an empty Diff.
func ParseDiff(obj json.RawMessage) (Diff, error) {
	var d Diff
	if isNull(obj) {
		return d, nil
	}
	if err := json.Unmarshal(obj, &d); err != nil {
		return Diff{}, fmt.Errorf("decode diff: %w", err)
	}
	return d, nil
}

// HasConfig reports whether the response carries a non-null config section,
// which is how the server signals that the downstream collections changed.
func (d Diff) HasConfig() bool {
	return d.Config.Present && d.Config.Value != nil
}
