package models

import (
	"encoding/json"
)

// Object is an opaque server entity indexed by id. Name is meaningful for
// clients and TLS configs, Tag for inbounds, outbounds, services and
// endpoints; both are empty when the document does not carry them.
type Object struct {
	ID   uint
	Name string
	Tag  string

	raw json.RawMessage
}

// NewObject builds an Object with no extra fields, mostly for callers that
// compose payloads by hand.
func NewObject(id uint, name, tag string) Object {
	return Object{ID: id, Name: name, Tag: tag}
}

type objectKeys struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Tag  string `json:"tag"`
}

func (o *Object) UnmarshalJSON(b []byte) error {
	var keys objectKeys
	if err := json.Unmarshal(b, &keys); err != nil {
		return err
	}
	o.ID, o.Name, o.Tag = keys.ID, keys.Name, keys.Tag
	o.raw = append(json.RawMessage(nil), b...)
	return nil
}

func (o Object) MarshalJSON() ([]byte, error) {
	if o.raw != nil {
		return o.raw, nil
	}
	m := map[string]any{"id": o.ID}
	if o.Name != "" {
		m["name"] = o.Name
	}
	if o.Tag != "" {
		m["tag"] = o.Tag
	}
	return json.Marshal(m)
}

// Raw returns the document as received, or nil for objects built with NewObject.
func (o Object) Raw() json.RawMessage {
	return o.raw
}

// Decode unmarshals the full document into v.
func (o Object) Decode(v any) error {
	b, err := o.MarshalJSON()
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// Onlines lists what is currently active on the server.
type Onlines struct {
	Inbound  []string `json:"inbound"`
	Outbound []string `json:"outbound"`
	User     []string `json:"user"`
}

// ConfigBlob is the server configuration document. The client never
// interprets it.
type ConfigBlob map[string]any
