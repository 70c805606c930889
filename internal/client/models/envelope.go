package models

import (
	"bytes"
	"encoding/json"
)

// Envelope is the uniform API response: {"success": bool, "msg": string, "obj": any}.
type Envelope struct {
	Success bool            `json:"success"`
	Msg     string          `json:"msg"`
	Obj     json.RawMessage `json:"obj"`
}

// IsNull reports whether obj is missing or the JSON null literal.
func (e Envelope) IsNull() bool {
	return isNull(e.Obj)
}

// Decode unmarshals obj into v. A null or missing obj leaves v untouched.
func (e Envelope) Decode(v any) error {
	if e.IsNull() {
		return nil
	}
	return json.Unmarshal(e.Obj, v)
}

func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
