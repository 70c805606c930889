package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	v, err := parseJSON(`{"id": 12345678901234567890}` + "\n  ")
	require.NoError(t, err)
	assert.Equal(t, json.Number("12345678901234567890"), v.(map[string]any)["id"])

	for _, bad := range []string{`{"a":1} junk`, `{"a":1} {"b":2}`, `{"a":`, ``} {
		_, err := parseJSON(bad)
		assert.Error(t, err, bad)
	}
}

func TestPayloadKeys(t *testing.T) {
	v, err := parseJSON(`{"id": 3, "name": "bob", "tag": "in-1"}`)
	require.NoError(t, err)
	id, name, tag := payloadKeys(v)
	assert.Equal(t, 3, id)
	assert.Equal(t, "bob", name)
	assert.Equal(t, "in-1", tag)

	id, name, tag = payloadKeys([]any{"x"})
	assert.Zero(t, id)
	assert.Empty(t, name)
	assert.Empty(t, tag)

	assert.Equal(t, []string{"a", "b"}, payloadNames([]any{"a", map[string]any{"name": "b"}, 7}))
	assert.Nil(t, payloadNames(map[string]any{}))
}
