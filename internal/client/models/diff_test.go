package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDiff_KeyPresence(t *testing.T) {
	d, err := ParseDiff(json.RawMessage(`{
		"config": {"log": {"level": "warn"}},
		"clients": [],
		"inbounds": null,
		"outbounds": [{"id": 3, "tag": "direct", "type": "direct"}]
	}`))
	require.NoError(t, err)

	assert.True(t, d.HasConfig())
	assert.True(t, d.Clients.Present)
	assert.Empty(t, d.Clients.Value)
	assert.True(t, d.Inbounds.Present, "explicit null must count as present")
	assert.Nil(t, d.Inbounds.Value)
	require.True(t, d.Outbounds.Present)
	require.Len(t, d.Outbounds.Value, 1)
	assert.Equal(t, "direct", d.Outbounds.Value[0].Tag)

	assert.False(t, d.Services.Present)
	assert.False(t, d.Endpoints.Present)
	assert.False(t, d.TLS.Present)
}

func TestParseDiff_ConfigTrigger(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{name: "absent", in: `{"onlines": {"inbound": [], "outbound": [], "user": []}}`, want: false},
		{name: "null", in: `{"config": null}`, want: false},
		{name: "empty object", in: `{"config": {}}`, want: true},
		{name: "populated", in: `{"config": {"dns": {}}}`, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDiff(json.RawMessage(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.HasConfig())
		})
	}
}

func TestParseDiff_ScalarsAndOnlines(t *testing.T) {
	d, err := ParseDiff(json.RawMessage(`{
		"onlines": {"inbound": ["in-1"], "outbound": [], "user": ["alice"]},
		"lastLog": "core restarted",
		"subURI": "https://sub.example.com/",
		"enableTraffic": true
	}`))
	require.NoError(t, err)

	require.NotNil(t, d.Onlines)
	assert.Equal(t, []string{"in-1"}, d.Onlines.Inbound)
	assert.Equal(t, []string{"alice"}, d.Onlines.User)
	assert.Equal(t, "core restarted", d.LastLog)
	assert.Equal(t, "https://sub.example.com/", d.SubURI)
	assert.True(t, d.EnableTraffic)
}

func TestParseDiff_NullAndMalformed(t *testing.T) {
	d, err := ParseDiff(nil)
	require.NoError(t, err)
	assert.False(t, d.HasConfig())

	d, err = ParseDiff(json.RawMessage(`null`))
	require.NoError(t, err)
	assert.Nil(t, d.Onlines)

	_, err = ParseDiff(json.RawMessage(`{"clients": "nope"}`))
	require.Error(t, err)
}
