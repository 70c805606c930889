package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadInbounds(t *testing.T) {
	e := newEnv(t)
	e.gw.on("inbounds", ok(`{"inbounds": [{"id": 1, "tag": "in-1", "listen_port": 443}, {"id": 2, "tag": "in-2"}]}`))
	s := NewLookupService(e.deps)

	got := s.LoadInbounds(context.Background(), []uint{1, 2})
	require.Len(t, got, 2)
	assert.Equal(t, "in-1", got[0].Tag)
	assert.JSONEq(t, `{"id": 1, "tag": "in-1", "listen_port": 443}`, string(got[0].Raw()))

	c, _ := e.gw.last("inbounds")
	assert.Equal(t, "1,2", c.Values.Get("id"))
	assert.Empty(t, e.m.Inbounds(), "lookups do not touch the mirror")
}

func TestLoadInbounds_NoIDsAndFailures(t *testing.T) {
	e := newEnv(t)
	e.gw.on("inbounds", ok(`{}`), unavailable())
	s := NewLookupService(e.deps)

	assert.Equal(t, 0, len(s.LoadInbounds(context.Background(), nil)))
	c, _ := e.gw.last("inbounds")
	assert.False(t, c.Values.Has("id"))

	got := s.LoadInbounds(context.Background(), []uint{3})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadClient(t *testing.T) {
	e := newEnv(t)
	e.gw.on("clients",
		ok(`{"clients": [{"id": 5, "name": "bob", "volume": 0}]}`),
		ok(`{"clients": []}`),
		rejected("boom"),
	)
	s := NewLookupService(e.deps)

	got := s.LoadClient(context.Background(), 5)
	assert.Equal(t, uint(5), got.ID)
	assert.Equal(t, "bob", got.Name)
	c, _ := e.gw.last("clients")
	assert.Equal(t, "5", c.Values.Get("id"))

	assert.Zero(t, s.LoadClient(context.Background(), 0).ID)
	c, _ = e.gw.last("clients")
	assert.False(t, c.Values.Has("id"))

	assert.Zero(t, s.LoadClient(context.Background(), 5).ID)
}
