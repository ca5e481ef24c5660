package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	return New(mr.Addr(), "", 0, time.Minute), mr
}

func TestClient_SetGetDelete(t *testing.T) {
	c, mr := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, SettingsKey(), []byte(`{"totalLectures":120}`)))
	assert.True(t, mr.Exists("settings"))
	assert.Equal(t, time.Minute, mr.TTL("settings"))

	got, err := c.Get(ctx, SettingsKey())
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalLectures":120}`, string(got))

	require.NoError(t, c.Delete(ctx, SettingsKey()))
	got, err = c.Get(ctx, SettingsKey())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClient_JSONHelpers(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	c.SetJSON(ctx, ProgressKey("u1"), map[string]int{"3": 1})

	var dst map[string]int
	assert.True(t, c.GetJSON(ctx, ProgressKey("u1"), &dst))
	assert.Equal(t, map[string]int{"3": 1}, dst)

	assert.False(t, c.GetJSON(ctx, ProgressKey("u2"), &dst))
}

func TestClient_FailsSafeWhenRedisIsDown(t *testing.T) {
	c := New("127.0.0.1:1", "", 0, time.Minute)
	ctx := context.Background()

	assert.NoError(t, c.Set(ctx, "k", []byte("v")))
	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestClient_NilIsEmptyCache(t *testing.T) {
	c := New("", "", 0, time.Minute)
	ctx := context.Background()

	assert.Nil(t, c)
	assert.NoError(t, c.Set(ctx, "k", []byte("v")))
	got, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, got)
	c.SetJSON(ctx, "k", 1)
	var dst int
	assert.False(t, c.GetJSON(ctx, "k", &dst))
	assert.NoError(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}
