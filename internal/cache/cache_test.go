package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

func TestCache_SetGetJSON(t *testing.T) {
	ctx := context.Background()
	c := New(time.Minute)

	var got []item
	hit, err := c.GetJSON(ctx, "tools:list:v1:a", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	in := []item{{Name: "A", Tags: []string{"x"}}}
	require.NoError(t, c.SetJSON(ctx, "tools:list:v1:a", in))

	in[0].Tags[0] = "mutated"

	hit, err = c.GetJSON(ctx, "tools:list:v1:a", &got)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, []item{{Name: "A", Tags: []string{"x"}}}, got)
}

func TestCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	c := New(10 * time.Second)
	c.now = func() time.Time { return now }

	require.NoError(t, c.SetJSON(ctx, "k", 1))

	var v int
	now = now.Add(9 * time.Second)
	hit, _ := c.GetJSON(ctx, "k", &v)
	assert.True(t, hit)

	now = now.Add(time.Second)
	hit, _ = c.GetJSON(ctx, "k", &v)
	assert.False(t, hit)
	assert.Equal(t, 0, c.Len())
}

func TestCache_InvalidatePrefix(t *testing.T) {
	ctx := context.Background()
	c := New(time.Minute)

	require.NoError(t, c.SetJSON(ctx, "tools:list:v1:a", 1))
	require.NoError(t, c.SetJSON(ctx, "tools:list:v1:b", 2))
	require.NoError(t, c.SetJSON(ctx, "other:key", 3))

	require.NoError(t, c.Invalidate(ctx, "tools:list:"))

	var v int
	hit, _ := c.GetJSON(ctx, "tools:list:v1:a", &v)
	assert.False(t, hit)
	hit, _ = c.GetJSON(ctx, "other:key", &v)
	assert.True(t, hit)
	assert.Equal(t, 3, v)
}

func TestCache_InvalidateBumpsGeneration(t *testing.T) {
	ctx := context.Background()
	c := New(time.Minute)

	gen, err := c.Generation(ctx, "tools:list:")
	require.NoError(t, err)
	assert.Equal(t, int64(0), gen)

	require.NoError(t, c.Invalidate(ctx, "tools:list:"))
	require.NoError(t, c.Invalidate(ctx, "tools:list:"))

	gen, err = c.Generation(ctx, "tools:list:")
	require.NoError(t, err)
	assert.Equal(t, int64(2), gen)

	other, err := c.Generation(ctx, "other:")
	require.NoError(t, err)
	assert.Equal(t, int64(0), other)
}

func TestNew_DefaultsNonPositiveTTL(t *testing.T) {
	c := New(0)
	assert.Equal(t, 5*time.Second, c.ttl)
}
