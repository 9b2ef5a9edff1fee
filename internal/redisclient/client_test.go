package redisclient

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigEnabled(t *testing.T) {
	assert.False(t, Config{}.Enabled())
	assert.True(t, Config{Addr: "localhost:6379"}.Enabled())
}

func TestConnect_Unreachable(t *testing.T) {
	// nothing listens on port 1
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "127.0.0.1:1")
}

func TestConnect_Live(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}

	c, err := Connect(context.Background(), Config{Addr: addr})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Ping(context.Background()))
	assert.NotNil(t, c.Raw())
}
