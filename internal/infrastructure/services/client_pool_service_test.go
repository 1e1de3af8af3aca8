package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenAIClientPool(t *testing.T) {
	ctx := context.Background()
	pool := NewGenAIClientPool("test-key", "http://127.0.0.1:1")

	cfg := pool.Config()
	require.NotNil(t, cfg)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "http://127.0.0.1:1", cfg.BaseURL)

	first, err := pool.GetGenAIClient(ctx)
	require.NoError(t, err)
	second, err := pool.GetGenAIClient(ctx)
	require.NoError(t, err)
	assert.Same(t, first, second)

	require.NoError(t, pool.Close())
	rebuilt, err := pool.GetGenAIClient(ctx)
	require.NoError(t, err)
	assert.NotSame(t, first, rebuilt)
}

func TestGenAIClientPool_MissingKey(t *testing.T) {
	pool := NewGenAIClientPool("", "")

	_, err := pool.GetGenAIClient(context.Background())
	assert.Error(t, err)
}
