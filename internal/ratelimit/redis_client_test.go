package ratelimit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClientWithoutAddrIsDisabled(t *testing.T) {
	client, err := NewRedisClient("", "", 0)
	require.NoError(t, err)

	assert.False(t, client.IsEnabled())
	assert.Error(t, client.HealthCheck(context.Background()))
	assert.NoError(t, client.Close())
}

func TestNewRedisClientUnreachableFallsBack(t *testing.T) {
	// Port 1 refuses immediately, so the ping fails without waiting on a
	// dial timeout.
	client, err := NewRedisClient("127.0.0.1:1", "", 0)
	require.Error(t, err)
	require.NotNil(t, client)

	// The fallback must not retain the unreachable connection pool.
	assert.False(t, client.IsEnabled())
	assert.Nil(t, client.GetClient())
	assert.NoError(t, client.Close())
}
