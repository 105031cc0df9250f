// Package testutils provides shared test helpers, including an in-memory
// Redis for repository tests.
package testutils

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"

	"github.com/studyquest/progression/internal/redis"
)

// CreateTestRedisClient starts a miniredis and returns a client connected to
// it plus a cleanup func.
func CreateTestRedisClient(t *testing.T) (redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")

	return client, func() { mr.Close() }
}

// CreateTestRedisClientWithSetup starts a miniredis, lets the test seed it,
// and returns a connected client plus a cleanup func.
func CreateTestRedisClientWithSetup(t *testing.T, setup func(mr *miniredis.Miniredis)) (redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	if setup != nil {
		setup(mr)
	}

	client, err := redis.NewClient(mr.Addr(), nil)
	require.NoError(t, err, "failed to create redis client")

	return client, func() { mr.Close() }
}
