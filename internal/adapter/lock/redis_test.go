package lock

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real Redis when TEST_REDIS_URL is set.
func TestRedisLocker(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := Connect(ctx, url)
	require.NoError(t, err)
	defer client.Close()

	locker := NewRedisLocker(client)
	key := "test:" + t.Name()

	unlock, err := locker.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)

	_, err = locker.Acquire(ctx, key, time.Minute)
	assert.ErrorIs(t, err, domain.ErrLockHeld)
	assert.ErrorIs(t, err, domain.ErrConcurrencyConflict)

	require.NoError(t, unlock(ctx))

	unlock, err = locker.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
}

func TestConnect_BadURL(t *testing.T) {
	_, err := Connect(context.Background(), "redis://localhost:6379/notanumber")
	assert.Error(t, err)
}
