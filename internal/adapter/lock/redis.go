// Package lock provides the Redis backed advisory lock used by sweeps and settlement.
package lock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "pointsweep:lock:"

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Connect initializes a Redis client from URL or host:port input.
func Connect(ctx context.Context, redisURL string) (*redis.Client, error) {
	var client *redis.Client
	if strings.HasPrefix(redisURL, "redis://") || strings.HasPrefix(redisURL, "rediss://") {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: redisURL})
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

type RedisLocker struct {
	client redis.Cmdable
}

func NewRedisLocker(client redis.Cmdable) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (port.Unlock, error) {
	token := uuid.NewString()
	redisKey := keyPrefix + key

	ok, err := l.client.SetNX(ctx, redisKey, token, ttl).Result()
	if err != nil {
		return nil, domain.Persistence(fmt.Errorf("redis lock %s: %w", key, err))
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrLockHeld, key)
	}

	return func(ctx context.Context) error {
		err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("redis unlock %s: %w", key, err)
		}
		return nil
	}, nil
}
