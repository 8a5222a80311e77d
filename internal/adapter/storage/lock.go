package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/MikeRez0/pointsweep/internal/core/port"
)

// AdvisoryLocker takes PostgreSQL session advisory locks. The lock lives as long as
// the pooled connection is held, so ttl is ignored.
type AdvisoryLocker struct {
	db *DB
}

func NewAdvisoryLocker(db *DB) *AdvisoryLocker {
	return &AdvisoryLocker{db: db}
}

func (l *AdvisoryLocker) Acquire(ctx context.Context, key string, _ time.Duration) (port.Unlock, error) {
	conn, err := l.db.Acquire(ctx)
	if err != nil {
		return nil, domain.Persistence(fmt.Errorf("acquire connection for lock %s: %w", key, err))
	}

	var locked bool
	err = conn.QueryRow(ctx, "SELECT pg_try_advisory_lock(hashtext($1))", key).Scan(&locked)
	if err != nil {
		conn.Release()
		return nil, domain.Persistence(fmt.Errorf("advisory lock %s: %w", key, err))
	}
	if !locked {
		conn.Release()
		return nil, fmt.Errorf("%w: %s", domain.ErrLockHeld, key)
	}

	return func(ctx context.Context) error {
		defer conn.Release()
		_, err := conn.Exec(ctx, "SELECT pg_advisory_unlock(hashtext($1))", key)
		if err != nil {
			return fmt.Errorf("advisory unlock %s: %w", key, err)
		}
		return nil
	}, nil
}
