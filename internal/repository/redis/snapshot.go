package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/utafrali/storefront/pkg/database"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// SnapshotRepository stores session snapshots as Redis strings. Every write
// refreshes the key's TTL, so an active session never expires.
type SnapshotRepository struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewSnapshotRepository returns a repository. A zero ttl keeps keys forever.
func NewSnapshotRepository(client redis.UniversalClient, ttl time.Duration) *SnapshotRepository {
	return &SnapshotRepository{client: client, ttl: ttl}
}

// Get returns the value stored at key.
func (r *SnapshotRepository) Get(ctx context.Context, key string) (value string, err error) {
	ctx, end := database.TraceQuery(ctx, database.SystemRedis, "SnapshotGet", "GET")
	defer func() { end(err) }()

	value, err = r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperrors.NotFound("snapshot", key)
		}
		return "", fmt.Errorf("redis get snapshot: %w", err)
	}
	return value, nil
}

// Set writes value at key with the configured TTL.
func (r *SnapshotRepository) Set(ctx context.Context, key, value string) (err error) {
	ctx, end := database.TraceQuery(ctx, database.SystemRedis, "SnapshotSet", "SET")
	defer func() { end(err) }()

	if err = r.client.Set(ctx, key, value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set snapshot: %w", err)
	}
	return nil
}

// Ping checks connectivity.
func (r *SnapshotRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
