package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/utafrali/storefront/pkg/database"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

const (
	getSnapshotQuery = `
		SELECT document::text
		FROM storefront_snapshots
		WHERE key = $1 AND (expires_at IS NULL OR expires_at > NOW())`

	upsertSnapshotQuery = `
		INSERT INTO storefront_snapshots (key, document, updated_at, expires_at)
		VALUES ($1, $2::jsonb, NOW(), $3)
		ON CONFLICT (key) DO UPDATE
		SET document = EXCLUDED.document,
		    updated_at = EXCLUDED.updated_at,
		    expires_at = EXCLUDED.expires_at`

	purgeExpiredQuery = `
		DELETE FROM storefront_snapshots
		WHERE expires_at IS NOT NULL AND expires_at <= NOW()`
)

// SnapshotRepository stores session snapshots in the storefront_snapshots table.
type SnapshotRepository struct {
	pool database.DBTX
	ttl  time.Duration
	now  func() time.Time
}

// NewSnapshotRepository returns a repository. With a zero ttl rows never expire.
func NewSnapshotRepository(pool database.DBTX, ttl time.Duration) *SnapshotRepository {
	return &SnapshotRepository{pool: pool, ttl: ttl, now: time.Now}
}

// Get returns the document stored at key, ignoring expired rows.
func (r *SnapshotRepository) Get(ctx context.Context, key string) (value string, err error) {
	ctx, end := database.TraceQuery(ctx, database.SystemPostgres, "SnapshotGet", getSnapshotQuery)
	defer func() { end(err) }()

	err = r.pool.QueryRow(ctx, getSnapshotQuery, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NotFound("snapshot", key)
		}
		return "", fmt.Errorf("query snapshot: %w", err)
	}
	return value, nil
}

// Set upserts value at key and pushes its expiry forward.
func (r *SnapshotRepository) Set(ctx context.Context, key, value string) (err error) {
	ctx, end := database.TraceQuery(ctx, database.SystemPostgres, "SnapshotSet", upsertSnapshotQuery)
	defer func() { end(err) }()

	var expiresAt *time.Time
	if r.ttl > 0 {
		t := r.now().UTC().Add(r.ttl)
		expiresAt = &t
	}

	if _, err = r.pool.Exec(ctx, upsertSnapshotQuery, key, value, expiresAt); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// PurgeExpired deletes expired rows and returns how many were removed.
func (r *SnapshotRepository) PurgeExpired(ctx context.Context) (n int64, err error) {
	ctx, end := database.TraceQuery(ctx, database.SystemPostgres, "SnapshotPurgeExpired", purgeExpiredQuery)
	defer func() { end(err) }()

	tag, err := r.pool.Exec(ctx, purgeExpiredQuery)
	if err != nil {
		return 0, fmt.Errorf("purge expired snapshots: %w", err)
	}
	return tag.RowsAffected(), nil
}
