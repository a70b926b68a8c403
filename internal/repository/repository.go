package repository

import "context"

// SnapshotStorage is the durable key-value store session snapshots are kept
// in. Get returns an error wrapping apperrors.ErrNotFound for a missing key.
type SnapshotStorage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
