package memory

import (
	"context"
	"sync"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// SnapshotRepository keeps snapshots in process memory. Nothing survives a
// restart; it backs development runs and tests.
type SnapshotRepository struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewSnapshotRepository() *SnapshotRepository {
	return &SnapshotRepository{data: make(map[string]string)}
}

func (r *SnapshotRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.data[key]
	if !ok {
		return "", apperrors.NotFound("snapshot", key)
	}
	return v, nil
}

func (r *SnapshotRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value
	return nil
}

// Len reports the number of stored keys.
func (r *SnapshotRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
