package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/repository"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// DefaultNamespace prefixes every storage key.
const DefaultNamespace = "pazaryeri-store"

// DefaultSaveTimeout bounds one snapshot write made by the persistence hook.
const DefaultSaveTimeout = 5 * time.Second

// Persister writes snapshots to a SnapshotStorage under
// "<namespace>:<session id>" and reads them back.
type Persister struct {
	storage     repository.SnapshotStorage
	namespace   string
	saveTimeout time.Duration
	logger      *slog.Logger
}

// NewPersister returns a Persister. An empty namespace means DefaultNamespace.
func NewPersister(storage repository.SnapshotStorage, namespace string, logger *slog.Logger) *Persister {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Persister{
		storage:     storage,
		namespace:   namespace,
		saveTimeout: DefaultSaveTimeout,
		logger:      logger,
	}
}

// SetSaveTimeout overrides DefaultSaveTimeout. Non-positive values are ignored.
func (p *Persister) SetSaveTimeout(d time.Duration) {
	if d > 0 {
		p.saveTimeout = d
	}
}

// Key returns the storage key for sessionID.
func (p *Persister) Key(sessionID string) string {
	return p.namespace + ":" + sessionID
}

// Hook returns the store hook that saves every mutation's snapshot. The
// write is detached from the caller's cancellation: once a change is applied
// in memory it is saved even if the request that made it has gone away.
func (p *Persister) Hook() Hook {
	return func(ctx context.Context, m Mutation) error {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.saveTimeout)
		defer cancel()

		if err := p.Save(ctx, m.SessionID, m.Snapshot); err != nil {
			persistFailuresTotal.Inc()
			return err
		}
		return nil
	}
}

// Save encodes snap and writes it.
func (p *Persister) Save(ctx context.Context, sessionID string, snap domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := p.storage.Set(ctx, p.Key(sessionID), string(data)); err != nil {
		return fmt.Errorf("save snapshot for session %s: %w", sessionID, err)
	}
	return nil
}

// Restore reads the snapshot for sessionID. A missing key, a storage error
// or a malformed value all yield an empty snapshot; only the latter two
// are logged.
func (p *Persister) Restore(ctx context.Context, sessionID string) domain.Snapshot {
	empty := domain.Snapshot{Version: domain.SnapshotVersion, Items: []domain.LineItem{}, Favorites: []string{}}

	raw, err := p.storage.Get(ctx, p.Key(sessionID))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			p.logger.WarnContext(ctx, "failed to read snapshot, starting empty",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
		return empty
	}

	var snap domain.Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		p.logger.WarnContext(ctx, "malformed snapshot, starting empty",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
		return empty
	}
	if snap.Version > domain.SnapshotVersion {
		p.logger.WarnContext(ctx, "snapshot from a newer version, starting empty",
			slog.String("session_id", sessionID),
			slog.Int("version", snap.Version),
		)
		return empty
	}

	return Sanitize(snap)
}

// Open restores sessionID's snapshot and returns a store seeded with it that
// persists through p. The persistence hook runs before any extra hooks in opts.
func Open(ctx context.Context, sessionID string, p *Persister, opts ...Option) *Store {
	snap := p.Restore(ctx, sessionID)
	all := make([]Option, 0, len(opts)+2)
	all = append(all, WithSnapshot(snap), WithHooks(p.Hook()))
	all = append(all, opts...)
	return New(sessionID, all...)
}
