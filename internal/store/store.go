// Package store holds one shopper session's cart and favorites. All state
// changes go through Cart and Favorites; every mutating call runs the
// registered hooks with the resulting snapshot.
package store

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/utafrali/storefront/internal/domain"
)

// Op names a mutating operation.
type Op string

const (
	OpCartAdd          Op = "cart.add"
	OpCartRemove       Op = "cart.remove"
	OpCartSetQuantity  Op = "cart.set_quantity"
	OpCartToggleSelect Op = "cart.toggle_selection"
	OpCartSelectAll    Op = "cart.select_all"
	OpCartClear        Op = "cart.clear"
	OpFavoriteAdd      Op = "favorites.add"
	OpFavoriteRemove   Op = "favorites.remove"
	OpFavoriteToggle   Op = "favorites.toggle"
	OpFavoriteClear    Op = "favorites.clear"
)

// IsCart reports whether op touches line items.
func (o Op) IsCart() bool {
	switch o {
	case OpCartAdd, OpCartRemove, OpCartSetQuantity, OpCartToggleSelect, OpCartSelectAll, OpCartClear:
		return true
	}
	return false
}

// Mutation is handed to hooks after a mutating call has been applied.
type Mutation struct {
	Op        Op
	SessionID string
	Snapshot  domain.Snapshot
}

// Hook observes mutations. Errors are logged and never roll back state.
type Hook func(ctx context.Context, m Mutation) error

// Option configures a Store.
type Option func(*Store)

// WithHooks appends hooks, run in the given order.
func WithHooks(hooks ...Hook) Option {
	return func(s *Store) { s.hooks = append(s.hooks, hooks...) }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithCurrency sets the currency subtotals are reported in.
func WithCurrency(c string) Option {
	return func(s *Store) { s.currency = c }
}

// WithClock replaces time.Now, for AddedAt stamps and idle tracking.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSnapshot seeds the store. The snapshot is sanitized first.
func WithSnapshot(snap domain.Snapshot) Option {
	return func(s *Store) {
		clean := Sanitize(snap)
		s.items = clean.Items
		s.favorites = clean.Favorites
	}
}

// Store is the state container for one session. It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	sessionID string
	currency  string
	items     []domain.LineItem
	favorites []string
	panelOpen bool
	limits    Limits
	touched   atomic.Pointer[time.Time]

	hooks  []Hook
	logger *slog.Logger
	now    func() time.Time

	cart *Cart
	favs *Favorites
}

// New returns an empty store for sessionID.
func New(sessionID string, opts ...Option) *Store {
	s := &Store{
		sessionID: sessionID,
		currency:  domain.DefaultCurrency,
		items:     []domain.LineItem{},
		favorites: []string{},
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.touch()
	s.cart = &Cart{s: s}
	s.favs = &Favorites{s: s}
	return s
}

func (s *Store) SessionID() string { return s.sessionID }

func (s *Store) Cart() *Cart { return s.cart }

func (s *Store) Favorites() *Favorites { return s.favs }

// Snapshot returns a copy of the persisted state.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	return s.snapshotLocked()
}

// LastTouched is the time of the most recent call on the store. It does not
// wait for an in-flight mutation.
func (s *Store) LastTouched() time.Time {
	return *s.touched.Load()
}

// Touch marks the store as in use without reading or changing its state.
func (s *Store) Touch() {
	s.touch()
}

func (s *Store) touch() {
	t := s.now()
	s.touched.Store(&t)
}

func (s *Store) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{
		Version:   domain.SnapshotVersion,
		Items:     slices.Clone(s.items),
		Favorites: slices.Clone(s.favorites),
	}
}

// mutate applies fn and runs the hooks while holding the lock, so hooks see
// snapshots in mutation order.
func (s *Store) mutate(ctx context.Context, op Op, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fn()
	s.touch()
	s.runHooksLocked(ctx, op)
}

// mutateChecked is mutate for changes that may be refused. When fn returns an
// error nothing has changed and no hook runs.
func (s *Store) mutateChecked(ctx context.Context, op Op, fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touch()
	if err := fn(); err != nil {
		return err
	}
	s.runHooksLocked(ctx, op)
	return nil
}

func (s *Store) runHooksLocked(ctx context.Context, op Op) {
	if len(s.hooks) == 0 {
		return
	}
	m := Mutation{Op: op, SessionID: s.sessionID, Snapshot: s.snapshotLocked()}
	for _, h := range s.hooks {
		if err := h(ctx, m); err != nil {
			s.logger.WarnContext(ctx, "store hook failed",
				slog.String("op", string(op)),
				slog.String("session_id", s.sessionID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// read runs fn under the lock.
func (s *Store) read(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touch()
	fn()
}
