package store

import "errors"

// Errors returned by the Try* mutators when a change would exceed Limits.
var (
	ErrTooManyLines     = errors.New("cart line limit reached")
	ErrQuantityTooLarge = errors.New("line quantity limit exceeded")
	ErrTooManyFavorites = errors.New("favorites limit reached")
)

// Limits bounds the size of a store. Zero fields are unlimited. Only the
// Try* mutators consult them; the plain mutators never refuse a change.
type Limits struct {
	MaxLines     int
	MaxQuantity  int
	MaxFavorites int
}

// WithLimits sets the bounds enforced by the Try* mutators.
func WithLimits(l Limits) Option {
	return func(s *Store) { s.limits = l }
}
