package store

import (
	"context"
	"slices"
)

// Favorites is the favorited-products half of a Store.
type Favorites struct {
	s *Store
}

// Add inserts productID if it is not already present.
func (f *Favorites) Add(ctx context.Context, productID string) {
	f.s.mutate(ctx, OpFavoriteAdd, func() { f.s.addFavoriteLocked(productID) })
}

func (f *Favorites) Remove(ctx context.Context, productID string) {
	f.s.mutate(ctx, OpFavoriteRemove, func() { f.s.removeFavoriteLocked(productID) })
}

// Toggle adds productID when absent and removes it when present. It returns
// whether the product is a favorite afterwards.
func (f *Favorites) Toggle(ctx context.Context, productID string) bool {
	var now bool
	f.s.mutate(ctx, OpFavoriteToggle, func() { now = f.s.toggleFavoriteLocked(productID) })
	return now
}

// TryAdd is Add bounded by Limits.MaxFavorites.
func (f *Favorites) TryAdd(ctx context.Context, productID string) error {
	return f.s.mutateChecked(ctx, OpFavoriteAdd, func() error {
		if err := f.s.favoriteRoomLocked(productID); err != nil {
			return err
		}
		f.s.addFavoriteLocked(productID)
		return nil
	})
}

// TryToggle is Toggle bounded by Limits.MaxFavorites. Removing never fails.
func (f *Favorites) TryToggle(ctx context.Context, productID string) (bool, error) {
	var now bool
	err := f.s.mutateChecked(ctx, OpFavoriteToggle, func() error {
		if err := f.s.favoriteRoomLocked(productID); err != nil {
			return err
		}
		now = f.s.toggleFavoriteLocked(productID)
		return nil
	})
	return now, err
}

func (f *Favorites) Clear(ctx context.Context) {
	f.s.mutate(ctx, OpFavoriteClear, func() { f.s.favorites = []string{} })
}

func (f *Favorites) Contains(productID string) bool {
	var ok bool
	f.s.read(func() { ok = slices.Contains(f.s.favorites, productID) })
	return ok
}

func (f *Favorites) Count() int {
	var n int
	f.s.read(func() { n = len(f.s.favorites) })
	return n
}

// IDs returns the favorites in insertion order.
func (f *Favorites) IDs() []string {
	var ids []string
	f.s.read(func() { ids = slices.Clone(f.s.favorites) })
	return ids
}

func (s *Store) addFavoriteLocked(id string) {
	if !slices.Contains(s.favorites, id) {
		s.favorites = append(s.favorites, id)
	}
}

func (s *Store) toggleFavoriteLocked(id string) bool {
	if slices.Contains(s.favorites, id) {
		s.removeFavoriteLocked(id)
		return false
	}
	s.addFavoriteLocked(id)
	return true
}

// favoriteRoomLocked reports ErrTooManyFavorites when adding id would grow
// the set past the limit.
func (s *Store) favoriteRoomLocked(id string) error {
	limit := s.limits.MaxFavorites
	if limit > 0 && len(s.favorites) >= limit && !slices.Contains(s.favorites, id) {
		return ErrTooManyFavorites
	}
	return nil
}

func (s *Store) removeFavoriteLocked(id string) {
	s.favorites = slices.DeleteFunc(s.favorites, func(v string) bool { return v == id })
}
