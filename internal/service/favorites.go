package service

import (
	"context"

	"github.com/utafrali/storefront/internal/store"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// GetFavorites returns the session's favorites.
func (s *StorefrontService) GetFavorites(ctx context.Context, sessionID string) (*FavoritesView, error) {
	st, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return favoritesView(st), nil
}

// AddFavorite adds productID to the favorites. Adding twice is a no-op.
func (s *StorefrontService) AddFavorite(ctx context.Context, sessionID, productID string) (*FavoritesView, error) {
	st, err := s.favoritesSession(ctx, sessionID, productID)
	if err != nil {
		return nil, err
	}
	if err := st.Favorites().TryAdd(ctx, productID); err != nil {
		return nil, limitError(err)
	}
	return favoritesView(st), nil
}

// RemoveFavorite removes productID from the favorites.
func (s *StorefrontService) RemoveFavorite(ctx context.Context, sessionID, productID string) (*FavoritesView, error) {
	st, err := s.favoritesSession(ctx, sessionID, productID)
	if err != nil {
		return nil, err
	}
	st.Favorites().Remove(ctx, productID)
	return favoritesView(st), nil
}

// ToggleFavorite flips productID's membership and reports whether it is now a favorite.
func (s *StorefrontService) ToggleFavorite(ctx context.Context, sessionID, productID string) (*FavoritesView, bool, error) {
	st, err := s.favoritesSession(ctx, sessionID, productID)
	if err != nil {
		return nil, false, err
	}
	now, err := st.Favorites().TryToggle(ctx, productID)
	if err != nil {
		return nil, false, limitError(err)
	}
	return favoritesView(st), now, nil
}

// ClearFavorites empties the favorites. The cart is untouched.
func (s *StorefrontService) ClearFavorites(ctx context.Context, sessionID string) (*FavoritesView, error) {
	st, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st.Favorites().Clear(ctx)
	return favoritesView(st), nil
}

func (s *StorefrontService) favoritesSession(ctx context.Context, sessionID, productID string) (*store.Store, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	return s.session(ctx, sessionID)
}

func favoritesView(st *store.Store) *FavoritesView {
	ids := st.Favorites().IDs()
	return &FavoritesView{ProductIDs: ids, Count: len(ids)}
}
