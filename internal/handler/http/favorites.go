package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
)

// ToggleFavoriteResponse reports the favorites after a toggle.
type ToggleFavoriteResponse struct {
	*service.FavoritesView
	IsFavorite bool `json:"is_favorite"`
}

// FavoritesHandler serves the favorites endpoints.
type FavoritesHandler struct {
	service *service.StorefrontService
	logger  *slog.Logger
}

// NewFavoritesHandler creates a favorites handler.
func NewFavoritesHandler(svc *service.StorefrontService, logger *slog.Logger) *FavoritesHandler {
	return &FavoritesHandler{service: svc, logger: logger}
}

// GetFavorites handles GET /favorites.
func (h *FavoritesHandler) GetFavorites(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetFavorites(r.Context(), sessionIDFromContext(r.Context()))
	h.respond(w, r, view, err)
}

// AddFavorite handles PUT /favorites/{productId}.
func (h *FavoritesHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.AddFavorite(r.Context(), sessionIDFromContext(r.Context()), chi.URLParam(r, "productId"))
	h.respond(w, r, view, err)
}

// RemoveFavorite handles DELETE /favorites/{productId}.
func (h *FavoritesHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.RemoveFavorite(r.Context(), sessionIDFromContext(r.Context()), chi.URLParam(r, "productId"))
	h.respond(w, r, view, err)
}

// ToggleFavorite handles POST /favorites/{productId}/toggle.
func (h *FavoritesHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	view, isFavorite, err := h.service.ToggleFavorite(r.Context(), sessionIDFromContext(r.Context()), chi.URLParam(r, "productId"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, ToggleFavoriteResponse{FavoritesView: view, IsFavorite: isFavorite})
}

// ClearFavorites handles DELETE /favorites.
func (h *FavoritesHandler) ClearFavorites(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ClearFavorites(r.Context(), sessionIDFromContext(r.Context()))
	h.respond(w, r, view, err)
}

func (h *FavoritesHandler) respond(w http.ResponseWriter, r *http.Request, view *service.FavoritesView, err error) {
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, view)
}
