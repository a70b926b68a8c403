package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// --- Request DTOs ---

// AddItemRequest is the body of POST /cart/items. Product may carry the
// full summary; otherwise the catalog is consulted for ProductID.
type AddItemRequest struct {
	ProductID string                 `json:"product_id" validate:"required_without=Product,max=128"`
	VariantID string                 `json:"variant_id" validate:"max=128"`
	Quantity  int                    `json:"quantity" validate:"gte=0,lte=100"`
	Product   *domain.ProductSummary `json:"product"`
}

// UpdateQuantityRequest is the body of PUT /cart/items/{productId}.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,gte=0,lte=100"`
}

// SetSelectionRequest is the body of PUT /cart/selection.
type SetSelectionRequest struct {
	Selected *bool `json:"selected" validate:"required"`
}

// SetPanelRequest is the body of PUT /cart/panel.
type SetPanelRequest struct {
	Open *bool `json:"open" validate:"required"`
}

// CartHandler serves the cart endpoints.
type CartHandler struct {
	service *service.StorefrontService
	logger  *slog.Logger
}

// NewCartHandler creates a cart handler.
func NewCartHandler(svc *service.StorefrontService, logger *slog.Logger) *CartHandler {
	return &CartHandler{service: svc, logger: logger}
}

// GetCart handles GET /cart.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetCart(r.Context(), sessionIDFromContext(r.Context()))
	h.respond(w, r, view, err)
}

// AddItem handles POST /cart/items.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	view, err := h.service.AddItem(r.Context(), sessionIDFromContext(r.Context()), service.AddItemInput{
		ProductID: req.ProductID,
		VariantID: req.VariantID,
		Quantity:  req.Quantity,
		Product:   req.Product,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, view)
}

// UpdateQuantity handles PUT /cart/items/{productId}.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	view, err := h.service.UpdateQuantity(r.Context(), sessionIDFromContext(r.Context()), chi.URLParam(r, "productId"), *req.Quantity)
	h.respond(w, r, view, err)
}

// RemoveItem handles DELETE /cart/items/{productId}.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.RemoveItem(r.Context(), sessionIDFromContext(r.Context()), chi.URLParam(r, "productId"))
	h.respond(w, r, view, err)
}

// ToggleSelection handles POST /cart/items/{productId}/selection/toggle.
func (h *CartHandler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ToggleSelection(r.Context(), sessionIDFromContext(r.Context()), chi.URLParam(r, "productId"))
	h.respond(w, r, view, err)
}

// SetAllSelected handles PUT /cart/selection.
func (h *CartHandler) SetAllSelected(w http.ResponseWriter, r *http.Request) {
	var req SetSelectionRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	view, err := h.service.SetAllSelected(r.Context(), sessionIDFromContext(r.Context()), *req.Selected)
	h.respond(w, r, view, err)
}

// ClearCart handles DELETE /cart.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.ClearCart(r.Context(), sessionIDFromContext(r.Context()))
	h.respond(w, r, view, err)
}

// SetPanel handles PUT /cart/panel.
func (h *CartHandler) SetPanel(w http.ResponseWriter, r *http.Request) {
	var req SetPanelRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	view, err := h.service.SetPanelOpen(r.Context(), sessionIDFromContext(r.Context()), *req.Open)
	h.respond(w, r, view, err)
}

// TogglePanel handles POST /cart/panel/toggle.
func (h *CartHandler) TogglePanel(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.TogglePanel(r.Context(), sessionIDFromContext(r.Context()))
	h.respond(w, r, view, err)
}

func (h *CartHandler) respond(w http.ResponseWriter, r *http.Request, view *service.CartView, err error) {
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, view)
}
