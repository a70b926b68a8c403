package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/store"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Input bounds. Per-request bounds are checked here; size bounds are handed
// to each store as store.Limits so they hold under concurrent requests.
const (
	// MaxQuantityPerItem is the maximum quantity of a single cart line.
	MaxQuantityPerItem = 100
	// MaxItemsPerCart is the maximum number of distinct lines in a cart.
	MaxItemsPerCart = 50
	// MaxFavorites is the maximum size of a favorites set.
	MaxFavorites = 500
	// MaxSessionIDLength bounds the opaque session identifier.
	MaxSessionIDLength = 128
)

// ProductLookup resolves a product id to its catalog summary.
type ProductLookup interface {
	GetProduct(ctx context.Context, id string) (domain.ProductSummary, error)
}

// AddItemInput holds the parameters for adding an item to the cart.
// When Product is nil the summary is fetched from the catalog.
type AddItemInput struct {
	ProductID string
	VariantID string
	Quantity  int
	Product   *domain.ProductSummary
}

// CartView is the cart as the UI layer renders it.
type CartView struct {
	Items             []domain.LineItem `json:"items"`
	TotalItemCount    int               `json:"total_item_count"`
	SelectedItemCount int               `json:"selected_item_count"`
	Subtotal          domain.Money      `json:"subtotal"`
	Total             domain.Money      `json:"total"`
	AllSelected       bool              `json:"all_selected"`
	PanelOpen         bool              `json:"panel_open"`
}

// FavoritesView lists the favorited product ids.
type FavoritesView struct {
	ProductIDs []string `json:"product_ids"`
	Count      int      `json:"count"`
}

// Option configures a StorefrontService.
type Option func(*StorefrontService)

// WithHooks adds store hooks run after the persistence hook on every session.
func WithHooks(hooks ...store.Hook) Option {
	return func(s *StorefrontService) { s.hooks = append(s.hooks, hooks...) }
}

// WithCurrency sets the currency totals are reported in.
func WithCurrency(currency string) Option {
	return func(s *StorefrontService) { s.currency = currency }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *StorefrontService) { s.now = now }
}

// StorefrontService owns the live store of every active session and
// validates input on their behalf.
type StorefrontService struct {
	persister *store.Persister
	catalog   ProductLookup
	hooks     []store.Hook
	currency  string
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[string]*store.Store
	opening  singleflight.Group
}

// NewStorefrontService creates the service. catalog may be nil, in which
// case AddItem requires the caller to send the product summary.
func NewStorefrontService(persister *store.Persister, catalog ProductLookup, logger *slog.Logger, opts ...Option) *StorefrontService {
	s := &StorefrontService{
		persister: persister,
		catalog:   catalog,
		currency:  domain.DefaultCurrency,
		logger:    logger,
		now:       time.Now,
		sessions:  make(map[string]*store.Store),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// session returns the live store for sessionID, restoring it from storage
// on first use. Concurrent first calls for one session share a single open.
// The store is touched under s.mu, so EvictIdle never drops a store that
// was just handed out.
func (s *StorefrontService) session(ctx context.Context, sessionID string) (*store.Store, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	if len(sessionID) > MaxSessionIDLength {
		return nil, apperrors.InvalidInput(fmt.Sprintf("session id must not exceed %d characters", MaxSessionIDLength))
	}

	s.mu.Lock()
	st, ok := s.sessions[sessionID]
	if ok {
		st.Touch()
	}
	s.mu.Unlock()
	if ok {
		return st, nil
	}

	v, _, _ := s.opening.Do(sessionID, func() (any, error) {
		s.mu.Lock()
		if existing, ok := s.sessions[sessionID]; ok {
			existing.Touch()
			s.mu.Unlock()
			return existing, nil
		}
		s.mu.Unlock()

		opened := store.Open(context.WithoutCancel(ctx), sessionID, s.persister,
			store.WithHooks(s.hooks...),
			store.WithCurrency(s.currency),
			store.WithClock(s.now),
			store.WithLogger(s.logger),
			store.WithLimits(store.Limits{
				MaxLines:     MaxItemsPerCart,
				MaxQuantity:  MaxQuantityPerItem,
				MaxFavorites: MaxFavorites,
			}),
		)

		s.mu.Lock()
		s.sessions[sessionID] = opened
		s.mu.Unlock()

		s.logger.DebugContext(ctx, "session opened", slog.String("session_id", sessionID))
		return opened, nil
	})
	return v.(*store.Store), nil
}

// GetCart returns the session's cart.
func (s *StorefrontService) GetCart(ctx context.Context, sessionID string) (*CartView, error) {
	st, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return cartView(st), nil
}

// AddItem adds a product to the cart, merging with an existing line for the
// same product and variant. A zero quantity means one.
func (s *StorefrontService) AddItem(ctx context.Context, sessionID string, input AddItemInput) (*CartView, error) {
	if input.Quantity == 0 {
		input.Quantity = 1
	}
	if input.Quantity < 0 {
		return nil, apperrors.InvalidInput("quantity must be greater than 0")
	}
	if input.Quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	product, err := s.resolveProduct(ctx, input)
	if err != nil {
		return nil, err
	}
	if want := domain.Zero(s.currency).Currency(); product.Price.Currency() != want {
		return nil, apperrors.InvalidInput(fmt.Sprintf("product price must be in %s, got %s", want, product.Price.Currency()))
	}

	st, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := st.Cart().TryAddItem(ctx, product, input.Quantity, input.VariantID); err != nil {
		return nil, limitError(err)
	}

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("session_id", sessionID),
		slog.String("product_id", product.ID),
		slog.Int("quantity", input.Quantity),
	)

	return cartView(st), nil
}

func (s *StorefrontService) resolveProduct(ctx context.Context, input AddItemInput) (domain.ProductSummary, error) {
	if input.Product != nil {
		p := *input.Product
		if p.ID == "" {
			p.ID = input.ProductID
		}
		if p.ID == "" {
			return domain.ProductSummary{}, apperrors.InvalidInput("product id is required")
		}
		if input.ProductID != "" && input.ProductID != p.ID {
			return domain.ProductSummary{}, apperrors.InvalidInput("product id does not match product")
		}
		return p, nil
	}

	if input.ProductID == "" {
		return domain.ProductSummary{}, apperrors.InvalidInput("product id is required")
	}
	if s.catalog == nil {
		return domain.ProductSummary{}, apperrors.InvalidInput("product summary is required")
	}

	p, err := s.catalog.GetProduct(ctx, input.ProductID)
	if err != nil {
		return domain.ProductSummary{}, fmt.Errorf("look up product %s: %w", input.ProductID, err)
	}
	return p, nil
}

// UpdateQuantity sets the quantity of every line for productID. Zero removes them.
func (s *StorefrontService) UpdateQuantity(ctx context.Context, sessionID, productID string, quantity int) (*CartView, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity < 0 {
		return nil, apperrors.InvalidInput("quantity must not be negative")
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity must not exceed %d", MaxQuantityPerItem))
	}

	st, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st.Cart().SetQuantity(ctx, productID, quantity)
	return cartView(st), nil
}

// RemoveItem removes every line for productID.
func (s *StorefrontService) RemoveItem(ctx context.Context, sessionID, productID string) (*CartView, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	st, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st.Cart().RemoveItem(ctx, productID)
	return cartView(st), nil
}

// ToggleSelection flips the checkout selection of productID's lines.
func (s *StorefrontService) ToggleSelection(ctx context.Context, sessionID, productID string) (*CartView, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	st, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st.Cart().ToggleSelection(ctx, productID)
	return cartView(st), nil
}

// SetAllSelected selects or deselects every line.
func (s *StorefrontService) SetAllSelected(ctx context.Context, sessionID string, selected bool) (*CartView, error) {
	st, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st.Cart().SetAllSelected(ctx, selected)
	return cartView(st), nil
}

// ClearCart empties the cart. Favorites are untouched.
func (s *StorefrontService) ClearCart(ctx context.Context, sessionID string) (*CartView, error) {
	st, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st.Cart().Clear(ctx)

	s.logger.InfoContext(ctx, "cart cleared", slog.String("session_id", sessionID))
	return cartView(st), nil
}

// SetPanelOpen opens or closes the cart panel.
func (s *StorefrontService) SetPanelOpen(ctx context.Context, sessionID string, open bool) (*CartView, error) {
	st, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st.Cart().SetPanelOpen(open)
	return cartView(st), nil
}

// TogglePanel flips the cart panel.
func (s *StorefrontService) TogglePanel(ctx context.Context, sessionID string) (*CartView, error) {
	st, err := s.session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	st.Cart().TogglePanel()
	return cartView(st), nil
}

// limitError maps a refused store mutation to an InvalidInput error.
func limitError(err error) error {
	switch {
	case errors.Is(err, store.ErrQuantityTooLarge):
		return apperrors.InvalidInput(fmt.Sprintf("combined quantity must not exceed %d", MaxQuantityPerItem))
	case errors.Is(err, store.ErrTooManyLines):
		return apperrors.InvalidInput(fmt.Sprintf("cart must not contain more than %d items", MaxItemsPerCart))
	case errors.Is(err, store.ErrTooManyFavorites):
		return apperrors.InvalidInput(fmt.Sprintf("favorites must not contain more than %d products", MaxFavorites))
	}
	return err
}

func cartView(st *store.Store) *CartView {
	sum := st.Cart().Summary()
	return &CartView{
		Items:             sum.Items,
		TotalItemCount:    sum.TotalItemCount,
		SelectedItemCount: sum.SelectedItemCount,
		Subtotal:          sum.Subtotal,
		Total:             sum.Total,
		AllSelected:       sum.AllSelected,
		PanelOpen:         sum.PanelOpen,
	}
}
