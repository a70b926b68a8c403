package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/store"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/logger"
)

// Kafka topics for storefront domain events.
var (
	TopicCartUpdated      = pkgkafka.Topic("cart", "updated")
	TopicCartCleared      = pkgkafka.Topic("cart", "cleared")
	TopicFavoritesUpdated = pkgkafka.Topic("favorites", "updated")
)

const (
	AggregateTypeSession = "session"
	SourceStorefront     = "storefront-service"
)

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	SessionID     string         `json:"session_id"`
	Op            string         `json:"op"`
	Items         []CartItemData `json:"items"`
	ItemCount     int            `json:"item_count"`
	SelectedCount int            `json:"selected_count"`
	Subtotal      domain.Money   `json:"subtotal"`
}

// CartItemData is one line within a cart event.
type CartItemData struct {
	ProductID  string       `json:"product_id"`
	VariantID  string       `json:"variant_id,omitempty"`
	Name       string       `json:"name"`
	Price      domain.Money `json:"price"`
	Quantity   int          `json:"quantity"`
	IsSelected bool         `json:"is_selected"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	SessionID string `json:"session_id"`
}

// FavoritesUpdatedData is the payload for a favorites.updated event.
type FavoritesUpdatedData struct {
	SessionID  string   `json:"session_id"`
	Op         string   `json:"op"`
	ProductIDs []string `json:"product_ids"`
	Count      int      `json:"count"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka    pkgkafka.Publisher
	currency string
	logger   *slog.Logger
}

// NewProducer creates an event producer. currency is the one subtotals are reported in.
func NewProducer(kafka pkgkafka.Publisher, currency string, logger *slog.Logger) *Producer {
	return &Producer{kafka: kafka, currency: currency, logger: logger}
}

// Hook returns a store hook publishing one event per mutation.
func (p *Producer) Hook() store.Hook {
	return func(ctx context.Context, m store.Mutation) error {
		switch {
		case m.Op == store.OpCartClear:
			return p.PublishCartCleared(ctx, m.SessionID)
		case m.Op.IsCart():
			return p.PublishCartUpdated(ctx, m)
		default:
			return p.PublishFavoritesUpdated(ctx, m)
		}
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, m store.Mutation) error {
	items := make([]CartItemData, len(m.Snapshot.Items))
	sum := decimal.Zero
	selected := 0
	for i, item := range m.Snapshot.Items {
		items[i] = CartItemData{
			ProductID:  item.ProductID,
			VariantID:  item.VariantID,
			Name:       item.Product.Name,
			Price:      item.Product.Price,
			Quantity:   item.Quantity,
			IsSelected: item.IsSelected,
		}
		if item.IsSelected {
			selected += item.Quantity
			sum = sum.Add(item.LineTotal().Amount())
		}
	}

	subtotal, err := domain.NewMoney(sum, p.currency)
	if err != nil {
		return fmt.Errorf("compute cart subtotal: %w", err)
	}

	data := CartUpdatedData{
		SessionID:     m.SessionID,
		Op:            string(m.Op),
		Items:         items,
		ItemCount:     domain.ItemCount(m.Snapshot.Items),
		SelectedCount: selected,
		Subtotal:      subtotal,
	}

	if err := p.publish(ctx, TopicCartUpdated, m.SessionID, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_id", m.SessionID),
		slog.String("op", string(m.Op)),
		slog.Int("item_count", data.ItemCount),
	)
	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID string) error {
	if err := p.publish(ctx, TopicCartCleared, sessionID, CartClearedData{SessionID: sessionID}); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("session_id", sessionID),
	)
	return nil
}

// PublishFavoritesUpdated publishes a favorites.updated event.
func (p *Producer) PublishFavoritesUpdated(ctx context.Context, m store.Mutation) error {
	ids := m.Snapshot.Favorites
	if ids == nil {
		ids = []string{}
	}
	data := FavoritesUpdatedData{
		SessionID:  m.SessionID,
		Op:         string(m.Op),
		ProductIDs: ids,
		Count:      len(ids),
	}

	if err := p.publish(ctx, TopicFavoritesUpdated, m.SessionID, data); err != nil {
		return err
	}

	p.logger.DebugContext(ctx, "published favorites.updated event",
		slog.String("session_id", m.SessionID),
		slog.Int("count", data.Count),
	)
	return nil
}

func (p *Producer) publish(ctx context.Context, topic, sessionID string, data any) error {
	evt, err := pkgkafka.NewEvent(topic, sessionID, AggregateTypeSession, SourceStorefront, data,
		pkgkafka.WithCorrelation(logger.CorrelationIDFromContext(ctx)),
	)
	if err != nil {
		return fmt.Errorf("create %s event: %w", topic, err)
	}

	if err := p.kafka.Publish(ctx, topic, evt); err != nil {
		return fmt.Errorf("publish %s event: %w", topic, err)
	}
	return nil
}
