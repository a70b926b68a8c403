package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/store"
	pkgkafka "github.com/utafrali/storefront/pkg/kafka"
	"github.com/utafrali/storefront/pkg/logger"
)

type published struct {
	topic string
	event *pkgkafka.Event
}

type fakePublisher struct {
	mu     sync.Mutex
	events []published
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, topic string, e *pkgkafka.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, published{topic: topic, event: e})
	return nil
}

func (f *fakePublisher) last(t *testing.T) published {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.events)
	return f.events[len(f.events)-1]
}

func product(id string, price float64) domain.ProductSummary {
	return domain.ProductSummary{
		ID:    id,
		Name:  "Product " + id,
		Price: domain.MustMoney(price, "TRY"),
	}
}

func newStore(pub *fakePublisher) *store.Store {
	p := NewProducer(pub, "TRY", logger.Discard())
	return store.New("sess-1", store.WithHooks(p.Hook()), store.WithLogger(logger.Discard()))
}

func TestTopics(t *testing.T) {
	assert.Equal(t, "storefront.cart.updated", TopicCartUpdated)
	assert.Equal(t, "storefront.cart.cleared", TopicCartCleared)
	assert.Equal(t, "storefront.favorites.updated", TopicFavoritesUpdated)
}

func TestHook_CartUpdated(t *testing.T) {
	pub := &fakePublisher{}
	s := newStore(pub)
	ctx := logger.WithCorrelationID(context.Background(), "corr-1")

	s.Cart().AddItem(ctx, product("A", 100), 2, "")
	s.Cart().AddItem(ctx, product("B", 50), 1, "")
	s.Cart().ToggleSelection(ctx, "B")

	got := pub.last(t)
	assert.Equal(t, TopicCartUpdated, got.topic)
	assert.Equal(t, "sess-1", got.event.AggregateID)
	assert.Equal(t, AggregateTypeSession, got.event.AggregateType)
	assert.Equal(t, "corr-1", got.event.CorrelationID)

	var data CartUpdatedData
	require.NoError(t, got.event.Decode(&data))
	assert.Equal(t, "cart.toggle_selection", data.Op)
	assert.Len(t, data.Items, 2)
	assert.Equal(t, 3, data.ItemCount)
	assert.Equal(t, 2, data.SelectedCount)
	assert.Equal(t, "200.00 TRY", data.Subtotal.Format())
}

func TestHook_CartCleared(t *testing.T) {
	pub := &fakePublisher{}
	s := newStore(pub)
	ctx := context.Background()

	s.Cart().AddItem(ctx, product("A", 10), 1, "")
	s.Cart().Clear(ctx)

	got := pub.last(t)
	assert.Equal(t, TopicCartCleared, got.topic)

	var data CartClearedData
	require.NoError(t, got.event.Decode(&data))
	assert.Equal(t, "sess-1", data.SessionID)
}

func TestHook_FavoritesUpdated(t *testing.T) {
	pub := &fakePublisher{}
	s := newStore(pub)
	ctx := context.Background()

	s.Favorites().Add(ctx, "p1")
	s.Favorites().Toggle(ctx, "p2")

	got := pub.last(t)
	assert.Equal(t, TopicFavoritesUpdated, got.topic)

	var data FavoritesUpdatedData
	require.NoError(t, got.event.Decode(&data))
	assert.Equal(t, "favorites.toggle", data.Op)
	assert.ElementsMatch(t, []string{"p1", "p2"}, data.ProductIDs)
	assert.Equal(t, 2, data.Count)
}

func TestHook_PublishFailureLeavesStateIntact(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	s := newStore(pub)
	ctx := context.Background()

	s.Cart().AddItem(ctx, product("A", 10), 1, "")
	s.Favorites().Add(ctx, "p1")

	assert.Equal(t, 1, s.Cart().TotalItemCount())
	assert.True(t, s.Favorites().Contains("p1"))
}

func TestPublishCartUpdated_ReturnsWrappedError(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker down")}
	p := NewProducer(pub, "TRY", logger.Discard())

	err := p.PublishCartUpdated(context.Background(), store.Mutation{
		Op:        store.OpCartAdd,
		SessionID: "s",
		Snapshot:  domain.Snapshot{Items: []domain.LineItem{}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "publish storefront.cart.updated event")
}
