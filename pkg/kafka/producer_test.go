package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/pkg/logger"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

// --- Event ---

func TestNewEvent_Fields(t *testing.T) {
	type cartData struct {
		Items int `json:"items"`
	}

	event, err := NewEvent("storefront.cart.updated", "sess-1", "session", "storefront", cartData{Items: 3})
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID)
	assert.Equal(t, "storefront.cart.updated", event.EventType)
	assert.Equal(t, "sess-1", event.AggregateID)
	assert.Equal(t, "session", event.AggregateType)
	assert.Equal(t, 1, event.Version)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, 2*time.Second)

	var got cartData
	require.NoError(t, event.Decode(&got))
	assert.Equal(t, 3, got.Items)
}

func TestNewEvent_Validation(t *testing.T) {
	_, err := NewEvent("x", "a", "t", "s", make(chan int))
	require.Error(t, err)

	_, err = NewEvent("", "a", "t", "s", nil)
	require.Error(t, err)

	_, err = NewEvent("x", "", "t", "s", nil)
	require.Error(t, err)
}

func TestNewEvent_Options(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("TRT", 3*3600))
	event, err := NewEvent("storefront.cart.cleared", "sess-3", "session", "storefront", nil,
		WithCorrelation("corr-1"),
		WithCorrelation(""),
		WithMeta("op", "cart.clear"),
		At(at),
	)
	require.NoError(t, err)

	assert.Equal(t, "corr-1", event.CorrelationID)
	assert.Equal(t, "cart.clear", event.Metadata["op"])
	assert.Equal(t, at.UTC(), event.Timestamp)
	assert.Equal(t, time.UTC, event.Timestamp.Location())
}

func TestParseEvent(t *testing.T) {
	original, err := NewEvent("storefront.favorites.updated", "sess-2", "session", "storefront", []string{"p-1"},
		WithCorrelation("corr-1"), WithMeta("op", "favorites.toggle"))
	require.NoError(t, err)

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	restored, err := ParseEvent(raw)
	require.NoError(t, err)
	assert.Equal(t, original.EventID, restored.EventID)
	assert.Equal(t, "corr-1", restored.CorrelationID)
	assert.Equal(t, "favorites.toggle", restored.Metadata["op"])

	var ids []string
	require.NoError(t, restored.Decode(&ids))
	assert.Equal(t, []string{"p-1"}, ids)
}

func TestParseEvent_Invalid(t *testing.T) {
	_, err := ParseEvent([]byte(`{broken`))
	require.Error(t, err)

	_, err = ParseEvent([]byte(`{"event_type":"x"}`))
	require.Error(t, err)
}

// --- Topic ---

func TestTopic(t *testing.T) {
	assert.Equal(t, "storefront.cart.updated", Topic("cart", "updated"))
	assert.Equal(t, "storefront.favorites.updated", Topic("favorites", "updated"))
}

// --- HeaderCarrier ---

func TestHeaderCarrier(t *testing.T) {
	headers := []kafka.Header{{Key: "existing", Value: []byte("v1")}}
	c := NewHeaderCarrier(&headers)

	assert.Equal(t, "v1", c.Get("existing"))
	assert.Empty(t, c.Get("missing"))

	c.Set("existing", "v2")
	c.Set("traceparent", "00-abc-def-01")
	assert.Equal(t, "v2", c.Get("existing"))
	assert.ElementsMatch(t, []string{"existing", "traceparent"}, c.Keys())
	assert.Len(t, headers, 2)
}

// --- Producer ---

func TestDefaultProducerConfig(t *testing.T) {
	cfg := DefaultProducerConfig([]string{"broker:9092"})
	assert.Equal(t, []string{"broker:9092"}, cfg.Brokers)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.True(t, cfg.Async)
}

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w, logger: logger.Discard()}

	event, err := NewEvent("storefront.cart.updated", "sess-1", "session", "storefront", map[string]int{"items": 1},
		WithCorrelation("corr-9"))
	require.NoError(t, err)

	topic := Topic("cart", "updated")
	before := testutil.ToFloat64(producerMessagesPublished.WithLabelValues(topic))

	require.NoError(t, p.Publish(context.Background(), topic, event))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, topic, msg.Topic)
	assert.Equal(t, []byte("sess-1"), msg.Key)

	carrier := NewHeaderCarrier(&msg.Headers)
	assert.Equal(t, "storefront.cart.updated", carrier.Get("event_type"))
	assert.Equal(t, "corr-9", carrier.Get("correlation_id"))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, event.EventID, decoded.EventID)

	assert.Equal(t, before+1, testutil.ToFloat64(producerMessagesPublished.WithLabelValues(topic)))
}

func TestProducer_PublishError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := &Producer{writer: w, logger: logger.Discard()}

	event, err := NewEvent("e", "a", "t", "s", nil)
	require.NoError(t, err)

	err = p.Publish(context.Background(), "storefront.test.failed", event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
	assert.Equal(t, float64(1), testutil.ToFloat64(producerPublishErrors.WithLabelValues("storefront.test.failed")))
}

func TestProducer_Close(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w, logger: logger.Discard()}
	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewProducer_NoConnectUntilPublish(t *testing.T) {
	p := NewProducer(DefaultProducerConfig([]string{"localhost:19092"}), nil)
	require.NotNil(t, p)
	assert.NoError(t, p.Close())
}

func TestPingBrokers_NoBrokers(t *testing.T) {
	err := PingBrokers(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no brokers configured")
}
