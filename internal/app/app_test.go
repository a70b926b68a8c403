package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/config"
	"github.com/utafrali/storefront/pkg/logger"
	"github.com/utafrali/storefront/pkg/middleware"
	"github.com/utafrali/storefront/pkg/tracing"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadFrom(map[string]string{
		"STORAGE_DRIVER":       config.DriverMemory,
		"STOREFRONT_HTTP_PORT": "18010",
	})
	require.NoError(t, err)
	return cfg
}

func TestNewApp_MemoryDriver(t *testing.T) {
	a, err := NewApp(memoryConfig(t), logger.Discard())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/storefront/cart/items",
		strings.NewReader(`{"product":{"id":"p1","name":"Widget","price":{"amount":10,"currency":"TRY"}},"quantity":3}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionIDHeader, "s1")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec = httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewApp_CatalogLookupWithoutSummary(t *testing.T) {
	a, err := NewApp(memoryConfig(t), logger.Discard())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/storefront/cart/items",
		strings.NewReader(`{"product_id":"p1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionIDHeader, "s1")
	rec := httptest.NewRecorder()
	a.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNewApp_RedisUnreachable(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{
		"STORAGE_DRIVER": config.DriverRedis,
		"REDIS_HOST":     "127.0.0.1",
		"REDIS_PORT":     "1",
	})
	require.NoError(t, err)

	tracerStopped := false
	orig := initTracer
	initTracer = func(context.Context, tracing.Config) (func(context.Context) error, error) {
		return func(context.Context) error {
			tracerStopped = true
			return nil
		}, nil
	}
	t.Cleanup(func() { initTracer = orig })

	_, err = NewApp(cfg, logger.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect to redis")
	assert.True(t, tracerStopped, "tracer is shut down when startup fails")
}

func TestRun_StopsOnCancel(t *testing.T) {
	a, err := NewApp(memoryConfig(t), logger.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
