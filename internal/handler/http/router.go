package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

// RouterConfig carries the optional parts of the middleware chain.
type RouterConfig struct {
	ServiceName string
	PprofCIDRs  []string
	CORS        middleware.CORSConfig
	// RateLimit is applied to the API routes when RPS > 0.
	RateLimit middleware.RateLimitConfig
}

// NewRouter creates a chi router with every storefront route registered.
func NewRouter(
	svc *service.StorefrontService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	cfg RouterConfig,
) http.Handler {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "storefront"
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))
	r.Use(middleware.Tracing(cfg.ServiceName))
	r.Use(middleware.RequestLogger(logger))

	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	cartHandler := NewCartHandler(svc, logger)
	favoritesHandler := NewFavoritesHandler(svc, logger)

	r.Route("/api/v1/storefront", func(r chi.Router) {
		if cfg.RateLimit.RPS > 0 {
			r.Use(middleware.RateLimit(cfg.RateLimit, logger))
		}
		r.Use(ContentTypeJSON)
		r.Use(SessionIDFromHeader)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}", cartHandler.UpdateQuantity)
			r.Delete("/items/{productId}", cartHandler.RemoveItem)
			r.Post("/items/{productId}/selection/toggle", cartHandler.ToggleSelection)
			r.Put("/selection", cartHandler.SetAllSelected)

			r.Put("/panel", cartHandler.SetPanel)
			r.Post("/panel/toggle", cartHandler.TogglePanel)
		})

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", favoritesHandler.GetFavorites)
			r.Delete("/", favoritesHandler.ClearFavorites)

			r.Put("/{productId}", favoritesHandler.AddFavorite)
			r.Delete("/{productId}", favoritesHandler.RemoveFavorite)
			r.Post("/{productId}/toggle", favoritesHandler.ToggleFavorite)
		})
	})

	return r
}
