package app

import (
	"context"
	"log/slog"
	"net/http"

	"asset-dashboard-api/internal/cache"
	"asset-dashboard-api/internal/config"
	"asset-dashboard-api/internal/handlers"
	"asset-dashboard-api/internal/models"
	"asset-dashboard-api/internal/server"
	"asset-dashboard-api/internal/services"

	"github.com/prometheus/client_golang/prometheus"
)

// App is the fully wired dashboard API.
type App struct {
	config *config.Config
	caches *cache.Manager
	server *server.Server
	logger *slog.Logger
}

// New wires the record API client, fetcher, caches, services and HTTP server.
// Metrics are registered on reg and served from gatherer.
func New(cfg *config.Config, reg prometheus.Registerer, gatherer prometheus.Gatherer, logger *slog.Logger) *App {
	metrics := services.NewPrometheusMetrics(reg)

	var breaker services.CircuitBreakerInterface
	if cfg.Upstream.CircuitBreaker.Enabled {
		breaker = services.NewCircuitBreaker(services.CircuitBreakerConfig{
			MaxFailures:     cfg.Upstream.CircuitBreaker.MaxFailures,
			ResetTimeout:    cfg.Upstream.CircuitBreaker.ResetTimeout,
			HalfOpenMaxSucc: 1,

			OnStateChange: func(from, to models.CircuitBreakerState) {
				logger.Warn("Record API circuit breaker state changed",
					"from", from.String(),
					"to", to.String(),
				)
			},
		})
	}

	client := services.NewRecordSourceClient(&cfg.Upstream, breaker, metrics, logger)
	fetcher := services.NewCollectionFetcher(client, cfg.Fetch, metrics, logger)

	statsCache := cache.NewTTLCache[any](cfg.Cache.TTL)
	recordCache := cache.NewTTLCache[[]models.Record](cfg.Cache.TTL)

	caches := cache.NewManager()
	caches.Register(statsCache)
	caches.Register(recordCache)

	statsService := services.NewStatsService(fetcher, statsCache, cfg.Fetch, metrics, logger)
	assetService := services.NewAssetService(client, fetcher, recordCache, cfg.Fetch, metrics, logger)

	srv := server.NewServer(cfg, server.Handlers{
		Health: handlers.NewHealthCheckHandler(),
		Stats:  handlers.NewStatsHandler(statsService),
		Assets: handlers.NewAssetHandler(assetService),
	}, reg, gatherer, logger)

	return &App{
		config: cfg,
		caches: caches,
		server: srv,
		logger: logger,
	}
}

// Handler returns the HTTP handler without starting a listener.
func (a *App) Handler() http.Handler {
	return a.server.Handler()
}

// Run serves requests and sweeps expired cache entries until ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.caches.StartCleanup(a.config.Cache.CleanupInterval)
	defer a.caches.Stop()

	a.logger.Info("Cache cleanup started",
		"ttl", a.config.Cache.TTL,
		"interval", a.config.Cache.CleanupInterval,
	)

	return a.server.Start(ctx)
}
