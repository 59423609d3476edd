package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"asset-dashboard-api/internal/config"
	"asset-dashboard-api/internal/handlers"
	"asset-dashboard-api/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 30 * time.Second

// Handlers groups the HTTP handlers mounted by the server.
type Handlers struct {
	Health *handlers.HealthCheckHandler
	Stats  *handlers.StatsHandler
	Assets *handlers.AssetHandler
}

type Server struct {
	config      *config.Config
	router      *echo.Echo
	rateLimiter *middleware.RateLimiter
	logger      *slog.Logger
}

// NewServer builds the echo router. API errors are counted on reg and
// /metrics serves whatever gatherer collects.
func NewServer(
	cfg *config.Config,
	h Handlers,
	reg prometheus.Registerer,
	gatherer prometheus.Gatherer,
	logger *slog.Logger,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.NewErrorHandler(reg).Handle

	s := &Server{
		config:      cfg,
		router:      e,
		rateLimiter: middleware.NewRateLimiter(cfg.RateLimit),
		logger:      logger,
	}

	s.setupMiddleware()
	s.setupRoutes(h, gatherer)
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID())
	s.router.Use(middleware.PanicRecovery())
	s.router.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			s.logger.LogAttrs(c.Request().Context(), level, "request",
				slog.String("trace_id", handlers.GetTraceID(c)),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Int64("latency_ms", v.Latency.Milliseconds()),
			)
			return nil
		},
	}))
	s.router.Use(middleware.SecurityHeaders())
	s.router.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  s.config.Server.CORSAllowOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderAccept, middleware.TraceIDHeader},
		ExposeHeaders: []string{middleware.TraceIDHeader},
	}))
}

func (s *Server) setupRoutes(h Handlers, gatherer prometheus.Gatherer) {
	s.router.GET("/health", h.Health.HealthCheck)
	s.router.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := s.router.Group("/api", s.rateLimiter.Middleware())

	stats := api.Group("/stats")
	stats.GET("/summary", h.Stats.GetSummary)
	stats.GET("/srb-amount-distribution", h.Stats.GetAmountDistribution)
	stats.GET("/asset-by-category", h.Stats.GetCategoryBreakdown)

	api.GET("/assets", h.Assets.ListAssets)
	api.GET("/buildings", h.Assets.ListBuildings)
	api.GET("/collections/:collection", h.Assets.ListCollection)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	s.rateLimiter.StartCleanup(time.Minute)
	defer s.rateLimiter.Stop()

	server := &http.Server{
		Addr:         s.config.Server.Address(),
		Handler:      s.router,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr <- server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("Server starting", "address", server.Addr, "environment", s.config.Server.Environment)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-shutdownErr
}
