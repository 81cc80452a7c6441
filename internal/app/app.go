package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"traderoutes/internal/config"
	"traderoutes/internal/dashboard"
	"traderoutes/internal/dataset"
	apierrors "traderoutes/internal/errors"
	"traderoutes/internal/exporter"
	"traderoutes/internal/infrastructure"
	customMiddleware "traderoutes/internal/middleware"
	"traderoutes/internal/services"
	handlers "traderoutes/internal/transport/http"
	ws "traderoutes/internal/websocket"
	"traderoutes/pkg/contracts"
	"traderoutes/pkg/contracts/domain"
)

// Application represents the main application container
type Application struct {
	Config           *config.Config
	Router           *chi.Mux
	Server           *http.Server
	Dataset          *dataset.Dataset
	WebSocketHub     *ws.Hub
	DashboardService *services.DashboardService
	HealthService    *services.HealthService
	ErrorHandler     *apierrors.ErrorHandler
	Logger           *slog.Logger
	OTelProviders    *infrastructure.OTelProviders
	Metrics          *infrastructure.DashboardMetrics
	FrontendFS       fs.FS // optional static frontend

	serveErr chan error
}

// NewApplication loads the configuration, initialises the global logger and
// builds the application. frontendFS may be nil.
func NewApplication(ctx context.Context, frontendFS fs.FS) (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(ctx, cfg, logger, frontendFS)
}

// New wires every component for cfg. The dataset is loaded here, so a
// missing or malformed input file fails construction.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, frontendFS fs.FS) (*Application, error) {
	logger.InfoContext(ctx, "Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version))

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFrom(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateDashboardMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create dashboard metrics: %w", err)
	}
	if err := infrastructure.RegisterRuntimeMetrics(otelProviders.Meter); err != nil {
		return nil, fmt.Errorf("failed to register runtime metrics: %w", err)
	}

	data, err := dataset.Load(ctx, dataset.Source{
		TradeFile:    cfg.Data.TradeFile,
		BoundaryFile: cfg.Data.BoundaryFile,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	a := &Application{
		Config:        cfg,
		Dataset:       data,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		ErrorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Development),
		FrontendFS:    frontendFS,
		serveErr:      make(chan error, 1),
	}

	a.initializeServices()
	a.setupRouter()
	a.createServer()
	return a, nil
}

func (a *Application) initializeServices() {
	a.DashboardService = services.NewDashboardService(services.DashboardServiceConfig{
		Dataset:           a.Dataset,
		Settings:          MapSettingsFrom(a.Config.Map),
		Exporter:          exporter.New(exporter.Options{BOMPrefix: a.Config.Data.BOMPrefix}),
		SimplifyTolerance: a.Config.Data.SimplifyTolerance,
		Tracer:            a.OTelProviders.Tracer,
		Metrics:           a.Metrics,
		Logger:            a.Logger,
	})

	a.WebSocketHub = ws.NewHub(a.Logger, a.Metrics)
	a.HealthService = services.NewHealthService(contracts.Version, a.Dataset, a.WebSocketHub, a.Logger)
}

// MapSettingsFrom converts the map configuration section.
func MapSettingsFrom(cfg config.MapConfig) dashboard.MapSettings {
	return dashboard.MapSettings{
		DefaultLatitude:  cfg.DefaultLatitude,
		DefaultLongitude: cfg.DefaultLongitude,
		Zoom:             cfg.Zoom,
		Pitch:            cfg.Pitch,
		Marker: domain.MarkerStyle{
			RadiusMeters: cfg.MarkerRadius,
			Color:        cfg.MarkerRGB(),
		},
		ColorScale: cfg.ColorScale,
	}
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	// Minimal middleware only: the rest wraps the ResponseWriter and breaks Hijack
	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)

	validator := customMiddleware.NewValidationMiddleware(a.Logger, a.ErrorHandler)
	wsHandler := ws.NewHandler(a.WebSocketHub, a.DashboardService, validator,
		a.Config.WebSocket, a.Config.Security.AllowedOrigins, a.ErrorHandler, a.Logger)
	r.With(customMiddleware.WebSocketTraceMiddleware(a.Logger)).Handle("/ws", wsHandler)

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders.Tracer, a.Metrics, a.Logger).Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.Logger))
		r.Use(customMiddleware.SecurityHeaders)
		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(a.getCORSConfig()))
		}
		if a.Config.Security.RateLimit.Enabled {
			r.Use(customMiddleware.NewRateLimiter(
				a.Config.Security.RateLimit.RPS,
				a.Config.Security.RateLimit.Burst,
				a.Logger,
			).Handler)
		}
		r.Use(customMiddleware.Timeout(a.Config.Server.RequestTimeout))

		a.setupAPIRoutes(r)
		if a.FrontendFS != nil {
			r.Handle("/*", http.FileServer(http.FS(a.FrontendFS)))
		}
	})

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Compress(5, "application/json", "application/geo+json", "text/csv"))

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.Version)

		dashboardHandler := handlers.NewDashboardHandler(a.DashboardService, a.Logger, a.ErrorHandler)
		r.Mount("/dashboard", dashboardHandler.Routes())
	})
}

func (a *Application) getCORSConfig() customMiddleware.CORSConfig {
	return customMiddleware.CORSConfig{
		AllowedOrigins: a.Config.Security.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			customMiddleware.RequestIDHeader,
		},
		MaxAge: 300,
		Logger: a.Logger,
	}
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Server.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts the hub and the HTTP server in the background.
func (a *Application) Start(ctx context.Context) {
	a.Logger.InfoContext(ctx, "Starting application",
		slog.String("address", a.Server.Addr),
		slog.Int("records", a.Dataset.RecordCount()),
		slog.Int("boundaries", a.Dataset.BoundaryCount()))

	a.WebSocketHub.Start()

	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.serveErr <- err
		}
	}()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.WebSocketHub.Shutdown(shutdownCtx, "server shutting down"); err != nil {
		errs = append(errs, fmt.Errorf("websocket hub shutdown: %w", err))
	}
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown: %w", err))
	}
	if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
		a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return nil
}

// Run serves until ctx is cancelled, SIGINT or SIGTERM arrives, or the
// server fails, then shuts down.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.Start(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Received shutdown signal")
	case serveErr = <-a.serveErr:
		a.Logger.Error("Server error", slog.String("error", serveErr.Error()))
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), a.Config.Server.ShutdownTimeout+time.Second)
	defer cancel()
	return errors.Join(serveErr, a.Stop(stopCtx))
}
