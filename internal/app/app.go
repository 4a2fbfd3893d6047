// Package app wires together all dependencies and runs the catalog
// service.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/glaucia86/mercado-libre-clone/internal/catalog"
	"github.com/glaucia86/mercado-libre-clone/internal/config"
	"github.com/glaucia86/mercado-libre-clone/internal/engine"
	handler "github.com/glaucia86/mercado-libre-clone/internal/handler/http"
	"github.com/glaucia86/mercado-libre-clone/internal/service"
	"github.com/glaucia86/mercado-libre-clone/pkg/health"
	"github.com/glaucia86/mercado-libre-clone/pkg/tracing"
)

// App holds the running components of the catalog service.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all
// dependencies. The dataset is loaded eagerly; a malformed dataset fails
// startup rather than serving an empty catalog.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "catalog",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     1.0,
		Enabled:        cfg.OTLPEndpoint != "",
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Load the product dataset into the in-memory catalog.
	cat, err := catalog.LoadFile(cfg.DatasetPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded",
		slog.String("path", cfg.DatasetPath),
		slog.Int("products", cat.ItemCount()),
		slog.Int("sellers", cat.SellerCount()),
		slog.Int("payment_methods", cat.PaymentMethodCount()),
	)

	// Build the query engine and service layer.
	eng := engine.New(cat, logger)
	catalogService := service.NewCatalogService(cat, eng, logger)

	// Health checks.
	healthHandler := health.NewHandler("catalog")
	healthHandler.Register("catalog", func(ctx context.Context) error {
		if !cat.IsLoaded() {
			return fmt.Errorf("catalog dataset not loaded")
		}
		return nil
	})

	// HTTP router.
	router := handler.NewRouter(catalogService, healthHandler, logger, handler.RouterConfig{
		Environment:    cfg.Environment,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server, blocking until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops all components.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	// Graceful HTTP server shutdown with a 10-second deadline.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	// Flush pending trace spans.
	if err := a.tracerShutdown(shutdownCtx); err != nil {
		a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
