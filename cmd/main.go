package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/finals/internal/adapters/http/api"
	"github.com/okian/finals/internal/adapters/http/site"
	"github.com/okian/finals/internal/adapters/http/swagger"
	"github.com/okian/finals/internal/adapters/mcp"
	service "github.com/okian/finals/internal/app"
	"github.com/okian/finals/internal/config"
	"github.com/okian/finals/internal/domain/dataset"
	"github.com/okian/finals/internal/domain/narrate"
	"github.com/okian/finals/pkg/logger"
	"github.com/okian/finals/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

// version is advertised to MCP clients; set with -ldflags "-X main.version=...".
var version = mcp.DefaultVersion //nolint:gochecknoglobals // build-time stamp

func main() {
	os.Exit(run())
}

func run() int {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger is not configured yet.
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	handler, _, err := buildHandler(ctx, cfg, loggerInstance)
	if err != nil {
		loggerInstance.Error(ctx, "failed to build service", logger.Error(err))
		return 1
	}

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	// Wait for shutdown signal or a listener failure
	select {
	case <-ctx.Done():
	case err := <-serveErr:
		loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
		return 1
	}
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
		return 1
	}

	loggerInstance.Info(ctx, "server stopped")
	return 0
}

// buildHandler constructs the query service from the compiled-in dataset and
// mounts every route on a single handler.
func buildHandler(ctx context.Context, cfg *config.Config, log logger.Logger) (http.Handler, *service.Service, error) {
	locale, err := narrate.ParseLocale(cfg.Locale)
	if err != nil {
		return nil, nil, fmt.Errorf("parse locale: %w", err)
	}

	svc, err := service.New(ctx, dataset.Finals(),
		service.WithLogger(log.Named("service")),
		service.WithLocale(locale),
		service.WithDefaultEntity(cfg.DefaultEntity),
		service.WithDefaultYear(cfg.DefaultYear),
		service.WithMapTitle(cfg.MapTitle),
		service.WithColorScale(cfg.ColorScale),
	)
	if err != nil {
		return nil, nil, err
	}

	// HTTP mux and routes.
	mux := http.NewServeMux()

	// Dashboard page at /
	site.Register(ctx, mux)

	// API docs under /api-docs and /openapi.yaml
	swagger.Register(ctx, mux)

	// Business API routes with the service dependency.
	api.NewServer(svc, svc).Register(ctx, mux)

	if cfg.MCPEnabled {
		mcp.NewServer(svc,
			mcp.WithLogger(log.Named("mcp")),
			mcp.WithImplementation(mcp.DefaultName, version),
		).Register(ctx, mux, cfg.MCPPath)
	}

	return api.RequestIDMiddleware(mux), svc, nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		// Average GC pause over the process lifetime
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
