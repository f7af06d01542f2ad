package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/AI-Engineer2025/Masterblog-API/internal/adapters/http/api"
	"github.com/AI-Engineer2025/Masterblog-API/internal/adapters/http/site"
	"github.com/AI-Engineer2025/Masterblog-API/internal/adapters/http/stream"
	"github.com/AI-Engineer2025/Masterblog-API/internal/adapters/http/swagger"
	app "github.com/AI-Engineer2025/Masterblog-API/internal/app"
	"github.com/AI-Engineer2025/Masterblog-API/internal/config"
	"github.com/AI-Engineer2025/Masterblog-API/internal/domain/seed"
	"github.com/AI-Engineer2025/Masterblog-API/pkg/logger"
	"github.com/AI-Engineer2025/Masterblog-API/pkg/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	serviceMetricsInterval    = 5 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() { _ = logger.Sync() }()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Load the initial posts, either the built-ins or a seed file.
	seedPosts := seed.Defaults()
	opts := []app.Option{
		app.WithLogger(loggerInstance),
		app.WithQueueSize(cfg.QueueSize),
	}
	if cfg.SeedFile != "" {
		seedPosts, err = seed.FromFile(cfg.SeedFile)
		if err != nil {
			os.Stderr.WriteString("failed to load seed file: " + err.Error() + "\n")
			return
		}
		loggerInstance.Info(ctx, "loaded seed posts from file",
			logger.String("path", cfg.SeedFile),
			logger.Int("posts", len(seedPosts)),
		)
		opts = append(opts, app.WithSeedSource(cfg.SeedFile))
	}
	opts = append(opts, app.WithSeedPosts(seedPosts))

	// Create and start the service with configuration options
	svc := app.New(opts...)
	if err := svc.Start(ctx); err != nil {
		os.Stderr.WriteString("failed to start service: " + err.Error() + "\n")
		return
	}
	defer svc.Stop()

	// Fan change events out to WebSocket subscribers.
	hub := stream.NewHub(svc)
	go hub.Run(ctx)

	// Re-apply the log level whenever the config file changes.
	if path := os.Getenv(config.EnvConfigFile); path != "" {
		go func() {
			err := config.Watch(ctx, path, func(next *config.Config) {
				if err := logger.SetLevelString(next.LogLevel); err != nil {
					loggerInstance.Warn(ctx, "invalid log_level in reloaded config", logger.String("log_level", next.LogLevel), logger.Error(err))
				}
			})
			if err != nil {
				loggerInstance.Warn(ctx, "config watcher stopped", logger.Error(err))
			}
		}()
	}

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	// Start service metrics updater
	go startServiceMetricsUpdater(ctx, svc)

	// HTTP router and routes.
	r := mux.NewRouter()

	// Register business API routes with the service dependency.
	apiServer := api.NewServer(svc, svc, hub)
	apiServer.Register(r)

	// Live change feed over WebSocket.
	r.Handle("/ws/stream", hub).Methods(http.MethodGet)

	// Register API documentation under /api-docs
	swagger.Register(ctx, r)

	// Dashboard page at / with its static assets.
	site.Register(ctx, r)

	// Prometheus metrics from our own registry, which carries no
	// default Go collectors.
	r.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{})).Methods(http.MethodGet)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	// Start the HTTP server
	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			os.Stderr.WriteString("HTTP server failed: " + err.Error() + "\n")
			return
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// startServiceMetricsUpdater starts a background goroutine that refreshes
// the service gauges between scrapes.
func startServiceMetricsUpdater(ctx context.Context, svc *app.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// GetStats refreshes the queue and post gauges as a side effect.
			_ = svc.GetStats()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	// Update memory usage
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	// Update goroutine count
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	// Update GC pause time
	if m.NumGC > 0 {
		// Calculate average GC pause time
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
