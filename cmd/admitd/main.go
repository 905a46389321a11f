package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/okian/admitscore/internal/adapters/http/api"
	"github.com/okian/admitscore/internal/adapters/loader"
	"github.com/okian/admitscore/internal/adapters/repository"
	app "github.com/okian/admitscore/internal/app"
	"github.com/okian/admitscore/internal/config"
	"github.com/okian/admitscore/pkg/logger"
	"github.com/okian/admitscore/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 30 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "admitd:", err)
		os.Exit(1)
	}
}

func run() error {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if err := logger.SetFormat(cfg.LogFormat); err != nil {
		return err
	}
	if err := logger.Init(); err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc, closeCatalog, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCatalog()
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(svc).Routes(),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
		}
	}
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}
	if err := svc.Stop(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "service shutdown failed", logger.Error(err))
	}
	log.Info(shutdownCtx, "server stopped")
	return nil
}

// buildService loads the catalog and wires the configured result store.
func buildService(ctx context.Context, cfg *config.Config) (*app.Service, func(), error) {
	cat, err := loader.Load(ctx, loader.Files{
		Conditions: cfg.ConditionsFile,
		Tables:     cfg.TablesFile,
		Cutoffs:    cfg.CutoffsFile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}
	store, err := openStore(ctx, cfg)
	if err != nil {
		_ = cat.Close()
		return nil, nil, err
	}
	maxUniversities := cfg.MaxUniversitiesPerRequest
	if maxUniversities == 0 {
		maxUniversities = math.MaxInt
	}
	svc := app.New(cat,
		app.WithLogger(logger.Get().Named("service")),
		app.WithStore(store),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithQueueSize(cfg.QueueSize),
		app.WithDedupeSize(cfg.DedupeSize),
		app.WithParallelism(cfg.BatchParallelism),
		app.WithMaxUniversities(maxUniversities),
	)
	return svc, func() { _ = cat.Close() }, nil
}

func openStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch strings.ToLower(cfg.ResultStore) {
	case config.StoreSQLite:
		s, err := repository.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open result store: %w", err)
		}
		return s, nil
	default:
		return repository.NewMemoryStore(), nil
	}
}

// startSystemMetricsUpdater refreshes process metrics until ctx ends.
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

func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
