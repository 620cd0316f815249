// Package main is the entry point for the resort API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/mtbuller-resort/internal/catalog"
	"github.com/pkordes/mtbuller-resort/internal/config"
	"github.com/pkordes/mtbuller-resort/internal/handler"
	"github.com/pkordes/mtbuller-resort/internal/middleware"
	"github.com/pkordes/mtbuller-resort/internal/repo"
	"github.com/pkordes/mtbuller-resort/internal/service"
	"github.com/pkordes/mtbuller-resort/migrations"
	"github.com/pkordes/mtbuller-resort/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// The default logger writes plain text to stderr until ours is set.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Catalog ----------------------------------------------------------
	// The catalog lives in memory for the life of the process; only package
	// snapshots are persisted.
	resort := catalog.New()
	if err := catalog.Seed(resort); err != nil {
		slog.Error("failed to seed inventory", "error", err)
		os.Exit(1)
	}
	slog.Info("inventory seeded", "accommodations", len(resort.ListAccommodations()))

	// --- Snapshot storage -------------------------------------------------
	snapshots, closeStore, err := openSnapshotRepo(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open snapshot storage", "backend", cfg.SnapshotBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	persistence := service.NewPersistenceService(resort, snapshots, logger)
	export := service.NewExportService(resort)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order:
	// RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		//nolint:errcheck
		w.Write(spec.OpenAPI)
	})

	srv := handler.NewServer(resort, resort, resort, persistence, export).
		WithDefaultLoadMode(cfg.LoadMode)
	handler.HandlerFromMux(srv, r)

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr, "snapshot_backend", cfg.SnapshotBackend)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// openSnapshotRepo builds the configured snapshot backend. For Postgres it
// connects, applies pending migrations and returns a close func for the pool.
func openSnapshotRepo(ctx context.Context, cfg config.Config) (repo.SnapshotRepo, func(), error) {
	if cfg.SnapshotBackend != config.BackendPostgres {
		slog.Info("using file snapshot storage", "dir", cfg.DataDir)
		return repo.NewFileSnapshotRepo(cfg.DataDir), func() {}, nil
	}

	// pgxpool.New does not open connections immediately; Ping does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	slog.Info("database connection established")

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	provider, err := migrations.NewProvider(db)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("apply migrations: %w", err)
	}
	slog.Info("migrations applied", "count", len(results))

	return repo.NewPostgresSnapshotRepo(pool), pool.Close, nil
}
