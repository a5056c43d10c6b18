// cmd/api is the activities API entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Shivanand-hulikatti/activities-board/internal/config"
	"github.com/Shivanand-hulikatti/activities-board/internal/database"
	"github.com/Shivanand-hulikatti/activities-board/internal/handler"
	"github.com/Shivanand-hulikatti/activities-board/internal/logging"
	"github.com/Shivanand-hulikatti/activities-board/internal/metrics"
	"github.com/Shivanand-hulikatti/activities-board/internal/model"
	"github.com/Shivanand-hulikatti/activities-board/internal/repository"
	"github.com/Shivanand-hulikatti/activities-board/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	cfg, err := config.LoadAPI()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.Log, os.Stdout)
	if err != nil {
		return err
	}
	log = logging.Component(log, "api")

	// ── 1. Open storage ──────────────────────────────────────────────────
	seed, err := repository.LoadSeed(cfg.SeedFile)
	if err != nil {
		return err
	}
	repo, err := openRepository(ctx, cfg, seed, log)
	if err != nil {
		return err
	}
	defer repo.Close()
	log.Info().Str("store", cfg.Store).Int("activities", len(seed)).Msg("storage ready")

	// ── 2. Wire up layers ────────────────────────────────────────────────
	svc := service.NewActivityService(repo)
	activityHandler := handler.NewActivityHandler(svc, log)
	m := metrics.New("activities_api")

	// ── 3. Build the router ──────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(m.Middleware)
	r.Use(handler.Logger(log))
	r.Use(handler.CORS)

	r.Get("/", handler.RedirectTo(cfg.BoardURL))
	r.Get("/health", handler.HealthCheck)
	r.Handle("/metrics", m.Handler())
	r.Mount("/activities", activityHandler.Routes())

	// ── 4. Start server with graceful shutdown ───────────────────────────
	return serve(log, cfg.Port, r)
}

func openRepository(ctx context.Context, cfg *config.APIConfig, seed model.Catalog, log zerolog.Logger) (repository.ActivityRepository, error) {
	switch cfg.Store {
	case config.StorePostgres:
		pool, err := database.NewPool(ctx, cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		log.Info().Str("host", cfg.Database.Host).Msg("connected to PostgreSQL")
		repo, err := repository.NewPostgresRepository(ctx, pool, seed)
		if err != nil {
			pool.Close()
			return nil, err
		}
		return repo, nil
	case config.StoreSQLite:
		return repository.NewSQLiteRepository(ctx, cfg.SQLitePath, seed)
	default:
		return repository.NewMemoryRepository(seed), nil
	}
}

func serve(log zerolog.Logger, port string, h http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-quit:
	}

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
