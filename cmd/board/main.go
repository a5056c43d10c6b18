// cmd/board is the activities board entry point. It serves the signup board
// to browsers and talks to the activities API on their behalf.
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

	"github.com/Shivanand-hulikatti/activities-board/internal/apiclient"
	"github.com/Shivanand-hulikatti/activities-board/internal/board"
	"github.com/Shivanand-hulikatti/activities-board/internal/config"
	"github.com/Shivanand-hulikatti/activities-board/internal/handler"
	"github.com/Shivanand-hulikatti/activities-board/internal/logging"
	"github.com/Shivanand-hulikatti/activities-board/internal/metrics"
	"github.com/Shivanand-hulikatti/activities-board/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "board: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadBoard()
	if err != nil {
		return err
	}
	root, err := logging.New(cfg.Log, os.Stdout)
	if err != nil {
		return err
	}
	log := logging.Component(root, "board")

	// ── 1. Wire up the board ─────────────────────────────────────────────
	m := metrics.New("activities_board")
	client := apiclient.New(cfg.APIURL, apiclient.WithHTTPClient(&http.Client{Timeout: cfg.APITimeout}))
	boardLog := logging.Component(root, "board-session")
	sessions := board.NewSessions(func() *board.Board {
		return board.New(client, board.WithLogger(boardLog), board.WithRecorder(m))
	}, cfg.SessionTTL, cfg.MaxSessions)

	srv, err := web.NewServer(sessions, log, cfg.SecureCookie)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	// ── 2. Build the router ──────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(m.Middleware)
	r.Use(handler.Logger(log))

	r.Get("/health", handler.HealthCheck)
	r.Handle("/metrics", m.Handler())
	r.Mount("/", srv.Routes())

	// ── 3. Start server with graceful shutdown ───────────────────────────
	log.Info().Str("api", cfg.APIURL).Msg("board ready")
	return serve(log, cfg.Port, cfg.APITimeout+15*time.Second, r)
}

func serve(log zerolog.Logger, port string, writeTimeout time.Duration, h http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: writeTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("board listening")
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
