// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/glosa/internal/api"
	"github.com/starford/glosa/internal/inbox"
	"github.com/starford/glosa/internal/mcpserver"
)

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	// Initialize structured JSON logger.
	logger := newLogger(app.logOutput, cfg.App.LogLevel)
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("dictionary_url", cfg.Dictionary.BaseURL),
		slog.Int("group_size", cfg.Analysis.GroupSize),
		slog.String("inbox_path", cfg.Inbox.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	c, err := build(cfg, logger, true)
	if err != nil {
		return err
	}
	defer c.Close()

	h := api.NewHandler(c.notes, c.analyzer, c.resolver, c.images, logger)
	apiRouter := api.NewRouter(h, cfg.Auth.AuthEnabled(), cfg.Auth.Token, c.broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := c.db.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Import dropped files, then keep watching the inbox.
	if cfg.Inbox.Enabled() {
		if err := os.MkdirAll(cfg.Inbox.Path, 0o755); err != nil {
			return fmt.Errorf("create inbox dir: %w", err)
		}
		var an inbox.NoteAnalyzer
		if cfg.Inbox.AutoAnalyze {
			an = c.analyzer
		}
		importer := inbox.NewImporter(cfg.Inbox.Path, c.notes, c.db, an, logger)
		g.Go(func() error {
			if err := importer.Scan(gCtx); err != nil {
				logger.Warn("initial inbox scan failed", slog.String("error", err.Error()))
			}
			if err := importer.Watch(gCtx); err != nil {
				logger.Error("inbox watcher failed", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the inbox watcher stops with the server.
var errShutdown = errors.New("shutdown")

// RunMCP serves the MCP tools over stdio. Logs go to the configured output,
// which must not be stdout.
func RunMCP(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := newLogger(app.logOutput, app.config.App.LogLevel)
	slog.SetDefault(logger)

	c, err := build(app.config, logger, false)
	if err != nil {
		return err
	}
	defer c.Close()

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(c.notes, c.analyzer, c.resolver).ServeStdio()
}

// Lookup resolves word and writes the entry as indented JSON to out.
func Lookup(ctx context.Context, word string, out io.Writer, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := newLogger(app.logOutput, app.config.App.LogLevel)

	c, err := build(app.config, logger, false)
	if err != nil {
		return err
	}
	defer c.Close()

	res, err := c.resolver.Resolve(ctx, word)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Entry)
}

// Analyze runs the batch analysis of note id and writes the summary to out.
func Analyze(ctx context.Context, id string, words []string, out io.Writer, opts ...Option) error {
	noteID, err := strconv.ParseInt(id, 10, 64)
	if err != nil || noteID <= 0 {
		return fmt.Errorf("invalid note id %q", id)
	}

	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger := newLogger(app.logOutput, app.config.App.LogLevel)

	c, err := build(app.config, logger, false)
	if err != nil {
		return err
	}
	defer c.Close()

	report, err := c.analyzer.AnalyzeNote(ctx, noteID, words)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "%s\n", report.Message)
	return err
}
