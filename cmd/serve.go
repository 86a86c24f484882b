package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/idlens/idlens/internal/cache"
	"github.com/idlens/idlens/internal/config"
	"github.com/idlens/idlens/internal/extract"
	"github.com/idlens/idlens/internal/gemini"
	"github.com/idlens/idlens/internal/handlers"
	"github.com/idlens/idlens/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the ID document extraction web server",
		Long: `Starts the idlens HTTP server.

The server accepts identification document images on POST /extract and
returns the structured fields extracted by the Gemini vision model.`,
		Example: `  # Start server on the configured port (default 8080)
  idlens serve

  # Start server on a custom port
  idlens serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if port != "" {
				cfg.Server.Port = port
			}

			task := extract.IDDocumentTask()
			if cfg.Server.TaskPath != "" {
				task, err = extract.LoadTaskFile(cfg.Server.TaskPath)
				if err != nil {
					return fmt.Errorf("failed to load extraction task: %w", err)
				}
				slog.Info("Loaded extraction task override", "path", cfg.Server.TaskPath, "fields", len(task.Schema.Properties))
			}

			client := gemini.New(cfg.Gemini)
			handler := handlers.New(client, task, cfg.Server.IndexPath)

			if cfg.Cache.Enabled {
				handler.SetCache(cache.NewRedisCache(
					cfg.Cache.Addr,
					cfg.Cache.Password,
					cfg.Cache.DB,
					cfg.Cache.TTL,
				))
				slog.Info("Redis extraction cache enabled", "addr", cfg.Cache.Addr, "ttl", cfg.Cache.TTL)
			}

			// Set up routes
			r := chi.NewRouter()
			r.Use(middleware.Recoverer)
			r.Use(middleware.Throttle(cfg.Server.ThrottleLimit))
			r.Use(middleware.Timeout(cfg.Server.RequestTimeout))
			r.Use(metrics.Middleware)

			r.Get("/", handler.HandleIndex)
			r.Post("/extract", handler.HandleExtract)
			r.Get("/api/extractions", handler.HandleExtractions)
			r.Get("/api/extractions/{id}", handler.HandleExtractionDetail)
			r.Handle("/metrics", promhttp.Handler())
			r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + cfg.Server.Port
			server := &http.Server{
				Addr:    addr,
				Handler: r,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Idlens extraction service available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides SERVER_PORT)")

	return cmd
}
