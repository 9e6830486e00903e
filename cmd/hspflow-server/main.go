// Command hspflow-server provides a REST API for decoding alignment records.
//
// Usage:
//
//	hspflow-server [options]
//
// Options:
//
//	-config   YAML configuration file
//	-port     Port to listen on (overrides the configuration)
//	-host     Host to bind to (overrides the configuration)
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aria-lang/hspflow/api/handlers"
	"github.com/aria-lang/hspflow/api/middleware"
	"github.com/aria-lang/hspflow/internal/config"
	"github.com/aria-lang/hspflow/pkg/hspflow"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	port := flag.Int("port", 0, "Port to listen on")
	host := flag.String("host", "", "Host to bind to")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}
	if *host != "" {
		cfg.Server.Host = *host
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := cfg.Log.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      newRouter(cfg, logger),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Server.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan struct{})
	quit := make(chan os.Signal, 1)

	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("server is shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("could not gracefully shutdown", slog.String("error", err.Error()))
			os.Exit(1)
		}
		close(done)
	}()

	logger.Info("hspflow API server starting",
		slog.String("addr", "http://"+server.Addr),
		slog.String("version", hspflow.Version()),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("could not listen", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		os.Exit(1)
	}

	<-done
	logger.Info("server stopped")
}

func newRouter(cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Metrics)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/hsp/analyze", handlers.AnalyzeHSPHandler)
		r.Post("/hit/prepare", handlers.PrepareHitHandler)
		r.Post("/region", handlers.RegionHandler)
	})

	return r
}
