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

	"github.com/getsentry/sentry-go"

	"github.com/Belphemur/ShowFinder/internal/cache"
	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/metrics"
	"github.com/Belphemur/ShowFinder/internal/render"
	"github.com/Belphemur/ShowFinder/internal/services"
	"github.com/Belphemur/ShowFinder/internal/session"
	"github.com/Belphemur/ShowFinder/internal/web"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.GetConfig()
	logger := config.GetLogger()

	logger.Info().
		Str("api_base_url", cfg.APIBaseURL).
		Str("proxy_connection_string", cfg.ProxyConnectionString).
		Str("store_provider", cfg.Store.Provider).
		Int("server_port", cfg.Server.Port).
		Str("server_address", cfg.Server.Address).
		Msg("Application started with configuration")

	var reporter services.ErrorReporter
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			logger.Error().Err(err).Msg("Failed to initialize Sentry, errors will only be logged")
		} else {
			reporter = services.SentryReporter{}
			defer sentry.Flush(2 * time.Second)
		}
	}

	ttl, err := time.ParseDuration(cfg.Store.TTL)
	if err != nil {
		logger.Warn().Err(err).Str("ttl", cfg.Store.TTL).Msg("Invalid store TTL, using 24h")
		ttl = 24 * time.Hour
	}

	store, err := cache.New(cfg.Store.Provider, cache.ProviderConfig{
		Size: session.CacheSize(cfg.Store.Size),
		TTL:  ttl,
		Redis: cache.RedisConfig{
			Address:  cfg.Store.Redis.Address,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		},
		Logger: session.CacheLogger{Logger: logger},
		Group:  "sessions",
	})
	if err != nil {
		logger.Fatal().Err(err).Str("provider", cfg.Store.Provider).Strs("available", cache.RegisteredProviders()).Msg("Failed to create session store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close session store")
		}
	}()

	tvmaze := client.NewClient(cfg)
	defer func() { _ = tvmaze.Close() }()

	renderer, err := render.NewRenderer()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to parse templates")
	}

	finder := services.NewShowFinder(tvmaze, renderer, reporter)
	handler := web.NewServer(finder, renderer, session.NewStore(store, logger), web.Options{
		SecureCookies: cfg.Server.SecureCookies,
	})

	// Start Prometheus metrics HTTP server
	if cfg.Metrics.Enabled {
		metricsServer := metrics.NewHTTPServer(cfg.Server.Address, cfg.Metrics.Port)
		go func() {
			logger.Info().Str("address", metricsServer.Addr).Msg("Starting Prometheus metrics HTTP server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal().Err(err).Msg("Failed to serve metrics")
			}
		}()
		defer func() {
			if err := metricsServer.Shutdown(context.Background()); err != nil {
				logger.Error().Err(err).Msg("Failed to shutdown metrics server")
			}
		}()
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
		}
	}()

	logger.Info().Str("address", address).Msg("Starting HTTP server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("Failed to serve HTTP")
	}
	<-stopped

	logger.Info().Msg("Server stopped gracefully")
}
