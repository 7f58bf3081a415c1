package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zenese/flightgate/internal/config"
	"github.com/zenese/flightgate/internal/db"
	dbMemory "github.com/zenese/flightgate/internal/db/memory"
	dbRedis "github.com/zenese/flightgate/internal/db/redis"
	logpkg "github.com/zenese/flightgate/internal/logger"
	"github.com/zenese/flightgate/internal/metrics"
	"github.com/zenese/flightgate/internal/provider"
	usagerepo "github.com/zenese/flightgate/internal/repository/usage"
	"github.com/zenese/flightgate/internal/transport/amadeus"
	chiTransport "github.com/zenese/flightgate/internal/transport/chi"
	"github.com/zenese/flightgate/internal/transport/duffel"
	"github.com/zenese/flightgate/internal/transport/skyscanner"
	healthuc "github.com/zenese/flightgate/internal/usecase/health"
	routeruc "github.com/zenese/flightgate/internal/usecase/router"
	"github.com/zenese/flightgate/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting flightgate API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	// Create database store based on driver
	var store db.Store
	switch cfg.Database.Driver {
	case "redis":
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	case "memory":
		store = dbMemory.NewStore()
	default:
		logger.Fatal("Unknown database driver", zap.String("driver", cfg.Database.Driver))
	}
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register routing metrics explicitly (no init())
	metrics.RegisterProviderMetrics()

	// Register one adapter variant per configured provider. A provider
	// name without a matching adapter is a config mistake and fatal here,
	// so routing never sees an unknown name.
	registry := provider.NewRegistry()
	for name, pc := range cfg.Providers {
		if err := registerAdapter(registry, name, pc); err != nil {
			logger.Fatal("Failed to register provider", zap.String("provider", name), zap.Error(err))
		}
	}
	logger.Info("Providers registered", zap.Strings("providers", registry.Names()))

	// Usage counters, keyed on the configured provider set
	usageStore := usagerepo.New(store, cfg.Storage.KeyPrefix, cfg.ProviderNames())

	// Routing engine over the providers in priority order
	routerSvc := routeruc.New(cfg.OrderedProviders(), registry, usageStore, logger)

	// Health service
	healthSvc := healthuc.New(store, registry)

	// Create chi server
	server := chiTransport.NewServer(routerSvc, healthSvc, usageStore, cfg.OrderedProviders(), logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// registerAdapter wires the adapter matching a configured provider name.
func registerAdapter(r *provider.Registry, name string, pc config.ProviderConfig) error {
	timeout := time.Duration(pc.CallTimeoutSec) * time.Second
	switch name {
	case amadeus.Name:
		return amadeus.Register(r, amadeus.Config{APIKey: pc.APIKey, BaseURL: pc.BaseURL, Timeout: timeout})
	case duffel.Name:
		return duffel.Register(r, duffel.Config{APIKey: pc.APIKey, BaseURL: pc.BaseURL, Timeout: timeout})
	case skyscanner.Name:
		return skyscanner.Register(r, skyscanner.Config{APIKey: pc.APIKey, BaseURL: pc.BaseURL, Timeout: timeout})
	default:
		return fmt.Errorf("no adapter for provider %q", name)
	}
}

// jsonRecoverer catches panics and returns a JSON 500.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
