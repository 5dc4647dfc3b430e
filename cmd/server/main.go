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

	"connectrpc.com/connect"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/ArdhikaRizki/debTBE/internal/activity"
	"github.com/ArdhikaRizki/debTBE/internal/auth"
	"github.com/ArdhikaRizki/debTBE/internal/cache"
	"github.com/ArdhikaRizki/debTBE/internal/config"
	"github.com/ArdhikaRizki/debTBE/internal/middleware"
	"github.com/ArdhikaRizki/debTBE/internal/observability"
	"github.com/ArdhikaRizki/debTBE/internal/service"
	"github.com/ArdhikaRizki/debTBE/internal/storage/sqlite"
	"github.com/ArdhikaRizki/debTBE/pkg/api/apiconnect"
	"github.com/ArdhikaRizki/debTBE/pkg/logging"
)

func main() {
	logging.Setup()
	cfg := config.Load()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	summaries := newCache(cfg)

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	activities := activity.NewLog(cfg.ActivityCapacity)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	logged := middleware.LoggingInterceptor(metrics)

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(authenticator, jwtManager, store, slog.Default()),
		connect.WithInterceptors(logged, middleware.RequireAuth(jwtManager,
			apiconnect.AuthServiceRegisterProcedure,
			apiconnect.AuthServiceLoginProcedure,
		)),
	))
	mux.Handle(apiconnect.NewLedgerServiceHandler(
		service.NewLedgerService(store, summaries, activities, metrics, cfg.SummaryTTL),
		connect.WithInterceptors(logged, middleware.RequireAuth(jwtManager)),
	))
	mux.Handle(apiconnect.NewDebtServiceHandler(
		service.NewDebtService(activities, metrics),
		connect.WithInterceptors(logged, middleware.OptionalAuth(jwtManager)),
	))

	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Add logging and CORS middleware
	handler := loggingMiddleware(corsMiddleware(cfg.CORSOrigins)(mux))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(handler, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Connect server starting", "address", server.Addr, "url", fmt.Sprintf("http://localhost%s", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}
}

// newCache connects to Redis when configured and falls back to process memory.
func newCache(cfg config.Config) cache.Cache {
	if cfg.RedisAddr == "" {
		slog.Info("Summary cache in memory")
		return cache.NewMemoryCache()
	}

	rc := cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		slog.Warn("Redis unreachable, using in-memory summary cache", "addr", cfg.RedisAddr, "error", err)
		rc.Close()
		return cache.NewMemoryCache()
	}

	slog.Info("Summary cache on Redis", "addr", cfg.RedisAddr)
	return rc
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware allows browser access from the configured origins.
func corsMiddleware(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Connect-Protocol-Version", "Connect-Timeout-Ms"},
		ExposedHeaders: []string{"Connect-Protocol-Version", "Connect-Timeout-Ms"},
		MaxAge:         300,
	})
}
