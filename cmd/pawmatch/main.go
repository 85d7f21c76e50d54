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

	"github.com/pawmatch/pawmatch/internal/config"
	dbRedis "github.com/pawmatch/pawmatch/internal/db/redis"
	"github.com/pawmatch/pawmatch/internal/domain"
	logpkg "github.com/pawmatch/pawmatch/internal/logger"
	"github.com/pawmatch/pawmatch/internal/metrics"
	"github.com/pawmatch/pawmatch/internal/repository/gencache"
	chiTransport "github.com/pawmatch/pawmatch/internal/transport/chi"
	openaiGen "github.com/pawmatch/pawmatch/internal/transport/openai"
	"github.com/pawmatch/pawmatch/internal/transport/petfinder"
	"github.com/pawmatch/pawmatch/internal/usecase/enrich"
	healthuc "github.com/pawmatch/pawmatch/internal/usecase/health"
	"github.com/pawmatch/pawmatch/internal/usecase/match"
	"github.com/pawmatch/pawmatch/internal/usecase/reason"
	"github.com/pawmatch/pawmatch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	// The key prefix is read lazily by every storage consumer, so setting
	// it once here covers caches, facts, and generation entries alike.
	domain.KeyPrefix = cfg.Storage.KeyPrefix

	logger.Info("Starting pawmatch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}
	defer store.Close()

	// Wait for database to be ready
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Register metrics explicitly (no init())
	metrics.RegisterFeedMetrics()
	metrics.RegisterGenerationMetrics()

	// Listing feed client
	feed := petfinder.NewClient(&petfinder.Config{
		BaseURL:           cfg.Feed.BaseURL,
		ClientID:          cfg.Feed.ClientID,
		ClientSecret:      cfg.Feed.ClientSecret,
		Timeout:           time.Duration(cfg.Feed.TimeoutSec) * time.Second,
		RequestsPerMinute: cfg.Feed.RequestsPerMinute,
		Freshness:         time.Duration(cfg.Feed.FreshnessHours) * time.Hour,
		PageSize:          cfg.Feed.PageSize,
		MaxPages:          cfg.Feed.MaxPages,
		Logger:            logger,
	})

	// Reasoning generator chain — composition root
	reasonSvc, genHealth := buildReasoner(cfg, store, logger)

	// Background facts enrichment
	worker := enrich.NewWorker(
		store,
		time.Duration(cfg.Cache.FactsTTLSec)*time.Second,
		cfg.Matching.EnrichQueueSize,
		logger,
	)
	worker.Start(ctx)

	// Matching pipeline
	matchSvc := match.New(feed, reasonSvc, logger).
		WithEnricher(enrich.Deriver{}).
		WithTopN(cfg.Matching.TopMatches)

	// Health service
	healthSvc := healthuc.New(store, genHealth)

	// HTTP server
	server := chiTransport.NewServer(matchSvc, feed, healthSvc, logger).
		WithCache(store,
			time.Duration(cfg.Cache.SearchTTLSec)*time.Second,
			time.Duration(cfg.Cache.DetailTTLSec)*time.Second,
		).
		WithEnrichment(worker).
		WithSearchRateLimit(cfg.Matching.SearchRatePerMinute)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	cancel()
	worker.Wait()

	logger.Info("Server stopped gracefully")
}

// buildReasoner assembles the generator chain: OpenAI -> Cached -> reasoning
// service with verification. Returns nil health when no API key is set, in
// which case top matches carry template fallbacks only.
func buildReasoner(cfg config.Config, store *dbRedis.Store, logger *zap.Logger) (*reason.Service, healthuc.GenerationChecker) {
	if cfg.Generation.APIKey == "" {
		logger.Warn("No generation API key configured, explanations fall back to templates")
		return reason.New(nil, logger), nil
	}

	base := openaiGen.NewGenerator(&openaiGen.Config{
		APIKey:      cfg.Generation.APIKey,
		BaseURL:     cfg.Generation.BaseURL,
		Model:       cfg.Generation.Model,
		MaxTokens:   cfg.Generation.MaxTokens,
		Temperature: cfg.Generation.Temperature,
		Provider:    "openai",
		Logger:      logger,
	})

	var gen reason.Generator = base
	if cfg.Cache.GenerationTTLSec > 0 {
		gen = gencache.New(
			base, store, base.Params(),
			time.Duration(cfg.Cache.GenerationTTLSec)*time.Second,
			metrics.GenerationCacheTotal, logger,
		)
	}

	svc := reason.New(gen, logger).
		WithBatchSize(cfg.Generation.BatchSize).
		WithPause(time.Duration(cfg.Generation.BatchPauseMS) * time.Millisecond).
		WithTimeout(time.Duration(cfg.Generation.TimeoutSec) * time.Second)

	logger.Info("Reasoning generator created",
		zap.String("model", cfg.Generation.Model),
		zap.Bool("cached", cfg.Cache.GenerationTTLSec > 0),
	)
	return svc, base
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
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
