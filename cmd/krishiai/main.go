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

	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/config"
	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/db"
	dbRedis "github.com/SatyajitKumarKhawas/Krishi-Ai/internal/db/redis"
	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/knowledge"
	logpkg "github.com/SatyajitKumarKhawas/Krishi-Ai/internal/logger"
	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/metrics"
	feedbackrepo "github.com/SatyajitKumarKhawas/Krishi-Ai/internal/repository/feedback"
	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/retrieval"
	chiTransport "github.com/SatyajitKumarKhawas/Krishi-Ai/internal/transport/chi"
	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/transport/huggingface"
	openaiGen "github.com/SatyajitKumarKhawas/Krishi-Ai/internal/transport/openai"
	answeruc "github.com/SatyajitKumarKhawas/Krishi-Ai/internal/usecase/answer"
	feedbackuc "github.com/SatyajitKumarKhawas/Krishi-Ai/internal/usecase/feedback"
	healthuc "github.com/SatyajitKumarKhawas/Krishi-Ai/internal/usecase/health"
	transcribeuc "github.com/SatyajitKumarKhawas/Krishi-Ai/internal/usecase/transcribe"
	visionuc "github.com/SatyajitKumarKhawas/Krishi-Ai/internal/usecase/vision"
	"github.com/SatyajitKumarKhawas/Krishi-Ai/internal/version"
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

	logger.Info("Starting Krishi AI advisory server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.String("knowledge_path", cfg.Knowledge.Path),
	)

	// Feedback store — driver "none" keeps records in process memory only.
	var store db.Store
	if cfg.Database.Driver == "redis" {
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}
		defer store.Close()

		ctx := context.Background()
		if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err))
		}
		logger.Info("Connected to database")
	}

	// Register advisory metrics explicitly (no init())
	metrics.RegisterAdvisoryMetrics()

	// Knowledge corpus — empty path loads the built-in seed documents.
	docs, err := knowledge.Load(cfg.Knowledge.Path)
	if err != nil {
		logger.Fatal("Failed to load knowledge corpus", zap.Error(err))
	}
	index := retrieval.NewIndex(docs)
	logger.Info("Knowledge index built",
		zap.Int("documents", len(docs)),
		zap.Int("vocabulary", index.VocabularySize()),
	)

	// Generation client — nil when no credential is configured; every answer
	// then falls back to the canned advisory.
	// Pass nil interface (not typed nil pointer!) if generation is not configured.
	var generator answeruc.Generator
	var generationChecker healthuc.GenerationChecker
	if cfg.Generation.APIKey != "" {
		gen := openaiGen.NewGenerator(&openaiGen.Config{
			APIKey:  cfg.Generation.APIKey,
			BaseURL: cfg.Generation.BaseURL,
			Logger:  logger,
		})
		generator = gen
		generationChecker = gen
		logger.Info("Generation client created",
			zap.Strings("models", cfg.Generation.Models),
		)
	} else {
		logger.Warn("No generation API key configured, serving fallback advisories")
	}

	// Vision classifier — same nil contract as generation.
	var classifier visionuc.Classifier
	if cfg.Vision.APIToken != "" {
		classifier = huggingface.NewClassifier(&huggingface.Config{
			Token:   cfg.Vision.APIToken,
			BaseURL: cfg.Vision.BaseURL,
			Model:   cfg.Vision.Model,
			Timeout: time.Duration(cfg.Vision.TimeoutSec) * time.Second,
			Logger:  logger,
		})
		logger.Info("Vision classifier created", zap.String("model", cfg.Vision.Model))
	}

	// Feedback recorder — Redis-backed when a store is connected.
	var recorder feedbackuc.Recorder
	if store != nil {
		retention := time.Duration(cfg.Storage.RetentionDays) * 24 * time.Hour
		recorder = feedbackrepo.New(store, cfg.Storage.KeyPrefix, retention)
	} else {
		recorder = feedbackrepo.NewMemory()
	}

	// Create use case services
	answerSvc := answeruc.New(index, generator, answeruc.Options{
		TopK:                cfg.Retrieval.TopK,
		EscalationThreshold: cfg.Retrieval.EscalationThreshold,
		ConfidenceBoost:     cfg.Retrieval.ConfidenceBoost,
		ConfidenceFloor:     cfg.Retrieval.ConfidenceFloor,
		ConfidenceCeiling:   cfg.Retrieval.ConfidenceCeiling,
		DefaultSimilarity:   cfg.Retrieval.DefaultSimilarity,
		Models:              cfg.Generation.Models,
		GenerationTimeout:   time.Duration(cfg.Generation.TimeoutSec) * time.Second,
		DefaultLanguage:     cfg.Generation.DefaultLanguage,
	}, logger)
	visionSvc := visionuc.New(classifier, logger)
	transcribeSvc := transcribeuc.New()
	feedbackSvc := feedbackuc.New(recorder, logger)

	var dbPinger healthuc.DBPinger
	if store != nil {
		dbPinger = store
	}
	healthSvc := healthuc.New(dbPinger, generationChecker)

	// Create chi server
	server := chiTransport.NewServer(
		answerSvc, visionSvc, transcribeSvc, feedbackSvc, healthSvc,
		chiTransport.DebugInfo{
			GenerationConfigured: generator != nil,
			GenerationKeyPrefix:  chiTransport.MaskKey(cfg.Generation.APIKey),
			VisionConfigured:     classifier != nil,
			VisionKeyPrefix:      chiTransport.MaskKey(cfg.Vision.APIToken),
		},
		logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Mount(r)

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
