package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/kailas-cloud/mapvista/internal/config"
	dbRedis "github.com/kailas-cloud/mapvista/internal/db/redis"
	"github.com/kailas-cloud/mapvista/internal/domain/mapview"
	logpkg "github.com/kailas-cloud/mapvista/internal/logger"
	"github.com/kailas-cloud/mapvista/internal/metrics"
	"github.com/kailas-cloud/mapvista/internal/source"
	"github.com/kailas-cloud/mapvista/internal/source/elastic"
	"github.com/kailas-cloud/mapvista/internal/source/redisearch"
	"github.com/kailas-cloud/mapvista/internal/source/sample"
	chiTransport "github.com/kailas-cloud/mapvista/internal/transport/chi"
	cataloguc "github.com/kailas-cloud/mapvista/internal/usecase/catalog"
	dashboarduc "github.com/kailas-cloud/mapvista/internal/usecase/dashboard"
	healthuc "github.com/kailas-cloud/mapvista/internal/usecase/health"
	"github.com/kailas-cloud/mapvista/internal/version"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, "mapvista", cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting mapvista server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("source_driver", cfg.Source.Driver),
	)

	// Register metrics explicitly (no init())
	metrics.RegisterDashboardMetrics()

	ctx := context.Background()
	src, closeSource := buildSource(ctx, cfg, logger)
	defer closeSource()

	instrumented := source.NewInstrumented(src, cfg.Source.Driver, logger)

	mapping := mapview.Mapping{
		LatField:    cfg.Map.LatField,
		LngField:    cfg.Map.LngField,
		LabelFields: cfg.Map.LabelFields,
	}

	// Create use case services
	catalogSvc := cataloguc.New(instrumented, time.Duration(cfg.Catalog.CacheTTLSec)*time.Second)
	dashboardSvc := dashboarduc.New(instrumented, catalogSvc, dashboarduc.Config{
		Capacity:   cfg.Session.Capacity,
		IdleTTL:    time.Duration(cfg.Session.IdleTTLMin) * time.Minute,
		MaxClauses: cfg.Session.MaxClauses,
		Mapping:    mapping,
	}, logger)
	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	dashboardSvc.StartJanitor(janitorCtx)
	healthSvc := healthuc.New(instrumented, catalogSvc, cfg.Source.Driver)

	server := chiTransport.NewServer(catalogSvc, instrumented, dashboardSvc, healthSvc, chiTransport.Options{
		CookieName:     cfg.Session.CookieName,
		CookieMaxAge:   time.Duration(cfg.Session.IdleTTLMin) * time.Minute,
		Mapping:        mapping,
		MaxClauses:     cfg.Session.MaxClauses,
		TileURL:        cfg.Map.TileURL,
		TilesDir:       cfg.Map.TilesDir,
		APIKeys:        cfg.Auth.APIKeys,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// buildSource creates the configured data backend. The returned func releases it.
func buildSource(ctx context.Context, cfg config.Config, logger *zap.Logger) (source.Source, func()) {
	switch cfg.Source.Driver {
	case config.DriverElastic:
		client, err := elastic.New(elastic.Config{
			BaseURL:  cfg.Elastic.BaseURL,
			Timeout:  time.Duration(cfg.Elastic.TimeoutSec) * time.Second,
			Size:     cfg.Elastic.Size,
			Username: cfg.Elastic.Username,
			Password: cfg.Elastic.Password,
		})
		if err != nil {
			logger.Fatal("Failed to create search client", zap.Error(err))
		}
		logger.Info("Using search API", zap.String("base_url", cfg.Elastic.BaseURL))
		return client, func() {}

	case config.DriverRediSearch:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:      cfg.Redis.Addrs,
			Password:   cfg.Redis.Password,
			ClientName: cfg.Redis.ClientName,
		})
		if err != nil {
			logger.Fatal("Failed to create database store", zap.Error(err))
		}

		// Wait for database to be ready
		if err := store.WaitForReady(ctx, time.Duration(cfg.Redis.ReadinessTimeout)*time.Second); err != nil {
			logger.Fatal("Database not ready", zap.Error(err), zap.Strings("addrs", cfg.Redis.Addrs))
		}
		logger.Info("Connected to database", zap.Strings("addrs", cfg.Redis.Addrs))

		if cfg.Redis.SeedSample {
			res, err := redisearch.NewSeeder(store, cfg.Redis.MetaPrefix, logger).Seed(ctx, sample.New())
			if err != nil {
				logger.Fatal("Failed to seed sample data", zap.Error(err))
			}
			logger.Info("Sample data seeded",
				zap.Int("indexes", res.Indexes),
				zap.Int("documents", res.Documents),
			)
		}

		return redisearch.New(store, redisearch.Config{
			MaxRecords:    cfg.Redis.MaxRecords,
			MetaPrefix:    cfg.Redis.MetaPrefix,
			NumericFields: cfg.Redis.NumericFields,
			SortBy:        cfg.Redis.SortBy,
			SortDesc:      cfg.Redis.SortDesc,
		}), store.Close

	default:
		logger.Info("Using built-in sample data")
		return sample.New(), func() {}
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.String("path", r.URL.Path),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.CodeInternalError,
						Message: "internal error",
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
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Tile requests log at debug.
			surface := metrics.SurfaceOf(r.URL.Path)
			level := zap.InfoLevel
			if surface == metrics.SurfaceTiles {
				level = zap.DebugLevel
			}
			if ce := reqLogger.Check(level, "http_request"); ce != nil {
				ce.Write(
					zap.String("method", r.Method),
					zap.String("surface", surface),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Duration("latency", time.Since(start)),
					zap.String("ip", r.RemoteAddr),
					zap.String("user_agent", r.UserAgent()),
					zap.Int("response_bytes", ww.BytesWritten()),
				)
			}
		})
	}
}
