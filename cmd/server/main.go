package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nonprofitedge/assessments/internal/auth"
	"github.com/nonprofitedge/assessments/internal/cache"
	"github.com/nonprofitedge/assessments/internal/database"
	"github.com/nonprofitedge/assessments/internal/instrument"
	"github.com/nonprofitedge/assessments/internal/monitoring"
	"github.com/nonprofitedge/assessments/internal/multirater"
	"github.com/nonprofitedge/assessments/internal/ratelimit"
	"github.com/nonprofitedge/assessments/internal/scoring"
	"github.com/nonprofitedge/assessments/internal/transport"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if getEnvOrDefault("GIN_MODE", "release") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// The instrument bank validates every built-in definition. A broken
	// definition must halt startup before any respondent-facing flow.
	bank, err := instrument.Builtin()
	if err != nil {
		slog.Error("Instrument validation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Instrument bank loaded", "instruments", len(bank.All()))

	dataDir := getEnvOrDefault("DATA_DIR", "./data")
	db, err := database.NewDB(dataDir)
	if err != nil {
		slog.Error("Database initialization failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	repo := database.NewRepository(db)

	thresholds := scoring.Thresholds{
		Common:  getEnvFloat("ZONE_COMMON_THRESHOLD", scoring.DefaultThresholds.Common),
		Leading: getEnvFloat("ZONE_LEADING_THRESHOLD", scoring.DefaultThresholds.Leading),
	}

	evalConfig := multirater.Config{
		MinimumRaters: getEnvInt("MIN_RATERS", multirater.DefaultMinimumRaters),
		Thresholds:    thresholds,
	}
	evaluations := database.NewEvaluationService(repo, bank, evalConfig)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		slog.Warn("JWT_SECRET not set, using an ephemeral secret; invite tokens will not survive a restart")
		jwtSecret = time.Now().Format(time.RFC3339Nano)
	}
	issuer := auth.NewTokenIssuer(jwtSecret)

	metrics := monitoring.NewMetrics()
	monLogger := monitoring.NewLogger()

	redisClient, err := ratelimit.NewRedisClient(
		os.Getenv("REDIS_ADDR"),
		os.Getenv("REDIS_PASSWORD"),
		getEnvInt("REDIS_DB", 0),
	)
	if err != nil {
		slog.Warn("Redis unavailable, continuing with in-memory rate limiting", "error", err)
	}
	defer redisClient.Close()

	limiterConfig := ratelimit.DefaultConfig()
	limiterConfig.IPLimitPerMin = getEnvInt("RATE_LIMIT_IP_PER_MIN", limiterConfig.IPLimitPerMin)
	limiterConfig.SubmitLimitPerHour = getEnvInt("RATE_LIMIT_SUBMIT_PER_HOUR", limiterConfig.SubmitLimitPerHour)
	limiter := ratelimit.NewRateLimiter(redisClient, limiterConfig, metrics)

	cacheTTL := time.Duration(getEnvInt("CACHE_TTL_SECONDS", 300)) * time.Second
	reportCache := cache.NewCache(cacheTTL)

	handler := transport.NewHandler(bank, thresholds, repo, evaluations, issuer, reportCache, metrics, monLogger)

	router := transport.NewRouter(handler, issuer, limiter, db, redisClient.IsEnabled(), transport.RouterConfig{
		AllowedOrigins: splitEnvList("ALLOWED_ORIGINS"),
		ReportLimit:    getEnvInt("RATE_LIMIT_REPORT_PER_MIN", 10),
		AdminToken:     os.Getenv("ADMIN_TOKEN"),
	})
	if os.Getenv("ADMIN_TOKEN") == "" {
		slog.Warn("ADMIN_TOKEN not set, admin routes are disabled")
	}

	port := getEnvOrDefault("PORT", "8080")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "port", port, "data_dir", dataDir, "redis", redisClient.IsEnabled())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		slog.Warn("Invalid integer in environment, using default", "key", key, "value", v, "default", fallback)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		slog.Warn("Invalid float in environment, using default", "key", key, "value", v, "default", fallback)
	}
	return fallback
}

func splitEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
