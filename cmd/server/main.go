package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/api"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/api/handlers"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/cache"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/config"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/database"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/logging"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/middleware"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/sage"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/search"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/services"
	"github.com/msgonfealgorpa-source/findly-api-sub000/internal/telemetry"
)

const monitorInterval = 5 * time.Minute

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Optional local .env; absence is fine in containers.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.NewLogger(cfg.LogLevel, cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := telemetry.Init(ctx, cfg.Telemetry, cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(flushCtx); err != nil {
			logger.WithError(err).Warn("telemetry shutdown failed")
		}
	}()

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	redis, err := database.NewRedisConnection(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	defer redis.Close()

	// Repositories
	quotaRepo := database.NewQuotaRepository(db.Pool)
	historyRepo := database.NewHistoryRepository(db.Pool)
	reviewRepo := database.NewReviewRepository(db.Pool)
	userRepo := database.NewUserRepository(db.Pool)
	alertRepo := database.NewAlertRepository(db.Pool)

	// Services
	quotaService := services.NewQuotaService(quotaRepo, cfg.Quota.FreeSearches,
		parseDuration(cfg.Quota.ResetInterval, 24*time.Hour), logger)
	historyService := services.NewHistoryService(historyRepo, cfg.Cache.HistoryMaxPoints, logger)

	var notifier services.Notifier
	if cfg.Telegram.Enabled {
		telegramNotifier, err := services.NewTelegramNotifier(cfg.Telegram.BotToken)
		if err != nil {
			return fmt.Errorf("failed to initialize Telegram bot: %w", err)
		}
		if telegramNotifier != nil {
			notifier = telegramNotifier
		}
	}
	alertService := services.NewAlertService(alertRepo, notifier, logger)

	paymentsService := services.NewPaymentsService(&cfg.Payments, quotaService, logger)
	searchClient := search.NewClient(&cfg.Search, logger)
	searchCache := cache.NewSearchCache(redis, parseDuration(cfg.Cache.SearchTTL, 24*time.Hour), logger)
	sageEngine := sage.NewEngine(logger)
	advisor := services.NewAdvisor()
	chatService := services.NewChatService()
	learningService := services.NewLearningService(redis, logger)
	monitor := services.NewResourceMonitor(monitorInterval, logger)

	// Background loops live until the signal context cancels.
	go quotaService.RunResetSweep(ctx)
	go monitor.Run(ctx)

	auth := middleware.NewAuthMiddleware(cfg.Auth.JWTSecret)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	router.Use(otelgin.Middleware(cfg.Telemetry.ServiceName))

	api.SetupRoutes(router, &api.Dependencies{
		Auth:     auth,
		DB:       db,
		Redis:    redis,
		Search:   handlers.NewSearchHandler(quotaService, searchCache, searchClient, historyService, alertService, sageEngine, advisor, logger),
		Chat:     handlers.NewChatHandler(chatService),
		Reviews:  handlers.NewReviewHandler(reviewRepo),
		Users:    handlers.NewUserHandler(userRepo, auth, quotaService),
		Alerts:   handlers.NewAlertHandler(alertService),
		Payments: handlers.NewPaymentsHandler(paymentsService, logger),
		Feedback: handlers.NewFeedbackHandler(learningService),
		System:   handlers.NewSystemHandler(monitor),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       15 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Server.Port).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("failed to start server")
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	// Give outstanding requests a deadline for completion.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited")
	return nil
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
