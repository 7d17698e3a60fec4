package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"econ-mood-monitor/internal/monitor/config"
	delivery "econ-mood-monitor/internal/monitor/delivery/http"
	"econ-mood-monitor/internal/monitor/repository"
	"econ-mood-monitor/internal/monitor/sentiment"
	"econ-mood-monitor/internal/monitor/service"
	"econ-mood-monitor/pkg/logger"
	"econ-mood-monitor/pkg/postgres"
	"econ-mood-monitor/pkg/redis"
	"econ-mood-monitor/pkg/telegram"
	"econ-mood-monitor/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the economic mood monitor service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if len(cfg.Regions) == 0 {
		log.Fatal("No regions configured")
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Monitor Service",
		logger.Field("name", cfg.App.Name),
		logger.IntField("regions", len(cfg.Regions)))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	snapshotRepo := repository.NewSnapshotRepository(db.DB)
	historyRepo := repository.NewHistoryRepository(db.DB)
	headlineRepo := repository.NewHeadlineRepository(db.DB)
	cacheRepo := repository.NewSentimentCacheRepository(redisClient.Client, cfg.Collector.CacheTTL, appLogger)
	feedRepo := repository.NewGoogleNewsFeedRepository(cfg.Feed, appLogger)

	// Initialize the classification pipeline. The classifier loads its
	// lexicon once here and is shared read-only by all region workers.
	noiseFilter := sentiment.NewNoiseFilter()
	classifier := sentiment.NewClassifier(appLogger)

	var notifier telegram.Notifier
	if cfg.Telegram.Enabled && cfg.Telegram.BotToken != "" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Error("Failed to initialize Telegram notifier, alerts disabled", logger.ErrorField(err))
			notifier = nil
		}
	}

	// Initialize services
	collectorSvc := service.NewCollectorService(cfg, feedRepo, snapshotRepo, historyRepo, headlineRepo, cacheRepo, noiseFilter, classifier, notifier, appLogger)
	regionSvc := service.NewRegionService(cfg, snapshotRepo, cacheRepo, appLogger)
	trendSvc := service.NewTrendService(historyRepo, appLogger)
	insightSvc := service.NewInsightService(cfg, regionSvc, trendSvc, headlineRepo, appLogger)

	// Start the collection loop
	utils.GoSafe(func() { collectorSvc.Start(ctx) })

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	apiGroup := e.Group("/api")

	regionHandler := delivery.NewRegionHandler(regionSvc, trendSvc, insightSvc, appLogger)
	regionsGroup := apiGroup.Group("/regions")
	regionHandler.RegisterRoutes(regionsGroup)

	collectHandler := delivery.NewCollectHandler(collectorSvc, regionSvc, appLogger)
	collectHandler.RegisterRoutes(apiGroup)

	healthHandler := delivery.NewHealthHandler(db.DB, cacheRepo, len(cfg.Regions), appLogger)
	healthHandler.RegisterRoutes(e, apiGroup)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

func main() {
	rootCmd := &cobra.Command{Use: "monitor-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing monitor-service CLI: %s\n", err)
		os.Exit(1)
	}
}
