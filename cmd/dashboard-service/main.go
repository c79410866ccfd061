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

	"golang-stock-dashboard/internal/server/config"
	delivery "golang-stock-dashboard/internal/server/delivery/http"
	"golang-stock-dashboard/internal/server/repository"
	"golang-stock-dashboard/internal/server/service"
	"golang-stock-dashboard/pkg/logger"
	"golang-stock-dashboard/pkg/postgres"
	"golang-stock-dashboard/pkg/redis"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the dashboard service",
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

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Dashboard Service", logger.Field("name", cfg.App.Name))

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
	yahooRepo := repository.NewYahooFinanceRepository(
		cfg.YahooFinance.BaseURL,
		cfg.YahooFinance.Timeout,
		cfg.YahooFinance.MaxRequestPerMinute,
		appLogger,
	)
	quoteCacheRepo := repository.NewQuoteCacheRepository(redisClient)
	profileRepo := repository.NewProfileRepository(db.DB)
	historyRepo := repository.NewSearchHistoryRepository(db.DB)
	newsRepo := repository.NewNewsRepository(
		cfg.News.FeedBaseURL,
		cfg.News.MaxItems,
		cfg.News.Timeout,
		cfg.News.EnrichSources,
		appLogger,
	)
	suggestionRepo, err := repository.NewSuggestionRepository(repository.Catalog())
	if err != nil {
		appLogger.Fatal("Failed to build suggestion index", logger.ErrorField(err))
	}
	defer suggestionRepo.Close()

	// Initialize services
	quoteSvc := service.NewQuoteService(yahooRepo, quoteCacheRepo, historyRepo, cfg, appLogger)
	suggestionSvc := service.NewSuggestionService(suggestionRepo, cfg.Suggest.MaxResults, cfg.Suggest.CacheTTL, appLogger)
	newsSvc := service.NewNewsService(newsRepo, appLogger)
	recommendationSvc := service.NewRecommendationService(quoteSvc, quoteCacheRepo, cfg, appLogger)
	profileSvc := service.NewProfileService(profileRepo, quoteCacheRepo, appLogger)
	warmSvc := service.NewWarmService(quoteSvc, cfg.Market.WarmCron, appLogger)

	if err := warmSvc.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start warm job", logger.ErrorField(err))
	}
	defer warmSvc.Stop()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	api := e.Group("/api")
	delivery.NewHealthHandler().RegisterRoutes(api)
	delivery.NewSuggestionHandler(suggestionSvc, appLogger).RegisterRoutes(api)
	delivery.NewQuoteHandler(quoteSvc, appLogger).RegisterRoutes(api)
	delivery.NewNewsHandler(newsSvc, appLogger).RegisterRoutes(api)
	delivery.NewRecommendationHandler(recommendationSvc, appLogger).RegisterRoutes(api)
	delivery.NewProfileHandler(profileSvc, appLogger).RegisterRoutes(api)
	delivery.NewStreamHandler(quoteSvc, cfg, appLogger).RegisterRoutes(api)

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
	rootCmd := &cobra.Command{Use: "dashboard-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-dashboard.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing dashboard-service CLI: %s\n", err)
		os.Exit(1)
	}
}
