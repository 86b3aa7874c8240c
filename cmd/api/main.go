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

	"github.com/ATREE01/financemanager/internal/api/config"
	delivery "github.com/ATREE01/financemanager/internal/api/delivery/http"
	"github.com/ATREE01/financemanager/internal/api/repository"
	"github.com/ATREE01/financemanager/internal/api/service"
	"github.com/ATREE01/financemanager/pkg/logger"
	"github.com/ATREE01/financemanager/pkg/postgres"
	"github.com/ATREE01/financemanager/pkg/redis"
	"github.com/ATREE01/financemanager/pkg/telegram"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the finance manager API",
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

	appLogger.Info("Starting Finance Manager API", logger.Field("name", cfg.App.Name))

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

	// Initialize the quote-job failure notifier
	notifier := telegram.NewNoopNotifier()
	if cfg.Telegram.BotToken != "" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram client", logger.ErrorField(err))
		}
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.DB)
	currencyRepo := repository.NewCurrencyRepository(db.DB)
	currencyTxRepo := repository.NewCurrencyTransactionRepository(db.DB)
	bankRepo := repository.NewBankRepository(db.DB)
	bankRecordRepo := repository.NewBankRecordRepository(db.DB)
	timeDepositRepo := repository.NewTimeDepositRepository(db.DB)
	incExpRepo := repository.NewIncExpRepository(db.DB)
	firmRepo := repository.NewBrokerageFirmRepository(db.DB)
	stockRepo := repository.NewStockRepository(db.DB)
	userStockRepo := repository.NewUserStockRepository(db.DB)
	stockRecordRepo := repository.NewStockRecordRepository(db.DB)
	buyRecordRepo := repository.NewStockBuyRecordRepository(db.DB)
	bundleSellRepo := repository.NewStockBundleSellRepository(db.DB)
	stockHistoryRepo := repository.NewStockHistoryRepository(db.DB)
	jobHistoryRepo := repository.NewQuoteJobHistoryRepository(db.DB)
	marketDataRepo := repository.NewMarketDataRepository(cfg, appLogger)

	// Initialize services
	userSvc := service.NewUserService(userRepo)
	currencySvc := service.NewCurrencyService(currencyRepo, currencyTxRepo)
	bankSvc := service.NewBankService(bankRepo, bankRecordRepo, timeDepositRepo, incExpRepo, currencyTxRepo, stockRecordRepo, bundleSellRepo)
	incExpSvc := service.NewIncExpService(incExpRepo)
	firmSvc := service.NewBrokerageFirmService(firmRepo)
	stockSvc := service.NewStockService(stockRepo, userStockRepo, stockRecordRepo, buyRecordRepo, bundleSellRepo, stockHistoryRepo, firmRepo, marketDataRepo, redisClient, appLogger)
	quoteSvc := service.NewQuoteService(stockRepo, stockHistoryRepo, marketDataRepo, jobHistoryRepo, notifier, appLogger)

	// Schedule the quote-update routines
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.Quotes.DailyCron, func() {
		quoteSvc.UpdateStockPrices(ctx)
	}); err != nil {
		appLogger.Fatal("Invalid daily quote cron expression", logger.ErrorField(err))
	}
	if _, err := scheduler.AddFunc(cfg.Quotes.WeeklyCron, func() {
		quoteSvc.UpdateStockHistories(ctx)
	}); err != nil {
		appLogger.Fatal("Invalid weekly quote cron expression", logger.ErrorField(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")
	scoped := apiV1.Group("", delivery.UserScoped)

	userHandler := delivery.NewUserHandler(userSvc, appLogger)
	userHandler.RegisterRoutes(apiV1, scoped)

	currencyHandler := delivery.NewCurrencyHandler(currencySvc, appLogger)
	currencyHandler.RegisterRoutes(scoped)

	bankHandler := delivery.NewBankHandler(bankSvc, appLogger)
	bankHandler.RegisterRoutes(scoped)

	incExpHandler := delivery.NewIncExpHandler(incExpSvc, appLogger)
	incExpHandler.RegisterRoutes(scoped)

	firmHandler := delivery.NewBrokerageFirmHandler(firmSvc, stockSvc, appLogger)
	firmHandler.RegisterRoutes(scoped)

	stockHandler := delivery.NewStockHandler(stockSvc, appLogger)
	stockHandler.RegisterRoutes(scoped)

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
	rootCmd := &cobra.Command{Use: "financemanager"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing financemanager CLI: %s\n", err)
		os.Exit(1)
	}
}
