package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cardmax/internal/api"
	"cardmax/internal/api/handlers"
	"cardmax/internal/metrics"
	"cardmax/internal/repository"
	"cardmax/internal/service"
	"cardmax/pkg/auth"
	"cardmax/pkg/config"
	"cardmax/pkg/logger"
	"cardmax/pkg/postgres"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// @title CardMax API
// @version 1.0
// @description Credit card recommendations: reward calculation, category prediction and personalization.

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting CardMax service")

	// Initialize database
	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		appLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, appLogger)
	cardRepo := repository.NewCardRepository(db, appLogger)
	walletRepo := repository.NewWalletRepository(db, appLogger)
	txRepo := repository.NewTransactionRepository(db, appLogger)
	metadataRepo := repository.NewModelMetadataRepository(db, appLogger)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	collector := metrics.New()
	collector.Register(registry)

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.RefreshExp)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, appLogger)
	cardService := service.NewCardService(cardRepo, cfg.Cache.CatalogTTL, collector, appLogger)
	walletService := service.NewWalletService(walletRepo, cardService, appLogger)

	modelService := service.NewModelService(cfg.Model, txRepo, metadataRepo, collector, logger.Named("models"))
	if err := modelService.Load(); err != nil {
		appLogger.Warn("Model snapshots could not be fully restored", zap.Error(err))
	}

	recService := service.NewRecommendationService(cardService, walletService, modelService, txRepo, collector, appLogger)

	var advisor *service.AdvisorService
	if cfg.GigaChat.APIKey != "" {
		advisor, err = service.NewAdvisorService(&cfg.GigaChat, logger.Named("advisor"))
		if err != nil {
			appLogger.Warn("Advisor disabled", zap.Error(err))
			advisor = nil
		} else {
			defer advisor.Close()
		}
	}

	// Initialize handlers
	h := api.Handlers{
		Auth:           handlers.NewAuthHandler(authService, appLogger),
		Card:           handlers.NewCardHandler(cardService, appLogger),
		Wallet:         handlers.NewWalletHandler(walletService, appLogger),
		Recommendation: handlers.NewRecommendationHandler(recService, advisor, appLogger),
		Model:          handlers.NewModelHandler(modelService, appLogger),
	}

	// Setup router
	app := api.SetupRouter(h, jwtManager, &cfg.Server, registry, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}

	saveCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := modelService.Save(saveCtx); err != nil {
		appLogger.Error("Failed to save models", zap.Error(err))
	}
}
