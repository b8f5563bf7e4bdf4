package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/simaogato/foliodash-backend/internal/adapter/cache"
	"github.com/simaogato/foliodash-backend/internal/adapter/httpapi"
	"github.com/simaogato/foliodash-backend/internal/adapter/repository/memory"
	"github.com/simaogato/foliodash-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/foliodash-backend/internal/config"
	"github.com/simaogato/foliodash-backend/internal/domain"
	"github.com/simaogato/foliodash-backend/internal/usecase/auth"
	"github.com/simaogato/foliodash-backend/internal/usecase/seeder"
)

const priceCacheTTL = 5 * time.Minute

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	// 1. Repositories: Postgres when configured, in-memory otherwise
	var (
		assetRepo     domain.AssetRepository
		priceRepo     domain.PriceRepository
		portfolioRepo domain.PortfolioRepository
	)
	if cfg.DatabaseURL != "" {
		db, err := postgres.NewDB(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := db.EnsureSchema(ctx); err != nil {
			logger.Fatal("Failed to ensure database schema", zap.Error(err))
		}
		assetRepo = postgres.NewAssetRepository(db)
		priceRepo = postgres.NewPriceRepository(db)
		portfolioRepo = postgres.NewPortfolioRepository(db)
		logger.Info("Using Postgres repositories")
	} else {
		assetRepo = memory.NewAssetRepository()
		priceRepo = memory.NewPriceRepository()
		portfolioRepo = memory.NewPortfolioRepository()
		logger.Info("Using in-memory repositories")
	}

	// 2. Optional Redis read-through cache for the price feed
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		priceRepo = cache.NewPriceCache(priceRepo, rdb, priceCacheTTL, logger)
		logger.Info("Price cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	// 3. Seed the demo dataset into an empty store
	demoSeeder := seeder.NewDemoSeeder(assetRepo, priceRepo, portfolioRepo)
	if err := demoSeeder.Seed(ctx); err != nil {
		logger.Fatal("Failed to seed demo data", zap.Error(err))
	}
	logger.Info("Demo data ready")

	// 4. Sessions
	sessions := auth.NewService([]byte(cfg.JWTSecret), cfg.SessionTTL)
	if err := sessions.RegisterCredential(cfg.DemoEmail, cfg.DemoPassword); err != nil {
		logger.Fatal("Failed to register demo credential", zap.Error(err))
	}

	// 5. HTTP API
	api := httpapi.NewServer(logger, assetRepo, priceRepo, portfolioRepo, sessions)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: api.Router(),
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to serve HTTP", zap.Error(err))
		}
	}()

	waitForShutdown(srv, logger)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(srv *http.Server, logger *zap.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	logger.Info("Shutting down gracefully", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", zap.Error(err))
	}
	logger.Info("HTTP server stopped")
}
