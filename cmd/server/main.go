package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rl1809/shop-api/internal/adapter/handler"
	"github.com/rl1809/shop-api/internal/adapter/storage"
	"github.com/rl1809/shop-api/internal/config"
	"github.com/rl1809/shop-api/internal/core/service"
	"github.com/rl1809/shop-api/internal/port"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// MySQL
	db, err := storage.Open(cfg.MySQLDSN)
	if err != nil {
		logger.Fatal("failed to open mysql", zap.Error(err))
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("failed to ping mysql", zap.Error(err))
	}
	logger.Info("connected to mysql")

	if err := storage.RunMigrations(db, cfg.MigrationsPath); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis product cache, optional
	var cache port.CacheRepository
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatal("failed to connect redis", zap.Error(err))
		}
		cache = storage.NewRedisAdapter(rdb)
		logger.Info("connected to redis")
	}

	// Stores
	userStore := storage.NewUserStore(db)
	productStore := storage.NewProductStore(db)
	categoryStore := storage.NewCategoryStore(db)
	orderStore := storage.NewOrderStore(db)
	reviewStore := storage.NewReviewStore(db)

	// Services
	userService := service.NewUserService(userStore)
	productService := service.NewProductService(productStore, cache, logger)
	categoryService := service.NewCategoryService(categoryStore)
	orderService := service.NewOrderService(orderStore, productStore, userStore, cache, logger)
	reviewService := service.NewReviewService(reviewStore)

	// HTTP server
	router := handler.NewRouter(handler.Handlers{
		Users:      handler.NewUserHandler(userService),
		Products:   handler.NewProductHandler(productService),
		Categories: handler.NewCategoryHandler(categoryService),
		Orders:     handler.NewOrderHandler(orderService),
		Reviews:    handler.NewReviewHandler(reviewService),
	}, logger, cfg.RequestTimeout)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}
	logger.Info("HTTP server stopped")

	if rdb != nil {
		rdb.Close()
	}
	logger.Info("connections closed")
}
