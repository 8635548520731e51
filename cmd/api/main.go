// Package main provides the WellNoosh engine API server.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	grocerysvc "github.com/wellnoosh/engine/internal/application/grocery"
	inventorysvc "github.com/wellnoosh/engine/internal/application/inventory"
	sessionsvc "github.com/wellnoosh/engine/internal/application/session"
	"github.com/wellnoosh/engine/internal/infrastructure/catalog"
	"github.com/wellnoosh/engine/internal/infrastructure/config"
	httpserver "github.com/wellnoosh/engine/internal/infrastructure/http"
	"github.com/wellnoosh/engine/internal/infrastructure/metrics"
	"github.com/wellnoosh/engine/internal/infrastructure/notify"
	"github.com/wellnoosh/engine/internal/infrastructure/storage"
	"github.com/wellnoosh/engine/internal/ports/outbound"
	"github.com/wellnoosh/engine/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      cfg.App.LogFormat,
		Development: cfg.IsDevelopment(),
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	appLogger.Info("starting wellnoosh engine",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("storage", cfg.Storage.Backend),
	)

	// Key-value backend.
	var store outbound.KeyValueStore
	switch cfg.Storage.Backend {
	case "redis":
		redisStore, err := storage.NewRedisStore(storage.RedisConfig{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			Database:     cfg.Redis.Database,
			MaxRetries:   cfg.Redis.MaxRetries,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
			PoolSize:     cfg.Redis.PoolSize,
		}, appLogger)
		if err != nil {
			appLogger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisStore.Close()
		store = redisStore
	default:
		store = storage.NewMemoryStore()
	}

	// Repositories over the shared store.
	userData := storage.NewUserDataStore(store, appLogger)
	leftovers := storage.NewLeftoverStore(store, appLogger)

	// Recipe catalog.
	var cat outbound.CatalogRepository
	if cfg.Catalog.Path != "" {
		cat, err = catalog.LoadFromFile(cfg.Catalog.Path, appLogger)
		if err != nil {
			appLogger.Fatal("failed to load recipe catalog", zap.Error(err))
		}
	} else {
		cat = catalog.Default()
	}

	// Share webhook.
	var share outbound.SharePublisher = notify.NopPublisher{}
	if cfg.Share.Enabled {
		share = notify.NewWebhookPublisher(notify.WebhookConfig{
			URL:        cfg.Share.WebhookURL,
			Timeout:    cfg.Share.Timeout,
			RetryCount: cfg.Share.RetryCount,
		}, appLogger)
	}

	recorder := metrics.NewRecorder(prometheus.DefaultRegisterer)

	// Services.
	inventoryService := inventorysvc.NewService(leftovers, recorder, nil, appLogger)
	groceryService := grocerysvc.NewService(userData, recorder, appLogger)
	sessionService := sessionsvc.NewService(
		cat, userData, inventoryService, groceryService, share, recorder, nil, appLogger,
	)

	server := httpserver.NewServer(
		cfg.Server,
		sessionService,
		inventoryService,
		groceryService,
		promhttp.Handler(),
		appLogger,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Start(); err != nil {
			appLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	appLogger.Info("shutting down server")

	if err := server.Shutdown(context.Background()); err != nil {
		appLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	appLogger.Info("server stopped")
}
