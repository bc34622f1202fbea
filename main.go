package main

import (
	"context"
	"log"
	"time"

	"cineticket/cmd"
	"cineticket/internal/data/cache"
	"cineticket/internal/data/repository"
	"cineticket/internal/usecase"
	"cineticket/internal/wire"
	pkgcache "cineticket/pkg/cache"
	"cineticket/pkg/database"
	"cineticket/pkg/events"
	"cineticket/pkg/storage"
	"cineticket/pkg/telemetry"
	"cineticket/pkg/translate"
	"cineticket/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App.LogPath, config.App.API, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("api", config.App.API),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	if config.JWT.Secret == "" {
		logger.Fatal("JWT_SECRET is required")
	}

	ctx := context.Background()

	shutdownTracer, err := telemetry.Init(ctx, config.Telemetry)
	if err != nil {
		logger.Warn("Tracing disabled", zap.Error(err))
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(shutdownCtx); err != nil {
				logger.Warn("Tracer shutdown failed", zap.Error(err))
			}
		}()
	}

	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	var rdb *redis.Client
	if config.Redis.Enabled {
		if rdb, err = pkgcache.NewRedisClient(ctx, config.Redis); err != nil {
			logger.Warn("Redis unavailable, cache and rate limiting disabled", zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
			logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
		}
	}

	integrations := usecase.Integrations{
		Tokens: utils.NewTokenIssuer(config.JWT.Secret, time.Duration(config.JWT.ExpiryHours)*time.Hour),
	}

	if store, err := storage.NewMinioStorage(ctx, config.Storage, logger); err != nil {
		logger.Warn("Object storage unavailable, uploads disabled", zap.Error(err))
	} else {
		integrations.Storage = store
	}

	if config.Translation.URL != "" {
		integrations.Translator = translate.NewLibreTranslate(config.Translation.URL, config.Translation.APIKey, logger)
	}

	if rdb != nil && config.Cache.Enabled {
		integrations.SeatCache = cache.NewRedisSeatMapCache(rdb, config.Cache.SeatMapTTL, logger)
	}

	publisher, err := events.NewPublisher(config.Events, logger)
	if err != nil {
		logger.Warn("Event publisher unavailable, events disabled", zap.Error(err))
	} else {
		integrations.Publisher = publisher
		defer publisher.Close()
	}

	repos := repository.NewRepository(db, logger)

	app := wire.Wiring(repos, integrations, rdb, config, logger)

	if err := cmd.APIServer(app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped", zap.Error(err))
	}
}
