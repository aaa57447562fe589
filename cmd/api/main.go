// Command api serves the social network REST API.
//
// @title                       Social Media REST API
// @version                     1.0
// @description                 Users, profiles and posts with likes and comments.
// @BasePath                    /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        x-auth-token
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tariq-shuvo/social-media-rest-api/docs"
	"github.com/tariq-shuvo/social-media-rest-api/internal/api"
	"github.com/tariq-shuvo/social-media-rest-api/internal/api/handler"
	"github.com/tariq-shuvo/social-media-rest-api/internal/core/service"
	"github.com/tariq-shuvo/social-media-rest-api/internal/infrastructure/config"
	mongodb "github.com/tariq-shuvo/social-media-rest-api/internal/infrastructure/db/mongo"
	redisdb "github.com/tariq-shuvo/social-media-rest-api/internal/infrastructure/db/redis"
	"github.com/tariq-shuvo/social-media-rest-api/internal/infrastructure/queue"
	"github.com/tariq-shuvo/social-media-rest-api/pkg/logger"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "social-api",
		Version: version,
	})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		AppName:  "social-api",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.CacheConfig{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// The serializer outlives the signal context so in-flight requests can
	// finish their mutations during shutdown.
	serialCtx, stopSerial := context.WithCancel(context.Background())
	defer stopSerial()
	serial := queue.NewSerializer(cfg.Mutation.Workers, log)
	serial.Start(serialCtx)

	users := mongodb.NewUserRepository(db)
	profiles := mongodb.NewProfileRepository(db)
	posts := mongodb.NewPostRepository(db)
	cache := redisdb.NewProfileCache(rdb, cfg.Redis.ProfileCacheTTL)

	tokens := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpire)

	docs.SwaggerInfo.Version = version

	e := api.NewRouter(api.Dependencies{
		Auth:     service.NewAuthService(users, tokens, log),
		Tokens:   tokens,
		Profiles: service.NewProfileService(profiles, posts, users, cache, serial, log),
		Posts:    service.NewPostService(posts, users, serial, log),
		Health: map[string]handler.HealthCheck{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
		Log: log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	stopSerial()
	log.Info().Msg("server stopped")
}
