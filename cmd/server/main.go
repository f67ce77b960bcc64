package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/safevault/safevault/internal/api"
	"github.com/safevault/safevault/internal/core/service"
	"github.com/safevault/safevault/internal/core/token"
	"github.com/safevault/safevault/internal/infrastructure/config"
	mongodb "github.com/safevault/safevault/internal/infrastructure/db/mongo"
	redisdb "github.com/safevault/safevault/internal/infrastructure/db/redis"
	"github.com/safevault/safevault/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	users := mongodb.NewUserRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure indexes")
	}
	submissions := mongodb.NewSubmissionRepository(db)

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer func() { _ = rdb.Close() }()

	tokens := token.NewManager([]byte(cfg.JWTSecret), cfg.JWTIssuer, cfg.TokenTTL)

	if cfg.Admin.Username != "" {
		if err := service.EnsureAdmin(ctx, users, cfg.Admin.Username, cfg.Admin.Email, cfg.Admin.Password, log); err != nil {
			log.Fatal().Err(err).Msg("failed to seed admin account")
		}
	}

	e := api.NewRouter(api.Dependencies{
		Users:       users,
		Submissions: submissions,
		Tokens:      tokens,
		Throttle:    redisdb.NewLoginThrottle(rdb),
		Log:         log,
		Mongo:       db,
		Redis:       rdb,
		FormFile:    "web/form.html",
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
