package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/taskhive/backend/internal/config"
	"github.com/taskhive/backend/internal/db"
	"github.com/taskhive/backend/internal/handler"
	"github.com/taskhive/backend/internal/logging"
	"github.com/taskhive/backend/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log := logging.New(cfg.AppEnv)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg.Postgres)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pg.Close()

	if err := pg.EnsureSchema(ctx); err != nil {
		log.WithError(err).Fatal("failed to ensure schema")
	}
	log.Info("database ready")

	tokens, err := service.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifetime)
	if err != nil {
		log.WithError(err).Fatal("invalid auth config")
	}
	hasher := service.NewHasher(0)

	svcs := handler.Services{
		Accounts: service.NewAccountService(pg, hasher, tokens),
		Tasks:    service.NewTaskService(pg),
		Tokens:   tokens,
	}

	var rdb *redis.Client
	if cfg.Redis.URL != "" {
		opts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.WithError(err).Fatal("invalid REDIS_URL")
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.WithError(err).Fatal("failed to connect to redis")
		}
		log.Info("auth rate limiter enabled")
	}

	router := handler.NewRouter(cfg, log, svcs, rdb)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
