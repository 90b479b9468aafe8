package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BloggingApp/blog-client/internal/baas"
	"github.com/BloggingApp/blog-client/internal/baas/appwrite"
	"github.com/BloggingApp/blog-client/internal/baas/memory"
	"github.com/BloggingApp/blog-client/internal/baas/selfhost"
	"github.com/BloggingApp/blog-client/internal/config"
	"github.com/BloggingApp/blog-client/internal/handler"
	"github.com/BloggingApp/blog-client/internal/repository"
	"github.com/BloggingApp/blog-client/internal/repository/postgres"
	"github.com/BloggingApp/blog-client/internal/server"
	"github.com/BloggingApp/blog-client/internal/service"
	"github.com/BloggingApp/blog-client/internal/store"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(".")
	if err != nil {
		bootLogger, _ := zap.NewProduction()
		bootLogger.Sugar().Panicf("failed to load config: %s", err.Error())
	}

	logger, _ := zap.NewProduction()
	if cfg.App.Env == "development" {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	client, closeBackend := newBackend(ctx, cfg, logger)
	defer closeBackend()

	state := store.New()
	state.Subscribe(func(prev, next store.State) {
		if next.Status {
			logger.Sugar().Infof("signed in as %s", next.Identity.Email)
			return
		}
		logger.Info("signed out")
	})

	services := service.New(logger, client, cfg.BaaS, state)
	if identity := services.Auth.Restore(ctx); identity == nil {
		logger.Info("No active session")
	}

	files, _ := client.Storage.(baas.FileReader)
	handlers := handler.New(logger, services, state, files, cfg.Server.ClientOrigin)

	srv := server.New()
	serverConfig := cfg.Server
	serverConfig.Handler = handlers.InitRoutes()
	go func(srv *server.Server, cfg config.ServerConfig) {
		if err := srv.Run(cfg); err != nil {
			logger.Sugar().Panicf("failed to run http server: %s", err.Error())
		}
	}(srv, serverConfig)

	logger.Sugar().Infof("Server started on port %s with %s backend", serverConfig.Port, cfg.App.Driver)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Server shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Errorf("failed to shut down http server: %s", err.Error())
	}
}

// newBackend connects the configured driver. The returned func releases its
// connections.
func newBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*baas.Client, func()) {
	switch cfg.App.Driver {
	case config.DriverMemory:
		logger.Warn("Using the in-memory backend, nothing will be persisted")
		return memory.New(cfg.BaaS.Endpoint, cfg.BaaS.ProjectID).Client(), func() {}

	case config.DriverSelfHost:
		db, err := postgres.DB(ctx, cfg.DB)
		if err != nil {
			logger.Sugar().Panicf("failed to connect to postgres: %s", err.Error())
		}
		logger.Info("Successfully connected to PostgreSQL")

		if err := postgres.Migrate(ctx, db); err != nil {
			logger.Sugar().Panicf("failed to migrate postgres: %s", err.Error())
		}

		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pong, err := rdb.Ping(ctx).Result()
		if err != nil {
			logger.Sugar().Panicf("failed to ping redis: %s", err.Error())
		}
		logger.Sugar().Infof("Successfully connected to Redis: %s", pong)

		repos := repository.New(db, rdb)
		client, err := selfhost.New(selfhost.StoresFrom(repos), selfhost.Options{
			Endpoint:   cfg.BaaS.Endpoint,
			ProjectID:  cfg.BaaS.ProjectID,
			Secret:     []byte(cfg.Session.Secret),
			SessionTTL: cfg.Session.TTL,
		})
		if err != nil {
			logger.Sugar().Panicf("failed to create self-hosted backend: %s", err.Error())
		}

		return client, func() {
			if err := rdb.Close(); err != nil {
				logger.Sugar().Errorf("failed to close redis: %s", err.Error())
			}
			db.Close()
		}

	default:
		client, err := appwrite.New(cfg.BaaS.Endpoint, cfg.BaaS.ProjectID)
		if err != nil {
			logger.Sugar().Panicf("failed to create appwrite client: %s", err.Error())
		}
		return client, func() {}
	}
}
