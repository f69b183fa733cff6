package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"anoa.com/inkblog/internal/bootstrap"
	"anoa.com/inkblog/internal/config"
	"anoa.com/inkblog/internal/server"
	"anoa.com/inkblog/pkg/database"
	"anoa.com/inkblog/pkg/logger"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[server] failed to load config: %v", err)
	}
	logger.Setup(cfg.LogLevel, cfg.AppEnv)

	ctx := context.Background()

	stores, err := bootstrap.OpenStores(ctx, cfg)
	if err != nil {
		log.Fatalf("[server] failed to open %s store: %v", cfg.StoreDriver, err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Warnf("[server] redis unavailable, rate limiting and push disabled: %v", err)
			redisClient = nil
		}
	} else {
		log.Warn("[server] REDIS_URL not set, rate limiting and push disabled")
	}

	publisher := bootstrap.OpenSink(cfg, redisClient)

	if !cfg.IsProduction() {
		if err := bootstrap.SeedAdminUser(ctx, stores.Users, cfg.SeedAdminEmail, cfg.SeedAdminPassword); err != nil {
			log.Fatalf("[server] failed to seed admin user: %v", err)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.NewServer(cfg, stores, redisClient, publisher).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("[server] starting on port %v", cfg.Port)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[server] failed to start: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	shutdownCtx, shutdownRelease := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownRelease()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("[server] HTTP server shutdown error: %v", err)
	} else {
		log.Info("[server] HTTP server shut down gracefully")
	}

	if err := publisher.Close(); err != nil {
		log.Errorf("[server] failed to close notification sink: %v", err)
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Errorf("[server] failed to close redis: %v", err)
		}
	}
	if err := stores.Close(shutdownCtx); err != nil {
		log.Errorf("[server] failed to close store: %v", err)
	}
}
