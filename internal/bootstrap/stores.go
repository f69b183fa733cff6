package bootstrap

import (
	"context"
	"fmt"

	"anoa.com/inkblog/internal/config"
	commentRepo "anoa.com/inkblog/internal/modules/comment/repository"
	notifRepo "anoa.com/inkblog/internal/modules/notification/repository"
	"anoa.com/inkblog/internal/modules/notification/sink"
	postRepo "anoa.com/inkblog/internal/modules/post/repository"
	userRepo "anoa.com/inkblog/internal/modules/user/repository"
	"anoa.com/inkblog/pkg/database"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Stores bundles the repositories of one storage driver.
type Stores struct {
	Users         userRepo.UserRepository
	Posts         postRepo.PostRepository
	Comments      commentRepo.CommentRepository
	Notifications notifRepo.NotificationRepository

	closers []func(context.Context) error
}

// Close releases the underlying connections in reverse order.
func (s *Stores) Close(ctx context.Context) error {
	var firstErr error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// OpenStores connects the driver named by cfg.StoreDriver. The postgres driver
// also migrates the schema.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.StoreDriver {
	case "postgres":
		db, err := database.Connect(database.PostgresConfig{
			URL:      cfg.DatabaseURL,
			Host:     cfg.DBHost,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			Name:     cfg.DBName,
			Port:     cfg.DBPort,
			Debug:    !cfg.IsProduction(),
		})
		if err != nil {
			return nil, err
		}
		if err := Migrate(db); err != nil {
			_ = database.Close(db)
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		log.Info("[bootstrap] postgres store ready")
		return &Stores{
			Users:         userRepo.NewUserRepository(db),
			Posts:         postRepo.NewPostRepository(db),
			Comments:      commentRepo.NewCommentRepository(db),
			Notifications: notifRepo.NewNotificationRepository(db),
			closers:       []func(context.Context) error{func(context.Context) error { return database.Close(db) }},
		}, nil

	case "mongo":
		mdb, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, err
		}
		log.Infof("[bootstrap] mongo store ready (db %s)", cfg.MongoDB)
		return &Stores{
			Users:         userRepo.NewMongoUserRepository(mdb),
			Posts:         postRepo.NewMongoPostRepository(mdb),
			Comments:      commentRepo.NewMongoCommentRepository(mdb),
			Notifications: notifRepo.NewMongoNotificationRepository(mdb),
			closers:       []func(context.Context) error{mdb.Client().Disconnect},
		}, nil

	case "memory":
		log.Warn("[bootstrap] using in-memory store, data is lost on restart")
		return &Stores{
			Users:         userRepo.NewMemoryUserRepository(),
			Posts:         postRepo.NewMemoryPostRepository(),
			Comments:      commentRepo.NewMemoryCommentRepository(),
			Notifications: notifRepo.NewMemoryNotificationRepository(),
		}, nil
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// OpenSink picks the notification publisher. The redis sink needs rdb; without
// it push is disabled and polling still works.
func OpenSink(cfg *config.Config, rdb *redis.Client) sink.Sink {
	switch cfg.NotificationSink {
	case "redis":
		if rdb == nil {
			log.Warn("[bootstrap] redis sink requested but REDIS_URL is not set, push disabled")
			return sink.Noop()
		}
		return sink.NewRedisSink(rdb)
	case "kafka":
		if len(cfg.KafkaBrokers) == 0 {
			log.Warn("[bootstrap] kafka sink requested but KAFKA_BROKERS is empty, push disabled")
			return sink.Noop()
		}
		log.Infof("[bootstrap] publishing notifications to kafka topic %s", cfg.KafkaTopic)
		return sink.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
	}
	return sink.Noop()
}
