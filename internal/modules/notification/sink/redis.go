package sink

import (
	"context"
	"encoding/json"

	"anoa.com/inkblog/internal/entity"
	"github.com/redis/go-redis/v9"
)

type redisSink struct {
	client *redis.Client
}

func NewRedisSink(client *redis.Client) Sink {
	return &redisSink{client: client}
}

func (s *redisSink) Publish(ctx context.Context, notification *entity.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	return s.client.Publish(ctx, Channel(notification.RecipientID), payload).Err()
}

// Close leaves the client open; it is shared with the rate limiter.
func (s *redisSink) Close() error { return nil }
