package sink

import (
	"context"
	"encoding/json"
	"time"

	"anoa.com/inkblog/internal/entity"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
)

type kafkaSink struct {
	writer *kafka.Writer
}

// NewKafkaSink writes notifications keyed by recipient so one user's events stay
// on one partition. Writes are async; delivery failures are only logged.
func NewKafkaSink(brokers []string, topic string) Sink {
	return &kafkaSink{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
			Async:        true,
			Completion:   logDeliveryFailure,
		},
	}
}

func logDeliveryFailure(messages []kafka.Message, err error) {
	if err != nil {
		log.Warnf("[notification] kafka delivery of %d message(s) failed: %v", len(messages), err)
	}
}

func (s *kafkaSink) Publish(ctx context.Context, notification *entity.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}
	return s.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(notification.RecipientID.String()),
		Value: payload,
	})
}

func (s *kafkaSink) Close() error {
	return s.writer.Close()
}
