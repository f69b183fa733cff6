// Package sink publishes stored notifications to a push channel. Publishing is
// best-effort; the notification row is already persisted when a sink runs.
package sink

import (
	"context"
	"fmt"

	"anoa.com/inkblog/internal/entity"
	"github.com/google/uuid"
)

type Sink interface {
	Publish(ctx context.Context, notification *entity.Notification) error
	Close() error
}

// Channel is the per-recipient pub/sub channel name.
func Channel(recipientID uuid.UUID) string {
	return fmt.Sprintf("user_notifications:%s", recipientID.String())
}

type noopSink struct{}

// Noop discards everything; clients fall back to polling.
func Noop() Sink { return noopSink{} }

func (noopSink) Publish(context.Context, *entity.Notification) error { return nil }
func (noopSink) Close() error                                        { return nil }
