package sink

import (
	"context"
	"errors"
	"testing"

	"anoa.com/inkblog/internal/entity"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel(t *testing.T) {
	id := uuid.MustParse("0190a4b4-7c2e-7a51-9c4f-2f1c3a5b6d7e")
	assert.Equal(t, "user_notifications:0190a4b4-7c2e-7a51-9c4f-2f1c3a5b6d7e", Channel(id))
}

func TestNoop(t *testing.T) {
	s := Noop()
	assert.NoError(t, s.Publish(context.Background(), &entity.Notification{}))
	assert.NoError(t, s.Close())
}

func TestKafkaSink_WritesAsync(t *testing.T) {
	s, ok := NewKafkaSink([]string{"127.0.0.1:9092"}, "notifications").(*kafkaSink)
	require.True(t, ok)
	t.Cleanup(func() { _ = s.Close() })

	assert.True(t, s.writer.Async)
	assert.NotNil(t, s.writer.Completion)
	assert.Equal(t, "notifications", s.writer.Topic)
}

func TestLogDeliveryFailure(t *testing.T) {
	hook := logtest.NewGlobal()
	t.Cleanup(hook.Reset)

	logDeliveryFailure([]kafka.Message{{}}, nil)
	assert.Empty(t, hook.AllEntries())

	logDeliveryFailure([]kafka.Message{{}, {}}, errors.New("broker down"))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, log.WarnLevel, entry.Level)
	assert.Contains(t, entry.Message, "broker down")
}
