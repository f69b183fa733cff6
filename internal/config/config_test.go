package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_FILE", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, "redis", cfg.NotificationSink)
	assert.Zero(t, cfg.CommentCooldown)
	assert.Equal(t, time.Minute, cfg.PostCooldown)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
port = "9000"
storeDriver = "memory"
notificationSink = "kafka"
kafkaBrokers = ["k1:9092"]
rateLimitComment = "10s"
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, "kafka", cfg.NotificationSink)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 10*time.Second, cfg.CommentCooldown)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
}

func TestLoad_Invalid(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CONFIG_FILE", "")

	t.Run("store driver", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "sqlite")
		_, err := Load()
		assert.ErrorContains(t, err, "STORE_DRIVER")
	})

	t.Run("sink", func(t *testing.T) {
		t.Setenv("NOTIFICATION_SINK", "email")
		_, err := Load()
		assert.ErrorContains(t, err, "NOTIFICATION_SINK")
	})

	t.Run("cooldown", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_COMMENT", "soon")
		_, err := Load()
		assert.ErrorContains(t, err, "RATE_LIMIT_COMMENT")
	})
}
