package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string `toml:"appEnv"`
	Port           string `toml:"port"`
	AllowedOrigins string `toml:"allowedOrigins"`
	LogLevel       string `toml:"logLevel"`

	// StoreDriver is one of postgres, mongo or memory.
	StoreDriver string `toml:"storeDriver"`

	DatabaseURL string `toml:"databaseURL"`
	DBHost      string `toml:"dbHost"`
	DBUser      string `toml:"dbUser"`
	DBPassword  string `toml:"dbPassword"`
	DBName      string `toml:"dbName"`
	DBPort      string `toml:"dbPort"`

	MongoURI string `toml:"mongoURI"`
	MongoDB  string `toml:"mongoDB"`

	RedisURL string `toml:"redisURL"`

	// NotificationSink is one of redis, kafka or none.
	NotificationSink string   `toml:"notificationSink"`
	KafkaBrokers     []string `toml:"kafkaBrokers"`
	KafkaTopic       string   `toml:"kafkaTopic"`

	JWTSecret string `toml:"jwtSecret"`

	RateLimitComment string `toml:"rateLimitComment"`
	RateLimitPost    string `toml:"rateLimitPost"`

	SeedAdminEmail    string `toml:"seedAdminEmail"`
	SeedAdminPassword string `toml:"seedAdminPassword"`

	CommentCooldown time.Duration `toml:"-"`
	PostCooldown    time.Duration `toml:"-"`
}

func defaults() *Config {
	return &Config{
		AppEnv:           "development",
		Port:             "8080",
		AllowedOrigins:   "http://localhost:3000",
		LogLevel:         "info",
		StoreDriver:      "postgres",
		DBHost:           "localhost",
		DBUser:           "postgres",
		DBName:           "inkblog",
		DBPort:           "5432",
		MongoDB:          "inkblog",
		NotificationSink: "redis",
		KafkaTopic:       "notifications",
		JWTSecret:        "12345",
		RateLimitComment: "0s",
		RateLimitPost:    "1m",
	}
}

func Load() (*Config, error) {
	// Don't fail if .env doesn't exist (might be prod env vars)
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	overrideString(&cfg.AppEnv, "APP_ENV")
	overrideString(&cfg.Port, "PORT")
	overrideString(&cfg.AllowedOrigins, "ALLOWED_ORIGINS")
	overrideString(&cfg.LogLevel, "LOG_LEVEL")
	overrideString(&cfg.StoreDriver, "STORE_DRIVER")
	overrideString(&cfg.DatabaseURL, "DATABASE_URL")
	overrideString(&cfg.DBHost, "DB_HOST")
	overrideString(&cfg.DBUser, "DB_USER")
	overrideString(&cfg.DBPassword, "DB_PASSWORD")
	overrideString(&cfg.DBName, "DB_NAME")
	overrideString(&cfg.DBPort, "DB_PORT")
	overrideString(&cfg.MongoURI, "MONGO_URI")
	overrideString(&cfg.MongoDB, "MONGO_DB")
	overrideString(&cfg.RedisURL, "REDIS_URL")
	overrideString(&cfg.NotificationSink, "NOTIFICATION_SINK")
	overrideString(&cfg.KafkaTopic, "KAFKA_TOPIC")
	overrideString(&cfg.JWTSecret, "JWT_SECRET")
	overrideString(&cfg.RateLimitComment, "RATE_LIMIT_COMMENT")
	overrideString(&cfg.RateLimitPost, "RATE_LIMIT_POST")
	overrideString(&cfg.SeedAdminEmail, "SEED_ADMIN_EMAIL")
	overrideString(&cfg.SeedAdminPassword, "SEED_ADMIN_PASSWORD")
	if brokers, ok := os.LookupEnv("KAFKA_BROKERS"); ok {
		cfg.KafkaBrokers = splitList(brokers)
	}

	switch cfg.StoreDriver {
	case "postgres", "mongo", "memory":
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q", cfg.StoreDriver)
	}
	switch cfg.NotificationSink {
	case "redis", "kafka", "none":
	default:
		return nil, fmt.Errorf("invalid NOTIFICATION_SINK %q", cfg.NotificationSink)
	}

	var err error
	cfg.CommentCooldown, err = parseDuration(cfg.RateLimitComment)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_COMMENT: %w", err)
	}
	cfg.PostCooldown, err = parseDuration(cfg.RateLimitPost)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_POST: %w", err)
	}

	return cfg, nil
}

// Origins splits AllowedOrigins on commas.
func (c *Config) Origins() []string {
	return splitList(c.AllowedOrigins)
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func overrideString(dst *string, key string) {
	if value, exists := os.LookupEnv(key); exists {
		*dst = value
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDuration(s string) (time.Duration, error) {
	return time.ParseDuration(s)
}
