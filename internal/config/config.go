package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the process configuration, read from the environment.
type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`
	GinMode  string `envconfig:"GIN_MODE" default:"release"`

	DBDriver   string `envconfig:"DB_DRIVER" default:"postgres"`
	DBURL      string `envconfig:"DB_URL" required:"true"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNS" default:"4"`

	// RedisURL enables the profile cache, the delivery queue and cross-node fan-out.
	// Without it, notifications are broadcast in-process only.
	RedisURL         string `envconfig:"REDIS_URL"`
	AsynqConcurrency int    `envconfig:"ASYNQ_CONCURRENCY" default:"10"`
	AsynqQueues      string `envconfig:"ASYNQ_QUEUES" default:"default=1,chat=1"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json"`

	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"3s"`
	StorageTimeout  time.Duration `envconfig:"STORAGE_TIMEOUT" default:"5s"`
	NotifyTimeout   time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"1s"`
	ProfileCacheTTL time.Duration `envconfig:"PROFILE_CACHE_TTL" default:"5m"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over .env entries.
func Load(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return Config{}, fmt.Errorf("config: load env file: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("config: DB_DRIVER must be postgres or sqlite, got %q", c.DBDriver)
	}
	if c.RequestTimeout <= 0 || c.StorageTimeout <= 0 || c.NotifyTimeout <= 0 {
		return errors.New("config: timeouts must be positive")
	}
	return nil
}
