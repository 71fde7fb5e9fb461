// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
)

// Config is the full server configuration, populated from TASKLOOM_* variables.
type Config struct {
	HTTPAddr string `envconfig:"HTTP_ADDR" default:":8080"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"badger"`
	StorePath   string `envconfig:"STORE_PATH" default:"./data/taskloom"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"72h"`

	// AMQPURL is optional; when empty, invitation notices go to the log.
	AMQPURL      string `envconfig:"AMQP_URL"`
	AMQPExchange string `envconfig:"AMQP_EXCHANGE" default:"taskloom.notifications"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("taskloom", &cfg); err != nil {
		return Config{}, fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.StoreDriver != DriverBadger && cfg.StoreDriver != DriverSQLite {
		return Config{}, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	return cfg, nil
}
