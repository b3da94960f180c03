// Package config collects runtime configuration from the environment.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
	pkgerrors "github.com/pkg/errors"
)

type Config struct {
	// ServeAddress is the HTTP listen address.
	ServeAddress string `envconfig:"SERVE_ADDRESS" default:":8080"`

	// TokenSecret signs identity tokens. The process refuses to start
	// without it.
	TokenSecret string        `envconfig:"TOKEN_SECRET" required:"true"`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	// DatabaseDSN selects the MySQL store; when empty the service runs on
	// the in-memory store.
	DatabaseDSN    string `envconfig:"DATABASE_DSN"`
	MigrationsPath string `envconfig:"MIGRATIONS_PATH" default:"migrations"`

	// KafkaBrokers is a comma-separated broker list; when empty order
	// notifications are logged and dropped.
	KafkaBrokers  string        `envconfig:"KAFKA_BROKERS"`
	KafkaTopic    string        `envconfig:"KAFKA_TOPIC" default:"storefront.orders"`
	NotifyTimeout time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"5s"`

	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

func Parse() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, pkgerrors.Wrap(err, "parse configuration")
	}
	return &cfg, nil
}
