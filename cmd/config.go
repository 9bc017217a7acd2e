package cmd

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
)

// Config carries everything the service reads from the environment.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"orderflow"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// JWTSecret verifies bearer tokens issued by the auth collaborator.
	JWTSecret string `env:"JWT_SECRET,required"`

	// LockTimeout bounds the wait for the per-order row lock.
	LockTimeout time.Duration `env:"LOCK_TIMEOUT" envDefault:"3s"`

	// NotifyTimeout bounds each outward notification delivery.
	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`

	// RateLimit and RateWindow bound transition requests per actor.
	RateLimit  int           `env:"RATE_LIMIT" envDefault:"30"`
	RateWindow time.Duration `env:"RATE_WINDOW" envDefault:"1m"`

	// Six-field cron specs for the background sweeps.
	PaymentConfirmationSchedule string `env:"PAYMENT_CONFIRMATION_SCHEDULE" envDefault:"*/10 * * * * *"`
	PaymentExpirySchedule       string `env:"PAYMENT_EXPIRY_SCHEDULE" envDefault:"0 * * * * *"`
	LimiterPruneSchedule        string `env:"LIMITER_PRUNE_SCHEDULE" envDefault:"0 */10 * * * *"`

	// PaymentTTL is how long an order may await payment before cancellation.
	PaymentTTL time.Duration `env:"PAYMENT_TTL" envDefault:"30m"`
}

// ParseConfig reads the configuration from the environment.
func ParseConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return cfg, nil
}

// DSN renders the postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
