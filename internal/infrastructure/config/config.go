package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=12h"`

	MySQL    MySQLConfig
	Redis    RedisConfig
	Mongo    MongoConfig
	RabbitMQ RabbitMQConfig
	Gestion  GestionConfig

	EventWorkers int `env:"EVENT_WORKERS, default=4"`
}

type MySQLConfig struct {
	User     string `env:"DB_USER,     default=odontocare"`
	Password string `env:"DB_PASSWORD"`
	Host     string `env:"DB_HOST,     default=localhost"`
	Port     string `env:"DB_PORT,     default=3306"`
	Database string `env:"DB_NAME,     default=odontocare"`
}

// RedisConfig: an empty Addr disables idempotency keys.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB, default=0"`
}

// MongoConfig: an empty URI disables the audit trail.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=odontocare"`
}

// RabbitMQConfig: an empty URL disables event publishing.
type RabbitMQConfig struct {
	URL   string `env:"RABBITMQ_URL"`
	Queue string `env:"RABBITMQ_QUEUE, default=citas.events"`
}

type GestionConfig struct {
	URL     string        `env:"GESTION_URL,     default=http://localhost:5001"`
	Timeout time.Duration `env:"GESTION_TIMEOUT, default=5s"`
}

// Load reads a .env file when present, then the environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

const (
	minGestionTimeout = 3 * time.Second
	maxGestionTimeout = 5 * time.Second
)

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("config: TOKEN_TTL must be positive")
	}
	if c.Gestion.Timeout < minGestionTimeout || c.Gestion.Timeout > maxGestionTimeout {
		return fmt.Errorf("config: GESTION_TIMEOUT %s out of range (%s-%s)", c.Gestion.Timeout, minGestionTimeout, maxGestionTimeout)
	}
	return nil
}

// ListenPort returns PORT, or the service default when unset.
func (c *Config) ListenPort(service string) string {
	if c.Port != "" {
		return c.Port
	}
	if service == "citas" {
		return "5002"
	}
	return "5001"
}

// Production reports whether ENV is production.
func (c *Config) Production() bool {
	return c.Env == "production"
}
