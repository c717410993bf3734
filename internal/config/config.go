// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"development"`
	Port   int    `env:"APP_PORT" envDefault:"8000"`

	Auth     AuthConfig
	Postgres PostgresConfig
	Redis    RedisConfig

	// Comma-separated origin allow-list for CORS.
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type AuthConfig struct {
	JWTSecret     string        `env:"JWT_SECRET"`
	TokenLifetime time.Duration `env:"JWT_LIFETIME" envDefault:"168h"`
}

type PostgresConfig struct {
	DatabaseURL string `env:"DATABASE_URL"`
	Host        string `env:"PGHOST" envDefault:"localhost"`
	Port        string `env:"PGPORT" envDefault:"5432"`
	User        string `env:"PGUSER"`
	Password    string `env:"PGPASSWORD"`
	Database    string `env:"PGDATABASE"`
	SSLMode     string `env:"PGSSLMODE" envDefault:"disable"`
}

type RedisConfig struct {
	// Empty URL disables the auth rate limiter.
	URL        string        `env:"REDIS_URL"`
	AuthLimit  int           `env:"AUTH_RATE_LIMIT" envDefault:"10"`
	AuthWindow time.Duration `env:"AUTH_RATE_WINDOW" envDefault:"1m"`
}

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CORSOriginList splits CORS_ORIGINS into trimmed, non-empty origins.
func (c Config) CORSOriginList() []string {
	parts := strings.Split(c.CORSOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
