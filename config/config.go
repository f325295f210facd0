// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// minSecretLen is the minimum accepted signing secret length. Shorter
// secrets make HS256 tokens cheap to brute-force offline.
const minSecretLen = 32

var (
	ErrDatabaseURLRequired = errors.New("database URL is required")
	ErrSecretRequired      = errors.New("signing secret is required")
	ErrSecretTooShort      = errors.New("signing secret too short")
)

// Config carries every runtime knob of the service. All values come from
// BANTAY_-prefixed environment variables.
type Config struct {
	DatabaseURL string `env:"BANTAY_DATABASE_URL"`
	JWTSecret   string `env:"BANTAY_JWT_SECRET"`

	HTTPAddr string        `env:"BANTAY_HTTP_ADDR"   envDefault:":9080"`
	TokenTTL time.Duration `env:"BANTAY_TOKEN_TTL"   envDefault:"100h"`

	BcryptCost int `env:"BANTAY_BCRYPT_COST" envDefault:"10"`

	// Global limiter: every request, soft window without blocking.
	GlobalLimitPoints int           `env:"BANTAY_GLOBAL_LIMIT_POINTS" envDefault:"100"`
	GlobalLimitWindow time.Duration `env:"BANTAY_GLOBAL_LIMIT_WINDOW" envDefault:"60s"`

	// Auth limiter: credential endpoints only, with a penalty block once
	// the points are spent.
	AuthLimitPoints int           `env:"BANTAY_AUTH_LIMIT_POINTS" envDefault:"5"`
	AuthLimitWindow time.Duration `env:"BANTAY_AUTH_LIMIT_WINDOW" envDefault:"300s"`
	AuthLimitBlock  time.Duration `env:"BANTAY_AUTH_LIMIT_BLOCK"  envDefault:"900s"`
}

// Load reads the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrDatabaseURLRequired
	}
	if c.JWTSecret == "" {
		return ErrSecretRequired
	}
	if len(c.JWTSecret) < minSecretLen {
		return fmt.Errorf("%w - minimum of %d characters", ErrSecretTooShort, minSecretLen)
	}
	return nil
}
