package pincho

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the environment-driven client configuration. All fields are
// fixed at client construction and never mutated afterwards.
type Config struct {
	Token      string        `env:"PINCHO_TOKEN,required"`
	BaseURL    string        `env:"PINCHO_BASE_URL" envDefault:"https://api.pincho.app"`
	Timeout    time.Duration `env:"PINCHO_TIMEOUT" envDefault:"10s"`
	MaxRetries int           `env:"PINCHO_MAX_RETRIES" envDefault:"3"`
}

// ConfigFromEnv loads Config from environment variables. When envFiles are
// given they are loaded first and must exist; otherwise a .env in the
// working directory is loaded when present.
func ConfigFromEnv(envFiles ...string) (Config, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return Config{}, fmt.Errorf("load env files: %w", err)
		}
	} else {
		// Default .env is optional
		_ = godotenv.Load()
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// NewFromEnv constructs a Client from environment configuration. Explicit
// options are applied after the environment and take precedence.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, err
	}

	base := []Option{
		WithBaseURL(cfg.BaseURL),
		WithTimeout(cfg.Timeout),
		WithMaxRetries(cfg.MaxRetries),
	}
	return New(cfg.Token, append(base, opts...)...), nil
}
