// Package config loads EcoLoop settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

// Config holds process-wide settings. Command-line flags override DBPath
// and User.
type Config struct {
	DBPath   string `env:"ECOLOOP_DB"`
	User     string `env:"ECOLOOP_USER" envDefault:"default" validate:"required"`
	Env      string `env:"ECOLOOP_ENV" envDefault:"development" validate:"oneof=development production"`
	LogLevel string `env:"ECOLOOP_LOG_LEVEL" envDefault:"warn" validate:"oneof=debug info warn error"`
	LogFile  string `env:"ECOLOOP_LOG_FILE"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
