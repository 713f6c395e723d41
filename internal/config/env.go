package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config is the server configuration read from the environment
type Config struct {
	Port             string  `env:"PORT" envDefault:"8080"`
	DBPath           string  `env:"DB_PATH" envDefault:"game.db"`
	LogDev           bool    `env:"LOG_DEV" envDefault:"false"`
	JWTSecret        string  `env:"JWT_SECRET"`
	RateLimitRPS     float64 `env:"RATE_LIMIT_RPS" envDefault:"100"`
	RateLimitBurst   int     `env:"RATE_LIMIT_BURST" envDefault:"1"`
	MaxBodyBytes     int64   `env:"MAX_BODY_BYTES" envDefault:"1048576"`
	RecentEventLimit int     `env:"RECENT_EVENT_LIMIT" envDefault:"50"`
	EventCatalogue   string  `env:"EVENT_CATALOGUE"`
	EnvelopeEvent    string  `env:"ENVELOPE_EVENT" envDefault:"GameEvent"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and checks the server configuration
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.RecentEventLimit <= 0 {
		return Config{}, fmt.Errorf("RECENT_EVENT_LIMIT must be positive, got %d", cfg.RecentEventLimit)
	}
	if cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}
	if cfg.RateLimitRPS <= 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_RPS must be positive, got %v", cfg.RateLimitRPS)
	}
	return cfg, nil
}
