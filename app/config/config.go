// Package config loads the feed's settings from the environment.
package config

import (
	"fmt"

	"postfeed/app/services"

	"github.com/caarlos0/env/v11"
)

// Storage backends accepted in FEED_BACKEND.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
)

// Config holds every setting of the feed process.
type Config struct {
	Addr        string `env:"FEED_ADDR" envDefault:":8080"`
	Backend     string `env:"FEED_BACKEND" envDefault:"memory"`
	Downvotes   bool   `env:"FEED_DOWNVOTES" envDefault:"true"`
	Bookmarks   bool   `env:"FEED_BOOKMARKS" envDefault:"true"`
	Validate    bool   `env:"FEED_VALIDATE" envDefault:"false"`
	CurrentUser string `env:"FEED_CURRENT_USER" envDefault:"Current User"`
	Seed        bool   `env:"FEED_SEED" envDefault:"true"`
	FakePosts   int    `env:"FEED_FAKE_POSTS" envDefault:"0"`
	LogLevel    string `env:"FEED_LOG_LEVEL" envDefault:"info"`
}

// Load reads the configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.check(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) check() error {
	switch c.Backend {
	case BackendMemory, BackendBadger:
	default:
		return fmt.Errorf("FEED_BACKEND must be %q or %q, got %q", BackendMemory, BackendBadger, c.Backend)
	}
	if c.FakePosts < 0 {
		return fmt.Errorf("FEED_FAKE_POSTS must not be negative, got %d", c.FakePosts)
	}
	return nil
}

// Feed returns the engine part of the configuration.
func (c Config) Feed() services.FeedConfig {
	return services.FeedConfig{
		EnableDownvotes: c.Downvotes,
		EnableBookmarks: c.Bookmarks,
		Validate:        c.Validate,
		CurrentUser:     c.CurrentUser,
	}
}
