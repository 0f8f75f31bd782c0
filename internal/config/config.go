// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Filesystem roots
	ContentDir string // categories/, products/, blog/, codex/, pages/, promotions/
	DataDir    string // users.json and other runtime data

	// Login throttling
	LoginMaxAttempts int
	LoginLockout     time.Duration
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		ContentDir: envOrDefault("CONTENT_DIR", "content"),
		DataDir:    envOrDefault("DATA_DIR", "data"),
	}

	maxAttempts, err := envOrDefaultInt("LOGIN_MAX_ATTEMPTS", 5)
	if err != nil {
		return nil, err
	}
	cfg.LoginMaxAttempts = maxAttempts

	lockoutMinutes, err := envOrDefaultInt("LOGIN_LOCKOUT_MINUTES", 15)
	if err != nil {
		return nil, err
	}
	cfg.LoginLockout = time.Duration(lockoutMinutes) * time.Minute

	if cfg.Env == "production" {
		if os.Getenv("CONTENT_DIR") == "" {
			return nil, fmt.Errorf("CONTENT_DIR must be set in production")
		}
		if os.Getenv("DATA_DIR") == "" {
			return nil, fmt.Errorf("DATA_DIR must be set in production")
		}
	}

	return cfg, nil
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrDefaultInt reads an integer environment variable.
func envOrDefaultInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}
