package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	DatabaseURL     string        `envconfig:"DATABASE_URL" default:"sqlite://eventreg.db"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080"`
	SessionSecret   string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL      time.Duration `envconfig:"SESSION_TTL" default:"24h"`
	CookieSecure    bool          `envconfig:"COOKIE_SECURE" default:"false"`
	AdminSecretCode string        `envconfig:"ADMIN_SECRET_CODE" default:"ADMIN2025SECRET"`
	DefaultLocale   string        `envconfig:"DEFAULT_LOCALE" default:"en"`
	Timezone        string        `envconfig:"APP_TIMEZONE" default:"UTC"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json"`
	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE" default:"true"`
}

const minSessionSecret = 16

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI, etc.).
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate applies the rules envconfig tags cannot express.
func (c *Config) validate() error {
	if len(strings.TrimSpace(c.SessionSecret)) < minSessionSecret {
		return fmt.Errorf("config: SESSION_SECRET must be at least %d characters", minSessionSecret)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}
	if strings.TrimSpace(c.AdminSecretCode) == "" {
		return fmt.Errorf("config: ADMIN_SECRET_CODE cannot be empty")
	}

	parsed, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid DATABASE_URL (%q): %w", c.DatabaseURL, err)
	}
	switch parsed.Scheme {
	case "postgres", "postgresql":
		if parsed.Host == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing host", c.DatabaseURL)
		}
	case "sqlite":
		if parsed.Host == "" && parsed.Path == "" {
			return fmt.Errorf("config: invalid DATABASE_URL (%q): missing file path", c.DatabaseURL)
		}
	default:
		return fmt.Errorf("config: invalid DATABASE_URL (%q): unsupported scheme %q", c.DatabaseURL, parsed.Scheme)
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("config: invalid APP_TIMEZONE (%q): %w", c.Timezone, err)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: invalid LOG_LEVEL (%q): %w", c.LogLevel, err)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		return fmt.Errorf("config: LOG_FORMAT must be json or console, got %q", c.LogFormat)
	}
	return nil
}
