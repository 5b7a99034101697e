package config

import (
	"time"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Paths    PathsConfig    `mapstructure:"paths" validate:"required"`
	Security SecurityConfig `mapstructure:"security" validate:"required"`
	Session  SessionConfig  `mapstructure:"session" validate:"required"`
	Greeting GreetingConfig `mapstructure:"greeting" validate:"required"`
	Tutor    TutorConfig    `mapstructure:"tutor" validate:"required"`
	Backend  BackendConfig  `mapstructure:"backend"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel     string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Mode         string        `mapstructure:"mode" validate:"required,oneof=dev prod"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout" validate:"gt=0"`
}

// DatabaseConfig selects the preference store backend.
// Type "none" disables persistence entirely.
type DatabaseConfig struct {
	Type string `mapstructure:"type" validate:"oneof=sqlite sqlite3 postgres postgresql mysql none"`
	Path string `mapstructure:"path"`
	URL  string `mapstructure:"url"`
}

// PathsConfig points at on-disk assets
type PathsConfig struct {
	Templates  string `mapstructure:"templates" validate:"required"`
	Static     string `mapstructure:"static" validate:"required"`
	Migrations string `mapstructure:"migrations" validate:"required"`
}

// SecurityConfig holds the secret every signing key is derived from
type SecurityConfig struct {
	Secret           string        `mapstructure:"secret" validate:"required,min=32"`
	VisitorCookieTTL time.Duration `mapstructure:"visitor_cookie_ttl" validate:"gt=0"`
}

// SessionConfig controls in-memory page sessions
type SessionConfig struct {
	PageTTL         time.Duration `mapstructure:"page_ttl" validate:"gt=0"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" validate:"gt=0"`
}

// GreetingConfig selects between the time-of-day greeting and a fixed tagline
type GreetingConfig struct {
	Mode     string `mapstructure:"mode" validate:"oneof=time tagline"`
	Tagline  string `mapstructure:"tagline" validate:"required_if=Mode tagline"`
	Location string `mapstructure:"location" validate:"required"`
}

// TutorConfig tunes the simulated tutor
type TutorConfig struct {
	Latency    time.Duration `mapstructure:"latency" validate:"gte=0"`
	RateLimit  int           `mapstructure:"rate_limit" validate:"gt=0"`
	RateWindow time.Duration `mapstructure:"rate_window" validate:"gt=0"`
}

// BackendConfig is the optional cloud sync integration point.
// Neither value is required; an incomplete pair means offline mode.
type BackendConfig struct {
	URL   string `mapstructure:"url"`
	Token string `mapstructure:"token"`
}

// PersistenceEnabled reports whether a database-backed preference store is configured
func (c *Config) PersistenceEnabled() bool {
	return c.Database.Type != "none"
}
