package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. STUDYAID_SERVER_PORT.
const EnvPrefix = "STUDYAID"

// DotEnvFile is read from the working directory when present. Variables
// already set in the process environment win.
const DotEnvFile = ".env"

// Load reads configuration from defaults, an optional YAML file and
// environment variables (including a .env file), in increasing order of precedence.
// An empty path skips the file; a missing file at a non-empty path is not an error.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", DotEnvFile, err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				var notFound viper.ConfigFileNotFoundError
				if !errors.As(err, &notFound) {
					return nil, fmt.Errorf("failed to read config %s: %w", path, err)
				}
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if _, err := time.LoadLocation(cfg.Greeting.Location); err != nil {
		return nil, fmt.Errorf("config validation failed: greeting.location: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.mode", "dev")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("database.type", "sqlite")
	v.SetDefault("database.path", "./studyaid.db")
	v.SetDefault("database.url", "")

	v.SetDefault("paths.templates", "./internal/templates")
	v.SetDefault("paths.static", "./static")
	v.SetDefault("paths.migrations", "./migrations")

	// Development-only fallback; production deployments must override it.
	v.SetDefault("security.secret", "studyaid-development-secret-change-me")
	v.SetDefault("security.visitor_cookie_ttl", 365*24*time.Hour)

	v.SetDefault("session.page_ttl", 6*time.Hour)
	v.SetDefault("session.cleanup_interval", 10*time.Minute)

	v.SetDefault("greeting.mode", "time")
	v.SetDefault("greeting.tagline", "Small steps every day add up to big scores.")
	v.SetDefault("greeting.location", "Local")

	v.SetDefault("tutor.latency", 600*time.Millisecond)
	v.SetDefault("tutor.rate_limit", 30)
	v.SetDefault("tutor.rate_window", time.Minute)

	v.SetDefault("backend.url", "")
	v.SetDefault("backend.token", "")
}
