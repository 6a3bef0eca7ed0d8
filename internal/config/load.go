package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. TASKIFY_DATABASE_URL for database.url.
const EnvPrefix = "TASKIFY"

// defaultTokenLifetime mirrors the fixed 30-day window tokens have always carried.
const defaultTokenLifetime = 30 * 24 * time.Hour

// keys lists every configuration key so that environment variables bind even
// when neither a default nor a config file mentions the key.
var keys = []string{
	"server.port",
	"server.log_level",
	"server.client_url",
	"server.read_timeout",
	"server.write_timeout",
	"server.idle_timeout",
	"server.shutdown_timeout",
	"database.url",
	"database.max_open_conns",
	"database.max_idle_conns",
	"database.conn_max_lifetime",
	"auth.jwt_secret",
	"auth.refresh_token_secret",
	"auth.reset_password_secret",
	"auth.access_token_lifetime",
	"auth.refresh_token_lifetime",
	"auth.reset_token_lifetime",
	"auth.reset_password_link",
	"mail.host",
	"mail.port",
	"mail.username",
	"mail.password",
	"mail.from_address",
	"mail.from_name",
	"storage.upload_dir",
	"storage.max_avatar_bytes",
}

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment variable for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.client_url", "http://localhost:3000")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("auth.access_token_lifetime", defaultTokenLifetime)
	v.SetDefault("auth.refresh_token_lifetime", defaultTokenLifetime)
	v.SetDefault("auth.reset_token_lifetime", defaultTokenLifetime)

	v.SetDefault("mail.host", "smtp.gmail.com")
	v.SetDefault("mail.port", 587)
	v.SetDefault("mail.from_name", "Taskify - Task Manage Application")

	v.SetDefault("storage.upload_dir", "uploads")
	v.SetDefault("storage.max_avatar_bytes", 5<<20)
}
