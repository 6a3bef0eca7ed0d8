package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Mail     MailConfig     `mapstructure:"mail"     validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage"  validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ClientURL is the browser origin allowed to call the API with credentials.
	ClientURL       string        `mapstructure:"client_url"       validate:"omitempty,url"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"gt=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"     validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"               validate:"required,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"    validate:"gt=0"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    validate:"gte=0"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gt=0"`
}

// AuthConfig contains all authentication and authorization settings.
// Each token purpose is signed with its own secret.
type AuthConfig struct {
	JWTSecret           string `mapstructure:"jwt_secret"            validate:"required,min=32"`
	RefreshTokenSecret  string `mapstructure:"refresh_token_secret"  validate:"required,min=32,nefield=JWTSecret"`
	ResetPasswordSecret string `mapstructure:"reset_password_secret" validate:"required,min=32,nefield=JWTSecret,nefield=RefreshTokenSecret"`

	AccessTokenLifetime  time.Duration `mapstructure:"access_token_lifetime"  validate:"gt=0"`
	RefreshTokenLifetime time.Duration `mapstructure:"refresh_token_lifetime" validate:"gt=0"`
	ResetTokenLifetime   time.Duration `mapstructure:"reset_token_lifetime"   validate:"gt=0"`

	// ResetPasswordLink is the frontend page that receives ?token=<reset token>.
	ResetPasswordLink string `mapstructure:"reset_password_link" validate:"required,url"`
}

// MailConfig contains the SMTP settings used for password reset emails.
type MailConfig struct {
	Host        string `mapstructure:"host"         validate:"required,hostname|ip"`
	Port        int    `mapstructure:"port"         validate:"required,gt=0,lt=65536"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	FromAddress string `mapstructure:"from_address" validate:"required,email"`
	FromName    string `mapstructure:"from_name"`
}

// StorageConfig contains settings for uploaded files.
type StorageConfig struct {
	UploadDir      string `mapstructure:"upload_dir"       validate:"required"`
	MaxAvatarBytes int64  `mapstructure:"max_avatar_bytes" validate:"gt=0"`
}
