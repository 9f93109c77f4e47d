// Package config loads and validates application configuration from
// environment variables and an optional config file.
package config

// Config holds all application configuration, organized into logical
// groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int    `mapstructure:"port"             validate:"required,gt=0,lt=65536"`
	LogLevel        string `mapstructure:"log_level"        validate:"required,oneof=debug info warn error"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL             string `mapstructure:"url"                validate:"required"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"     validate:"gte=0"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"     validate:"gte=0"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"  validate:"gte=0"`
}

// AuthConfig contains the settings used to validate tokens issued by the
// external identity provider. Tokens are consumed here, never issued.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}
