package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	API        APIConfig        `mapstructure:"api"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Upload     UploadConfig     `mapstructure:"upload"`
	RequestLog RequestLogConfig `mapstructure:"request_log"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	Log        LogConfig        `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // "development" or "production"
}

// APIConfig holds API surface configuration
type APIConfig struct {
	Prefix      string `mapstructure:"prefix"` // Path prefix for versioned routes
	ProjectName string `mapstructure:"project_name"`
	Version     string `mapstructure:"version"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver"`            // "sqlite" or "postgres"
	DSN             string `mapstructure:"dsn"`               // Connection string
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`    // Maximum idle connections (Postgres)
	MaxOpenConns    int    `mapstructure:"max_open_conns"`    // Maximum open connections (Postgres)
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"` // Connection max lifetime in minutes (Postgres)
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	SecretKey                string `mapstructure:"secret_key"`                  // Secret for JWT signing
	APIKey                   string `mapstructure:"api_key"`                     // Static key checked by the request gate
	AccessTokenExpireMinutes int    `mapstructure:"access_token_expire_minutes"` // Access token lifetime
	RefreshTokenExpireDays   int    `mapstructure:"refresh_token_expire_days"`   // Refresh token lifetime
}

// CORSConfig holds CORS configuration
type CORSConfig struct {
	Origins string `mapstructure:"origins"` // Comma-separated allowed origins
}

// AllowedOrigins parses the configured origin list
func (c CORSConfig) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.Origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// UploadConfig holds file upload configuration
type UploadConfig struct {
	Dir               string `mapstructure:"dir"`                // Upload root directory
	MaxSize           int64  `mapstructure:"max_size"`           // Maximum upload size in bytes
	AllowedExtensions string `mapstructure:"allowed_extensions"` // Comma-separated extensions
}

// RequestLogConfig holds API request logging configuration
type RequestLogConfig struct {
	Enabled         bool `mapstructure:"enabled"`
	LogRequestBody  bool `mapstructure:"log_request_body"`
	LogResponseBody bool `mapstructure:"log_response_body"`
	MaxBodySize     int  `mapstructure:"max_body_size"` // Truncation limit in bytes
}

// RateLimitConfig is declared for the deployment layer; the application
// itself does not enforce it.
type RateLimitConfig struct {
	PerMinute int `mapstructure:"per_minute"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Format string `mapstructure:"format"` // "json" or "text"
	Level  string `mapstructure:"level"`  // "debug", "info", "warn", "error"
}

// Load reads configuration from .env, config file and environment variables
func Load() (*Config, error) {
	// Best-effort .env load; absence is fine
	_ = godotenv.Load()

	v := viper.New()

	// Set defaults for local development
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.mode", "development")
	v.SetDefault("api.prefix", "/api/v1")
	v.SetDefault("api.project_name", "Monitool")
	v.SetDefault("api.version", "1.0.0")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "./data/toolbox.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", 60) // 60 minutes
	v.SetDefault("auth.secret_key", "change-me-in-production")
	v.SetDefault("auth.api_key", "change-me-in-production")
	v.SetDefault("auth.access_token_expire_minutes", 15)
	v.SetDefault("auth.refresh_token_expire_days", 7)
	v.SetDefault("cors.origins", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("upload.dir", "./data/uploads")
	v.SetDefault("upload.max_size", 10*1024*1024) // 10MB
	v.SetDefault("upload.allowed_extensions", ".jpg,.jpeg,.png")
	v.SetDefault("request_log.enabled", true)
	v.SetDefault("request_log.log_request_body", true)
	v.SetDefault("request_log.log_response_body", true)
	v.SetDefault("request_log.max_body_size", 10240) // 10KB
	v.SetDefault("rate_limit.per_minute", 100)
	v.SetDefault("log.format", "text")
	v.SetDefault("log.level", "info")

	// Read from config file if exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/monitool/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, using defaults
	}

	// Environment variables override
	v.SetEnvPrefix("MONITOOL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &cfg, nil
}
