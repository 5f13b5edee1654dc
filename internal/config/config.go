package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config represents application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Logging   LoggingConfig
	CORS      CORSConfig
	Escrow    EscrowConfig
	Metrics   MetricsConfig
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Environment  string
	// APIPrefix is prepended to every resource route, e.g. "/api".
	APIPrefix string
}

// DatabaseConfig represents database configuration
type DatabaseConfig struct {
	Driver         string
	URL            string
	MaxConnections int
	MaxIdleTime    time.Duration
}

type JWTConfig struct {
	Secret         string
	Algorithm      string
	AccessTokenTTL time.Duration
}

type RateLimitConfig struct {
	Enabled  bool
	RedisURL string
	Requests int
	Window   time.Duration
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json, text
}

type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowCredentials bool
}

type EscrowConfig struct {
	BaseURL string
	Email   string
	APIKey  string
	Timeout time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

var (
	ErrMissingDatabaseURL  = fmt.Errorf("DATABASE_URL is required")
	ErrMissingJWTSecret    = fmt.Errorf("JWT_SECRET is required")
	ErrInvalidJWTAlgorithm = fmt.Errorf("invalid JWT algorithm")
	ErrInvalidStoreDriver  = fmt.Errorf("STORE_DRIVER must be %q or %q", StoreDriverPostgres, StoreDriverMemory)
)

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds the configuration from v, applying defaults, and validates it.
func FromViper(v *viper.Viper) (*Config, error) {
	setDefaults(v)

	cfg := &Config{
		Server: ServerConfig{
			Host:         v.GetString("server_host"),
			Port:         v.GetString("server_port"),
			ReadTimeout:  durationOf(v, "server_read_timeout"),
			WriteTimeout: durationOf(v, "server_write_timeout"),
			IdleTimeout:  durationOf(v, "server_idle_timeout"),
			Environment:  v.GetString("env"),
			APIPrefix:    normalizePrefix(v.GetString("api_prefix")),
		},
		Database: DatabaseConfig{
			Driver:         strings.ToLower(v.GetString("store_driver")),
			URL:            v.GetString("database_url"),
			MaxConnections: v.GetInt("db_max_connections"),
			MaxIdleTime:    durationOf(v, "db_max_idle_time"),
		},
		JWT: JWTConfig{
			Secret:         v.GetString("jwt_secret"),
			Algorithm:      v.GetString("jwt_alg"),
			AccessTokenTTL: durationOf(v, "jwt_access_token_ttl"),
		},
		RateLimit: RateLimitConfig{
			Enabled:  v.GetBool("rate_limit_enabled"),
			RedisURL: v.GetString("redis_url"),
			Requests: v.GetInt("rate_limit_requests"),
			Window:   durationOf(v, "rate_limit_window"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("log_level"),
			Format: v.GetString("log_format"),
		},
		CORS: CORSConfig{
			Enabled:          v.GetBool("cors_enabled"),
			AllowedOrigins:   parseList(v.GetString("cors_allowed_origins")),
			AllowCredentials: v.GetBool("cors_allow_credentials"),
		},
		Escrow: EscrowConfig{
			BaseURL: strings.TrimRight(v.GetString("escrow_base_url"), "/"),
			Email:   v.GetString("escrow_email"),
			APIKey:  v.GetString("escrow_api_key"),
			Timeout: durationOf(v, "escrow_timeout"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("metrics_enabled"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", "8080")
	v.SetDefault("server_read_timeout", "15s")
	v.SetDefault("server_write_timeout", "30s")
	v.SetDefault("server_idle_timeout", "60s")
	v.SetDefault("env", "development")
	v.SetDefault("api_prefix", "/api")

	v.SetDefault("store_driver", StoreDriverPostgres)
	v.SetDefault("db_max_connections", 20)
	v.SetDefault("db_max_idle_time", "30m")

	v.SetDefault("jwt_alg", "HS256")
	v.SetDefault("jwt_access_token_ttl", "3600")

	v.SetDefault("redis_url", "redis://localhost:6379/0")
	v.SetDefault("rate_limit_enabled", false)
	v.SetDefault("rate_limit_requests", 100)
	v.SetDefault("rate_limit_window", "60")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("cors_enabled", true)
	v.SetDefault("cors_allowed_origins", "*")
	v.SetDefault("cors_allow_credentials", false)

	v.SetDefault("escrow_base_url", "https://api.escrow.com/2017-09-01")
	v.SetDefault("escrow_timeout", "30s")

	v.SetDefault("metrics_enabled", true)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case StoreDriverPostgres:
		if c.Database.URL == "" {
			return ErrMissingDatabaseURL
		}
	case StoreDriverMemory:
	default:
		return ErrInvalidStoreDriver
	}

	if c.JWT.Algorithm != "HS256" {
		return ErrInvalidJWTAlgorithm
	}
	if c.JWT.Secret == "" {
		return ErrMissingJWTSecret
	}

	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	return nil
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

// durationOf reads a bare number as seconds, anything else as a Go duration.
func durationOf(v *viper.Viper, key string) time.Duration {
	raw := strings.TrimSpace(v.GetString(key))
	if n, err := strconv.Atoi(raw); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}

func parseList(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			res = append(res, trimmed)
		}
	}
	return res
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix != "" && !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return prefix
}
