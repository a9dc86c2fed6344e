package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap/zapcore"
)

// Config aggregates all runtime settings.
type Config struct {
	App       AppConfig       `envPrefix:"STARTER_"`
	HTTP      HTTPConfig      `envPrefix:"STARTER_HTTP_"`
	Status    StatusConfig    `envPrefix:"STARTER_STATUS_"`
	Database  DatabaseConfig  `envPrefix:"STARTER_DB_"`
	Redis     RedisConfig     `envPrefix:"STARTER_REDIS_"`
	RateLimit RateLimitConfig `envPrefix:"STARTER_RATE_LIMIT_"`
	Metrics   MetricsConfig   `envPrefix:"STARTER_METRICS_"`
}

type AppConfig struct {
	Environment string `env:"ENV" envDefault:"development"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"starter-service"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

type HTTPConfig struct {
	Host              string        `env:"HOST" envDefault:"0.0.0.0"`
	Port              int           `env:"PORT" envDefault:"8000"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT" envDefault:"120s"`
	ReadHeaderTimeout time.Duration `env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"25s"`
	TLSCertFile       string        `env:"TLS_CERT_FILE"`
	TLSKeyFile        string        `env:"TLS_KEY_FILE"`
	AllowedOrigins    []string      `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	TrustProxyHeaders bool          `env:"TRUST_PROXY_HEADERS" envDefault:"false"`
}

// StatusConfig holds the literal fields of the status payload.
type StatusConfig struct {
	Message   string `env:"MESSAGE" envDefault:"Welcome to Go!"`
	State     string `env:"STATE" envDefault:"running"`
	Framework string `env:"FRAMEWORK" envDefault:"chi"`
}

// DatabaseConfig is optional; an empty URL leaves Postgres out of the process.
type DatabaseConfig struct {
	URL             string        `env:"URL"`
	MaxConns        int32         `env:"MAX_CONNS" envDefault:"4"`
	ConnMaxLifetime time.Duration `env:"CONN_MAX_LIFETIME" envDefault:"30m"`
}

// RedisConfig is optional; an empty Addr leaves Redis out of the process.
type RedisConfig struct {
	Addr      string `env:"ADDR"`
	Password  string `env:"PASSWORD"`
	DB        int    `env:"DB" envDefault:"0"`
	EnableTLS bool   `env:"ENABLE_TLS" envDefault:"false"`
	Namespace string `env:"NAMESPACE" envDefault:"starter"`
}

type RateLimitConfig struct {
	Enabled  bool          `env:"ENABLED" envDefault:"true"`
	Requests int           `env:"REQUESTS" envDefault:"120"`
	Window   time.Duration `env:"WINDOW" envDefault:"1m"`
}

type MetricsConfig struct {
	Enabled bool `env:"ENABLED" envDefault:"true"`
}

// Load parses environment variables into Config and performs validation.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints that env tags cannot express.
func (c *Config) Validate() error {
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("STARTER_HTTP_PORT must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if (c.HTTP.TLSCertFile == "") != (c.HTTP.TLSKeyFile == "") {
		return errors.New("STARTER_HTTP_TLS_CERT_FILE and STARTER_HTTP_TLS_KEY_FILE must be set together")
	}
	if c.Status.Message == "" || c.Status.State == "" || c.Status.Framework == "" {
		return errors.New("STARTER_STATUS_MESSAGE, STARTER_STATUS_STATE and STARTER_STATUS_FRAMEWORK must not be empty")
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0) {
		return errors.New("STARTER_RATE_LIMIT_REQUESTS and STARTER_RATE_LIMIT_WINDOW must be positive")
	}
	if _, err := zapcore.ParseLevel(c.App.LogLevel); err != nil {
		return fmt.Errorf("STARTER_LOG_LEVEL: %w", err)
	}
	return nil
}
