package config

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config contains configurable parameters for the dashboard, the development
// API server and the MCP server. Use DefaultConfig() or Load(), then override
// as needed.
type Config struct {
	// Dashboard
	APIBaseURL     string        `env:"READTRACK_API_URL" envDefault:"http://localhost:8000"`
	RequestTimeout time.Duration `env:"READTRACK_REQUEST_TIMEOUT" envDefault:"0s"` // 0 disables the per-request timeout

	// Logging
	LogLevel string `env:"READTRACK_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"READTRACK_LOG_FILE" envDefault:"readtrack.log"`

	// Development API server
	ServerAddr     string   `env:"READTRACK_SERVER_ADDR" envDefault:"127.0.0.1:8000"`
	DuckDBPath     string   `env:"READTRACK_DUCKDB_PATH"` // empty means in-memory
	PopularLimit   int      `env:"READTRACK_POPULAR_LIMIT" envDefault:"10"`
	CORSOrigins    []string `env:"READTRACK_CORS_ORIGINS" envDefault:"http://localhost:3000,http://127.0.0.1:3000" envSeparator:","`
	SeedSampleData bool     `env:"READTRACK_SEED" envDefault:"true"`
	RateLimit      float64  `env:"READTRACK_RATE_LIMIT" envDefault:"50"` // requests per second, 0 disables
	RateBurst      int      `env:"READTRACK_RATE_BURST" envDefault:"100"`

	// MCP server
	MCPServerName    string `env:"READTRACK_MCP_NAME" envDefault:"readtrack"`
	MCPServerVersion string `env:"READTRACK_MCP_VERSION" envDefault:"1.0.0"`
}

// DefaultConfig returns a Config with the built-in defaults, ignoring the
// environment.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:       "http://localhost:8000",
		RequestTimeout:   0,
		LogLevel:         "info",
		LogFile:          "readtrack.log",
		ServerAddr:       "127.0.0.1:8000",
		PopularLimit:     10,
		CORSOrigins:      []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		SeedSampleData:   true,
		RateLimit:        50,
		RateBurst:        100,
		MCPServerName:    "readtrack",
		MCPServerVersion: "1.0.0",
	}
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// WithAPIBaseURL returns a copy of the config with a different API base URL.
func (c Config) WithAPIBaseURL(u string) Config {
	c.APIBaseURL = u
	return c
}

// WithRequestTimeout returns a copy of the config with a different request timeout.
func (c Config) WithRequestTimeout(d time.Duration) Config {
	c.RequestTimeout = d
	return c
}

// WithServerAddr returns a copy of the config with a different listen address.
func (c Config) WithServerAddr(addr string) Config {
	c.ServerAddr = addr
	return c
}

// WithDuckDBPath returns a copy of the config pointing at a DuckDB file.
func (c Config) WithDuckDBPath(path string) Config {
	c.DuckDBPath = path
	return c
}

// WithLogLevel returns a copy of the config with a different log level.
func (c Config) WithLogLevel(level string) Config {
	c.LogLevel = level
	return c
}

// Validate checks if the configuration is valid and returns an error if not.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ConfigError{Field: "APIBaseURL", Message: "must be an absolute http(s) URL"}
	}
	if c.RequestTimeout < 0 {
		return &ConfigError{Field: "RequestTimeout", Message: "must not be negative"}
	}
	if c.ServerAddr == "" {
		return &ConfigError{Field: "ServerAddr", Message: "must not be empty"}
	}
	if c.RateLimit < 0 {
		return &ConfigError{Field: "RateLimit", Message: "must not be negative"}
	}
	if c.PopularLimit <= 0 {
		return &ConfigError{Field: "PopularLimit", Message: "must be positive"}
	}
	return nil
}

// SlogLevel maps LogLevel onto a slog level. Unknown names fall back to info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warning", "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Field + " " + e.Message
}

// SetupLogger installs a JSON slog logger writing to w as the default logger.
func SetupLogger(cfg Config, w io.Writer) *slog.Logger {
	logger := slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)
	return logger
}
