// Package config loads the server configuration from environment variables,
// applies defaults and validates everything on startup so a bad setting
// stops the process before it accepts uploads.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Limits   LimitsConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request, uploads included (default: 60s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"60s"`

	// WriteTimeout is the maximum duration for writing the response (default: 120s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"120s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for in-flight runs (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 120s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"120s"`
}

// LimitsConfig bounds the memory and time a run may use.
type LimitsConfig struct {
	// MaxFileSize is the largest accepted upload, per file. Accepts "50MB" style values (default: 50MB)
	MaxFileSize int64 `env:"LIMITS_MAX_FILE_SIZE" default:"50MB" unit:"bytes"`

	// MaxConcurrentRuns is the number of runs allowed at once (default: 4)
	MaxConcurrentRuns int `env:"LIMITS_MAX_CONCURRENT_RUNS" default:"4"`

	// MaxWaitTime is how long a run waits for a free slot (default: 15s)
	MaxWaitTime time.Duration `env:"LIMITS_MAX_WAIT_TIME" default:"15s"`

	// RunTimeout is the maximum duration of one run (default: 2m)
	RunTimeout time.Duration `env:"LIMITS_RUN_TIMEOUT" default:"2m"`

	// PreviewRows is how many result rows the web page shows (default: 100)
	PreviewRows int `env:"LIMITS_PREVIEW_ROWS" default:"100"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the limit for page and column requests (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`

	// RunLimit is requests per minute for run and export endpoints (default: 20)
	RunLimit int `env:"RATE_LIMIT_RUN" default:"20"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// MetricsAPIKeys, when set, are required to read /metrics
	MetricsAPIKeys []string `env:"METRICS_API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
