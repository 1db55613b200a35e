package models

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `json:"server"`
	Gateway  GatewayConfig  `json:"gateway"`
	Auth     AuthConfig     `json:"auth"`
	Database DatabaseConfig `json:"database"`
	Tracing  TracingConfig  `json:"tracing"`
	Retry    RetryConfig    `json:"retry"`
	LogLevel string         `json:"log_level"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port                  int      `json:"port"`
	ReadTimeoutSec        int      `json:"readTimeoutSec"`
	WriteTimeoutSec       int      `json:"writeTimeoutSec"`
	IdleTimeoutSec        int      `json:"idleTimeoutSec"`
	StatusPollIntervalSec int      `json:"statusPollIntervalSec"`
	AllowedOrigins        []string `json:"allowedOrigins"`
}

// GatewayConfig holds WAHA gateway settings. The API key is taken from the
// environment, never from the config file.
type GatewayConfig struct {
	BaseURL    string `json:"base_url"`
	APIKey     string `json:"-"`
	TimeoutSec int    `json:"timeoutSec"`
}

// AuthConfig holds bearer-token verification settings. The signing secret is
// taken from the environment, never from the config file.
type AuthConfig struct {
	JWTSecret string `json:"-"`
}

// DatabaseConfig holds database related configurations
type DatabaseConfig struct {
	Path string `json:"path"`
}

// TracingConfig holds OpenTelemetry settings
type TracingConfig struct {
	ServiceName    string  `json:"service_name"`
	ServiceVersion string  `json:"service_version"`
	Environment    string  `json:"environment"`
	OTLPEndpoint   string  `json:"otlp_endpoint"`
	SampleRate     float64 `json:"sample_rate"`
	Enabled        bool    `json:"enabled"`
	UseStdout      bool    `json:"use_stdout"`
}

// RetryConfig holds startup retry related configurations
type RetryConfig struct {
	InitialBackoffMs int `json:"initialBackoffMs"`
	MaxBackoffMs     int `json:"maxBackoffMs"`
	MaxAttempts      int `json:"maxAttempts"`
}

type ConfigError struct {
	Message string
}

func (e ConfigError) Error() string {
	return e.Message
}
