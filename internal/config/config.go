package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/fbsfernando/bot-link-manager/internal/constants"
	"github.com/fbsfernando/bot-link-manager/internal/models"
	"github.com/fbsfernando/bot-link-manager/internal/security"
)

var (
	ErrMissingGatewayURL = models.ConfigError{Message: "missing gateway base URL"}
	ErrMissingDBPath     = models.ConfigError{Message: "missing database path"}
)

func LoadConfig(path string) (*models.Config, error) {
	// Validate config file path to prevent directory traversal
	if err := security.ValidateFilePath(path); err != nil {
		return nil, fmt.Errorf("invalid config path: %w", err)
	}

	file, err := os.ReadFile(path) // #nosec G304 - Path validated by security.ValidateFilePath above
	if err != nil {
		return nil, err
	}

	var config models.Config
	if err := json.Unmarshal(file, &config); err != nil {
		return nil, err
	}

	applyEnvironmentOverrides(&config)

	if err := validate(&config); err != nil {
		return nil, err
	}

	// Perform security validation after environment overrides
	if err := validateSecurity(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func validate(c *models.Config) error {
	if c.Gateway.BaseURL == "" {
		return ErrMissingGatewayURL
	}
	if c.Database.Path == "" {
		return ErrMissingDBPath
	}

	if c.Server.Port <= 0 {
		c.Server.Port = constants.DefaultServerPort
	}
	if c.Server.ReadTimeoutSec <= 0 {
		c.Server.ReadTimeoutSec = constants.DefaultServerReadTimeoutSec
	}
	if c.Server.WriteTimeoutSec <= 0 {
		c.Server.WriteTimeoutSec = constants.DefaultServerWriteTimeoutSec
	}
	if c.Server.IdleTimeoutSec <= 0 {
		c.Server.IdleTimeoutSec = constants.DefaultServerIdleTimeoutSec
	}
	if c.Server.StatusPollIntervalSec <= 0 {
		c.Server.StatusPollIntervalSec = constants.DefaultStatusPollIntervalSec
	}
	if c.Gateway.TimeoutSec <= 0 {
		c.Gateway.TimeoutSec = constants.DefaultGatewayTimeoutSec
	}

	if c.Retry.InitialBackoffMs <= 0 {
		c.Retry.InitialBackoffMs = constants.DefaultBackoffInitialMs
	}
	if c.Retry.MaxBackoffMs <= 0 {
		c.Retry.MaxBackoffMs = constants.DefaultBackoffMaxMs
	}
	if c.Retry.MaxAttempts <= 0 {
		c.Retry.MaxAttempts = constants.DefaultDatabaseRetryAttempts
	}

	return nil
}

func applyEnvironmentOverrides(c *models.Config) {
	if url := os.Getenv("WAHA_BASE_URL"); url != "" {
		c.Gateway.BaseURL = url
	}

	// SECURITY: credentials come from the environment, never the config file
	if key := os.Getenv("WAHA_API_KEY"); key != "" {
		c.Gateway.APIKey = key
	}
	if secret := os.Getenv("BOTLINK_JWT_SECRET"); secret != "" {
		c.Auth.JWTSecret = secret
	}

	if path := os.Getenv("DB_PATH"); path != "" {
		c.Database.Path = path
	}
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil && p > 0 {
			c.Server.Port = p
		}
	}
}

// validateSecurity performs security-specific validation
func validateSecurity(c *models.Config) error {
	// Check if we're in production mode
	isProduction := os.Getenv("BOTLINK_ENV") == "production"

	if c.Auth.JWTSecret == "" {
		if isProduction {
			return models.ConfigError{Message: "JWT secret is required in production (set BOTLINK_JWT_SECRET environment variable)"}
		}
		fmt.Fprintf(os.Stderr, "WARNING: JWT secret not set. Set BOTLINK_JWT_SECRET environment variable; all requests will be rejected.\n")
	}

	if isProduction {
		if len(c.Auth.JWTSecret) < 32 {
			return models.ConfigError{Message: "JWT secret must be at least 32 characters long"}
		}

		if c.Gateway.APIKey == "" {
			return models.ConfigError{Message: "gateway API key is required in production (set WAHA_API_KEY environment variable)"}
		}

		if c.LogLevel == "debug" {
			return models.ConfigError{Message: "debug logging should not be used in production (security risk)"}
		}
	} else if c.Gateway.APIKey == "" {
		fmt.Fprintf(os.Stderr, "WARNING: gateway API key not set. Set WAHA_API_KEY environment variable if the gateway requires authentication.\n")
	}

	return nil
}
