package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WAHA_BASE_URL", "WAHA_API_KEY", "BOTLINK_JWT_SECRET",
		"DB_PATH", "PORT", "BOTLINK_ENV",
	} {
		t.Setenv(key, "")
	}
}

const minimalConfig = `{
	"gateway": {"base_url": "http://waha:3000"},
	"database": {"path": "/tmp/botlink.db"}
}`

func TestLoadConfig_Minimal(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, minimalConfig)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://waha:3000", cfg.Gateway.BaseURL)
	assert.Equal(t, "/tmp/botlink.db", cfg.Database.Path)

	// Defaults applied
	assert.Equal(t, 8082, cfg.Server.Port)
	assert.Equal(t, 15, cfg.Server.ReadTimeoutSec)
	assert.Equal(t, 15, cfg.Server.WriteTimeoutSec)
	assert.Equal(t, 60, cfg.Server.IdleTimeoutSec)
	assert.Equal(t, 5, cfg.Server.StatusPollIntervalSec)
	assert.Equal(t, 30, cfg.Gateway.TimeoutSec)
	assert.Equal(t, 500, cfg.Retry.InitialBackoffMs)
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
}

func TestLoadConfig_MissingFields(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing gateway URL",
			content: `{"database": {"path": "/tmp/botlink.db"}}`,
			wantErr: "missing gateway base URL",
		},
		{
			name:    "missing database path",
			content: `{"gateway": {"base_url": "http://waha:3000"}}`,
			wantErr: "missing database path",
		},
		{
			name:    "invalid json",
			content: `{not json`,
			wantErr: "invalid character",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_PathValidation(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("../../../etc/passwd")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WAHA_BASE_URL", "http://override:3000")
	t.Setenv("WAHA_API_KEY", "env-api-key")
	t.Setenv("BOTLINK_JWT_SECRET", "env-jwt-secret")
	t.Setenv("DB_PATH", "/tmp/override.db")
	t.Setenv("PORT", "9090")

	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "http://override:3000", cfg.Gateway.BaseURL)
	assert.Equal(t, "env-api-key", cfg.Gateway.APIKey)
	assert.Equal(t, "env-jwt-secret", cfg.Auth.JWTSecret)
	assert.Equal(t, "/tmp/override.db", cfg.Database.Path)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoadConfig_EnvFillsMissingRequired(t *testing.T) {
	clearEnv(t)
	t.Setenv("WAHA_BASE_URL", "http://waha:3000")
	t.Setenv("DB_PATH", "/tmp/botlink.db")

	cfg, err := LoadConfig(writeConfig(t, `{}`))
	require.NoError(t, err)
	assert.Equal(t, "http://waha:3000", cfg.Gateway.BaseURL)
}

func TestLoadConfig_InvalidPortIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "not-a-number")

	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	require.NoError(t, err)
	assert.Equal(t, 8082, cfg.Server.Port)
}

func TestLoadConfig_ProductionSecurity(t *testing.T) {
	strongSecret := "a-production-grade-secret-with-32+-chars"

	tests := []struct {
		name    string
		env     map[string]string
		extra   string
		wantErr string
	}{
		{
			name:    "missing JWT secret",
			env:     map[string]string{"WAHA_API_KEY": "key"},
			wantErr: "JWT secret is required in production",
		},
		{
			name:    "weak JWT secret",
			env:     map[string]string{"BOTLINK_JWT_SECRET": "short", "WAHA_API_KEY": "key"},
			wantErr: "at least 32 characters",
		},
		{
			name:    "missing gateway API key",
			env:     map[string]string{"BOTLINK_JWT_SECRET": strongSecret},
			wantErr: "gateway API key is required in production",
		},
		{
			name:    "debug logging",
			env:     map[string]string{"BOTLINK_JWT_SECRET": strongSecret, "WAHA_API_KEY": "key"},
			extra:   `, "log_level": "debug"`,
			wantErr: "debug logging should not be used in production",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("BOTLINK_ENV", "production")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			content := `{
				"gateway": {"base_url": "http://waha:3000"},
				"database": {"path": "/tmp/botlink.db"}` + tt.extra + `
			}`
			cfg, err := LoadConfig(writeConfig(t, content))
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadConfig_ProductionHappyPath(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOTLINK_ENV", "production")
	t.Setenv("BOTLINK_JWT_SECRET", "a-production-grade-secret-with-32+-chars")
	t.Setenv("WAHA_API_KEY", "prod-key")

	cfg, err := LoadConfig(writeConfig(t, minimalConfig))
	require.NoError(t, err)
	assert.Equal(t, "prod-key", cfg.Gateway.APIKey)
}
