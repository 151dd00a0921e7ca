package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"api_url": "https://hr.example.com/api",
		"timeout": "10s",
		"headers": {"X-Tenant": "acme"},
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://hr.example.com/api", cfg.APIURL)
	assert.Equal(t, "10s", cfg.Timeout)
	assert.Equal(t, "acme", cfg.Headers["X-Tenant"])
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	content := "api_url: https://hr.example.com/api\nredirect_delay: 500ms\n"

	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(tmpFile, []byte(content), 0644))

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)

	assert.Equal(t, "https://hr.example.com/api", cfg.APIURL)
	assert.Equal(t, 500*time.Millisecond, cfg.RedirectDelayDuration())
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	content := `{ invalid json }`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("api_url: [unterminated"), 0644))

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Default()},
		{name: "empty", cfg: Config{}},
		{name: "bad url", cfg: Config{APIURL: "not a url"}, wantErr: "config error"},
		{name: "bad timeout", cfg: Config{Timeout: "soon"}, wantErr: "'timeout'"},
		{name: "zero timeout", cfg: Config{Timeout: "0s"}, wantErr: "must be positive"},
		{name: "negative delay", cfg: Config{RedirectDelay: "-1s"}, wantErr: "'redirect_delay'"},
		{name: "zero delay", cfg: Config{RedirectDelay: "0s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://env.example.com")
	t.Setenv(EnvAPITimeout, "5s")
	t.Setenv(EnvRedirectDelay, "")

	cfg := FromEnv()

	assert.Equal(t, "https://env.example.com", cfg.APIURL)
	assert.Equal(t, "5s", cfg.Timeout)
	assert.Empty(t, cfg.RedirectDelay)
}

func TestMergeWithDefaults(t *testing.T) {
	defaults := Config{
		APIURL:        "https://default.example.com",
		Timeout:       "30s",
		RedirectDelay: "2s",
		Headers:       map[string]string{"X-Tenant": "default", "X-Team": "hr"},
	}

	partial := Config{
		APIURL:  "https://custom.example.com",
		Headers: map[string]string{"X-Tenant": "acme"},
	}

	merged := partial.MergeWithDefaults(defaults)

	// Custom values should be preserved
	assert.Equal(t, "https://custom.example.com", merged.APIURL)
	assert.Equal(t, "acme", merged.Headers["X-Tenant"])

	// Default values should fill in empty fields
	assert.Equal(t, "30s", merged.Timeout)
	assert.Equal(t, "2s", merged.RedirectDelay)
	assert.Equal(t, "hr", merged.Headers["X-Team"])
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := Config{APIURL: "https://custom.example.com"}

	merged := cfg.MergeWithDefaults(Config{})

	assert.Equal(t, "https://custom.example.com", merged.APIURL)
	assert.Empty(t, merged.Timeout)
}

func TestDurations_FallBackToDefaults(t *testing.T) {
	cfg := Config{Timeout: "garbage"}

	assert.Equal(t, 30*time.Second, cfg.TimeoutDuration())
	assert.Equal(t, 2*time.Second, cfg.RedirectDelayDuration())
}
