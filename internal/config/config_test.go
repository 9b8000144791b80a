package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"API_KEY", "MIAOBI_PROVIDER", "MIAOBI_MODEL", "MIAOBI_BASE_URL",
		"MIAOBI_TIMEOUT", "MIAOBI_LOG_LEVEL", "MIAOBI_LOG_FILE", "MIAOBI_ADDR",
	} {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
provider: openai
api_key: sk-file-key-123456
timeout: 45s
log:
  level: debug
server:
  addr: ":9090"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.Model, "model falls back to provider default")
	assert.Equal(t, "https://api.openai.com/v1", cfg.BaseURL)
	assert.Equal(t, 45*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, path, cfg.Path)
	assert.NoError(t, cfg.Validate())
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "provider: openai\nmodel: gpt-4o\napi_key: from-file\n")
	t.Setenv("API_KEY", "from-env")
	t.Setenv("MIAOBI_PROVIDER", "deepseek")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey)
	assert.Equal(t, "deepseek", cfg.Provider)
	assert.Equal(t, "deepseek-chat", cfg.Model, "file model does not leak into another provider")
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.BaseURL)
}

func TestEmptyTimeoutEnvIsIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "k")
	t.Setenv("MIAOBI_TIMEOUT", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
}

func TestTimeoutEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MIAOBI_TIMEOUT", "30s")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, cfg.Timeout)

	t.Setenv("MIAOBI_TIMEOUT", "soon")
	_, err = Load(filepath.Join(t.TempDir(), "nope.yaml"))
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "want ConfigurationError, got %v", err)
	assert.Equal(t, "timeout", cfgErr.Field)
}

func TestLoadRejectsBadYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "provider: [unterminated\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{"missing key", func(c *Config) { c.APIKey = "" }, "api_key"},
		{"unknown provider", func(c *Config) { c.Provider = "bard" }, "provider"},
		{"custom without url", func(c *Config) { c.Provider = "custom"; c.BaseURL = "" }, "base_url"},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "timeout"},
		{"ollama needs no key", func(c *Config) { c.Provider = "ollama"; c.APIKey = "" }, ""},
		{"ok", func(c *Config) {}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.APIKey = "key"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var cfgErr *ConfigurationError
			require.True(t, errors.As(err, &cfgErr), "want ConfigurationError, got %v", err)
			assert.Equal(t, tt.wantField, cfgErr.Field)
		})
	}
}

func TestMaskedAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "Not set", cfg.MaskedAPIKey())
	cfg.APIKey = "short"
	assert.Equal(t, "****", cfg.MaskedAPIKey())
	cfg.APIKey = "AIzaSyExampleKey9876"
	assert.Equal(t, "AIza****9876", cfg.MaskedAPIKey())
}

func TestGetProvider(t *testing.T) {
	require.NotNil(t, GetProvider("gemini"))
	assert.True(t, GetProvider("gemini").NeedsAPIKey)
	assert.Nil(t, GetProvider("nope"))
}
