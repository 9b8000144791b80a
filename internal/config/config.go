package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Provider string        `yaml:"provider"`
	APIKey   string        `yaml:"api_key,omitempty"`
	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"base_url,omitempty"`
	Timeout  time.Duration `yaml:"timeout,omitempty"`

	Log    LogConfig    `yaml:"log"`
	Server ServerConfig `yaml:"server"`

	// Path is the file Load read, or would have read when it was missing.
	Path string `yaml:"-"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// envOverrides is read after the file; any non-empty value wins. Timeout
// stays a string so a set-but-empty MIAOBI_TIMEOUT is treated as unset.
type envOverrides struct {
	APIKey   string        `envconfig:"API_KEY"`
	Provider string        `envconfig:"MIAOBI_PROVIDER"`
	Model    string        `envconfig:"MIAOBI_MODEL"`
	BaseURL  string        `envconfig:"MIAOBI_BASE_URL"`
	Timeout  string        `envconfig:"MIAOBI_TIMEOUT"`
	LogLevel string        `envconfig:"MIAOBI_LOG_LEVEL"`
	LogFile  string        `envconfig:"MIAOBI_LOG_FILE"`
	Addr     string        `envconfig:"MIAOBI_ADDR"`
}

// ConfigurationError means the process cannot start with what it was given.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func DefaultConfig() *Config {
	return &Config{
		Provider: "gemini",
		Model:    "gemini-2.5-flash",
		Timeout:  2 * time.Minute,
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "miaobi"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultLogFile keeps logs next to the config so the terminal stays clean.
func DefaultLogFile() string {
	dir, err := ConfigDir()
	if err != nil {
		return "miaobi.log"
	}
	return filepath.Join(dir, "miaobi.log")
}

// Load reads the YAML file at path (the default location when empty), then
// applies environment overrides. A missing file is not an error.
// The result is not validated; call Validate before using it.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := ConfigPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	// model is left for fillDefaults so it follows whichever provider wins
	cfg := DefaultConfig()
	cfg.Model = ""

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, err
	}

	var env envOverrides
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.apply(env); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	cfg.Path = path

	return cfg, nil
}

func (c *Config) apply(env envOverrides) error {
	if env.Provider != "" && env.Provider != c.Provider {
		c.Provider = env.Provider
		// the file's model and endpoint belong to the file's provider
		c.Model = ""
		c.BaseURL = ""
	}
	if env.APIKey != "" {
		c.APIKey = env.APIKey
	}
	if env.Model != "" {
		c.Model = env.Model
	}
	if env.BaseURL != "" {
		c.BaseURL = env.BaseURL
	}
	if env.Timeout != "" {
		d, err := time.ParseDuration(env.Timeout)
		if err != nil {
			return &ConfigurationError{Field: "timeout", Reason: fmt.Sprintf("MIAOBI_TIMEOUT %q is not a duration", env.Timeout)}
		}
		c.Timeout = d
	}
	if env.LogLevel != "" {
		c.Log.Level = env.LogLevel
	}
	if env.LogFile != "" {
		c.Log.File = env.LogFile
	}
	if env.Addr != "" {
		c.Server.Addr = env.Addr
	}
	return nil
}

func (c *Config) fillDefaults() {
	p := GetProvider(c.Provider)
	if p == nil {
		return
	}
	if c.Model == "" {
		c.Model = p.DefaultModel
	}
	if c.BaseURL == "" {
		c.BaseURL = p.BaseURL
	}
}

// Validate checks the credential and provider once at startup.
func (c *Config) Validate() error {
	p := GetProvider(c.Provider)
	if p == nil {
		return &ConfigurationError{Field: "provider", Reason: fmt.Sprintf("unknown provider %q", c.Provider)}
	}
	if p.NeedsAPIKey && c.APIKey == "" {
		return &ConfigurationError{Field: "api_key", Reason: fmt.Sprintf("%s requires an API key (set API_KEY)", p.Name)}
	}
	if c.Provider == "custom" && c.BaseURL == "" {
		return &ConfigurationError{Field: "base_url", Reason: "custom provider requires base_url"}
	}
	if c.Model == "" {
		return &ConfigurationError{Field: "model", Reason: "no model configured"}
	}
	if c.Timeout < 0 {
		return &ConfigurationError{Field: "timeout", Reason: "must not be negative"}
	}
	return nil
}

// MaskedAPIKey is safe to put on screen.
func (c *Config) MaskedAPIKey() string {
	if c.APIKey == "" {
		return "Not set"
	}
	if len(c.APIKey) > 8 {
		return c.APIKey[:4] + "****" + c.APIKey[len(c.APIKey)-4:]
	}
	return "****"
}
