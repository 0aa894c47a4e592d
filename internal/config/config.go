// Package config handles reading and writing ~/.byetax/config.yaml and the
// environment overrides layered on top of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for config.yaml.
type Config struct {
	Version int          `yaml:"version"`
	API     APIConfig    `yaml:"api"`
	Share   ShareConfig  `yaml:"share"`
	UI      UIConfig     `yaml:"ui"`
	Export  ExportConfig `yaml:"export"`
	Log     LogConfig    `yaml:"log"`
}

// APIConfig locates the analysis backend.
type APIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// ShareConfig controls share-link construction.
type ShareConfig struct {
	PageURL string `yaml:"page_url"` // page that opens ?share=<token>; defaults to the API base
}

// UIConfig holds TUI timings.
type UIConfig struct {
	ToastMs           int `yaml:"toast_ms"`
	ToastFadeMs       int `yaml:"toast_fade_ms"`
	ShareCloseDelayMs int `yaml:"share_close_delay_ms"`
}

// ExportConfig controls where Excel exports are written.
type ExportConfig struct {
	Dir    string `yaml:"dir"`
	Notify bool   `yaml:"notify"`
}

// LogConfig controls the event log.
type LogConfig struct {
	Level string `yaml:"level"` // debug | info | warn | error
}

// Environment variables that override file values.
const (
	EnvHome     = "BYETAX_HOME"
	EnvAPIURL   = "BYETAX_API_URL"
	EnvShareURL = "BYETAX_SHARE_URL"
	EnvLogLevel = "BYETAX_LOG_LEVEL"
)

const (
	stateDir   = ".byetax"
	configFile = "config.yaml"
	envFile    = ".env"
)

// StateDir returns the directory holding config, credential store and log:
// $BYETAX_HOME if set, else ~/.byetax.
func StateDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, stateDir), nil
}

// ReadConfig reads config.yaml from dir.
// Returns an error if the file is not found or YAML is malformed.
// Fields missing from the file keep their default values.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// WriteConfig writes cfg to config.yaml in dir.
// Creates dir if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dir, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Load reads config.yaml from dir if present (defaults otherwise), then
// loads .env from the working directory and applies environment overrides.
func Load(dir string) (*Config, error) {
	cfg, err := ReadConfig(dir)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides file values with BYETAX_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvShareURL); v != "" {
		c.Share.PageURL = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
}

// SharePageURL returns the page that share links point at.
func (c *Config) SharePageURL() string {
	if c.Share.PageURL != "" {
		return c.Share.PageURL
	}
	return strings.TrimRight(c.API.BaseURL, "/") + "/"
}

// Timeout returns the API request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// ToastDuration returns how long a toast stays fully visible.
func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.UI.ToastMs) * time.Millisecond
}

// ToastFade returns the length of the toast's faded state.
func (c *Config) ToastFade() time.Duration {
	return time.Duration(c.UI.ToastFadeMs) * time.Millisecond
}

// ShareCloseDelay returns the delay before the share modal closes after a
// platform share intent is launched.
func (c *Config) ShareCloseDelay() time.Duration {
	return time.Duration(c.UI.ShareCloseDelayMs) * time.Millisecond
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APIConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 60,
		},
		UI: UIConfig{
			ToastMs:           2000,
			ToastFadeMs:       300,
			ShareCloseDelayMs: 500,
		},
		Export: ExportConfig{
			Dir:    ".",
			Notify: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
