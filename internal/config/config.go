package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"
)

// DefaultAPIBaseURL is used when neither the config file nor the environment set one
const DefaultAPIBaseURL = "http://localhost:3000"

// Config holds user preferences
type Config struct {
	APIBaseURL     string        `yaml:"api_base_url" env:"TIDYTASK_API_BASE_URL"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"TIDYTASK_REQUEST_TIMEOUT"` // 0 waits forever
	ConfirmDelete  bool          `yaml:"confirm_delete" env:"TIDYTASK_CONFIRM_DELETE"`

	// RefreshInterval is how often the TUI reloads in the background; 0 disables it
	RefreshInterval time.Duration `yaml:"refresh_interval" env:"TIDYTASK_REFRESH_INTERVAL"`

	// Logging configuration
	LogLevel   string `yaml:"log_level" env:"TIDYTASK_LOG_LEVEL"`     // DEBUG, INFO, WARN, ERROR
	LogFile    string `yaml:"log_file" env:"TIDYTASK_LOG_FILE"`       // Path to log file
	LogConsole bool   `yaml:"log_console" env:"TIDYTASK_LOG_CONSOLE"` // Enable console logging
}

// DefaultConfig returns default settings
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	logPath := ""
	if home != "" {
		logPath = filepath.Join(home, ".tidytask", "logs", "tidytask.log")
	}

	return &Config{
		APIBaseURL:      DefaultAPIBaseURL,
		ConfirmDelete:   true,
		RefreshInterval: 30 * time.Second,
		LogLevel:        "INFO",
		LogFile:         logPath,
	}
}

// Path returns ~/.tidytask/config.yaml
func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tidytask", "config.yaml"), nil
}

// Load loads config from ~/.tidytask/config.yaml and applies environment overrides
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the YAML file at path (defaults if missing), then applies
// TIDYTASK_* environment variables on top.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = DefaultAPIBaseURL
	}

	return cfg, nil
}

// Save saves config to ~/.tidytask/config.yaml
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config as YAML to path
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
