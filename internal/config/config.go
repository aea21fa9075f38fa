package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/nikbrunner/starter/internal/api"
	"github.com/nikbrunner/starter/internal/log"
)

// Environment variables that override the keys stored in the config file.
const (
	EnvPublicKey  = "MARVEL_PUBLIC_KEY"
	EnvPrivateKey = "MARVEL_PRIVATE_KEY"
)

// Config holds application configuration.
type Config struct {
	BaseURL        string    `json:"baseURL"`
	PublicKey      string    `json:"publicKey"`
	PrivateKey     string    `json:"privateKey"`
	PageSize       int       `json:"pageSize"`
	TimeoutSeconds int       `json:"timeoutSeconds"`
	ErrorPolicy    string    `json:"errorPolicy"`
	Log            LogConfig `json:"log"`
}

// LogConfig is the on-disk form of log.LogConfig.
type LogConfig struct {
	Dir        string `json:"dir,omitempty"`
	MaxSizeMB  *int   `json:"maxSizeMB,omitempty"` // 0 or less disables rotation
	MaxBackups int    `json:"maxBackups"`
	MaxAgeDays int    `json:"maxAgeDays"`
	Compress   *bool  `json:"compress,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	defaults := log.DefaultLogConfig()
	compress := defaults.Compress
	maxSize := defaults.MaxSizeMB
	return Config{
		BaseURL:        api.DefaultBaseURL,
		PageSize:       50,
		TimeoutSeconds: 15,
		ErrorPolicy:    "surface",
		Log: LogConfig{
			MaxSizeMB:  &maxSize,
			MaxBackups: defaults.MaxBackups,
			MaxAgeDays: defaults.MaxAgeDays,
			Compress:   &compress,
		},
	}
}

// Load reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
// Environment overrides are applied last and never written back.
func Load(path string) (*Config, error) {
	config, err := load(path)
	if err != nil {
		return nil, err
	}
	config.applyEnv()
	return config, nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			if saveErr := Save(path, &config); saveErr != nil {
				// Non-fatal: return defaults even if save fails
				log.WarningLog.Printf("could not write default config to %s: %v", path, saveErr)
			}
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.PageSize <= 0 {
		config.PageSize = defaults.PageSize
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if config.ErrorPolicy == "" {
		config.ErrorPolicy = defaults.ErrorPolicy
	}
	if config.Log.MaxSizeMB == nil {
		config.Log.MaxSizeMB = defaults.Log.MaxSizeMB
	}
	if config.Log.MaxBackups == 0 {
		config.Log.MaxBackups = defaults.Log.MaxBackups
	}
	if config.Log.MaxAgeDays == 0 {
		config.Log.MaxAgeDays = defaults.Log.MaxAgeDays
	}
	if config.Log.Compress == nil {
		config.Log.Compress = defaults.Log.Compress
	}

	return &config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvPublicKey); v != "" {
		c.PublicKey = v
	}
	if v := os.Getenv(EnvPrivateKey); v != "" {
		c.PrivateKey = v
	}
}

// Save writes config to the JSON file.
// Creates the directory if it doesn't exist.
func Save(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	// 0600: the file may hold the private key
	return os.WriteFile(path, data, 0600)
}

// Timeout returns the HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogSettings converts the on-disk log section for log.Initialize.
func (c *Config) LogSettings() log.LogConfig {
	defaults := log.DefaultLogConfig()
	compress := defaults.Compress
	if c.Log.Compress != nil {
		compress = *c.Log.Compress
	}
	maxSize := defaults.MaxSizeMB
	if c.Log.MaxSizeMB != nil {
		maxSize = *c.Log.MaxSizeMB
	}
	return log.LogConfig{
		Dir:        c.Log.Dir,
		MaxSizeMB:  maxSize,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
		Compress:   compress,
	}
}

// ClientParams returns the api client settings.
func (c *Config) ClientParams() api.ClientParams {
	return api.ClientParams{
		BaseURL:    c.BaseURL,
		PublicKey:  c.PublicKey,
		PrivateKey: c.PrivateKey,
		Timeout:    c.Timeout(),
	}
}

// DefaultFilePath returns the default config path: ~/.config/starter/config.json
func DefaultFilePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "starter", "config.json"), nil
}
