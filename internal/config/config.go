package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// RemoteConfig holds the hosted backend endpoint and its public API key. The
// user's bearer token is never written here; it comes from the environment.
type RemoteConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	APIKey  string `yaml:"api_key" json:"api_key"`
}

// Config is the top-level application configuration.
type Config struct {
	// DataDir holds the cache documents and the share inbox database.
	DataDir string `yaml:"data_dir" json:"data_dir"`

	// Timezone is the IANA timezone all weekend-key math runs in.
	Timezone string `yaml:"timezone" json:"timezone"`

	// RetryCron schedules periodic forced retries of pending sync
	// operations (e.g. "*/5 * * * *").
	RetryCron string `yaml:"retry_cron" json:"retry_cron"`

	// DebounceMillis is the window debounced cache saves collapse within.
	DebounceMillis int `yaml:"debounce_millis" json:"debounce_millis"`

	// LogLevel is DEBUG, INFO, or ERROR.
	LogLevel string `yaml:"log_level" json:"log_level"`

	// BackoffBaseSeconds and BackoffMaxSeconds bound the sync retry
	// backoff curve.
	BackoffBaseSeconds int `yaml:"backoff_base_seconds" json:"backoff_base_seconds"`
	BackoffMaxSeconds  int `yaml:"backoff_max_seconds" json:"backoff_max_seconds"`

	Remote RemoteConfig `yaml:"remote" json:"remote"`
}

func DefaultConfig() *Config {
	return &Config{
		DataDir:            defaultDataDir(),
		Timezone:           "Europe/London",
		RetryCron:          "*/5 * * * *",
		DebounceMillis:     500,
		LogLevel:           "INFO",
		BackoffBaseSeconds: 5,
		BackoffMaxSeconds:  600,
	}
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".weekend"
	}
	return filepath.Join(home, ".weekend")
}

// Normalize fills missing or invalid values with defaults so partially
// filled configs from older versions still behave.
func (c *Config) Normalize() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.Timezone == "" {
		c.Timezone = "Europe/London"
	}
	if c.RetryCron == "" {
		c.RetryCron = "*/5 * * * *"
	}
	if c.DebounceMillis <= 0 {
		c.DebounceMillis = 500
	}
	switch c.LogLevel {
	case "DEBUG", "INFO", "ERROR":
	default:
		c.LogLevel = "INFO"
	}
	if c.BackoffBaseSeconds <= 0 {
		c.BackoffBaseSeconds = 5
	}
	if c.BackoffMaxSeconds < c.BackoffBaseSeconds {
		c.BackoffMaxSeconds = 600
	}
}

// InboxPath is where the share inbox database lives.
func (c *Config) InboxPath() string {
	return filepath.Join(c.DataDir, "share-inbox.db")
}

// CacheDir is where the cache documents live.
func (c *Config) CacheDir() string {
	return filepath.Join(c.DataDir, "cache")
}

// Load reads configuration from a YAML path. A missing file is a first run:
// a default config is written with 0600 perms and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if saveErr := Save(path, cfg); saveErr != nil {
				return cfg, saveErr
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes cfg atomically via a temp file and rename, with 0600 perms.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".weekend-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func (c *Config) Save(path string) error {
	return Save(path, c)
}
