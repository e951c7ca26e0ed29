package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/scrytools/scryfall-mcp/internal/scryfall"
)

const configFile = "scryfall.yaml"

// Config stores client tuning outside the binary. All fields are
// optional; zero values fall back to the client defaults.
type Config struct {
	BaseURL          string `yaml:"base_url"`
	UserAgent        string `yaml:"user_agent"`
	MinIntervalMs    int    `yaml:"min_interval_ms"`
	MaxRetries       int    `yaml:"max_retries"`
	InitialBackoffMs int    `yaml:"initial_backoff_ms"`
}

// Load reads the config file from dir. A missing file is not an
// error; it returns (nil, nil) and the defaults apply.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Save writes the config file into dir.
func Save(dir string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(filepath.Join(dir, configFile), data, 0600)
}

// ClientOptions maps the config onto client options. A nil config
// yields no options.
func (c *Config) ClientOptions() []scryfall.Option {
	if c == nil {
		return nil
	}

	var opts []scryfall.Option
	if c.BaseURL != "" {
		opts = append(opts, scryfall.WithBaseURL(c.BaseURL))
	}
	if c.UserAgent != "" {
		opts = append(opts, scryfall.WithUserAgent(c.UserAgent))
	}
	if c.MinIntervalMs > 0 {
		opts = append(opts, scryfall.WithMinInterval(time.Duration(c.MinIntervalMs)*time.Millisecond))
	}
	if c.MaxRetries > 0 {
		opts = append(opts, scryfall.WithMaxRetries(c.MaxRetries))
	}
	if c.InitialBackoffMs > 0 {
		opts = append(opts, scryfall.WithInitialBackoff(time.Duration(c.InitialBackoffMs)*time.Millisecond))
	}
	return opts
}
