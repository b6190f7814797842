package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for luxmon
type Config struct {
	// Light settings
	Brightness int  `yaml:"brightness"`
	Debug      bool `yaml:"debug"`

	// Polling cadence
	TickInterval      time.Duration `yaml:"tick_interval"`
	IdleCheckInterval time.Duration `yaml:"idle_check_interval"`
	IdleCacheTTL      time.Duration `yaml:"idle_cache_ttl"`

	// Presence thresholds
	IdleThreshold   time.Duration `yaml:"idle_threshold"`
	OffThreshold    time.Duration `yaml:"off_threshold"`
	MinCallDuration time.Duration `yaml:"min_call_duration"`

	// Detection
	DisabledDetectors []string `yaml:"disabled_detectors"`
	Browsers          []string `yaml:"browsers"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Brightness:        75,
		TickInterval:      3 * time.Second,
		IdleCheckInterval: 30 * time.Second,
		IdleCacheTTL:      30 * time.Second,
		IdleThreshold:     30 * time.Minute,
		OffThreshold:      60 * time.Minute,
		MinCallDuration:   60 * time.Second,
		Browsers:          []string{"Google Chrome", "Safari", "Microsoft Edge"},
	}
}

// Load loads configuration from the given file path, or from the default
// location when path is empty. A missing config file is not an error; the
// defaults apply.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = defaultConfigPath()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfigPath returns the default config file path
func defaultConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "luxmon", "config.yaml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "luxmon", "config.yaml")
	}

	return ""
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(cfg *Config, path string) error {
	// #nosec G304 - The config file path comes from trusted sources (flag or standard locations)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// ClampBrightness clamps a brightness value to the 0-100 range.
func ClampBrightness(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// IdleTicksPerRefresh returns how many ticks elapse between fresh idle/lock
// queries.
func (c *Config) IdleTicksPerRefresh() int {
	n := int(c.IdleCheckInterval / c.TickInterval)
	if n < 1 {
		n = 1
	}
	return n
}

// validate validates the configuration
func validate(cfg *Config) error {
	if cfg.Brightness < 0 || cfg.Brightness > 100 {
		return fmt.Errorf("brightness must be between 0 and 100, got %d", cfg.Brightness)
	}

	if cfg.TickInterval <= 0 {
		return fmt.Errorf("tick_interval must be positive")
	}

	if cfg.IdleCheckInterval < cfg.TickInterval {
		return fmt.Errorf("idle_check_interval must be at least tick_interval")
	}

	if cfg.IdleCacheTTL <= 0 {
		return fmt.Errorf("idle_cache_ttl must be positive")
	}

	if cfg.OffThreshold < cfg.IdleThreshold {
		return fmt.Errorf("off_threshold must be at least idle_threshold")
	}

	if cfg.MinCallDuration < 0 {
		return fmt.Errorf("min_call_duration must be non-negative")
	}

	return nil
}
