package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/costsift/costsift/model"
	"github.com/costsift/costsift/service/classifier"
	"github.com/costsift/costsift/service/pricing"
)

// DefaultWindowDays is the metric lookback used when the config file does
// not set one.
const DefaultWindowDays = 14

// Thresholds mirrors the classifier cutoffs in the config file. Zero values
// fall back to the stock defaults.
type Thresholds struct {
	ComputeCPUPercent   float64 `yaml:"compute_cpu_percent"`
	DatabaseConnections float64 `yaml:"database_connections"`
	StorageGetRequests  float64 `yaml:"storage_get_requests"`
	ColdSizeGiB         float64 `yaml:"cold_size_gib"`
}

// Publish holds the default upload target for finished reports.
type Publish struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

// Config holds optional defaults loaded from ~/.config/costsift/config.yaml.
// CLI flags take precedence over everything in here.
type Config struct {
	DefaultProfile string   `yaml:"default_profile"`
	DefaultRegion  string   `yaml:"default_region"`
	WindowDays     int      `yaml:"window_days"`
	Kinds          []string `yaml:"kinds"`

	Thresholds Thresholds                    `yaml:"thresholds"`
	Prices     map[string]map[string]float64 `yaml:"prices"`
	Publish    Publish                       `yaml:"publish"`
}

// DefaultPath returns the conventional config file location, or "" when the
// home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "costsift", "config.yaml")
}

// Load reads the config file at path, falling back to DefaultPath when path
// is empty. A missing file at the default location yields a zero-value
// Config; a missing file at an explicitly requested path is an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
		if path == "" {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks the file contents before the scan starts.
func (c *Config) Validate() error {
	if c.WindowDays < 0 {
		return fmt.Errorf("window_days must not be negative, got %d", c.WindowDays)
	}
	if c.Thresholds.ComputeCPUPercent < 0 || c.Thresholds.DatabaseConnections < 0 ||
		c.Thresholds.StorageGetRequests < 0 || c.Thresholds.ColdSizeGiB < 0 {
		return errors.New("thresholds must not be negative")
	}
	for _, name := range c.Kinds {
		if !model.Kind(name).Valid() {
			return fmt.Errorf("unknown kind %q in kinds", name)
		}
	}
	for kindName, dims := range c.Prices {
		if !model.Kind(kindName).Valid() {
			return fmt.Errorf("unknown kind %q in prices", kindName)
		}
		for dim, price := range dims {
			if price < 0 {
				return fmt.Errorf("price for %s %q must not be negative", kindName, dim)
			}
		}
	}
	return nil
}

// Merge applies CLI flag overrides. Flags take precedence over config defaults.
func (c *Config) Merge(profile, region string) (string, string) {
	p := c.DefaultProfile
	if profile != "" {
		p = profile
	}
	r := c.DefaultRegion
	if region != "" {
		r = region
	}
	return p, r
}

// Window returns the effective metric lookback in days.
func (c *Config) Window() int {
	if c.WindowDays > 0 {
		return c.WindowDays
	}
	return DefaultWindowDays
}

// ScanKinds converts the configured kind names; empty means every kind.
func (c *Config) ScanKinds() []model.Kind {
	kinds := make([]model.Kind, 0, len(c.Kinds))
	for _, name := range c.Kinds {
		kinds = append(kinds, model.Kind(name))
	}
	return kinds
}

// ScanThresholds returns the stock cutoffs with any configured overrides.
func (c *Config) ScanThresholds() classifier.Thresholds {
	t := classifier.DefaultThresholds()
	if c.Thresholds.ComputeCPUPercent > 0 {
		t.ComputeCPUPercent = c.Thresholds.ComputeCPUPercent
	}
	if c.Thresholds.DatabaseConnections > 0 {
		t.DatabaseConnections = c.Thresholds.DatabaseConnections
	}
	if c.Thresholds.StorageGetRequests > 0 {
		t.StorageGetRequests = c.Thresholds.StorageGetRequests
	}
	if c.Thresholds.ColdSizeGiB > 0 {
		t.ColdSizeGiB = c.Thresholds.ColdSizeGiB
	}
	return t
}

// PriceTable returns the built-in price table with any configured overrides.
func (c *Config) PriceTable() pricing.Table {
	table := pricing.DefaultTable()
	if len(c.Prices) == 0 {
		return table
	}
	override := make(pricing.Table, len(c.Prices))
	for kindName, dims := range c.Prices {
		override[model.Kind(kindName)] = dims
	}
	return table.Merge(override)
}
