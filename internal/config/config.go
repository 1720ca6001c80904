package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"subcost/internal/pricing"
)

// DefaultWindowSize is how many accounting records a report shows when the
// caller does not ask for a specific window.
const DefaultWindowSize = 5

// Config is the optional operator configuration at ~/.subcost/config.json.
// Every field has a sensible default; a missing file is not an error.
type Config struct {
	DataDir     string `json:"dataDir,omitempty"`     // event log directory
	PricingFile string `json:"pricingFile,omitempty"` // pricing table override
	WindowSize  int    `json:"windowSize,omitempty"`  // default report window
}

// ConfigPath is where Load looks for the config file. Overridable in tests.
var ConfigPath string

func init() {
	homeDir, _ := os.UserHomeDir()
	ConfigPath = filepath.Join(homeDir, ".subcost", "config.json")
}

// baseDir is the directory holding the config file; defaults hang off it.
func baseDir() string {
	return filepath.Dir(ConfigPath)
}

// Load reads the config file. A missing file yields the defaults; a file
// that exists but does not parse is a configuration error worth surfacing.
func Load() (*Config, error) {
	data, err := os.ReadFile(ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", ConfigPath, err)
	}
	return &cfg, nil
}

// DataDirOrDefault returns the event log directory.
func (c *Config) DataDirOrDefault() string {
	if c.DataDir != "" {
		return c.DataDir
	}
	return filepath.Join(baseDir(), "events")
}

// PricingFileOrDefault returns the pricing table override path. The file
// does not have to exist; the built-in table covers that case.
func (c *Config) PricingFileOrDefault() string {
	if c.PricingFile != "" {
		return c.PricingFile
	}
	return filepath.Join(baseDir(), "pricing.yaml")
}

// WindowOrDefault returns the report window size.
func (c *Config) WindowOrDefault() int {
	if c.WindowSize > 0 {
		return c.WindowSize
	}
	return DefaultWindowSize
}

// PricingTable loads the rate table: the operator's YAML override when
// present, the built-in snapshot otherwise. An override that exists but
// fails to parse or validate is fatal, never silently replaced.
func (c *Config) PricingTable() (*pricing.Table, error) {
	path := c.PricingFileOrDefault()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return pricing.Default(), nil
		}
		return nil, fmt.Errorf("stat pricing table: %w", err)
	}
	return pricing.Load(path)
}
