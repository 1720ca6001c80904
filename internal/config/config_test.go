package config

import (
	"os"
	"path/filepath"
	"testing"
)

func withConfigPath(t *testing.T, path string) {
	t.Helper()
	old := ConfigPath
	ConfigPath = path
	t.Cleanup(func() { ConfigPath = old })
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	withConfigPath(t, filepath.Join(dir, "config.json"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := cfg.DataDirOrDefault(); got != filepath.Join(dir, "events") {
		t.Errorf("DataDirOrDefault = %s", got)
	}
	if got := cfg.WindowOrDefault(); got != DefaultWindowSize {
		t.Errorf("WindowOrDefault = %d, want %d", got, DefaultWindowSize)
	}
}

func TestLoadExplicitValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"dataDir":"/var/log/subcost","pricingFile":"/etc/subcost/pricing.yaml","windowSize":10}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	withConfigPath(t, path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDirOrDefault() != "/var/log/subcost" {
		t.Errorf("DataDirOrDefault = %s", cfg.DataDirOrDefault())
	}
	if cfg.PricingFileOrDefault() != "/etc/subcost/pricing.yaml" {
		t.Errorf("PricingFileOrDefault = %s", cfg.PricingFileOrDefault())
	}
	if cfg.WindowOrDefault() != 10 {
		t.Errorf("WindowOrDefault = %d, want 10", cfg.WindowOrDefault())
	}
}

func TestLoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	withConfigPath(t, path)

	if _, err := Load(); err == nil {
		t.Error("Load should reject a corrupt config file")
	}
}

func TestPricingTableFallsBackToBuiltin(t *testing.T) {
	withConfigPath(t, filepath.Join(t.TempDir(), "config.json"))

	cfg := &Config{}
	table, err := cfg.PricingTable()
	if err != nil {
		t.Fatalf("PricingTable: %v", err)
	}
	if err := table.Validate(); err != nil {
		t.Errorf("builtin table invalid: %v", err)
	}
}

func TestPricingTableOverride(t *testing.T) {
	dir := t.TempDir()
	withConfigPath(t, filepath.Join(dir, "config.json"))

	pricingPath := filepath.Join(dir, "pricing.yaml")
	content := `version: "override"
tiers:
  - match: ""
    input: 1
    output: 2
    cacheWrite: 3
    cacheRead: 4
`
	if err := os.WriteFile(pricingPath, []byte(content), 0644); err != nil {
		t.Fatalf("write pricing: %v", err)
	}

	cfg := &Config{PricingFile: pricingPath}
	table, err := cfg.PricingTable()
	if err != nil {
		t.Fatalf("PricingTable: %v", err)
	}
	if table.Version != "override" {
		t.Errorf("Version = %s, want override", table.Version)
	}
}

func TestPricingTableBadOverrideIsFatal(t *testing.T) {
	dir := t.TempDir()
	pricingPath := filepath.Join(dir, "pricing.yaml")
	if err := os.WriteFile(pricingPath, []byte("tiers: []\n"), 0644); err != nil {
		t.Fatalf("write pricing: %v", err)
	}

	cfg := &Config{PricingFile: pricingPath}
	if _, err := cfg.PricingTable(); err == nil {
		t.Error("empty override table should be a fatal config error, not a silent fallback")
	}
}
