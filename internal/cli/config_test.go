// ABOUTME: Tests for CLI configuration loading from the XDG config directory.
// ABOUTME: Covers defaults, overrides, partial files, and malformed values.
package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	appDir := filepath.Join(dir, "dotkit")
	if err := os.MkdirAll(appDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(appDir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestLoadSettingsMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadSettings()
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if cfg.Format != defaultFormat {
		t.Errorf("Format = %q, want %q", cfg.Format, defaultFormat)
	}
	if cfg.Port != defaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, defaultPort)
	}
	if cfg.CacheTTL != defaultCacheTTL {
		t.Errorf("CacheTTL = %v, want %v", cfg.CacheTTL, defaultCacheTTL)
	}
}

func TestLoadSettingsOverrides(t *testing.T) {
	writeConfig(t, "format: png\nport: 9999\ncache_ttl: 30s\n")

	cfg, err := loadSettings()
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if cfg.Format != "png" {
		t.Errorf("Format = %q, want png", cfg.Format)
	}
	if cfg.Port != 9999 {
		t.Errorf("Port = %d, want 9999", cfg.Port)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s", cfg.CacheTTL)
	}
}

func TestLoadSettingsPartialFileKeepsDefaults(t *testing.T) {
	writeConfig(t, "format: dot\n")

	cfg, err := loadSettings()
	if err != nil {
		t.Fatalf("loadSettings: %v", err)
	}
	if cfg.Format != "dot" {
		t.Errorf("Format = %q, want dot", cfg.Format)
	}
	if cfg.Port != defaultPort {
		t.Errorf("Port = %d, want default %d", cfg.Port, defaultPort)
	}
	if cfg.CacheTTL != defaultCacheTTL {
		t.Errorf("CacheTTL = %v, want default %v", cfg.CacheTTL, defaultCacheTTL)
	}
}

func TestLoadSettingsBadTTL(t *testing.T) {
	writeConfig(t, "cache_ttl: not-a-duration\n")

	if _, err := loadSettings(); err == nil {
		t.Fatal("expected error for malformed cache_ttl")
	}
}

func TestDefaultConfigDirHonorsXDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got, err := defaultConfigDir()
	if err != nil {
		t.Fatalf("defaultConfigDir: %v", err)
	}
	if want := filepath.Join(dir, "dotkit"); got != want {
		t.Errorf("dir = %q, want %q", got, want)
	}
}
