// ABOUTME: Optional YAML configuration for the dotkit CLI resolved from the XDG config directory.
// ABOUTME: Covers the default render format, serve port, and render cache TTL; a missing file yields defaults.
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Default settings used when no config file overrides them.
const (
	defaultFormat   = "svg"
	defaultPort     = 2390
	defaultCacheTTL = 5 * time.Minute
)

// config holds the CLI settings loadable from config.yaml.
type config struct {
	Format   string `yaml:"format"`
	Port     int    `yaml:"port"`
	CacheTTL string `yaml:"cache_ttl"`
}

// settings is the resolved configuration after applying defaults.
type settings struct {
	Format   string
	Port     int
	CacheTTL time.Duration
}

// defaultConfigDir returns the config directory for dotkit. It checks
// XDG_CONFIG_HOME first, then falls back to ~/.config/dotkit.
func defaultConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "dotkit"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(home, ".config", "dotkit"), nil
}

// loadSettings reads config.yaml from the config directory and applies
// defaults for anything unset. A missing file is not an error.
func loadSettings() (settings, error) {
	out := settings{
		Format:   defaultFormat,
		Port:     defaultPort,
		CacheTTL: defaultCacheTTL,
	}

	dir, err := defaultConfigDir()
	if err != nil {
		return out, err
	}

	path := filepath.Join(dir, "config.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return out, nil
		}
		return out, fmt.Errorf("read %s: %w", path, err)
	}

	var cfg config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return out, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.Format != "" {
		out.Format = cfg.Format
	}
	if cfg.Port != 0 {
		out.Port = cfg.Port
	}
	if cfg.CacheTTL != "" {
		ttl, err := time.ParseDuration(cfg.CacheTTL)
		if err != nil {
			return out, fmt.Errorf("parse cache_ttl in %s: %w", path, err)
		}
		out.CacheTTL = ttl
	}

	return out, nil
}
