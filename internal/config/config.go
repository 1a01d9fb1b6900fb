// ABOUTME: FitTrack configuration with storage backend selection.
// ABOUTME: JSON config file under XDG paths, env overrides, store factory.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/fittrack/fittrack/internal/kvdb"
	"github.com/fittrack/fittrack/internal/storage"
)

// Config stores fittrack tool configuration.
type Config struct {
	// Backend selects the storage tier: "auto" (default) probes the
	// embedded engine and falls back to the flat store, "badger" and
	// "flat" force a tier.
	Backend string `json:"backend,omitempty" env:"FITTRACK_BACKEND"`

	// DataDir is the root directory for data storage. The embedded
	// engine lives in DataDir/db, the flat store in DataDir/flat.db.
	// Supports ~ expansion. Defaults to ~/.local/share/fittrack.
	DataDir string `json:"data_dir,omitempty" env:"FITTRACK_DATA_DIR"`

	// CurrentProfile is the active profile ID, persisted across runs.
	CurrentProfile int64 `json:"current_profile,omitempty" env:"FITTRACK_PROFILE"`

	// InstallID identifies this installation in export provenance.
	// Generated on first save.
	InstallID string `json:"install_id,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "auto".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return "auto"
	}
	return c.Backend
}

// GetDataDir returns the data directory with ~ expanded, defaulting
// to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetCurrentProfile returns the active profile ID, defaulting to the
// first-run profile.
func (c *Config) GetCurrentProfile() int64 {
	if c.CurrentProfile == 0 {
		return 1
	}
	return c.CurrentProfile
}

// DataDir returns the default data directory following XDG spec.
func DataDir() string {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, _ := os.UserHomeDir()
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "fittrack")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// BadgerDir returns the embedded engine directory.
func (c *Config) BadgerDir() string {
	return filepath.Join(c.GetDataDir(), "db")
}

// FlatPath returns the flat store database path.
func (c *Config) FlatPath() string {
	return filepath.Join(c.GetDataDir(), "flat.db")
}

// OpenStore selects and opens the storage backend. With "auto" the
// embedded engine is probed once here; an init failure engages the
// flat fallback for the rest of the process, logged but invisible to
// callers of the returned store.
func (c *Config) OpenStore() (storage.RecordStore, error) {
	switch c.GetBackend() {
	case "badger":
		return storage.OpenBadger(c.BadgerDir())
	case "flat":
		return storage.OpenFlat(c.FlatPath())
	case "auto":
		store, err := storage.OpenBadger(c.BadgerDir())
		if err == nil {
			return store, nil
		}
		var initErr *kvdb.InitError
		if !errors.As(err, &initErr) {
			return nil, err
		}
		log.Warn("embedded engine unavailable, using flat store", "err", initErr.Err)
		return storage.OpenFlat(c.FlatPath())
	default:
		return nil, fmt.Errorf("unknown backend: %q", c.GetBackend())
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fittrack", "config.json")
}

// Load reads config from disk and applies environment overrides.
func Load() (*Config, error) {
	path := GetConfigPath()
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Save writes config to disk, generating the install ID if missing.
func (c *Config) Save() error {
	if c.InstallID == "" {
		c.InstallID = uuid.NewString()
	}

	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
