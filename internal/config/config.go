// Package config defines the pmlite configuration schema and loading.
//
// Configuration is resolved from (highest precedence first) environment
// variables with the PMLITE_ prefix, the project config file
// (.pmlite/config.yaml), the global config file (~/.pmlite/config.yaml),
// and built-in defaults.
//
// IMPORTANT: This package may import internal/constants and
// internal/errors, but no other internal packages.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pmlite/pmlite/internal/constants"
	pmerrors "github.com/pmlite/pmlite/internal/errors"
)

// Storage backend names accepted in configuration.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the root configuration for pmlite.
type Config struct {
	// Storage selects and tunes the persistence backend.
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`

	// UI controls presentation defaults.
	UI UIConfig `mapstructure:"ui" yaml:"ui"`
}

// StorageConfig tunes the persistence backend.
type StorageConfig struct {
	// Backend is one of file, redis, or memory. The memory backend keeps
	// nothing across runs and exists for trials and tests.
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Dir is where the file backend keeps its snapshot, one JSON file
	// per key. Empty means ~/.pmlite/data.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// RedisURL is the server address for the redis backend.
	RedisURL string `mapstructure:"redis_url" yaml:"redis_url"`

	// Seed controls whether an empty task snapshot is populated with
	// the starter tasks on first load.
	Seed bool `mapstructure:"seed" yaml:"seed"`
}

// UIConfig controls presentation defaults.
type UIConfig struct {
	// Owner is the display name stamped on new objectives.
	Owner string `mapstructure:"owner" yaml:"owner"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:  BackendFile,
			Dir:      "",
			RedisURL: "redis://localhost:6379",
			Seed:     true,
		},
		UI: UIConfig{
			Owner: constants.DefaultOwner,
		},
	}
}

// Validate checks the configuration for contradictions.
func Validate(cfg *Config) error {
	switch cfg.Storage.Backend {
	case BackendFile, BackendMemory:
	case BackendRedis:
		if cfg.Storage.RedisURL == "" {
			return fmt.Errorf("%w: storage.redis_url is required for the redis backend", pmerrors.ErrConfigInvalid)
		}
	default:
		return fmt.Errorf("%w: unknown storage.backend %q", pmerrors.ErrConfigInvalid, cfg.Storage.Backend)
	}
	return nil
}

// DataDir resolves the file backend's snapshot directory, expanding the
// default under the user's home directory.
func (c *Config) DataDir() (string, error) {
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, constants.PMLiteHome, constants.DataDir), nil
}

// GlobalConfigDir returns the per-user configuration directory
// (~/.pmlite).
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, constants.PMLiteHome), nil
}

// ProjectConfigPath returns the project-local config file path relative
// to the working directory.
func ProjectConfigPath() string {
	return filepath.Join(constants.PMLiteHome, constants.ConfigFileName)
}
