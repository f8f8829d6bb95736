package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDefaultConfig verifies the built-in defaults validate.
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	require.NoError(t, Validate(cfg))
	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.True(t, cfg.Storage.Seed)
	assert.Equal(t, "You", cfg.UI.Owner)
}

// TestValidate verifies backend checking.
func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "file backend", mutate: func(c *Config) { c.Storage.Backend = BackendFile }},
		{name: "memory backend", mutate: func(c *Config) { c.Storage.Backend = BackendMemory }},
		{name: "redis backend with url", mutate: func(c *Config) { c.Storage.Backend = BackendRedis }},
		{
			name: "redis backend without url",
			mutate: func(c *Config) {
				c.Storage.Backend = BackendRedis
				c.Storage.RedisURL = ""
			},
			wantErr: true,
		},
		{name: "unknown backend", mutate: func(c *Config) { c.Storage.Backend = "sqlite" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// TestLoadFromPaths verifies file precedence: project over global over
// defaults.
func TestLoadFromPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	globalPath := filepath.Join(dir, "global.yaml")
	projectPath := filepath.Join(dir, "project.yaml")

	require.NoError(t, os.WriteFile(globalPath, []byte(
		"storage:\n  backend: memory\nui:\n  owner: Alex\n"), 0o600))
	require.NoError(t, os.WriteFile(projectPath, []byte(
		"storage:\n  backend: file\n"), 0o600))

	cfg, err := LoadFromPaths(projectPath, globalPath)
	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Storage.Backend, "project config wins")
	assert.Equal(t, "Alex", cfg.UI.Owner, "global config survives where project is silent")
	assert.True(t, cfg.Storage.Seed, "defaults fill the rest")
}

// TestLoadFromPathsMissingFiles verifies missing files fall back to
// defaults without error.
func TestLoadFromPathsMissingFiles(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromPaths("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

// TestLoadFromPathsInvalid verifies a config that fails validation is
// rejected.
func TestLoadFromPathsInvalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"storage:\n  backend: carrier-pigeon\n"), 0o600))

	_, err := LoadFromPaths(path, "")
	assert.Error(t, err)
}

// TestDataDir verifies explicit and defaulted snapshot directories.
func TestDataDir(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Storage.Dir = "/tmp/pmlite-test"
	dir, err := cfg.DataDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/pmlite-test", dir)

	cfg.Storage.Dir = ""
	dir, err = cfg.DataDir()
	require.NoError(t, err)
	assert.Contains(t, dir, ".pmlite")
}
