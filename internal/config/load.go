package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/pmlite/pmlite/internal/constants"
	pmerrors "github.com/pmlite/pmlite/internal/errors"
)

// newViperInstance creates a Viper instance with the PMLITE_ env prefix,
// key replacer, and built-in defaults applied.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("PMLITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults configures all default values on the Viper instance.
// Keys must match the YAML tag names exactly.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("storage.backend", defaults.Storage.Backend)
	v.SetDefault("storage.dir", defaults.Storage.Dir)
	v.SetDefault("storage.redis_url", defaults.Storage.RedisURL)
	v.SetDefault("storage.seed", defaults.Storage.Seed)
	v.SetDefault("ui.owner", defaults.UI.Owner)
}

// isConfigNotFoundError returns true if the error is a viper config file
// not found error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound)
}

// viperDecoderOption returns the decoder options for Viper unmarshal.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
	)
}

func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, pmerrors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, pmerrors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}

// Load reads configuration from all available sources with proper
// precedence (highest first): PMLITE_* environment variables, the
// project config (.pmlite/config.yaml), the global config
// (~/.pmlite/config.yaml), then built-in defaults.
//
// Missing config files are not an error.
func Load() (*Config, error) {
	v := newViperInstance()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}
	if err := loadProjectConfig(v); err != nil {
		return nil, err
	}

	return unmarshalAndValidate(v)
}

// LoadFromPaths loads configuration from specific file paths, mainly
// for tests. Either path can be empty to skip that level.
func LoadFromPaths(projectConfigPath, globalConfigPath string) (*Config, error) {
	v := newViperInstance()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, pmerrors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
		}
	}
	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) && !os.IsNotExist(err) {
			return nil, pmerrors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
		}
	}

	return unmarshalAndValidate(v)
}

// loadGlobalConfig reads ~/.pmlite/config.yaml if it exists.
func loadGlobalConfig(v *viper.Viper) error {
	globalDir, err := GlobalConfigDir()
	if err != nil {
		return nil //nolint:nilerr // no home directory means no global config
	}
	path := filepath.Join(globalDir, constants.ConfigFileName)
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
		return pmerrors.Wrap(err, "failed to read global config file")
	}
	return nil
}

// loadProjectConfig reads .pmlite/config.yaml from the working
// directory if it exists.
func loadProjectConfig(v *viper.Viper) error {
	path := ProjectConfigPath()
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil && !isConfigNotFoundError(err) {
		return pmerrors.Wrap(err, "failed to read project config file")
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
