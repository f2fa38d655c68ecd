// Config loading for the sawmill CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	cfgKeyBackend         = "backend"
	cfgKeyDataDir         = "data_dir"
	cfgKeyAttempts        = "attempts"
	cfgKeyTopN            = "top_n"
	cfgKeyWorkers         = "workers"
	cfgKeyCleanup         = "cleanup"
	cfgKeySmallPieceRatio = "small_piece_ratio"
	cfgKeyExhaustiveLimit = "exhaustive_limit"

	defaultBackend = "sqlite"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Sawmill CLI configuration

# Backend selection (only sqlite is supported)
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Solver defaults, overridable per run by plan flags
# attempts: 100
# top_n: 10
# workers: 0
# cleanup: true
# small_piece_ratio: 0.5
# exhaustive_limit: 10000000
`

// loadConfig reads config.yaml from the resolved config directory using
// Viper. It creates the config directory and a default config.yaml on first
// run. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}

	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, defaultBackend)
	v.SetDefault(cfgKeyAttempts, 100)
	v.SetDefault(cfgKeyTopN, 10)
	v.SetDefault(cfgKeyWorkers, 0)
	v.SetDefault(cfgKeyCleanup, true)
	v.SetDefault(cfgKeySmallPieceRatio, 0.5)
	v.SetDefault(cfgKeyExhaustiveLimit, 10_000_000)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Missing config.yaml is not an error.
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	return v, nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
