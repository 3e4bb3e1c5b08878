package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// BaseSettingsDir returns the directory holding banter's files (config,
// log). The active config file's directory wins, otherwise ~/.banter.
func BaseSettingsDir() string {
	// Check if config.path is explicitly set (for testing)
	if configPath := viper.GetString("config.path"); configPath != "" {
		return configPath
	}

	if currentConfig := viper.ConfigFileUsed(); currentConfig != "" {
		return filepath.Dir(currentConfig)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".banter")
}

func BuildSettingsPath(target string) string {
	return filepath.Join(BaseSettingsDir(), target)
}
