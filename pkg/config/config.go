package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Settings represents the application configuration
type Settings struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Render  RenderConfig  `mapstructure:"render"`
	Tokens  TokensConfig  `mapstructure:"tokens"`
}

// ServerConfig holds chat server connection configuration
type ServerConfig struct {
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	LogFile  string `mapstructure:"log_file"`
	Preserve bool   `mapstructure:"preserve"`
	Level    string `mapstructure:"level"`
}

// RenderConfig holds rendering configuration
type RenderConfig struct {
	MarkdownStyle string `mapstructure:"markdown_style"` // auto, dark, light, notty, or a style file path
	CodeStyle     string `mapstructure:"code_style"`     // chroma style name
	Math          bool   `mapstructure:"math"`
	Diagrams      bool   `mapstructure:"diagrams"`
}

// TokensConfig holds token counting configuration
type TokensConfig struct {
	Encoding string `mapstructure:"encoding"`
}

// Global config instance
var cfg *Settings

// Get returns the global config instance
func Get() *Settings {
	if cfg == nil {
		panic("config not initialized")
	}
	return cfg
}

// Load loads configuration from file and environment
func Load(cfgFile string) (*Settings, error) {
	setDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		viper.AddConfigPath("./.banter") // Check project directory first
		viper.AddConfigPath(filepath.Join(home, ".banter"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("BANTER")
	viper.AutomaticEnv()

	// Read config file if it exists; missing file is fine, defaults apply
	_ = viper.ReadInConfig()

	cfg = &Settings{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults sets all default configuration values
func setDefaults() {
	viper.SetDefault("server.url", "http://localhost:8000")
	viper.SetDefault("server.timeout", "90s")

	viper.SetDefault("logging.log_file", "banter.log")
	viper.SetDefault("logging.preserve", true)
	viper.SetDefault("logging.level", "info")

	viper.SetDefault("render.markdown_style", "auto")
	viper.SetDefault("render.code_style", "monokai")
	viper.SetDefault("render.math", true)
	viper.SetDefault("render.diagrams", true)

	viper.SetDefault("tokens.encoding", "cl100k_base")
}

// GetConfigFileUsed returns the path to the config file being used
func GetConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
