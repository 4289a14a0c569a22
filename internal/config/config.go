// Package config provides tool configuration for loadcfg using Viper.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/thoreinstein/loadcfg/format"
	"github.com/thoreinstein/loadcfg/internal/paths"
)

// Config represents the top-level tool configuration structure.
type Config struct {
	Version       int    `mapstructure:"version" yaml:"version"`
	DefaultFormat string `mapstructure:"default_format" yaml:"default_format"`
	TemplatesDir  string `mapstructure:"templates_dir" yaml:"templates_dir"`
	OutputFormat  string `mapstructure:"output_format" yaml:"output_format"`
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.AppConfigDir())

	// Environment variable support: LOADCFG_DEFAULT_FORMAT etc.
	viper.SetEnvPrefix(strings.ToUpper(paths.AppName))
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("version", 1)
	viper.SetDefault("default_format", string(format.JSON))
	viper.SetDefault("templates_dir", paths.TemplatesDir())
	viper.SetDefault("output_format", "text")
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file is found.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if path != "" {
				return nil, fmt.Errorf("config file not found at %s: %w", path, err)
			}
			// Implicit load, defaults are fine
		} else {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
