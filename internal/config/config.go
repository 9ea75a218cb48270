// Package config provides configuration management for stencil using Viper:
// a .stencil.yml file, STENCIL_ prefixed environment variables, and
// command-line flag overrides, in that precedence order (flags highest).
package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/stencilworks/stencil/internal/engine"
	"github.com/stencilworks/stencil/internal/watcher"
)

type Config struct {
	Engine string      `yaml:"engine" mapstructure:"engine"`
	Log    LogConfig   `yaml:"log" mapstructure:"log"`
	Watch  WatchConfig `yaml:"watch" mapstructure:"watch"`
}

type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

type WatchConfig struct {
	Debounce   time.Duration `yaml:"debounce" mapstructure:"debounce"`
	Extensions []string      `yaml:"extensions" mapstructure:"extensions"`
}

// SetDefaults registers the default configuration values with viper.
func SetDefaults() {
	viper.SetDefault("engine", engine.DefaultEngine)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("watch.debounce", watcher.DefaultDebounce)
	viper.SetDefault("watch.extensions", watcher.DefaultExtensions)
}

// Load materializes the configuration from viper's merged sources.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Engine == "" {
		config.Engine = engine.DefaultEngine
	}
	if config.Watch.Debounce <= 0 {
		config.Watch.Debounce = watcher.DefaultDebounce
	}
	if len(config.Watch.Extensions) == 0 {
		config.Watch.Extensions = watcher.DefaultExtensions
	}
	return &config, nil
}
