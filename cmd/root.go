// Package cmd provides the command-line interface for stencil.
//
// Configuration is layered: command-line flags override STENCIL_ prefixed
// environment variables, which override the .stencil.yml config file, which
// overrides built-in defaults.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/stencilworks/stencil/internal/config"
	"github.com/stencilworks/stencil/internal/engine"
	"github.com/stencilworks/stencil/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "stencil",
	Short: "A code-generation toolkit with pluggable template engines",
	Long: `Stencil is a code-generation toolkit that unifies several template
engines behind one interface and layers a scaffold generator, a content
pipeline, and a rebuild-on-change watcher on top.

Quick Start:
  stencil generate stencil.yml         Scaffold files from a manifest
  stencil generate stencil.yml --dry-run
  stencil render greeting.hbs --var name=World
  stencil engines                      List available template engines`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .stencil.yml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
}

func initConfig() {
	config.SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("STENCIL_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".stencil")
	}

	viper.SetEnvPrefix("STENCIL")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds the process logger from the loaded configuration.
func newLogger(cfg *config.Config) logging.Logger {
	return logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: os.Stderr,
	})
}

// newRegistry builds the engine registry commands resolve engines through.
func newRegistry() *engine.Registry {
	return engine.NewRegistry()
}
