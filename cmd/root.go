// Package cmd provides the command-line interface for calcpress with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Command-line flags (--config, --port, etc.) - highest priority
//	2. CALCPRESS_CONFIG_FILE environment variable - custom config file path
//	3. Individual environment variables (CALCPRESS_SERVER_PORT, etc.)
//	4. Configuration files (.calcpress.yml) - lowest priority
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/calcpress/calcpress/internal/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "calcpress",
	Short: "Static-site generator for conversion calculator sites",
	Long: `Calcpress reads a JSON site document (site metadata, theme, converter
definitions, blog posts), validates the converter records against a
per-section content schema, and generates a directory of static HTML
pages with inline CSS and client script, plus sitemap, RSS and robots
artifacts.

Quick Start:
  calcpress validate site.config.json   Validate converter content
  calcpress build                       Generate the site into public/
  calcpress serve                       Preview with live reload
  calcpress watch                       Rebuild on content changes
  calcpress history                     Show recent runs`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .calcpress.yml, can also use CALCPRESS_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig initializes the configuration system.
//
// Configuration Loading Priority (highest to lowest):
//  1. --config flag: Explicitly specified config file path
//  2. CALCPRESS_CONFIG_FILE environment variable: Custom config file path
//  3. Default: .calcpress.yml in current directory
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("CALCPRESS_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".calcpress")
	}

	viper.SetEnvPrefix("CALCPRESS")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing or malformed config file degrades to defaults rather
	// than failing the command.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newCLILogger builds the logger shared by commands, honoring the
// --log-level persistent flag.
func newCLILogger() logging.Logger {
	return logging.NewLogger(&logging.Config{
		Level:  logging.ParseLevel(viper.GetString("log-level")),
		Format: "text",
		Output: os.Stderr,
	})
}
