// Package config provides configuration management for calcpress using
// Viper for flexible loading from files, environment variables, and
// command-line flags.
//
// The configuration system supports YAML files (.calcpress.yml), environment
// variable overrides with the CALCPRESS_ prefix, and validation with basic
// path-safety checks. It manages the input document path, build output
// settings, the preview server, and the validation word-count gate.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Site       SiteConfig       `yaml:"site"`
	Build      BuildConfig      `yaml:"build"`
	Server     ServerConfig     `yaml:"server"`
	Validation ValidationConfig `yaml:"validation"`
}

type SiteConfig struct {
	Content string `yaml:"content"`
	BaseURL string `yaml:"base_url"`
}

type BuildConfig struct {
	Output    string `yaml:"output"`
	StaticDir string `yaml:"static_dir"`
	Minify    bool   `yaml:"minify"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
	Open bool   `yaml:"open"`
}

type ValidationConfig struct {
	MinWords int `yaml:"min_words"`
}

func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Handle values set via viper directly (workaround for viper
	// unmarshal gaps with nested keys).
	if viper.IsSet("site.content") {
		config.Site.Content = viper.GetString("site.content")
	}
	if viper.IsSet("build.output") {
		config.Build.Output = viper.GetString("build.output")
	}
	if viper.IsSet("server.port") {
		config.Server.Port = viper.GetInt("server.port")
	}
	if viper.IsSet("validation.min_words") {
		config.Validation.MinWords = viper.GetInt("validation.min_words")
	}

	// Apply defaults for anything not set.
	if config.Site.Content == "" {
		config.Site.Content = "site.config.json"
	}
	if config.Build.Output == "" {
		config.Build.Output = "public"
	}
	if config.Build.StaticDir == "" {
		config.Build.StaticDir = "static"
	}
	if config.Server.Host == "" {
		config.Server.Host = "localhost"
	}
	if config.Server.Port == 0 {
		config.Server.Port = 8080
	}
	if config.Validation.MinWords == 0 {
		config.Validation.MinWords = 1000
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// validateConfig validates configuration values for security and correctness.
func validateConfig(config *Config) error {
	if config.Server.Port < 0 || config.Server.Port > 65535 {
		return fmt.Errorf("port %d is not in valid range 0-65535", config.Server.Port)
	}

	if config.Server.Host != "" {
		dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'", "\\"}
		for _, char := range dangerousChars {
			if strings.Contains(config.Server.Host, char) {
				return fmt.Errorf("host contains dangerous character: %s", char)
			}
		}
	}

	for _, path := range []string{config.Site.Content, config.Build.Output, config.Build.StaticDir} {
		if err := validatePath(path); err != nil {
			return err
		}
	}

	return nil
}

// validatePath validates a file path for security.
func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}

	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path contains traversal: %s", path)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}
	for _, char := range dangerousChars {
		if strings.Contains(cleanPath, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}
