package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "site.config.json", cfg.Site.Content)
	assert.Equal(t, "public", cfg.Build.Output)
	assert.Equal(t, "static", cfg.Build.StaticDir)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 1000, cfg.Validation.MinWords)
}

func TestLoadViperOverrides(t *testing.T) {
	viper.Reset()
	viper.Set("site.content", "content/site.json")
	viper.Set("build.output", "dist")
	viper.Set("server.port", 3000)
	viper.Set("validation.min_words", 500)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "content/site.json", cfg.Site.Content)
	assert.Equal(t, "dist", cfg.Build.Output)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 500, cfg.Validation.MinWords)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	viper.Reset()
	viper.Set("server.port", 70000)

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in valid range")
}

func TestLoadRejectsTraversalPath(t *testing.T) {
	viper.Reset()
	viper.Set("build.output", "../../etc")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "traversal")
}

func TestValidatePath(t *testing.T) {
	assert.NoError(t, validatePath("public"))
	assert.NoError(t, validatePath("content/site.json"))
	assert.Error(t, validatePath(""))
	assert.Error(t, validatePath("../secrets"))
	assert.Error(t, validatePath("out;rm"))
}

func TestValidateConfigHost(t *testing.T) {
	cfg := &Config{
		Site:       SiteConfig{Content: "site.config.json"},
		Build:      BuildConfig{Output: "public", StaticDir: "static"},
		Server:     ServerConfig{Host: "local;host", Port: 8080},
		Validation: ValidationConfig{MinWords: 1000},
	}

	err := validateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "dangerous character")
}
