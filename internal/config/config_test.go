package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stencilworks/stencil/internal/engine"
	"github.com/stencilworks/stencil/internal/watcher"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	SetDefaults()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, engine.DefaultEngine, cfg.Engine)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, watcher.DefaultDebounce, cfg.Watch.Debounce)
	assert.Equal(t, watcher.DefaultExtensions, cfg.Watch.Extensions)
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	SetDefaults()
	viper.Set("engine", "plush")
	viper.Set("log.level", "debug")
	viper.Set("watch.debounce", 50*time.Millisecond)
	viper.Set("watch.extensions", []string{".hbs"})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "plush", cfg.Engine)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 50*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, []string{".hbs"}, cfg.Watch.Extensions)
}

func TestLoadBackfillsZeroValues(t *testing.T) {
	viper.Reset()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, engine.DefaultEngine, cfg.Engine)
	assert.Equal(t, watcher.DefaultDebounce, cfg.Watch.Debounce)
	assert.NotEmpty(t, cfg.Watch.Extensions)
}
