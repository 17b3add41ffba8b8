package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Piiit/pwScripts/internal/cli/config"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultXScale, cfg.XScale)
	assert.Equal(t, config.DefaultYScale, cfg.YScale)
	assert.Equal(t, "all", cfg.OutputType)
	assert.Equal(t, 100, cfg.HistBuckets)
	assert.False(t, cfg.Verbose)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pwscripts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("xscale: \"1.2\"\ntype: figure\n"), 0o644))

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "1.2", cfg.XScale)
	assert.Equal(t, "figure", cfg.OutputType)
	// Untouched keys keep their defaults.
	assert.Equal(t, config.DefaultYScale, cfg.YScale)
	assert.Equal(t, path, config.FileUsed())
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pwscripts.yaml")
	require.NoError(t, os.WriteFile(path, []byte("yscale: \"9\"\n"), 0o644))
	t.Setenv("PWSCRIPTS_YSCALE", "0.2")

	cfg, err := config.Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "0.2", cfg.YScale)
}

func TestLoadFlagsOverrideEnv(t *testing.T) {
	t.Setenv("PWSCRIPTS_XSCALE", "2")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("xscale", "", "")
	flags.String("subfigure-left", "", "")
	require.NoError(t, flags.Parse([]string{"--xscale", "3", "--subfigure-left", "0.3"}))

	cfg, err := config.Load("", flags)
	require.NoError(t, err)
	assert.Equal(t, "3", cfg.XScale)
	// Kebab-case flag names map onto snake_case config keys.
	assert.Equal(t, "0.3", cfg.SubfigureLeft)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Run("output type", func(t *testing.T) {
		t.Setenv("PWSCRIPTS_TYPE", "poster")
		_, err := config.Load("", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid output type")
	})

	t.Run("buckets", func(t *testing.T) {
		t.Setenv("PWSCRIPTS_BUCKETS", "0")
		_, err := config.Load("", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must be positive")
	})
}
