package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.PlotFPS)
	assert.Equal(t, "auto", cfg.Theme)
	assert.Equal(t, 0.60, cfg.TintStrongAbove)
	assert.Equal(t, 0.40, cfg.TintWeakAbove)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STATLINE_PLOT_FPS", "5")
	t.Setenv("STATLINE_THEME", "dark")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.PlotFPS)
	assert.Equal(t, "dark", cfg.Theme)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "statline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plot_fps: 9\ntheme: light\n"), 0o644))
	t.Setenv("STATLINE_CONFIG", path)
	t.Setenv("STATLINE_THEME", "dark") // env wins over file

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.PlotFPS)
	assert.Equal(t, "dark", cfg.Theme)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero fps", func(c *Config) { c.PlotFPS = 0 }, ErrBadFPS},
		{"narrow breakpoint", func(c *Config) { c.NarrowBelow = 5 }, ErrBadBreakpoint},
		{"bad theme", func(c *Config) { c.Theme = "sepia" }, ErrBadTheme},
		{"inverted tint bounds", func(c *Config) { c.TintWeakAbove = 0.7 }, ErrBadTintBound},
		{"one-sided out of range", func(c *Config) { c.TintOneSidedBelow = 1.5 }, ErrBadTintBound},
		{"zero games", func(c *Config) { c.Games = 0 }, ErrBadGames},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := New()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), tc.want)
		})
	}
}
