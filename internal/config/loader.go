package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if STATLINE_CONFIG is set
//  3. env (prefix STATLINE_)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("STATLINE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// STATLINE_PLOT_FPS -> plot_fps, underscores preserved to match the
	// koanf tags on the struct.
	envProvider := env.Provider("STATLINE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "statline_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.PlotFPS < 1 {
		return ErrBadFPS
	}
	if c.NarrowBelow < 20 {
		return ErrBadBreakpoint
	}
	switch c.Theme {
	case "auto", "dark", "light":
	default:
		return ErrBadTheme
	}
	if c.TintWeakAbove < 0 || c.TintStrongAbove > 1 || c.TintWeakAbove >= c.TintStrongAbove {
		return ErrBadTintBound
	}
	if c.TintOneSidedBelow < 0 || c.TintOneSidedBelow > 1 {
		return ErrBadTintBound
	}
	if c.Games < 1 {
		return ErrBadGames
	}
	return nil
}
