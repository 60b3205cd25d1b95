// Package config holds the runtime configuration, layered from defaults,
// an optional YAML file, and environment variables.
package config

// Config is the full runtime configuration.
type Config struct {
	// Rendering
	PlotFPS     int    `koanf:"plot_fps"`
	NarrowBelow int    `koanf:"narrow_below"` // viewport columns under which narrow mode engages
	Theme       string `koanf:"theme"`        // auto, dark, light
	AltScreen   bool   `koanf:"alt_screen"`

	// Tint boundaries (shares of classified games)
	TintStrongAbove   float64 `koanf:"tint_strong_above"`
	TintWeakAbove     float64 `koanf:"tint_weak_above"`
	TintOneSidedBelow float64 `koanf:"tint_one_sided_below"`

	// Data
	DatasetPath      string  `koanf:"dataset"`     // JSON game log; empty = synthetic demo data
	Games            int     `koanf:"games"`       // synthetic game count
	Seed             int64   `koanf:"seed"`        // synthetic data seed (0 = time-based)
	PresetLine       float64 `koanf:"preset_line"` // deep-link line, carried over dataset changes
	HasPresetLine    bool    `koanf:"has_preset_line"`
	SecondaryDelayMS int     `koanf:"secondary_delay_ms"` // simulated overlay fetch latency

	// Logging
	LogFile  string `koanf:"log_file"`
	LogLevel string `koanf:"log_level"`
}

// New returns the defaults.
func New() *Config {
	return &Config{
		PlotFPS:           20,
		NarrowBelow:       72,
		Theme:             "auto",
		AltScreen:         true,
		TintStrongAbove:   0.60,
		TintWeakAbove:     0.40,
		TintOneSidedBelow: 0.25,
		Games:             20,
		SecondaryDelayMS:  350,
		LogFile:           "statline.log",
		LogLevel:          "info",
	}
}
