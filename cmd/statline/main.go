package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tui "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/joho/godotenv"

	"github.com/statlinehq/statline/internal/config"
	"github.com/statlinehq/statline/internal/logging"
	"github.com/statlinehq/statline/internal/source"
	"github.com/statlinehq/statline/internal/ui"
)

func main() {
	// Best effort; env vars beat .env, flags beat both.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	metricKey := flag.String("metric", "points", "Metric to open with")
	flag.IntVar(&cfg.PlotFPS, "plot-fps", cfg.PlotFPS, "Chart refresh rate (frames per second)")
	flag.IntVar(&cfg.NarrowBelow, "narrow-below", cfg.NarrowBelow, "Viewport columns under which the narrow layout engages")
	flag.StringVar(&cfg.Theme, "theme", cfg.Theme, "Color theme: auto, dark, light")
	flag.BoolVar(&cfg.AltScreen, "alt-screen", cfg.AltScreen, "Use the terminal alternate screen buffer")
	flag.StringVar(&cfg.DatasetPath, "in", cfg.DatasetPath, "Read the game log from this JSON file instead of generating demo data")
	flag.IntVar(&cfg.Games, "games", cfg.Games, "Number of demo games to generate")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Demo data seed (0 = time-based)")
	flag.Float64Var(&cfg.PresetLine, "line", cfg.PresetLine, "Open with this line already committed")
	flag.BoolVar(&cfg.HasPresetLine, "has-line", cfg.HasPresetLine, "Treat -line as set even when zero")
	invert := flag.Bool("invert", false, "Flip the over/under direction for the opening metric")
	flag.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Log file path (empty disables logging)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if isFlagSet("line") {
		cfg.HasPresetLine = true
	}

	logger := logging.New(logging.Options{Path: cfg.LogFile, Level: cfg.LogLevel})

	if !term.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "statline is interactive; run it in a terminal")
		os.Exit(1)
	}

	provider := source.NewProvider(cfg.Seed)
	if cfg.DatasetPath != "" {
		points, err := source.LoadFile(cfg.DatasetPath)
		if err != nil {
			log.Fatal(err)
		}
		provider.UseFixed(points)
		logger.WithField("path", cfg.DatasetPath).Info("loaded dataset")
	}

	m := ui.New(cfg, logger, provider, ui.Mount{
		MetricKey: *metricKey,
		Line:      cfg.PresetLine,
		HasLine:   cfg.HasPresetLine,
		Invert:    *invert,
		OnCommit: func(metric string, value float64) {
			logger.WithField("metric", metric).WithField("line", value).Info("line committed")
		},
	})
	defer m.Close()

	opts := []tui.ProgramOption{tui.WithInputTTY(), tui.WithMouseCellMotion()}
	if cfg.AltScreen {
		opts = append(opts, tui.WithAltScreen())
	}
	if _, err := tui.NewProgram(m, opts...).Run(); err != nil {
		log.Fatal(err)
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
