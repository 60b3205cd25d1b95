package config

import "errors"

var (
	ErrBadFPS        = errors.New("plot_fps must be >= 1")
	ErrBadBreakpoint = errors.New("narrow_below must be >= 20")
	ErrBadTheme      = errors.New("theme must be one of auto, dark, light")
	ErrBadTintBound  = errors.New("tint bounds must satisfy 0 <= weak < strong <= 1")
	ErrBadGames      = errors.New("games must be >= 1")
)
