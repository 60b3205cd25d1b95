package ui

import (
	styles "github.com/charmbracelet/lipgloss"

	"github.com/statlinehq/statline/internal/classify"
	"github.com/statlinehq/statline/internal/overlay"
)

// colorID keys the grid cells into the theme so the buffer itself stays
// style-agnostic and recoloring a bar is a byte write.
type colorID uint8

const (
	colNone colorID = iota
	colAxis
	colLabel
	colOver
	colUnder
	colPush
	colGap
	colMarker
	colMarkerDrag
	colSecondary
	colTrack
	colHandle
	colPopup
	colRef
)

var (
	selectedColor = styles.AdaptiveColor{Light: "0", Dark: "9"}
	borderColor   = styles.AdaptiveColor{Light: "#555", Dark: "#555"}
	selectedFg    = styles.NewStyle().Foreground(selectedColor)
	borderFg      = styles.NewStyle().Foreground(borderColor)
	chartStyle    = styles.NewStyle().
			BorderStyle(styles.NormalBorder()).
			Foreground(borderColor).
			BorderForeground(borderColor)
)

// theme resolves colorIDs and tints to lipgloss styles.
type theme struct {
	dark bool
	fg   map[colorID]styles.Style
	tint map[overlay.Tint]styles.Style
}

func newTheme(mode string) theme {
	dark := styles.DefaultRenderer().HasDarkBackground()
	switch mode {
	case "dark":
		dark = true
	case "light":
		dark = false
	}

	c := func(light, darkc string) styles.AdaptiveColor {
		return styles.AdaptiveColor{Light: light, Dark: darkc}
	}
	th := theme{
		dark: dark,
		fg:   make(map[colorID]styles.Style),
		tint: make(map[overlay.Tint]styles.Style),
	}
	th.fg[colAxis] = borderFg
	th.fg[colLabel] = styles.NewStyle().Foreground(c("#444", "#999"))
	th.fg[colOver] = styles.NewStyle().Foreground(c("28", "40"))
	th.fg[colUnder] = styles.NewStyle().Foreground(c("124", "160"))
	th.fg[colPush] = styles.NewStyle().Foreground(c("244", "246"))
	th.fg[colGap] = borderFg
	th.fg[colMarker] = styles.NewStyle().Foreground(c("94", "220"))
	th.fg[colMarkerDrag] = styles.NewStyle().Foreground(c("94", "220")).Bold(true)
	th.fg[colSecondary] = styles.NewStyle().Foreground(c("26", "39"))
	th.fg[colTrack] = borderFg
	th.fg[colHandle] = selectedFg.Bold(true)
	th.fg[colPopup] = styles.NewStyle().Foreground(c("0", "15"))
	th.fg[colRef] = styles.NewStyle().Foreground(c("94", "220"))

	th.tint[overlay.TintOverWeak] = styles.NewStyle().Background(c("194", "22"))
	th.tint[overlay.TintOverStrong] = styles.NewStyle().Background(c("157", "28"))
	th.tint[overlay.TintUnderWeak] = styles.NewStyle().Background(c("224", "52"))
	th.tint[overlay.TintUnderStrong] = styles.NewStyle().Background(c("217", "88"))
	return th
}

func (t theme) style(id colorID) styles.Style {
	if s, ok := t.fg[id]; ok {
		return s
	}
	return styles.NewStyle()
}

func (t theme) tintStyle(tint overlay.Tint) (styles.Style, bool) {
	s, ok := t.tint[tint]
	return s, ok
}

func colorFor(o classify.Outcome) colorID {
	switch o {
	case classify.Over:
		return colOver
	case classify.Under:
		return colUnder
	case classify.Push:
		return colPush
	default:
		return colGap
	}
}
