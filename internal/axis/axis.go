// Package axis derives chart domains and tick marks from a stat series,
// with per-metric-kind rules.
package axis

import (
	"math"

	"github.com/statlinehq/statline/internal/series"
)

// Config is a computed axis: a domain plus the ticks drawn on it.
type Config struct {
	DomainMin float64
	DomainMax float64
	Ticks     []float64
	// Degenerate marks the fixed fallback domain produced when every value
	// was filtered out. Callers must suppress rendering rather than plot
	// against it.
	Degenerate bool
}

const (
	rankDomainMax = 30
	headroom      = 1.05
	footroom      = 0.97
)

// Compute derives the primary axis for a series of values.
func Compute(values []float64, kind series.Kind) Config {
	vals := finite(values)
	if kind != series.KindRank && len(vals) == 0 {
		return Config{DomainMin: 0, DomainMax: 1, Ticks: []float64{0, 0.5, 1}, Degenerate: true}
	}

	switch kind {
	case series.KindRank:
		return rankAxis()
	case series.KindRate:
		return rateAxis(vals)
	default:
		cfg := countingAxis(vals)
		// Collapse to 3 ticks on tiny spans so rounded labels stay distinct.
		if cfg.DomainMax-cfg.DomainMin <= 3 {
			cfg.Ticks = evenTicks(cfg.DomainMin, cfg.DomainMax, 3)
		}
		return cfg
	}
}

// ComputeSecondary derives the independently-scaled overlay axis. Rank
// metrics keep their fixed domain; everything else gets the padded rate
// treatment so the overlay line floats inside its own range.
func ComputeSecondary(values []float64, kind series.Kind) Config {
	vals := finite(values)
	if kind != series.KindRank && len(vals) == 0 {
		return Config{DomainMin: 0, DomainMax: 1, Ticks: []float64{0, 0.5, 1}, Degenerate: true}
	}
	if kind == series.KindRank {
		return rankAxis()
	}
	return rateAxis(vals)
}

func rankAxis() Config {
	ticks := make([]float64, 0, 7)
	for v := 0.0; v <= rankDomainMax; v += 5 {
		ticks = append(ticks, v)
	}
	return Config{DomainMin: 0, DomainMax: rankDomainMax, Ticks: ticks}
}

func rateAxis(vals []float64) Config {
	lo, hi := minMax(vals)
	floor := floorTo5(lo * footroom)
	ceil := ceilTo5(hi * headroom)
	if ceil <= floor {
		ceil = floor + 5
	}
	n := 6
	if span := ceil - floor; math.Mod(span, 30) == 0 {
		n = 7
	}
	return Config{DomainMin: floor, DomainMax: ceil, Ticks: evenTicks(floor, ceil, n)}
}

func countingAxis(vals []float64) Config {
	_, hi := minMax(vals)
	ceil := ceilTo5(hi * headroom)
	if ceil <= 0 {
		ceil = 5
	}
	return Config{DomainMin: 0, DomainMax: ceil, Ticks: evenTicks(0, ceil, 6)}
}

// Normalize maps v into [0,1] on the axis domain, clamped. Non-finite
// inputs and degenerate spans fall back to the midpoint.
func (c Config) Normalize(v float64) float64 {
	span := c.DomainMax - c.DomainMin
	if math.IsNaN(v) || math.IsInf(v, 0) || span <= 0 {
		return 0.5
	}
	pct := (v - c.DomainMin) / span
	return math.Min(1, math.Max(0, pct))
}

func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func minMax(vals []float64) (lo, hi float64) {
	lo, hi = vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

func evenTicks(lo, hi float64, n int) []float64 {
	if n < 2 {
		n = 2
	}
	step := (hi - lo) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	out[n-1] = hi
	return out
}

func floorTo5(v float64) float64 { return math.Floor(v/5) * 5 }
func ceilTo5(v float64) float64  { return math.Ceil(v/5) * 5 }
