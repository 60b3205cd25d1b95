package overlay

import (
	"github.com/statlinehq/statline/internal/classify"
	"github.com/statlinehq/statline/internal/series"
)

// Tint is the background intensity selected from the aggregate over/under
// split.
type Tint int

const (
	TintNone Tint = iota
	TintOverWeak
	TintOverStrong
	TintUnderWeak
	TintUnderStrong
)

func (t Tint) String() string {
	switch t {
	case TintOverWeak:
		return "over/weak"
	case TintOverStrong:
		return "over/strong"
	case TintUnderWeak:
		return "under/weak"
	case TintUnderStrong:
		return "under/strong"
	default:
		return "neutral"
	}
}

// TintConfig holds the tint boundaries. All comparisons are strict: a side
// exactly at a bound does not qualify.
type TintConfig struct {
	// StrongAbove: a side whose share exceeds this gets the strong tint.
	StrongAbove float64
	// WeakAbove: the leading side must exceed this for the weak tint.
	WeakAbove float64
	// OneSidedBelow: the trailing side must stay under this for the split
	// to count as one-sided. A 50/25 split is neutral; 50/20 is weak.
	OneSidedBelow float64
}

// DefaultTintConfig returns the production bounds.
func DefaultTintConfig() TintConfig {
	return TintConfig{StrongAbove: 0.60, WeakAbove: 0.40, OneSidedBelow: 0.25}
}

// TintFor selects the background tint. Moneyline/spread-class metrics
// always suppress it.
func TintFor(sum classify.Summary, class series.MarketClass, cfg TintConfig) Tint {
	if class == series.ClassMoneyline || class == series.ClassSpread {
		return TintNone
	}
	if sum.Total == 0 {
		return TintNone
	}
	over, under := sum.OverShare(), sum.UnderShare()
	lead, trail := over, under
	overLeads := over >= under
	if !overLeads {
		lead, trail = under, over
	}
	switch {
	case lead > cfg.StrongAbove:
		if overLeads {
			return TintOverStrong
		}
		return TintUnderStrong
	case lead > cfg.WeakAbove && trail < cfg.OneSidedBelow:
		if overLeads {
			return TintOverWeak
		}
		return TintUnderWeak
	default:
		return TintNone
	}
}
