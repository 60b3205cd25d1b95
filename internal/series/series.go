package series

import "math"

// Kind selects the axis-domain rules for a metric.
type Kind int

const (
	// KindCounting covers box-score counting stats (points, rebounds, ...):
	// zero-anchored domain derived from the data.
	KindCounting Kind = iota
	// KindRank covers bounded integer scales (league rank 1..30): fixed
	// domain, data ignored.
	KindRank
	// KindRate covers tempo-like rates (pace): padded domain around the
	// observed range.
	KindRate
)

// MarketClass tags how a metric is traded. Moneyline/spread-class metrics
// suppress the background tint.
type MarketClass int

const (
	ClassProp MarketClass = iota
	ClassMoneyline
	ClassSpread
)

// Metric describes one plottable statistic.
type Metric struct {
	Key    string
	Label  string
	Kind   Kind
	Class  MarketClass
	Invert bool    // smaller value is favorable (turnovers, defensive rank)
	Step   float64 // range-control granularity
}

// DataPoint is one game in a stat series. Value and Secondary are nil when
// the game has no usable number (DNP, missing overlay sample); nil is
// rendered as a gap, never interpolated.
type DataPoint struct {
	GameID    string
	XLabel    string
	Value     *float64
	Secondary *float64
	Raw       map[string]float64
}

// HasValue reports whether the point carries a finite primary value.
func (p DataPoint) HasValue() bool {
	return p.Value != nil && !math.IsInf(*p.Value, 0) && !math.IsNaN(*p.Value)
}

// HasSecondary reports whether the point carries a finite overlay value.
func (p DataPoint) HasSecondary() bool {
	return p.Secondary != nil && !math.IsInf(*p.Secondary, 0) && !math.IsNaN(*p.Secondary)
}

// Values returns the finite primary values in series order.
func Values(points []DataPoint) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		if p.HasValue() {
			out = append(out, *p.Value)
		}
	}
	return out
}

// SecondaryValues returns the finite overlay values in series order.
func SecondaryValues(points []DataPoint) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		if p.HasSecondary() {
			out = append(out, *p.Secondary)
		}
	}
	return out
}

// Float is a convenience for building optional values in callers and tests.
func Float(v float64) *float64 { return &v }
