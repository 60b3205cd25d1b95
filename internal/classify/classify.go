// Package classify maps per-game values against a threshold.
package classify

import (
	"math"

	"github.com/statlinehq/statline/internal/series"
)

// Outcome is the categorization of one value relative to the line.
type Outcome int

const (
	// None marks a null/malformed point: it is carried in the parallel
	// sequence so indexes line up, and excluded from every aggregate.
	None Outcome = iota
	Over
	Under
	Push
)

func (o Outcome) String() string {
	switch o {
	case Over:
		return "OVER"
	case Under:
		return "UNDER"
	case Push:
		return "PUSH"
	default:
		return "-"
	}
}

// Classify maps (value, threshold, invert) to an outcome. Push is exact
// equality regardless of invert; invert flips the Over/Under meaning for
// metrics where a smaller value is favorable.
func Classify(value, threshold float64, invert bool) Outcome {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return None
	}
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return None
	}
	if value == threshold {
		return Push
	}
	over := value > threshold
	if invert {
		over = !over
	}
	if over {
		return Over
	}
	return Under
}

// All classifies every point against the threshold. The result is parallel
// to points; null values yield None rather than an error.
func All(points []series.DataPoint, threshold float64, invert bool) []Outcome {
	out := make([]Outcome, len(points))
	for i, p := range points {
		if !p.HasValue() {
			out[i] = None
			continue
		}
		out[i] = Classify(*p.Value, threshold, invert)
	}
	return out
}

// Summary aggregates a classification sequence. Total counts classified
// (non-null) points only.
type Summary struct {
	Over  int
	Under int
	Push  int
	Total int
}

// Summarize folds a parallel outcome sequence into counts.
func Summarize(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		switch o {
		case Over:
			s.Over++
		case Under:
			s.Under++
		case Push:
			s.Push++
		default:
			continue
		}
		s.Total++
	}
	return s
}

// OverShare is the fraction of classified points that went over, 0 when
// nothing classified.
func (s Summary) OverShare() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Over) / float64(s.Total)
}

// UnderShare is the fraction of classified points that went under.
func (s Summary) UnderShare() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Under) / float64(s.Total)
}
