package series

// SecondaryPoint is one overlay sample keyed by game, as delivered by the
// data-acquisition layer.
type SecondaryPoint struct {
	GameID string
	Value  float64
}

// MergeSecondary joins an independently-fetched overlay series onto the
// primary series by game identifier. Unmatched secondary entries are
// dropped; unmatched primary points keep a nil Secondary (a gap in the
// overlay). The returned count is the number of finite overlay values that
// landed; fewer than one means the merge is inactive and the caller should
// stay on single-axis rendering.
func MergeSecondary(primary []DataPoint, secondary []SecondaryPoint) ([]DataPoint, int) {
	byGame := make(map[string]float64, len(secondary))
	for _, s := range secondary {
		if s.GameID == "" {
			continue
		}
		byGame[s.GameID] = s.Value
	}

	out := make([]DataPoint, len(primary))
	copy(out, primary)
	matched := 0
	for i := range out {
		out[i].Secondary = nil
		v, ok := byGame[out[i].GameID]
		if !ok {
			continue
		}
		out[i].Secondary = Float(v)
		if out[i].HasSecondary() {
			matched++
		} else {
			out[i].Secondary = nil
		}
	}
	return out, matched
}
