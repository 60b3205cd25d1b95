package classify

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statlinehq/statline/internal/series"
)

func TestClassify_SpecExample(t *testing.T) {
	points := []series.DataPoint{
		{GameID: "a", Value: series.Float(12)},
		{GameID: "b", Value: series.Float(8)},
		{GameID: "c", Value: series.Float(15)},
		{GameID: "d", Value: series.Float(10)},
	}
	got := All(points, 10, false)
	require.Equal(t, []Outcome{Over, Under, Over, Push}, got)

	sum := Summarize(got)
	assert.Equal(t, 4, sum.Total)
	assert.InDelta(t, 0.50, sum.OverShare(), 1e-9)
	assert.InDelta(t, 0.25, sum.UnderShare(), 1e-9)
}

func TestClassify_Invert(t *testing.T) {
	// Turnovers: fewer is favorable, so a value under the line is "over"
	// in the favorable sense.
	assert.Equal(t, Under, Classify(5, 3.5, true))
	assert.Equal(t, Over, Classify(2, 3.5, true))
	// Push stays exact equality regardless of direction.
	assert.Equal(t, Push, Classify(3.5, 3.5, true))
	assert.Equal(t, Push, Classify(3.5, 3.5, false))
}

func TestClassify_Idempotent(t *testing.T) {
	for i := 0; i < 10; i++ {
		assert.Equal(t, Over, Classify(20.5, 19.5, false))
	}
}

func TestClassify_NonFinite(t *testing.T) {
	assert.Equal(t, None, Classify(math.NaN(), 10, false))
	assert.Equal(t, None, Classify(10, math.Inf(1), false))
}

func TestAll_CountsPartitionNonNullPoints(t *testing.T) {
	points := []series.DataPoint{
		{GameID: "a", Value: series.Float(1)},
		{GameID: "b"}, // DNP
		{GameID: "c", Value: series.Float(9)},
		{GameID: "d", Value: series.Float(5)},
		{GameID: "e", Value: series.Float(math.NaN())},
		{GameID: "f", Value: series.Float(7)},
	}
	for _, threshold := range []float64{-3, 0, 1, 5, 6.5, 100} {
		outcomes := All(points, threshold, false)
		require.Len(t, outcomes, len(points))
		sum := Summarize(outcomes)
		nonNull := 0
		for _, p := range points {
			if p.HasValue() {
				nonNull++
			}
		}
		assert.Equal(t, nonNull, sum.Over+sum.Under+sum.Push, "threshold %v", threshold)
		assert.Equal(t, Outcome(None), outcomes[1])
		assert.Equal(t, Outcome(None), outcomes[4])
	}
}

func TestSummary_EmptyShares(t *testing.T) {
	var s Summary
	assert.Equal(t, 0.0, s.OverShare())
	assert.Equal(t, 0.0, s.UnderShare())
}
