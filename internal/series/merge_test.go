package series

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gamePoints(n int) []DataPoint {
	out := make([]DataPoint, n)
	for i := range out {
		out[i] = DataPoint{
			GameID: fmt.Sprintf("game-%d", i),
			XLabel: fmt.Sprintf("G%d", i+1),
			Value:  Float(float64(10 + i)),
		}
	}
	return out
}

func TestMergeSecondary_PartialMatch(t *testing.T) {
	primary := gamePoints(10)
	secondary := make([]SecondaryPoint, 0, 6)
	for i := 0; i < 6; i++ {
		secondary = append(secondary, SecondaryPoint{GameID: fmt.Sprintf("game-%d", i), Value: 100 + float64(i)})
	}

	merged, matched := MergeSecondary(primary, secondary)
	require.Len(t, merged, 10)
	assert.Equal(t, 6, matched)

	nonNil, nils := 0, 0
	for _, p := range merged {
		if p.Secondary != nil {
			nonNil++
		} else {
			nils++
		}
	}
	assert.Equal(t, 6, nonNil)
	assert.Equal(t, 4, nils)
}

func TestMergeSecondary_UnmatchedSecondaryDropped(t *testing.T) {
	primary := gamePoints(3)
	secondary := []SecondaryPoint{
		{GameID: "game-1", Value: 99},
		{GameID: "not-in-primary", Value: 1},
		{GameID: "", Value: 2},
	}
	merged, matched := MergeSecondary(primary, secondary)
	assert.Equal(t, 1, matched)
	require.NotNil(t, merged[1].Secondary)
	assert.Equal(t, 99.0, *merged[1].Secondary)
	assert.Nil(t, merged[0].Secondary)
	assert.Nil(t, merged[2].Secondary)
}

func TestMergeSecondary_NonFiniteSecondaryIsGap(t *testing.T) {
	primary := gamePoints(2)
	merged, matched := MergeSecondary(primary, []SecondaryPoint{
		{GameID: "game-0", Value: math.NaN()},
		{GameID: "game-1", Value: math.Inf(1)},
	})
	assert.Equal(t, 0, matched)
	assert.Nil(t, merged[0].Secondary)
	assert.Nil(t, merged[1].Secondary)
}

func TestMergeSecondary_DoesNotMutateInput(t *testing.T) {
	primary := gamePoints(2)
	primary[0].Secondary = Float(1)
	_, _ = MergeSecondary(primary, nil)
	require.NotNil(t, primary[0].Secondary)
}

func TestValues_FiltersNulls(t *testing.T) {
	pts := []DataPoint{
		{GameID: "a", Value: Float(3)},
		{GameID: "b"},
		{GameID: "c", Value: Float(math.NaN())},
		{GameID: "d", Value: Float(7)},
	}
	assert.Equal(t, []float64{3, 7}, Values(pts))
}
