package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statlinehq/statline/internal/series"
)

func TestProvider_FreshnessTokens(t *testing.T) {
	p := NewProvider(1)
	tok1 := p.Begin()
	require.True(t, p.Fresh(tok1))

	tok2 := p.Begin()
	assert.False(t, p.Fresh(tok1), "superseded fetch must not apply")
	assert.True(t, p.Fresh(tok2))
}

func TestProvider_FetchPrimaryShape(t *testing.T) {
	p := NewProvider(7)
	metric := series.Metric{Key: "points", Kind: series.KindCounting, Step: 0.5}
	ds := p.FetchPrimary(p.Begin(), metric, 20)
	require.Len(t, ds.Points, 20)
	assert.True(t, ds.HasSuggested)
	// Consensus line is snapped off the integer grid.
	assert.NotEqual(t, ds.Suggested, float64(int(ds.Suggested)))

	seen := make(map[string]bool)
	for _, pt := range ds.Points {
		require.NotEmpty(t, pt.GameID)
		assert.False(t, seen[pt.GameID], "game ids must be unique join keys")
		seen[pt.GameID] = true
	}
}

func TestProvider_FetchSecondaryJoinsPrimary(t *testing.T) {
	p := NewProvider(7)
	tok := p.Begin()
	ds := p.FetchPrimary(tok, series.Metric{Key: "rebounds", Kind: series.KindCounting, Step: 0.5}, 20)
	sec := p.FetchSecondary(tok, "opp-pace", 20)
	require.NotEmpty(t, sec.Points)
	require.Less(t, len(sec.Points), 20, "some games must lack overlay samples")

	merged, matched := series.MergeSecondary(ds.Points, sec.Points)
	assert.Equal(t, len(sec.Points), matched)
	assert.Len(t, merged, 20)
}

func TestProvider_NoOverlayKey(t *testing.T) {
	p := NewProvider(3)
	sec := p.FetchSecondary(p.Begin(), "", 10)
	assert.Empty(t, sec.Points)
}

func TestProvider_Deterministic(t *testing.T) {
	a := NewProvider(42).FetchPrimary(uuid.Nil, series.Metric{Key: "points", Step: 0.5}, 10)
	b := NewProvider(42).FetchPrimary(uuid.Nil, series.Metric{Key: "points", Step: 0.5}, 10)
	require.Equal(t, len(a.Points), len(b.Points))
	for i := range a.Points {
		assert.Equal(t, a.Points[i].GameID, b.Points[i].GameID)
		assert.Equal(t, a.Points[i].Value, b.Points[i].Value)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "games.json")
	payload := `[
		{"game_id":"g1","label":"BOS G1","value":22,"secondary":101.5},
		{"game_id":"g2","value":null},
		{"label":"missing id","value":9},
		{"game_id":"g3","value":31,"raw":{"minutes":36}}
	]`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o644))

	pts, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, pts, 3, "record without game_id is skipped")

	assert.Equal(t, "BOS G1", pts[0].XLabel)
	require.NotNil(t, pts[0].Value)
	assert.Equal(t, 22.0, *pts[0].Value)
	assert.Nil(t, pts[1].Value)
	assert.Equal(t, "g2", pts[1].XLabel)
	assert.Equal(t, 36.0, pts[2].Raw["minutes"])
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile("/nonexistent/games.json")
	assert.Error(t, err)
}

func TestConsensusLine(t *testing.T) {
	line := consensusLine([]float64{10, 12, 14, 16, 18}, 0.5)
	assert.Equal(t, 14.25, line)
	assert.Equal(t, 0.5, consensusLine(nil, 0.5))
}
