package ui

import (
	"math"
	"testing"

	tui "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/statlinehq/statline/internal/config"
	"github.com/statlinehq/statline/internal/logging"
	"github.com/statlinehq/statline/internal/series"
	"github.com/statlinehq/statline/internal/source"
)

func testModel(t *testing.T, mount Mount) (*Model, *source.Provider) {
	t.Helper()
	cfg := config.New()
	cfg.Seed = 7
	log := logging.New(logging.Options{})
	provider := source.NewProvider(cfg.Seed)
	m := New(cfg, log, provider, mount)
	t.Cleanup(m.Close)
	m.Update(tui.WindowSizeMsg{Width: 100, Height: 30})
	return m, provider
}

func deliverDataset(t *testing.T, m *Model, p *source.Provider) uuid.UUID {
	t.Helper()
	tok := p.Begin()
	ds := p.FetchPrimary(tok, m.metric(), 10)
	m.Update(datasetMsg{ds})
	require.NotEmpty(t, m.points)
	m.Update(acquireMsg{attempt: 0, gen: m.gen})
	return tok
}

func TestModel_DatasetAppliesAndAcquires(t *testing.T) {
	m, p := testModel(t, Mount{MetricKey: "points"})
	deliverDataset(t, m, p)

	require.NotNil(t, m.surface)
	assert.True(t, m.sync.Attached())
	assert.Len(t, m.points, 10)
	// The suggested line landed in the committed store.
	assert.True(t, m.store.Has(m.metric().Key))
}

func TestModel_StaleDatasetDiscarded(t *testing.T) {
	m, p := testModel(t, Mount{MetricKey: "points"})
	deliverDataset(t, m, p)
	before := m.points

	stale := p.FetchPrimary(p.Begin(), m.metric(), 5)
	p.Begin() // supersedes the fetch above
	m.Update(datasetMsg{stale})

	assert.Equal(t, len(before), len(m.points))
}

func TestModel_StaleAcquireRefused(t *testing.T) {
	m, p := testModel(t, Mount{MetricKey: "points"})
	deliverDataset(t, m, p)

	gen := m.gen
	m.Update(tui.WindowSizeMsg{Width: 90, Height: 28}) // rebuild, new generation
	require.NotEqual(t, gen, m.gen)

	assert.False(t, m.sync.Attached())
	m.Update(acquireMsg{attempt: 0, gen: gen}) // stale, must be dropped
	assert.False(t, m.sync.Attached())
	m.Update(acquireMsg{attempt: 0, gen: m.gen})
	assert.True(t, m.sync.Attached())
}

func TestModel_CommitPipeline(t *testing.T) {
	var gotMetric string
	var gotValue float64
	m, p := testModel(t, Mount{
		MetricKey: "points",
		OnCommit:  func(metric string, v float64) { gotMetric, gotValue = metric, v },
	})
	deliverDataset(t, m, p)

	m.commitLine(12)
	key := m.metric().Key
	assert.Equal(t, key, gotMetric)
	assert.Equal(t, 12.0, gotValue)
	assert.Equal(t, 12.0, m.store.Committed(key))
	assert.True(t, m.manual[key])
}

func TestModel_SuggestedDoesNotOverrideManual(t *testing.T) {
	m, p := testModel(t, Mount{MetricKey: "points"})
	deliverDataset(t, m, p)

	m.commitLine(12)
	deliverDataset(t, m, p) // fresh fetch carries a new suggestion
	assert.Equal(t, 12.0, m.store.Committed(m.metric().Key))
}

func TestModel_PresetLineSurvivesDatasets(t *testing.T) {
	m, p := testModel(t, Mount{MetricKey: "points", Line: 21.5, HasLine: true})
	deliverDataset(t, m, p)
	assert.Equal(t, 21.5, m.store.Committed("points"))
}

func TestModel_RankOverlayGetsFixedDomain(t *testing.T) {
	m, p := testModel(t, Mount{MetricKey: "points"})
	tok := deliverDataset(t, m, p)

	// Opponent defensive ranks live on the bounded 30-team scale; the
	// overlay axis must use the fixed rank domain, not a padded one.
	ranks := make([]series.SecondaryPoint, 0, len(m.points))
	for i, dp := range m.points {
		ranks = append(ranks, series.SecondaryPoint{GameID: dp.GameID, Value: float64(10 + i%6)})
	}
	m.Update(secondaryMsg{source.Secondary{Token: tok, Points: ranks}})

	require.True(t, m.secondaryOn)
	assert.Equal(t, 0.0, m.ax2.DomainMin)
	assert.Equal(t, 30.0, m.ax2.DomainMax)
}

func TestModel_MetricStepReachesControl(t *testing.T) {
	m, p := testModel(t, Mount{MetricKey: "def-rank"})
	deliverDataset(t, m, p)

	// Defensive rank moves in whole ranks; every track position must
	// resolve to an integer value.
	for x := 0; x < 40; x += 7 {
		v := m.ctl.ValueAt(x)
		assert.Equal(t, math.Round(v), v, "track cell %d", x)
	}
}

func TestModel_NarrowSwitchesTooltipMode(t *testing.T) {
	m, _ := testModel(t, Mount{MetricKey: "points"})
	assert.False(t, m.narrow)

	m.Update(tui.WindowSizeMsg{Width: 60, Height: 24})
	assert.True(t, m.narrow)

	m.Update(tui.WindowSizeMsg{Width: 120, Height: 30})
	assert.False(t, m.narrow)
}
