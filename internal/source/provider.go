// Package source is the demo data-acquisition layer: synthetic game logs
// or a JSON file, delivered asynchronously with freshness tokens so a
// superseded fetch can never apply its result after the fact.
package source

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/statlinehq/statline/internal/series"
)

// Dataset is one primary-series delivery.
type Dataset struct {
	Token     uuid.UUID
	Metric    series.Metric
	Points    []series.DataPoint
	// Suggested is the per-metric market-consensus line, applied only if
	// the user has not manually set one for this metric.
	Suggested    float64
	HasSuggested bool
}

// Secondary is one overlay-series delivery for the same token.
type Secondary struct {
	Token  uuid.UUID
	Points []series.SecondaryPoint
}

// Provider issues fetches and tracks which token is current.
type Provider struct {
	mu     sync.Mutex
	rng    *rand.Rand
	latest uuid.UUID

	fixed []series.DataPoint // file-loaded dataset, nil for synthetic
}

func NewProvider(seed int64) *Provider {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Provider{rng: rand.New(rand.NewSource(seed))}
}

// UseFixed plugs in a file-loaded dataset in place of synthetic data.
func (p *Provider) UseFixed(points []series.DataPoint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.fixed = points
}

// Begin starts a new fetch generation, superseding earlier ones.
func (p *Provider) Begin() uuid.UUID {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.latest = uuid.New()
	return p.latest
}

// Fresh reports whether tok is still the current generation.
func (p *Provider) Fresh(tok uuid.UUID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return tok == p.latest
}

// FetchPrimary produces the primary series for a metric. The caller wraps
// it in an async command; the result carries tok for the freshness check.
func (p *Provider) FetchPrimary(tok uuid.UUID, metric series.Metric, games int) Dataset {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.fixed != nil {
		return Dataset{Token: tok, Metric: metric, Points: p.fixed}
	}

	points := make([]series.DataPoint, games)
	for i := range points {
		points[i] = p.syntheticPoint(metric, i)
	}
	suggested := consensusLine(series.Values(points), metric.Step)
	return Dataset{Token: tok, Metric: metric, Points: points, Suggested: suggested, HasSuggested: true}
}

// FetchSecondary produces the overlay series. Roughly a third of the games
// have no overlay sample, exercising the gap rendering.
func (p *Provider) FetchSecondary(tok uuid.UUID, overlayKey string, games int) Secondary {
	p.mu.Lock()
	defer p.mu.Unlock()

	if overlayKey == "" {
		return Secondary{Token: tok}
	}
	out := make([]series.SecondaryPoint, 0, games)
	for i := 0; i < games; i++ {
		if p.rng.Float64() < 0.35 {
			continue
		}
		v := 95 + p.rng.Float64()*12
		if overlayKey == "opp-def-rank" {
			v = float64(1 + p.rng.Intn(30))
		}
		out = append(out, series.SecondaryPoint{GameID: gameID(i), Value: v})
	}
	return Secondary{Token: tok, Points: out}
}

var opponents = []string{"BOS", "NYK", "MIA", "PHI", "MIL", "CHI", "CLE", "ATL", "TOR", "DET"}

func (p *Provider) syntheticPoint(metric series.Metric, i int) series.DataPoint {
	opp := opponents[p.rng.Intn(len(opponents))]
	dp := series.DataPoint{
		GameID: gameID(i),
		XLabel: fmt.Sprintf("%s G%d", opp, i+1),
		Raw:    map[string]float64{"minutes": 28 + p.rng.Float64()*12},
	}
	// Occasional DNP: null value, tolerated by omission downstream.
	if p.rng.Float64() < 0.06 {
		return dp
	}
	var v float64
	switch metric.Kind {
	case series.KindRank:
		v = float64(1 + p.rng.Intn(30))
	case series.KindRate:
		v = 96 + p.rng.NormFloat64()*3.5
	default:
		mean := map[string]float64{
			"points": 24, "rebounds": 8, "assists": 6,
			"threes": 3, "turnovers": 3, "spread": 7,
		}[metric.Key]
		if mean == 0 {
			mean = 10
		}
		v = math.Max(0, math.Round(mean+p.rng.NormFloat64()*mean/3))
	}
	dp.Value = series.Float(v)
	dp.Raw[metric.Key] = v
	return dp
}

func gameID(i int) string { return fmt.Sprintf("0022500%03d", i+1) }

// consensusLine mocks the odds-consensus feed: the median observed value
// snapped to a half-point so it rarely lands exactly on a game.
func consensusLine(values []float64, step float64) float64 {
	if len(values) == 0 {
		return 0.5
	}
	sorted := append([]float64(nil), values...)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j] < sorted[j-1]; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	med := sorted[len(sorted)/2]
	if step <= 0 {
		step = 0.5
	}
	line := math.Round(med/step)*step + step/2
	return line
}
