package source

import "github.com/statlinehq/statline/internal/series"

// Catalog is the demo metric set. Each entry names its overlay metric when
// one exists; an empty overlay key means single-axis rendering. The
// overlay carries its own kind so its axis gets that kind's domain rules,
// independent of the primary metric.
type CatalogEntry struct {
	Metric      series.Metric
	OverlayKey  string
	OverlayKind series.Kind
}

// Catalog returns the metrics the demo dashboard offers.
func Catalog() []CatalogEntry {
	return []CatalogEntry{
		{Metric: series.Metric{Key: "points", Label: "Points", Kind: series.KindCounting, Step: 0.5}, OverlayKey: "opp-def-rank", OverlayKind: series.KindRank},
		{Metric: series.Metric{Key: "rebounds", Label: "Rebounds", Kind: series.KindCounting, Step: 0.5}, OverlayKey: "opp-pace", OverlayKind: series.KindRate},
		{Metric: series.Metric{Key: "assists", Label: "Assists", Kind: series.KindCounting, Step: 0.5}, OverlayKey: "opp-pace", OverlayKind: series.KindRate},
		{Metric: series.Metric{Key: "threes", Label: "3PT Made", Kind: series.KindCounting, Step: 0.5}, OverlayKey: ""},
		{Metric: series.Metric{Key: "turnovers", Label: "Turnovers", Kind: series.KindCounting, Invert: true, Step: 0.5}, OverlayKey: "opp-pace", OverlayKind: series.KindRate},
		{Metric: series.Metric{Key: "def-rank", Label: "Defensive Rank", Kind: series.KindRank, Invert: true, Step: 1}, OverlayKey: ""},
		{Metric: series.Metric{Key: "pace", Label: "Pace", Kind: series.KindRate, Step: 0.5}, OverlayKey: ""},
		{Metric: series.Metric{Key: "spread", Label: "Spread Margin", Kind: series.KindCounting, Class: series.ClassSpread, Step: 0.5}, OverlayKey: ""},
	}
}
