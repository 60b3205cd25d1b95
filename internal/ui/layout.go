package ui

import (
	"fmt"

	"github.com/statlinehq/statline/internal/axis"
	"github.com/statlinehq/statline/internal/overlay"
	"github.com/statlinehq/statline/internal/series"
)

const (
	axisGutter      = 5 // left tick labels, hidden on narrow viewports
	secondaryGutter = 6 // right tick labels for the overlay axis
	labelRows       = 1 // x labels under the plot
)

type chartOpts struct {
	points        []series.DataPoint
	ax            axis.Config
	ax2           axis.Config
	showSecondary bool
	width         int
	height        int
	narrow        bool
	generation    uint64
}

// buildChart is the structural render path: it lays out bars, axes, and
// the overlay series into a fresh grid and records the geometry the
// synchronizer needs for in-place updates. Bars are drawn uncolored
// (colGap); the synchronizer's post-acquire pass colors them.
func buildChart(o chartOpts) (*chartSurface, *overlay.Geometry) {
	g := newGrid(o.width, o.height)

	plotX := axisGutter
	plotW := o.width - axisGutter
	if o.showSecondary && !o.narrow {
		plotW -= secondaryGutter
	}
	if o.narrow {
		// Axis labels are hidden; the full width goes to bars.
		plotX = 0
		plotW = o.width
	}
	plotH := o.height - labelRows
	plotW = max(1, plotW)
	plotH = max(1, plotH)

	geom := &overlay.Geometry{
		PlotX:      plotX,
		PlotY:      0,
		PlotW:      plotW,
		PlotH:      plotH,
		Generation: o.generation,
	}

	if !o.narrow {
		drawPrimaryAxis(g, geom, o.ax)
		if o.showSecondary {
			drawSecondaryAxis(g, geom, o.ax2)
		}
	}

	n := len(o.points)
	if n == 0 {
		return &chartSurface{grid: g, geom: geom}, geom
	}

	slot := max(1, plotW/n)
	barW := max(1, slot-1)
	baseline := geom.PlotY + plotH - 1

	geom.Bars = make([]overlay.BarGeometry, n)
	for i, p := range o.points {
		x := plotX + i*slot + (slot-barW)/2
		bar := overlay.BarGeometry{X: x, Width: barW, Top: baseline, Bottom: baseline}
		if p.HasValue() {
			hc := barCells(o.ax.Normalize(*p.Value), plotH)
			bar.Top = baseline - hc + 1
			for y := bar.Top; y <= bar.Bottom; y++ {
				for bx := x; bx < x+barW; bx++ {
					g.set(bx, y, '█', colGap)
				}
			}
		} else {
			// Null point: a gap dot at the baseline, never a bar.
			for bx := x; bx < x+barW; bx++ {
				g.set(bx, baseline, '·', colGap)
			}
		}
		geom.Bars[i] = bar
	}

	// Overlay series: one dot per game at the secondary axis height; games
	// without a sample stay blank (a gap, never interpolated).
	if o.showSecondary {
		for i, p := range o.points {
			if !p.HasSecondary() {
				continue
			}
			b := geom.Bars[i]
			cx := b.X + b.Width/2
			y := geom.PlotY + plotH - 1 - int(o.ax2.Normalize(*p.Secondary)*float64(plotH-1)+0.5)
			g.set(cx, y, '◆', colSecondary)
		}
	}

	if !o.narrow {
		drawXLabels(g, geom, o.points, baseline+1)
	}

	return &chartSurface{grid: g, geom: geom}, geom
}

// barCells converts a normalized value into a bar height of at least one
// cell so even small values stay visible.
func barCells(pct float64, plotH int) int {
	hc := int(pct*float64(plotH-1) + 0.5)
	return min(plotH, max(1, hc+1))
}

func drawPrimaryAxis(g *grid, geom *overlay.Geometry, ax axis.Config) {
	axisX := geom.PlotX - 1
	for y := geom.PlotY; y < geom.PlotY+geom.PlotH; y++ {
		g.set(axisX, y, '│', colAxis)
	}
	for _, tick := range ax.Ticks {
		y := geom.PlotY + geom.PlotH - 1 - int(ax.Normalize(tick)*float64(geom.PlotH-1)+0.5)
		g.set(axisX, y, '┤', colAxis)
		label := fmt.Sprintf("%*s", axisGutter-1, trimFloat(tick))
		g.text(0, y, label, colLabel)
	}
}

func drawSecondaryAxis(g *grid, geom *overlay.Geometry, ax2 axis.Config) {
	axisX := geom.PlotX + geom.PlotW
	for y := geom.PlotY; y < geom.PlotY+geom.PlotH; y++ {
		g.set(axisX, y, '│', colSecondary)
	}
	for _, tick := range ax2.Ticks {
		y := geom.PlotY + geom.PlotH - 1 - int(ax2.Normalize(tick)*float64(geom.PlotH-1)+0.5)
		g.set(axisX, y, '├', colSecondary)
		g.text(axisX+1, y, trimFloat(tick), colSecondary)
	}
}

func drawXLabels(g *grid, geom *overlay.Geometry, points []series.DataPoint, row int) {
	// Label every k-th game so labels never collide.
	n := len(points)
	k := 1
	for n/k > 6 {
		k++
	}
	for i := 0; i < n; i += k {
		b := geom.Bars[i]
		label := fmt.Sprintf("G%d", i+1)
		g.text(b.X, row, label, colLabel)
	}
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.1f", v)
	if s[len(s)-1] == '0' && s[len(s)-2] == '.' {
		return s[:len(s)-2]
	}
	return s
}

// barAt picks the bar whose center is nearest to chart-local column x,
// within one slot of slack. Mirrors pointer hit-testing on bar charts.
func barAt(geom *overlay.Geometry, x int) (int, bool) {
	if geom == nil || len(geom.Bars) == 0 {
		return 0, false
	}
	best, bestD := -1, 1<<30
	for i, b := range geom.Bars {
		c := b.X + b.Width/2
		d := absInt(x - c)
		if d < bestD {
			best, bestD = i, d
		}
	}
	slack := geom.PlotW/len(geom.Bars) + 1
	if bestD > slack {
		return 0, false
	}
	return best, true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
