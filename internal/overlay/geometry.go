package overlay

// BarGeometry is the rendered extent of one bar in cell coordinates.
// Top <= Bottom, rows growing downward.
type BarGeometry struct {
	X      int
	Width  int
	Top    int
	Bottom int
}

// Geometry is the rendered chart layout the synchronizer mutates through.
// Generation increments on every structural rebuild so a stale surface is
// never written to.
type Geometry struct {
	Bars       []BarGeometry
	PlotX      int
	PlotY      int
	PlotW      int
	PlotH      int
	Generation uint64
}

// ReferenceSpan is the horizontal extent of the actual rendered bars.
// Narrow viewports draw the simplified reference line across this span
// rather than fixed margins, since available width varies.
func (g *Geometry) ReferenceSpan() (x0, x1 int) {
	if g == nil || len(g.Bars) == 0 {
		return 0, 0
	}
	x0 = g.Bars[0].X
	x1 = g.Bars[0].X + g.Bars[0].Width - 1
	for _, b := range g.Bars[1:] {
		x0 = min(x0, b.X)
		x1 = max(x1, b.X+b.Width-1)
	}
	return x0, x1
}

// MarkerRow converts a normalized marker height (0 at domain floor, 1 at
// ceiling) into a grid row inside the plot area.
func (g *Geometry) MarkerRow(pct float64) int {
	if g.PlotH <= 0 {
		return g.PlotY
	}
	row := g.PlotY + g.PlotH - 1 - int(pct*float64(g.PlotH-1)+0.5)
	return min(g.PlotY+g.PlotH-1, max(g.PlotY, row))
}
