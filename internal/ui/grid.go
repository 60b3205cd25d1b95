package ui

import (
	"strings"

	"github.com/statlinehq/statline/internal/classify"
	"github.com/statlinehq/statline/internal/overlay"
)

type cell struct {
	ch    rune
	color colorID
}

// grid is the retained cell buffer the chart renders from. Structural
// rebuilds allocate a new grid; the overlay synchronizer only recolors
// cells and moves the marker/tint fields on the surface that wraps it.
type grid struct {
	w, h  int
	cells [][]cell
}

func newGrid(w, h int) *grid {
	g := &grid{w: max(1, w), h: max(1, h)}
	g.cells = make([][]cell, g.h)
	for y := range g.cells {
		row := make([]cell, g.w)
		for x := range row {
			row[x] = cell{ch: ' '}
		}
		g.cells[y] = row
	}
	return g
}

func (g *grid) in(x, y int) bool { return x >= 0 && x < g.w && y >= 0 && y < g.h }

func (g *grid) set(x, y int, ch rune, c colorID) {
	if g.in(x, y) {
		g.cells[y][x] = cell{ch: ch, color: c}
	}
}

func (g *grid) recolor(x, y int, c colorID) {
	if g.in(x, y) {
		g.cells[y][x].color = c
	}
}

func (g *grid) text(x, y int, s string, c colorID) {
	for i, r := range []rune(s) {
		g.set(x+i, y, r, c)
	}
}

// chartSurface is the imperative handle set over the rendered chart. The
// synchronizer mutates it in place for threshold-only updates; everything
// else goes through a rebuild that replaces the whole surface.
type chartSurface struct {
	grid *grid
	geom *overlay.Geometry

	markerPct float64
	hasMarker bool
	tint      overlay.Tint
	dragging  func() bool
}

var _ overlay.Surface = (*chartSurface)(nil)

func (s *chartSurface) UpdateBarColor(i int, o classify.Outcome) {
	if i < 0 || i >= len(s.geom.Bars) {
		return
	}
	b := s.geom.Bars[i]
	c := colorFor(o)
	for y := b.Top; y <= b.Bottom; y++ {
		for x := b.X; x < b.X+b.Width; x++ {
			s.grid.recolor(x, y, c)
		}
	}
}

func (s *chartSurface) UpdateMarker(pct float64) {
	s.markerPct = pct
	s.hasMarker = true
}

func (s *chartSurface) UpdateTint(t overlay.Tint) {
	s.tint = t
}

// popupSpec is a tooltip box blitted over the chart at serialization time,
// leaving the retained buffer untouched.
type popupSpec struct {
	x, y  int
	lines []string
}

// render serializes the buffer, applying the marker row, background tint,
// and popup as cell-level overlays. Runs of equally-styled cells are
// styled together.
func (s *chartSurface) render(th theme, narrow bool, popup *popupSpec) string {
	markerRow := -1
	if s.hasMarker {
		markerRow = s.geom.MarkerRow(s.markerPct)
	}
	refX0, refX1 := s.geom.ReferenceSpan()

	tintStyle, tinted := th.tintStyle(s.tint)

	var sb strings.Builder
	for y := 0; y < s.grid.h; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		x := 0
		for x < s.grid.w {
			c := s.cellAt(x, y, markerRow, refX0, refX1, narrow, popup)
			run := []rune{c.ch}
			x++
			for x < s.grid.w {
				n := s.cellAt(x, y, markerRow, refX0, refX1, narrow, popup)
				if n.color != c.color {
					break
				}
				run = append(run, n.ch)
				x++
			}
			st := th.style(c.color)
			if tinted && c.color != colPopup && s.inPlot(y) {
				st = st.Inherit(tintStyle)
			}
			sb.WriteString(st.Render(string(run)))
		}
	}
	return sb.String()
}

// cellAt resolves the effective cell under overlays. The popup wins over
// everything; on narrow viewports the marker collapses to a simplified
// reference line spanning the actual bar bounds.
func (s *chartSurface) cellAt(x, y, markerRow, refX0, refX1 int, narrow bool, popup *popupSpec) cell {
	if popup != nil {
		if r, ok := popup.runeAt(x, y); ok {
			return cell{ch: r, color: colPopup}
		}
	}
	base := s.grid.cells[y][x]
	if y != markerRow {
		return base
	}
	col := colMarker
	if s.dragging != nil && s.dragging() {
		col = colMarkerDrag
	}
	if narrow {
		if x >= refX0 && x <= refX1 {
			return cell{ch: '╌', color: colRef}
		}
		return base
	}
	if x < s.geom.PlotX || x >= s.geom.PlotX+s.geom.PlotW {
		return base
	}
	if base.ch == ' ' || base.ch == '·' {
		return cell{ch: '─', color: col}
	}
	// Marker crossing a bar keeps the bar cell but flags the color so the
	// line stays readable through the bars.
	return cell{ch: base.ch, color: col}
}

func (s *chartSurface) inPlot(y int) bool {
	return y >= s.geom.PlotY && y < s.geom.PlotY+s.geom.PlotH
}

// runeAt returns the popup rune covering grid cell (x, y), if any.
func (p *popupSpec) runeAt(x, y int) (rune, bool) {
	row := y - p.y
	if row < 0 || row >= len(p.lines) {
		return 0, false
	}
	runes := []rune(p.lines[row])
	col := x - p.x
	if col < 0 || col >= len(runes) {
		return 0, false
	}
	return runes[col], true
}
