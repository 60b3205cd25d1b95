package ui

import (
	"fmt"
	"strings"

	styles "github.com/charmbracelet/lipgloss"
	plot "github.com/chriskim06/drawille-go"

	"github.com/statlinehq/statline/internal/overlay"
)

func (m *Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	right := chartStyle.Render(m.chartBody())
	var view string
	if m.narrow {
		view = right
	} else {
		left := m.listStyle.Render(styles.JoinVertical(styles.Left, m.list.View(), m.sparkline()))
		view = styles.JoinHorizontal(styles.Top, left, right)
	}

	blocks := []string{view, m.trackView(), m.rangeLabels(), m.statusLine()}
	if m.err != nil {
		errStyle := styles.NewStyle().Foreground(styles.AdaptiveColor{Light: "1", Dark: "9"})
		blocks = append(blocks, errStyle.Render("ERROR: "+m.err.Error()))
	}
	blocks = append(blocks, m.help.View(keys))
	return styles.JoinVertical(styles.Left, blocks...)
}

func (m *Model) chartBody() string {
	if m.surface == nil {
		return m.emptyChart()
	}
	return m.surface.render(m.th, m.narrow, m.popup())
}

func (m *Model) emptyChart() string {
	var sb strings.Builder
	sb.Grow((m.gridW + 1) * m.gridH)
	blank := strings.Repeat(" ", m.gridW)
	mid := m.gridH / 2
	msg := "waiting for data"
	if m.ax.Degenerate {
		msg = "no plottable games"
	}
	for y := 0; y < m.gridH; y++ {
		if y == mid && m.gridW > len(msg) {
			pad := (m.gridW - len(msg)) / 2
			sb.WriteString(blank[:pad])
			sb.WriteString(msg)
			sb.WriteString(blank[:m.gridW-pad-len(msg)])
		} else {
			sb.WriteString(blank)
		}
		if y < m.gridH-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// sparkline draws the primary series small under the metric list, the
// braille way the chart pane cannot.
func (m *Model) sparkline() string {
	if m.sparkRows == 0 || len(m.points) == 0 {
		return ""
	}
	vals := make([]float64, 0, len(m.points))
	for _, p := range m.points {
		if p.HasValue() {
			vals = append(vals, *p.Value)
		}
	}
	if len(vals) < 2 {
		return ""
	}
	p := plot.NewCanvas(m.leftPaneWidth, m.sparkRows)
	p.ShowAxis = false
	p.NumDataPoints = len(vals)
	if m.th.dark {
		p.LineColors = []plot.Color{plot.Red}
	} else {
		p.LineColors = []plot.Color{plot.Black}
	}
	p.Fill([][]float64{vals})
	return p.String()
}

// popup materializes the tooltip payload at its clamped position.
func (m *Model) popup() *popupSpec {
	p, ok := m.tip.Payload()
	if !ok || !m.tip.Visible() {
		return nil
	}
	metric := m.metric()
	lines := []string{
		" " + p.Point.XLabel + " ",
		fmt.Sprintf(" %s: %s ", metric.Label, pointValue(p.Point.Value)),
		" " + p.Outcome.String() + " ",
	}
	if p.Point.HasSecondary() {
		lines = append(lines, fmt.Sprintf(" opp: %s ", trimFloat(*p.Point.Secondary)))
	}
	// The grid maps one rune to one cell, so the box is sized in runes.
	w := 0
	for _, l := range lines {
		w = max(w, len([]rune(l)))
	}
	for i, l := range lines {
		lines[i] = l + strings.Repeat(" ", w-len([]rune(l)))
	}
	x, y := m.tip.Position(w, len(lines), m.gridW, m.gridH)
	return &popupSpec{x: x, y: y, lines: lines}
}

func pointValue(v *float64) string {
	if v == nil {
		return "DNP"
	}
	return trimFloat(*v)
}

// trackView renders the dual-handle slider aligned under the plot region.
func (m *Model) trackView() string {
	if m.surface == nil {
		return ""
	}
	lo, hi := m.ctl.Values()
	hxLo, hxHi := m.ctl.HandleX(lo), m.ctl.HandleX(hi)

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", m.chartX0))
	run := make([]rune, 0, m.gridW)
	flush := func(st styles.Style) {
		if len(run) > 0 {
			sb.WriteString(st.Render(string(run)))
			run = run[:0]
		}
	}
	for x := 0; x < m.gridW; x++ {
		if x == hxLo || x == hxHi {
			flush(m.th.style(colTrack))
			sb.WriteString(m.th.style(colHandle).Render("◆"))
			continue
		}
		run = append(run, '═')
	}
	flush(m.th.style(colTrack))
	return sb.String()
}

func (m *Model) rangeLabels() string {
	if m.surface == nil {
		return ""
	}
	lo, hi := m.ctl.Values()
	left := trimFloat(lo)
	right := trimFloat(hi)
	gap := m.gridW - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return strings.Repeat(" ", m.chartX0) +
		m.th.style(colLabel).Render(left+strings.Repeat(" ", gap)+right)
}

// statusLine summarizes the committed line and its classification split.
func (m *Model) statusLine() string {
	metric := m.metric()
	sum := m.sync.Summary()
	line := m.store.Committed(metric.Key)

	dir := "over"
	if metric.Invert {
		dir = "under"
	}
	parts := []string{
		fmt.Sprintf("line %s (%s)", trimFloat(line), dir),
		fmt.Sprintf("O %d (%.0f%%)", sum.Over, sum.OverShare()*100),
		fmt.Sprintf("U %d (%.0f%%)", sum.Under, sum.UnderShare()*100),
	}
	if sum.Push > 0 {
		parts = append(parts, fmt.Sprintf("P %d", sum.Push))
	}
	if t := m.sync.CurrentTint(); t != overlay.TintNone {
		parts = append(parts, "tint "+t.String())
	}
	status := selectedFg.Render(strings.Join(parts, "  "))

	fast, rebuilds, skipped := m.sync.Stats()
	perf := m.perf.line(fast, rebuilds, skipped)
	if perf == "" {
		return status
	}
	return status + "  " + borderFg.Render(perf)
}
