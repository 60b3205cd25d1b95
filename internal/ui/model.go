// Package ui mounts the chart engine into a Bubble Tea program: the metric
// selector, the bar chart surface, the range control, and the tooltip all
// hang off one Elm-style model.
package ui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tui "github.com/charmbracelet/bubbletea"
	styles "github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/statlinehq/statline/internal/axis"
	"github.com/statlinehq/statline/internal/config"
	"github.com/statlinehq/statline/internal/overlay"
	"github.com/statlinehq/statline/internal/rangectl"
	"github.com/statlinehq/statline/internal/series"
	"github.com/statlinehq/statline/internal/source"
	"github.com/statlinehq/statline/internal/threshold"
	"github.com/statlinehq/statline/internal/tooltip"
)

// Mount is the contract the page-composition layer fills in when mounting
// the chart.
type Mount struct {
	MetricKey string
	// Line is a pre-set committed threshold (deep link); it is carried
	// across dataset changes instead of being reset.
	Line    float64
	HasLine bool
	// Invert overrides the metric's comparison direction.
	Invert bool
	// OnCommit is invoked with each newly committed threshold.
	OnCommit func(metricKey string, value float64)
}

type (
	datasetMsg   struct{ ds source.Dataset }
	secondaryMsg struct{ sec source.Secondary }
	acquireMsg   struct {
		attempt int
		gen     uint64
	}
	statsTickMsg time.Time
)

type Model struct {
	cfg   *config.Config
	log   *logrus.Logger
	mount Mount

	width, height  int
	leftPaneWidth  int
	rightPaneWidth int
	sparkRows      int
	narrow         bool

	themeMode string
	th        theme

	catalog   []source.CatalogEntry
	list      list.Model
	listStyle styles.Style
	metricIdx int
	inverted  map[string]bool
	preset    map[string]bool
	manual    map[string]bool

	provider    *source.Provider
	points      []series.DataPoint
	secondaryOn bool

	ax  axis.Config
	ax2 axis.Config

	store      *threshold.Store
	channel    *threshold.Channel
	unsub      func()
	sync       *overlay.Synchronizer
	ctl        *rangectl.Control
	lineHandle rangectl.Handle
	tip        *tooltip.Controller

	surface *chartSurface
	geom    *overlay.Geometry
	gen     uint64

	activeBar int
	perf      *perfStats
	help      help.Model
	err       error

	// screen-space anchors for mouse dispatch, set on rebuild
	chartX0, chartY0 int
	trackY           int
	gridW, gridH     int
}

func New(cfg *config.Config, log *logrus.Logger, provider *source.Provider, mount Mount) *Model {
	const (
		defaultWidth  = 100
		defaultHeight = 30
	)

	catalog := source.Catalog()

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = styles.NewStyle().
		Border(styles.NormalBorder(), false, false, false, true).
		BorderForeground(borderColor).
		Foreground(selectedColor).
		Padding(0, 0, 0, 1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(selectedColor)

	items := make([]list.Item, len(catalog))
	for i, e := range catalog {
		items[i] = metricItem{e}
	}
	l := list.New(items, d, defaultWidth/3, defaultHeight)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)

	m := &Model{
		cfg:        cfg,
		log:        log,
		mount:      mount,
		themeMode:  cfg.Theme,
		th:         newTheme(cfg.Theme),
		catalog:    catalog,
		list:       l,
		inverted:   make(map[string]bool),
		preset:     make(map[string]bool),
		manual:     make(map[string]bool),
		provider:   provider,
		store:      threshold.NewStore(),
		channel:    threshold.NewChannel(),
		lineHandle: rangectl.HandleHigh,
		tip:        tooltip.NewController(tooltip.ModePointer),
		perf:       newPerfStats(256),
		help:       help.New(),
	}
	m.sync = overlay.New(overlay.TintConfig{
		StrongAbove:   cfg.TintStrongAbove,
		WeakAbove:     cfg.TintWeakAbove,
		OneSidedBelow: cfg.TintOneSidedBelow,
	})
	m.unsub = m.channel.Subscribe(m.sync.OnTransient)
	m.ctl = rangectl.New(0, 1, 0.5, m.channel, m.commitFromControl)

	if i := indexOfMetric(catalog, mount.MetricKey); i >= 0 {
		m.metricIdx = i
		m.list.Select(i)
	}
	entry := m.catalog[m.metricIdx]
	if mount.Invert {
		m.inverted[entry.Metric.Key] = true
	}
	if mount.HasLine {
		m.store.SetCommitted(entry.Metric.Key, mount.Line)
		m.preset[entry.Metric.Key] = true
		m.manual[entry.Metric.Key] = true
	}
	return m
}

func indexOfMetric(catalog []source.CatalogEntry, key string) int {
	for i, e := range catalog {
		if e.Metric.Key == key {
			return i
		}
	}
	return -1
}

// Close releases the transient-channel subscription. Owned here because
// the model mounted it.
func (m *Model) Close() {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
}

// metric returns the active metric with the direction override applied.
func (m *Model) metric() series.Metric {
	mt := m.catalog[m.metricIdx].Metric
	if m.inverted[mt.Key] {
		mt.Invert = !mt.Invert
	}
	return mt
}

func (m *Model) Init() tui.Cmd {
	return tui.Batch(m.fetchCmds(), statsTick())
}

func statsTick() tui.Cmd {
	return tui.Tick(time.Second, func(t time.Time) tui.Msg { return statsTickMsg(t) })
}

// fetchCmds starts a new fetch generation: primary immediately, secondary
// after its simulated latency. Both carry the token so a superseded fetch
// can never apply.
func (m *Model) fetchCmds() tui.Cmd {
	tok := m.provider.Begin()
	entry := m.catalog[m.metricIdx]
	metric := m.metric()
	games := m.cfg.Games
	delay := time.Duration(m.cfg.SecondaryDelayMS) * time.Millisecond
	provider := m.provider

	primary := func() tui.Msg {
		return datasetMsg{provider.FetchPrimary(tok, metric, games)}
	}
	secondary := func() tui.Msg {
		time.Sleep(delay)
		return secondaryMsg{provider.FetchSecondary(tok, entry.OverlayKey, games)}
	}
	return tui.Batch(primary, secondary)
}

func (m *Model) Update(msg tui.Msg) (tui.Model, tui.Cmd) {
	start := time.Now()
	defer func() { m.perf.observe(time.Since(start)) }()

	switch msg := msg.(type) {
	case tui.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, m.rebuild()

	case datasetMsg:
		return m, m.applyDataset(msg.ds)

	case secondaryMsg:
		return m, m.applySecondary(msg.sec)

	case acquireMsg:
		return m, m.tryAcquire(msg)

	case statsTickMsg:
		return m, statsTick()

	case tui.MouseMsg:
		return m, m.handleMouse(msg)

	case tui.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tui.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// applyDataset replaces the primary series wholesale. Stale generations
// are discarded here rather than applied after the fact.
func (m *Model) applyDataset(ds source.Dataset) tui.Cmd {
	if !m.provider.Fresh(ds.Token) {
		m.log.WithField("token", ds.Token).Debug("discarding stale primary fetch")
		return nil
	}
	m.points = ds.Points
	m.secondaryOn = false
	metric := m.metric()

	// The auto-suggested line applies only when the user never set one.
	if ds.HasSuggested && !m.manual[metric.Key] {
		m.store.SetCommitted(metric.Key, ds.Suggested)
	}
	committed := m.store.Committed(metric.Key)

	m.ax = axis.Compute(series.Values(m.points), metric.Kind)
	m.sync.SetData(m.points, metric, m.ax, committed)
	step := metric.Step
	if step <= 0 {
		step = 0.5
	}
	m.ctl.SetStep(step)
	m.ctl.SetBounds(m.ax.DomainMin, m.ax.DomainMax)
	m.ctl.SetValues(m.ax.DomainMin, committed)
	m.activeBar = -1
	m.tip.Dismiss()

	m.log.WithFields(logrus.Fields{
		"metric": metric.Key,
		"games":  len(m.points),
		"line":   committed,
	}).Info("dataset applied")
	return m.rebuild()
}

// applySecondary merges the overlay series, if still fresh and non-empty.
func (m *Model) applySecondary(sec source.Secondary) tui.Cmd {
	if !m.provider.Fresh(sec.Token) {
		m.log.WithField("token", sec.Token).Debug("discarding stale secondary fetch")
		return nil
	}
	merged, matched := series.MergeSecondary(m.points, sec.Points)
	m.points = merged
	m.secondaryOn = matched >= 1
	if m.secondaryOn {
		m.ax2 = axis.ComputeSecondary(series.SecondaryValues(m.points), m.catalog[m.metricIdx].OverlayKind)
	}
	metric := m.metric()
	m.sync.SetData(m.points, metric, m.ax, m.store.Committed(metric.Key))
	return m.rebuild()
}

// layout splits the screen. Narrow viewports fold the metric list away and
// switch the tooltip to the tap model.
func (m *Model) layout() {
	m.narrow = m.width < m.cfg.NarrowBelow
	if m.narrow {
		m.leftPaneWidth = 0
		m.rightPaneWidth = m.width
		m.tip.SetMode(tooltip.ModeTap)
	} else {
		m.leftPaneWidth, m.rightPaneWidth = paneWidths(m.width)
		m.tip.SetMode(tooltip.ModePointer)
	}

	footer := 4 // track + range labels + stats + help
	available := max(4, m.height-footer)
	m.sparkRows = 0
	if !m.narrow && available >= 18 {
		m.sparkRows = 6
	}
	m.list.SetSize(max(1, m.leftPaneWidth), available-m.sparkRows)
	m.listStyle = styles.NewStyle().Width(max(1, m.leftPaneWidth)).Height(available)

	// Chart panel carries a one-cell border.
	m.gridW = max(4, m.rightPaneWidth-2)
	m.gridH = max(4, available-2)
	m.chartX0 = m.leftPaneWidth + 1
	m.chartY0 = 1
	m.trackY = m.chartY0 + m.gridH + 1
}

// paneWidths splits the viewport, keeping both panes readable on wide
// terminals.
func paneWidths(total int) (left, right int) {
	if total <= 1 {
		return 1, 1
	}
	left = total * 28 / 100
	const minPane = 20
	if total >= minPane*2 {
		left = max(left, minPane)
	}
	left = min(left, total-1)
	left = max(left, 1)
	return left, total - left
}

// rebuild is the structural render path: new grid, new geometry, new
// generation. The synchronizer detaches and re-acquires on its schedule.
func (m *Model) rebuild() tui.Cmd {
	if len(m.points) == 0 || m.gridW == 0 {
		return nil
	}
	if m.ax.Degenerate {
		// Nothing renderable; keep the surface down rather than plot
		// against the fallback domain.
		m.surface, m.geom = nil, nil
		return nil
	}
	m.err = nil
	m.gen++
	surface, geom := buildChart(chartOpts{
		points:        m.points,
		ax:            m.ax,
		ax2:           m.ax2,
		showSecondary: m.secondaryOn,
		width:         m.gridW,
		height:        m.gridH,
		narrow:        m.narrow,
		generation:    m.gen,
	})
	surface.dragging = func() bool { return m.sync.State().Dragging() }
	m.surface, m.geom = surface, geom
	m.sync.Invalidate(m.gen)
	m.ctl.SetTrack(geom.PlotX, geom.PlotW)
	return m.acquireCmd(acquireMsg{attempt: 0, gen: m.gen})
}

func (m *Model) acquireCmd(msg acquireMsg) tui.Cmd {
	delay, ok := m.sync.RetryDelay(msg.attempt)
	if !ok {
		m.log.WithField("generation", msg.gen).Warn("geometry acquisition retries exhausted")
		m.err = errors.New("chart out of sync; resize to rebuild")
		return nil
	}
	if delay == 0 {
		return func() tui.Msg { return msg }
	}
	return tui.Tick(delay, func(time.Time) tui.Msg { return msg })
}

func (m *Model) tryAcquire(msg acquireMsg) tui.Cmd {
	if msg.gen != m.gen {
		return nil // superseded by a newer rebuild
	}
	if m.sync.TryAcquire(m.surface, m.geom) {
		return nil
	}
	return m.acquireCmd(acquireMsg{attempt: msg.attempt + 1, gen: msg.gen})
}

// commitFromControl is the range control's owning change callback.
func (m *Model) commitFromControl(lo, hi float64, moved rangectl.Handle) {
	m.lineHandle = moved
	v := hi
	if moved == rangectl.HandleLow {
		v = lo
	}
	m.commitLine(v)
}

func (m *Model) commitLine(v float64) {
	metric := m.metric()
	m.manual[metric.Key] = true
	m.store.SetCommitted(metric.Key, v)
	m.sync.OnCommit(v)
	if m.mount.OnCommit != nil {
		m.mount.OnCommit(metric.Key, v)
	}
	m.log.WithFields(logrus.Fields{"metric": metric.Key, "line": v}).Debug("line committed")
}

func (m *Model) handleKey(msg tui.KeyMsg) (tui.Model, tui.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.Close()
		return m, tui.Quit
	case key.Matches(msg, keys.Up), key.Matches(msg, keys.Down):
		var cmd tui.Cmd
		m.list, cmd = m.list.Update(msg)
		if m.list.Index() != m.metricIdx {
			return m, tui.Batch(cmd, m.selectMetric(m.list.Index()))
		}
		return m, cmd
	case key.Matches(msg, keys.NudgeUp):
		return m, m.nudge(+1)
	case key.Matches(msg, keys.NudgeDn):
		return m, m.nudge(-1)
	case key.Matches(msg, keys.Invert):
		metric := m.catalog[m.metricIdx].Metric
		m.inverted[metric.Key] = !m.inverted[metric.Key]
		cur := m.metric()
		m.sync.SetData(m.points, cur, m.ax, m.store.Committed(cur.Key))
		return m, m.rebuild()
	case key.Matches(msg, keys.Theme):
		if m.themeMode == "dark" {
			m.themeMode = "light"
		} else {
			m.themeMode = "dark"
		}
		m.th = newTheme(m.themeMode)
		return m, nil
	case key.Matches(msg, keys.Dismiss):
		m.tip.Dismiss()
		return m, nil
	case key.Matches(msg, keys.PrevBar):
		return m, m.moveActiveBar(-1)
	case key.Matches(msg, keys.NextBar):
		return m, m.moveActiveBar(+1)
	}
	var cmd tui.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// selectMetric switches the active metric. The committed line for the old
// metric is reset unless it was preset or manually placed.
func (m *Model) selectMetric(i int) tui.Cmd {
	old := m.catalog[m.metricIdx].Metric.Key
	if !m.preset[old] && !m.manual[old] {
		m.store.Reset(old)
	}
	m.metricIdx = i
	m.tip.Dismiss()
	return m.fetchCmds()
}

// nudge moves the committed line one step via the keyboard: an immediate
// commit, no transient phase.
func (m *Model) nudge(dir float64) tui.Cmd {
	metric := m.metric()
	step := metric.Step
	if step <= 0 {
		step = 0.5
	}
	v := m.store.Committed(metric.Key) + dir*step
	v = min(m.ax.DomainMax, max(m.ax.DomainMin, v))
	lo, hi := m.ctl.Values()
	if m.lineHandle == rangectl.HandleLow {
		m.ctl.SetValues(v, hi)
	} else {
		m.ctl.SetValues(lo, v)
	}
	m.commitLine(v)
	return nil
}

func (m *Model) moveActiveBar(delta int) tui.Cmd {
	if len(m.points) == 0 || m.geom == nil {
		return nil
	}
	m.activeBar = (m.activeBar + delta + len(m.points)) % len(m.points)
	if m.tip.Mode() == tooltip.ModePointer {
		b := m.geom.Bars[m.activeBar]
		m.tip.PointerMove(b.X+b.Width/2, b.Top, m.payloadFor(m.activeBar))
	}
	return nil
}

func (m *Model) payloadFor(i int) tooltip.Payload {
	p := tooltip.Payload{Point: m.points[i]}
	if outs := m.sync.Outcomes(); i < len(outs) {
		p.Outcome = outs[i]
	}
	return p
}

func (m *Model) handleMouse(msg tui.MouseMsg) tui.Cmd {
	lx := msg.X - m.chartX0
	ly := msg.Y - m.chartY0

	// An active handle drag captures the pointer wherever it goes.
	if m.ctl.Dragging() {
		switch msg.Action {
		case tui.MouseActionMotion:
			m.ctl.Drag(lx)
		case tui.MouseActionRelease:
			m.ctl.Release()
		}
		return nil
	}

	onTrack := msg.Y == m.trackY
	if onTrack && msg.Action == tui.MouseActionPress && msg.Button == tui.MouseButtonLeft {
		m.ctl.Press(lx)
		return nil
	}

	inChart := lx >= 0 && lx < m.gridW && ly >= 0 && ly < m.gridH
	if m.tip.Mode() == tooltip.ModeTap {
		switch msg.Action {
		case tui.MouseActionPress:
			if inChart && msg.Button == tui.MouseButtonLeft {
				if i, ok := barAt(m.geom, lx); ok {
					m.activeBar = i
					m.tip.TapDown(lx, ly, m.payloadFor(i))
				}
			}
		case tui.MouseActionMotion:
			m.tip.Motion(lx, ly)
		case tui.MouseActionRelease:
			m.tip.TapUp()
		}
		return nil
	}

	if inChart && msg.Action == tui.MouseActionMotion {
		if i, ok := barAt(m.geom, lx); ok {
			m.activeBar = i
			m.tip.PointerMove(lx, ly, m.payloadFor(i))
		}
	}
	return nil
}

// metricItem adapts a catalog entry to the bubbles list.
type metricItem struct {
	entry source.CatalogEntry
}

func (i metricItem) Title() string { return i.entry.Metric.Label }

func (i metricItem) Description() string {
	switch i.entry.Metric.Kind {
	case series.KindRank:
		return "rank 1-30"
	case series.KindRate:
		return "per-48 rate"
	default:
		if i.entry.Metric.Invert {
			return "per game (lower is better)"
		}
		return "per game"
	}
}

func (i metricItem) FilterValue() string { return i.entry.Metric.Label }
