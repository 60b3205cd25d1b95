// Package overlay positions the threshold marker, background tint, and
// per-bar colors over rendered chart geometry. It is the only component
// allowed to mutate already-rendered visuals in place: a threshold-only
// change goes through the imperative surface handles, while dataset,
// metric, and axis changes force a structural rebuild owned by the caller.
package overlay

import (
	"sync/atomic"
	"time"

	"github.com/statlinehq/statline/internal/axis"
	"github.com/statlinehq/statline/internal/classify"
	"github.com/statlinehq/statline/internal/series"
	"github.com/statlinehq/statline/internal/threshold"
)

// Surface is the imperative handle onto rendered chart visuals. The
// synchronizer holds one stable reference and mutates properties directly,
// outside the structural render path.
type Surface interface {
	UpdateBarColor(index int, outcome classify.Outcome)
	UpdateMarker(pct float64)
	UpdateTint(t Tint)
}

// acquireSchedule is the fixed retry schedule for re-acquiring geometry
// after a structural rebuild: immediate, then 50ms, then 200ms after mount.
var acquireSchedule = []time.Duration{0, 50 * time.Millisecond, 200 * time.Millisecond}

// Synchronizer drives the fast visual path. It consumes transient channel
// events and commit notifications, runs the IDLE/DRAGGING state machine,
// and writes through the surface handles without rebuilding anything.
type Synchronizer struct {
	tintCfg TintConfig

	surface Surface
	geom    *Geometry
	wantGen uint64

	ax       axis.Config
	points   []series.DataPoint
	metric   series.Metric
	state    threshold.State
	outcomes []classify.Outcome

	// counters for the perf footer
	fastUpdates atomic.Uint64
	rebuilds    atomic.Uint64
	skipped     atomic.Uint64
}

func New(cfg TintConfig) *Synchronizer {
	return &Synchronizer{tintCfg: cfg, state: threshold.Idle(threshold.DefaultValue)}
}

// SetData replaces the dataset/metric/axis trio. This is the structural
// path: the caller rebuilds geometry afterwards and re-attaches it via
// Invalidate/TryAcquire.
func (s *Synchronizer) SetData(points []series.DataPoint, metric series.Metric, ax axis.Config, committed float64) {
	s.points = points
	s.metric = metric
	s.ax = ax
	s.state = threshold.Idle(committed)
	s.outcomes = classify.All(points, s.state.Effective(), metric.Invert)
}

// Invalidate detaches the current surface ahead of a structural rebuild.
// Only geometry of generation gen will be accepted back; rebuild always
// wins over the fast path, which skips updates until re-acquisition.
func (s *Synchronizer) Invalidate(gen uint64) {
	s.surface = nil
	s.geom = nil
	s.wantGen = gen
	s.rebuilds.Add(1)
}

// TryAcquire attaches freshly rebuilt geometry. Geometry from a superseded
// rebuild is refused; on success the full visual state is reapplied.
func (s *Synchronizer) TryAcquire(surface Surface, geom *Geometry) bool {
	if surface == nil || geom == nil || geom.Generation != s.wantGen {
		return false
	}
	s.surface = surface
	s.geom = geom
	s.applyAll()
	return true
}

// Attached reports whether the synchronizer currently holds live geometry.
func (s *Synchronizer) Attached() bool { return s.surface != nil }

// RetryDelay returns the wait before the given re-acquisition attempt, and
// false once the schedule is exhausted.
func (s *Synchronizer) RetryDelay(attempt int) (time.Duration, bool) {
	if attempt < 0 || attempt >= len(acquireSchedule) {
		return 0, false
	}
	return acquireSchedule[attempt], true
}

// OnTransient is the transient-channel subscriber. The first value enters
// DRAGGING; every later value is reflected immediately; Clear falls back
// to the committed line.
func (s *Synchronizer) OnTransient(ev threshold.Event) {
	if ev.Clear {
		s.state = s.state.Cancel()
	} else if s.state.Dragging() {
		s.state = s.state.Update(ev.Value)
	} else {
		s.state = s.state.StartDrag(ev.Value)
	}
	s.applyThreshold()
}

// OnCommit records the committed line produced by drag release. If the
// released value equals the prior committed value no visible transition
// occurs.
func (s *Synchronizer) OnCommit(v float64) {
	next, changed := s.state.Release(v)
	s.state = next
	if changed {
		s.applyThreshold()
	}
}

// State exposes the current threshold state for the view layer.
func (s *Synchronizer) State() threshold.State { return s.state }

// Outcomes is the last classification pass, parallel to the dataset.
func (s *Synchronizer) Outcomes() []classify.Outcome { return s.outcomes }

// Summary aggregates the last classification pass.
func (s *Synchronizer) Summary() classify.Summary { return classify.Summarize(s.outcomes) }

// MarkerPct is the normalized marker height for the effective threshold,
// clamped into [0,1].
func (s *Synchronizer) MarkerPct() float64 {
	return s.ax.Normalize(s.state.Effective())
}

// CurrentTint selects the background tint for the last classification pass.
func (s *Synchronizer) CurrentTint() Tint {
	return TintFor(s.Summary(), s.metric.Class, s.tintCfg)
}

// ReferenceSpan exposes the bar-geometry bounds for the narrow-viewport
// reference line.
func (s *Synchronizer) ReferenceSpan() (x0, x1 int) {
	return s.geom.ReferenceSpan()
}

// Stats returns (fast-path updates, rebuilds, skipped updates).
func (s *Synchronizer) Stats() (uint64, uint64, uint64) {
	return s.fastUpdates.Load(), s.rebuilds.Load(), s.skipped.Load()
}

// applyThreshold is the fast path: reclassify and restyle in place. No
// structural work happens here. With no surface attached (mid-rebuild) the
// update is skipped; a later value or the post-acquire applyAll covers it.
func (s *Synchronizer) applyThreshold() {
	s.outcomes = classify.All(s.points, s.state.Effective(), s.metric.Invert)
	if s.surface == nil || s.geom == nil {
		s.skipped.Add(1)
		return
	}
	s.applyAll()
	s.fastUpdates.Add(1)
}

func (s *Synchronizer) applyAll() {
	for i := range s.geom.Bars {
		if i < len(s.outcomes) {
			s.surface.UpdateBarColor(i, s.outcomes[i])
		}
	}
	s.surface.UpdateMarker(s.MarkerPct())
	s.surface.UpdateTint(s.CurrentTint())
}
