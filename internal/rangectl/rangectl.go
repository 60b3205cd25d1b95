// Package rangectl is the dual-handle draggable control that produces
// transient and committed threshold values.
package rangectl

import (
	"math"

	"github.com/statlinehq/statline/internal/threshold"
)

// Handle identifies which of the two handles a gesture addresses.
type Handle int

const (
	HandleNone Handle = iota
	HandleLow
	HandleHigh
)

// CommitFunc is the owning change callback: invoked once per drag end (or
// track click) with the committed pair and the handle that moved.
type CommitFunc func(lo, hi float64, moved Handle)

// Control maps pointer positions on a rendered track to handle values.
// Continuous drag publishes to the transient channel at pointer-move
// frequency; only drag end commits. All reported positions are rounded to
// the nearest step multiple, and the handles keep a minimum separation of
// one step: a handle pushed into the other clamps one step short of it
// rather than crossing or touching.
type Control struct {
	min, max, step float64
	lo, hi         float64

	channel  *threshold.Channel
	onCommit CommitFunc

	trackX0    int
	trackWidth int

	active   Handle
	dragging bool
}

func New(min, max, step float64, ch *threshold.Channel, onCommit CommitFunc) *Control {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		step = 1
	}
	if max < min {
		min, max = max, min
	}
	c := &Control{min: min, max: max, step: step, channel: ch, onCommit: onCommit}
	c.lo, c.hi = min, max
	return c
}

// SetStep replaces the rounding granularity and re-snaps the handles.
// Invalid steps are ignored.
func (c *Control) SetStep(step float64) {
	if step <= 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return
	}
	c.step = step
	c.SetValues(c.lo, c.hi)
}

// SetBounds replaces the value domain and re-clamps the handles.
func (c *Control) SetBounds(min, max float64) {
	if max < min {
		min, max = max, min
	}
	c.min, c.max = min, max
	c.SetValues(c.lo, c.hi)
}

// SetValues positions both handles, rounded to step and separated by at
// least one step.
func (c *Control) SetValues(lo, hi float64) {
	lo = c.clampValue(c.roundToStep(lo))
	hi = c.clampValue(c.roundToStep(hi))
	if hi-lo < c.step {
		// Snap against the separation limit, low handle yielding.
		hi = c.clampValue(lo + c.step)
		lo = hi - c.step
		if lo < c.min {
			lo = c.min
			hi = c.clampValue(lo + c.step)
		}
	}
	c.lo, c.hi = lo, hi
}

// SetTrack maps the control onto rendered track cells.
func (c *Control) SetTrack(x0, width int) {
	c.trackX0 = x0
	c.trackWidth = max(1, width)
}

// Values returns the current handle pair.
func (c *Control) Values() (lo, hi float64) { return c.lo, c.hi }

// Dragging reports whether a handle drag is in progress.
func (c *Control) Dragging() bool { return c.dragging }

// ActiveHandle is the handle being dragged, HandleNone otherwise.
func (c *Control) ActiveHandle() Handle {
	if !c.dragging {
		return HandleNone
	}
	return c.active
}

// ValueAt converts a track cell to a value, rounded to the nearest step.
func (c *Control) ValueAt(x int) float64 {
	if c.trackWidth <= 1 {
		return c.min
	}
	frac := float64(x-c.trackX0) / float64(c.trackWidth-1)
	frac = math.Min(1, math.Max(0, frac))
	return c.clampValue(c.roundToStep(c.min + frac*(c.max-c.min)))
}

// HandleX converts a handle value back to its track cell.
func (c *Control) HandleX(v float64) int {
	if c.max <= c.min {
		return c.trackX0
	}
	frac := (v - c.min) / (c.max - c.min)
	frac = math.Min(1, math.Max(0, frac))
	return c.trackX0 + int(frac*float64(c.trackWidth-1)+0.5)
}

// Press begins a gesture at track cell x. On a handle it starts a drag; on
// the bare track it moves whichever handle is numerically closer to the
// click position and commits immediately.
func (c *Control) Press(x int) {
	if h := c.handleAt(x); h != HandleNone {
		c.dragging = true
		c.active = h
		c.publish(c.handleValue(h))
		return
	}
	v := c.ValueAt(x)
	moved := HandleLow
	if math.Abs(v-c.hi) < math.Abs(v-c.lo) {
		moved = HandleHigh
	}
	c.place(moved, v)
	if c.onCommit != nil {
		c.onCommit(c.lo, c.hi, moved)
	}
}

// Drag moves the active handle to track cell x and publishes the transient
// value. No-op outside a drag.
func (c *Control) Drag(x int) {
	if !c.dragging {
		return
	}
	v := c.ValueAt(x)
	c.place(c.active, v)
	c.publish(c.handleValue(c.active))
}

// Release ends the drag: the final pair goes to the owning commit callback
// and the transient channel is cleared so subscribers fall back to the
// committed value.
func (c *Control) Release() {
	if !c.dragging {
		return
	}
	moved := c.active
	c.dragging = false
	c.active = HandleNone
	if c.onCommit != nil {
		c.onCommit(c.lo, c.hi, moved)
	}
	if c.channel != nil {
		c.channel.Clear()
	}
}

func (c *Control) publish(v float64) {
	if c.channel != nil {
		c.channel.PublishTransient(v)
	}
}

func (c *Control) place(h Handle, v float64) {
	switch h {
	case HandleLow:
		c.lo = math.Min(v, c.hi-c.step)
		c.lo = math.Max(c.lo, c.min)
	case HandleHigh:
		c.hi = math.Max(v, c.lo+c.step)
		c.hi = math.Min(c.hi, c.max)
	}
}

func (c *Control) handleValue(h Handle) float64 {
	if h == HandleHigh {
		return c.hi
	}
	return c.lo
}

// handleAt returns the handle rendered at cell x, within one cell of slack.
func (c *Control) handleAt(x int) Handle {
	dLo := absInt(x - c.HandleX(c.lo))
	dHi := absInt(x - c.HandleX(c.hi))
	if dLo > 1 && dHi > 1 {
		return HandleNone
	}
	if dLo <= dHi {
		return HandleLow
	}
	return HandleHigh
}

func (c *Control) clampValue(v float64) float64 {
	return math.Min(c.max, math.Max(c.min, v))
}

func (c *Control) roundToStep(v float64) float64 {
	return math.Round(v/c.step) * c.step
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
