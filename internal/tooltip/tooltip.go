// Package tooltip computes popup placement and visibility for the hovered
// or tapped data point.
package tooltip

import (
	"github.com/statlinehq/statline/internal/classify"
	"github.com/statlinehq/statline/internal/series"
)

// Mode selects the interaction model: pointer-follow on wide viewports,
// tap-toggle on narrow ones.
type Mode int

const (
	ModePointer Mode = iota
	ModeTap
)

const (
	// OffsetX/OffsetY displace the popup from the pointer so it does not
	// cover the active bar.
	OffsetX = 2
	OffsetY = 1
	// MoveCancelSq is the squared pointer travel (cells) past which a
	// pending tap-show is cancelled, so scroll/pan never leaves a stray
	// popup behind.
	MoveCancelSq = 25
)

// Payload is what the popup renders: the active point and its current
// classification.
type Payload struct {
	Point   series.DataPoint
	Outcome classify.Outcome
}

// Controller owns popup visibility and anchoring. The last active payload
// is retained after the pointer leaves the point, until explicit dismissal,
// so a tap-activated popup survives minor recomposition.
type Controller struct {
	mode    Mode
	visible bool
	payload Payload
	hasLoad bool

	anchorX, anchorY int

	pending        bool
	pendingPayload Payload
	pendingX       int
	pendingY       int
}

func NewController(mode Mode) *Controller {
	return &Controller{mode: mode}
}

// SetMode switches interaction models (viewport crossed the breakpoint).
// The popup is dismissed: the anchor from the other model is meaningless.
func (c *Controller) SetMode(mode Mode) {
	if mode == c.mode {
		return
	}
	c.mode = mode
	c.Dismiss()
}

func (c *Controller) Mode() Mode { return c.mode }

// PointerMove follows the pointer in ModePointer, showing p anchored at
// the pointer position.
func (c *Controller) PointerMove(x, y int, p Payload) {
	if c.mode != ModePointer {
		return
	}
	c.payload = p
	c.hasLoad = true
	c.visible = true
	c.anchorX, c.anchorY = x, y
}

// PointerLeft is a no-op by design: the popup keeps rendering the last
// payload until dismissed.
func (c *Controller) PointerLeft() {}

// TapDown starts a tap gesture on a point in ModeTap. The show is pending
// until TapUp so that a scroll can still cancel it.
func (c *Controller) TapDown(x, y int, p Payload) {
	if c.mode != ModeTap {
		return
	}
	c.pending = true
	c.pendingPayload = p
	c.pendingX, c.pendingY = x, y
}

// Motion tracks pointer travel during a pending tap. Exceeding the squared
// distance bound cancels the pending show and forces dismissal.
func (c *Controller) Motion(x, y int) {
	if c.mode != ModeTap || !c.pending {
		return
	}
	dx, dy := x-c.pendingX, y-c.pendingY
	if dx*dx+dy*dy > MoveCancelSq {
		c.pending = false
		c.Dismiss()
	}
}

// TapUp completes the gesture: a tap on the already-shown point dismisses,
// anything else shows that point. No-op when the pending show was
// cancelled.
func (c *Controller) TapUp() {
	if c.mode != ModeTap || !c.pending {
		return
	}
	c.pending = false
	if c.visible && c.hasLoad && c.payload.Point.GameID == c.pendingPayload.Point.GameID {
		c.Dismiss()
		return
	}
	c.payload = c.pendingPayload
	c.hasLoad = true
	c.visible = true
	c.anchorX, c.anchorY = c.pendingX, c.pendingY
}

// Dismiss hides the popup. The payload is retained for possible re-show.
func (c *Controller) Dismiss() {
	c.visible = false
}

func (c *Controller) Visible() bool { return c.visible }

// Payload returns the last active payload, if any was ever set.
func (c *Controller) Payload() (Payload, bool) {
	return c.payload, c.hasLoad
}

// Position computes the popup's top-left corner, offset from the anchor
// and clamped so the popup never renders past the right viewport edge (nor
// above the top).
func (c *Controller) Position(popupW, popupH, viewportW, viewportH int) (x, y int) {
	x = c.anchorX + OffsetX
	y = c.anchorY - popupH - OffsetY
	if x+popupW > viewportW {
		x = viewportW - popupW
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = c.anchorY + OffsetY
	}
	if y+popupH > viewportH {
		y = max(0, viewportH-popupH)
	}
	return x, y
}
