package threshold

// Phase tags which representation of the line is in effect.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
)

// State is the tagged dual representation of the threshold: Idle carries
// the committed value, Dragging carries the transient one. Modeling the
// pair as one value keeps the two from drifting apart.
type State struct {
	Phase     Phase
	Committed float64
	Transient float64
}

// Idle builds the resting state around a committed value.
func Idle(committed float64) State {
	return State{Phase: PhaseIdle, Committed: committed, Transient: committed}
}

// StartDrag enters the dragging phase at v.
func (s State) StartDrag(v float64) State {
	s.Phase = PhaseDragging
	s.Transient = v
	return s
}

// Update replaces the transient value; in idle it is a no-op.
func (s State) Update(v float64) State {
	if s.Phase != PhaseDragging {
		return s
	}
	s.Transient = v
	return s
}

// Release leaves the drag, committing to v. The second return reports
// whether a visible transition occurred: releasing at the prior committed
// value changes nothing on screen.
func (s State) Release(v float64) (State, bool) {
	changed := v != s.Committed
	return Idle(v), changed
}

// Cancel leaves the drag discarding the transient value.
func (s State) Cancel() State {
	return Idle(s.Committed)
}

// Effective is the value the visuals should reflect right now.
func (s State) Effective() float64 {
	if s.Phase == PhaseDragging {
		return s.Transient
	}
	return s.Committed
}

// Dragging reports whether a drag gesture is in progress.
func (s State) Dragging() bool { return s.Phase == PhaseDragging }
