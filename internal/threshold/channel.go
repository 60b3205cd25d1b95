package threshold

import (
	"math"
	"sync"
)

// Event is one transient-channel notification. Clear means the drag ended
// and subscribers must fall back to the committed value.
type Event struct {
	Value float64
	Clear bool
}

// Channel is the last-write-wins broadcast of in-progress drag values.
// There is at most one live transient value; later publishes supersede
// earlier ones with no queueing. The channel never touches the committed
// store. Subscribers get an explicit unsubscribe so teardown is owned by
// whoever mounted them.
type Channel struct {
	mu   sync.Mutex
	subs map[int]func(Event)
	next int
	live *float64
}

func NewChannel() *Channel {
	return &Channel{subs: make(map[int]func(Event))}
}

// Subscribe registers fn for transient events and returns its teardown.
func (c *Channel) Subscribe(fn func(Event)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// PublishTransient broadcasts an in-progress drag value. Non-finite values
// clamp to DefaultValue.
func (c *Channel) PublishTransient(v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = DefaultValue
	}
	c.mu.Lock()
	c.live = &v
	fns := c.snapshotSubs()
	c.mu.Unlock()
	for _, fn := range fns {
		fn(Event{Value: v})
	}
}

// Clear drops the live transient value and tells subscribers to fall back
// to the committed line. Emitted on drag release or cancellation.
func (c *Channel) Clear() {
	c.mu.Lock()
	c.live = nil
	fns := c.snapshotSubs()
	c.mu.Unlock()
	for _, fn := range fns {
		fn(Event{Clear: true})
	}
}

// Live returns the current transient value, if any.
func (c *Channel) Live() (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.live == nil {
		return 0, false
	}
	return *c.live, true
}

func (c *Channel) snapshotSubs() []func(Event) {
	fns := make([]func(Event), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	return fns
}
