package ui

import (
	"fmt"
	"time"
)

// latencyRing keeps the most recent update-handling durations for the perf
// footer.
type latencyRing struct {
	buf   []time.Duration
	idx   int
	count int
}

func newLatencyRing(n int) *latencyRing {
	if n < 1 {
		n = 1
	}
	return &latencyRing{buf: make([]time.Duration, n)}
}

func (r *latencyRing) add(d time.Duration) {
	r.buf[r.idx] = d
	r.idx = (r.idx + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

func (r *latencyRing) avgMax() (avg, max time.Duration) {
	if r.count == 0 {
		return 0, 0
	}
	var sum time.Duration
	for i := 0; i < r.count; i++ {
		d := r.buf[i]
		sum += d
		if d > max {
			max = d
		}
	}
	return sum / time.Duration(r.count), max
}

// perfStats tracks how the two update paths behave at runtime.
type perfStats struct {
	enabled bool
	started time.Time
	updates uint64
	ring    *latencyRing
}

func newPerfStats(window int) *perfStats {
	return &perfStats{enabled: true, started: time.Now(), ring: newLatencyRing(window)}
}

func (p *perfStats) observe(d time.Duration) {
	if !p.enabled {
		return
	}
	p.updates++
	p.ring.add(d)
}

func (p *perfStats) line(fast, rebuilds, skipped uint64) string {
	if !p.enabled {
		return ""
	}
	avg, max := p.ring.avgMax()
	return fmt.Sprintf("updates: %d  fast-path: %d  rebuilds: %d  skipped: %d  avg: %s  max: %s",
		p.updates, fast, rebuilds, skipped, fmtDur(avg), fmtDur(max))
}

func fmtDur(d time.Duration) string {
	if d <= 0 {
		return "0.000ms"
	}
	return fmt.Sprintf("%.3fms", float64(d)/float64(time.Millisecond))
}
