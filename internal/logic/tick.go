package logic

import "github.com/sweeney/timerbox/internal/clock"

// TickSource derives the one-second counter cadence from the wrapping
// millisecond clock. It fires at most once per Advance call and
// re-anchors to the firing instant, so a slow loop iteration does not
// produce a burst of catch-up ticks.
type TickSource struct {
	last clock.Millis
}

// NewTickSource creates a TickSource anchored at now.
func NewTickSource(now clock.Millis) *TickSource {
	return &TickSource{last: now}
}

// Advance reports whether a one-second tick is due.
func (t *TickSource) Advance(now clock.Millis) bool {
	if clock.Since(now, t.last) >= TickInterval {
		t.last = now
		return true
	}
	return false
}
