package logic

import "github.com/sweeney/timerbox/internal/clock"

// Blinker computes the LED level from the timer state. It keeps its own
// toggle timestamp, so it must be evaluated every loop iteration. The
// renderer's "time up" branch may still force the LED on afterwards.
type Blinker struct {
	lastToggle clock.Millis
	level      bool
}

// Evaluate returns the LED level for the given state at the given time:
// a 500ms blink while either timer runs, a slower 700ms blink after a
// countdown expires, otherwise off.
func (b *Blinker) Evaluate(st State, now clock.Millis) bool {
	switch {
	case st.Stopwatch.Running || st.Countdown.Running:
		if clock.Since(now, b.lastToggle) >= BlinkRunInterval {
			b.lastToggle = now
			b.level = !b.level
		}
	case st.Countdown.Finished:
		if clock.Since(now, b.lastToggle) >= BlinkDoneInterval {
			b.lastToggle = now
			b.level = !b.level
		}
	default:
		b.level = false
	}
	return b.level
}
