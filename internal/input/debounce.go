// Package input converts raw button levels into debounced press events.
// This package has NO external dependencies (no GPIO, OS, or time.Sleep).
// Time is always injectable via clock.Millis parameters.
package input

import "github.com/sweeney/timerbox/internal/clock"

// Timing constants, in milliseconds.
const (
	// DebounceWindow is how long a raw level must hold before it is
	// accepted as stable.
	DebounceWindow = 50

	// LongPressThreshold separates a short click from a long press.
	LongPressThreshold = 800

	// HoldRepeatInterval is the re-fire period for repeat-enabled
	// buttons once a long press has engaged.
	HoldRepeatInterval = 350
)

// Event is a debounced press event.
type Event string

const (
	// ShortPress is a stable press released before LongPressThreshold.
	ShortPress Event = "SHORT_PRESS"
	// LongPressStart fires once when a stable press reaches
	// LongPressThreshold. The eventual release is silent.
	LongPressStart Event = "LONG_PRESS"
	// HoldRepeat fires every HoldRepeatInterval after LongPressStart,
	// for buttons created with repeat enabled.
	HoldRepeat Event = "HOLD_REPEAT"
)

// Button tracks debounce state for a single button channel.
// The zero value is not usable; call NewButton.
type Button struct {
	repeat bool // emit HoldRepeat while held past the long-press threshold

	raw        bool // last raw sample, true = pressed
	stable     bool // debounced level
	lastChange clock.Millis
	pressStart clock.Millis
	engaged    bool // long press already signaled for the current press
	lastRepeat clock.Millis
}

// NewButton creates a debouncer for one button. If repeat is true the
// button re-fires HoldRepeat while held past the long-press threshold.
func NewButton(repeat bool) *Button {
	return &Button{repeat: repeat}
}

// Stable reports the current debounced level, true = pressed.
func (b *Button) Stable() bool {
	return b.stable
}

// Sample feeds one raw level reading at the given time and returns at
// most one event. pressed is the logical level (active-low inversion is
// the caller's job). Sample must be called every loop iteration: the
// long-press and hold-repeat checks are driven by sampling, not by
// level changes.
func (b *Button) Sample(pressed bool, now clock.Millis) (Event, bool) {
	if pressed != b.raw {
		b.raw = pressed
		b.lastChange = now
	}

	if clock.Since(now, b.lastChange) > DebounceWindow && b.stable != b.raw {
		b.stable = b.raw
		if b.stable {
			b.pressStart = now
			b.engaged = false
			b.lastRepeat = now
		} else if !b.engaged && clock.Since(now, b.pressStart) < LongPressThreshold {
			return ShortPress, true
		}
		// Release after an engaged long press is silent: the long
		// action already fired while the button was held.
	}

	if b.stable && clock.Since(now, b.pressStart) >= LongPressThreshold {
		if !b.engaged {
			b.engaged = true
			b.lastRepeat = now
			return LongPressStart, true
		}
		if b.repeat && clock.Since(now, b.lastRepeat) >= HoldRepeatInterval {
			b.lastRepeat = now
			return HoldRepeat, true
		}
	}

	return "", false
}
