package logic

import (
	"testing"

	"github.com/sweeney/timerbox/internal/clock"
)

func TestTickSourceCadence(t *testing.T) {
	ts := NewTickSource(0)

	if ts.Advance(500) {
		t.Error("tick fired before the interval elapsed")
	}
	if !ts.Advance(1000) {
		t.Error("tick should fire at 1000ms")
	}
	// Re-anchored at 1000: next fire at 2000, not 2 ticks of credit.
	if ts.Advance(1500) {
		t.Error("tick fired 500ms after re-anchor")
	}
	if !ts.Advance(2000) {
		t.Error("tick should fire at 2000ms")
	}
}

func TestTickSourceLateAnchor(t *testing.T) {
	// A slow iteration fires one tick and re-anchors at the late
	// instant; no burst of catch-up ticks.
	ts := NewTickSource(0)
	if !ts.Advance(3700) {
		t.Fatal("tick should fire after a long gap")
	}
	if ts.Advance(3800) {
		t.Error("no second tick until 1000ms after the late fire")
	}
	if !ts.Advance(4700) {
		t.Error("tick should fire at 4700ms")
	}
}

func TestTickSourceAcrossClockWrap(t *testing.T) {
	start := clock.Millis(0xFFFFFE0C) // 500ms before wrap
	ts := NewTickSource(start)

	if ts.Advance(start + 900) {
		t.Error("tick fired early across the wrap")
	}
	if !ts.Advance(start + 1000) {
		t.Error("tick should fire 1000ms after anchor, across the wrap")
	}
}

func TestBlinkerRunning(t *testing.T) {
	b := &Blinker{}
	st := State{Mode: ModeStopwatch, Stopwatch: Stopwatch{Running: true}}

	if b.Evaluate(st, 0) == b.Evaluate(st, 500) {
		t.Error("level should toggle after 500ms while running")
	}
	// Stays put between toggles.
	lv := b.Evaluate(st, 600)
	if b.Evaluate(st, 900) != lv {
		t.Error("level changed before the toggle interval elapsed")
	}
}

func TestBlinkerFinished(t *testing.T) {
	b := &Blinker{}
	st := State{Mode: ModeCountdown, Countdown: Countdown{Finished: true}}

	first := b.Evaluate(st, 0)
	if b.Evaluate(st, 500) != first {
		t.Error("finished blink toggled at the running cadence")
	}
	if b.Evaluate(st, 700) == first {
		t.Error("finished blink should toggle after 700ms")
	}
}

func TestBlinkerOffWhenIdle(t *testing.T) {
	b := &Blinker{}
	running := State{Stopwatch: Stopwatch{Running: true}}

	// Drive the level on, then drop to idle: forced off immediately.
	b.Evaluate(running, 0)
	b.Evaluate(running, 500)
	if got := b.Evaluate(State{Mode: ModeIdle}, 510); got {
		t.Error("LED must be off when nothing runs and nothing finished")
	}
	if got := b.Evaluate(State{Mode: ModeIdle}, 2000); got {
		t.Error("LED must stay off in idle")
	}
}
