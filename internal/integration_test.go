package internal

import (
	"testing"
	"time"

	"github.com/sweeney/timerbox/internal/clock"
	"github.com/sweeney/timerbox/internal/gpio"
	"github.com/sweeney/timerbox/internal/input"
	"github.com/sweeney/timerbox/internal/lcd"
	"github.com/sweeney/timerbox/internal/logic"
	"github.com/sweeney/timerbox/internal/mqtt"
	"github.com/sweeney/timerbox/internal/render"
)

// harness wires the core components the way the main loop does, driven
// by scripted button samples at a fixed poll interval.
type harness struct {
	buttons  *gpio.FakeButtons
	led      *gpio.FakeLED
	disp     *lcd.Fake
	pub      *mqtt.FakePublisher
	machine  *logic.Machine
	buttonA  *input.Button
	buttonB  *input.Button
	ticks    *logic.TickSource
	blinker  *logic.Blinker
	renderer *render.Renderer
	now      clock.Millis
	wall     time.Time
}

func newHarness(samples []gpio.Sample) *harness {
	wall := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	return &harness{
		buttons:  gpio.NewFakeButtons(samples),
		led:      gpio.NewFakeLED(),
		disp:     lcd.NewFake(),
		pub:      mqtt.NewFakePublisher(),
		machine:  logic.NewMachine(wall),
		buttonA:  input.NewButton(false),
		buttonB:  input.NewButton(true),
		ticks:    logic.NewTickSource(0),
		blinker:  &logic.Blinker{},
		renderer: render.New(),
		wall:     wall,
	}
}

// step runs one 10ms loop iteration: sample, debounce, dispatch, tick,
// blink, render, drive the LED.
func (h *harness) step(t *testing.T) {
	t.Helper()
	h.now += 10
	h.wall = h.wall.Add(10 * time.Millisecond)

	a, b, err := h.buttons.Read()
	if err != nil {
		t.Fatalf("t=%d: button read: %v", h.now, err)
	}

	if ev, ok := h.buttonA.Sample(a, h.now); ok {
		if e, ok := h.machine.Apply(logic.ButtonA, ev, h.wall); ok {
			h.pub.Publish(e)
		}
	}
	if ev, ok := h.buttonB.Sample(b, h.now); ok {
		if e, ok := h.machine.Apply(logic.ButtonB, ev, h.wall); ok {
			h.pub.Publish(e)
		}
	}
	if h.ticks.Advance(h.now) {
		if e, ok := h.machine.Tick(h.wall); ok {
			h.pub.Publish(e)
		}
	}

	st := h.machine.State()
	level := h.blinker.Evaluate(st, h.now)
	force, err := h.renderer.Render(st, h.disp)
	if err != nil {
		t.Fatalf("t=%d: render: %v", h.now, err)
	}
	if force {
		level = true
	}
	h.led.Set(level)
}

// run executes n iterations.
func (h *harness) run(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		h.step(t)
	}
}

// pressSamples builds a sample script: released for pre samples, then
// the given button held for hold samples, then released forever.
func pressSamples(pre, hold int, useB bool) []gpio.Sample {
	var s []gpio.Sample
	for i := 0; i < pre; i++ {
		s = append(s, gpio.Sample{})
	}
	for i := 0; i < hold; i++ {
		if useB {
			s = append(s, gpio.Sample{B: true})
		} else {
			s = append(s, gpio.Sample{A: true})
		}
	}
	return append(s, gpio.Sample{})
}

// TestIntegrationCountdownToExpiry covers the full flow: a short press
// of B starts a 10-second countdown, the display counts down, and at
// expiry the LED is forced on over the "TIME UP!" text.
func TestIntegrationCountdownToExpiry(t *testing.T) {
	// B held from 100ms to 200ms: a clean short press.
	h := newHarness(pressSamples(9, 11, true))

	// Idle greeting first.
	h.run(t, 5)
	if got := h.disp.Line(0); got != "A : Stopwatch" {
		t.Fatalf("idle line 0: got %q", got)
	}
	if got := h.disp.Line(1); got != "B : CD For : 10s" {
		t.Fatalf("idle line 1: got %q", got)
	}

	// Through the press and into the countdown.
	h.run(t, 45) // t=500ms
	st := h.machine.State()
	if st.Mode != logic.ModeCountdown || !st.Countdown.Running || st.Countdown.Remaining != 10 {
		t.Fatalf("state after press: %+v", st)
	}
	if got := h.disp.Line(1); got != "     00:10" {
		t.Errorf("countdown line: got %q", got)
	}

	// Let the full 10 seconds elapse (ticks at 1000..10000ms).
	h.run(t, 1000) // t=10500ms
	st = h.machine.State()
	if st.Countdown.Remaining != 0 || st.Countdown.Running || !st.Countdown.Finished {
		t.Fatalf("state after expiry: %+v", st.Countdown)
	}
	if got := h.disp.Line(1); got != "   TIME UP!" {
		t.Errorf("time-up line: got %q", got)
	}
	if !h.led.On {
		t.Error("LED must be forced on while TIME UP! is displayed")
	}

	// Events: started, then finished.
	var types []logic.EventType
	for _, e := range h.pub.Events {
		types = append(types, e.Type)
	}
	want := []logic.EventType{logic.EventCountdownStarted, logic.EventCountdownFinished}
	if len(types) != len(want) {
		t.Fatalf("events: got %v, want %v", types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d: got %s, want %s", i, types[i], want[i])
		}
	}
}

// TestIntegrationStopwatchPauseResume starts the stopwatch, pauses it
// with a second short press, and checks the display freezes.
func TestIntegrationStopwatchPauseResume(t *testing.T) {
	// Two short presses of A: 100-200ms and 3100-3200ms.
	samples := pressSamples(9, 11, false)
	for len(samples) < 309 {
		samples = append(samples, gpio.Sample{})
	}
	for i := 0; i < 11; i++ {
		samples = append(samples, gpio.Sample{A: true})
	}
	samples = append(samples, gpio.Sample{})

	h := newHarness(samples)

	h.run(t, 295) // t=2950ms: stopwatch running, elapsed=2
	st := h.machine.State()
	if st.Mode != logic.ModeStopwatch || !st.Stopwatch.Running {
		t.Fatalf("state: %+v", st)
	}
	if st.Stopwatch.Elapsed != 2 {
		t.Fatalf("elapsed: got %d, want 2", st.Stopwatch.Elapsed)
	}
	if got := h.disp.Line(1); got != "     00:02" {
		t.Errorf("line: got %q", got)
	}

	h.run(t, 705) // t=10000ms: paused around 3270ms, elapsed frozen at 3
	st = h.machine.State()
	if st.Stopwatch.Running {
		t.Error("stopwatch should be paused")
	}
	if st.Stopwatch.Elapsed != 3 {
		t.Errorf("elapsed after pause: got %d, want 3", st.Stopwatch.Elapsed)
	}
	if got := h.disp.Line(1); got != "     00:03" {
		t.Errorf("line: got %q", got)
	}

	// Paused and nothing finished: LED settles off.
	if h.led.On {
		t.Error("LED should be off while paused")
	}
}

// TestIntegrationHoldToReset holds A past the long-press threshold
// while the stopwatch runs and expects a full reset to Idle.
func TestIntegrationHoldToReset(t *testing.T) {
	// Short press of A at 100-200ms, then A held from 3000ms to 4200ms.
	samples := pressSamples(9, 11, false)
	for len(samples) < 299 {
		samples = append(samples, gpio.Sample{})
	}
	for i := 0; i < 120; i++ {
		samples = append(samples, gpio.Sample{A: true})
	}
	samples = append(samples, gpio.Sample{})

	h := newHarness(samples)
	h.run(t, 500) // t=5000ms

	st := h.machine.State()
	if st.Mode != logic.ModeIdle {
		t.Errorf("mode: got %s, want IDLE", st.Mode)
	}
	if st.Stopwatch.Elapsed != 0 || st.Stopwatch.Running {
		t.Errorf("stopwatch after reset: %+v", st.Stopwatch)
	}
	if got := h.disp.Line(0); got != "A : Stopwatch" {
		t.Errorf("line 0: got %q", got)
	}

	var sawReset bool
	for _, e := range h.pub.Events {
		if e.Type == logic.EventReset {
			sawReset = true
		}
	}
	if !sawReset {
		t.Error("no RESET event published")
	}
}

// TestIntegrationHoldBConfiguresDuration holds B long enough for the
// long press plus two hold-repeats and expects three duration bumps.
func TestIntegrationHoldBConfiguresDuration(t *testing.T) {
	// B held from 100ms to 1690ms: engage at 960ms, repeats at
	// 1310ms and 1660ms.
	h := newHarness(pressSamples(9, 160, true))
	h.run(t, 200) // t=2000ms

	st := h.machine.State()
	if st.Mode != logic.ModeIdle {
		t.Errorf("mode: got %s, want IDLE", st.Mode)
	}
	if st.Countdown.Duration != 40 {
		t.Errorf("duration: got %d, want 40 (three bumps from 10)", st.Countdown.Duration)
	}
	if got := h.disp.Line(1); got != "B : CD For : 40s" {
		t.Errorf("line 1: got %q", got)
	}

	// Release produced no trailing short press.
	for _, e := range h.pub.Events {
		if e.Type != logic.EventDurationChanged {
			t.Errorf("unexpected event %s", e.Type)
		}
	}
}
