package render

import (
	"testing"

	"github.com/sweeney/timerbox/internal/lcd"
	"github.com/sweeney/timerbox/internal/logic"
)

func render(t *testing.T, r *Renderer, st logic.State, d *lcd.Fake) bool {
	t.Helper()
	force, err := r.Render(st, d)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return force
}

func TestFormatTime(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{59, "00:59"},
		{60, "01:00"},
		{125, "02:05"},
		{300, "05:00"},
		{3599, "59:59"},
	}
	for _, c := range cases {
		if got := FormatTime(c.seconds); got != c.want {
			t.Errorf("FormatTime(%d): got %q, want %q", c.seconds, got, c.want)
		}
	}
}

func TestRenderIdle(t *testing.T) {
	d := lcd.NewFake()
	r := New()
	st := logic.State{Mode: logic.ModeIdle, Countdown: logic.Countdown{Duration: 10}}

	if force := render(t, r, st, d); force {
		t.Error("idle must not force the LED")
	}
	if got := d.Line(0); got != "A : Stopwatch" {
		t.Errorf("line 0: got %q", got)
	}
	if got := d.Line(1); got != "B : CD For : 10s" {
		t.Errorf("line 1: got %q", got)
	}
}

func TestRenderIdleLongDurationTruncated(t *testing.T) {
	d := lcd.NewFake()
	r := New()
	st := logic.State{Mode: logic.ModeIdle, Countdown: logic.Countdown{Duration: 300}}

	render(t, r, st, d)
	// "B : CD For : 300s" is 17 chars; the panel keeps the first 16.
	if got := d.Line(1); got != "B : CD For : 300" {
		t.Errorf("line 1: got %q", got)
	}
}

func TestRenderStopwatch(t *testing.T) {
	d := lcd.NewFake()
	r := New()
	st := logic.State{
		Mode:      logic.ModeStopwatch,
		Stopwatch: logic.Stopwatch{Elapsed: 65, Running: true},
	}

	render(t, r, st, d)
	if got := d.Line(0); got != "   STOPWATCH" {
		t.Errorf("line 0: got %q", got)
	}
	if got := d.Line(1); got != "     01:05" {
		t.Errorf("line 1: got %q", got)
	}
}

func TestRenderCountdown(t *testing.T) {
	d := lcd.NewFake()
	r := New()
	st := logic.State{
		Mode:      logic.ModeCountdown,
		Countdown: logic.Countdown{Duration: 10, Remaining: 10, Running: true},
	}

	if force := render(t, r, st, d); force {
		t.Error("running countdown must not force the LED")
	}
	if got := d.Line(0); got != "   COUNTDOWN" {
		t.Errorf("line 0: got %q", got)
	}
	if got := d.Line(1); got != "     00:10" {
		t.Errorf("line 1: got %q", got)
	}
}

func TestRenderTimeUpForcesLED(t *testing.T) {
	d := lcd.NewFake()
	r := New()
	st := logic.State{
		Mode:      logic.ModeCountdown,
		Countdown: logic.Countdown{Duration: 10, Finished: true},
	}

	if force := render(t, r, st, d); !force {
		t.Error("time-up branch must force the LED on")
	}
	if got := d.Line(1); got != "   TIME UP!" {
		t.Errorf("line 1: got %q", got)
	}

	// The force applies every iteration, even with nothing to repaint.
	if force := render(t, r, st, d); !force {
		t.Error("LED force must persist across unchanged renders")
	}
}

// Rendering twice with unchanged state issues zero writes the second
// time.
func TestRenderIdempotent(t *testing.T) {
	d := lcd.NewFake()
	r := New()
	st := logic.State{
		Mode:      logic.ModeStopwatch,
		Stopwatch: logic.Stopwatch{Elapsed: 42},
	}

	render(t, r, st, d)
	if d.Writes == 0 {
		t.Fatal("first render should write")
	}

	d.Writes = 0
	render(t, r, st, d)
	if d.Writes != 0 {
		t.Errorf("second render wrote %d times, want 0", d.Writes)
	}
}

func TestRenderDiffsSingleLine(t *testing.T) {
	d := lcd.NewFake()
	r := New()
	st := logic.State{Mode: logic.ModeStopwatch, Stopwatch: logic.Stopwatch{Elapsed: 1}}

	render(t, r, st, d)
	d.Writes = 0

	// Only the time line changes; the label line is untouched.
	st.Stopwatch.Elapsed = 2
	render(t, r, st, d)
	if d.Writes != 2 { // clear + text for one line
		t.Errorf("writes: got %d, want 2 (one repainted line)", d.Writes)
	}
	if got := d.Line(1); got != "     00:02" {
		t.Errorf("line 1: got %q", got)
	}
}

func TestModeChangeRepaintsBothLines(t *testing.T) {
	d := lcd.NewFake()
	r := New()

	render(t, r, logic.State{Mode: logic.ModeStopwatch}, d)
	d.Writes = 0

	render(t, r, logic.State{Mode: logic.ModeIdle, Countdown: logic.Countdown{Duration: 20}}, d)
	if d.Writes != 4 { // clear + text, both lines
		t.Errorf("writes: got %d, want 4 (full repaint)", d.Writes)
	}
	if got := d.Line(0); got != "A : Stopwatch" {
		t.Errorf("line 0: got %q", got)
	}
	if got := d.Line(1); got != "B : CD For : 20s" {
		t.Errorf("line 1: got %q", got)
	}
}

func TestWriteErrorKeepsCacheStale(t *testing.T) {
	d := lcd.NewFake()
	r := New()
	st := logic.State{Mode: logic.ModeStopwatch}

	d.Err = errFake
	if _, err := r.Render(st, d); err == nil {
		t.Fatal("expected write error")
	}

	// After the error clears, the full frame is painted: the cache was
	// not updated by the failed attempt.
	d.Reset()
	render(t, r, st, d)
	if got := d.Line(0); got != "   STOPWATCH" {
		t.Errorf("line 0 after retry: got %q", got)
	}
	if got := d.Line(1); got != "     00:00" {
		t.Errorf("line 1 after retry: got %q", got)
	}
}

var errFake = errTest("lcd write failed")

type errTest string

func (e errTest) Error() string { return string(e) }
