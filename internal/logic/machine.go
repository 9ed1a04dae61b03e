package logic

import (
	"time"

	"github.com/sweeney/timerbox/internal/input"
)

// Machine owns the timer state and applies debounced button events and
// one-second ticks to it. All mutation goes through Apply and Tick, so
// the running-flag exclusivity invariant holds after every transition.
type Machine struct {
	state         State
	counts        EventCounts
	startTime     time.Time
	lastHeartbeat time.Time
}

// NewMachine creates a Machine in Idle with the default countdown
// duration. The startTime is used for calculating uptime in heartbeat
// events.
func NewMachine(startTime time.Time) *Machine {
	return &Machine{
		state: State{
			Mode:      ModeIdle,
			Countdown: Countdown{Duration: DefaultDuration},
		},
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// State returns a copy of the current timer state.
func (m *Machine) State() State {
	return m.state
}

// Counts returns the transition counters since startup.
func (m *Machine) Counts() EventCounts {
	return m.counts
}

// Apply dispatches a debounced button event and returns the resulting
// transition event, if any.
func (m *Machine) Apply(btn Button, ev input.Event, now time.Time) (Event, bool) {
	switch {
	case btn == ButtonA && ev == input.ShortPress:
		return m.event(m.pressA(), now), true
	case btn == ButtonA && ev == input.LongPressStart:
		return m.event(m.reset(), now), true
	case btn == ButtonB && ev == input.ShortPress:
		return m.event(m.pressB(), now), true
	case btn == ButtonB && (ev == input.LongPressStart || ev == input.HoldRepeat):
		return m.event(m.bumpDuration(), now), true
	}
	return Event{}, false
}

// pressA selects the stopwatch, or toggles it when already selected.
func (m *Machine) pressA() EventType {
	sw := &m.state.Stopwatch
	if m.state.Mode != ModeStopwatch {
		m.state.Mode = ModeStopwatch
		sw.Running = true
		m.state.Countdown.Running = false
		m.state.Countdown.Finished = false
		m.counts.StopwatchStarts++
		return EventStopwatchStarted
	}
	sw.Running = !sw.Running
	if sw.Running {
		return EventStopwatchResumed
	}
	return EventStopwatchPaused
}

// pressB selects the countdown and pauses, reloads, or resumes it.
func (m *Machine) pressB() EventType {
	m.state.Mode = ModeCountdown
	m.state.Stopwatch.Running = false
	m.state.Countdown.Finished = false

	cd := &m.state.Countdown
	switch {
	case cd.Running:
		cd.Running = false
		return EventCountdownPaused
	case cd.Remaining <= 0:
		cd.Remaining = cd.Duration
		cd.Running = true
		m.counts.CountdownStarts++
		return EventCountdownStarted
	default:
		cd.Running = true
		return EventCountdownResumed
	}
}

// reset zeroes both counters and returns to Idle. The configured
// countdown duration survives a reset.
func (m *Machine) reset() EventType {
	m.state.Mode = ModeIdle
	m.state.Stopwatch = Stopwatch{}
	m.state.Countdown = Countdown{Duration: m.state.Countdown.Duration}
	m.counts.Resets++
	return EventReset
}

// bumpDuration steps the configured duration, wrapping past the
// maximum back to the minimum, and forces the mode to Idle so the new
// value is visible. Running counters are left untouched.
func (m *Machine) bumpDuration() EventType {
	cd := &m.state.Countdown
	cd.Duration += CountStep
	if cd.Duration > CountMax {
		cd.Duration = CountMin
	}
	m.state.Mode = ModeIdle
	m.counts.DurationChanges++
	return EventDurationChanged
}

// Tick advances whichever timer is running by one second. It returns a
// transition event only when the countdown expires.
func (m *Machine) Tick(now time.Time) (Event, bool) {
	if m.state.Stopwatch.Running {
		m.state.Stopwatch.Elapsed++
	}

	cd := &m.state.Countdown
	if cd.Running && cd.Remaining > 0 {
		cd.Remaining--
		if cd.Remaining == 0 {
			cd.Running = false
			cd.Finished = true
			m.counts.CountdownFinishes++
			return m.event(EventCountdownFinished, now), true
		}
	}
	return Event{}, false
}

func (m *Machine) event(t EventType, now time.Time) Event {
	return Event{Timestamp: now, Type: t, State: m.state}
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed
// since the last heartbeat (or startup). Returns nil if the interval
// has not elapsed or if interval is <= 0 (disabled).
func (m *Machine) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}
	if now.Sub(m.lastHeartbeat) < interval {
		return nil
	}
	m.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(m.startTime),
		Counts:    m.counts,
	}
}
