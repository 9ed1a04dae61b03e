// Package logic contains pure business logic for the two-button timer.
// This package has NO hardware dependencies (no GPIO, LCD, MQTT, or
// time.Sleep). Wall time is always injectable via time.Time parameters;
// cadence decisions use clock.Millis timestamps.
package logic

import "time"

// Countdown configuration limits, in seconds.
const (
	CountStep = 10
	CountMin  = 10
	CountMax  = 300

	// DefaultDuration is the configured countdown at power-on.
	DefaultDuration = 10
)

// Cadence constants, in milliseconds.
const (
	// TickInterval drives the one-second counter updates.
	TickInterval = 1000

	// BlinkRunInterval is the LED toggle period while a timer runs.
	BlinkRunInterval = 500

	// BlinkDoneInterval is the LED toggle period after a countdown
	// expires.
	BlinkDoneInterval = 700
)

// Mode is the currently selected operating mode. Exactly one mode is
// active at any time.
type Mode string

const (
	ModeIdle      Mode = "IDLE"
	ModeStopwatch Mode = "STOPWATCH"
	ModeCountdown Mode = "COUNTDOWN"
)

// Button identifies which physical button produced an event.
type Button string

const (
	ButtonA Button = "A" // stopwatch button
	ButtonB Button = "B" // countdown button
)

// Stopwatch is the free-running timer. Elapsed only moves through Tick
// and Reset.
type Stopwatch struct {
	Elapsed int // seconds
	Running bool
}

// Countdown is the configurable timer. Remaining is floored at zero;
// Finished is set exactly when Remaining reaches zero from a running
// state and cleared by every mode-entering action.
type Countdown struct {
	Duration  int // configured seconds, in [CountMin, CountMax]
	Remaining int // seconds
	Running   bool
	Finished  bool
}

// State is the complete timer state. It is a value type; transitions
// happen only through Machine methods, which keep at most one Running
// flag set at a time.
type State struct {
	Mode      Mode
	Stopwatch Stopwatch
	Countdown Countdown
}

// EventType classifies a state transition.
type EventType string

const (
	EventStopwatchStarted  EventType = "STOPWATCH_STARTED"
	EventStopwatchPaused   EventType = "STOPWATCH_PAUSED"
	EventStopwatchResumed  EventType = "STOPWATCH_RESUMED"
	EventCountdownStarted  EventType = "COUNTDOWN_STARTED"
	EventCountdownPaused   EventType = "COUNTDOWN_PAUSED"
	EventCountdownResumed  EventType = "COUNTDOWN_RESUMED"
	EventCountdownFinished EventType = "COUNTDOWN_FINISHED"
	EventDurationChanged   EventType = "DURATION_CHANGED"
	EventReset             EventType = "RESET"
)

// Event represents a state transition to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	State     State
}

// EventCounts tracks the number of notable transitions since startup.
type EventCounts struct {
	StopwatchStarts   int
	CountdownStarts   int
	CountdownFinishes int
	DurationChanges   int
	Resets            int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
