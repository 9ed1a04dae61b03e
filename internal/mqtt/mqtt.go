// Package mqtt provides MQTT publishing with abstraction for testing.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/sweeney/timerbox/internal/logic"
)

// Topic is the MQTT topic for timer transition events.
const Topic = "home/timerbox/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "home/timerbox/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a timer event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event logic.Event) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event (e.g., startup, shutdown, heartbeat).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Timer TimerPayload `json:"timer"`
}

// TimerPayload contains the timer event details.
type TimerPayload struct {
	Timestamp string           `json:"timestamp"`
	Event     string           `json:"event"`
	Mode      string           `json:"mode"`
	Stopwatch StopwatchPayload `json:"stopwatch"`
	Countdown CountdownPayload `json:"countdown"`
}

// StopwatchPayload is the stopwatch portion of a timer payload.
type StopwatchPayload struct {
	ElapsedSeconds int  `json:"elapsed_seconds"`
	Running        bool `json:"running"`
}

// CountdownPayload is the countdown portion of a timer payload.
type CountdownPayload struct {
	DurationSeconds  int  `json:"duration_seconds"`
	RemainingSeconds int  `json:"remaining_seconds"`
	Running          bool `json:"running"`
	Finished         bool `json:"finished"`
}

// FormatPayload creates the JSON payload for a timer event.
func FormatPayload(event logic.Event) ([]byte, error) {
	st := event.State
	payload := Payload{
		Timer: TimerPayload{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     string(event.Type),
			Mode:      string(st.Mode),
			Stopwatch: StopwatchPayload{
				ElapsedSeconds: st.Stopwatch.Elapsed,
				Running:        st.Stopwatch.Running,
			},
			Countdown: CountdownPayload{
				DurationSeconds:  st.Countdown.Duration,
				RemainingSeconds: st.Countdown.Remaining,
				Running:          st.Countdown.Running,
				Finished:         st.Countdown.Finished,
			},
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}

// Disabled is a Publisher that drops everything. Used when the broker
// is configured off.
type Disabled struct{}

// NewDisabled creates a Disabled publisher.
func NewDisabled() *Disabled { return &Disabled{} }

// Publish drops the event.
func (*Disabled) Publish(logic.Event) error { return nil }

// PublishSystem drops the event.
func (*Disabled) PublishSystem(SystemEvent) error { return nil }

// Close does nothing.
func (*Disabled) Close() error { return nil }

// IsConnected always reports false.
func (*Disabled) IsConnected() bool { return false }
