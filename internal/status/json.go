package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string        `json:"event,omitempty"`
	Reason        string        `json:"reason,omitempty"`
	Mode          string        `json:"mode"`
	Stopwatch     StopwatchJSON `json:"stopwatch"`
	Countdown     CountdownJSON `json:"countdown"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	StartTime     string        `json:"start_time"`
	Timestamp     string        `json:"timestamp"`
	MQTT          MQTTStatus    `json:"mqtt"`
	Counts        CountsJSON    `json:"event_counts"`
	Config        ConfigJSON    `json:"config"`
}

// StopwatchJSON is the JSON representation of stopwatch state.
type StopwatchJSON struct {
	ElapsedSeconds int  `json:"elapsed_seconds"`
	Running        bool `json:"running"`
}

// CountdownJSON is the JSON representation of countdown state.
type CountdownJSON struct {
	DurationSeconds  int  `json:"duration_seconds"`
	RemainingSeconds int  `json:"remaining_seconds"`
	Running          bool `json:"running"`
	Finished         bool `json:"finished"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	StopwatchStarts   int `json:"stopwatch_starts"`
	CountdownStarts   int `json:"countdown_starts"`
	CountdownFinishes int `json:"countdown_finishes"`
	DurationChanges   int `json:"duration_changes"`
	Resets            int `json:"resets"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker,omitempty"`
	HTTPAddr    string `json:"http_addr"`
	I2CBus      string `json:"i2c_bus"`
	I2CAddr     uint16 `json:"i2c_addr"`
	PinA        int    `json:"pin_a"`
	PinB        int    `json:"pin_b"`
	PinLED      int    `json:"pin_led"`
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		Mode: string(snap.Timer.Mode),
		Stopwatch: StopwatchJSON{
			ElapsedSeconds: snap.Timer.Stopwatch.Elapsed,
			Running:        snap.Timer.Stopwatch.Running,
		},
		Countdown: CountdownJSON{
			DurationSeconds:  snap.Timer.Countdown.Duration,
			RemainingSeconds: snap.Timer.Countdown.Remaining,
			Running:          snap.Timer.Countdown.Running,
			Finished:         snap.Timer.Countdown.Finished,
		},
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			StopwatchStarts:   snap.Counts.StopwatchStarts,
			CountdownStarts:   snap.Counts.CountdownStarts,
			CountdownFinishes: snap.Counts.CountdownFinishes,
			DurationChanges:   snap.Counts.DurationChanges,
			Resets:            snap.Counts.Resets,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
			I2CBus:      snap.Config.I2CBus,
			I2CAddr:     snap.Config.I2CAddr,
			PinA:        snap.Config.PinA,
			PinB:        snap.Config.PinB,
			PinLED:      snap.Config.PinLED,
		},
	}
}

// FormatJSON renders a snapshot as the status JSON document.
func FormatJSON(snap Snapshot) []byte {
	data, err := json.Marshal(StatusJSON{Status: buildInner(snap)})
	if err != nil {
		// Snapshot contains only marshalable fields.
		return []byte(`{"status":{}}`)
	}
	return data
}

// FormatStatusEvent renders a snapshot as a system-event payload with
// the event name and optional reason filled in. Used for STARTUP,
// SHUTDOWN, and HEARTBEAT messages.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, err := json.Marshal(StatusJSON{Status: inner})
	if err != nil {
		return []byte(`{"status":{}}`)
	}
	return data
}
