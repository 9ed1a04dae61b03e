package mqtt

import "log"

// queuedMsg stores a serialized MQTT message while the broker is
// unreachable.
type queuedMsg struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// backlog is a fixed-capacity FIFO holding messages queued while
// disconnected. When full, the oldest message is dropped.
// Not safe for concurrent use — caller must synchronize.
type backlog struct {
	buf     []queuedMsg
	cap     int
	head    int // next write position
	n       int
	dropped bool // a message was dropped since the last drain
}

func newBacklog(capacity int) *backlog {
	return &backlog{
		buf: make([]queuedMsg, capacity),
		cap: capacity,
	}
}

func (b *backlog) push(msg queuedMsg) {
	if b.n == b.cap {
		if !b.dropped {
			log.Printf("mqtt: backlog full (%d messages), dropping oldest", b.cap)
			b.dropped = true
		}
		// head already points at the oldest entry
		b.buf[b.head] = msg
		b.head = (b.head + 1) % b.cap
		return
	}
	b.buf[b.head] = msg
	b.head = (b.head + 1) % b.cap
	b.n++
}

func (b *backlog) drain() []queuedMsg {
	if b.n == 0 {
		return nil
	}

	out := make([]queuedMsg, b.n)
	start := (b.head - b.n + b.cap) % b.cap
	for i := 0; i < b.n; i++ {
		out[i] = b.buf[(start+i)%b.cap]
	}

	b.n = 0
	b.head = 0
	b.dropped = false
	return out
}

func (b *backlog) len() int {
	return b.n
}
