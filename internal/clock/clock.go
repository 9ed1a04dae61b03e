// Package clock provides the millisecond time base for the timer core.
// Timestamps are 32-bit and wrap after ~49.7 days; all elapsed-time math
// must go through Since, which is wraparound-safe. Comparing raw Millis
// values with < is always a bug.
package clock

import "time"

// Millis is a wrapping millisecond timestamp.
type Millis uint32

// Since returns the number of milliseconds elapsed from then to now.
// Unsigned subtraction gives the correct result across a wrap.
func Since(now, then Millis) Millis {
	return now - then
}

// Clock produces Millis timestamps.
type Clock interface {
	Now() Millis
}

// Wall is a Clock backed by the monotonic system clock.
type Wall struct {
	origin time.Time
}

// NewWall creates a Wall clock anchored at the current instant.
func NewWall() *Wall {
	return &Wall{origin: time.Now()}
}

// Now returns milliseconds since the origin, truncated to 32 bits.
func (w *Wall) Now() Millis {
	return Millis(time.Since(w.origin) / time.Millisecond)
}

// Fake is a Clock for tests. Set or advance the value directly.
type Fake struct {
	Millis Millis
}

// Now returns the fake's current value.
func (f *Fake) Now() Millis {
	return f.Millis
}

// Advance moves the fake clock forward by d milliseconds.
func (f *Fake) Advance(d Millis) {
	f.Millis += d
}
