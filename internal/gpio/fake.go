package gpio

import "errors"

// Sample represents a single button reading (already in logical form).
type Sample struct {
	A bool // true = pressed
	B bool
}

// FakeButtons is a test double that returns scripted button samples.
type FakeButtons struct {
	// Samples contains scripted readings. Each call to Read consumes
	// the next sample; when exhausted, the last sample repeats.
	Samples []Sample

	// Closed tracks if Close was called.
	Closed bool

	// ReadError, if set, will be returned by Read.
	ReadError error

	index int
}

// NewFakeButtons creates a FakeButtons with the given samples.
func NewFakeButtons(samples []Sample) *FakeButtons {
	return &FakeButtons{Samples: samples}
}

// Read returns the next scripted sample.
func (f *FakeButtons) Read() (bool, bool, error) {
	if f.ReadError != nil {
		return false, false, f.ReadError
	}
	if len(f.Samples) == 0 {
		return false, false, errors.New("no samples configured")
	}

	s := f.Samples[f.index]
	if f.index < len(f.Samples)-1 {
		f.index++
	}
	return s.A, s.B, nil
}

// Close marks the reader as closed.
func (f *FakeButtons) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds to the beginning of the samples.
func (f *FakeButtons) Reset() {
	f.index = 0
	f.Closed = false
}

// FakeLED records LED levels for test assertions.
type FakeLED struct {
	// On is the current level.
	On bool

	// Levels records every Set call in order.
	Levels []bool

	// SetError, if set, will be returned by Set.
	SetError error

	// Closed tracks if Close was called.
	Closed bool
}

// NewFakeLED creates a FakeLED.
func NewFakeLED() *FakeLED {
	return &FakeLED{}
}

// Set records the level.
func (f *FakeLED) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.On = on
	f.Levels = append(f.Levels, on)
	return nil
}

// Close marks the LED as closed.
func (f *FakeLED) Close() error {
	f.Closed = true
	return nil
}
