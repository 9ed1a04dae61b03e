//go:build !linux

package gpio

import "errors"

// Real is not available on non-Linux platforms.
type Real struct{}

// NewReal returns an error on non-Linux platforms.
func NewReal(pinA, pinB, pinLED int) (*Real, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Read is not implemented on non-Linux platforms.
func (r *Real) Read() (bool, bool, error) {
	return false, false, errors.New("gpio: not supported")
}

// Set is not implemented on non-Linux platforms.
func (r *Real) Set(on bool) error {
	return errors.New("gpio: not supported")
}

// Close is not implemented on non-Linux platforms.
func (r *Real) Close() error {
	return nil
}
