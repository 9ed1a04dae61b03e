// Package gpio provides button input and LED output with hardware
// abstraction. The real implementation uses the Linux GPIO character
// device. The fake implementation allows testing without hardware.
package gpio

// Buttons reads the two button channels.
type Buttons interface {
	// Read returns the logical pressed states of buttons A and B.
	// The raw levels are active-low (pull-up biased): raw low =
	// pressed. The inversion is applied here, not in the core.
	Read() (a, b bool, err error)

	// Close releases GPIO resources.
	Close() error
}

// LED drives the status LED.
type LED interface {
	// Set switches the LED on or off.
	Set(on bool) error

	// Close releases GPIO resources.
	Close() error
}

// Default pin assignments (BCM numbering).
const (
	DefaultPinA   = 23 // stopwatch button
	DefaultPinB   = 24 // countdown button
	DefaultPinLED = 25
)
