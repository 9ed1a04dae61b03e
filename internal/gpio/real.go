//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Real drives actual hardware through the Linux GPIO character device.
// It implements both Buttons and LED.
type Real struct {
	chip   *gpiocdev.Chip
	pinA   *gpiocdev.Line
	pinB   *gpiocdev.Line
	pinLED *gpiocdev.Line
}

// NewReal requests the two button lines as pulled-up inputs and the
// LED line as an output, initially off.
func NewReal(pinA, pinB, pinLED int) (*Real, error) {
	chip, err := gpiocdev.NewChip("gpiochip0")
	if err != nil {
		return nil, fmt.Errorf("open gpio chip: %w", err)
	}

	lineA, err := chip.RequestLine(pinA, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		chip.Close()
		return nil, fmt.Errorf("request button A pin %d: %w", pinA, err)
	}

	lineB, err := chip.RequestLine(pinB, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		lineA.Close()
		chip.Close()
		return nil, fmt.Errorf("request button B pin %d: %w", pinB, err)
	}

	lineLED, err := chip.RequestLine(pinLED, gpiocdev.AsOutput(0))
	if err != nil {
		lineB.Close()
		lineA.Close()
		chip.Close()
		return nil, fmt.Errorf("request LED pin %d: %w", pinLED, err)
	}

	return &Real{
		chip:   chip,
		pinA:   lineA,
		pinB:   lineB,
		pinLED: lineLED,
	}, nil
}

// Read returns the logical pressed states of buttons A and B.
// Inverts the raw levels: raw low (0) = pressed via the pull-up.
func (r *Real) Read() (bool, bool, error) {
	rawA, err := r.pinA.Value()
	if err != nil {
		return false, false, fmt.Errorf("read button A: %w", err)
	}

	rawB, err := r.pinB.Value()
	if err != nil {
		return false, false, fmt.Errorf("read button B: %w", err)
	}

	return rawA == 0, rawB == 0, nil
}

// Set switches the LED.
func (r *Real) Set(on bool) error {
	v := 0
	if on {
		v = 1
	}
	if err := r.pinLED.SetValue(v); err != nil {
		return fmt.Errorf("set LED: %w", err)
	}
	return nil
}

// Close turns the LED off, reconfigures the lines to inputs, and
// releases them, leaving the pins in a clean state for reboot.
func (r *Real) Close() error {
	var errs []error

	if r.pinLED != nil {
		if err := r.pinLED.SetValue(0); err != nil {
			errs = append(errs, fmt.Errorf("clear LED: %w", err))
		}
		if err := r.pinLED.Reconfigure(gpiocdev.AsInput); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure LED pin: %w", err))
		}
		if err := r.pinLED.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close LED pin: %w", err))
		}
	}
	for name, line := range map[string]*gpiocdev.Line{"A": r.pinA, "B": r.pinB} {
		if line == nil {
			continue
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close button %s pin: %w", name, err))
		}
	}
	if r.chip != nil {
		if err := r.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}
