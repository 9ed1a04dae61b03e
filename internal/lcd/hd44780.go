package lcd

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// DefaultAddr is the usual PCF8574 backpack address.
const DefaultAddr = 0x27

// PCF8574 backpack bit assignments.
const (
	bitRS        = 0x01
	bitEN        = 0x04
	bitBacklight = 0x08
)

// HD44780 commands.
const (
	cmdClear       = 0x01
	cmdEntryMode   = 0x06 // increment, no shift
	cmdDisplayOn   = 0x0C // display on, cursor off, blink off
	cmdFunctionSet = 0x28 // 4-bit, 2 lines, 5x8 font
	cmdSetDDRAM    = 0x80
)

var rowOffsets = [Rows]byte{0x00, 0x40}

// HD44780 is a 16x2 character LCD on an I2C PCF8574 backpack, driven
// in 4-bit mode.
type HD44780 struct {
	bus       i2c.BusCloser
	dev       i2c.Dev
	backlight byte
}

// OpenHD44780 opens the I2C bus (periph name, e.g. "1" for /dev/i2c-1)
// and returns an uninitialized display. Call Init before use.
func OpenHD44780(busName string, addr uint16) (*HD44780, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}
	return &HD44780{
		bus: bus,
		dev: i2c.Dev{Bus: bus, Addr: addr},
	}, nil
}

// Init runs the HD44780 4-bit initialization sequence and clears the
// display. The delays follow the HD44780 datasheet power-on procedure.
func (d *HD44780) Init() error {
	time.Sleep(50 * time.Millisecond)

	// Three 8-bit function-set knocks, then the switch to 4-bit mode.
	for _, n := range []byte{0x30, 0x30, 0x30, 0x20} {
		if err := d.writeNibble(n); err != nil {
			return fmt.Errorf("lcd init: %w", err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	for _, c := range []byte{cmdFunctionSet, cmdDisplayOn, cmdClear, cmdEntryMode} {
		if err := d.command(c); err != nil {
			return fmt.Errorf("lcd init: %w", err)
		}
	}
	// Clear needs extra settle time.
	time.Sleep(2 * time.Millisecond)
	return nil
}

// Backlight switches the backpack's backlight line.
func (d *HD44780) Backlight(on bool) error {
	if on {
		d.backlight = bitBacklight
	} else {
		d.backlight = 0
	}
	// Re-send the current bus state so the change takes effect now.
	if err := d.dev.Tx([]byte{d.backlight}, nil); err != nil {
		return fmt.Errorf("set backlight: %w", err)
	}
	return nil
}

// SetCursor positions the write cursor.
func (d *HD44780) SetCursor(col, row int) error {
	if row < 0 || row >= Rows || col < 0 || col >= Cols {
		return fmt.Errorf("cursor out of range: col=%d row=%d", col, row)
	}
	return d.command(cmdSetDDRAM | (rowOffsets[row] + byte(col)))
}

// Print writes text at the cursor, advancing it.
func (d *HD44780) Print(s string) error {
	for i := 0; i < len(s); i++ {
		if err := d.send(s[i], bitRS); err != nil {
			return fmt.Errorf("write char %d: %w", i, err)
		}
	}
	return nil
}

// Close releases the I2C bus.
func (d *HD44780) Close() error {
	return d.bus.Close()
}

func (d *HD44780) command(c byte) error {
	return d.send(c, 0)
}

// send transfers one byte as two nibbles with the RS flag.
func (d *HD44780) send(b, rs byte) error {
	if err := d.writeNibble(b&0xF0 | rs); err != nil {
		return err
	}
	return d.writeNibble(b<<4 | rs)
}

// writeNibble puts the nibble on the data lines and pulses EN.
func (d *HD44780) writeNibble(v byte) error {
	out := v | d.backlight
	if err := d.dev.Tx([]byte{out | bitEN}, nil); err != nil {
		return err
	}
	return d.dev.Tx([]byte{out &^ bitEN}, nil)
}
