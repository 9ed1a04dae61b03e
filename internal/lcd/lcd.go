// Package lcd provides the 16x2 character display with hardware
// abstraction. The real implementation drives an HD44780 behind a
// PCF8574 I2C backpack; the fake implementation records a character
// grid for tests.
package lcd

// Display dimensions.
const (
	Cols = 16
	Rows = 2
)

// Display is the two-row fixed-width character surface the renderer
// writes to. One-time initialization (Init, Backlight) lives on the
// concrete driver, outside the per-iteration path.
type Display interface {
	// SetCursor positions the write cursor at the given column and row.
	SetCursor(col, row int) error

	// Print writes text at the cursor, advancing it.
	Print(s string) error
}
