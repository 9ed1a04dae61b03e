package lcd

import "strings"

// Fake is a test double that records writes into a character grid.
type Fake struct {
	// Cells holds the display contents, space-filled.
	Cells [Rows][Cols]byte

	// Writes counts Print calls, for render-diffing assertions.
	Writes int

	// Err, if set, is returned by SetCursor and Print.
	Err error

	col, row int
}

// NewFake creates a Fake with a blank (space-filled) grid.
func NewFake() *Fake {
	f := &Fake{}
	f.clear()
	return f
}

func (f *Fake) clear() {
	for r := 0; r < Rows; r++ {
		for c := 0; c < Cols; c++ {
			f.Cells[r][c] = ' '
		}
	}
}

// SetCursor positions the write cursor.
func (f *Fake) SetCursor(col, row int) error {
	if f.Err != nil {
		return f.Err
	}
	f.col, f.row = col, row
	return nil
}

// Print writes text at the cursor. Characters past the right edge are
// dropped, as on the real panel.
func (f *Fake) Print(s string) error {
	if f.Err != nil {
		return f.Err
	}
	f.Writes++
	for i := 0; i < len(s); i++ {
		if f.col >= Cols || f.row < 0 || f.row >= Rows {
			break
		}
		f.Cells[f.row][f.col] = s[i]
		f.col++
	}
	return nil
}

// Line returns one row's contents with trailing spaces trimmed.
func (f *Fake) Line(row int) string {
	return strings.TrimRight(string(f.Cells[row][:]), " ")
}

// Reset blanks the grid and zeroes the write counter.
func (f *Fake) Reset() {
	f.clear()
	f.Writes = 0
	f.col, f.row = 0, 0
	f.Err = nil
}
