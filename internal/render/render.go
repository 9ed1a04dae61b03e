// Package render maps timer state to display lines, writing only the
// lines whose content changed since the previous render.
package render

import (
	"fmt"

	"github.com/sweeney/timerbox/internal/lcd"
	"github.com/sweeney/timerbox/internal/logic"
)

// Fixed line texts. The display is 16 columns; longer lines are
// truncated.
const (
	lineStopwatch = "   STOPWATCH"
	lineCountdown = "   COUNTDOWN"
	lineTimeUp    = "   TIME UP!     "
	lineIdleA     = "A : Stopwatch"
)

const blankLine = "                "

// FormatTime renders whole seconds as zero-padded MM:SS.
func FormatTime(totalSeconds int) string {
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}

// Renderer owns the render cache: the last shown mode and the last
// text written to each line. A mode change invalidates both lines
// before the per-line diff, forcing a full repaint.
type Renderer struct {
	lastMode logic.Mode // zero value matches no real mode, so the first render paints everything
	lastLine [lcd.Rows]string
}

// New creates a Renderer whose first Render repaints both lines.
func New() *Renderer {
	return &Renderer{}
}

// Render writes the frame for st to the display, skipping unchanged
// lines. It returns true when the "time up" branch requires the LED
// forced on, overriding the blink cadence for this iteration.
func (r *Renderer) Render(st logic.State, d lcd.Display) (forceLED bool, err error) {
	if st.Mode != r.lastMode {
		r.lastLine[0] = ""
		r.lastLine[1] = ""
		r.lastMode = st.Mode
	}

	var line0, line1 string
	switch st.Mode {
	case logic.ModeStopwatch:
		line0 = lineStopwatch
		line1 = "     " + FormatTime(st.Stopwatch.Elapsed)
	case logic.ModeCountdown:
		line0 = lineCountdown
		if st.Countdown.Remaining > 0 {
			line1 = "     " + FormatTime(st.Countdown.Remaining)
		} else {
			line1 = lineTimeUp
			forceLED = true
		}
	default:
		line0 = lineIdleA
		line1 = fmt.Sprintf("B : CD For : %ds", st.Countdown.Duration)
	}

	if err := r.writeLine(d, 0, line0); err != nil {
		return forceLED, err
	}
	if err := r.writeLine(d, 1, line1); err != nil {
		return forceLED, err
	}
	return forceLED, nil
}

// writeLine repaints one row if its text differs from the cache. The
// cache is only updated after a successful write, so a failed write is
// retried on the next iteration.
func (r *Renderer) writeLine(d lcd.Display, row int, text string) error {
	if len(text) > lcd.Cols {
		text = text[:lcd.Cols]
	}
	if r.lastLine[row] == text {
		return nil
	}
	if err := d.SetCursor(0, row); err != nil {
		return err
	}
	if err := d.Print(blankLine); err != nil {
		return err
	}
	if err := d.SetCursor(0, row); err != nil {
		return err
	}
	if err := d.Print(text); err != nil {
		return err
	}
	r.lastLine[row] = text
	return nil
}
