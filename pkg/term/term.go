// Package term provides raw-mode terminal control and ANSI rendering
// primitives: the portable replacement for platform-specific termios code,
// built on golang.org/x/term.
package term

import (
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/mattferris/replline/pkg/replerr"
)

// Terminal owns raw-mode acquisition/release for one fd and exposes the
// cursor-motion, clear, scroll, and styled-print primitives the renderer
// needs. It is a scoped resource: EnableRaw/DisableRaw may be called
// repeatedly and must nest correctly with process exit.
type Terminal struct {
	fd    int
	saved *term.State
	out   io.Writer
}

// New wraps fd (typically os.Stdin.Fd()) for raw-mode control, writing
// rendered output to out (typically os.Stdout).
func New(fd int, out io.Writer) *Terminal {
	return &Terminal{fd: fd, out: out}
}

// EnableRaw puts the terminal into raw mode, remembering the prior state
// for DisableRaw. Calling it while already raw is a NOP.
func (t *Terminal) EnableRaw() error {
	if t.saved != nil {
		return nil
	}
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return replerr.Wrap(replerr.IO, err)
	}
	t.saved = state
	return nil
}

// DisableRaw restores the terminal to the state captured by EnableRaw.
// Calling it while not raw is a NOP.
func (t *Terminal) DisableRaw() error {
	if t.saved == nil {
		return nil
	}
	err := term.Restore(t.fd, t.saved)
	t.saved = nil
	if err != nil {
		return replerr.Wrap(replerr.IO, err)
	}
	return nil
}

// Size reports the terminal's current columns and rows.
func (t *Terminal) Size() (width, height int, err error) {
	width, height, err = term.GetSize(t.fd)
	if err != nil {
		return 0, 0, replerr.Wrap(replerr.IO, err)
	}
	return width, height, nil
}

// MoveCursorTo moves the cursor down y rows from its current row, then to
// zero-based column x of that row.
func (t *Terminal) MoveCursorTo(x, y int) {
	if y > 0 {
		fmt.Fprintf(t.out, "\x1b[%dB", y)
	}
	fmt.Fprint(t.out, "\r")
	if x > 0 {
		fmt.Fprintf(t.out, "\x1b[%dC", x)
	}
}

// MoveCursorUp moves the cursor up n rows and to column 0.
func (t *Terminal) MoveCursorUp(n int) {
	if n <= 0 {
		return
	}
	fmt.Fprintf(t.out, "\x1b[%dA\r", n)
}

// ScrollUp scrolls the terminal's contents up by one row, preserving
// whatever was above the input area.
func (t *Terminal) ScrollUp() {
	fmt.Fprint(t.out, "\n")
}

// ClearLine clears the current row.
func (t *Terminal) ClearLine() {
	fmt.Fprint(t.out, "\r\x1b[2K")
}

// ClearFromCursorDown clears from the cursor to the end of the screen.
func (t *Terminal) ClearFromCursorDown() {
	fmt.Fprint(t.out, "\x1b[J")
}

// Print writes s verbatim.
func (t *Terminal) Print(s string) {
	fmt.Fprint(t.out, s)
}

// PrintStyled wraps s in the given SGR style sequence and a trailing
// reset.
func (t *Terminal) PrintStyled(s, style, reset string) {
	if s == "" || style == "" {
		fmt.Fprint(t.out, s)
		return
	}
	fmt.Fprint(t.out, style, s, reset)
}

// Flush flushes out when it has a Flush() error method (a buffering sink
// such as *bufio.Writer); for any other sink it is a NOP, since Terminal
// writes directly to out.
func (t *Terminal) Flush() error {
	if f, ok := t.out.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Write implements io.Writer so Terminal itself can serve as a Sink.
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}
