package edmode

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mattferris/replline/pkg/cmdbuf"
	"github.com/mattferris/replline/pkg/term"
)

// dispatchEditWordMotion handles the supplemented Edit-mode-only kill and
// word-motion bindings: Ctrl-W (kill word before cursor), Ctrl-K (kill to
// end of line), Ctrl-U (kill to start of line). Alt-B/Alt-F word motion is
// handled inline in dispatchEdit alongside plain Left/Right, since both
// share the CodeLeft/CodeRight Code.
func (e *Editor) dispatchEditWordMotion(m *EditMode, k term.Key) {
	switch {
	case k.IsCtrl('w'):
		start := wordLeft(m.Buffer, m.Cursor)
		killRange(m.Buffer, start, m.Cursor)
		m.Cursor = start
	case k.IsCtrl('k'):
		end := cmdbuf.Coords{X: m.Buffer.Line(m.Cursor.Y).CountGraphemes(), Y: m.Cursor.Y}
		killRange(m.Buffer, m.Cursor, end)
	case k.IsCtrl('u'):
		start := cmdbuf.Coords{X: 0, Y: m.Cursor.Y}
		killRange(m.Buffer, start, m.Cursor)
		m.Cursor = start
	}
}

// killRange removes the graphemes on a single logical line between from
// and to (from.Y == to.Y, from.X <= to.X). A NOP on an empty range or at
// a line boundary.
func killRange(cmd *cmdbuf.Cmd, from, to cmdbuf.Coords) {
	if from.Y != to.Y || from.X >= to.X {
		return
	}
	line := cmd.Line(from.Y)
	for x := to.X; x > from.X; x-- {
		line.RmGraphemeAt(x - 1)
	}
}

// wordLeft returns the cursor position one word to the left of cur on its
// own logical line, stopping at column 0. Mirrors the line editor's
// original single-line word-skip: skip trailing spaces, then skip the
// word itself.
func wordLeft(cmd *cmdbuf.Cmd, cur cmdbuf.Coords) cmdbuf.Coords {
	graphemes := cmd.Line(cur.Y).Graphemes()
	i := cur.X
	for i > 0 && isSpace(graphemes[i-1]) {
		i--
	}
	for i > 0 && isWordGrapheme(graphemes[i-1]) {
		i--
	}
	return cmdbuf.Coords{X: i, Y: cur.Y}
}

// wordRight returns the cursor position one word to the right of cur on
// its own logical line, stopping at the line's end.
func wordRight(cmd *cmdbuf.Cmd, cur cmdbuf.Coords) cmdbuf.Coords {
	graphemes := cmd.Line(cur.Y).Graphemes()
	i := cur.X
	n := len(graphemes)
	for i < n && isSpace(graphemes[i]) {
		i++
	}
	for i < n && isWordGrapheme(graphemes[i]) {
		i++
	}
	return cmdbuf.Coords{X: i, Y: cur.Y}
}

func isSpace(g string) bool {
	r, _ := utf8.DecodeRuneInString(g)
	return unicode.IsSpace(r)
}

func isWordGrapheme(g string) bool {
	r, size := utf8.DecodeRuneInString(g)
	if size == len(g) {
		return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
	}
	// Multi-rune clusters (combining marks, ZWJ sequences, ...) count as
	// word characters: they are not whitespace and the simple ASCII test
	// doesn't apply cleanly to them.
	return !strings.ContainsFunc(g, unicode.IsSpace)
}
