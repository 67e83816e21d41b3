// Package cmdbuf implements Cmd, the ordered sequence of Lines that makes
// up one editable unit of source input. Cmd owns the central
// compressed/uncompressed transform described in the editor's design: the
// compressed form is the source of truth (what is typed, persisted, and
// evaluated); the uncompressed form is a pure, ephemeral view produced on
// demand by the renderer to reflect terminal wrapping.
package cmdbuf

import (
	"encoding/json"

	"github.com/mattferris/replline/pkg/line"
)

// Cmd is an ordered, non-empty (in steady state) sequence of Lines.
type Cmd struct {
	lines []*line.Line
}

// New returns the default Cmd: a single empty Start line.
func New() *Cmd {
	return &Cmd{lines: []*line.Line{line.New()}}
}

// FromLines builds a Cmd directly from the given lines, taking ownership of
// the slice. Used by Uncompress/Compress.
func FromLines(lines []*line.Line) *Cmd {
	return &Cmd{lines: lines}
}

// Lines returns the Cmd's lines in order. The returned slice aliases the
// Cmd's internal storage; callers that mutate the *line.Line values mutate
// the Cmd.
func (c *Cmd) Lines() []*line.Line { return c.lines }

// CountLines returns the number of logical lines.
func (c *Cmd) CountLines() int { return len(c.lines) }

// IsEmpty reports whether the Cmd has zero lines.
func (c *Cmd) IsEmpty() bool { return len(c.lines) == 0 }

// Line returns the line at row y.
func (c *Cmd) Line(y int) *line.Line { return c.lines[y] }

// Clone returns a deep, independent copy of c.
func (c *Cmd) Clone() *Cmd {
	cp := make([]*line.Line, len(c.lines))
	for i, l := range c.lines {
		cp[i] = l.Clone()
	}
	return &Cmd{lines: cp}
}

// Equal reports whether c and other have identical line content and kinds,
// in the same order. History's Trim does not use it: it deduplicates by
// ToSourceCode.
func (c *Cmd) Equal(other *Cmd) bool {
	if other == nil || len(c.lines) != len(other.lines) {
		return false
	}
	for i, l := range c.lines {
		o := other.lines[i]
		if l.AsStr() != o.AsStr() || l.Kind() != o.Kind() {
			return false
		}
	}
	return true
}

// PushEmptyLine appends a new empty Start line.
func (c *Cmd) PushEmptyLine() {
	c.lines = append(c.lines, line.New())
}

func (c *Cmd) ensureNonEmpty() {
	if len(c.lines) == 0 {
		c.PushEmptyLine()
	}
}

// InsertChar inserts r before grapheme column pos.X on logical row pos.Y.
// If the Cmd was empty, a Start line is created first.
func (c *Cmd) InsertChar(pos Coords, r rune) {
	c.ensureNonEmpty()
	c.lines[pos.Y].InsertChar(pos.X, r)
}

// InsertStr inserts s before grapheme column pos.X on logical row pos.Y.
func (c *Cmd) InsertStr(pos Coords, s string) {
	c.ensureNonEmpty()
	c.lines[pos.Y].InsertStr(pos.X, s)
}

// InsertEmptyLine splits lines[pos.Y] at grapheme column pos.X: the tail
// becomes a new Start line inserted at Y+1, and the head keeps its
// original content up to pos.X and its original Kind.
func (c *Cmd) InsertEmptyLine(pos Coords) {
	c.ensureNonEmpty()
	head := c.lines[pos.Y]
	graphemes := head.Graphemes()
	x := pos.X
	if x > len(graphemes) {
		x = len(graphemes)
	}
	tailContent := ""
	for _, g := range graphemes[x:] {
		tailContent += g
	}
	headContent := ""
	for _, g := range graphemes[:x] {
		headContent += g
	}
	newHead := line.FromString(headContent)
	newHead.SetKind(head.Kind())
	newTail := line.FromString(tailContent)
	newTail.SetKind(line.Start)

	out := make([]*line.Line, 0, len(c.lines)+1)
	out = append(out, c.lines[:pos.Y]...)
	out = append(out, newHead, newTail)
	out = append(out, c.lines[pos.Y+1:]...)
	c.lines = out
}

// RmGraphemeBefore removes the grapheme immediately before pos and returns
// the cursor position that should follow:
//
//	(0, 0)        -> NOP, returns pos unchanged
//	y=0,  x>0     -> remove within line, cursor moves one column left
//	y>0,  x=0     -> merge this line into the previous one, cursor lands at
//	                 the previous line's original end
//	y>0,  x>0     -> remove within line, cursor moves one column left
func (c *Cmd) RmGraphemeBefore(pos Coords) Coords {
	if pos.Y == 0 && pos.X == 0 {
		return pos
	}
	if pos.X == 0 {
		prevLen := c.lines[pos.Y-1].CountGraphemes()
		removed := c.lines[pos.Y]
		c.lines[pos.Y-1].PushStr(removed.AsStr())
		c.lines = append(c.lines[:pos.Y], c.lines[pos.Y+1:]...)
		return Coords{X: prevLen, Y: pos.Y - 1}
	}
	c.lines[pos.Y].RmGraphemeAt(pos.X - 1)
	return Coords{X: pos.X - 1, Y: pos.Y}
}

// RmGraphemeAt removes the grapheme at pos:
//
//	x == line length and a next line exists -> absorb the next line's content
//	x == line length and no next line        -> NOP
//	otherwise                                 -> remove the grapheme at x
func (c *Cmd) RmGraphemeAt(pos Coords) {
	if c.IsEmpty() {
		return
	}
	l := c.lines[pos.Y]
	if pos.X == l.CountGraphemes() {
		if pos.Y+1 >= len(c.lines) {
			return
		}
		next := c.lines[pos.Y+1]
		l.PushStr(next.AsStr())
		c.lines = append(c.lines[:pos.Y+1], c.lines[pos.Y+2:]...)
		return
	}
	l.RmGraphemeAt(pos.X)
}

// EndOfCmd returns the cursor position just past the Cmd's final grapheme.
func (c *Cmd) EndOfCmd() Coords {
	if len(c.lines) == 0 {
		return Origin
	}
	last := len(c.lines) - 1
	return Coords{X: c.lines[last].CountGraphemes(), Y: last}
}

// ToSourceCode joins the content of non-empty lines with "\n". Defined only
// on a compressed Cmd.
func (c *Cmd) ToSourceCode() string {
	out := ""
	first := true
	for _, l := range c.lines {
		if l.IsEmpty() {
			continue
		}
		if !first {
			out += "\n"
		}
		out += l.AsStr()
		first = false
	}
	return out
}

// jsonCmd is the wire representation of a Cmd: its lines as transparent
// strings. Kind is never serialized — it is always Start in storage and
// reconstructed as Start on load.
type jsonCmd struct {
	Lines []string `json:"lines"`
}

// MarshalJSON serializes c as an ordered array of its lines' raw content.
func (c *Cmd) MarshalJSON() ([]byte, error) {
	out := jsonCmd{Lines: make([]string, len(c.lines))}
	for i, l := range c.lines {
		out.Lines[i] = l.AsStr()
	}
	return json.Marshal(out)
}

// UnmarshalJSON reconstructs a Cmd from its persisted form. Every resulting
// Line is tagged Start, per the history file format.
func (c *Cmd) UnmarshalJSON(data []byte) error {
	var in jsonCmd
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	lines := make([]*line.Line, len(in.Lines))
	for i, s := range in.Lines {
		lines[i] = line.FromString(s)
	}
	c.lines = lines
	return nil
}
