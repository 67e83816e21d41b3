// Package line implements the single-logical-line building block of a Cmd:
// a string of content tagged with a rendering Kind (Start or Overflow).
package line

import "github.com/mattferris/replline/pkg/grapheme"

// Kind tags a Line for rendering purposes. Start means the line begins a
// logical statement (a prompt is drawn in front of it); Overflow means the
// line is a visual continuation of its predecessor caused by wrapping. In a
// compressed Cmd every Line is Start; in an uncompressed Cmd Kind
// distinguishes prompted rows from wrapped continuation rows.
type Kind int

const (
	Start Kind = iota
	Overflow
)

func (k Kind) String() string {
	if k == Start {
		return "Start"
	}
	return "Overflow"
}

// Line is a pair of raw text content and a rendering Kind.
type Line struct {
	content string
	kind    Kind
}

// New returns an empty Start line.
func New() *Line {
	return &Line{kind: Start}
}

// NewWithKind returns an empty line tagged with kind.
func NewWithKind(kind Kind) *Line {
	return &Line{kind: kind}
}

// FromString returns a Start line carrying s verbatim.
func FromString(s string) *Line {
	return &Line{content: s, kind: Start}
}

// Kind reports the line's rendering tag.
func (l *Line) Kind() Kind { return l.kind }

// IsStart reports whether the line is tagged Start.
func (l *Line) IsStart() bool { return l.kind == Start }

// SetKind retags the line in place.
func (l *Line) SetKind(kind Kind) { l.kind = kind }

// AsStr returns the line's raw content.
func (l *Line) AsStr() string { return l.content }

// IsEmpty reports whether the line has no content.
func (l *Line) IsEmpty() bool { return l.content == "" }

// Graphemes returns the line's content split into extended grapheme
// clusters.
func (l *Line) Graphemes() []string { return grapheme.Split(l.content) }

// CountGraphemes returns the number of extended grapheme clusters in the
// line's content.
func (l *Line) CountGraphemes() int { return grapheme.Count(l.content) }

// InsertChar inserts c before grapheme column x. x == CountGraphemes()
// appends.
func (l *Line) InsertChar(x int, c rune) {
	l.InsertStr(x, string(c))
}

// InsertStr inserts s before grapheme column x. x == CountGraphemes()
// appends.
func (l *Line) InsertStr(x int, s string) {
	l.content = grapheme.Insert(l.content, clamp(x, l.CountGraphemes()), s)
}

// RmGraphemeAt removes the grapheme at column x. Out-of-range x is a NOP.
func (l *Line) RmGraphemeAt(x int) {
	l.content = grapheme.RemoveAt(l.content, x)
}

// RmGraphemeBefore removes the grapheme immediately before column x.
// x == 0 is a NOP.
func (l *Line) RmGraphemeBefore(x int) {
	if x <= 0 {
		return
	}
	l.RmGraphemeAt(x - 1)
}

// PushStr appends s to the line's content.
func (l *Line) PushStr(s string) {
	l.content += s
}

// Clone returns an independent copy of l.
func (l *Line) Clone() *Line {
	cp := *l
	return &cp
}

func clamp(x, max int) int {
	if x < 0 {
		return 0
	}
	if x > max {
		return max
	}
	return x
}
