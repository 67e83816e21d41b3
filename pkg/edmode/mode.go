// Package edmode implements the editor's three-mode state machine — Edit,
// Navigate, Search — and the key dispatch table that drives transitions
// between them.
package edmode

import (
	"github.com/mattferris/replline/pkg/cmdbuf"
	"github.com/mattferris/replline/pkg/history"
)

// Mode is the tagged-variant interface implemented by EditMode,
// NavigateMode, and SearchMode. Transitions take ownership of the
// previous mode's buffer/preview rather than copying it.
type Mode interface {
	isMode()
}

// EditMode is the steady state: a buffer being typed, not yet submitted.
type EditMode struct {
	Buffer *cmdbuf.Cmd
	Cursor cmdbuf.Coords
}

func (*EditMode) isMode() {}

// NavigateMode previews a history entry in place of the live buffer.
// Backup/EntryCursor hold what Edit looked like before navigation began,
// restored by Ctrl-G or by stepping past the newest entry.
type NavigateMode struct {
	HIdx        history.HistIdx
	Backup      *cmdbuf.Cmd
	EntryCursor cmdbuf.Coords
	Preview     *cmdbuf.Cmd
	Cursor      cmdbuf.Coords
}

func (*NavigateMode) isMode() {}

// SearchMode previews the current best match of a reverse regex search
// typed into Regex. Backup/EntryCursor mirror NavigateMode's restore
// semantics.
type SearchMode struct {
	Regex       string
	RegexCursor int
	Backup      *cmdbuf.Cmd
	EntryCursor cmdbuf.Coords
	Matches     []history.Match
	Current     int
}

func (*SearchMode) isMode() {}

// Preview returns the Cmd the current match points at, or nil if there is
// no match.
func (s *SearchMode) Preview() *cmdbuf.Cmd {
	if s.Current < 0 || s.Current >= len(s.Matches) {
		return nil
	}
	return s.Matches[s.Current].Cmd
}

// Outcome reports what a Dispatch call did, for the event loop to act on.
type Outcome int

const (
	// Continue means the mode was mutated (or left unchanged); redraw and
	// keep reading events.
	Continue Outcome = iota
	// Submit means Enter was pressed on a non-empty buffer: Dispatch has
	// already reset the mode to a fresh Edit mode, and the event loop
	// should evaluate Submitted.
	Submit
	// Exit means Ctrl-D was pressed: the event loop should terminate.
	Exit
)

// Editor owns the current Mode and a reference to History for lookups
// during navigation and search.
type Editor struct {
	Mode Mode
	Hist *history.History

	// Submitted holds the Cmd produced by the most recent Submit outcome.
	Submitted *cmdbuf.Cmd
}

// New returns an Editor starting in Edit mode with an empty buffer.
func New(hist *history.History) *Editor {
	return &Editor{
		Mode: &EditMode{Buffer: cmdbuf.New(), Cursor: cmdbuf.Origin},
		Hist: hist,
	}
}

// Reset returns the editor to a fresh Edit mode, as happens after a
// successful submission.
func (e *Editor) Reset() {
	e.Mode = &EditMode{Buffer: cmdbuf.New(), Cursor: cmdbuf.Origin}
	e.Submitted = nil
}
