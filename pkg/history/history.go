// Package history implements the bounded, file-backed log of previously
// entered commands, along with reverse regex search over it.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	"github.com/mattferris/replline/pkg/cmdbuf"
	"github.com/mattferris/replline/pkg/replerr"
)

// UpperLimit bounds how many commands History retains.
const UpperLimit = 1000

// HistIdx indexes into a History. The zero value indexes the oldest entry.
type HistIdx int

// History is an ordered, append-only (until trimmed) log of commands.
type History struct {
	cmds []*cmdbuf.Cmd
}

// New returns an empty History.
func New() *History {
	return &History{cmds: make([]*cmdbuf.Cmd, 0, UpperLimit)}
}

// ReadFromFile loads a History from path. A missing file is created empty
// and a default (empty) History is returned; an existing-but-empty file
// also yields a default History.
func ReadFromFile(path string) (*History, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, replerr.Wrap(replerr.IO, err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o644)
		if err != nil {
			return nil, replerr.Wrap(replerr.IO, err)
		}
		f.Close()
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, replerr.Wrap(replerr.IO, err)
	}
	if len(data) == 0 {
		return New(), nil
	}

	var wire jsonHistory
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, replerr.Wrap(replerr.Serialization, err)
	}
	h := &History{cmds: make([]*cmdbuf.Cmd, len(wire.Cmds))}
	for i := range wire.Cmds {
		h.cmds[i] = &wire.Cmds[i]
	}
	return h, nil
}

// WriteToFile persists h to path as pretty-printed JSON, truncating any
// existing contents.
func (h *History) WriteToFile(path string) error {
	wire := jsonHistory{Cmds: make([]cmdbuf.Cmd, len(h.cmds))}
	for i, c := range h.cmds {
		wire.Cmds[i] = *c
	}
	data, err := json.MarshalIndent(&wire, "", "  ")
	if err != nil {
		return replerr.Wrap(replerr.Serialization, err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return replerr.Wrap(replerr.IO, err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return replerr.Wrap(replerr.IO, err)
	}
	return nil
}

type jsonHistory struct {
	Cmds []cmdbuf.Cmd `json:"cmds"`
}

// AddCmd appends cmd and returns its index.
func (h *History) AddCmd(cmd *cmdbuf.Cmd) HistIdx {
	idx := HistIdx(len(h.cmds))
	h.cmds = append(h.cmds, cmd)
	return idx
}

// LastCmd returns the most recently added command, or nil if History is
// empty.
func (h *History) LastCmd() *cmdbuf.Cmd {
	if len(h.cmds) == 0 {
		return nil
	}
	return h.cmds[len(h.cmds)-1]
}

// CountCmds reports the number of commands currently held.
func (h *History) CountCmds() int { return len(h.cmds) }

// IsEmpty reports whether History holds no commands.
func (h *History) IsEmpty() bool { return len(h.cmds) == 0 }

// MaxIdx returns the index of the newest command, and false if History is
// empty.
func (h *History) MaxIdx() (HistIdx, bool) {
	if len(h.cmds) == 0 {
		return 0, false
	}
	return HistIdx(len(h.cmds) - 1), true
}

// At returns the command at idx.
func (h *History) At(idx HistIdx) *cmdbuf.Cmd {
	return h.cmds[int(idx)]
}

// Trim deduplicates h's commands, keeping the newest occurrence of each
// distinct command, then caps the result at UpperLimit, dropping the
// oldest surplus entries. Chronological order is preserved.
//
// The dedup pass walks newest-to-oldest so that a repeated command keeps
// its most recent position; the result is then reversed back to
// chronological order before the cap is applied.
func (h *History) Trim() {
	seen := make(map[string]bool, len(h.cmds))
	kept := make([]*cmdbuf.Cmd, 0, len(h.cmds))
	for i := len(h.cmds) - 1; i >= 0; i-- {
		key := h.cmds[i].ToSourceCode()
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, h.cmds[i])
	}
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	if len(kept) > UpperLimit {
		kept = kept[len(kept)-UpperLimit:]
	}
	h.cmds = kept
}

// Match pairs a HistIdx with the command found at that index.
type Match struct {
	Idx HistIdx
	Cmd *cmdbuf.Cmd
}

// ReverseSearch returns every command whose source matches pattern, newest
// first. An invalid pattern yields no matches rather than an error: search
// is best-effort feedback to an interactive typist, not a validated query.
func (h *History) ReverseSearch(pattern string) []Match {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil
	}
	var out []Match
	for i := len(h.cmds) - 1; i >= 0; i-- {
		if re.MatchString(h.cmds[i].ToSourceCode()) {
			out = append(out, Match{Idx: HistIdx(i), Cmd: h.cmds[i]})
		}
	}
	return out
}
