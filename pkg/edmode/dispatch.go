package edmode

import (
	"github.com/mattferris/replline/pkg/cmdbuf"
	"github.com/mattferris/replline/pkg/grapheme"
	"github.com/mattferris/replline/pkg/term"
)

// Dispatch feeds one decoded key event to the current mode and returns
// what the event loop should do next.
func (e *Editor) Dispatch(k term.Key) Outcome {
	switch m := e.Mode.(type) {
	case *EditMode:
		return e.dispatchEdit(m, k)
	case *NavigateMode:
		return e.dispatchNavigate(m, k)
	case *SearchMode:
		return e.dispatchSearch(m, k)
	default:
		return Continue
	}
}

// ctrlAlias maps the Ctrl-letter chords the key-binding table lists as
// aliases of a navigation key (Ctrl-P/N/B/F/A/E) to the CodeKind they
// stand in for. Ctrl-D/C/G/R/O/W/K/U are handled independently and never
// appear here.
var ctrlAlias = map[rune]term.CodeKind{
	'p': term.CodeUp,
	'n': term.CodeDown,
	'b': term.CodeLeft,
	'f': term.CodeRight,
	'a': term.CodeHome,
	'e': term.CodeEnd,
}

// resolvedCode returns the CodeKind k should dispatch as, folding the
// Ctrl-P/N/B/F/A/E aliases onto their Up/Down/Left/Right/Home/End
// equivalents so a single switch handles both spellings.
func resolvedCode(k term.Key) term.CodeKind {
	if k.Mods.Ctrl && k.Code.Kind == term.CodeChar {
		if code, ok := ctrlAlias[k.Code.Char]; ok {
			return code
		}
	}
	return k.Code.Kind
}

func (e *Editor) dispatchEdit(m *EditMode, k term.Key) Outcome {
	if k.IsCtrl('d') {
		return Exit
	}
	if k.IsCtrl('c') || k.IsCtrl('g') {
		return Continue
	}
	if k.IsCtrl('r') {
		e.enterSearch(m.Buffer, m.Cursor)
		return Continue
	}

	switch resolvedCode(k) {
	case term.CodeEnter:
		return e.submit(m.Buffer)
	case term.CodeUp:
		if m.Cursor.Y == 0 {
			e.enterNavigateUp(m.Buffer, m.Cursor)
			return Continue
		}
		m.Cursor, _ = moveUp(m.Buffer, m.Cursor)
	case term.CodeDown:
		if next, ok := moveDown(m.Buffer, m.Cursor); ok {
			m.Cursor = next
		}
		// at bottom row: Edit has no forward history to step into, NOP.
	case term.CodeLeft:
		if k.Mods.Alt {
			m.Cursor = wordLeft(m.Buffer, m.Cursor)
		} else {
			m.Cursor = moveLeft(m.Buffer, m.Cursor)
		}
	case term.CodeRight:
		if k.Mods.Alt {
			m.Cursor = wordRight(m.Buffer, m.Cursor)
		} else {
			m.Cursor = moveRight(m.Buffer, m.Cursor)
		}
	case term.CodeHome:
		m.Cursor = cmdbuf.Origin
	case term.CodeEnd:
		m.Cursor = m.Buffer.EndOfCmd()
	case term.CodeBackspace:
		m.Cursor = m.Buffer.RmGraphemeBefore(m.Cursor)
	case term.CodeDelete:
		m.Buffer.RmGraphemeAt(m.Cursor)
	case term.CodeChar:
		if k.IsCtrl('o') {
			e.splitAtCursor(m.Buffer, &m.Cursor)
			return Continue
		}
		if k.IsPrintable() {
			m.Buffer.InsertChar(m.Cursor, k.Code.Char)
			m.Cursor.X++
			return Continue
		}
		e.dispatchEditWordMotion(m, k)
	}
	return Continue
}

func (e *Editor) dispatchNavigate(m *NavigateMode, k term.Key) Outcome {
	if k.IsCtrl('d') {
		return Exit
	}
	if k.IsCtrl('c') {
		return Continue
	}
	if k.IsCtrl('g') {
		e.Mode = &EditMode{Buffer: m.Backup, Cursor: m.EntryCursor}
		return Continue
	}
	if k.IsCtrl('r') {
		e.enterSearch(m.Backup, m.EntryCursor)
		return Continue
	}

	switch resolvedCode(k) {
	case term.CodeEnter:
		preview := m.Preview
		e.addToHistory(preview)
		e.Reset()
		e.Submitted = preview
		return Submit
	case term.CodeUp:
		if next, ok := moveUp(m.Preview, m.Cursor); ok {
			m.Cursor = next
			return Continue
		}
		e.navigatePrev(m)
	case term.CodeDown:
		if next, ok := moveDown(m.Preview, m.Cursor); ok {
			m.Cursor = next
			return Continue
		}
		e.navigateNext(m)
	case term.CodeLeft:
		m.Cursor = moveLeft(m.Preview, m.Cursor)
	case term.CodeRight:
		m.Cursor = moveRight(m.Preview, m.Cursor)
	case term.CodeHome:
		m.Cursor = cmdbuf.Origin
	case term.CodeEnd:
		m.Cursor = m.Preview.EndOfCmd()
	case term.CodeBackspace:
		buf := m.Preview
		cur := buf.RmGraphemeBefore(m.Cursor)
		e.Mode = &EditMode{Buffer: buf, Cursor: cur}
	case term.CodeDelete:
		buf := m.Preview
		buf.RmGraphemeAt(m.Cursor)
		e.Mode = &EditMode{Buffer: buf, Cursor: m.Cursor}
	case term.CodeChar:
		if k.IsCtrl('o') {
			em := &EditMode{Buffer: m.Preview, Cursor: m.Cursor}
			e.splitAtCursor(em.Buffer, &em.Cursor)
			e.Mode = em
			return Continue
		}
		if k.IsPrintable() {
			buf := m.Preview
			buf.InsertChar(m.Cursor, k.Code.Char)
			e.Mode = &EditMode{Buffer: buf, Cursor: cmdbuf.Coords{X: m.Cursor.X + 1, Y: m.Cursor.Y}}
		}
	}
	return Continue
}

func (e *Editor) dispatchSearch(m *SearchMode, k term.Key) Outcome {
	if k.IsCtrl('d') {
		return Exit
	}
	if k.IsCtrl('c') {
		return Continue
	}
	if k.IsCtrl('g') {
		e.Mode = &EditMode{Buffer: m.Backup, Cursor: m.EntryCursor}
		return Continue
	}
	if k.IsCtrl('r') {
		e.runSearch(m)
		return Continue
	}

	switch resolvedCode(k) {
	case term.CodeEnter:
		preview := m.Preview()
		if preview == nil {
			e.Mode = &EditMode{Buffer: m.Backup, Cursor: m.EntryCursor}
			return Continue
		}
		e.addToHistory(preview)
		e.Reset()
		e.Submitted = preview
		return Submit
	case term.CodeUp:
		if m.Current+1 < len(m.Matches) {
			m.Current++
		}
	case term.CodeDown:
		if m.Current > 0 {
			m.Current--
		}
	case term.CodeLeft:
		if m.RegexCursor > 0 {
			m.RegexCursor--
		}
	case term.CodeRight:
		if m.RegexCursor < grapheme.Count(m.Regex) {
			m.RegexCursor++
		}
	case term.CodeHome:
		m.RegexCursor = 0
	case term.CodeEnd:
		m.RegexCursor = grapheme.Count(m.Regex)
	case term.CodeBackspace:
		if m.RegexCursor > 0 {
			m.Regex = grapheme.RemoveAt(m.Regex, m.RegexCursor-1)
			m.RegexCursor--
			e.runSearch(m)
		}
	case term.CodeDelete:
		if m.RegexCursor < grapheme.Count(m.Regex) {
			m.Regex = grapheme.RemoveAt(m.Regex, m.RegexCursor)
			e.runSearch(m)
		}
	case term.CodeChar:
		if k.IsPrintable() {
			m.Regex = grapheme.Insert(m.Regex, m.RegexCursor, string(k.Code.Char))
			m.RegexCursor++
			e.runSearchReset(m)
		}
	}
	return Continue
}

func (e *Editor) submit(buf *cmdbuf.Cmd) Outcome {
	if buf.CountLines() == 1 && buf.Line(0).IsEmpty() {
		return Continue
	}
	e.addToHistory(buf)
	e.Reset()
	e.Submitted = buf
	return Submit
}

func (e *Editor) addToHistory(cmd *cmdbuf.Cmd) {
	if e.Hist == nil {
		return
	}
	e.Hist.AddCmd(cmd)
}

func (e *Editor) enterNavigateUp(backup *cmdbuf.Cmd, entryCursor cmdbuf.Coords) {
	if e.Hist == nil || e.Hist.IsEmpty() {
		return
	}
	max, _ := e.Hist.MaxIdx()
	preview := e.Hist.At(max).Clone()
	e.Mode = &NavigateMode{
		HIdx:        max,
		Backup:      backup,
		EntryCursor: entryCursor,
		Preview:     preview,
		Cursor:      preview.EndOfCmd(),
	}
}

func (e *Editor) navigatePrev(m *NavigateMode) {
	if m.HIdx == 0 {
		return
	}
	m.HIdx--
	m.Preview = e.Hist.At(m.HIdx).Clone()
	m.Cursor = m.Preview.EndOfCmd()
}

func (e *Editor) navigateNext(m *NavigateMode) {
	max, ok := e.Hist.MaxIdx()
	if ok && m.HIdx < max {
		m.HIdx++
		m.Preview = e.Hist.At(m.HIdx).Clone()
		m.Cursor = m.Preview.EndOfCmd()
		return
	}
	e.Mode = &EditMode{Buffer: m.Backup, Cursor: m.EntryCursor}
}

func (e *Editor) enterSearch(backup *cmdbuf.Cmd, entryCursor cmdbuf.Coords) {
	sm := &SearchMode{Backup: backup, EntryCursor: entryCursor}
	e.runSearch(sm)
	e.Mode = sm
}

// runSearch recompiles m's regex against history for Ctrl-R/Backspace/
// Delete, whose key-binding row is "edit regex; re-run search" with no
// reset clause. If the previously selected match still matches under the
// new regex, selection sticks to it (e.g. backspacing the regex narrower
// shouldn't jump the preview around); otherwise selection falls back to
// the newest match.
func (e *Editor) runSearch(m *SearchMode) {
	prevIdx, hadPrev := -1, false
	if m.Current >= 0 && m.Current < len(m.Matches) {
		prevIdx = int(m.Matches[m.Current].Idx)
		hadPrev = true
	}

	if e.Hist == nil {
		m.Matches = nil
		m.Current = 0
		return
	}
	m.Matches = e.Hist.ReverseSearch(m.Regex)
	m.Current = 0
	if !hadPrev {
		return
	}
	for i, match := range m.Matches {
		if int(match.Idx) == prevIdx {
			m.Current = i
			break
		}
	}
}

// runSearchReset recompiles m's regex against history for a printable-char
// insert, whose key-binding row explicitly adds "reset match index" on top
// of "insert into regex; re-run search" — unlike Backspace/Delete/Ctrl-R,
// selection always lands on the newest match.
func (e *Editor) runSearchReset(m *SearchMode) {
	if e.Hist == nil {
		m.Matches = nil
		m.Current = 0
		return
	}
	m.Matches = e.Hist.ReverseSearch(m.Regex)
	m.Current = 0
}

// splitAtCursor implements Ctrl-O: split buf at cur and move the cursor to
// the start of the new line. Shift-Enter is not bound to it: the key
// decoder never sets Shift, so Shift-Enter arrives as Enter and submits.
func (e *Editor) splitAtCursor(buf *cmdbuf.Cmd, cur *cmdbuf.Coords) {
	buf.InsertEmptyLine(*cur)
	*cur = cmdbuf.Coords{X: 0, Y: cur.Y + 1}
}
