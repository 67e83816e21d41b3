package edmode

import (
	"testing"

	"github.com/mattferris/replline/pkg/cmdbuf"
	"github.com/mattferris/replline/pkg/history"
	"github.com/mattferris/replline/pkg/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ch(r rune) term.Key {
	return term.Key{Code: term.Code{Kind: term.CodeChar, Char: r}}
}

func ctrl(letter rune) term.Key {
	return term.Key{Mods: term.Modifiers{Ctrl: true}, Code: term.Code{Kind: term.CodeChar, Char: letter}}
}

func code(k term.CodeKind) term.Key {
	return term.Key{Code: term.Code{Kind: k}}
}

func cmdFrom(s string) *cmdbuf.Cmd {
	c := cmdbuf.New()
	c.InsertStr(cmdbuf.Origin, s)
	return c
}

func editBuffer(t *testing.T, e *Editor) *EditMode {
	t.Helper()
	m, ok := e.Mode.(*EditMode)
	require.True(t, ok, "expected Edit mode, got %T", e.Mode)
	return m
}

func TestEditTypeAndSubmit(t *testing.T) {
	h := history.New()
	e := New(h)

	for _, r := range "hi" {
		e.Dispatch(ch(r))
	}
	outcome := e.Dispatch(code(term.CodeEnter))
	assert.Equal(t, Submit, outcome)
	assert.Equal(t, "hi", e.Submitted.ToSourceCode())
	assert.Equal(t, 1, h.CountCmds())

	m := editBuffer(t, e)
	assert.True(t, m.Buffer.Line(0).IsEmpty())
}

func TestEnterOnEmptyBufferIsNOP(t *testing.T) {
	e := New(history.New())
	outcome := e.Dispatch(code(term.CodeEnter))
	assert.Equal(t, Continue, outcome)
}

func TestCtrlDExits(t *testing.T) {
	e := New(history.New())
	assert.Equal(t, Exit, e.Dispatch(ctrl('d')))
}

// Scenario 2: Line-merge on backspace.
func TestLineMergeOnBackspace(t *testing.T) {
	e := New(history.New())
	m := editBuffer(t, e)
	m.Buffer.InsertStr(cmdbuf.Origin, "foo")
	m.Buffer.InsertEmptyLine(cmdbuf.Coords{X: 3, Y: 0})
	m.Buffer.InsertStr(cmdbuf.Coords{X: 0, Y: 1}, "bar")
	m.Cursor = cmdbuf.Coords{X: 0, Y: 1}

	e.Dispatch(code(term.CodeBackspace))

	m = editBuffer(t, e)
	require.Equal(t, 1, m.Buffer.CountLines())
	assert.Equal(t, "foobar", m.Buffer.Line(0).AsStr())
	assert.Equal(t, cmdbuf.Coords{X: 3, Y: 0}, m.Cursor)
}

// Scenario 3: Split on Ctrl-O.
func TestSplitOnCtrlO(t *testing.T) {
	e := New(history.New())
	m := editBuffer(t, e)
	m.Buffer.InsertStr(cmdbuf.Origin, "hello")
	m.Cursor = cmdbuf.Coords{X: 2, Y: 0}

	e.Dispatch(ctrl('o'))

	m = editBuffer(t, e)
	require.Equal(t, 2, m.Buffer.CountLines())
	assert.Equal(t, "he", m.Buffer.Line(0).AsStr())
	assert.Equal(t, "llo", m.Buffer.Line(1).AsStr())
	assert.Equal(t, cmdbuf.Coords{X: 0, Y: 1}, m.Cursor)
}

// Scenario 4: History navigation loop.
func TestHistoryNavigationLoop(t *testing.T) {
	h := history.New()
	h.AddCmd(cmdFrom("A"))
	h.AddCmd(cmdFrom("B"))
	h.AddCmd(cmdFrom("C"))
	e := New(h)

	e.Dispatch(code(term.CodeUp))
	nm := e.Mode.(*NavigateMode)
	assert.Equal(t, "C", nm.Preview.ToSourceCode())

	e.Dispatch(code(term.CodeUp))
	nm = e.Mode.(*NavigateMode)
	assert.Equal(t, "B", nm.Preview.ToSourceCode())

	e.Dispatch(code(term.CodeUp))
	nm = e.Mode.(*NavigateMode)
	assert.Equal(t, "A", nm.Preview.ToSourceCode())

	e.Dispatch(code(term.CodeUp))
	nm = e.Mode.(*NavigateMode)
	assert.Equal(t, "A", nm.Preview.ToSourceCode(), "stepping before the oldest entry is a NOP")

	e.Dispatch(code(term.CodeDown))
	nm = e.Mode.(*NavigateMode)
	assert.Equal(t, "B", nm.Preview.ToSourceCode())

	e.Dispatch(code(term.CodeDown))
	nm = e.Mode.(*NavigateMode)
	assert.Equal(t, "C", nm.Preview.ToSourceCode())

	e.Dispatch(code(term.CodeDown))
	em := editBuffer(t, e)
	assert.True(t, em.Buffer.Line(0).IsEmpty(), "stepping past the newest restores the empty backup")
}

func TestCtrlGRestoresBackupFromNavigate(t *testing.T) {
	h := history.New()
	h.AddCmd(cmdFrom("A"))
	e := New(h)
	m := editBuffer(t, e)
	m.Buffer.InsertStr(cmdbuf.Origin, "typing")
	m.Cursor = m.Buffer.EndOfCmd()

	e.Dispatch(code(term.CodeUp))
	require.IsType(t, &NavigateMode{}, e.Mode)

	e.Dispatch(ctrl('g'))
	em := editBuffer(t, e)
	assert.Equal(t, "typing", em.Buffer.ToSourceCode())
}

func TestNavigateMutationPromotesToEdit(t *testing.T) {
	h := history.New()
	h.AddCmd(cmdFrom("A"))
	e := New(h)

	e.Dispatch(code(term.CodeUp))
	e.Dispatch(ch('!'))

	em := editBuffer(t, e)
	assert.Equal(t, "A!", em.Buffer.ToSourceCode())
}

// Scenario 5: Reverse search.
func TestReverseSearchScenario(t *testing.T) {
	h := history.New()
	h.AddCmd(cmdFrom("print 1"))
	h.AddCmd(cmdFrom("print 2"))
	h.AddCmd(cmdFrom("draw 3"))
	e := New(h)

	e.Dispatch(ctrl('r'))
	for _, r := range "pri" {
		e.Dispatch(ch(r))
	}
	sm := e.Mode.(*SearchMode)
	require.NotNil(t, sm.Preview())
	assert.Equal(t, "print 2", sm.Preview().ToSourceCode())

	e.Dispatch(code(term.CodeUp))
	sm = e.Mode.(*SearchMode)
	assert.Equal(t, "print 1", sm.Preview().ToSourceCode())

	e.Dispatch(code(term.CodeBackspace))
	sm = e.Mode.(*SearchMode)
	assert.Equal(t, "pr", sm.Regex)
	assert.Equal(t, "print 1", sm.Preview().ToSourceCode(), "current match index is preserved across a regex edit")

	outcome := e.Dispatch(code(term.CodeEnter))
	assert.Equal(t, Submit, outcome)
	assert.Equal(t, "print 1", e.Submitted.ToSourceCode())
}

func TestReverseSearchNoMatchEnterCancelsToBackup(t *testing.T) {
	h := history.New()
	h.AddCmd(cmdFrom("draw 3"))
	e := New(h)
	editBuffer(t, e).Buffer.InsertStr(cmdbuf.Origin, "typing")
	m := e.Mode.(*EditMode)
	m.Cursor = m.Buffer.EndOfCmd()

	e.Dispatch(ctrl('r'))
	for _, r := range "zzz" {
		e.Dispatch(ch(r))
	}
	sm := e.Mode.(*SearchMode)
	assert.Nil(t, sm.Preview())

	e.Dispatch(code(term.CodeEnter))
	em := editBuffer(t, e)
	assert.Equal(t, "typing", em.Buffer.ToSourceCode())
}

func TestKillWordBeforeCursor(t *testing.T) {
	e := New(history.New())
	m := editBuffer(t, e)
	m.Buffer.InsertStr(cmdbuf.Origin, "foo bar")
	m.Cursor = m.Buffer.EndOfCmd()

	e.Dispatch(ctrl('w'))

	m = editBuffer(t, e)
	assert.Equal(t, "foo ", m.Buffer.Line(0).AsStr())
	assert.Equal(t, 4, m.Cursor.X)
}

func TestKillToEndOfLine(t *testing.T) {
	e := New(history.New())
	m := editBuffer(t, e)
	m.Buffer.InsertStr(cmdbuf.Origin, "foo bar")
	m.Cursor = cmdbuf.Coords{X: 3, Y: 0}

	e.Dispatch(ctrl('k'))

	m = editBuffer(t, e)
	assert.Equal(t, "foo", m.Buffer.Line(0).AsStr())
}

func TestKillToStartOfLine(t *testing.T) {
	e := New(history.New())
	m := editBuffer(t, e)
	m.Buffer.InsertStr(cmdbuf.Origin, "foo bar")
	m.Cursor = cmdbuf.Coords{X: 4, Y: 0}

	e.Dispatch(ctrl('u'))

	m = editBuffer(t, e)
	assert.Equal(t, "bar", m.Buffer.Line(0).AsStr())
	assert.Equal(t, 0, m.Cursor.X)
}

func TestAltWordMotion(t *testing.T) {
	e := New(history.New())
	m := editBuffer(t, e)
	m.Buffer.InsertStr(cmdbuf.Origin, "foo bar")
	m.Cursor = m.Buffer.EndOfCmd()

	e.Dispatch(term.Key{Mods: term.Modifiers{Alt: true}, Code: term.Code{Kind: term.CodeLeft}})
	m = editBuffer(t, e)
	assert.Equal(t, 4, m.Cursor.X)

	e.Dispatch(term.Key{Mods: term.Modifiers{Alt: true}, Code: term.Code{Kind: term.CodeRight}})
	m = editBuffer(t, e)
	assert.Equal(t, 7, m.Cursor.X)
}

// TestCtrlAliasesMoveLikeArrowsInEdit exercises the Ctrl-B/F/P/N/A/E
// aliases the key-binding table lists alongside Left/Right/Up/Down/Home/End.
func TestCtrlAliasesMoveLikeArrowsInEdit(t *testing.T) {
	e := New(history.New())
	m := editBuffer(t, e)
	m.Buffer.InsertStr(cmdbuf.Origin, "hi")
	m.Cursor = cmdbuf.Coords{X: 2, Y: 0}

	e.Dispatch(ctrl('b'))
	m = editBuffer(t, e)
	assert.Equal(t, 1, m.Cursor.X, "Ctrl-B aliases Left")

	e.Dispatch(ctrl('f'))
	m = editBuffer(t, e)
	assert.Equal(t, 2, m.Cursor.X, "Ctrl-F aliases Right")

	e.Dispatch(ctrl('a'))
	m = editBuffer(t, e)
	assert.Equal(t, 0, m.Cursor.X, "Ctrl-A aliases Home")

	e.Dispatch(ctrl('e'))
	m = editBuffer(t, e)
	assert.Equal(t, 2, m.Cursor.X, "Ctrl-E aliases End")
}

// TestCtrlPAndCtrlNAliasHistoryNavigation confirms Ctrl-P/N fold onto
// Up/Down even when that triggers a mode transition (Edit -> Navigate).
func TestCtrlPAndCtrlNAliasHistoryNavigation(t *testing.T) {
	h := history.New()
	h.AddCmd(cmdFrom("print 1"))
	e := New(h)

	e.Dispatch(ctrl('p'))
	nm, ok := e.Mode.(*NavigateMode)
	require.True(t, ok, "Ctrl-P should alias Up and enter Navigate mode")
	assert.Equal(t, "print 1", nm.Preview.ToSourceCode())

	e.Dispatch(ctrl('n'))
	_, back := e.Mode.(*EditMode)
	assert.True(t, back, "Ctrl-N should alias Down and fall back out of Navigate mode")
}

// TestSearchPrintableCharResetsMatchIndexButEditKeysDoNot covers the
// key-binding table's split: selecting an older match with Up, then typing
// a printable char resets to the newest match, but Backspace keeps the
// previously selected match sticky.
func TestSearchPrintableCharResetsMatchIndexButEditKeysDoNot(t *testing.T) {
	h := history.New()
	h.AddCmd(cmdFrom("print 1"))
	h.AddCmd(cmdFrom("print 2"))
	e := New(h)

	e.Dispatch(ctrl('r'))
	for _, r := range "print" {
		e.Dispatch(ch(r))
	}
	sm := e.Mode.(*SearchMode)
	require.Equal(t, "print 2", sm.Preview().ToSourceCode())

	e.Dispatch(code(term.CodeUp))
	sm = e.Mode.(*SearchMode)
	require.Equal(t, "print 1", sm.Preview().ToSourceCode(), "selected the older match")

	e.Dispatch(ch(' '))
	sm = e.Mode.(*SearchMode)
	assert.Equal(t, "print 2", sm.Preview().ToSourceCode(), "typing a char resets match index to newest")

	e.Dispatch(code(term.CodeUp))
	sm = e.Mode.(*SearchMode)
	require.Equal(t, "print 1", sm.Preview().ToSourceCode())

	e.Dispatch(code(term.CodeBackspace))
	sm = e.Mode.(*SearchMode)
	assert.Equal(t, "print 1", sm.Preview().ToSourceCode(), "backspace keeps the selected match sticky")
}
