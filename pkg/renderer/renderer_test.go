package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattferris/replline/pkg/cmdbuf"
	"github.com/mattferris/replline/pkg/edmode"
	"github.com/mattferris/replline/pkg/history"
	"github.com/mattferris/replline/pkg/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTerminal() (*term.Terminal, *bytes.Buffer) {
	var buf bytes.Buffer
	return term.New(0, &buf), &buf
}

func prompts() Prompts {
	return Prompts{Default: ">> ", Continue: ".. ", ReverseSearch: "(rev): "}
}

func TestRenderEditModeSingleLine(t *testing.T) {
	tm, buf := newTestTerminal()
	rs := NewState()
	theme := DefaultTheme()

	e := edmode.New(history.New())
	m := e.Mode.(*edmode.EditMode)
	m.Buffer.InsertStr(cmdbuf.Origin, "hi")
	m.Cursor = m.Buffer.EndOfCmd()

	Render(tm, e.Mode, 80, theme, prompts(), rs)

	out := buf.String()
	assert.Contains(t, out, "hi")
	assert.Contains(t, out, ">> ")
	assert.Equal(t, 1, rs.Height)
}

func TestRenderGrowsHeightMonotonically(t *testing.T) {
	tm, _ := newTestTerminal()
	rs := NewState()
	theme := DefaultTheme()

	e := edmode.New(history.New())
	m := e.Mode.(*edmode.EditMode)
	m.Buffer.InsertStr(cmdbuf.Origin, strings.Repeat("x", 25))
	m.Cursor = m.Buffer.EndOfCmd()

	Render(tm, e.Mode, 20, theme, prompts(), rs)
	require.Equal(t, 2, rs.Height)

	// Deleting back down must not shrink the recorded height.
	m.Buffer.Line(0).RmGraphemeAt(24)
	for m.Buffer.Line(0).CountGraphemes() > 10 {
		m.Buffer.Line(0).RmGraphemeAt(m.Buffer.Line(0).CountGraphemes() - 1)
	}
	m.Cursor = m.Buffer.EndOfCmd()
	Render(tm, e.Mode, 20, theme, prompts(), rs)
	assert.Equal(t, 2, rs.Height)

	rs.Reset()
	assert.Equal(t, 1, rs.Height)
}

func TestRenderSearchModeDrawsRegexLine(t *testing.T) {
	tm, buf := newTestTerminal()
	rs := NewState()
	theme := DefaultTheme()

	h := history.New()
	hc := cmdbuf.New()
	hc.InsertStr(cmdbuf.Origin, "print 1")
	h.AddCmd(hc)

	sm := &edmode.SearchMode{Regex: "pri"}
	sm.Matches = h.ReverseSearch("pri")

	Render(tm, sm, 80, theme, prompts(), rs)

	out := buf.String()
	assert.Contains(t, out, "(rev): ")
	assert.Contains(t, out, "pri")
	assert.Contains(t, out, "print 1")
	assert.Equal(t, 2, rs.Height)
}
