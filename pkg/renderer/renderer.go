// Package renderer draws the editor's input area: the uncompressed view
// of whichever Cmd the current mode is showing, plus the dedicated
// search-regex row when in Search mode.
package renderer

import (
	"github.com/mattferris/replline/pkg/cmdbuf"
	"github.com/mattferris/replline/pkg/edmode"
	"github.com/mattferris/replline/pkg/grapheme"
	"github.com/mattferris/replline/pkg/term"
)

// Prompts holds the unstyled prompt text the renderer draws; styling is
// applied at draw time via a Theme. Default and Continue must
// have equal grapheme length — validated by the caller's configuration,
// not re-checked here.
type Prompts struct {
	Default       string
	Continue      string
	ReverseSearch string
}

// State is the renderer's memory across repaints of a single Cmd: the
// monotone-non-shrinking input-area height, and where the terminal cursor
// was left relative to the input area's origin row.
type State struct {
	Height    int
	CursorRow int
}

// NewState returns the State for a freshly reset (empty) Cmd.
func NewState() *State {
	return &State{Height: 1}
}

// Reset returns rs to the state of a freshly submitted, empty Cmd. Called
// after a successful submission so the next Cmd starts at height 1.
func (rs *State) Reset() {
	rs.Height = 1
	rs.CursorRow = 0
}

// Render repaints the input area for the current mode at the given
// terminal width, following the editor's fixed ten-step repaint sequence.
func Render(t *term.Terminal, mode edmode.Mode, width int, theme *Theme, prompts Prompts, rs *State) {
	promptLen := grapheme.Count(prompts.Default)
	content, cursor, searchRow := extractView(mode)

	// 1. uncompress.
	uncompressed := content.Uncompress(width, promptLen)
	rows := uncompressed.Lines()

	// 2-3. content height, monotone growth.
	contentHeight := len(rows)
	if searchRow != nil {
		contentHeight++
	}
	if contentHeight > rs.Height {
		// 4. scroll up once per newly needed row so prior output is kept.
		for i := 0; i < contentHeight-rs.Height; i++ {
			t.ScrollUp()
		}
		rs.Height = contentHeight
	}

	// 5. translate the compressed cursor, when there is one to translate.
	var uncur cmdbuf.Coords
	if searchRow == nil {
		uncur = content.Uncursor(cursor, width, promptLen)
	}

	// Return to the input area's origin row before clearing/redrawing.
	if rs.CursorRow > 0 {
		t.MoveCursorUp(rs.CursorRow)
	} else {
		t.Print("\r")
	}

	// 6-7. clear and draw each row, top to bottom, padding with blank
	// cleared rows if content currently occupies fewer rows than Height.
	// When in Search mode the final row is the dedicated regex line,
	// handled separately below.
	contentRows := rows
	for y := 0; y < rs.Height; y++ {
		t.ClearLine()
		isSearchLine := searchRow != nil && y == rs.Height-1
		switch {
		case isSearchLine:
			t.PrintStyled(prompts.ReverseSearch, theme.Search, theme.Reset)
			t.Print(*searchRow)
		case y < len(contentRows):
			row := contentRows[y]
			switch {
			case y == 0:
				t.PrintStyled(prompts.Default, theme.Prompt, theme.Reset)
			case row.IsStart():
				t.PrintStyled(prompts.Continue, theme.Continue, theme.Reset)
			}
			t.Print(row.AsStr())
		}
		t.Print("\r\n")
	}

	// 9. position the terminal cursor.
	if searchRow != nil {
		upBy := 1
		t.MoveCursorUp(upBy)
		col := promptLenOf(prompts.ReverseSearch) + searchCursorCol(mode)
		t.Print("\r")
		moveRight(t, col)
		rs.CursorRow = rs.Height - 1
		return
	}

	upBy := rs.Height - uncur.Y
	t.MoveCursorUp(upBy)
	t.Print("\r")
	moveRight(t, uncur.X)
	rs.CursorRow = uncur.Y
}

func promptLenOf(s string) int { return grapheme.Count(s) }

func searchCursorCol(mode edmode.Mode) int {
	if sm, ok := mode.(*edmode.SearchMode); ok {
		return sm.RegexCursor
	}
	return 0
}

func moveRight(t *term.Terminal, n int) {
	if n <= 0 {
		return
	}
	t.MoveCursorTo(n, 0)
}

// extractView pulls the Cmd, cursor, and (in Search mode) the regex line
// to render out of whichever mode is active.
func extractView(mode edmode.Mode) (content *cmdbuf.Cmd, cursor cmdbuf.Coords, searchRow *string) {
	switch m := mode.(type) {
	case *edmode.EditMode:
		return m.Buffer, m.Cursor, nil
	case *edmode.NavigateMode:
		return m.Preview, m.Cursor, nil
	case *edmode.SearchMode:
		preview := m.Preview()
		if preview == nil {
			preview = cmdbuf.New()
		}
		regex := m.Regex
		return preview, cmdbuf.Origin, &regex
	default:
		return cmdbuf.New(), cmdbuf.Origin, nil
	}
}
