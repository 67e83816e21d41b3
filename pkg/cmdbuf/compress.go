package cmdbuf

import (
	"strings"

	"github.com/mattferris/replline/pkg/line"
)

// Uncompress maps a compressed Cmd to the visual rows it occupies at the
// given editor width and prompt length. The result is the renderer's view,
// never mutated in place and never written back as the model.
func (c *Cmd) Uncompress(width, promptLen int) *Cmd {
	var rows []*line.Line
	for _, l := range c.lines {
		rows = append(rows, uncompressLine(l, width, promptLen)...)
	}
	return FromLines(rows)
}

// uncompressLine wraps a single logical line into the visual rows it
// occupies. An empty line always yields exactly one row retaining its own
// Kind. A non-empty line yields a first row of the line's own Kind (capped
// at width-promptLen columns if that Kind is Start, else width columns),
// followed by as many Overflow rows (capped at width columns each) as are
// needed to exhaust the line's graphemes.
func uncompressLine(l *line.Line, width, promptLen int) []*line.Line {
	graphemes := l.Graphemes()
	if len(graphemes) == 0 {
		return []*line.Line{line.NewWithKind(l.Kind())}
	}

	firstWidth := width
	if l.Kind() == line.Start {
		firstWidth = width - promptLen
	}
	if firstWidth < 1 {
		firstWidth = 1
	}

	var rows []*line.Line
	i := 0
	end := min(i+firstWidth, len(graphemes))
	first := line.FromString(strings.Join(graphemes[i:end], ""))
	first.SetKind(l.Kind())
	rows = append(rows, first)
	i = end

	for i < len(graphemes) {
		end := min(i+width, len(graphemes))
		row := line.FromString(strings.Join(graphemes[i:end], ""))
		row.SetKind(line.Overflow)
		rows = append(rows, row)
		i = end
	}
	return rows
}

// Compress is the inverse of Uncompress: it walks visual rows, copying each
// Start row as a new logical line and appending the content of each
// following Overflow row onto the last emitted logical line.
func (c *Cmd) Compress() *Cmd {
	var out []*line.Line
	for _, r := range c.lines {
		if r.Kind() == line.Start || len(out) == 0 {
			nl := line.FromString(r.AsStr())
			nl.SetKind(line.Start)
			out = append(out, nl)
		} else {
			out[len(out)-1].PushStr(r.AsStr())
		}
	}
	return FromLines(out)
}

// Uncursor translates a cursor in the compressed domain into its visual
// position for the given editor width and prompt length.
func (c *Cmd) Uncursor(cursor Coords, width, promptLen int) Coords {
	vy := 0
	for y := 0; y < cursor.Y && y < len(c.lines); y++ {
		vy += len(uncompressLine(c.lines[y], width, promptLen))
	}

	rows := uncompressLine(c.lines[cursor.Y], width, promptLen)
	cx := cursor.X
	rowIdx := 0
	for rowIdx < len(rows)-1 {
		rowWidth := rowCapacity(rows[rowIdx], width, promptLen)
		if cx <= rowWidth {
			break
		}
		cx -= rowWidth
		rowIdx++
		vy++
	}

	vx := cx
	if rows[rowIdx].Kind() == line.Start {
		vx += promptLen
	}
	return Coords{X: vx, Y: vy}
}

func rowCapacity(row *line.Line, width, promptLen int) int {
	if row.Kind() == line.Start {
		if c := width - promptLen; c >= 1 {
			return c
		}
		return 1
	}
	return width
}
