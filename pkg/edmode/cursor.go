package edmode

import "github.com/mattferris/replline/pkg/cmdbuf"

// moveLeft moves cur left within cmd by one grapheme, wrapping to the end
// of the previous line when at column 0. A NOP at the buffer's origin.
func moveLeft(cmd *cmdbuf.Cmd, cur cmdbuf.Coords) cmdbuf.Coords {
	if cur.X > 0 {
		return cmdbuf.Coords{X: cur.X - 1, Y: cur.Y}
	}
	if cur.Y > 0 {
		prev := cmd.Line(cur.Y - 1)
		return cmdbuf.Coords{X: prev.CountGraphemes(), Y: cur.Y - 1}
	}
	return cur
}

// moveRight moves cur right within cmd by one grapheme, wrapping to the
// start of the next line when at the current line's end. A NOP at the
// buffer's end.
func moveRight(cmd *cmdbuf.Cmd, cur cmdbuf.Coords) cmdbuf.Coords {
	line := cmd.Line(cur.Y)
	if cur.X < line.CountGraphemes() {
		return cmdbuf.Coords{X: cur.X + 1, Y: cur.Y}
	}
	if cur.Y < cmd.CountLines()-1 {
		return cmdbuf.Coords{X: 0, Y: cur.Y + 1}
	}
	return cur
}

// moveUp moves cur to the previous logical line, clamping the column to
// that line's length. Returns ok=false at the top row, signaling the
// caller should instead navigate history.
func moveUp(cmd *cmdbuf.Cmd, cur cmdbuf.Coords) (cmdbuf.Coords, bool) {
	if cur.Y == 0 {
		return cur, false
	}
	target := cur.Y - 1
	return cmdbuf.Coords{X: clampX(cur.X, cmd.Line(target).CountGraphemes()), Y: target}, true
}

// moveDown moves cur to the next logical line, clamping the column to
// that line's length. Returns ok=false at the bottom row.
func moveDown(cmd *cmdbuf.Cmd, cur cmdbuf.Coords) (cmdbuf.Coords, bool) {
	if cur.Y >= cmd.CountLines()-1 {
		return cur, false
	}
	target := cur.Y + 1
	return cmdbuf.Coords{X: clampX(cur.X, cmd.Line(target).CountGraphemes()), Y: target}, true
}

func clampX(x, max int) int {
	if x > max {
		return max
	}
	return x
}
