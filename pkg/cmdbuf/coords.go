package cmdbuf

import "fmt"

// Coords is a grapheme-column x logical-row cursor position. X and Y are
// always non-negative; which domain (compressed or uncompressed) the
// coordinates live in is a matter of the caller's bookkeeping, not the
// type itself.
type Coords struct {
	X int
	Y int
}

// Origin is the zero cursor position.
var Origin = Coords{X: 0, Y: 0}

func (c Coords) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}
