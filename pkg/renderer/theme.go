package renderer

// Theme defines the ANSI SGR sequences used to style the editor's prompts.
// Values are full escape sequences like "\x1b[90m"; Reset must undo them.
type Theme struct {
	Prompt   string // default prompt, row 0
	Continue string // continuation prompt, later Start rows
	Search   string // reverse-search prompt
	Reset    string
}

// DefaultTheme returns a subtle, readable default theme.
func DefaultTheme() *Theme {
	return &Theme{
		Prompt:   "\x1b[90m", // bright black (grey)
		Continue: "\x1b[90m",
		Search:   "\x1b[35m", // magenta
		Reset:    "\x1b[0m",
	}
}
