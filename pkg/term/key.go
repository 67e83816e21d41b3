package term

// CodeKind names the class of key a Code represents.
type CodeKind int

const (
	CodeChar CodeKind = iota
	CodeEnter
	CodeBackspace
	CodeDelete
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodeHome
	CodeEnd
	CodeTab
	CodeEsc
)

// Code is a key identity: either a class (Enter, arrows, ...) or, for
// CodeChar, the decoded rune it carries.
type Code struct {
	Kind CodeKind
	Char rune
}

// Modifiers are the held modifier keys, additive per the editor's key
// dispatch table.
type Modifiers struct {
	Ctrl  bool
	Alt   bool
	Shift bool
}

// EventKind distinguishes press from (unsupported) release/repeat. The
// editor only ever sees Press.
type EventKind int

const (
	Press EventKind = iota
)

// Key is one decoded input event: {modifiers, code, kind=Press}.
type Key struct {
	Mods Modifiers
	Code Code
	Kind EventKind
}

// IsCtrl reports whether k is a Ctrl chord for the given lowercase letter,
// e.g. IsCtrl('d') matches Ctrl-D regardless of the byte the terminal used
// to encode it.
func (k Key) IsCtrl(letter rune) bool {
	return k.Mods.Ctrl && k.Code.Kind == CodeChar && k.Code.Char == letter
}

// IsPrintable reports whether k carries an insertable character with no
// control modifier.
func (k Key) IsPrintable() bool {
	return k.Code.Kind == CodeChar && !k.Mods.Ctrl
}
