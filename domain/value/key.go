// Package value contains the key dispatch vocabulary for the line editor.
package value

// KeyType identifies the kind of key event produced by the input reader.
type KeyType int

// Key type constants.
const (
	// KeyNone is an unrecognized or swallowed byte (e.g. an unknown escape
	// sequence). The edit loop ignores it and reads again.
	KeyNone KeyType = iota

	// KeyRune is a printable character, or a Ctrl combination when Ctrl is set.
	KeyRune

	KeyEnter
	KeyTab
	KeyEsc
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
)

// String returns a human-readable key type name.
func (k KeyType) String() string {
	switch k {
	case KeyNone:
		return "None"
	case KeyRune:
		return "Rune"
	case KeyEnter:
		return "Enter"
	case KeyTab:
		return "Tab"
	case KeyEsc:
		return "Esc"
	case KeyBackspace:
		return "Backspace"
	case KeyDelete:
		return "Delete"
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyHome:
		return "Home"
	case KeyEnd:
		return "End"
	default:
		return "Unknown"
	}
}

// KeyMsg is a single decoded key event.
//
// For KeyRune with Ctrl set, Rune holds the lowercase letter of the
// combination ('a' for Ctrl-A). For plain KeyRune it holds the character
// itself, multi-byte UTF-8 included.
type KeyMsg struct {
	Type KeyType
	Rune rune
	Ctrl bool
}
