// Package input reads keystrokes from a raw-mode byte stream and decodes
// them into key events.
package input

import (
	"bufio"
	"io"
	"unicode/utf8"

	"github.com/phoenix-tui/readline/domain/value"
)

// Reader decodes one UTF-8 character or one complete escape sequence per
// call from the underlying stream. Escape sequences are consumed by a small
// state machine, so an unrecognized sequence drains cleanly instead of
// leaking its tail bytes into the edit buffer.
//
// The zero value is not usable; use NewReader.
type Reader struct {
	r *bufio.Reader
}

// NewReader creates a Reader over r, usually the raw-mode input file.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadKey reads the next key event. ESC starts an escape sequence: the
// reader blocks for the follow-up bytes and maps CSI/SS3 sequences to
// arrow/home/end/delete events. Unknown sequences are swallowed and
// reported as KeyNone, which callers skip.
func (rd *Reader) ReadKey() (value.KeyMsg, error) {
	b, err := rd.r.ReadByte()
	if err != nil {
		return value.KeyMsg{}, err
	}

	if b == 0x1B {
		return rd.readEscape()
	}
	if b >= 0x80 {
		return rd.readRune(b)
	}
	return classifyByte(b), nil
}

// ReadChar reads the next UTF-8 character without escape-sequence lookahead.
// The completion micro-mode uses it, where a lone ESC means cancel.
func (rd *Reader) ReadChar() (value.KeyMsg, error) {
	b, err := rd.r.ReadByte()
	if err != nil {
		return value.KeyMsg{}, err
	}
	if b >= 0x80 {
		return rd.readRune(b)
	}
	return classifyByte(b), nil
}

// readRune finishes a multi-byte UTF-8 character whose leading byte was
// already consumed. A malformed sequence decodes to KeyNone.
func (rd *Reader) readRune(first byte) (value.KeyMsg, error) {
	if err := rd.r.UnreadByte(); err != nil {
		return value.KeyMsg{}, err
	}
	r, _, err := rd.r.ReadRune()
	if err != nil {
		return value.KeyMsg{}, err
	}
	if r == utf8.RuneError {
		return value.KeyMsg{Type: value.KeyNone}, nil
	}
	return value.KeyMsg{Type: value.KeyRune, Rune: r}, nil
}

// readEscape consumes the bytes following ESC. Raw mode delivers them as
// separate bytes, possibly slowly, so every read blocks.
func (rd *Reader) readEscape() (value.KeyMsg, error) {
	b1, err := rd.r.ReadByte()
	if err != nil {
		return value.KeyMsg{}, err
	}

	switch b1 {
	case '[':
		return rd.readCSI()
	case 'O':
		b2, err := rd.r.ReadByte()
		if err != nil {
			return value.KeyMsg{}, err
		}
		switch b2 {
		case 'H':
			return value.KeyMsg{Type: value.KeyHome}, nil
		case 'F':
			return value.KeyMsg{Type: value.KeyEnd}, nil
		}
		return value.KeyMsg{Type: value.KeyNone}, nil
	default:
		// Meta-prefixed key; ignored.
		return value.KeyMsg{Type: value.KeyNone}, nil
	}
}

// readCSI consumes a control sequence after "ESC [".
func (rd *Reader) readCSI() (value.KeyMsg, error) {
	b, err := rd.r.ReadByte()
	if err != nil {
		return value.KeyMsg{}, err
	}

	if b >= '0' && b <= '9' {
		// Parameterized sequence; collect digits and separators up to the
		// final byte.
		first := b
		params := 1
		for {
			nb, err := rd.r.ReadByte()
			if err != nil {
				return value.KeyMsg{}, err
			}
			if (nb >= '0' && nb <= '9') || nb == ';' {
				params++
				continue
			}
			if nb == '~' && first == '3' && params == 1 {
				return value.KeyMsg{Type: value.KeyDelete}, nil
			}
			return value.KeyMsg{Type: value.KeyNone}, nil
		}
	}

	switch b {
	case 'A':
		return value.KeyMsg{Type: value.KeyUp}, nil
	case 'B':
		return value.KeyMsg{Type: value.KeyDown}, nil
	case 'C':
		return value.KeyMsg{Type: value.KeyRight}, nil
	case 'D':
		return value.KeyMsg{Type: value.KeyLeft}, nil
	case 'H':
		return value.KeyMsg{Type: value.KeyHome}, nil
	case 'F':
		return value.KeyMsg{Type: value.KeyEnd}, nil
	}

	// Unknown intermediate bytes: drain to the final byte (0x40-0x7E).
	for b < 0x40 || b > 0x7E {
		var err error
		b, err = rd.r.ReadByte()
		if err != nil {
			return value.KeyMsg{}, err
		}
	}
	return value.KeyMsg{Type: value.KeyNone}, nil
}

// classifyByte maps a single byte below 0x80 to its key event. Special keys
// win over their overlapping Ctrl aliases (Ctrl-H is Backspace, Ctrl-I is
// Tab, Ctrl-M is Enter).
func classifyByte(b byte) value.KeyMsg {
	switch b {
	case 0x0D, 0x0A:
		return value.KeyMsg{Type: value.KeyEnter}
	case 0x7F, 0x08:
		return value.KeyMsg{Type: value.KeyBackspace}
	case 0x09:
		return value.KeyMsg{Type: value.KeyTab}
	case 0x1B:
		return value.KeyMsg{Type: value.KeyEsc}
	}

	if b >= 1 && b <= 26 {
		return value.KeyMsg{Type: value.KeyRune, Rune: rune('a' + b - 1), Ctrl: true}
	}
	if b >= 0x20 {
		return value.KeyMsg{Type: value.KeyRune, Rune: rune(b)}
	}
	return value.KeyMsg{Type: value.KeyNone}
}
