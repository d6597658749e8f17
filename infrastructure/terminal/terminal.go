// Package terminal provides the POSIX terminal control the line editor
// needs: raw mode with guaranteed restoration, column detection, screen
// clearing and the bell.
//
// Raw mode here deviates from classic raw mode in one deliberate way: OPOST
// stays enabled, so "\n" written by the host still expands to CR-LF. This
// keeps output portable for hosts that print around Readline calls.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned by EnableRaw when the input is not a tty.
var ErrNotTerminal = errors.New("readline: input is not a terminal")

// unsupportedTerms are terminal names known to not understand the escape
// sequences the editor emits. Matching TERM values fall back to a plain
// buffered line read.
var unsupportedTerms = []string{"dumb", "cons25", "emacs"}

// Terminal wraps the input/output file pair of one editor.
type Terminal struct {
	in  *os.File
	out *os.File
}

// New creates a Terminal over the given file pair, usually stdin/stdout.
func New(in, out *os.File) *Terminal {
	return &Terminal{in: in, out: out}
}

// IsTerminal reports whether the input file is a tty.
func (t *Terminal) IsTerminal() bool {
	return term.IsTerminal(int(t.in.Fd()))
}

// EnableRaw puts the input terminal into raw mode: byte-at-a-time reads,
// no echo, no signal generation. The pre-raw attributes are captured once
// per process on the first successful call; DisableRaw and Restore reset to
// that snapshot. Returns ErrNotTerminal for non-tty input.
func (t *Terminal) EnableRaw() error {
	if !t.IsTerminal() {
		return ErrNotTerminal
	}
	return enableRaw(int(t.in.Fd()))
}

// DisableRaw restores the attributes captured by the first EnableRaw.
// Idempotent; a no-op when raw mode was never entered.
func (t *Terminal) DisableRaw() {
	disableRaw(int(t.in.Fd()))
}

// Restore resets the process's controlling terminal to the attributes
// captured before the first raw-mode entry. Safe to call at any time. Go has
// no atexit hook, so hosts with their own abnormal-exit paths (signal
// handlers, os.Exit after errors) should call this themselves; every
// Readline already restores on its own exit paths.
func Restore() {
	disableRaw(int(os.Stdin.Fd()))
}

// Columns returns the terminal width. The window-size ioctl is tried first;
// when it fails the cursor-report fallback measures the width by parking the
// cursor at the right margin. 80 when everything fails.
func (t *Terminal) Columns() int {
	if w, _, err := term.GetSize(int(t.out.Fd())); err == nil && w > 0 {
		return w
	}

	// Fallback: remember the cursor column, bump the cursor to the right
	// edge, read the column there, then walk back.
	start := t.cursorColumn()
	if start < 0 {
		return 80
	}
	if _, err := t.out.WriteString("\x1b[999C"); err != nil {
		return 80
	}
	cols := t.cursorColumn()
	if cols < 0 {
		return 80
	}
	if cols > start {
		fmt.Fprintf(t.out, "\x1b[%dD", cols-start)
	}
	return cols
}

// cursorColumn queries the cursor position via DSR ("ESC [6n") and parses
// the "ESC [ rows ; cols R" reply. Requires raw mode. Returns -1 on any
// failure.
func (t *Terminal) cursorColumn() int {
	if _, err := t.out.WriteString("\x1b[6n"); err != nil {
		return -1
	}

	var reply [32]byte
	n := 0
	for n < len(reply)-1 {
		if _, err := t.in.Read(reply[n : n+1]); err != nil {
			break
		}
		if reply[n] == 'R' {
			break
		}
		n++
	}

	var rows, cols int
	if _, err := fmt.Sscanf(string(reply[:n]), "\x1b[%d;%d", &rows, &cols); err != nil {
		return -1
	}
	return cols
}

// Clear clears the screen and homes the cursor.
func (t *Terminal) Clear() error {
	return Clear(t.out)
}

// Clear writes the clear-screen sequence to w.
func Clear(w io.Writer) error {
	_, err := io.WriteString(w, "\x1b[H\x1b[2J")
	return err
}

// Beep writes the bell character to w. The editor rings it on the error
// stream so it never interleaves with a refresh.
func Beep(w io.Writer) error {
	_, err := io.WriteString(w, "\a")
	return err
}

// IsUnsupportedTerm reports whether $TERM names a terminal that cannot
// handle escape sequences.
func IsUnsupportedTerm() bool {
	name := os.Getenv("TERM")
	for _, t := range unsupportedTerms {
		if name == t {
			return true
		}
	}
	return false
}
