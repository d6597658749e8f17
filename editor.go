package readline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phoenix-tui/readline/domain/model"
	"github.com/phoenix-tui/readline/infrastructure/terminal"
)

// Session outcome errors. They never escape the API; Readline folds them
// into its quit flag.
var (
	// ErrInterrupted reports a Ctrl-C abort.
	ErrInterrupted = errors.New("readline: interrupted")

	// ErrEOF reports Ctrl-D on an empty line.
	ErrEOF = errors.New("readline: end of input")
)

// CompletionCallback maps the current edit buffer to candidate replacement
// lines for TAB completion. It must be pure: no access to editor state, no
// terminal output. An empty result rings the bell.
type CompletionCallback func(line string) []string

// Editor owns the editing configuration and the history for one input
// stream. All methods must be called from a single goroutine; Readline
// blocks it between keystrokes.
type Editor struct {
	in     *os.File
	out    *os.File
	errOut io.Writer

	term       *terminal.Terminal
	history    *model.History
	completion CompletionCallback
	multiline  bool
	cols       int

	plain *bufio.Reader // lazily created non-tty fallback reader
}

// Option configures an Editor.
type Option func(*Editor)

// WithInput sets the input file. Default os.Stdin.
func WithInput(f *os.File) Option {
	return func(e *Editor) { e.in = f }
}

// WithOutput sets the output file. Default os.Stdout.
func WithOutput(f *os.File) Option {
	return func(e *Editor) { e.out = f }
}

// WithColumns pins the terminal width instead of sampling it at session
// start. Meant for tests and for hosts that render into something that is
// not a tty.
func WithColumns(n int) Option {
	return func(e *Editor) { e.cols = n }
}

// New creates an Editor bound to stdin/stdout unless options say otherwise.
func New(opts ...Option) *Editor {
	e := &Editor{
		in:      os.Stdin,
		out:     os.Stdout,
		errOut:  os.Stderr,
		history: model.NewHistory(model.DefaultHistoryMaxLen),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.term = terminal.New(e.in, e.out)
	return e
}

// SetMultiLine toggles between the single-line refresh (long lines scroll
// horizontally) and the multi-line refresh (long lines wrap onto further
// rows).
func (e *Editor) SetMultiLine(on bool) { e.multiline = on }

// SetCompletionCallback installs the TAB completion producer. A nil callback
// disables TAB completion; TAB then inserts a literal tab.
func (e *Editor) SetCompletionCallback(fn CompletionCallback) { e.completion = fn }

// SetHistoryMaxLen bounds the history to n entries, n >= 1.
func (e *Editor) SetHistoryMaxLen(n int) bool { return e.history.SetMaxLen(n) }

// AddHistory appends a committed line to the history, subject to the
// adjacent-duplicate and bound invariants.
func (e *Editor) AddHistory(line string) bool { return e.history.Add(line) }

// SaveHistory writes the history to path, one entry per line, oldest first.
func (e *Editor) SaveHistory(path string) bool { return e.history.Save(path) }

// LoadHistory reads a history file back. A missing file returns false.
func (e *Editor) LoadHistory(path string) bool { return e.history.Load(path) }

// History returns a copy of the history, oldest first.
func (e *Editor) History() []string { return e.history.Entries() }

// Readline reads one line with full editing, history and completion. It
// blocks until the user commits (Enter), cancels (Ctrl-C) or ends input
// (Ctrl-D on an empty line); quit is true for the latter two.
//
// When the input is not a tty, or $TERM names a terminal that cannot handle
// escape sequences, the call degrades to a plain buffered line read; quit is
// then true once the stream is exhausted, so piped hosts terminate.
//
// Raw mode is entered for the duration of the call and restored on every
// exit path.
func (e *Editor) Readline(prompt string) (line string, quit bool) {
	if terminal.IsUnsupportedTerm() {
		fmt.Fprint(e.out, prompt)
		return e.readPlainLine()
	}
	if err := e.term.EnableRaw(); err != nil {
		return e.readPlainLine()
	}

	line, err := e.edit(e.in, e.out, prompt)
	e.term.DisableRaw()
	fmt.Fprintln(e.out)

	if errors.Is(err, ErrInterrupted) || errors.Is(err, ErrEOF) {
		return "", true
	}
	return line, false
}

// readPlainLine is the no-editing fallback for pipes and dumb terminals.
// quit is true on a bare end of input; a final unterminated line is still
// delivered first, with the quit on the following call.
func (e *Editor) readPlainLine() (line string, quit bool) {
	if e.plain == nil {
		e.plain = bufio.NewReader(e.in)
	}
	line, err := e.plain.ReadString('\n')
	return strings.TrimRight(line, "\r\n"), err != nil && line == ""
}
