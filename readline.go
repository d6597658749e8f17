// Package readline is a single-line-input editor for interactive
// command-line programs. It reads one line from a terminal with in-place
// editing - cursor motion, insertion, deletion, history recall, TAB
// completion - rendering the line back to the screen in real time with
// nothing but ANSI escape sequences.
//
// # Quick Start
//
//	rl := readline.New()
//	rl.SetMultiLine(true)
//	for {
//		line, quit := rl.Readline("hello> ")
//		if quit {
//			break
//		}
//		fmt.Printf("echo: '%s'\n", line)
//		rl.AddHistory(line)
//	}
//
// # Architecture
//
// The library follows a small DDD layout:
//
//   - domain/model          - edit state and history
//   - domain/service        - Unicode width and grapheme segmentation
//   - domain/value          - key event vocabulary
//   - infrastructure/terminal - raw mode, columns, clear, bell
//   - infrastructure/input  - keystroke decoding
//   - infrastructure/renderer - single- and multi-line refresh
//
// Editing is grapheme-aware throughout: the cursor moves over user-perceived
// characters, combining marks never split, and East-Asian wide characters
// count two columns in all wrap arithmetic.
//
// # Terminal handling
//
// Readline puts the input terminal into raw mode for the duration of the
// call and restores it on every exit path. The pre-raw attributes are
// captured once per process; terminal.Restore resets to them at any time.
// Non-tty input and dumb terminals degrade to a plain buffered line read.
//
// # Concurrency
//
// Everything is single-threaded and cooperative. Readline blocks the calling
// goroutine in read between keystrokes; history is process-wide state with
// no internal locking, so hosts must serialize calls.
package readline

import "sync"

var (
	stdOnce sync.Once
	std     *Editor
)

// stdEditor returns the process-wide default Editor over stdin/stdout,
// creating it on first use. The package-level functions below delegate to
// it; hosts that need options construct their own Editor with New.
func stdEditor() *Editor {
	stdOnce.Do(func() { std = New() })
	return std
}

// Readline reads one edited line from stdin using the default Editor.
func Readline(prompt string) (line string, quit bool) {
	return stdEditor().Readline(prompt)
}

// SetMultiLine toggles the default Editor between single- and multi-line
// refresh.
func SetMultiLine(on bool) {
	stdEditor().SetMultiLine(on)
}

// SetCompletionCallback installs the TAB completion producer on the default
// Editor.
func SetCompletionCallback(fn CompletionCallback) {
	stdEditor().SetCompletionCallback(fn)
}

// SetHistoryMaxLen bounds the default Editor's history to n entries.
func SetHistoryMaxLen(n int) bool {
	return stdEditor().SetHistoryMaxLen(n)
}

// AddHistory appends a line to the default Editor's history.
func AddHistory(line string) bool {
	return stdEditor().AddHistory(line)
}

// SaveHistory writes the default Editor's history to path.
func SaveHistory(path string) bool {
	return stdEditor().SaveHistory(path)
}

// LoadHistory reads a history file into the default Editor.
func LoadHistory(path string) bool {
	return stdEditor().LoadHistory(path)
}

// History returns a copy of the default Editor's history, oldest first.
func History() []string {
	return stdEditor().History()
}
