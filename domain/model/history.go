package model

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultHistoryMaxLen is the history bound used when the host never calls
// SetMaxLen.
const DefaultHistoryMaxLen = 100

// History is the bounded, ordered sequence of previously committed lines,
// most recent last.
//
// Invariants:
//   - no two adjacent entries are equal
//   - size never exceeds the configured maximum; the oldest entry is
//     evicted when a new one is added to a full history
//   - entries never contain a newline (they would corrupt the history file)
//
// History is process-wide shared state with no internal locking; hosts that
// call Readline from multiple goroutines must serialize.
type History struct {
	entries []string
	maxLen  int
}

// NewHistory creates an empty history bounded by maxLen entries.
func NewHistory(maxLen int) *History {
	if maxLen < 1 {
		maxLen = DefaultHistoryMaxLen
	}
	return &History{maxLen: maxLen}
}

// SetMaxLen changes the history bound. Returns false for n < 1. When the new
// bound is smaller than the current size, the oldest entries are dropped.
func (h *History) SetMaxLen(n int) bool {
	if n < 1 {
		return false
	}
	h.maxLen = n
	if len(h.entries) > n {
		h.entries = append([]string(nil), h.entries[len(h.entries)-n:]...)
	}
	return true
}

// Add appends a line to the history. The line is rejected when it equals the
// most recent entry or contains a newline. A full history evicts its oldest
// entry first.
func (h *History) Add(line string) bool {
	if h.maxLen == 0 {
		return false
	}
	if strings.ContainsRune(line, '\n') {
		return false
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == line {
		return false
	}

	if len(h.entries) == h.maxLen {
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, line)
	return true
}

// Size returns the number of entries, the live-line sentinel included while
// an edit session is running.
func (h *History) Size() int { return len(h.entries) }

// Entries returns a copy of the history, oldest first.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// PushLive appends the empty sentinel entry that stands for the line being
// edited. Called at session start; Add's dedup check is deliberately skipped
// so a preceding empty commit cannot swallow the sentinel.
func (h *History) PushLive() {
	if len(h.entries) == h.maxLen {
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, "")
}

// PopLive removes the sentinel again. Called when the edit session ends,
// whatever the exit path.
func (h *History) PopLive() {
	if len(h.entries) > 0 {
		h.entries = h.entries[:len(h.entries)-1]
	}
}

// Recall returns the entry stepsBack steps into the past, 0 being the most
// recent (the live slot during a session).
func (h *History) Recall(stepsBack int) (string, bool) {
	i := len(h.entries) - 1 - stepsBack
	if i < 0 || i >= len(h.entries) {
		return "", false
	}
	return h.entries[i], true
}

// Stash overwrites the entry stepsBack steps into the past. History
// navigation uses it to save the edit in progress before showing another
// entry, so scrolling away and back is lossless.
func (h *History) Stash(stepsBack int, line string) {
	i := len(h.entries) - 1 - stepsBack
	if i < 0 || i >= len(h.entries) {
		return
	}
	h.entries[i] = line
}

// Save writes the history to path, one entry per line, oldest first.
// Returns false when the file cannot be written.
func (h *History) Save(path string) bool {
	f, err := os.Create(path)
	if err != nil {
		return false
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, entry := range h.entries {
		if _, err := fmt.Fprintln(w, entry); err != nil {
			return false
		}
	}
	return w.Flush() == nil
}

// Load reads a history file written by Save, feeding every line through Add
// so the usual invariants hold. A missing file returns false without side
// effects.
func (h *History) Load(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		h.Add(sc.Text())
	}
	return sc.Err() == nil
}
