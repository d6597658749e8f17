// Package model contains the domain models of the line editor: the edit
// state for one Readline session and the process-wide history.
package model

import (
	"github.com/phoenix-tui/readline/domain/service"
)

// MaxLineLen bounds the length of an edited line in bytes: a line always
// stays shorter than MaxLineLen, and input that would make it reach that
// length is dropped.
const MaxLineLen = 4096

// EditState is the state of one in-progress line edit. It lives for the
// duration of a single Readline call.
//
// Invariants, maintained by every primitive:
//   - content is valid UTF-8 and len(content) < MaxLineLen
//   - 0 <= pos <= len(content) and pos lies on a grapheme cluster boundary
//
// The refresh bookkeeping fields (oldColPos, maxRows) belong to the renderer;
// it reads and updates them across refreshes so it knows how many rows to
// clear and where the cursor was left.
type EditState struct {
	content      string
	pos          int
	prompt       string
	promptCols   int
	cols         int
	maxRows      int
	oldColPos    int
	historyIndex int
	unicode      *service.UnicodeService
}

// NewEditState creates the state for a fresh edit session with an empty
// buffer. cols is the terminal width sampled at session start; the prompt's
// display width is computed once, with ANSI color escapes excluded.
func NewEditState(prompt string, cols int) *EditState {
	svc := service.NewUnicodeService()
	return &EditState{
		prompt:     prompt,
		promptCols: svc.VisibleWidth(prompt),
		cols:       cols,
		unicode:    svc,
	}
}

// Content returns the edited line.
func (s *EditState) Content() string { return s.content }

// Len returns the length of the edited line in bytes.
func (s *EditState) Len() int { return len(s.content) }

// Pos returns the cursor byte offset within the line.
func (s *EditState) Pos() int { return s.pos }

// Prompt returns the prompt string, color escapes included.
func (s *EditState) Prompt() string { return s.prompt }

// PromptCols returns the display width of the prompt in columns.
func (s *EditState) PromptCols() int { return s.promptCols }

// Cols returns the terminal width sampled at session start.
func (s *EditState) Cols() int { return s.cols }

// MaxRows returns the largest row span this session has occupied so far.
func (s *EditState) MaxRows() int { return s.maxRows }

// SetMaxRows records a new largest row span. Monotone non-decreasing.
func (s *EditState) SetMaxRows(rows int) {
	if rows > s.maxRows {
		s.maxRows = rows
	}
}

// OldColPos returns the display column the cursor occupied after the last
// refresh.
func (s *EditState) OldColPos() int { return s.oldColPos }

// SetOldColPos records the cursor column after a refresh.
func (s *EditState) SetOldColPos(col int) { s.oldColPos = col }

// HistoryIndex returns how many steps back into history the session is
// currently showing. 0 is the live line.
func (s *EditState) HistoryIndex() int { return s.historyIndex }

// SetHistoryIndex updates the history position.
func (s *EditState) SetHistoryIndex(i int) { s.historyIndex = i }

// Unicode returns the service used for width and grapheme computation.
func (s *EditState) Unicode() *service.UnicodeService { return s.unicode }

// Insert splices seq (one UTF-8 encoded character or cluster) at the cursor.
// ok is false when the line is full and the input was dropped. appended is
// true when the splice was a plain append at the end of the line, which the
// session may render with a write-through instead of a full refresh.
func (s *EditState) Insert(seq string) (ok, appended bool) {
	if len(s.content)+len(seq) >= MaxLineLen {
		return false, false
	}

	appended = s.pos == len(s.content)
	s.content = s.content[:s.pos] + seq + s.content[s.pos:]
	s.pos += len(seq)
	return true, appended
}

// MoveLeft moves the cursor one grapheme cluster left.
// Reports whether the cursor moved.
func (s *EditState) MoveLeft() bool {
	g := s.unicode.PrevGraphemeLen(s.content, s.pos)
	if g == 0 {
		return false
	}
	s.pos -= g
	return true
}

// MoveRight moves the cursor one grapheme cluster right.
// Reports whether the cursor moved.
func (s *EditState) MoveRight() bool {
	g := s.unicode.GraphemeLen(s.content, s.pos)
	if g == 0 {
		return false
	}
	s.pos += g
	return true
}

// MoveHome moves the cursor to the start of the line.
// Reports whether the cursor moved.
func (s *EditState) MoveHome() bool {
	if s.pos == 0 {
		return false
	}
	s.pos = 0
	return true
}

// MoveEnd moves the cursor to the end of the line.
// Reports whether the cursor moved.
func (s *EditState) MoveEnd() bool {
	if s.pos == len(s.content) {
		return false
	}
	s.pos = len(s.content)
	return true
}

// Backspace removes the grapheme cluster ending at the cursor.
// Reports whether the line changed.
func (s *EditState) Backspace() bool {
	g := s.unicode.PrevGraphemeLen(s.content, s.pos)
	if g == 0 {
		return false
	}
	s.content = s.content[:s.pos-g] + s.content[s.pos:]
	s.pos -= g
	return true
}

// Delete removes the grapheme cluster at the cursor without moving it.
// Reports whether the line changed.
func (s *EditState) Delete() bool {
	g := s.unicode.GraphemeLen(s.content, s.pos)
	if g == 0 {
		return false
	}
	s.content = s.content[:s.pos] + s.content[s.pos+g:]
	return true
}

// Transpose swaps the grapheme cluster before the cursor with the one at the
// cursor, then advances past the pair unless the cursor was already on the
// last cluster. Whole clusters are swapped, so the line stays valid UTF-8
// even across multi-byte and combining sequences.
// Reports whether the line changed.
func (s *EditState) Transpose() bool {
	if s.pos == 0 || s.pos == len(s.content) {
		return false
	}

	a := s.unicode.PrevGraphemeLen(s.content, s.pos)
	b := s.unicode.GraphemeLen(s.content, s.pos)
	start := s.pos - a
	s.content = s.content[:start] +
		s.content[s.pos:s.pos+b] +
		s.content[start:s.pos] +
		s.content[s.pos+b:]

	// Land between the swapped pair, then step past it unless the swapped
	// cluster was the last one on the line.
	s.pos = start + b
	if s.pos+a < len(s.content) {
		s.pos += a
	}
	return true
}

// KillToEnd truncates the line at the cursor.
func (s *EditState) KillToEnd() {
	s.content = s.content[:s.pos]
}

// KillLine empties the line and homes the cursor.
func (s *EditState) KillLine() {
	s.content = ""
	s.pos = 0
}

// DeletePrevWord removes the word before the cursor: trailing spaces first,
// then the run of non-spaces, leaving the cursor where the word began.
func (s *EditState) DeletePrevWord() {
	old := s.pos
	for s.pos > 0 && s.content[s.pos-1] == ' ' {
		s.pos--
	}
	for s.pos > 0 && s.content[s.pos-1] != ' ' {
		s.pos--
	}
	s.content = s.content[:s.pos] + s.content[old:]
}

// SetLine replaces the whole line and puts the cursor at its end. Lines
// longer than the buffer limit are cut at the last cluster boundary that
// fits. Used by history recall and completion accept.
func (s *EditState) SetLine(line string) {
	if len(line) >= MaxLineLen {
		cut := 0
		for off := 0; off < len(line); {
			g := s.unicode.GraphemeLen(line, off)
			if g == 0 || off+g >= MaxLineLen {
				break
			}
			off += g
			cut = off
		}
		line = line[:cut]
	}
	s.content = line
	s.pos = len(line)
}
