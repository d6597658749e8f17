package readline

import (
	"io"

	"github.com/phoenix-tui/readline/domain/model"
	"github.com/phoenix-tui/readline/domain/value"
	"github.com/phoenix-tui/readline/infrastructure/input"
	"github.com/phoenix-tui/readline/infrastructure/renderer"
	"github.com/phoenix-tui/readline/infrastructure/terminal"
)

// History navigation directions.
const (
	historyPrev = 1  // older
	historyNext = -1 // newer
)

// session is the state of one running edit loop: the edit buffer, the key
// reader and the renderer over the editor's streams.
type session struct {
	ed   *Editor
	st   *model.EditState
	keys *input.Reader
	rend *renderer.Renderer
	out  io.Writer
}

// edit runs the line-editing loop over in/out. The caller has already put
// the terminal into raw mode when there is one; the loop itself only sees
// byte streams, which is also how tests drive it.
//
// Returns the committed line, or "" with ErrInterrupted (Ctrl-C) or ErrEOF
// (Ctrl-D on empty). A read error ends the session as if the line had been
// committed. Refresh write errors are tolerated: the screen may smear, but
// the state stays consistent.
func (e *Editor) edit(in io.Reader, out io.Writer, prompt string) (string, error) {
	cols := e.cols
	if cols <= 0 {
		cols = e.term.Columns()
	}
	if cols <= 0 {
		cols = 80
	}

	s := &session{
		ed:   e,
		st:   model.NewEditState(prompt, cols),
		keys: input.NewReader(in),
		rend: renderer.New(out),
		out:  out,
	}

	// The most recent history entry is the line being edited, initially
	// empty. It is removed again on every exit path.
	e.history.PushLive()
	defer e.history.PopLive()

	io.WriteString(out, prompt)

	for {
		msg, err := s.keys.ReadKey()
		if err != nil {
			return s.st.Content(), nil
		}

		if msg.Type == value.KeyTab && e.completion != nil {
			msg, err = s.completeLine()
			if err != nil {
				return s.st.Content(), nil
			}
		}

		switch msg.Type {
		case value.KeyEnter:
			if e.multiline && s.st.MoveEnd() {
				s.refresh()
			}
			return s.st.Content(), nil

		case value.KeyBackspace:
			if s.st.Backspace() {
				s.refresh()
			}

		case value.KeyDelete:
			if s.st.Delete() {
				s.refresh()
			}

		case value.KeyUp:
			s.historyMove(historyPrev)

		case value.KeyDown:
			s.historyMove(historyNext)

		case value.KeyLeft:
			if s.st.MoveLeft() {
				s.refresh()
			}

		case value.KeyRight:
			if s.st.MoveRight() {
				s.refresh()
			}

		case value.KeyHome:
			if s.st.MoveHome() {
				s.refresh()
			}

		case value.KeyEnd:
			if s.st.MoveEnd() {
				s.refresh()
			}

		case value.KeyTab:
			// No completion callback installed.
			s.insert("\t")

		case value.KeyRune:
			if msg.Ctrl {
				if done, err := s.dispatchCtrl(msg.Rune); done {
					return "", err
				}
			} else {
				s.insert(string(msg.Rune))
			}
		}
	}
}

// dispatchCtrl handles a Ctrl combination. done is true when the session
// ends; err then carries the outcome.
func (s *session) dispatchCtrl(r rune) (done bool, err error) {
	switch r {
	case 'c':
		return true, ErrInterrupted

	case 'd':
		// Delete right, or end-of-file on an empty line.
		if s.st.Len() == 0 {
			return true, ErrEOF
		}
		if s.st.Delete() {
			s.refresh()
		}

	case 'a':
		if s.st.MoveHome() {
			s.refresh()
		}
	case 'b':
		if s.st.MoveLeft() {
			s.refresh()
		}
	case 'e':
		if s.st.MoveEnd() {
			s.refresh()
		}
	case 'f':
		if s.st.MoveRight() {
			s.refresh()
		}

	case 'k':
		s.st.KillToEnd()
		s.refresh()
	case 'u':
		s.st.KillLine()
		s.refresh()
	case 'w':
		s.st.DeletePrevWord()
		s.refresh()

	case 't':
		if s.st.Transpose() {
			s.refresh()
		}

	case 'p':
		s.historyMove(historyPrev)
	case 'n':
		s.historyMove(historyNext)

	case 'l':
		terminal.Clear(s.out)
		s.refresh()
	}
	return false, nil
}

// insert splices seq at the cursor. Appending to a line that still fits one
// row in single-line mode skips the refresh and writes the bytes through.
func (s *session) insert(seq string) {
	ok, appended := s.st.Insert(seq)
	if !ok {
		return
	}
	if appended && !s.ed.multiline &&
		s.st.PromptCols()+s.st.Unicode().VisibleWidth(s.st.Content()) < s.st.Cols() {
		io.WriteString(s.out, seq)
		return
	}
	s.refresh()
}

// historyMove recalls the entry dir steps away. The edit in progress is
// stashed into its history slot first, so scrolling away and back restores
// it. When the move clamps at either end nothing is repainted.
func (s *session) historyMove(dir int) {
	h := s.ed.history
	if h.Size() <= 1 {
		return
	}

	h.Stash(s.st.HistoryIndex(), s.st.Content())

	idx := s.st.HistoryIndex() + dir
	if idx < 0 {
		s.st.SetHistoryIndex(0)
		return
	}
	if idx >= h.Size() {
		s.st.SetHistoryIndex(h.Size() - 1)
		return
	}

	s.st.SetHistoryIndex(idx)
	line, _ := h.Recall(idx)
	s.st.SetLine(line)
	s.refresh()
}

func (s *session) refresh() {
	// Write errors are tolerated; state stays consistent.
	_ = s.rend.Refresh(s.st, s.ed.multiline)
}
