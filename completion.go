package readline

import (
	"github.com/phoenix-tui/readline/domain/value"
	"github.com/phoenix-tui/readline/infrastructure/terminal"
)

// completeLine runs the completion micro-mode after a TAB press. Candidates
// are previewed in place via a render override - the edit buffer itself is
// only touched on accept. TAB cycles through the candidates plus one
// "untouched" slot showing the original line (with a beep on wrapping to
// it); ESC reverts to the original line; any other key accepts the shown
// candidate and is handed back to the main loop for dispatch.
//
// Returns KeyNone when the outer loop should just read the next key.
func (s *session) completeLine() (value.KeyMsg, error) {
	candidates := s.ed.completion(s.st.Content())
	if len(candidates) == 0 {
		terminal.Beep(s.ed.errOut)
		return value.KeyMsg{Type: value.KeyNone}, nil
	}

	i := 0
	for {
		if i < len(candidates) {
			_ = s.rend.RefreshOverride(s.st, s.ed.multiline, candidates[i])
		} else {
			_ = s.rend.Refresh(s.st, s.ed.multiline)
		}

		msg, err := s.keys.ReadChar()
		if err != nil {
			return value.KeyMsg{}, err
		}

		switch msg.Type {
		case value.KeyTab:
			i = (i + 1) % (len(candidates) + 1)
			if i == len(candidates) {
				terminal.Beep(s.ed.errOut)
			}

		case value.KeyEsc:
			if i < len(candidates) {
				_ = s.rend.Refresh(s.st, s.ed.multiline)
			}
			return value.KeyMsg{Type: value.KeyNone}, nil

		default:
			if i < len(candidates) {
				s.st.SetLine(candidates[i])
			}
			return msg, nil
		}
	}
}
