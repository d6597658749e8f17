// Package renderer redraws the edited line so the screen matches the edit
// state. It has a single-line algorithm that slides a visible window over
// long lines, and a multi-line algorithm that repaints the full wrapped row
// span. Each refresh is assembled into one buffer and issued as one write to
// minimize tearing.
package renderer

import (
	"bytes"
	"fmt"
	"io"

	"github.com/phoenix-tui/readline/domain/model"
	"github.com/phoenix-tui/readline/domain/service"
)

// Renderer paints an edit state onto an output stream.
type Renderer struct {
	out     io.Writer
	unicode *service.UnicodeService
}

// New creates a Renderer writing to out.
func New(out io.Writer) *Renderer {
	return &Renderer{out: out, unicode: service.NewUnicodeService()}
}

// Refresh redraws the state's own line.
func (r *Renderer) Refresh(st *model.EditState, multiline bool) error {
	return r.refresh(st, multiline, st.Content(), st.Pos())
}

// RefreshOverride redraws with line shown in place of the state's buffer,
// cursor at its end. The completion micro-mode uses it to preview
// candidates; the state's content and cursor are left untouched, while the
// refresh bookkeeping (row span, cursor column) is updated to match what is
// now on screen.
func (r *Renderer) RefreshOverride(st *model.EditState, multiline bool, line string) error {
	return r.refresh(st, multiline, line, len(line))
}

func (r *Renderer) refresh(st *model.EditState, multiline bool, content string, pos int) error {
	if multiline {
		return r.refreshMulti(st, content, pos)
	}
	return r.refreshSingle(st, content, pos)
}

// refreshSingle repaints a line that must fit one terminal row. When prompt
// plus cursor column would pass the right edge, whole grapheme clusters are
// dropped from the front until the cursor fits, then from the back until the
// total width fits.
func (r *Renderer) refreshSingle(st *model.EditState, content string, pos int) error {
	svc := r.unicode
	pcol := st.PromptCols()
	cols := st.Cols()

	// A prompt as wide as the screen leaves no room to slide the window;
	// paint as-is and let the terminal wrap.
	if pcol < cols {
		for pos > 0 && pcol+svc.VisibleWidth(content[:pos]) >= cols {
			g := svc.GraphemeLen(content, 0)
			if g == 0 {
				break
			}
			content = content[g:]
			pos -= g
		}
		for pcol+svc.VisibleWidth(content) > cols {
			g := svc.PrevGraphemeLen(content, len(content))
			if g == 0 {
				break
			}
			content = content[:len(content)-g]
		}
	}

	var ab bytes.Buffer
	ab.WriteString("\r")
	ab.WriteString(st.Prompt())
	ab.WriteString(content)
	ab.WriteString("\x1b[0K")

	if col := pcol + svc.VisibleWidth(content[:pos]); col > 0 {
		fmt.Fprintf(&ab, "\r\x1b[%dC", col)
	} else {
		ab.WriteString("\r")
	}

	_, err := r.out.Write(ab.Bytes())
	return err
}

// refreshMulti repaints the full wrapped row span. It first walks down to
// the bottom row of the previous paint and erases every row on the way back
// up, then writes prompt and buffer, and finally parks the cursor on its
// target row and column.
func (r *Renderer) refreshMulti(st *model.EditState, content string, pos int) error {
	svc := r.unicode
	pcol := st.PromptCols()
	cols := st.Cols()

	colposEnd := svc.WrapColumn(content, len(content), cols, pcol)
	rows := (pcol + colposEnd + cols - 1) / cols
	rpos := (pcol + st.OldColPos() + cols) / cols
	oldRows := st.MaxRows()

	st.SetMaxRows(rows)

	var ab bytes.Buffer

	// Go to the last row of the previous paint, then erase upward.
	if oldRows-rpos > 0 {
		fmt.Fprintf(&ab, "\x1b[%dB", oldRows-rpos)
	}
	for j := 0; j < oldRows-1; j++ {
		ab.WriteString("\r\x1b[0K\x1b[1A")
	}
	ab.WriteString("\r\x1b[0K")

	ab.WriteString(st.Prompt())
	ab.WriteString(content)

	colpos := svc.WrapColumn(content, pos, cols, pcol)

	// Cursor at end-of-line exactly on a column boundary: reserve a fresh
	// row so the cursor has somewhere to sit.
	if pos > 0 && pos == len(content) && (colpos+pcol)%cols == 0 {
		ab.WriteString("\n\r")
		rows++
		st.SetMaxRows(rows)
	}

	rpos2 := (pcol + colpos + cols) / cols
	if rows-rpos2 > 0 {
		fmt.Fprintf(&ab, "\x1b[%dA", rows-rpos2)
	}

	if col := (pcol + colpos) % cols; col > 0 {
		fmt.Fprintf(&ab, "\r\x1b[%dC", col)
	} else {
		ab.WriteString("\r")
	}

	st.SetOldColPos(colpos)

	_, err := r.out.Write(ab.Bytes())
	return err
}
