package readline

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rltesting "github.com/phoenix-tui/readline/testing"
)

// runEdit drives one edit session over a keystroke script and returns the
// session outcome plus the captured output.
func runEdit(t *testing.T, e *Editor, prompt string, keys ...string) (string, *rltesting.CaptureWriter, error) {
	t.Helper()

	out := rltesting.NewCaptureWriter()
	line, err := e.edit(rltesting.Script(keys...), out, prompt)
	return line, out, err
}

func newTestEditor(cols int) *Editor {
	e := New(WithColumns(cols))
	e.errOut = io.Discard
	return e
}

func TestEdit_BasicCommit(t *testing.T) {
	e := newTestEditor(80)

	line, _, err := runEdit(t, e, "> ", "hi", rltesting.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, "hi", line)

	e.AddHistory(line)
	hist := e.History()
	assert.Equal(t, "hi", hist[len(hist)-1])
}

func TestEdit_Backspace(t *testing.T) {
	e := newTestEditor(80)

	line, _, err := runEdit(t, e, "> ", "ab", rltesting.KeyBackspace, rltesting.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, "a", line)
}

func TestEdit_HistoryRecall(t *testing.T) {
	e := newTestEditor(80)
	for _, l := range []string{"one", "two", "three"} {
		e.AddHistory(l)
	}

	line, _, err := runEdit(t, e, "> ",
		rltesting.KeyUp, rltesting.KeyUp, rltesting.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, "two", line)
}

// Scrolling N steps up and N steps down restores the line being edited.
func TestEdit_HistoryScrollIdempotent(t *testing.T) {
	e := newTestEditor(80)
	e.AddHistory("one")
	e.AddHistory("two")

	line, _, err := runEdit(t, e, "> ", "xyz",
		rltesting.KeyUp, rltesting.KeyUp, rltesting.KeyDown, rltesting.KeyDown,
		rltesting.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, "xyz", line)
}

func TestEdit_HistoryClampsAtEnds(t *testing.T) {
	e := newTestEditor(80)
	e.AddHistory("only")

	line, _, err := runEdit(t, e, "> ",
		rltesting.KeyUp, rltesting.KeyUp, rltesting.KeyUp, rltesting.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, "only", line, "scrolling past the oldest entry sticks there")
}

func TestEdit_CompletionCycle(t *testing.T) {
	e := newTestEditor(80)
	e.SetCompletionCallback(func(line string) []string {
		if strings.HasPrefix(line, "h") {
			return []string{"hello", "hello there"}
		}
		return nil
	})

	line, _, err := runEdit(t, e, "> ",
		"h", rltesting.KeyTab, rltesting.KeyTab, rltesting.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, "hello there", line)
}

func TestEdit_CompletionEscReverts(t *testing.T) {
	e := newTestEditor(80)
	e.SetCompletionCallback(func(string) []string {
		return []string{"hello"}
	})

	line, _, err := runEdit(t, e, "> ",
		"h", rltesting.KeyTab, rltesting.KeyEsc, "i", rltesting.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, "hi", line)
}

func TestEdit_CompletionNoMatchesBeeps(t *testing.T) {
	e := New(WithColumns(80))
	bell := rltesting.NewCaptureWriter()
	e.errOut = bell
	e.SetCompletionCallback(func(string) []string { return nil })

	line, _, err := runEdit(t, e, "> ", "x", rltesting.KeyTab, rltesting.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, "x", line)
	assert.Equal(t, "\a", bell.String())
}

func TestEdit_CompletionWrapBeepsAndShowsOriginal(t *testing.T) {
	e := New(WithColumns(80))
	bell := rltesting.NewCaptureWriter()
	e.errOut = bell
	e.SetCompletionCallback(func(string) []string {
		return []string{"hello"}
	})

	// TAB TAB cycles candidate then the untouched slot; the key after the
	// wrap edits the original line again.
	line, _, err := runEdit(t, e, "> ",
		"h", rltesting.KeyTab, rltesting.KeyTab, "i", rltesting.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, "hi", line)
	assert.Equal(t, "\a", bell.String())
}

func TestEdit_CtrlCInterrupts(t *testing.T) {
	e := newTestEditor(80)

	line, _, err := runEdit(t, e, "> ", "xy", rltesting.KeyCtrlC)
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Equal(t, "", line)
}

func TestEdit_CtrlDOnEmptyIsEOF(t *testing.T) {
	e := newTestEditor(80)

	_, _, err := runEdit(t, e, "> ", rltesting.KeyCtrlD)
	assert.ErrorIs(t, err, ErrEOF)
}

func TestEdit_CtrlDDeletesWhenNonEmpty(t *testing.T) {
	e := newTestEditor(80)

	line, _, err := runEdit(t, e, "> ",
		"ab", rltesting.KeyCtrlA, rltesting.KeyCtrlD, rltesting.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, "b", line)
}

// Wide-character editing in multi-line mode: the cursor moves and deletes
// whole graphemes, never bytes.
func TestEdit_WideCharCursor(t *testing.T) {
	e := newTestEditor(10)
	e.SetMultiLine(true)

	line, _, err := runEdit(t, e, "> ",
		"あいう", rltesting.KeyLeft, rltesting.KeyBackspace, rltesting.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, "あう", line)
}

func TestEdit_KillOps(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"kill to end", []string{"abcd", rltesting.KeyLeft, rltesting.KeyLeft, rltesting.KeyCtrlK}, "ab"},
		{"kill whole line", []string{"abcd", rltesting.KeyCtrlU}, ""},
		{"delete prev word", []string{"hello world", rltesting.KeyCtrlW}, "hello "},
		{"transpose", []string{"ab", rltesting.KeyLeft, rltesting.KeyCtrlT}, "ba"},
		{"home then delete", []string{"abc", rltesting.KeyHome, rltesting.KeyDelete}, "bc"},
		{"end is a no-op at end", []string{"abc", rltesting.KeyEnd}, "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(80)
			keys := append(append([]string(nil), tt.keys...), rltesting.KeyEnter)
			line, _, err := runEdit(t, e, "> ", keys...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, line)
		})
	}
}

func TestEdit_UnknownSequenceIgnored(t *testing.T) {
	e := newTestEditor(80)

	line, _, err := runEdit(t, e, "> ", "a", "\x1b[5~", "b", rltesting.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, "ab", line)
}

// Input ending without a commit behaves like a read error: the current line
// comes back and the session ends without a quit.
func TestEdit_ReadErrorReturnsCurrentLine(t *testing.T) {
	e := newTestEditor(80)

	line, _, err := runEdit(t, e, "> ", "ab")
	require.NoError(t, err)
	assert.Equal(t, "ab", line)
}

// The live-line sentinel never outlives the session, whatever the exit path.
func TestEdit_SentinelAlwaysRemoved(t *testing.T) {
	scripts := [][]string{
		{"hi", rltesting.KeyEnter},
		{rltesting.KeyCtrlD},
		{"xy", rltesting.KeyCtrlC},
		{"ab"}, // read error
	}

	for _, keys := range scripts {
		e := newTestEditor(80)
		e.AddHistory("seed")

		runEdit(t, e, "> ", keys...)
		assert.Equal(t, []string{"seed"}, e.History(), "script %q", keys)
	}
}

// Appending to a short line in single-line mode writes the bytes through
// instead of repainting the whole line.
func TestEdit_AppendFastPath(t *testing.T) {
	e := newTestEditor(80)

	_, out, err := runEdit(t, e, "> ", "ab", rltesting.KeyEnter)
	require.NoError(t, err)

	writes := out.Writes()
	require.GreaterOrEqual(t, len(writes), 3)
	assert.Equal(t, "> ", string(writes[0]))
	assert.Equal(t, "a", string(writes[1]))
	assert.Equal(t, "b", string(writes[2]))
}

// Once the line outgrows the row, appends fall back to a full refresh.
func TestEdit_AppendFallsBackToRefresh(t *testing.T) {
	e := newTestEditor(6)

	_, out, err := runEdit(t, e, "> ", "abcdef", rltesting.KeyEnter)
	require.NoError(t, err)

	all := out.String()
	assert.Contains(t, all, "\x1b[0K", "long appends must repaint")
}

func TestEdit_TabWithoutCallbackInsertsTab(t *testing.T) {
	e := newTestEditor(80)

	line, _, err := runEdit(t, e, "> ", "a", rltesting.KeyTab, "b", rltesting.KeyEnter)
	require.NoError(t, err)
	assert.Equal(t, "a\tb", line)
}

// Piped input falls back to plain line reads; an exhausted stream must quit
// so host loops terminate.
func TestReadline_PlainFallbackQuitsOnEOF(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()

	_, err = w.WriteString("one\ntwo")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	require.NoError(t, err)
	defer devnull.Close()

	e := New(WithInput(r), WithOutput(devnull))

	line, quit := e.Readline("> ")
	assert.Equal(t, "one", line)
	assert.False(t, quit)

	// The unterminated final line is delivered before the quit.
	line, quit = e.Readline("> ")
	assert.Equal(t, "two", line)
	assert.False(t, quit)

	line, quit = e.Readline("> ")
	assert.Equal(t, "", line)
	assert.True(t, quit)
}

func TestEditorOptions(t *testing.T) {
	e := New(WithColumns(42))
	assert.Equal(t, 42, e.cols)

	assert.False(t, e.SetHistoryMaxLen(0))
	assert.True(t, e.SetHistoryMaxLen(2))
	e.AddHistory("a")
	e.AddHistory("b")
	e.AddHistory("c")
	assert.Equal(t, []string{"b", "c"}, e.History())
}
