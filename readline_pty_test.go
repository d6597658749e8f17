//go:build linux || darwin

package readline_test

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"

	"github.com/phoenix-tui/readline"
)

// ptyOutput relays everything the editor writes to the pty master into a
// channel, so the test can wait for the prompt before typing. Raw mode is
// entered with a flush of pending input; typing before the prompt appears
// would be discarded.
func ptyOutput(ptmx *os.File) <-chan []byte {
	ch := make(chan []byte, 64)
	go func() {
		defer close(ch)
		buf := make([]byte, 256)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				ch <- append([]byte(nil), buf[:n]...)
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

func waitFor(t *testing.T, ch <-chan []byte, substr string) {
	t.Helper()

	var seen []byte
	deadline := time.After(5 * time.Second)
	for {
		select {
		case chunk, ok := <-ch:
			if !ok {
				t.Fatalf("output closed before %q appeared; got %q", substr, seen)
			}
			seen = append(seen, chunk...)
			if bytes.Contains(seen, []byte(substr)) {
				return
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q; got %q", substr, seen)
		}
	}
}

// Full stack over a real pseudo-terminal: raw mode on, keystrokes in,
// edited line out, terminal restored.
func TestReadlineOverPTY(t *testing.T) {
	t.Setenv("TERM", "xterm-256color")

	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer ptmx.Close()
	defer tty.Close()
	require.NoError(t, pty.Setsize(ptmx, &pty.Winsize{Rows: 24, Cols: 80}))

	output := ptyOutput(ptmx)
	rl := readline.New(readline.WithInput(tty), readline.WithOutput(tty))

	type result struct {
		line string
		quit bool
	}
	results := make(chan result, 1)

	go func() {
		line, quit := rl.Readline("pty> ")
		results <- result{line, quit}
	}()

	waitFor(t, output, "pty> ")
	_, err = ptmx.Write([]byte("hi\r"))
	require.NoError(t, err)

	select {
	case res := <-results:
		require.False(t, res.quit)
		require.Equal(t, "hi", res.line)
	case <-time.After(5 * time.Second):
		t.Fatal("Readline did not return")
	}

	// Ctrl-C arrives as byte 0x03 in raw mode and quits the session.
	go func() {
		line, quit := rl.Readline("pty> ")
		results <- result{line, quit}
	}()

	waitFor(t, output, "pty> ")
	_, err = ptmx.Write([]byte("boom\x03"))
	require.NoError(t, err)

	select {
	case res := <-results:
		require.True(t, res.quit)
		require.Empty(t, res.line)
	case <-time.After(5 * time.Second):
		t.Fatal("Readline did not return on Ctrl-C")
	}
}
