//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import (
	"sync"

	"golang.org/x/sys/unix"
)

var (
	rawMu sync.Mutex

	// origTermios is the pre-raw terminal state, captured exactly once per
	// process on the first EnableRaw. Every restore resets to it.
	origTermios *unix.Termios
)

// enableRaw applies the raw attribute set to fd. golang.org/x/term.MakeRaw
// is not used because it clears OPOST, which this editor keeps on.
func enableRaw(fd int) error {
	rawMu.Lock()
	defer rawMu.Unlock()

	cur, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return ErrNotTerminal
	}
	if origTermios == nil {
		saved := *cur
		origTermios = &saved
	}

	raw := *cur
	// Input: no break signal, no CR-to-NL, no parity check, no 8th-bit
	// strip, no flow control. Output post-processing stays on.
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Cflag |= unix.CS8
	// Local: no echo, no canonical buffering, no extended processing,
	// no signal characters.
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	// read returns every single byte, without timeout.
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0

	return unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw)
}

// disableRaw restores the first-captured terminal state. Idempotent.
func disableRaw(fd int) {
	rawMu.Lock()
	defer rawMu.Unlock()

	if origTermios != nil {
		// Too late to act on failure here.
		_ = unix.IoctlSetTermios(fd, ioctlWriteTermios, origTermios)
	}
}
