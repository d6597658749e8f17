//go:build darwin || freebsd || netbsd || openbsd || dragonfly

package terminal

import "golang.org/x/sys/unix"

// TIOCSETAF gives tcsetattr(TCSAFLUSH) semantics: drain output, discard
// pending input, then apply.
const (
	ioctlReadTermios  = unix.TIOCGETA
	ioctlWriteTermios = unix.TIOCSETAF
)
