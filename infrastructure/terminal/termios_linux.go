//go:build linux

package terminal

import "golang.org/x/sys/unix"

// TCSETSF gives tcsetattr(TCSAFLUSH) semantics: drain output, discard
// pending input, then apply.
const (
	ioctlReadTermios  = unix.TCGETS
	ioctlWriteTermios = unix.TCSETSF
)
