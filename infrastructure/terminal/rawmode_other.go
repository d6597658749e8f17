//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package terminal

// Platforms without termios get the plain line-read fallback.

func enableRaw(fd int) error { return ErrNotTerminal }

func disableRaw(fd int) {}
