//go:build linux

package cli

import "golang.org/x/sys/unix"

// Terminal attribute ioctls for toggling echo around password entry.
const (
	termiosReadRequest  = unix.TCGETS
	termiosWriteRequest = unix.TCSETS
)
