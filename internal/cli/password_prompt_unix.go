//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package cli

import (
	"os"

	"golang.org/x/sys/unix"
)

// readPasswordNoEcho turns terminal echo off for one line. Piped input is
// read as is.
func readPasswordNoEcho(stdin *os.File) ([]byte, error) {
	if err := checkPromptInput(stdin); err != nil {
		return nil, err
	}

	fd := int(stdin.Fd())
	original, err := unix.IoctlGetTermios(fd, termiosReadRequest)
	if err != nil {
		return readSecretLine(stdin)
	}
	restore := *original
	silent := restore
	silent.Lflag &^= unix.ECHO

	if err := unix.IoctlSetTermios(fd, termiosWriteRequest, &silent); err != nil {
		return nil, err
	}
	defer func() {
		_ = unix.IoctlSetTermios(fd, termiosWriteRequest, &restore)
	}()

	return readSecretLine(stdin)
}
