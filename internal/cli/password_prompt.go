package cli

import (
	"errors"
	"io"
	"os"
	"strings"
)

var errPromptUnavailable = errors.New("password prompt unavailable")

// readSecretLine reads up to and excluding the next newline, one byte at a
// time so nothing past the line is consumed from a shared stdin.
func readSecretLine(input io.Reader) ([]byte, error) {
	var line []byte
	buffer := make([]byte, 1)
	for {
		n, err := input.Read(buffer)
		if n == 1 {
			if buffer[0] == '\n' {
				break
			}
			line = append(line, buffer[0])
		}
		if errors.Is(err, io.EOF) {
			if len(line) == 0 {
				return nil, io.ErrUnexpectedEOF
			}
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return []byte(strings.TrimRight(string(line), "\r")), nil
}

func checkPromptInput(stdin *os.File) error {
	if stdin == nil {
		return errPromptUnavailable
	}
	return nil
}
