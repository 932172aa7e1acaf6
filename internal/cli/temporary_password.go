package cli

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// Ambiguous glyphs (0/O, 1/l/I) are left out so the password can be read
// aloud or copied by hand.
const temporaryPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

var errEmptyAlphabet = errors.New("alphabet must not be empty")

func generateTemporaryPassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}
	return randomString(length, temporaryPasswordAlphabet)
}

// randomString draws each character uniformly with crypto/rand.
func randomString(length int, alphabet string) (string, error) {
	if length <= 0 {
		return "", nil
	}
	if alphabet == "" {
		return "", errEmptyAlphabet
	}

	limit := big.NewInt(int64(len(alphabet)))
	value := make([]byte, length)
	for index := range value {
		position, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		value[index] = alphabet[position.Int64()]
	}
	return string(value), nil
}
