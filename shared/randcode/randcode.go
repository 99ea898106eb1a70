// Package randcode generates short human-readable codes from a fixed alphabet.
package randcode

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

const Alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

var ErrInvalidLength = errors.New("code length must be positive")

// Generator is the seam used by callers that need deterministic codes in tests.
type Generator func(length int) (string, error)

// New draws length characters uniformly from Alphanumeric using crypto/rand.
func New(length int) (string, error) {
	return FromReader(rand.Reader, length)
}

// NewGenerator returns the crypto/rand backed Generator.
func NewGenerator() Generator {
	return New
}

func FromReader(reader io.Reader, length int) (string, error) {
	if length <= 0 {
		return "", ErrInvalidLength
	}

	alphabetSize := big.NewInt(int64(len(Alphanumeric)))
	code := make([]byte, length)

	for i := range code {
		n, err := rand.Int(reader, alphabetSize)
		if err != nil {
			return "", fmt.Errorf("failed to read random source: %w", err)
		}

		code[i] = Alphanumeric[n.Int64()]
	}

	return string(code), nil
}
