// Package idgen produces the short random identifiers given to new slides
// and elements.
//
// Identifiers are drawn uniformly from an alphanumeric alphabet. A single
// draw guarantees nothing about uniqueness; callers that need an identifier
// unused within a collection go through Unique, which redraws on collision.
package idgen

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
)

// Alphabet is the character set identifiers are drawn from.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the identifier length used for slides and elements.
const DefaultLength = 8

// DefaultMaxAttempts bounds the redraws performed by Unique.
const DefaultMaxAttempts = 10

var (
	// ErrInvalidLength is returned when a non-positive length is requested.
	ErrInvalidLength = errors.New("identifier length must be positive")

	// ErrExhausted is returned when every draw collided with an existing id.
	ErrExhausted = errors.New("could not draw an unused identifier")
)

// Generator draws identifiers from an entropy source.
type Generator struct {
	rand io.Reader
}

// New returns a Generator reading from crypto/rand.
func New() *Generator {
	return &Generator{rand: rand.Reader}
}

// NewWithReader returns a Generator reading from r. Tests use it to make
// draws deterministic.
func NewWithReader(r io.Reader) *Generator {
	return &Generator{rand: r}
}

// Generate returns length characters drawn uniformly from Alphabet.
func (g *Generator) Generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidLength, length)
	}

	max := big.NewInt(int64(len(Alphabet)))
	buf := make([]byte, length)
	for i := range buf {
		n, err := rand.Int(g.rand, max)
		if err != nil {
			return "", fmt.Errorf("failed to read entropy: %w", err)
		}
		buf[i] = Alphabet[n.Int64()]
	}
	return string(buf), nil
}

// Unique draws identifiers until one is not reported by exists, giving up
// after maxAttempts draws. A non-positive maxAttempts means DefaultMaxAttempts.
func (g *Generator) Unique(length, maxAttempts int, exists func(string) bool) (string, error) {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	for attempt := 0; attempt < maxAttempts; attempt++ {
		id, err := g.Generate(length)
		if err != nil {
			return "", err
		}
		if exists == nil || !exists(id) {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w after %d attempts", ErrExhausted, maxAttempts)
}
