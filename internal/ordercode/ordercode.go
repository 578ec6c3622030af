package ordercode

import (
	"crypto/rand"
	"fmt"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator produces random order codes of the form prefix + Length
// upper-case alphanumeric characters.
type Generator struct {
	Prefix string
	Length int
}

func New(prefix string, length int) *Generator {
	return &Generator{Prefix: prefix, Length: length}
}

func (g *Generator) Generate() (string, error) {
	buf := make([]byte, g.Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return g.Prefix + string(buf), nil
}
