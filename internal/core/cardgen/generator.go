package cardgen

import (
	"crypto/rand"
	"fmt"
	"strings"
)

const (
	// DefaultBIN is the issuing-bank identifier used as the card number prefix
	DefaultBIN = "5428"

	cardNumberLength = 16
	cvvLength        = 3
)

// Generator produces card credentials. Implementations must not be
// predictable; tests substitute a deterministic stub.
type Generator interface {
	CardNumber() (string, error)
	CVV() (string, error)
}

// SecureGenerator generates credentials from crypto/rand
type SecureGenerator struct {
	bin string
}

// NewSecureGenerator creates a generator with the given BIN prefix.
// An empty or malformed prefix falls back to DefaultBIN.
func NewSecureGenerator(bin string) *SecureGenerator {
	if len(bin) != 4 || !isDigits(bin) {
		bin = DefaultBIN
	}
	return &SecureGenerator{bin: bin}
}

// CardNumber generates a 16-digit card number: BIN prefix + 12 random digits.
// Uniqueness is not checked here; the store's unique index on the card number
// is the collision guard.
func (g *SecureGenerator) CardNumber() (string, error) {
	digits, err := randomDigits(cardNumberLength - len(g.bin))
	if err != nil {
		return "", fmt.Errorf("failed to generate card number: %w", err)
	}
	return g.bin + digits, nil
}

// CVV generates a 3-digit card verification value
func (g *SecureGenerator) CVV() (string, error) {
	digits, err := randomDigits(cvvLength)
	if err != nil {
		return "", fmt.Errorf("failed to generate cvv: %w", err)
	}
	return digits, nil
}

// randomDigits returns n decimal digits from crypto/rand. Bytes >= 250 are
// rejected so the modulo does not bias toward low digits.
func randomDigits(n int) (string, error) {
	var builder strings.Builder
	builder.Grow(n)

	buf := make([]byte, n)
	for builder.Len() < n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= 250 {
				continue
			}
			builder.WriteByte(b%10 + '0')
			if builder.Len() == n {
				break
			}
		}
	}
	return builder.String(), nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
