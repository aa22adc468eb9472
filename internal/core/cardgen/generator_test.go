package cardgen

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cardNumberPattern = regexp.MustCompile(`^5428\d{12}$`)
	cvvPattern        = regexp.MustCompile(`^\d{3}$`)
)

func TestCardNumberFormat(t *testing.T) {
	gen := NewSecureGenerator(DefaultBIN)

	for i := 0; i < 100; i++ {
		number, err := gen.CardNumber()
		require.NoError(t, err)
		assert.Regexp(t, cardNumberPattern, number)
	}
}

func TestCardNumberCustomBIN(t *testing.T) {
	gen := NewSecureGenerator("4213")

	number, err := gen.CardNumber()
	require.NoError(t, err)
	assert.Len(t, number, 16)
	assert.Equal(t, "4213", number[:4])
}

func TestInvalidBINFallsBack(t *testing.T) {
	for _, bin := range []string{"", "12", "12345", "54a8"} {
		gen := NewSecureGenerator(bin)
		number, err := gen.CardNumber()
		require.NoError(t, err)
		assert.Equal(t, DefaultBIN, number[:4], "bin %q", bin)
	}
}

func TestCVVFormat(t *testing.T) {
	gen := NewSecureGenerator(DefaultBIN)

	for i := 0; i < 100; i++ {
		cvv, err := gen.CVV()
		require.NoError(t, err)
		assert.Regexp(t, cvvPattern, cvv)
	}
}

func TestCardNumbersVary(t *testing.T) {
	gen := NewSecureGenerator(DefaultBIN)

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		number, err := gen.CardNumber()
		require.NoError(t, err)
		seen[number] = struct{}{}
	}
	// 50 collisions over a 12-digit space would mean a broken random source
	assert.Greater(t, len(seen), 45)
}
