package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound8(t *testing.T) {
	assert.Equal(t, 0.3, round8(0.1+0.2))
	assert.Equal(t, 0.33333333, round8(1.0/3.0))
	assert.Equal(t, -0.33333333, round8(-1.0/3.0))
	assert.Equal(t, 36.0, round8(36.0))
}

func TestFormatResult(t *testing.T) {
	assert.Equal(t, "36", formatResult(36.0), "integral results carry no decimal point")
	assert.Equal(t, "0.3", formatResult(round8(0.1+0.2)))
	assert.Equal(t, "-7", formatResult(-7.0))
	assert.Equal(t, "0", formatResult(negativeZero()), "negative zero normalizes")
}

// negativeZero builds -0.0 at runtime; the constant expression -0.0
// folds to +0 and would not exercise the normalization.
func negativeZero() float64 {
	z := 0.0
	return -z
}
