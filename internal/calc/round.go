package calc

import (
	"math"
	"strconv"
)

// roundFactor implements the 8-decimal-digit rounding rule:
// round(result * 10^8) / 10^8.
const roundFactor = 1e8

// round8 rounds v to 8 decimal digits to suppress floating-point noise
// (0.1 + 0.2 becomes exactly the nearest float64 to 0.3, not
// 0.30000000000000004).
func round8(v float64) float64 {
	return math.Round(v*roundFactor) / roundFactor
}

// formatResult renders a rounded result as the display string.
// The shortest representation is used, so integral results carry no
// trailing ".0" (36.0 renders "36"). Negative zero normalizes to "0".
func formatResult(v float64) string {
	if v == 0 {
		v = 0 // collapse -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
