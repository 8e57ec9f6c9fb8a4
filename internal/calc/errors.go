package calc

import (
	"errors"

	"keypad/internal/key"
)

// DivisionByZeroError is the single domain error: a divide or modulo
// with a zero right-hand operand. It is not propagated as a calculation
// result - Evaluate resets all state and emits the "Error" display -
// but callers (the engine) use it to schedule the delayed display reset.
type DivisionByZeroError struct {
	Op       key.Op
	Dividend string
}

// Error implements the error interface.
func (e *DivisionByZeroError) Error() string {
	if e.Op == key.OpMod {
		return "modulo by zero: " + e.Dividend + " % 0"
	}
	return "division by zero: " + e.Dividend + " / 0"
}

// IsDivisionByZero reports whether err is a DivisionByZeroError.
// Uses errors.As to handle wrapped errors.
func IsDivisionByZero(err error) bool {
	var dz *DivisionByZeroError
	return errors.As(err, &dz)
}
