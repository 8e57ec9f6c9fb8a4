package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"keypad/internal/key"
)

// Display tokens.
const (
	DisplayZero  = "0"
	DisplayError = "Error"
)

// Calculator holds the complete state of one calculation in flight.
//
// INVARIANTS:
//   - entry contains at most one '.' and at most one leading '-'
//   - op is non-OpNone only while operand is non-empty
//   - only the operations below mutate state; there is no other writer
//
// The zero value is ready to use and equals the post-Clear state.
type Calculator struct {
	entry   string // number being typed, "" when none
	operand string // committed operand, "" when no operation in flight
	op      key.Op // OpNone when no operation in flight
	reset   bool   // next digit starts a fresh entry
}

// New returns a calculator in the initial (cleared) state.
func New() *Calculator {
	return &Calculator{}
}

// Entry returns the in-progress entry string.
func (c *Calculator) Entry() string { return c.entry }

// PendingOperand returns the committed operand, "" when none.
func (c *Calculator) PendingOperand() string { return c.operand }

// PendingOperator returns the pending operator, OpNone when none.
func (c *Calculator) PendingOperator() key.Op { return c.op }

// ResetPending reports whether the next digit starts a fresh entry.
func (c *Calculator) ResetPending() bool { return c.reset }

// Display returns the current display string without mutating state:
// the entry if one is being typed, otherwise the carried operand,
// otherwise "0".
func (c *Calculator) Display() string {
	if c.entry != "" {
		return c.entry
	}
	if c.operand != "" {
		return c.operand
	}
	return DisplayZero
}

// EnterDigit appends digit d ('0'..'9') to the entry.
//
// A set reset flag first discards the old entry. A second leading zero
// is rejected; a non-zero digit replaces a lone "0".
func (c *Calculator) EnterDigit(d byte) string {
	if c.reset {
		c.entry = ""
		c.reset = false
	}

	switch {
	case c.entry == "0" && d == '0':
		// Reject a second leading zero.
	case c.entry == "0":
		c.entry = string(d)
	default:
		c.entry += string(d)
	}

	return c.entry
}

// EnterDecimal appends the decimal point, seeding "0" for an empty
// entry. An entry already holding a '.' is left unchanged.
func (c *Calculator) EnterDecimal() string {
	if c.reset {
		c.entry = DisplayZero
		c.reset = false
	}
	if c.entry == "" {
		c.entry = DisplayZero
	}
	if !strings.Contains(c.entry, ".") {
		c.entry += "."
	}
	return c.entry
}

// ChooseOperator commits the current entry as the pending operand and
// records op as the pending operator.
//
// If an operation is already fully specified it is resolved first, so
// "2 + 3 +" shows 5 before the second '+' takes effect. If the entry is
// empty the carried operand is reused; if there is nothing at all the
// press is ignored.
func (c *Calculator) ChooseOperator(op key.Op) (string, error) {
	if c.entry != "" && c.operand != "" && c.op != key.OpNone {
		if display, err := c.Evaluate(); err != nil {
			return display, err
		}
	}

	if c.entry == "" && c.operand != "" {
		c.entry = c.operand
	}
	if c.entry == "" {
		// Operator pressed with no operand: silent no-op.
		return c.Display(), nil
	}

	c.operand = c.entry
	c.op = op
	c.entry = ""
	c.reset = true

	return c.operand, nil
}

// Evaluate resolves the pending operation.
//
// A no-op unless operand, entry, and operator are all present - pressing
// equals twice in a row does nothing the second time. On divide or
// modulo by zero all state resets and the "Error" token is returned
// together with a DivisionByZeroError; the caller owns the delayed
// display reset.
func (c *Calculator) Evaluate() (string, error) {
	if c.entry == "" && c.operand != "" && c.op != key.OpNone {
		// Equals straight after an operator: carry the operand forward
		// as the entry and resolve to it without computing.
		c.entry = c.operand
		c.operand = ""
		c.op = key.OpNone
		c.reset = true
		return c.entry, nil
	}
	if c.operand == "" || c.entry == "" || c.op == key.OpNone {
		return c.Display(), nil
	}

	lhs, err := strconv.ParseFloat(c.operand, 64)
	if err != nil {
		return c.Display(), fmt.Errorf("parse operand %q: %w", c.operand, err)
	}
	rhs, err := strconv.ParseFloat(c.entry, 64)
	if err != nil {
		return c.Display(), fmt.Errorf("parse entry %q: %w", c.entry, err)
	}

	if (c.op == key.OpDiv || c.op == key.OpMod) && rhs == 0 {
		dzErr := &DivisionByZeroError{Op: c.op, Dividend: c.operand}
		c.Clear()
		return DisplayError, dzErr
	}

	result := apply(c.op, lhs, rhs)

	c.entry = formatResult(round8(result))
	c.operand = ""
	c.op = key.OpNone
	c.reset = true

	return c.entry, nil
}

// Square replaces the entry with its square, using the same rounding
// rule as Evaluate. A no-op on an empty entry.
func (c *Calculator) Square() string {
	if c.entry == "" {
		return c.Display()
	}

	v, err := strconv.ParseFloat(c.entry, 64)
	if err != nil {
		return c.Display()
	}

	c.entry = formatResult(round8(v * v))
	c.reset = true

	return c.entry
}

// ToggleSign toggles a leading '-' on the entry. A no-op on an empty or
// "0" entry.
func (c *Calculator) ToggleSign() string {
	if c.entry == "" || c.entry == DisplayZero {
		return c.Display()
	}

	if strings.HasPrefix(c.entry, "-") {
		c.entry = c.entry[1:]
	} else {
		c.entry = "-" + c.entry
	}

	return c.entry
}

// Clear resets all state to initial values.
func (c *Calculator) Clear() string {
	c.entry = ""
	c.operand = ""
	c.op = key.OpNone
	c.reset = false
	return DisplayZero
}

// Backspace removes the last character of the entry. When that leaves
// nothing (or a bare '-') the entry empties and "0" is displayed. A
// no-op on an empty entry.
func (c *Calculator) Backspace() string {
	if c.entry == "" {
		return c.Display()
	}

	c.entry = c.entry[:len(c.entry)-1]
	if c.entry == "" || c.entry == "-" {
		c.entry = ""
		return DisplayZero
	}

	return c.entry
}

// apply computes lhs op rhs. Zero divisors are rejected before this is
// reached, so every branch is total.
func apply(op key.Op, lhs, rhs float64) float64 {
	switch op {
	case key.OpAdd:
		return lhs + rhs
	case key.OpSub:
		return lhs - rhs
	case key.OpMul:
		return lhs * rhs
	case key.OpDiv:
		return lhs / rhs
	case key.OpMod:
		return math.Mod(lhs, rhs)
	default:
		return rhs
	}
}
