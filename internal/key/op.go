package key

import "fmt"

// Op identifies an arithmetic operator.
//
// The zero value OpNone means "no operation pending" and is a valid
// calculator state, not an error.
type Op int

const (
	OpNone Op = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

// opGlyphs maps operators to their keypad glyphs.
var opGlyphs = map[Op]string{
	OpAdd: "+",
	OpSub: "-",
	OpMul: "*",
	OpDiv: "/",
	OpMod: "%",
}

// String returns the keypad glyph for the operator.
// OpNone renders as the empty string.
func (o Op) String() string {
	return opGlyphs[o]
}

// ParseOp maps an operator glyph to its Op.
// Returns an error for anything outside "+ - * / %".
func ParseOp(s string) (Op, error) {
	switch s {
	case "+":
		return OpAdd, nil
	case "-":
		return OpSub, nil
	case "*":
		return OpMul, nil
	case "/":
		return OpDiv, nil
	case "%":
		return OpMod, nil
	default:
		return OpNone, fmt.Errorf("unknown operator %q", s)
	}
}
