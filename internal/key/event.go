package key

import "fmt"

// Kind classifies a logical input event.
//
// These are the six input classes of the calculator state machine plus
// the two retained scientific keys (square and sign toggle). The UI
// adapter is responsible for mapping physical input to these kinds.
type Kind int

const (
	KindDigit Kind = iota + 1
	KindDecimal
	KindOperator
	KindEquals
	KindClear
	KindBackspace
	KindSquare
	KindSign
)

// kindNames are the stable names used in traces and golden files.
var kindNames = map[Kind]string{
	KindDigit:     "digit",
	KindDecimal:   "decimal",
	KindOperator:  "operator",
	KindEquals:    "equals",
	KindClear:     "clear",
	KindBackspace: "backspace",
	KindSquare:    "square",
	KindSign:      "sign",
}

// String returns the stable trace name for the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is a single logical input delivered to the engine.
//
// Digit is set only for KindDigit ('0'..'9'); Op only for KindOperator.
// All other kinds carry no payload.
type Event struct {
	Kind  Kind
	Digit byte
	Op    Op
}

// Digit builds a digit event. d must be '0'..'9'; the keymap layer is
// responsible for only emitting recognized tokens.
func Digit(d byte) Event {
	return Event{Kind: KindDigit, Digit: d}
}

// Decimal builds a decimal-point event.
func Decimal() Event {
	return Event{Kind: KindDecimal}
}

// Operator builds an operator event.
func Operator(op Op) Event {
	return Event{Kind: KindOperator, Op: op}
}

// Equals builds an equals/confirm event.
func Equals() Event {
	return Event{Kind: KindEquals}
}

// Clear builds a clear/escape event.
func Clear() Event {
	return Event{Kind: KindClear}
}

// Backspace builds a backspace event.
func Backspace() Event {
	return Event{Kind: KindBackspace}
}

// Square builds a square (x²) event.
func Square() Event {
	return Event{Kind: KindSquare}
}

// Sign builds a sign-toggle event.
func Sign() Event {
	return Event{Kind: KindSign}
}

// Value returns the event payload as a string: the digit for KindDigit,
// the operator glyph for KindOperator, empty otherwise. Used for trace
// records and step IDs.
func (e Event) Value() string {
	switch e.Kind {
	case KindDigit:
		return string(e.Digit)
	case KindOperator:
		return e.Op.String()
	default:
		return ""
	}
}
