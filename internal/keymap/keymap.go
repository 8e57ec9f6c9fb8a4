package keymap

import (
	"fmt"
	"sort"

	"keypad/internal/key"
)

// Action names accepted in CUE binding profiles.
const (
	ActionDigit     = "digit"
	ActionDecimal   = "decimal"
	ActionAdd       = "add"
	ActionSubtract  = "subtract"
	ActionMultiply  = "multiply"
	ActionDivide    = "divide"
	ActionModulo    = "modulo"
	ActionEquals    = "equals"
	ActionClear     = "clear"
	ActionBackspace = "backspace"
	ActionSquare    = "square"
	ActionSign      = "sign"
)

// Binding pairs a key token with the action bound to it.
type Binding struct {
	Token  string
	Action string
}

// Keymap resolves key tokens to input events.
type Keymap struct {
	name     string
	bindings map[string]key.Event
	actions  map[string]string
}

// Name returns the profile name, "default" for the builtin table.
func (m *Keymap) Name() string {
	return m.name
}

// Resolve looks up the event bound to a key token.
func (m *Keymap) Resolve(token string) (key.Event, bool) {
	ev, ok := m.bindings[token]
	return ev, ok
}

// Bindings returns the binding table sorted by token for stable display.
func (m *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(m.actions))
	for token, action := range m.actions {
		out = append(out, Binding{Token: token, Action: action})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Token < out[j].Token })
	return out
}

func (m *Keymap) bind(token string, ev key.Event, action string) {
	m.bindings[token] = ev
	m.actions[token] = action
}

// Default returns the builtin binding table:
// digits and "." as themselves, the five operator glyphs, "=" and
// "enter" for equals, "c" and "esc" for clear, "backspace", "s" for
// square, "n" for sign toggle.
func Default() *Keymap {
	m := &Keymap{
		name:     "default",
		bindings: make(map[string]key.Event),
		actions:  make(map[string]string),
	}

	for d := byte('0'); d <= '9'; d++ {
		m.bind(string(d), key.Digit(d), ActionDigit)
	}
	m.bind(".", key.Decimal(), ActionDecimal)
	m.bind("+", key.Operator(key.OpAdd), ActionAdd)
	m.bind("-", key.Operator(key.OpSub), ActionSubtract)
	m.bind("*", key.Operator(key.OpMul), ActionMultiply)
	m.bind("/", key.Operator(key.OpDiv), ActionDivide)
	m.bind("%", key.Operator(key.OpMod), ActionModulo)
	m.bind("=", key.Equals(), ActionEquals)
	m.bind("enter", key.Equals(), ActionEquals)
	m.bind("c", key.Clear(), ActionClear)
	m.bind("esc", key.Clear(), ActionClear)
	m.bind("backspace", key.Backspace(), ActionBackspace)
	m.bind("s", key.Square(), ActionSquare)
	m.bind("n", key.Sign(), ActionSign)

	return m
}

// eventForAction builds the event an action name denotes.
// The digit action takes its digit from the token itself, so rebinding
// a digit to another token is not supported.
func eventForAction(token, action string) (key.Event, error) {
	switch action {
	case ActionDigit:
		if len(token) != 1 || token[0] < '0' || token[0] > '9' {
			return key.Event{}, fmt.Errorf("digit action requires a single digit token, got %q", token)
		}
		return key.Digit(token[0]), nil
	case ActionDecimal:
		return key.Decimal(), nil
	case ActionAdd:
		return key.Operator(key.OpAdd), nil
	case ActionSubtract:
		return key.Operator(key.OpSub), nil
	case ActionMultiply:
		return key.Operator(key.OpMul), nil
	case ActionDivide:
		return key.Operator(key.OpDiv), nil
	case ActionModulo:
		return key.Operator(key.OpMod), nil
	case ActionEquals:
		return key.Equals(), nil
	case ActionClear:
		return key.Clear(), nil
	case ActionBackspace:
		return key.Backspace(), nil
	case ActionSquare:
		return key.Square(), nil
	case ActionSign:
		return key.Sign(), nil
	default:
		return key.Event{}, fmt.Errorf("unknown action: %q", action)
	}
}
