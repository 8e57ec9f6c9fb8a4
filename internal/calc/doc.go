// Package calc implements the calculator state machine.
//
// The state machine owns four fields: the entry being typed, the pending
// operand captured when an operator was chosen, the pending operator,
// and a reset flag signaling that the next digit starts a fresh entry.
// Each operation mutates that state and returns the display string.
//
// The core is pure: no globals, no I/O, no clock. Adapters (the engine,
// the CLI, the conformance harness) own rendering and timing. The only
// reportable failure is division or modulo by zero, which resets all
// state and surfaces the fixed "Error" display token; everything else
// that would be malformed input is a silent no-op.
//
// Results are computed in float64 and rounded to 8 decimal digits
// (round(x*10^8)/10^8) to suppress floating-point noise, so 0.1 + 0.2
// displays as "0.3". Modulo follows math.Mod remainder semantics: the
// sign of the result follows the dividend.
package calc
