// Package harness provides a conformance testing framework for the
// calculator engine.
//
// A scenario is a YAML file naming a key script and the expected
// outcome. The harness runs each scenario against a real engine backed
// by a fresh in-memory store, then evaluates display and trace
// assertions and optionally compares the full trace against a golden
// file. Fixed session tokens and the logical clock make every run
// byte-identical.
package harness
