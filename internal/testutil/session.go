// Package testutil provides deterministic fixtures for engine and
// harness tests: fixed session tokens and a manually-fired reset
// scheduler. Production code must not import this package.
package testutil

import "sync"

// FixedSessionGenerator returns a predetermined session token.
//
// This enables deterministic test execution and golden trace comparison:
// the same scenario always produces the same step IDs.
//
// Thread-safety: safe for concurrent use via internal mutex.
type FixedSessionGenerator struct {
	mu    sync.Mutex
	token string
	used  int
}

// NewFixedSessionGenerator creates a generator that always returns token.
func NewFixedSessionGenerator(token string) *FixedSessionGenerator {
	return &FixedSessionGenerator{token: token}
}

// Generate returns the fixed token.
func (g *FixedSessionGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.used++
	return g.token
}

// Calls returns how many tokens were handed out.
// Used to verify a test created exactly the sessions it expected.
func (g *FixedSessionGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.used
}
