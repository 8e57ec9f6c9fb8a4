package harness

import (
	"context"
	"fmt"

	"keypad/internal/engine"
	"keypad/internal/keymap"
	"keypad/internal/store"
)

// traceSink keeps the latest display for the result.
type traceSink struct {
	display string
}

func (s *traceSink) Show(display string) {
	s.display = display
}

// Run executes a scenario and returns the result.
//
// Each scenario runs against a fresh in-memory database for isolation.
// The fixed session token and the logical clock starting at zero make
// the recorded trace fully reproducible.
//
// Execution flow:
// 1. Create fresh in-memory store and engine
// 2. Resolve each key token through the keymap and apply it
// 3. Read the recorded trace back from the store
// 4. Evaluate expect shorthand and assertions
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	km := keymap.Default()
	if scenario.Keymap != "" {
		km, err = keymap.LoadProfile(scenario.Keymap)
		if err != nil {
			return nil, fmt.Errorf("failed to load keymap profile: %w", err)
		}
	}

	session := scenario.Session
	if session == "" {
		session = DefaultSession
	}

	sink := &traceSink{}
	eng := engine.New(st, sink,
		engine.WithSession(session),
	)

	ctx := context.Background()

	for i, token := range scenario.Keys {
		ev, ok := km.Resolve(token)
		if !ok {
			return nil, fmt.Errorf("keys[%d]: token %q is not bound in keymap %q", i, token, km.Name())
		}
		if err := eng.Apply(ctx, ev); err != nil {
			return nil, fmt.Errorf("keys[%d]: failed to apply %q: %w", i, token, err)
		}
	}

	result := NewResult()
	result.Display = sink.display

	result.Trace, err = st.ReadSession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}

	assertions := scenario.Assertions
	if scenario.Expect != "" {
		assertions = append([]Assertion{{Type: AssertDisplayIs, Display: scenario.Expect}}, assertions...)
	}

	for _, errMsg := range EvaluateAssertions(result, assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}
