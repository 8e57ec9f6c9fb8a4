package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultSession is the session token used when a scenario does not
// pin one. Fixed so golden files stay stable across runs.
const DefaultSession = "scenario-session"

// Scenario defines a conformance test scenario.
// Scenarios execute a key script against a fresh engine and assert on
// the final display and the recorded step trace.
type Scenario struct {
	// Name uniquely identifies this scenario. Also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Session is an optional fixed session token for deterministic
	// traces. Defaults to DefaultSession.
	Session string `yaml:"session,omitempty"`

	// Keymap is an optional path to a CUE binding profile.
	// Relative paths resolve against the scenario file location.
	// Empty means the builtin default layout.
	Keymap string `yaml:"keymap,omitempty"`

	// Keys is the script of key tokens to feed, in order.
	Keys []string `yaml:"keys"`

	// Expect is shorthand for a display_is assertion on the final display.
	Expect string `yaml:"expect,omitempty"`

	// Assertions validate the final display and the trace.
	// Supported types: display_is, trace_contains, trace_count
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Assertion validates the display or the step trace.
type Assertion struct {
	// Type specifies the assertion type:
	// - "display_is": final display equals Display
	// - "trace_contains": a step with Kind (and Value/Display if set) exists
	// - "trace_count": exactly Count steps of Kind appear
	Type string `yaml:"type"`

	// Kind is the step kind (used by trace_contains, trace_count).
	Kind string `yaml:"kind,omitempty"`

	// Value is the expected step value (used by trace_contains).
	Value string `yaml:"value,omitempty"`

	// Display is the expected display (used by display_is, trace_contains).
	Display string `yaml:"display,omitempty"`

	// Count is the expected number of occurrences (used by trace_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertDisplayIs     = "display_is"
	AssertTraceContains = "trace_contains"
	AssertTraceCount    = "trace_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A relative keymap path is resolved against the scenario file's
// directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Keymap != "" && !filepath.IsAbs(scenario.Keymap) {
		scenario.Keymap = filepath.Join(filepath.Dir(path), scenario.Keymap)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Keys) == 0 {
		return fmt.Errorf("keys list is required and must be non-empty")
	}

	if s.Expect == "" && len(s.Assertions) == 0 {
		return fmt.Errorf("expect or assertions is required")
	}

	if s.Keymap != "" {
		if _, err := os.Stat(s.Keymap); os.IsNotExist(err) {
			return fmt.Errorf("keymap profile not found: %s", s.Keymap)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertDisplayIs:
		if a.Display == "" {
			return fmt.Errorf("assertions[%d]: display is required for display_is", index)
		}
	case AssertTraceContains:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for trace_contains", index)
		}
	case AssertTraceCount:
		if a.Kind == "" {
			return fmt.Errorf("assertions[%d]: kind is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
