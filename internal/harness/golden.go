package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"keypad/internal/key"
)

// TraceSnapshot captures the complete trace for a scenario execution.
// All fields use canonical JSON serialization for deterministic comparison.
type TraceSnapshot struct {
	ScenarioName string     `json:"scenario_name"`
	Session      string     `json:"session,omitempty"`
	Trace        []key.Step `json:"trace"`
}

// MarshalGolden serializes the snapshot as canonical JSON, the format
// stored in golden files. The test command reuses it so the CLI and
// goldie comparisons cannot drift apart.
func (s *TraceSnapshot) MarshalGolden() ([]byte, error) {
	return key.MarshalCanonical(s.toCanonicalMap())
}

// toCanonicalMap converts a TraceSnapshot to a map[string]any for
// canonical JSON serialization. Step IDs are recomputable from the
// other fields, so they are left out of the snapshot.
func (s *TraceSnapshot) toCanonicalMap() map[string]any {
	traceList := make([]any, len(s.Trace))
	for i, step := range s.Trace {
		stepMap := map[string]any{
			"kind":    step.Kind,
			"display": step.Display,
			"seq":     step.Seq,
		}
		if step.Value != "" {
			stepMap["value"] = step.Value
		}
		traceList[i] = stepMap
	}

	result := map[string]any{
		"scenario_name": s.ScenarioName,
		"trace":         traceList,
	}
	if s.Session != "" {
		result["session"] = s.Session
	}
	return result
}

// RunWithGolden executes a scenario and compares the trace against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Test failure (via goldie)
// occurs if the trace doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}

	session := scenario.Session
	if session == "" {
		session = DefaultSession
	}

	snapshot := TraceSnapshot{
		ScenarioName: scenario.Name,
		Session:      session,
		Trace:        result.Trace,
	}

	traceJSON, err := snapshot.MarshalGolden()
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, traceJSON)

	return nil
}
