package harness

import (
	"fmt"
	"strings"

	"keypad/internal/key"
)

// AssertionError is returned when an assertion fails.
// It includes the full trace to help debug the failure.
type AssertionError struct {
	Type     string     // Assertion type for categorization
	Expected string     // Human-readable expected outcome
	Actual   string     // Human-readable actual outcome
	Trace    []key.Step // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, step := range e.Trace {
		if step.Value != "" {
			fmt.Fprintf(&buf, "  [%d] %s %q -> %s\n", step.Seq, step.Kind, step.Value, step.Display)
		} else {
			fmt.Fprintf(&buf, "  [%d] %s -> %s\n", step.Seq, step.Kind, step.Display)
		}
	}

	return buf.String()
}

// assertDisplayIs checks the final display string.
func assertDisplayIs(result *Result, assertion Assertion) error {
	if result.Display == assertion.Display {
		return nil
	}
	return &AssertionError{
		Type:     AssertDisplayIs,
		Expected: fmt.Sprintf("display %q", assertion.Display),
		Actual:   fmt.Sprintf("display %q", result.Display),
		Trace:    result.Trace,
	}
}

// assertTraceContains checks if the trace contains a step matching the
// assertion's kind and, when set, value and display (subset match).
func assertTraceContains(result *Result, assertion Assertion) error {
	for _, step := range result.Trace {
		if step.Kind != assertion.Kind {
			continue
		}
		if assertion.Value != "" && step.Value != assertion.Value {
			continue
		}
		if assertion.Display != "" && step.Display != assertion.Display {
			continue
		}
		return nil
	}

	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: fmt.Sprintf("step kind=%s value=%q display=%q", assertion.Kind, assertion.Value, assertion.Display),
		Actual:   "not found in trace",
		Trace:    result.Trace,
	}
}

// assertTraceCount checks if steps of the kind appear exactly Count times.
func assertTraceCount(result *Result, assertion Assertion) error {
	count := 0
	for _, step := range result.Trace {
		if step.Kind == assertion.Kind {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d steps of kind %s", assertion.Count, assertion.Kind),
			Actual:   fmt.Sprintf("%d steps", count),
			Trace:    result.Trace,
		}
	}

	return nil
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertDisplayIs:
			err = assertDisplayIs(result, assertion)
		case AssertTraceContains:
			err = assertTraceContains(result, assertion)
		case AssertTraceCount:
			err = assertTraceCount(result, assertion)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
