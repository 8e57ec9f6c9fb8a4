package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"keypad/internal/calc"
	"keypad/internal/engine"
	"keypad/internal/key"
	"keypad/internal/store"
)

// EvalOptions holds flags for the eval command.
type EvalOptions struct {
	*RootOptions
	Database string
	Keymap   string
	Session  string
}

// EvalResult holds the outcome of a one-shot evaluation.
type EvalResult struct {
	Display string     `json:"display"`
	Session string     `json:"session"`
	Steps   []key.Step `json:"steps,omitempty"`
}

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EvalOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "eval <keys>",
		Short: "Evaluate a key script and print the final display",
		Long: `Evaluate a key script in one shot and print the final display.

Keys may be packed ("12*3=") or space-separated ("1 2 * 3 enter").
The step trace is written to the database (in-memory by default).

Exit codes:
  0 - Evaluation succeeded
  1 - Final display is the Error token
  2 - Command error (unbound key, bad keymap, etc.)

Examples:
  keypad eval "12*3="
  keypad eval "7 / 0 =" --db ./keypad.db
  keypad eval "9s" --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", ":memory:", "path to SQLite database")
	cmd.Flags().StringVar(&opts.Keymap, "keymap", "", "path to CUE keymap profile")
	cmd.Flags().StringVar(&opts.Session, "session", "", "fixed session token (default: fresh UUID)")

	return cmd
}

func runEval(opts *EvalOptions, script string, cmd *cobra.Command) error {
	ctx := context.Background()

	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	km, err := loadKeymap(opts.Keymap)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load keymap", err)
	}

	events, err := tokenizeLine(script, km)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to parse key script", err)
	}
	if len(events) == 0 {
		return NewExitError(ExitCommandError, "empty key script")
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var engOpts []engine.Option
	if opts.Session != "" {
		engOpts = append(engOpts, engine.WithSession(opts.Session))
	}

	sink := engine.SinkFunc(func(string) {})
	eng := engine.New(st, sink, engOpts...)

	for _, ev := range events {
		if err := eng.Apply(ctx, ev); err != nil {
			return WrapExitError(ExitCommandError, "failed to apply event", err)
		}
	}

	// Take the final display from the last recorded step, not from the
	// calculator: after a zero divisor the calculator has already reset
	// to "0" while the shown display is still the Error token.
	steps, err := st.ReadSession(ctx, eng.Session())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read trace", err)
	}

	result := EvalResult{
		Display: calc.DisplayZero,
		Session: eng.Session(),
	}
	if len(steps) > 0 {
		result.Display = steps[len(steps)-1].Display
	}
	if opts.Verbose || opts.Format == "json" {
		result.Steps = steps
	}

	if formatter.Format == "json" {
		if result.Display == calc.DisplayError {
			// Error responses still carry the result payload, so the
			// standard formatter helpers do not fit here.
			encoder := json.NewEncoder(formatter.Writer)
			if err := encoder.Encode(CLIResponse{
				Status: "error",
				Data:   result,
				Error:  &CLIError{Code: "E_EVAL", Message: "evaluation produced the Error display"},
			}); err != nil {
				return err
			}
		} else if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		for _, step := range steps {
			if step.Value != "" {
				formatter.VerboseLog("  [%d] %s %q -> %s", step.Seq, step.Kind, step.Value, step.Display)
			} else {
				formatter.VerboseLog("  [%d] %s -> %s", step.Seq, step.Kind, step.Display)
			}
		}
		fmt.Fprintln(formatter.Writer, result.Display)
	}

	if result.Display == calc.DisplayError {
		return NewExitError(ExitFailure, "evaluation produced the Error display")
	}
	return nil
}
