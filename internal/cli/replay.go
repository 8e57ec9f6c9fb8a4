package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"keypad/internal/engine"
	"keypad/internal/key"
	"keypad/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Session  string // optional - specific session only
}

// ReplaySessionResult holds the replay result for a single session.
type ReplaySessionResult struct {
	Session       string `json:"session"`
	Steps         int    `json:"steps"`
	Deterministic bool   `json:"deterministic"`
	Mismatch      string `json:"mismatch,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Sessions         []ReplaySessionResult `json:"sessions"`
	TotalSessions    int                   `json:"total_sessions"`
	AllDeterministic bool                  `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay recorded sessions and verify determinism",
		Long: `Replay recorded key scripts and verify deterministic behavior.

For every session the recorded events are fed to a fresh engine and the
resulting steps are compared against the recorded ones. Content-addressed
step IDs make the comparison exact: any divergence in display, value, or
ordering changes the ID.

Exit codes:
  0 - All sessions replayed deterministically
  1 - Determinism verification failed (differences detected)
  2 - Command error (database not found, etc.)

Examples:
  keypad replay --db ./keypad.db
  keypad replay --db ./keypad.db --session 0190c2f3-...
  keypad replay --db ./keypad.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "replay specific session only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var sessions []string
	if opts.Session != "" {
		sessions = []string{opts.Session}
	} else {
		sessions, err = st.ListSessions(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
	}

	if len(sessions) == 0 {
		if formatter.Format == "json" {
			return outputReplayJSON(formatter, ReplayResult{
				Sessions:         []ReplaySessionResult{},
				TotalSessions:    0,
				AllDeterministic: true,
			})
		}
		fmt.Fprintln(formatter.Writer, "No sessions found in database.")
		return nil
	}

	result := ReplayResult{
		Sessions:         make([]ReplaySessionResult, 0, len(sessions)),
		TotalSessions:    len(sessions),
		AllDeterministic: true,
	}

	for _, session := range sessions {
		formatter.VerboseLog("Replaying session: %s", session)

		sessionResult, err := replaySession(ctx, st, session)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay session %s", session), err)
		}

		result.Sessions = append(result.Sessions, sessionResult)
		if !sessionResult.Deterministic {
			result.AllDeterministic = false
		}
	}

	if formatter.Format == "json" {
		return outputReplayJSON(formatter, result)
	}

	return outputReplayText(formatter, result)
}

// replaySession feeds a session's recorded events to a fresh engine and
// compares the produced steps against the recorded ones.
func replaySession(ctx context.Context, st *store.Store, session string) (ReplaySessionResult, error) {
	recorded, err := st.ReadSession(ctx, session)
	if err != nil {
		return ReplaySessionResult{}, err
	}

	result := ReplaySessionResult{
		Session:       session,
		Steps:         len(recorded),
		Deterministic: true,
	}
	if len(recorded) == 0 {
		return result, nil
	}

	// Fresh in-memory engine pinned to the recorded session and the seq
	// the trace starts at. Identical inputs must yield identical IDs.
	scratch, err := store.Open(":memory:")
	if err != nil {
		return ReplaySessionResult{}, err
	}
	defer scratch.Close()

	eng := engine.New(scratch, engine.SinkFunc(func(string) {}),
		engine.WithSession(session),
		engine.WithClock(engine.NewClockAt(recorded[0].Seq-1)),
	)

	for i, step := range recorded {
		ev, err := eventFromStep(step)
		if err != nil {
			result.Deterministic = false
			result.Mismatch = fmt.Sprintf("step %d: %v", i, err)
			return result, nil
		}
		if err := eng.Apply(ctx, ev); err != nil {
			return ReplaySessionResult{}, err
		}
	}

	replayed, err := scratch.ReadSession(ctx, session)
	if err != nil {
		return ReplaySessionResult{}, err
	}

	if len(replayed) != len(recorded) {
		result.Deterministic = false
		result.Mismatch = fmt.Sprintf("step count: recorded %d, replayed %d", len(recorded), len(replayed))
		return result, nil
	}

	for i := range recorded {
		if recorded[i].ID != replayed[i].ID {
			result.Deterministic = false
			result.Mismatch = fmt.Sprintf(
				"step %d: recorded display %q, replayed %q", i, recorded[i].Display, replayed[i].Display)
			return result, nil
		}
	}

	return result, nil
}

// eventFromStep reconstructs the input event a step was recorded for.
func eventFromStep(step key.Step) (key.Event, error) {
	switch step.Kind {
	case "digit":
		if len(step.Value) != 1 {
			return key.Event{}, fmt.Errorf("digit step with value %q", step.Value)
		}
		return key.Digit(step.Value[0]), nil
	case "decimal":
		return key.Decimal(), nil
	case "operator":
		op, err := key.ParseOp(step.Value)
		if err != nil {
			return key.Event{}, err
		}
		return key.Operator(op), nil
	case "equals":
		return key.Equals(), nil
	case "clear":
		return key.Clear(), nil
	case "backspace":
		return key.Backspace(), nil
	case "square":
		return key.Square(), nil
	case "sign":
		return key.Sign(), nil
	default:
		return key.Event{}, fmt.Errorf("unknown step kind %q", step.Kind)
	}
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(formatter *OutputFormatter, result ReplayResult) error {
	if result.AllDeterministic {
		return formatter.Success(result)
	}

	// Failure responses carry the per-session results alongside the
	// error, so they are encoded directly.
	encoder := json.NewEncoder(formatter.Writer)
	if err := encoder.Encode(CLIResponse{
		Status: "error",
		Data:   result,
		Error: &CLIError{
			Code:    "E_DETERMINISM",
			Message: "determinism verification failed",
		},
	}); err != nil {
		return err
	}

	return NewExitError(ExitFailure, "determinism verification failed")
}

// outputReplayText outputs the replay result as text.
func outputReplayText(formatter *OutputFormatter, result ReplayResult) error {
	w := formatter.Writer

	fmt.Fprintf(w, "Replay Summary: %d session(s)\n", result.TotalSessions)
	fmt.Fprintln(w)

	for _, session := range result.Sessions {
		status := "✓"
		if !session.Deterministic {
			status = "✗"
		}

		fmt.Fprintf(w, "%s Session: %s\n", status, session.Session)
		fmt.Fprintf(w, "  Steps: %d\n", session.Steps)

		if !session.Deterministic {
			fmt.Fprintf(w, "  Mismatch: %s\n", session.Mismatch)
		}
		fmt.Fprintln(w)
	}

	if result.AllDeterministic {
		fmt.Fprintln(w, "✓ All sessions verified deterministic")
		return nil
	}

	fmt.Fprintln(w, "✗ Determinism verification failed")
	return NewExitError(ExitFailure, "determinism verification failed")
}
