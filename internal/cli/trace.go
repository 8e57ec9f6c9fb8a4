package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"keypad/internal/key"
	"keypad/internal/store"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Session  string // optional - specific session only
}

// SessionTrace holds the step timeline for one session.
type SessionTrace struct {
	Session string     `json:"session"`
	Steps   []key.Step `json:"steps"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Show recorded step timelines",
		Long: `Show the recorded step timeline for sessions in the database.

Each step lists its seq, kind, value, and the display after the key.
Without --session, every session is shown in first-seen order.

Exit codes:
  0 - Trace displayed
  2 - Command error (database not found, unknown session, etc.)

Examples:
  keypad trace --db ./keypad.db
  keypad trace --db ./keypad.db --session 0190c2f3-...
  keypad trace --db ./keypad.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "show specific session only")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
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

	traces := make([]SessionTrace, 0, len(sessions))
	for _, session := range sessions {
		steps, err := st.ReadSession(ctx, session)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read session %s", session), err)
		}
		if opts.Session != "" && len(steps) == 0 {
			return NewExitError(ExitCommandError, fmt.Sprintf("session not found: %s", opts.Session))
		}
		traces = append(traces, SessionTrace{Session: session, Steps: steps})
	}

	if formatter.Format == "json" {
		return formatter.Success(traces)
	}

	w := formatter.Writer
	if len(traces) == 0 {
		fmt.Fprintln(w, "No sessions found in database.")
		return nil
	}

	for _, trace := range traces {
		fmt.Fprintf(w, "Session %s (%d steps)\n", trace.Session, len(trace.Steps))
		for _, step := range trace.Steps {
			if step.Value != "" {
				fmt.Fprintf(w, "  [%d] %-9s %-3q -> %s\n", step.Seq, step.Kind, step.Value, step.Display)
			} else {
				fmt.Fprintf(w, "  [%d] %-9s     -> %s\n", step.Seq, step.Kind, step.Display)
			}
			formatter.VerboseLog("      id %s", step.ID)
		}
		fmt.Fprintln(w)
	}

	return nil
}
