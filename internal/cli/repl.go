package cli

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"keypad/internal/engine"
	"keypad/internal/store"
)

// errorResetDelay is how long the Error display stays before the
// external timer flips it back to "0".
const errorResetDelay = 2 * time.Second

// ReplOptions holds flags for the repl command.
type ReplOptions struct {
	*RootOptions
	Database string
	Keymap   string
}

// NewReplCommand creates the repl command.
func NewReplCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive calculator session",
		Long: `Start the calculator engine and read key scripts from stdin.

Each input line is tokenized against the keymap and fed to the engine;
the display is printed after every key. Type "q" or press Ctrl-D to
quit. After a division or modulo by zero the Error display is shown
and resets to "0" two seconds later.

Examples:
  keypad repl
  keypad repl --db ./keypad.db --verbose
  keypad repl --keymap ./profiles/letters.cue`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", ":memory:", "path to SQLite database")
	cmd.Flags().StringVar(&opts.Keymap, "keymap", "", "path to CUE keymap profile")

	return cmd
}

// timerScheduler delivers the delayed display reset on a real timer.
type timerScheduler struct {
	delay time.Duration
}

func (s timerScheduler) ScheduleReset(fn func()) {
	time.AfterFunc(s.delay, fn)
}

func runRepl(opts *ReplOptions, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if !opts.Verbose {
		logLevel = slog.LevelWarn
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	km, err := loadKeymap(opts.Keymap)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load keymap", err)
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	out := cmd.OutOrStdout()
	sink := engine.SinkFunc(func(display string) {
		fmt.Fprintf(out, "= %s\n", display)
	})

	eng := engine.New(st, sink,
		engine.WithScheduler(timerScheduler{delay: errorResetDelay}),
	)

	// Setup signal handling for graceful shutdown
	parentCtx := cmd.Context()
	if parentCtx == nil {
		parentCtx = context.Background()
	}
	ctx, cancel := context.WithCancel(parentCtx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	runErr := make(chan error, 1)
	go func() {
		runErr <- eng.Run(ctx)
	}()

	fmt.Fprintf(out, "keypad session %s (keymap %s)\n", eng.Session(), km.Name())
	fmt.Fprintln(out, `Type keys ("12*3=" or "1 2 * 3 enter"), "q" to quit.`)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		line := scanner.Text()
		if line == "q" || line == "quit" {
			break
		}

		events, err := tokenizeLine(line, km)
		if err != nil {
			fmt.Fprintf(out, "! %v\n", err)
			continue
		}

		for _, ev := range events {
			if !eng.Enqueue(ev) {
				return NewExitError(ExitFailure, "engine stopped unexpectedly")
			}
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Error("stdin read failed", "error", err)
	}

	eng.Stop()
	if err := <-runErr; err != nil && err != context.Canceled {
		return WrapExitError(ExitFailure, "engine error", err)
	}

	slog.Info("engine stopped gracefully")
	return nil
}
