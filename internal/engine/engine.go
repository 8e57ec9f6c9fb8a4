package engine

import (
	"context"
	"fmt"
	"log/slog"

	"keypad/internal/calc"
	"keypad/internal/key"
	"keypad/internal/store"
)

// Engine is the single-writer calculator event loop.
//
// The engine processes input events in FIFO order, applies them to the
// calculator, appends step records to the trace store, and pushes the
// display to the sink.
//
// CRITICAL: All mutations happen in the caller of Apply - either the
// Run loop goroutine or a synchronous driver (harness, eval). Never mix
// the two for one engine instance.
//
// Thread-safety model:
//   - Enqueue(): safe from any goroutine
//   - Run(): must be called from exactly one goroutine
//   - Apply(): single caller only
type Engine struct {
	calc      *calc.Calculator
	store     *store.Store
	sink      DisplaySink
	clock     *Clock
	queue     *eventQueue
	scheduler ResetScheduler
	session   string
}

// Option configures engine parameters.
type Option func(*Engine)

// WithClock sets the logical clock. Used by replay to resume from a
// specific sequence number.
func WithClock(c *Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}

// WithScheduler sets the reset scheduler that delivers the delayed "0"
// display after an error. Without one, the error display simply stays
// until the next input.
func WithScheduler(s ResetScheduler) Option {
	return func(e *Engine) {
		e.scheduler = s
	}
}

// WithSessionGenerator overrides the session token generator.
// Tests use testutil.FixedSessionGenerator for deterministic traces.
func WithSessionGenerator(g SessionGenerator) Option {
	return func(e *Engine) {
		e.session = g.Generate()
	}
}

// WithSession pins the session token directly instead of generating
// one. Used wherever a trace must land under a caller-chosen token:
// replay, eval --session, and harness scenarios.
func WithSession(token string) Option {
	return func(e *Engine) {
		e.session = token
	}
}

// New creates an Engine writing steps for a fresh session.
//
// The session token is generated once at construction; every step the
// engine writes carries it. Defaults: UUIDv7 session tokens, a clock
// starting at 0, no reset scheduler.
func New(st *store.Store, sink DisplaySink, opts ...Option) *Engine {
	e := &Engine{
		calc:    calc.New(),
		store:   st,
		sink:    sink,
		clock:   NewClock(),
		queue:   newEventQueue(),
		session: UUIDv7Generator{}.Generate(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Session returns the session token stamped on every step.
func (e *Engine) Session() string {
	return e.session
}

// Clock returns the engine's logical clock.
func (e *Engine) Clock() *Clock {
	return e.clock
}

// Display returns the current display string without processing input.
func (e *Engine) Display() string {
	return e.calc.Display()
}

// QueueLen returns the current number of pending events.
// Useful for monitoring and testing.
func (e *Engine) QueueLen() int {
	return e.queue.Len()
}

// Enqueue submits an event for processing by the Run loop.
// Thread-safe: may be called from any goroutine.
//
// Returns false if the engine has been stopped.
func (e *Engine) Enqueue(ev key.Event) bool {
	return e.queue.Enqueue(ev)
}

// Run starts the single-writer event loop.
// Blocks until the context is cancelled or Stop() is called.
//
// ERROR HANDLING: On event processing failure, the error is logged with
// full event context and processing continues. This "log and continue"
// behavior preserves determinism - retries would reorder the trace.
func (e *Engine) Run(ctx context.Context) error {
	slog.Info("engine starting", "session", e.session)

	for {
		event, ok := e.queue.TryDequeue()
		if ok {
			if err := e.Apply(ctx, event); err != nil {
				slog.Error("event processing failed",
					"error", err,
					"kind", event.Kind.String(),
					"value", event.Value(),
					"session", e.session,
				)
			}
			continue
		}

		// No event ready - wait for signal or context cancellation.
		select {
		case <-ctx.Done():
			slog.Info("engine stopping: context cancelled")
			e.queue.Close()
			return ctx.Err()

		case <-e.queue.Wait():
			// A coalesced signal token can outlive the events that
			// produced it, so an empty queue here does not mean
			// shutdown. Run only returns once the queue is closed and
			// fully drained; the signal channel is closed by then, so
			// this case keeps firing until the backlog is gone.
			if e.queue.Closed() && e.queue.Len() == 0 {
				slog.Info("engine stopping: queue closed")
				return nil
			}
		}
	}
}

// Stop gracefully shuts down the engine.
// Closes the event queue, which will cause Run() to return once the
// remaining events are drained.
func (e *Engine) Stop() {
	e.queue.Close()
}

// Apply processes a single event synchronously: dispatch to the
// calculator, append the step, push the display.
//
// Division/modulo by zero is not an error of the engine: the "Error"
// display is recorded and shown, the delayed reset is scheduled, and
// Apply returns nil. Only infrastructure failures (step hashing, store
// writes, unknown event kinds) are returned.
//
// CRITICAL: single caller only - either the Run goroutine or one
// synchronous driver.
func (e *Engine) Apply(ctx context.Context, ev key.Event) error {
	display, opErr := e.dispatch(ev)
	if opErr != nil && !calc.IsDivisionByZero(opErr) {
		return &EventError{Kind: ev.Kind, Err: opErr}
	}

	seq := e.clock.Next()

	step, err := key.NewStep(e.session, ev, display, seq)
	if err != nil {
		return &EventError{Kind: ev.Kind, Seq: seq, Err: err}
	}

	if err := e.store.WriteStep(ctx, step); err != nil {
		return &EventError{Kind: ev.Kind, Seq: seq, Err: err}
	}

	slog.Debug("step written",
		"id", step.ID,
		"kind", step.Kind,
		"value", step.Value,
		"display", step.Display,
		"seq", step.Seq,
	)

	e.sink.Show(display)

	if opErr != nil {
		slog.Warn("calculation error", "error", opErr, "session", e.session, "seq", seq)
		if e.scheduler != nil {
			// The engine is idle when this fires; it may only touch the sink.
			e.scheduler.ScheduleReset(func() {
				e.sink.Show(calc.DisplayZero)
			})
		}
	}

	return nil
}

// dispatch routes an event to the calculator operation.
func (e *Engine) dispatch(ev key.Event) (string, error) {
	switch ev.Kind {
	case key.KindDigit:
		return e.calc.EnterDigit(ev.Digit), nil
	case key.KindDecimal:
		return e.calc.EnterDecimal(), nil
	case key.KindOperator:
		return e.calc.ChooseOperator(ev.Op)
	case key.KindEquals:
		return e.calc.Evaluate()
	case key.KindClear:
		return e.calc.Clear(), nil
	case key.KindBackspace:
		return e.calc.Backspace(), nil
	case key.KindSquare:
		return e.calc.Square(), nil
	case key.KindSign:
		return e.calc.ToggleSign(), nil
	default:
		return "", fmt.Errorf("unknown event kind: %d", ev.Kind)
	}
}
