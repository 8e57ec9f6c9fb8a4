// Package engine implements the keypad input event loop.
//
// The engine receives logical input events (digits, operators, equals,
// clear, backspace, square, sign), applies them to the calculator state
// machine, appends a step record to the trace store, and pushes the
// resulting display string to a sink.
//
// ARCHITECTURE:
//
// Single-Writer Event Loop:
// All events are processed in a single goroutine for deterministic
// behavior. This ensures:
//   - Every operation runs to completion before the next input
//   - Step seq numbers form one gap-free monotonic sequence
//   - Replaying the same key script reproduces the identical trace
//
// Event Processing Flow:
//  1. Events enqueued to FIFO queue (from the CLI reader or a script)
//  2. Engine.Run() dequeues events one at a time
//  3. Apply() routes each event to the calculator operation
//  4. The resulting step is written to the store (single writer)
//  5. The display string is pushed to the sink
//
// The engine holds no timers. On division or modulo by zero the sink
// shows the "Error" token and an injected ResetScheduler is asked to
// deliver the "0" display later; the delay is owned by the adapter
// (a 2s timer in the CLI, a manual trigger in tests), and the engine is
// idle when it fires.
//
// Events are stamped with a monotonic seq counter from Clock.Next(),
// never with wall-clock timestamps.
package engine
