// Package store provides SQLite-backed storage for keypad step traces.
//
// The store is an append-only log of step records: one row per processed
// input event, carrying the session token, the logical seq, the event
// kind/value, and the resulting display string.
//
// The log is a conformance and diagnostic artifact. The calculator never
// restores its own state from it - the harness runs against an in-memory
// database, and the repl only writes a file when asked to.
//
// # Critical Patterns
//
// Idempotent writes:
//   - INSERT ... ON CONFLICT(id) DO NOTHING
//   - Step IDs are content-addressed, so re-writing a replayed step is a no-op
//
// Logical time:
//   - All ordering uses seq INTEGER (logical clock), never timestamps
//
// Deterministic reads:
//   - All queries ORDER BY seq ASC, id ASC COLLATE BINARY
//   - Ensures identical results across replays
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package store
