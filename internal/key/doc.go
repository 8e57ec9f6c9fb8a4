// Package key defines the input event vocabulary for the keypad engine.
//
// This package contains type definitions and serialization helpers only.
// All other internal packages import key; key imports nothing internal.
// This keeps it the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Display values are strings, never floats; canonical JSON rejects
//     floats outright so step IDs stay deterministic
//   - Logical clocks (seq) only, never wall-clock timestamps
//   - All JSON tags use snake_case
package key
