package testutil

import "sync"

// ManualScheduler captures reset callbacks and fires them on demand.
//
// The engine schedules the delayed error-display reset through a
// ResetScheduler; in production that is a timer, in tests this type
// lets the test decide exactly when "later" happens.
//
// Thread-safety: safe for concurrent use via internal mutex.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []func()
}

// NewManualScheduler creates an empty scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// ScheduleReset records fn for a later Fire call.
func (s *ManualScheduler) ScheduleReset(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, fn)
}

// Pending returns the number of callbacks waiting to fire.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Fire runs all pending callbacks in scheduling order and clears them.
func (s *ManualScheduler) Fire() {
	s.mu.Lock()
	fns := s.pending
	s.pending = nil
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
