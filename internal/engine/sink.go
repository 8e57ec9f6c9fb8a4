package engine

// DisplaySink receives the display string after every processed event.
// The adapter owns how and where the string is rendered.
type DisplaySink interface {
	Show(display string)
}

// SinkFunc adapts a function to the DisplaySink interface.
type SinkFunc func(display string)

// Show implements DisplaySink.
func (f SinkFunc) Show(display string) { f(display) }

// ResetScheduler delivers the delayed display reset after an error.
//
// The engine asks the scheduler to run fn once, later; the delay is the
// scheduler's concern. The engine is idle when fn fires, so fn only
// touches the sink, never engine state.
type ResetScheduler interface {
	ScheduleReset(fn func())
}

// SchedulerFunc adapts a function to the ResetScheduler interface.
type SchedulerFunc func(fn func())

// ScheduleReset implements ResetScheduler.
func (f SchedulerFunc) ScheduleReset(fn func()) { f(fn) }
