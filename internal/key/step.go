package key

// Step is the trace record for one processed input event.
//
// Steps form an append-only log. The ID is content-addressed over
// (session, kind, value, display, seq) so replaying the same key script
// under the same clock yields byte-identical records.
type Step struct {
	ID      string `json:"id"`
	Session string `json:"session"`
	Kind    string `json:"kind"`
	Value   string `json:"value,omitempty"`
	Display string `json:"display"`
	Seq     int64  `json:"seq"`
}

// NewStep builds a Step for an event with its computed ID.
func NewStep(session string, ev Event, display string, seq int64) (Step, error) {
	id, err := StepID(session, ev.Kind.String(), ev.Value(), display, seq)
	if err != nil {
		return Step{}, err
	}
	return Step{
		ID:      id,
		Session: session,
		Kind:    ev.Kind.String(),
		Value:   ev.Value(),
		Display: display,
		Seq:     seq,
	}, nil
}
