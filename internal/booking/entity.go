package booking

// State is the single tagged state of the booking workflow. Exactly one value
// holds at a time, so combinations like "loading with no selection" cannot be
// expressed.
type State string

const (
	// StateIdle: no hostel selected.
	StateIdle State = "idle"
	// StateSelected: a hostel is chosen and the detail view is open.
	StateSelected State = "selected"
	// StateConfirming: the simulated-latency confirmation is in flight;
	// no other booking action may start.
	StateConfirming State = "confirming"
	// StateConfirmed: a reference has been issued.
	StateConfirmed State = "confirmed"
)
