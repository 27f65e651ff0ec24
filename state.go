package corost

// LoopState represents the current state of a Loop.
//
//	StateAwake     → StateRunning   [Turn begins]
//	StateRunning   → StateAwake     [Turn returns with work still runnable]
//	StateRunning   → StateSleeping  [Turn reports a sleep deadline]
//	StateSleeping  → StateRunning   [caller wakes the loop, next Turn]
//	StateRunning   → StateTerminated [no more ready callbacks or timers]
//
// There is exactly one writer, so this is a plain enum rather than the
// atomic/CAS state machine a multi-goroutine loop would need.
type LoopState uint8

const (
	// StateAwake indicates the loop is not inside a Turn and has not
	// reported a sleep: either Turn has not yet been called, or the last
	// Turn returned with work still runnable.
	StateAwake LoopState = iota
	// StateRunning indicates a Turn is draining the ready queue or firing
	// timers.
	StateRunning
	// StateSleeping indicates the last Turn found nothing ready and reported
	// a deadline for the caller to wait on.
	StateSleeping
	// StateTerminated indicates the loop has nothing left to do: empty
	// ready queue, empty timer heap.
	StateTerminated
)

// String returns a human-readable representation of the state.
func (s LoopState) String() string {
	switch s {
	case StateAwake:
		return "Awake"
	case StateRunning:
		return "Running"
	case StateSleeping:
		return "Sleeping"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}
