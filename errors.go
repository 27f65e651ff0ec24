package corost

import "errors"

// Sentinel errors for the handful of contract violations this package
// detects cheaply. Other programmer errors (double entering an awaiter,
// using a context after its chain root completed, and so on) are left
// undetected: they are undefined behaviour, not worth a runtime check on
// every hot path.
var (
	// ErrRunReentrant is the panic value when Turn is called again, on the
	// same goroutine, while an outer Turn on the same Loop is still
	// draining its ready queue — a ready callback (or anything it calls)
	// invoking Run/Turn on the Loop it is itself running on, a
	// single-writer violation.
	ErrRunReentrant = errors.New("corost: run is already driving a loop")

	// ErrWaitAllEmpty is returned by WaitAll when given no tasks.
	ErrWaitAllEmpty = errors.New("corost: wait_all requires at least one task")

	// ErrWaitAnyEmpty is returned by WaitAny when given no tasks.
	ErrWaitAnyEmpty = errors.New("corost: wait_any requires at least one task")
)

// errAlreadyConsumed is the panic value used when GetWork is called a
// second time on the same Task, violating the single-use contract. It is a
// programmer error, so it panics rather than being returned. A second
// GetAwaiter call on a Work is not detected.
const errAlreadyConsumed = "corost: value already consumed (single-use contract violated)"
