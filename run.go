package corost

import "time"

// Run drives task to completion on a fresh Loop of its own, returning its
// value, or its error, or reporting that it was stopped instead.
//
// Result reporting: if the root stops without producing a value (the
// whole chain was cancelled), ok is false and value/err are zero. If it
// completes with an error, err is non-nil. Otherwise value holds the
// result.
func Run[T any](task Task[T], opts ...LoopOption) (value T, err error, ok bool) {
	cfg := resolveLoopOptions(opts)
	loop := &Loop{clock: cfg.clock, logger: cfg.logger, state: StateAwake}

	var (
		done    bool
		stopped bool
		awaiter Awaiter[T]
	)

	ctx := newRootContext(loop, cfg.stopSource.Token(),
		func() { done = true },
		func() { done = true; stopped = true },
	)

	work := task.GetWork()
	awaiter = work.GetAwaiter(ctx)
	awaiter.Start()

	for !done {
		deadline, shouldSleep := loop.Turn()
		if shouldSleep {
			sleepUntil(cfg.clock, deadline)
		} else if loop.Idle() {
			// Nothing ready, nothing pending, and the root task never
			// signalled completion: a well-formed chain cannot reach this
			// state, since every leaf eventually calls one of the two
			// completion signals.
			break
		}
	}

	if stopped || !done {
		var zero T
		return zero, nil, false
	}
	v, e := awaiter.Value()
	return v, e, true
}

// sleepUntil blocks the calling goroutine until deadline, as measured by
// now. It is the one place Run touches wall-clock sleep.
func sleepUntil(now func() time.Time, deadline time.Time) {
	d := deadline.Sub(now())
	if d > 0 {
		time.Sleep(d)
	}
}
