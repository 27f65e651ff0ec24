// Package corost provides a single-threaded, structured-concurrency
// runtime: a tree of tasks sharing one event loop, with cooperative
// cancellation, timers, and a small set of combinators for composing
// asynchronous work without ever touching more than one goroutine.
//
// # Architecture
//
// The runtime is built around a [Loop]: a FIFO ready queue plus a deadline
// ordered timer heap (see [Loop.Turn]). Every asynchronous operation is
// exposed through the three-phase contract described by [Task], [Work] and
// [Awaiter]: a [Task] is a single-use description, [Task.GetWork]
// produces a movable plan, and [Work.GetAwaiter] pins that plan to a
// [Context] for execution. [Run] drives a root task to completion.
//
// # Composition
//
// Leaf tasks ([Noop], [Yield], [SleepFor], [SuspendForever], [Just],
// [JustException], [JustStopped]) are combined with [Then], [CastResult],
// [StoppedAsOptional], [StopWhen], [WaitAll], [WaitAny] and [WaitFor].
// [Event] and [Mutex] provide two-party synchronisation across branches of
// the task tree that all still execute on the single loop goroutine.
//
// # Cancellation
//
// Cancellation is cooperative and one-shot, modelled by [StopSource],
// [StopToken] and [StopCallback]: a source fires at most once, and
// every registered callback runs synchronously, in registration order, the
// moment it fires.
//
// # Concurrency model
//
// At any instant exactly one callback is executing; [Run] must be called
// from a single goroutine and nothing in this package is safe to touch from
// any other goroutine while a [Loop] is running. There is no I/O readiness
// notification — the only external collaborators are a steady monotonic
// clock and the OS sleep primitive (see [WithClock]).
//
// # Usage
//
//	v, err, ok := corost.Run(corost.Then(
//	    corost.SleepFor(100*time.Millisecond),
//	    func(corost.Unit) (int, error) { return 42, nil },
//	))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !ok {
//	    log.Fatal("cancelled")
//	}
//	fmt.Println(v)
//
// # Logging
//
// [Loop] and [Run] accept an optional [WithLogger] option, a
// [*logiface.Logger] bound to the bundled [*LogEvent] adapter over [log/slog].
// With no logger configured, logging calls are valid but inert.
package corost
