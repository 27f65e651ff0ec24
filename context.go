package corost

// Context is handed to every Work.GetAwaiter call. It bundles
// access to the shared event loop, the stop token this chain currently
// observes, and the pair of completion signals the awaiter must invoke
// exactly once between them: onResult when the operation finished (value
// or exception — the caller reads which from the Awaiter itself) and
// onStopped when it was cancelled instead.
type Context struct {
	loop      *Loop
	stopToken StopToken
	onResult  func()
	onStopped func()
}

// newRootContext builds the Context passed to a root task's GetAwaiter,
// wired directly into Run's completion flags.
func newRootContext(loop *Loop, token StopToken, onResult, onStopped func()) *Context {
	return &Context{loop: loop, stopToken: token, onResult: onResult, onStopped: onStopped}
}

// StopToken returns the cancellation token this chain currently observes.
func (c *Context) StopToken() StopToken {
	return c.stopToken
}

// Loop returns the event loop this chain is running on, for leaf tasks
// that need to schedule ready callbacks or timers directly (SleepFor,
// Yield, SuspendForever).
func (c *Context) Loop() *Loop {
	return c.loop
}

// ScheduleResult enqueues the result-ready signal to run on a later turn,
// used when a child completes asynchronously and the completion must not
// re-enter the caller's stack.
func (c *Context) ScheduleResult() {
	c.loop.ready.push(c.onResult)
}

// ScheduleStopped enqueues the stopped signal to run on a later turn.
func (c *Context) ScheduleStopped() {
	c.loop.ready.push(c.onStopped)
}

// InvokeResult calls the result-ready signal synchronously, used when a
// child completes inline during Start and the completion should propagate
// up the chain without a ready-queue hop.
func (c *Context) InvokeResult() {
	c.onResult()
}

// InvokeStopped calls the stopped signal synchronously.
func (c *Context) InvokeStopped() {
	c.onStopped()
}

// withCallbacks returns a child Context sharing this one's loop and stop
// token, but with its own completion signals — used by combinators that
// need to observe their child's completion before deciding what to report
// to their own parent (then, cast_result, wait_all, ...).
func (c *Context) withCallbacks(onResult, onStopped func()) *Context {
	return &Context{loop: c.loop, stopToken: c.stopToken, onResult: onResult, onStopped: onStopped}
}

// withToken returns a child Context sharing this one's loop, but observing
// a different stop token and with its own completion signals — used by
// StopWhen, WaitAll, WaitAny and WaitFor to run their children under the
// token of an internal stop source.
func (c *Context) withToken(token StopToken, onResult, onStopped func()) *Context {
	return &Context{loop: c.loop, stopToken: token, onResult: onResult, onStopped: onStopped}
}

// resultState is the three-way none/done/stopped state machine shared by
// the single-child combinators (Then, CastResult, StoppedAsOptional): none
// while the child is still running, done once it produced a value or an
// error (the two are disambiguated by the stored error itself, not by a
// fourth state), stopped if the child was cancelled instead.
type resultState uint8

const (
	resultPending resultState = iota
	resultDone
	resultStopped
)
