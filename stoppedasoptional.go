package corost

// Optional is the Go stand-in for a nullable result: produced by
// StoppedAsOptional, and by StopWhen/WaitFor's "unwound first" outcome. A
// zero-value Optional has Valid false.
type Optional[T any] struct {
	Valid bool
	Value T
}

// stoppedAsOptionalTask runs a child task under the parent's own stop
// token (not a derived one). If the child stops and the parent's token
// was not the cause, that cancellation is reified as a normal, valueless
// Optional result instead of propagating as stopped. If the parent's
// token was requested, cancellation still propagates as stopped.
type stoppedAsOptionalTask[T any] struct {
	consumed
	child Task[T]
}

// StoppedAsOptional converts task's own cancellation (when not requested
// by the caller of StoppedAsOptional itself) into a nullopt-like value.
func StoppedAsOptional[T any](task Task[T]) Task[Optional[T]] {
	return &stoppedAsOptionalTask[T]{child: task}
}

func (t *stoppedAsOptionalTask[T]) GetWork() Work[Optional[T]] {
	t.check()
	return stoppedAsOptionalWork[T]{childWork: t.child.GetWork()}
}

type stoppedAsOptionalWork[T any] struct {
	childWork Work[T]
}

func (w stoppedAsOptionalWork[T]) GetAwaiter(ctx *Context) Awaiter[Optional[T]] {
	a := &stoppedAsOptionalAwaiter[T]{parentCtx: ctx}
	childCtx := ctx.withCallbacks(a.onChildResult, a.onChildStopped)
	a.child = w.childWork.GetAwaiter(childCtx)
	return a
}

type stoppedAsOptionalAwaiter[T any] struct {
	parentCtx *Context
	child     Awaiter[T]
	pending   bool
	childDone bool
	state     resultState
}

func (a *stoppedAsOptionalAwaiter[T]) Start() {
	a.pending = true
	a.child.Start()
	a.pending = false

	if !a.childDone {
		return
	}
	// state stays resultPending only when the child stopped because the
	// parent's own token fired; that must surface as stopped, not as a
	// reified Optional.
	if a.state == resultPending || a.parentCtx.StopToken().StopRequested() {
		a.parentCtx.InvokeStopped()
		return
	}
	a.parentCtx.InvokeResult()
}

func (a *stoppedAsOptionalAwaiter[T]) Value() (Optional[T], error) {
	if a.state == resultStopped {
		return Optional[T]{}, nil
	}
	v, err := a.child.Value()
	if err != nil {
		return Optional[T]{}, err
	}
	return Optional[T]{Valid: true, Value: v}, nil
}

func (a *stoppedAsOptionalAwaiter[T]) onChildResult() {
	a.childDone = true
	if a.state == resultPending {
		a.state = resultDone
	}
	a.onSharedContinue()
}

func (a *stoppedAsOptionalAwaiter[T]) onChildStopped() {
	a.childDone = true
	if !a.parentCtx.StopToken().StopRequested() {
		a.state = resultStopped
	}
	a.onSharedContinue()
}

func (a *stoppedAsOptionalAwaiter[T]) onSharedContinue() {
	if a.pending {
		return
	}
	if a.state == resultPending || a.parentCtx.StopToken().StopRequested() {
		a.parentCtx.ScheduleStopped()
		return
	}
	a.parentCtx.ScheduleResult()
}
