package corost

// thenTask runs a child task to completion and transforms its result with
// fn. If the child produces an error, fn is never called and the error
// propagates as-is; if fn itself returns an error, that becomes the
// then-task's stored error instead. Cancellation of the child propagates
// without invoking fn.
type thenTask[T, R any] struct {
	consumed
	child Task[T]
	fn    func(T) (R, error)
}

// Then runs task, then applies fn to its result, unless task is cancelled
// or produces an error first.
func Then[T, R any](task Task[T], fn func(T) (R, error)) Task[R] {
	return &thenTask[T, R]{child: task, fn: fn}
}

func (t *thenTask[T, R]) GetWork() Work[R] {
	t.check()
	return thenWork[T, R]{childWork: t.child.GetWork(), fn: t.fn}
}

type thenWork[T, R any] struct {
	childWork Work[T]
	fn        func(T) (R, error)
}

func (w thenWork[T, R]) GetAwaiter(ctx *Context) Awaiter[R] {
	a := &thenAwaiter[T, R]{parentCtx: ctx, fn: w.fn}
	childCtx := ctx.withCallbacks(a.onChildResult, a.onChildStopped)
	a.child = w.childWork.GetAwaiter(childCtx)
	return a
}

type thenAwaiter[T, R any] struct {
	parentCtx *Context
	fn        func(T) (R, error)
	child     Awaiter[T]
	pending   bool
	state     resultState
	value     R
	err       error
}

func (a *thenAwaiter[T, R]) Start() {
	a.pending = true
	a.child.Start()
	a.pending = false

	switch a.state {
	case resultPending:
		return
	case resultStopped:
		a.parentCtx.InvokeStopped()
	default:
		a.parentCtx.InvokeResult()
	}
}

func (a *thenAwaiter[T, R]) Value() (R, error) {
	return a.value, a.err
}

func (a *thenAwaiter[T, R]) onChildResult() {
	if a.state == resultPending {
		v, err := a.child.Value()
		if err != nil {
			a.err = err
		} else if r, err2 := a.fn(v); err2 != nil {
			a.err = err2
		} else {
			a.value = r
		}
		a.state = resultDone
	}
	a.onSharedContinue()
}

func (a *thenAwaiter[T, R]) onChildStopped() {
	a.state = resultStopped
	a.onSharedContinue()
}

func (a *thenAwaiter[T, R]) onSharedContinue() {
	if a.pending {
		return
	}
	if a.state == resultStopped {
		a.parentCtx.ScheduleStopped()
		return
	}
	a.parentCtx.ScheduleResult()
}
