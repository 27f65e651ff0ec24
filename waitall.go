package corost

// waitAllTask runs every task to completion under one shared internal
// stop source: the first arm to error requests it, asking the rest to
// unwind early. WaitAll is homogeneous over Task[any] and returns a plain
// []any in argument order; callers needing typed arms normalise them
// before boxing.
type waitAllTask struct {
	consumed
	tasks []Task[any]
}

// WaitAll runs every task concurrently (cooperatively, on the single
// loop) and waits for all of them to finish. If any arm errors, the
// others are asked to stop and the first error is rethrown; otherwise the
// result is a []any holding every arm's value, in argument order.
// WaitAll with no tasks reports ErrWaitAllEmpty.
func WaitAll(tasks ...Task[any]) Task[[]any] {
	return &waitAllTask{tasks: tasks}
}

func (t *waitAllTask) GetWork() Work[[]any] {
	t.check()
	works := make([]Work[any], len(t.tasks))
	for i, task := range t.tasks {
		works[i] = task.GetWork()
	}
	return waitAllWork{works: works}
}

type waitAllWork struct {
	works []Work[any]
}

func (w waitAllWork) GetAwaiter(ctx *Context) Awaiter[[]any] {
	a := &waitAllAwaiter{
		parentCtx: ctx,
		source:    NewStopSource(),
		results:   make([]any, len(w.works)),
		arms:      make([]Awaiter[any], len(w.works)),
	}
	for i, work := range w.works {
		i := i
		childCtx := ctx.withToken(a.source.Token(),
			func() { a.onArmResult(i) },
			func() { a.onArmStopped(i) },
		)
		a.arms[i] = work.GetAwaiter(childCtx)
	}
	return a
}

type waitAllAwaiter struct {
	parentCtx *Context
	source    *StopSource
	stopCb    *StopCallback
	arms      []Awaiter[any]
	results   []any
	pending   int
	exception error
	stopped   bool
}

func (a *waitAllAwaiter) Start() {
	if len(a.arms) == 0 {
		a.exception = ErrWaitAllEmpty
		a.parentCtx.InvokeResult()
		return
	}

	a.pending = len(a.arms) + 1
	a.stopCb = NewStopCallback(a.parentCtx.StopToken(), a.onParentCancel)

	for _, arm := range a.arms {
		arm.Start()
	}

	a.pending--
	if a.pending != 0 {
		return
	}
	a.stopCb.Release()

	if a.parentCtx.StopToken().StopRequested() || a.stopped {
		a.parentCtx.InvokeStopped()
		return
	}
	a.parentCtx.InvokeResult()
}

func (a *waitAllAwaiter) Value() ([]any, error) {
	if a.exception != nil {
		return nil, a.exception
	}
	return a.results, nil
}

func (a *waitAllAwaiter) onParentCancel() {
	a.source.RequestStop()
}

func (a *waitAllAwaiter) onArmResult(i int) {
	if !a.parentCtx.StopToken().StopRequested() && a.exception == nil && !a.stopped {
		v, err := a.arms[i].Value()
		if err != nil {
			a.exception = err
			a.source.RequestStop()
		} else {
			a.results[i] = v
		}
	}
	a.armDone()
}

func (a *waitAllAwaiter) onArmStopped(i int) {
	if !a.parentCtx.StopToken().StopRequested() && !a.source.StopRequested() {
		a.stopped = true
		a.source.RequestStop()
	}
	a.armDone()
}

func (a *waitAllAwaiter) armDone() {
	a.pending--
	if a.pending != 0 {
		return
	}
	a.onSharedContinue()
}

func (a *waitAllAwaiter) onSharedContinue() {
	a.stopCb.Release()
	if a.parentCtx.StopToken().StopRequested() || a.stopped {
		a.parentCtx.ScheduleStopped()
		return
	}
	a.parentCtx.ScheduleResult()
}
