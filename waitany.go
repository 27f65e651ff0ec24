package corost

// WaitAnyResult is the outcome of a successful WaitAny: which argument
// position won the race, and its value (Unit{} for tasks of type Task[Unit]
// boxed into Task[any]).
type WaitAnyResult struct {
	Index int
	Value any
}

// waitAnyTask races every task under one shared internal stop source: the
// first to produce a value or error wins and requests the source, asking
// every other arm to unwind. Homogeneous over Task[any] for the same
// reason as WaitAll.
type waitAnyTask struct {
	consumed
	tasks []Task[any]
}

// WaitAny runs every task concurrently and returns as soon as one
// produces a value or an error; the rest are asked to stop and WaitAny
// waits for them to unwind before completing. If every arm is cancelled
// before any produces a result, WaitAny reports stopped. WaitAny with no
// tasks reports ErrWaitAnyEmpty.
func WaitAny(tasks ...Task[any]) Task[WaitAnyResult] {
	return &waitAnyTask{tasks: tasks}
}

func (t *waitAnyTask) GetWork() Work[WaitAnyResult] {
	t.check()
	works := make([]Work[any], len(t.tasks))
	for i, task := range t.tasks {
		works[i] = task.GetWork()
	}
	return waitAnyWork{works: works}
}

type waitAnyWork struct {
	works []Work[any]
}

func (w waitAnyWork) GetAwaiter(ctx *Context) Awaiter[WaitAnyResult] {
	a := &waitAnyAwaiter{
		parentCtx: ctx,
		source:    NewStopSource(),
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

type waitAnyAwaiter struct {
	parentCtx   *Context
	source      *StopSource
	stopCb      *StopCallback
	arms        []Awaiter[any]
	pending     int
	haveWinner  bool
	resultIndex int
	resultValue any
	exception   error
}

func (a *waitAnyAwaiter) Start() {
	if len(a.arms) == 0 {
		a.exception = ErrWaitAnyEmpty
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

	if a.parentCtx.StopToken().StopRequested() || !a.haveWinner {
		a.parentCtx.InvokeStopped()
		return
	}
	a.parentCtx.InvokeResult()
}

func (a *waitAnyAwaiter) Value() (WaitAnyResult, error) {
	if a.exception != nil {
		return WaitAnyResult{}, a.exception
	}
	return WaitAnyResult{Index: a.resultIndex, Value: a.resultValue}, nil
}

func (a *waitAnyAwaiter) onParentCancel() {
	a.source.RequestStop()
}

func (a *waitAnyAwaiter) onArmResult(i int) {
	if !a.haveWinner {
		v, err := a.arms[i].Value()
		if err != nil {
			a.exception = err
		} else {
			a.resultIndex = i
			a.resultValue = v
		}
		a.haveWinner = true
		a.source.RequestStop()
	}
	a.armDone()
}

func (a *waitAnyAwaiter) onArmStopped(i int) {
	if !a.parentCtx.StopToken().StopRequested() && !a.source.StopRequested() {
		a.source.RequestStop()
	}
	a.armDone()
}

func (a *waitAnyAwaiter) armDone() {
	a.pending--
	if a.pending != 0 {
		return
	}
	a.onSharedContinue()
}

func (a *waitAnyAwaiter) onSharedContinue() {
	a.stopCb.Release()
	if a.parentCtx.StopToken().StopRequested() || !a.haveWinner {
		a.parentCtx.ScheduleStopped()
		return
	}
	a.parentCtx.ScheduleResult()
}
