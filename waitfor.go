package corost

import "time"

// waitForState tracks how a WaitFor call is going to complete.
type waitForState uint8

const (
	wfNone waitForState = iota
	wfResult
	wfStopped
	wfTimeout
)

// waitForTask races task against a timer of its own: if task finishes
// first, its value is the result and the timer is cancelled; if the
// timer fires first, task is asked to stop via an internal source and
// the result is a nullopt-like Optional once task has unwound.
type waitForTask[T any] struct {
	consumed
	child    Task[T]
	duration time.Duration
}

// WaitFor runs task, but gives up and reports a nullopt-like Optional if
// d elapses before task completes. Parent cancellation propagates to both
// task and the internal timer.
func WaitFor[T any](task Task[T], d time.Duration) Task[Optional[T]] {
	return &waitForTask[T]{child: task, duration: d}
}

func (t *waitForTask[T]) GetWork() Work[Optional[T]] {
	t.check()
	return waitForWork[T]{childWork: t.child.GetWork(), duration: t.duration}
}

type waitForWork[T any] struct {
	childWork Work[T]
	duration  time.Duration
}

func (w waitForWork[T]) GetAwaiter(ctx *Context) Awaiter[Optional[T]] {
	a := &waitForAwaiter[T]{parentCtx: ctx, childrenSource: NewStopSource(), duration: w.duration}
	childCtx := ctx.withToken(a.childrenSource.Token(), a.onTaskResult, a.onTaskStopped)
	a.child = w.childWork.GetAwaiter(childCtx)
	return a
}

type waitForAwaiter[T any] struct {
	parentCtx      *Context
	childrenSource *StopSource
	parentStopCb   *StopCallback
	child          Awaiter[T]
	duration       time.Duration
	timer          *timerNode
	timerStopCb    *StopCallback
	pending        int
	state          waitForState
}

func (a *waitForAwaiter[T]) Start() {
	a.pending = 1
	a.parentStopCb = NewStopCallback(a.parentCtx.StopToken(), a.onParentCancel)

	a.startChains()

	a.pending--
	if a.pending != 0 {
		return
	}
	a.parentStopCb.Release()

	if a.state == wfStopped {
		a.parentCtx.InvokeStopped()
		return
	}
	a.parentCtx.InvokeResult()
}

func (a *waitForAwaiter[T]) startChains() {
	a.pending = 2
	a.child.Start()
	if a.pending == 1 {
		// task completed synchronously; nothing to time out.
		return
	}
	a.pending++
	a.scheduleTimer()
}

func (a *waitForAwaiter[T]) scheduleTimer() {
	a.timer = a.parentCtx.loop.scheduleTimer(a.duration, a.onTimer)
	a.timerStopCb = NewStopCallback(a.childrenSource.Token(), a.onTimerCancel)
}

func (a *waitForAwaiter[T]) Value() (Optional[T], error) {
	switch a.state {
	case wfResult:
		v, err := a.child.Value()
		return Optional[T]{Valid: true, Value: v}, err
	default:
		return Optional[T]{}, nil
	}
}

func (a *waitForAwaiter[T]) onSharedContinue() {
	a.parentStopCb.Release()
	if a.state == wfStopped {
		a.parentCtx.ScheduleStopped()
		return
	}
	a.parentCtx.ScheduleResult()
}

func (a *waitForAwaiter[T]) onTaskResult() {
	if a.state == wfNone || a.state == wfTimeout {
		a.state = wfResult
		a.childrenSource.RequestStop()
	}
	a.pending--
	if a.pending != 0 {
		return
	}
	a.onSharedContinue()
}

func (a *waitForAwaiter[T]) onTaskStopped() {
	if !a.childrenSource.StopRequested() {
		a.state = wfStopped
		a.childrenSource.RequestStop()
	}
	a.pending--
	if a.pending != 0 {
		return
	}
	a.onSharedContinue()
}

func (a *waitForAwaiter[T]) onParentCancel() {
	a.state = wfStopped
	a.childrenSource.RequestStop()
}

// onTimer fires directly from a Loop turn, not through a stop callback,
// so it finalises by invoking rather than scheduling.
func (a *waitForAwaiter[T]) onTimer() {
	a.timerStopCb.Release()

	if a.state == wfNone {
		a.state = wfTimeout
		a.childrenSource.RequestStop()
	}

	a.pending--
	if a.pending != 0 {
		return
	}
	a.parentStopCb.Release()

	if a.state == wfStopped {
		a.parentCtx.InvokeStopped()
		return
	}
	a.parentCtx.InvokeResult()
}

func (a *waitForAwaiter[T]) onTimerCancel() {
	a.timerStopCb.Release()
	a.parentCtx.loop.cancelTimer(a.timer)

	a.pending--
	if a.pending != 0 {
		return
	}
	a.onSharedContinue()
}
