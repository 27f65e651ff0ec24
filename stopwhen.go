package corost

// stopWhenState tracks which side of a StopWhen finished first and how.
type stopWhenState uint8

const (
	swNone stopWhenState = iota
	swResult1
	swStopped1
	swError2
	swStopped2
)

// stopWhenTask races primary against trigger under a shared internal stop
// source: whichever completes first requests that source, asking the
// other side to unwind.
type stopWhenTask[T, U any] struct {
	consumed
	primary Task[T]
	trigger Task[U]
}

// StopWhen runs primary until it completes, or until trigger completes
// first (in which case primary is asked to stop). The result is primary's
// value if primary won; trigger's error if trigger won with an error; a
// nullopt-like Optional otherwise (either side unwound first).
func StopWhen[T, U any](primary Task[T], trigger Task[U]) Task[Optional[T]] {
	return &stopWhenTask[T, U]{primary: primary, trigger: trigger}
}

func (t *stopWhenTask[T, U]) GetWork() Work[Optional[T]] {
	t.check()
	return stopWhenWork[T, U]{primaryWork: t.primary.GetWork(), triggerWork: t.trigger.GetWork()}
}

type stopWhenWork[T, U any] struct {
	primaryWork Work[T]
	triggerWork Work[U]
}

func (w stopWhenWork[T, U]) GetAwaiter(ctx *Context) Awaiter[Optional[T]] {
	a := &stopWhenAwaiter[T, U]{parentCtx: ctx, childrenSource: NewStopSource()}
	primaryCtx := ctx.withToken(a.childrenSource.Token(), a.onPrimaryResult, a.onPrimaryStopped)
	triggerCtx := ctx.withToken(a.childrenSource.Token(), a.onTriggerResult, a.onTriggerStopped)
	a.primary = w.primaryWork.GetAwaiter(primaryCtx)
	a.trigger = w.triggerWork.GetAwaiter(triggerCtx)
	return a
}

type stopWhenAwaiter[T, U any] struct {
	parentCtx      *Context
	childrenSource *StopSource
	parentStopCb   *StopCallback
	primary        Awaiter[T]
	trigger        Awaiter[U]
	pending        int
	state          stopWhenState
}

func (a *stopWhenAwaiter[T, U]) Start() {
	a.pending = 1
	a.parentStopCb = NewStopCallback(a.parentCtx.StopToken(), a.onParentCancel)

	a.startChains()

	a.pending--
	if a.pending != 0 {
		return
	}
	a.parentStopCb.Release()

	if a.state == swStopped1 {
		a.parentCtx.InvokeStopped()
		return
	}
	a.parentCtx.InvokeResult()
}

func (a *stopWhenAwaiter[T, U]) startChains() {
	a.pending = 2
	a.primary.Start()
	if a.pending == 1 {
		// primary completed synchronously; trigger would only unwind
		// immediately, so there's nothing to gain by starting it.
		return
	}
	a.pending++
	a.trigger.Start()
}

func (a *stopWhenAwaiter[T, U]) Value() (Optional[T], error) {
	switch a.state {
	case swResult1:
		v, err := a.primary.Value()
		return Optional[T]{Valid: true, Value: v}, err
	case swError2:
		_, err := a.trigger.Value()
		return Optional[T]{}, err
	default:
		return Optional[T]{}, nil
	}
}

func (a *stopWhenAwaiter[T, U]) onSharedContinue() {
	a.parentStopCb.Release()
	if a.state == swStopped1 {
		a.parentCtx.ScheduleStopped()
		return
	}
	a.parentCtx.ScheduleResult()
}

func (a *stopWhenAwaiter[T, U]) onPrimaryResult() {
	if a.state == swNone || a.state == swStopped2 {
		a.state = swResult1
		a.childrenSource.RequestStop()
	}
	a.pending--
	if a.pending != 0 {
		return
	}
	a.onSharedContinue()
}

func (a *stopWhenAwaiter[T, U]) onPrimaryStopped() {
	if !a.childrenSource.StopRequested() {
		a.state = swStopped1
		a.childrenSource.RequestStop()
	}
	a.pending--
	if a.pending != 0 {
		return
	}
	a.onSharedContinue()
}

func (a *stopWhenAwaiter[T, U]) onTriggerResult() {
	if a.state == swNone {
		if _, err := a.trigger.Value(); err != nil {
			a.state = swError2
		} else {
			a.state = swStopped2
		}
		a.childrenSource.RequestStop()
	}
	a.pending--
	if a.pending != 0 {
		return
	}
	a.onSharedContinue()
}

func (a *stopWhenAwaiter[T, U]) onTriggerStopped() {
	if !a.childrenSource.StopRequested() {
		a.state = swStopped2
		a.childrenSource.RequestStop()
	}
	a.pending--
	if a.pending != 0 {
		return
	}
	a.onSharedContinue()
}

func (a *stopWhenAwaiter[T, U]) onParentCancel() {
	a.state = swStopped1
	a.childrenSource.RequestStop()
}
