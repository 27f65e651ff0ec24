package corost

// suspendForeverTask never completes on its own; it only resolves when its
// chain's stop token fires.
type suspendForeverTask struct {
	consumed
}

// SuspendForever returns a task that suspends until its chain is stopped.
// It never produces a value.
func SuspendForever() Task[Unit] {
	return &suspendForeverTask{}
}

func (t *suspendForeverTask) GetWork() Work[Unit] {
	t.check()
	return suspendForeverWork{}
}

type suspendForeverWork struct{}

func (suspendForeverWork) GetAwaiter(ctx *Context) Awaiter[Unit] {
	return &suspendForeverAwaiter{ctx: ctx}
}

type suspendForeverAwaiter struct {
	ctx    *Context
	stopCb *StopCallback
}

func (a *suspendForeverAwaiter) Start() {
	a.stopCb = NewStopCallback(a.ctx.StopToken(), a.onCancel)
}

func (a *suspendForeverAwaiter) onCancel() {
	a.stopCb.Release()
	a.ctx.ScheduleStopped()
}

func (a *suspendForeverAwaiter) Value() (Unit, error) {
	return Unit{}, nil
}
