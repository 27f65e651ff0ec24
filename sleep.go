package corost

import "time"

// sleepTask completes once its deadline arrives, unless its chain stops
// first, in which case the pending timer is cancelled and it reports
// stopped instead.
type sleepTask struct {
	consumed
	duration time.Duration
}

// SleepFor returns a task that completes after d has elapsed on the
// loop's clock. A non-positive d still goes through the real timer path
// (it fires on the very next Turn rather than completing inline), so
// SleepFor never starves the ready queue the way a synchronous leaf
// would.
func SleepFor(d time.Duration) Task[Unit] {
	return &sleepTask{duration: d}
}

func (t *sleepTask) GetWork() Work[Unit] {
	t.check()
	return sleepWork{duration: t.duration}
}

type sleepWork struct {
	duration time.Duration
}

func (w sleepWork) GetAwaiter(ctx *Context) Awaiter[Unit] {
	return &sleepAwaiter{ctx: ctx, duration: w.duration}
}

type sleepAwaiter struct {
	ctx      *Context
	duration time.Duration
	timer    *timerNode
	stopCb   *StopCallback
}

func (a *sleepAwaiter) Start() {
	a.timer = a.ctx.loop.scheduleTimer(a.duration, a.onTimer)
	a.stopCb = NewStopCallback(a.ctx.StopToken(), a.onCancel)
}

func (a *sleepAwaiter) onTimer() {
	a.stopCb.Release()
	a.ctx.InvokeResult()
}

func (a *sleepAwaiter) onCancel() {
	a.stopCb.Release()
	a.ctx.loop.cancelTimer(a.timer)
	a.ctx.ScheduleStopped()
}

func (a *sleepAwaiter) Value() (Unit, error) {
	return Unit{}, nil
}
