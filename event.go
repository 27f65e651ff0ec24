package corost

// Event is a one-to-many notification primitive: any number of tasks can
// AsyncWait on it, and a notifier wakes them one at a time (NotifyOne) or
// all at once (NotifyAll), served strictly in the order they started
// waiting.
type Event struct {
	waiters List[eventWaiter]
}

// NewEvent returns an Event with no pending waiters.
func NewEvent() *Event {
	return &Event{}
}

// NotifyOne wakes the longest-waiting AsyncWait, if any, and reports
// whether a waiter was actually woken.
func (e *Event) NotifyOne() bool {
	w := e.waiters.Front()
	if w == nil {
		return false
	}
	w.fire()
	return true
}

// NotifyAll wakes every pending waiter, in FIFO order, and returns how
// many were woken.
func (e *Event) NotifyAll() int {
	var n int
	for e.NotifyOne() {
		n++
	}
	return n
}

// AsyncWait returns a task that completes once this Event is notified, or
// reports stopped if cancelled first.
func (e *Event) AsyncWait() Task[Unit] {
	return &eventWaitTask{evt: e}
}

// eventWaiter is the intrusive node linking an in-flight AsyncWait into
// its Event's wait list.
type eventWaiter struct {
	link   node[eventWaiter]
	evt    *Event
	ctx    *Context
	stopCb *StopCallback
}

func eventWaiterNode(w *eventWaiter) *node[eventWaiter] { return &w.link }

func (w *eventWaiter) enqueue(evt *Event, ctx *Context) {
	w.evt = evt
	w.ctx = ctx
	evt.waiters.PushBack(w, eventWaiterNode)
	w.stopCb = NewStopCallback(ctx.StopToken(), w.onCancel)
}

func (w *eventWaiter) fire() {
	w.evt.waiters.Remove(w, eventWaiterNode)
	w.stopCb.Release()
	w.ctx.ScheduleResult()
}

func (w *eventWaiter) onCancel() {
	w.evt.waiters.Remove(w, eventWaiterNode)
	w.stopCb.Release()
	w.ctx.ScheduleStopped()
}

type eventWaitTask struct {
	consumed
	evt *Event
}

func (t *eventWaitTask) GetWork() Work[Unit] {
	t.check()
	return eventWaitWork{evt: t.evt}
}

type eventWaitWork struct {
	evt *Event
}

func (w eventWaitWork) GetAwaiter(ctx *Context) Awaiter[Unit] {
	return &eventWaitAwaiter{evt: w.evt, ctx: ctx}
}

type eventWaitAwaiter struct {
	evt *Event
	ctx *Context
	w   eventWaiter
}

func (a *eventWaitAwaiter) Start() {
	a.w.enqueue(a.evt, a.ctx)
}

func (a *eventWaitAwaiter) Value() (Unit, error) {
	return Unit{}, nil
}
