package corost

// AsAny erases a task's result type, boxing its value, so tasks with
// different result types can share a WaitAll or WaitAny argument list.
func AsAny[T any](task Task[T]) Task[any] {
	return Then(task, func(v T) (any, error) { return v, nil })
}

// Numeric is the set of built-in types CastResult can convert between. Go
// has no "implicitly convertible to T" constraint, so CastResult is
// restricted to numeric conversions, the case that actually comes up when
// homogenising combinator arms.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// castResultTask runs a child task and reinterprets its result as R via a
// numeric conversion, without otherwise touching the value/error/stopped
// outcome. Used to homogenise the arms of a WaitAny/WaitAll call whose
// tasks produce related but distinct numeric result types.
type castResultTask[T, R Numeric] struct {
	consumed
	child Task[T]
}

// CastResult runs task and converts its result to R.
func CastResult[R Numeric, T Numeric](task Task[T]) Task[R] {
	return &castResultTask[T, R]{child: task}
}

func (t *castResultTask[T, R]) GetWork() Work[R] {
	t.check()
	return castResultWork[T, R]{childWork: t.child.GetWork()}
}

type castResultWork[T, R Numeric] struct {
	childWork Work[T]
}

func (w castResultWork[T, R]) GetAwaiter(ctx *Context) Awaiter[R] {
	a := &castResultAwaiter[T, R]{parentCtx: ctx}
	childCtx := ctx.withCallbacks(a.onChildResult, a.onChildStopped)
	a.child = w.childWork.GetAwaiter(childCtx)
	return a
}

type castResultAwaiter[T, R Numeric] struct {
	parentCtx *Context
	child     Awaiter[T]
	pending   bool
	state     resultState
}

func (a *castResultAwaiter[T, R]) Start() {
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

func (a *castResultAwaiter[T, R]) Value() (R, error) {
	v, err := a.child.Value()
	return R(v), err
}

func (a *castResultAwaiter[T, R]) onChildResult() {
	if a.state == resultPending {
		a.state = resultDone
	}
	a.onSharedContinue()
}

func (a *castResultAwaiter[T, R]) onChildStopped() {
	a.state = resultStopped
	a.onSharedContinue()
}

func (a *castResultAwaiter[T, R]) onSharedContinue() {
	if a.pending {
		return
	}
	if a.state == resultStopped {
		a.parentCtx.ScheduleStopped()
		return
	}
	a.parentCtx.ScheduleResult()
}
