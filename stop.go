package corost

// stopNode is the intrusive list node linking a registered StopCallback
// into its StopSource's callback list.
type stopNode struct {
	next, prev *stopNode
	fn         func()
}

// stopList is the FIFO list of callbacks registered against a StopSource,
// in registration order.
type stopList struct {
	head, tail *stopNode
}

func (l *stopList) pushBack(n *stopNode) {
	n.next = nil
	n.prev = l.tail
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
}

func (l *stopList) remove(n *stopNode) {
	if n == l.head {
		l.head = n.next
	} else {
		n.prev.next = n.next
	}
	if n == l.tail {
		l.tail = n.prev
	} else {
		n.next.prev = n.prev
	}
}

func (l *stopList) popFront() *stopNode {
	n := l.head
	if n == nil {
		return nil
	}
	l.head = n.next
	if n == l.tail {
		l.tail = nil
	} else {
		n.next.prev = nil
	}
	return n
}

// StopSource is the owning side of a one-shot, synchronous cancellation
// signal. It is not safe for concurrent use; only ever one goroutine
// touches a task tree at a time.
//
// A StopSource is created by whoever owns the lifetime of an operation,
// handed out as a StopToken to its children, and triggered at most once
// via RequestStop.
type StopSource struct {
	stopped   bool
	callbacks stopList
}

// NewStopSource returns a fresh, not-yet-stopped StopSource.
func NewStopSource() *StopSource {
	return &StopSource{}
}

// StopRequested reports whether RequestStop has already fired.
func (s *StopSource) StopRequested() bool {
	return s.stopped
}

// RequestStop fires the stop signal, if it has not already fired.
//
// Every registered StopCallback is invoked exactly once, synchronously, in
// registration order. A callback is popped and detached from the list
// before it runs, so a callback that destroys itself (or registers a new
// one) never observes a half-torn-down list.
//
// Returns true if this call is the one that fired the signal, false if it
// had already fired.
func (s *StopSource) RequestStop() bool {
	if s.stopped {
		return false
	}
	s.stopped = true
	for {
		n := s.callbacks.popFront()
		if n == nil {
			break
		}
		fn := n.fn
		n.fn = nil
		fn()
	}
	return true
}

// Token returns a StopToken observing this source.
func (s *StopSource) Token() StopToken {
	return StopToken{source: s}
}

// StopToken is a cheap, copyable handle on a StopSource's signal. The zero
// StopToken observes a source that never stops.
type StopToken struct {
	source *StopSource
}

// StopRequested reports whether the underlying source has fired. A zero
// StopToken (no source) never reports true.
func (t StopToken) StopRequested() bool {
	return t.source != nil && t.source.stopped
}

// CanBeStopped reports whether this token is backed by a real StopSource.
// A token without one can structurally never fire; NewStopCallback
// registers nothing for such a token.
func (t StopToken) CanBeStopped() bool {
	return t.source != nil
}

// StopCallback registers fn against a StopToken's source so that it runs
// exactly once, the moment the source stops. If the source has already
// stopped, fn runs inline from NewStopCallback.
//
// A StopCallback must be released via Release once its owning operation no
// longer needs to observe the source.
type StopCallback struct {
	source *StopSource
	node   *stopNode
}

// NewStopCallback registers fn against token. fn must not be nil.
//
// fn is wrapped so that the callback's own node reference is cleared
// before fn runs: callers call Release on the same *StopCallback after it
// has fired (leaf awaiters from inside fn, combinators when they complete),
// and without this the node popped by RequestStop would be unlinked a
// second time by that Release, corrupting the list.
func NewStopCallback(token StopToken, fn func()) *StopCallback {
	cb := &StopCallback{source: token.source}
	if cb.source == nil {
		return cb
	}
	if cb.source.stopped {
		fn()
		return cb
	}
	n := &stopNode{}
	n.fn = func() {
		cb.node = nil
		fn()
	}
	cb.source.callbacks.pushBack(n)
	cb.node = n
	return cb
}

// Release unregisters the callback if it is still pending. It is a no-op
// if the callback already fired or was already released.
func (cb *StopCallback) Release() {
	if cb == nil || cb.source == nil || cb.node == nil {
		return
	}
	cb.source.callbacks.remove(cb.node)
	cb.node = nil
}
