// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package corost

import (
	"time"

	"github.com/joeycumines/logiface"
)

// Loop is a single-threaded event loop: one FIFO ready queue and one
// deadline-ordered timer heap. Exactly one goroutine may call Turn (or
// Run) for a given Loop at a time.
type Loop struct {
	ready  readyQueue
	timers timerHeap
	clock  func() time.Time
	logger *logiface.Logger[*LogEvent]
	state  LoopState
}

// NewLoop constructs a Loop. Most callers use Run instead, which builds
// and drives one internally; NewLoop exists for callers that need to
// interleave Turn with other work on the same goroutine (tests, and
// custom runners that aren't Run).
func NewLoop(opts ...LoopOption) *Loop {
	cfg := resolveLoopOptions(opts)
	return &Loop{
		clock:  cfg.clock,
		logger: cfg.logger,
		state:  StateAwake,
	}
}

// State returns the loop's current LoopState.
func (l *Loop) State() LoopState {
	return l.state
}

// scheduleReady enqueues fn to run on a later Turn.
func (l *Loop) scheduleReady(fn func()) {
	l.ready.push(fn)
}

// scheduleTimer arranges for fn to run once, no earlier than now+d. It
// returns the timer node so the caller can cancel it before it fires.
func (l *Loop) scheduleTimer(d time.Duration, fn func()) *timerNode {
	deadline := l.clock().Add(d)
	l.logger.Trace().Dur("after", d).Log("timer scheduled")
	return l.timers.insert(deadline, fn)
}

// cancelTimer cancels a pending timer previously returned by
// scheduleTimer. It is a no-op if the timer already fired.
func (l *Loop) cancelTimer(n *timerNode) {
	if n != nil && !n.canceled && n.index >= 0 {
		l.logger.Trace().Log("timer cancelled")
	}
	l.timers.cancel(n)
}

// Turn drains the ready queue once, then fires expired timers. Callbacks
// enqueued while draining land in the next Turn's batch, not this one's,
// and they also stop any further expired timers from firing this Turn:
// new ready work always pre-empts timer dispatch, which bounds the work a
// single Turn can do and keeps a callback storm from starving the queue.
//
// It returns (deadline, true) if nothing is ready and the timer heap's
// earliest entry has not yet arrived: the caller should sleep until
// deadline, then call Turn again. It returns (zero, false) if there is no
// reason to sleep — either because ready work is pending, or because the
// timer heap is now empty — meaning the caller should call Turn again
// immediately (or stop, if the loop is Terminated).
func (l *Loop) Turn() (deadline time.Time, shouldSleep bool) {
	if l.state == StateRunning {
		panic(ErrRunReentrant)
	}
	l.state = StateRunning
	l.ready.drain()

	fired := false
	for {
		min := l.timers.min()
		if min == nil {
			break
		}
		now := l.clock()
		if min.deadline.After(now) {
			if l.ready.empty() {
				l.state = StateSleeping
				l.logger.Trace().Dur("sleep_for", min.deadline.Sub(now)).Log("turn has nothing ready, reporting sleep deadline")
				return min.deadline, true
			}
			break
		}
		if fired && !l.ready.empty() {
			break
		}
		l.timers.popMin()
		l.logger.Trace().Dur("deadline_slack", now.Sub(min.deadline)).Log("timer fired")
		fn := min.fn
		min.fn = nil
		fn()
		fired = true
	}

	if l.ready.empty() && l.timers.min() == nil {
		l.state = StateTerminated
	} else {
		l.state = StateAwake
	}
	return time.Time{}, false
}

// Idle reports whether the loop has no pending ready work and no pending
// timers — the condition Run treats as "nothing left to do but the root
// task is still not done", which would otherwise spin forever.
func (l *Loop) Idle() bool {
	return l.ready.empty() && l.timers.min() == nil
}
