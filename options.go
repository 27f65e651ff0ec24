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

// loopOptions holds configuration shared by NewLoop and Run. stopSource is
// read only by Run (NewLoop callers supply their own root Context), but it
// lives here so WithLogger/WithClock/WithStopSource all satisfy one
// interface instead of two.
type loopOptions struct {
	logger     *logiface.Logger[*LogEvent]
	clock      func() time.Time
	stopSource *StopSource
}

// LoopOption configures a Loop or a Run.
type LoopOption interface {
	applyLoop(*loopOptions)
}

// loopOptionFunc implements LoopOption.
type loopOptionFunc func(*loopOptions)

func (f loopOptionFunc) applyLoop(opts *loopOptions) { f(opts) }

// WithLogger attaches a structured logger. Timer insert/fire/cancel and a
// Turn's decision to report a sleep deadline are logged at
// logiface.LevelTrace; stop-source firing is not logged. A nil logger (the
// default) makes logging calls valid but inert.
func WithLogger(logger *logiface.Logger[*LogEvent]) LoopOption {
	return loopOptionFunc(func(opts *loopOptions) {
		opts.logger = logger
	})
}

// WithClock overrides the monotonic clock used to compute timer deadlines.
// Tests use it to inject a fake clock instead of sleeping for real
// durations.
func WithClock(now func() time.Time) LoopOption {
	return loopOptionFunc(func(opts *loopOptions) {
		if now != nil {
			opts.clock = now
		}
	})
}

// WithStopSource pre-seeds Run's root StopSource instead of letting Run
// allocate its own. Holding onto the StopSource passed here lets a caller
// request cancellation of a whole Run from outside the task tree, e.g.
// from a signal handler registered before Run is called. NewLoop ignores
// this option; it has no root task of its own to attach a stop source to.
func WithStopSource(source *StopSource) LoopOption {
	return loopOptionFunc(func(opts *loopOptions) {
		if source != nil {
			opts.stopSource = source
		}
	})
}

// resolveLoopOptions applies LoopOption instances to loopOptions, with
// defaults for anything left unconfigured.
func resolveLoopOptions(opts []LoopOption) *loopOptions {
	cfg := &loopOptions{
		clock: time.Now,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyLoop(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = discardLogger()
	}
	if cfg.stopSource == nil {
		cfg.stopSource = NewStopSource()
	}
	return cfg
}
