package corost

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSleepFor(t *testing.T) {
	v, err, ok := Run(SleepFor(time.Millisecond))
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, Unit{}, v)
}

// TestSleepFor_Zero proves SleepFor(0) still goes through the timer path
// rather than completing inline during Start.
func TestSleepFor_Zero(t *testing.T) {
	loop := NewLoop()
	source := NewStopSource()
	var done bool
	ctx := newRootContext(loop, source.Token(), func() { done = true }, func() {})

	awaiter := SleepFor(0).GetWork().GetAwaiter(ctx)
	awaiter.Start()
	assert.False(t, done, "sleep_for(0) must not complete synchronously from Start")

	loop.Turn()
	assert.True(t, done)
}

// TestSleepFor_CancelledBeforeFire proves cancelling a pending sleep
// reports stopped and releases the underlying timer.
func TestSleepFor_CancelledBeforeFire(t *testing.T) {
	loop := NewLoop()
	source := NewStopSource()
	var stopped bool
	ctx := newRootContext(loop, source.Token(), func() {}, func() { stopped = true })

	awaiter := SleepFor(time.Hour).GetWork().GetAwaiter(ctx)
	awaiter.Start()

	source.RequestStop()
	assert.False(t, stopped, "cancellation is scheduled, not invoked inline")

	loop.Turn()
	assert.True(t, stopped)
	assert.True(t, loop.Idle(), "cancelling the only pending timer must leave the loop idle")
}
