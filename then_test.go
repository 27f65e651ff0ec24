package corost

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThen_TransformsValue(t *testing.T) {
	v, err, ok := Run(Then(Just(41), func(x int) (int, error) { return x + 1, nil }))
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestThen_IdentityPreservesResult(t *testing.T) {
	direct, err1, ok1 := Run(Just("v"))
	chained, err2, ok2 := Run(Then(Just("v"), func(s string) (string, error) { return s, nil }))

	assert.Equal(t, ok1, ok2)
	assert.Equal(t, err1, err2)
	assert.Equal(t, direct, chained)
}

func TestThen_ChildErrorSkipsFn(t *testing.T) {
	boom := errors.New("boom")
	var called bool
	_, err, ok := Run(Then(JustException[int](boom), func(x int) (int, error) {
		called = true
		return x, nil
	}))
	assert.True(t, ok)
	assert.Equal(t, boom, err)
	assert.False(t, called, "fn must not run when the child errored")
}

func TestThen_FnErrorBecomesStoredError(t *testing.T) {
	bad := errors.New("bad transform")
	_, err, ok := Run(Then(Just(1), func(int) (int, error) { return 0, bad }))
	assert.True(t, ok)
	assert.Equal(t, bad, err)
}

func TestThen_ChildStoppedSkipsFn(t *testing.T) {
	var called bool
	_, _, ok := Run(Then(JustStopped[int](), func(x int) (int, error) {
		called = true
		return x, nil
	}))
	assert.False(t, ok)
	assert.False(t, called, "fn must not run when the child was cancelled")
}

func TestThen_CompletesInlineForImmediateChild(t *testing.T) {
	loop := NewLoop()
	source := NewStopSource()
	var done bool
	ctx := newRootContext(loop, source.Token(), func() { done = true }, func() {})

	awaiter := Then(Just(1), func(x int) (int, error) { return x * 2, nil }).
		GetWork().GetAwaiter(ctx)
	awaiter.Start()
	assert.True(t, done, "an immediate child completes the chain without touching the ready queue")
	assert.True(t, loop.Idle())

	v, err := awaiter.Value()
	assert.NoError(t, err)
	assert.Equal(t, 2, v)
}

func TestThen_SuspendingChild(t *testing.T) {
	v, err, ok := Run(Then(Yield(), func(Unit) (string, error) { return "after yield", nil }))
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, "after yield", v)
}

func TestThen_DeepImmediateChainStaysInline(t *testing.T) {
	loop := NewLoop()
	source := NewStopSource()
	var done bool
	ctx := newRootContext(loop, source.Token(), func() { done = true }, func() {})

	inc := func(x int) (int, error) { return x + 1, nil }
	task := Then(Then(Then(Just(0), inc), inc), inc)
	awaiter := task.GetWork().GetAwaiter(ctx)
	awaiter.Start()

	assert.True(t, done)
	assert.True(t, loop.Idle(), "a chain of immediate tasks never enqueues ready work")
	v, err := awaiter.Value()
	assert.NoError(t, err)
	assert.Equal(t, 3, v)
}
