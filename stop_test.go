package corost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopSource_RequestStopOneShot(t *testing.T) {
	s := NewStopSource()
	assert.False(t, s.StopRequested())

	assert.True(t, s.RequestStop(), "first request fires the signal")
	assert.True(t, s.StopRequested())
	assert.False(t, s.RequestStop(), "second request is a no-op")
	assert.True(t, s.StopRequested())
}

func TestStopSource_CallbacksFireInRegistrationOrder(t *testing.T) {
	s := NewStopSource()
	var order []int

	cb1 := NewStopCallback(s.Token(), func() { order = append(order, 1) })
	cb2 := NewStopCallback(s.Token(), func() { order = append(order, 2) })
	cb3 := NewStopCallback(s.Token(), func() { order = append(order, 3) })
	defer cb1.Release()
	defer cb2.Release()
	defer cb3.Release()

	s.RequestStop()
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestStopCallback_RegisterAfterFireRunsInline(t *testing.T) {
	s := NewStopSource()
	s.RequestStop()

	var fired bool
	cb := NewStopCallback(s.Token(), func() { fired = true })
	defer cb.Release()
	assert.True(t, fired, "registering on an already-stopped source invokes inline")
}

func TestStopCallback_ReleaseUnregisters(t *testing.T) {
	s := NewStopSource()

	var fired bool
	cb := NewStopCallback(s.Token(), func() { fired = true })
	cb.Release()

	s.RequestStop()
	assert.False(t, fired, "a released callback must not fire")
}

func TestStopCallback_ReleaseFromOwnCallback(t *testing.T) {
	s := NewStopSource()

	// The idiom every awaiter uses: the callback's first act is to release
	// its own registration. The second Release (the one after RequestStop)
	// must also be harmless.
	var cb *StopCallback
	var fired int
	cb = NewStopCallback(s.Token(), func() {
		cb.Release()
		fired++
	})

	s.RequestStop()
	cb.Release()
	assert.Equal(t, 1, fired)
}

func TestStopCallback_MiddleReleaseKeepsNeighboursLinked(t *testing.T) {
	s := NewStopSource()
	var order []int

	cb1 := NewStopCallback(s.Token(), func() { order = append(order, 1) })
	cb2 := NewStopCallback(s.Token(), func() { order = append(order, 2) })
	cb3 := NewStopCallback(s.Token(), func() { order = append(order, 3) })
	defer cb1.Release()
	defer cb3.Release()

	cb2.Release()
	s.RequestStop()
	assert.Equal(t, []int{1, 3}, order)
}

func TestStopCallback_MayRegisterOnAnotherSourceWhileFiring(t *testing.T) {
	s1 := NewStopSource()
	s2 := NewStopSource()

	var fromSecond bool
	var cb2 *StopCallback
	cb1 := NewStopCallback(s1.Token(), func() {
		cb2 = NewStopCallback(s2.Token(), func() { fromSecond = true })
	})
	defer cb1.Release()

	s1.RequestStop()
	require.NotNil(t, cb2)
	defer cb2.Release()
	assert.False(t, fromSecond)

	s2.RequestStop()
	assert.True(t, fromSecond)
}

func TestStopToken_ZeroValueNeverStops(t *testing.T) {
	var token StopToken
	assert.False(t, token.StopRequested())
	assert.False(t, token.CanBeStopped())

	var fired bool
	cb := NewStopCallback(token, func() { fired = true })
	cb.Release()
	assert.False(t, fired)
}

func TestStopToken_TracksSource(t *testing.T) {
	s := NewStopSource()
	token := s.Token()
	assert.True(t, token.CanBeStopped())
	assert.False(t, token.StopRequested())

	s.RequestStop()
	assert.True(t, token.StopRequested(), "a token is a live view, not a snapshot")
}
