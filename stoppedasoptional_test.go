package corost

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoppedAsOptional_ValuePassesThrough(t *testing.T) {
	v, err, ok := Run(StoppedAsOptional(Just(7)))
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, Optional[int]{Valid: true, Value: 7}, v)
}

func TestStoppedAsOptional_ReifiesChildCancellation(t *testing.T) {
	v, err, ok := Run(StoppedAsOptional(JustStopped[int]()))
	assert.True(t, ok, "child-initiated cancellation becomes a normal result")
	assert.NoError(t, err)
	assert.False(t, v.Valid)
}

func TestStoppedAsOptional_ErrorPassesThrough(t *testing.T) {
	boom := errors.New("boom")
	v, err, ok := Run(StoppedAsOptional(JustException[int](boom)))
	assert.True(t, ok)
	assert.Equal(t, boom, err)
	assert.False(t, v.Valid)
}

func TestStoppedAsOptional_ParentCancellationStillPropagates(t *testing.T) {
	source := NewStopSource()
	source.RequestStop()

	_, _, ok := Run(StoppedAsOptional(Just(1)), WithStopSource(source))
	assert.False(t, ok, "cancellation requested by the parent must not be reified")
}

func TestStoppedAsOptional_ParentCancelWhileSuspended(t *testing.T) {
	_, _, ok := Run(StopWhen(StoppedAsOptional(SuspendForever()), Noop()))
	// StopWhen's trigger completing requests the inner token, which for the
	// StoppedAsOptional child counts as parent-requested: stopped, not a
	// reified optional, so StopWhen reports the unwind as its own nullopt.
	assert.True(t, ok)
}
