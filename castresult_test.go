package corost

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCastResult_WidensNumeric(t *testing.T) {
	v, err, ok := Run(CastResult[int](Just(int16(42))))
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestCastResult_PropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err, ok := Run(CastResult[int64](JustException[int32](boom)))
	assert.True(t, ok)
	assert.Equal(t, boom, err)
}

func TestCastResult_PropagatesStopped(t *testing.T) {
	_, _, ok := Run(CastResult[int](JustStopped[int8]()))
	assert.False(t, ok)
}

func TestAsAny_BoxesValue(t *testing.T) {
	v, err, ok := Run(AsAny(Just("boxed")))
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, any("boxed"), v)
}
