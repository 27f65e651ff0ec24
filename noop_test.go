package corost

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoop(t *testing.T) {
	v, err, ok := Run(Noop())
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, Unit{}, v)
}

func TestNoop_AlreadyStopped(t *testing.T) {
	source := NewStopSource()
	source.RequestStop()

	_, _, ok := Run(Noop(), WithStopSource(source))
	assert.False(t, ok)
}

func TestNoop_SingleUse(t *testing.T) {
	task := Noop()
	task.GetWork()
	assert.PanicsWithValue(t, errAlreadyConsumed, func() {
		task.GetWork()
	})
}
