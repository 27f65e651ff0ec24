package corost

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJust(t *testing.T) {
	v, err, ok := Run(Just(42))
	assert.True(t, ok)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestJust_AlreadyStopped(t *testing.T) {
	source := NewStopSource()
	source.RequestStop()

	_, _, ok := Run(Just("unused"), WithStopSource(source))
	assert.False(t, ok)
}

func TestJustException(t *testing.T) {
	boom := errors.New("boom")
	_, err, ok := Run(JustException[int](boom))
	assert.True(t, ok)
	assert.Equal(t, boom, err)
}

func TestJustStopped(t *testing.T) {
	_, _, ok := Run(JustStopped[Unit]())
	assert.False(t, ok, "just_stopped always reports stopped, regardless of the chain's token")
}
