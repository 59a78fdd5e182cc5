package handle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleReleaseCallsReleaseOnceAndZeroes(t *testing.T) {
	calls := 0
	h := Wrap(42, ReleaseDestroy, func(v int) { calls++ })

	assert.True(t, h.Valid())
	h.Release()
	assert.False(t, h.Valid())
	assert.Equal(t, 0, h.Value())

	h.Release()
	assert.Equal(t, 1, calls)
}

func TestHandleReleaseOnZeroValueIsNoop(t *testing.T) {
	calls := 0
	h := Wrap(0, ReleaseDestroy, func(v int) { calls++ })
	assert.False(t, h.Valid())
	h.Release()
	assert.Equal(t, 0, calls)
}

func TestHandleTakeTransfersOwnership(t *testing.T) {
	calls := 0
	h := Wrap(7, ReleaseFree, func(v int) { calls++ })

	moved := h.Take()
	assert.False(t, h.Valid())
	assert.True(t, moved.Valid())

	h.Release()
	assert.Equal(t, 0, calls)

	moved.Release()
	assert.Equal(t, 1, calls)
}

func TestHandleKindReportsReleasePath(t *testing.T) {
	h := Wrap(1, ReleaseFree, func(int) {})
	assert.Equal(t, ReleaseFree, h.Kind())
}
