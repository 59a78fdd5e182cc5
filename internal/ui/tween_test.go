package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTweenAdvance(t *testing.T) {
	var v float32
	list := &TweenList{}
	completed := false
	Animate(list, &v, 0, 10, 1.0, EaseLinear, func() { completed = true })

	list.Advance(0.5)
	assert.InDelta(t, 5, v, 1e-4)
	assert.False(t, completed)

	list.Advance(0.5)
	assert.InDelta(t, 10, v, 1e-4)
	assert.True(t, completed)

	// The completed tween is pruned from the active list.
	list.Advance(1.0)
	assert.InDelta(t, 10, v, 1e-4)
}

func TestTweenRetargetReplacesPrevious(t *testing.T) {
	var v float32
	list := &TweenList{}
	Animate(list, &v, 0, 100, 10.0, EaseLinear, nil)
	Animate(list, &v, 0, 1, 1.0, EaseLinear, nil)

	assert.Len(t, list.active, 1)
	list.Advance(1.0)
	assert.InDelta(t, 1, v, 1e-4)
}

func TestTweenStop(t *testing.T) {
	var v float32
	list := &TweenList{}
	Animate(list, &v, 0, 10, 1.0, EaseLinear, nil)
	list.Stop(&v)
	assert.Empty(t, list.active)
	list.Advance(1.0)
	assert.Equal(t, float32(0), v)
}
