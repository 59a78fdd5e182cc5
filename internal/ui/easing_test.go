package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEasingBoundaries(t *testing.T) {
	fns := []EasingFunc{EaseLinear, EaseInQuad, EaseOutQuad, EaseInOutQuad, EaseOutBack}
	for _, fn := range fns {
		assert.InDelta(t, 0, fn(0), 1e-5)
		assert.InDelta(t, 1, fn(1), 1e-5)
	}
}

func TestEaseLinearIsIdentity(t *testing.T) {
	assert.Equal(t, float32(0.5), EaseLinear(0.5))
}

func TestEaseInQuadMonotonic(t *testing.T) {
	prev := float32(0)
	for i := 1; i <= 10; i++ {
		t0 := float32(i) / 10
		v := EaseInQuad(t0)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, float32(0), clamp01(-1))
	assert.Equal(t, float32(1), clamp01(2))
	assert.Equal(t, float32(0.25), clamp01(0.25))
}
