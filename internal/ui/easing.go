package ui

import "github.com/chewxy/math32"

// EasingFunc maps normalized time t in [0,1] to an eased progress value
// (not necessarily clamped to [0,1] itself -- EaseOutBack overshoots).
type EasingFunc func(t float32) float32

// EaseLinear is the identity easing.
func EaseLinear(t float32) float32 { return t }

// EaseInQuad accelerates from zero velocity.
func EaseInQuad(t float32) float32 { return t * t }

// EaseOutQuad decelerates to zero velocity.
func EaseOutQuad(t float32) float32 { return t * (2 - t) }

// EaseInOutQuad accelerates then decelerates.
func EaseInOutQuad(t float32) float32 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// backOvershoot is the standard overshoot constant used by Penner-style
// "back" easing formulas.
const backOvershoot = 1.70158

// EaseOutBack decelerates past the target before settling back, per the
// standard closed-form back-ease formula.
func EaseOutBack(t float32) float32 {
	t -= 1
	return t*t*((backOvershoot+1)*t+backOvershoot) + 1
}

// clamp01 restricts t to [0,1], used before evaluating an easing
// function from a tween's raw currentTime/duration ratio.
func clamp01(t float32) float32 {
	return math32.Max(0, math32.Min(1, t))
}
