package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleColorThemeIDResolve(t *testing.T) {
	theme := NewTheme("test", map[string]RGBA{
		"panel.background": {R: 0.1, G: 0.2, B: 0.3, A: 1},
	})
	c := ThemeID("panel.background").Resolve(theme)
	assert.Equal(t, RGBA{R: 0.1, G: 0.2, B: 0.3, A: 1}, c)
}

func TestStyleColorUnknownThemeIDFallsBack(t *testing.T) {
	theme := NewTheme("test", map[string]RGBA{})
	c := ThemeID("nonexistent").Resolve(theme)
	assert.Equal(t, float32(1), c.A)
}

func TestStyleColorCustomIgnoresTheme(t *testing.T) {
	custom := RGBA{R: 1, G: 0, B: 0, A: 1}
	c := Custom(custom).Resolve(nil)
	assert.Equal(t, custom, c)
}

func TestStyleColorWithAlphaOverride(t *testing.T) {
	theme := NewTheme("test", map[string]RGBA{
		"text.primary": {R: 1, G: 1, B: 1, A: 1},
	})
	c := ThemeID("text.primary").WithAlpha(0.5).Resolve(theme)
	assert.InDelta(t, 0.5, c.A, 1e-6)
}

func TestBlendMidpoint(t *testing.T) {
	a := RGBA{R: 0, G: 0, B: 0, A: 1}
	b := RGBA{R: 1, G: 1, B: 1, A: 1}
	mid := Blend(a, b, 0.5)
	assert.InDelta(t, 0.5, mid.R, 0.05)
	assert.InDelta(t, 0.5, mid.G, 0.05)
	assert.InDelta(t, 0.5, mid.B, 0.05)
}

func TestThemeCurrentFallsBackToDefault(t *testing.T) {
	SetCurrent(nil)
	assert.Equal(t, "default", Current().Name)
}

func TestThemeSetCurrent(t *testing.T) {
	custom := NewTheme("custom", map[string]RGBA{"x": {R: 1}})
	SetCurrent(custom)
	defer SetCurrent(nil)
	assert.Equal(t, "custom", Current().Name)
}
