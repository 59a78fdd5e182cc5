package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHackerTextRevealsFullyAtEnd(t *testing.T) {
	h := NewHackerText(1.0)
	h.Start("hello", 0)
	h.Update(1.0)
	assert.Equal(t, float32(1), h.Progress())
	assert.Equal(t, "hello", h.Render())
}

func TestHackerTextDelayHoldsOff(t *testing.T) {
	h := NewHackerText(1.0)
	h.Start("hello", 0.5)
	h.Update(0.2)
	assert.Equal(t, float32(0), h.Progress())
}

func TestHackerTextRenderPreservesByteLength(t *testing.T) {
	h := NewHackerText(1.0)
	h.Start("hi 世界", 0)
	h.Update(0.3)
	rendered := h.Render()
	assert.Equal(t, len("hi 世界"), len(rendered))
}

func TestUtf8CharCount(t *testing.T) {
	assert.Equal(t, 5, utf8CharCount("hello"))
	assert.Equal(t, 2, utf8CharCount("世界"))
	assert.Equal(t, 4, utf8CharCount("hi 世"))
}

func TestByteLengthOfChar(t *testing.T) {
	assert.Equal(t, 1, byteLengthOfChar('a'))
	assert.Equal(t, 3, byteLengthOfChar("世"[0]))
}

func TestScrollTextState(t *testing.T) {
	s := &ScrollText{Duration: 1.0, Easing: EaseLinear}
	s.Start("old", "new")

	s.Update(0)
	state := s.State()
	assert.Equal(t, "old", state.OldText)
	assert.Equal(t, "new", state.NewText)
	assert.InDelta(t, 1, state.OldAlpha, 1e-4)
	assert.InDelta(t, 0, state.NewAlpha, 1e-4)

	s.Update(1.0)
	state = s.State()
	assert.InDelta(t, 0, state.OldAlpha, 1e-4)
	assert.InDelta(t, 1, state.NewAlpha, 1e-4)
}
