package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// leaf is a minimal fixed-size Element used to exercise container
// layout without pulling in any concrete widget.
type leaf struct {
	Base
}

func newLeaf(w, h float32) *leaf {
	l := &leaf{}
	l.Base = NewBase(l)
	l.SetWidthPolicy(Fixed(w))
	l.SetHeightPolicy(Fixed(h))
	return l
}

func newStretchLeaf(weight float32) *leaf {
	l := &leaf{}
	l.Base = NewBase(l)
	l.SetWidthPolicy(Stretch(1))
	l.SetHeightPolicy(Stretch(weight))
	return l
}

func TestVBoxMeasureSumsHeights(t *testing.T) {
	v := NewVBox()
	v.Padding = 2
	v.SetWidthPolicy(Content())
	v.SetHeightPolicy(Content())
	v.AddChild(newLeaf(10, 20))
	v.AddChild(newLeaf(30, 5))

	size := v.Measure(Size{W: 100, H: 100})
	assert.Equal(t, float32(30), size.W)    // widest child
	assert.Equal(t, float32(27), size.H)    // 20 + 5 + one 2px padding gap
}

func TestVBoxArrangeDistributesStretch(t *testing.T) {
	v := NewVBox()
	v.SetWidthPolicy(Fixed(100))
	v.SetHeightPolicy(Fixed(100))

	fixedChild := newLeaf(50, 20)
	stretchA := newStretchLeaf(1)
	stretchB := newStretchLeaf(3)
	v.AddChild(fixedChild)
	v.AddChild(stretchA)
	v.AddChild(stretchB)

	v.Measure(Size{W: 100, H: 100})
	v.Arrange(Rect{X: 0, Y: 0, W: 100, H: 100})

	assert.Equal(t, float32(20), fixedChild.Rect().H)
	// leftover = 100 - 20 = 80, split 1:3
	assert.InDelta(t, 20, stretchA.Rect().H, 1e-4)
	assert.InDelta(t, 60, stretchB.Rect().H, 1e-4)
}

func TestHBoxArrangeDistributesStretch(t *testing.T) {
	h := NewHBox()
	h.SetWidthPolicy(Fixed(100))
	h.SetHeightPolicy(Fixed(50))

	fixedChild := newLeaf(20, 50)
	stretchA := newStretchLeaf(1)
	h.AddChild(fixedChild)
	h.AddChild(stretchA)

	h.Measure(Size{W: 100, H: 50})
	h.Arrange(Rect{X: 0, Y: 0, W: 100, H: 50})

	assert.Equal(t, float32(20), fixedChild.Rect().W)
	assert.InDelta(t, 80, stretchA.Rect().W, 1e-4)
}

func TestAbsoluteRectAccountsForParentOrigin(t *testing.T) {
	v := NewVBox()
	v.SetWidthPolicy(Fixed(100))
	v.SetHeightPolicy(Fixed(100))
	child := newLeaf(10, 10)
	v.AddChild(child)

	v.Measure(Size{W: 100, H: 100})
	v.Arrange(Rect{X: 5, Y: 5, W: 100, H: 100})

	assert.Equal(t, float32(5), v.AbsoluteRect().X)
	assert.Equal(t, float32(5), child.AbsoluteRect().X)
	assert.Equal(t, float32(5), child.AbsoluteRect().Y)
}

func TestEffectiveAlphaMultipliesParentChain(t *testing.T) {
	v := NewVBox()
	v.SetAlpha(0.5)
	child := newLeaf(10, 10)
	child.SetAlpha(0.5)
	v.AddChild(child)

	assert.InDelta(t, 0.25, child.EffectiveAlpha(), 1e-6)
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 20}
	assert.True(t, r.Contains(15, 15))
	assert.False(t, r.Contains(30, 30))
	assert.False(t, r.Contains(5, 15))
}
