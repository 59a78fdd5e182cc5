package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInputRouterHitTestPicksTopmostChild(t *testing.T) {
	root := NewVBox()
	root.SetWidthPolicy(Fixed(100))
	root.SetHeightPolicy(Fixed(100))

	back := NewButton("back", nil)
	back.SetWidthPolicy(Fixed(100))
	back.SetHeightPolicy(Fixed(100))
	front := NewButton("front", nil)
	front.SetWidthPolicy(Fixed(100))
	front.SetHeightPolicy(Fixed(100))

	root.AddChild(back)
	root.AddChild(front)
	root.Measure(Size{W: 100, H: 100})
	root.Arrange(Rect{X: 0, Y: 0, W: 100, H: 100})
	// The VBox stacks front below back; move front on top of back so the
	// two overlap at the click point.
	front.Arrange(Rect{X: 0, Y: 0, W: 100, H: 100})

	router := NewInputRouter(root)
	handled := router.DispatchMouse(MouseEvent{X: 10, Y: 10, Pressed: true})
	assert.True(t, handled)
	assert.Equal(t, Element(front), router.Focused())
}

func TestInputRouterClickOutsideClearsFocus(t *testing.T) {
	root := NewVBox()
	root.SetWidthPolicy(Fixed(50))
	root.SetHeightPolicy(Fixed(50))
	btn := NewButton("x", nil)
	btn.SetWidthPolicy(Fixed(50))
	btn.SetHeightPolicy(Fixed(50))
	root.AddChild(btn)
	root.Measure(Size{W: 50, H: 50})
	root.Arrange(Rect{X: 0, Y: 0, W: 50, H: 50})

	router := NewInputRouter(root)
	router.DispatchMouse(MouseEvent{X: 10, Y: 10, Pressed: true})
	assert.NotNil(t, router.Focused())

	router.DispatchMouse(MouseEvent{X: 500, Y: 500, Pressed: true})
	assert.Nil(t, router.Focused())
}

func TestInputRouterCaptureBypassesHitTest(t *testing.T) {
	root := NewVBox()
	btn := NewButton("x", nil)
	router := NewInputRouter(root)

	router.Capture(btn)
	handled := router.DispatchMouse(MouseEvent{X: -100, Y: -100})
	assert.True(t, handled)
	assert.Equal(t, Element(btn), router.Captured())

	router.Release()
	assert.Nil(t, router.Captured())
}

func TestInputRouterDispatchKeyRoutesToFocused(t *testing.T) {
	root := NewVBox()
	field := NewInputField()
	root.AddChild(field)
	router := NewInputRouter(root)
	router.Focus(field)

	router.DispatchKey(KeyEvent{Key: "a", Pressed: true})
	assert.Equal(t, "a", field.Text)
}

func TestInputRouterFocusRejectsNonFocusable(t *testing.T) {
	root := NewVBox()
	router := NewInputRouter(root)
	router.Focus(root) // VBox is not focusable
	assert.Nil(t, router.Focused())
}

func TestInputRouterFocusHandoffNotifiesBothFields(t *testing.T) {
	root := NewVBox()
	a := NewInputField()
	a.SetWidthPolicy(Fixed(50))
	a.SetHeightPolicy(Fixed(20))
	b := NewInputField()
	b.SetWidthPolicy(Fixed(50))
	b.SetHeightPolicy(Fixed(20))
	root.AddChild(a)
	root.AddChild(b)
	root.Measure(Size{W: 50, H: 40})
	root.Arrange(Rect{X: 0, Y: 0, W: 50, H: 40})

	router := NewInputRouter(root)
	router.Focus(a)
	assert.True(t, a.focused)
	assert.False(t, b.focused)

	router.Focus(b)
	assert.False(t, a.focused, "A must lose focus on the transitioning frame")
	assert.True(t, b.focused)
	assert.Equal(t, Element(b), router.Focused())
}
