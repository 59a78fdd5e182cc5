package ui

// ScrollView arranges a single content child at its measured height; if
// content height exceeds the viewport, scrolling is exposed via
// ScrollOffset and drawing is clipped to the view's own rect.
type ScrollView struct {
	Base

	content Element

	ScrollOffset  float32
	contentHeight float32
}

// NewScrollView constructs an empty ScrollView.
func NewScrollView() *ScrollView {
	s := &ScrollView{}
	s.Base = NewBase(s)
	return s
}

// SetContent replaces the scrolled child, reparenting it under this
// view.
func (s *ScrollView) SetContent(content Element) {
	if s.content != nil {
		s.Base.RemoveChild(s.content)
	}
	s.content = content
	if content != nil {
		s.Base.AddChild(content)
	}
}

// Measure reports its own policy-resolved size; a ScrollView never
// grows to its content's full height since clipping the overflow is the
// entire point.
func (s *ScrollView) Measure(available Size) Size {
	if s.content != nil {
		cs := s.content.Measure(Size{W: available.W, H: 1 << 20})
		s.contentHeight = cs.H
	}
	w := resolveAxis(s.WidthPolicy(), available.W)
	h := resolveAxis(s.HeightPolicy(), available.H)
	return Size{W: w, H: h}
}

// MaxScroll returns how far the content can scroll before its bottom
// edge reaches the viewport bottom.
func (s *ScrollView) MaxScroll() float32 {
	overflow := s.contentHeight - s.Rect().H
	if overflow < 0 {
		return 0
	}
	return overflow
}

// Arrange places the content child at its full measured height, offset
// upward by ScrollOffset (clamped to [0, MaxScroll()]).
func (s *ScrollView) Arrange(final Rect) {
	s.Base.Arrange(final)

	max := s.MaxScroll()
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
	if s.ScrollOffset > max {
		s.ScrollOffset = max
	}

	if s.content != nil {
		s.content.Arrange(Rect{X: 0, Y: -s.ScrollOffset, W: final.W, H: s.contentHeight})
	}
}

// Draw clips to the view's own absolute rect before drawing the
// content child, so scrolled-out rows never paint outside the viewport.
func (s *ScrollView) Draw(dl DrawList) {
	if !s.Visible() {
		return
	}
	dl.PushClip(s.AbsoluteRect())
	if s.content != nil {
		s.content.Draw(dl)
	}
	dl.PopClip()
}

// ScrollBy nudges ScrollOffset by delta, clamping to the valid range.
// Typically wired to the mouse wheel in the host's input loop.
func (s *ScrollView) ScrollBy(delta float32) {
	s.ScrollOffset += delta
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
	if max := s.MaxScroll(); s.ScrollOffset > max {
		s.ScrollOffset = max
	}
}
