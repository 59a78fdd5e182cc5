package ui

// Button is a clickable element with a hover-progress tween driving its
// background tint, modeled on NeuralButton's m_hover_progress animation.
type Button struct {
	Base

	Text    string
	OnClick func()

	IdleColor, HoverColor, PressedColor StyleColor

	hoverProgress float32
	pressed       bool
	hovered       bool
}

// NewButton builds a Button with the default idle/hover/pressed theme
// colors.
func NewButton(text string, onClick func()) *Button {
	b := &Button{
		Text:          text,
		OnClick:       onClick,
		IdleColor:     ThemeID("button.idle"),
		HoverColor:    ThemeID("button.hover"),
		PressedColor:  ThemeID("button.pressed"),
	}
	b.Base = NewBase(b)
	b.Base.SetFocusable(true)
	b.Base.SetBlocksInput(true)
	return b
}

// Update tweens hoverProgress toward its target (1 while hovered, 0
// otherwise) instead of snapping, matching the original's per-frame
// animated hover ramp.
func (b *Button) Update(dt float32) {
	target := float32(0)
	if b.hovered {
		target = 1
	}
	step := dt * 6 // ramps fully in ~1/6s
	if b.hoverProgress < target {
		b.hoverProgress = minFloat32(b.hoverProgress+step, target)
	} else if b.hoverProgress > target {
		b.hoverProgress = maxFloat32(b.hoverProgress-step, target)
	}
	b.Base.Update(dt)
}

func minFloat32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

// currentColor blends idle->hover by hoverProgress, and substitutes the
// pressed color outright while the mouse button is down.
func (b *Button) currentColor() StyleColor {
	if b.pressed {
		return b.PressedColor
	}
	idle := b.IdleColor.Resolve(Current())
	hover := b.HoverColor.Resolve(Current())
	return Custom(Blend(idle, hover, b.hoverProgress))
}

// Draw paints the background tint and centered label text.
func (b *Button) Draw(dl DrawList) {
	if !b.Visible() {
		return
	}
	alpha := b.EffectiveAlpha()
	dl.Rect(b.AbsoluteRect(), b.currentColor(), alpha)
	dl.Text(b.AbsoluteRect(), b.Text, ThemeID("text.primary"), alpha)
}

// HandleMouseEvent tracks hover/press state and fires OnClick on
// release while still within the button's rect.
func (b *Button) HandleMouseEvent(ev MouseEvent) bool {
	inside := b.AbsoluteRect().Contains(ev.X, ev.Y)
	b.hovered = inside
	if ev.Pressed && inside {
		b.pressed = true
		return true
	}
	if ev.Released {
		wasPressed := b.pressed
		b.pressed = false
		if wasPressed && inside && b.OnClick != nil {
			b.OnClick()
		}
		return wasPressed
	}
	return false
}

// Slider is a drag-to-set track, modeled on SliderTrack: a normalized
// [0,1] value, a fill color, and a drag gesture that tracks the mouse
// horizontally across the track's width.
type Slider struct {
	Base

	Value         float32 // normalized, [0,1]
	OnValueChanged func(value float32)

	TrackColor, FillColor StyleColor

	dragging bool
}

// NewSlider builds a Slider at value (clamped to [0,1]).
func NewSlider(value float32, onChange func(float32)) *Slider {
	s := &Slider{
		Value:          clamp01(value),
		OnValueChanged: onChange,
		TrackColor:     ThemeID("slider.track"),
		FillColor:      ThemeID("slider.fill"),
	}
	s.Base = NewBase(s)
	s.Base.SetBlocksInput(true)
	return s
}

// SetValue clamps and stores a new normalized value.
func (s *Slider) SetValue(v float32) { s.Value = clamp01(v) }

// Draw paints the track and a fill proportional to Value.
func (s *Slider) Draw(dl DrawList) {
	if !s.Visible() {
		return
	}
	alpha := s.EffectiveAlpha()
	r := s.AbsoluteRect()
	dl.Rect(r, s.TrackColor, alpha)
	dl.Rect(Rect{X: r.X, Y: r.Y, W: r.W * s.Value, H: r.H}, s.FillColor, alpha)
}

// HandleMouseEvent begins/continues/ends a drag gesture, recomputing
// Value from the pointer's horizontal position within the track.
func (s *Slider) HandleMouseEvent(ev MouseEvent) bool {
	r := s.AbsoluteRect()
	if ev.Pressed && r.Contains(ev.X, ev.Y) {
		s.dragging = true
	}
	if s.dragging {
		if r.W > 0 {
			s.SetValue((ev.X - r.X) / r.W)
			if s.OnValueChanged != nil {
				s.OnValueChanged(s.Value)
			}
		}
		if ev.Released {
			s.dragging = false
		}
		return true
	}
	return false
}

// InputField is a single-line editable text field with a cursor that
// blinks while focused and an always-drawn underline, modeled on InputField's cursor/
// selection/underline-animation fields (narrowed to cursor position
// only; selection is left to a richer text-editing pass).
type InputField struct {
	Base

	Text      string
	OnChange  func(string)
	OnCommit  func(string)

	TextColor, BorderColor StyleColor

	cursorPos    int
	blinkTimer   float32
	showCursor   bool
	focused      bool
}

// NewInputField builds an empty InputField.
func NewInputField() *InputField {
	f := &InputField{
		TextColor:   ThemeID("text.primary"),
		BorderColor: ThemeID("panel.border"),
	}
	f.Base = NewBase(f)
	f.Base.SetFocusable(true)
	f.Base.SetBlocksInput(true)
	return f
}

// Update advances the cursor-blink timer at a fixed 0.5s half-period.
func (f *InputField) Update(dt float32) {
	f.blinkTimer += dt
	if f.blinkTimer >= 0.5 {
		f.blinkTimer = 0
		f.showCursor = !f.showCursor
	}
	f.Base.Update(dt)
}

// OnFocusChanged stops the cursor blinking (and hides it) the moment
// focus moves away, and restarts it visibly the moment focus arrives,
// so the transitioning frame never shows a stale cursor on the wrong
// field.
func (f *InputField) OnFocusChanged(focused bool) {
	f.focused = focused
	f.showCursor = focused
	f.blinkTimer = 0
}

// Draw paints the border (visible always or only while focused,
// per UnderlineDisplayMode in spirit -- simplified to "always") and the
// text with an inline cursor glyph while focused.
func (f *InputField) Draw(dl DrawList) {
	if !f.Visible() {
		return
	}
	alpha := f.EffectiveAlpha()
	r := f.AbsoluteRect()
	dl.Rect(Rect{X: r.X, Y: r.Y + r.H - 1, W: r.W, H: 1}, f.BorderColor, alpha)

	text := f.Text
	if f.focused && f.showCursor {
		text = text[:f.cursorPos] + "|" + text[f.cursorPos:]
	}
	dl.Text(r, text, f.TextColor, alpha)
}

// HandleKeyEvent inserts single-character keys at the cursor, handles
// Backspace and Left/Right, and commits on Enter. Focus is not cleared
// here; InputRouter.DispatchKey clears it on Enter or Escape.
func (f *InputField) HandleKeyEvent(ev KeyEvent) bool {
	if !ev.Pressed {
		return false
	}
	switch ev.Key {
	case "Backspace":
		if f.cursorPos > 0 {
			f.Text = f.Text[:f.cursorPos-1] + f.Text[f.cursorPos:]
			f.cursorPos--
			f.fireChange()
		}
	case "Enter":
		if f.OnCommit != nil {
			f.OnCommit(f.Text)
		}
	case "Left":
		if f.cursorPos > 0 {
			f.cursorPos--
		}
	case "Right":
		if f.cursorPos < len(f.Text) {
			f.cursorPos++
		}
	default:
		if len(ev.Key) == 1 {
			f.Text = f.Text[:f.cursorPos] + ev.Key + f.Text[f.cursorPos:]
			f.cursorPos++
			f.fireChange()
		}
	}
	return true
}

func (f *InputField) fireChange() {
	if f.OnChange != nil {
		f.OnChange(f.Text)
	}
}

// Tooltip shows a short text label pinned near a trigger element,
// fading/scaling in and out, modeled on GlobalTooltip's expand/collapse
// state machine (narrowed to an alpha tween; position pivoting is a
// host-layer concern once it knows the trigger's screen location).
type Tooltip struct {
	Base

	Text string

	alpha float32
}

// NewTooltip builds a hidden Tooltip.
func NewTooltip() *Tooltip {
	t := &Tooltip{}
	t.Base = NewBase(t)
	t.Base.SetVisible(false)
	return t
}

// Show displays text, tweening alpha in over 0.15s.
func (t *Tooltip) Show(text string) {
	t.Text = text
	t.Base.SetVisible(true)
	Animate(t.Tweens(), &t.alpha, t.alpha, 1, 0.15, EaseOutQuad, nil)
}

// Hide tweens alpha out over 0.15s, then hides the element.
func (t *Tooltip) Hide() {
	self := t
	Animate(t.Tweens(), &t.alpha, t.alpha, 0, 0.15, EaseOutQuad, func() {
		self.Base.SetVisible(false)
	})
}

// Draw paints a panel background and the tooltip text at the tweened
// alpha.
func (t *Tooltip) Draw(dl DrawList) {
	if !t.Visible() {
		return
	}
	r := t.AbsoluteRect()
	dl.Rect(r, ThemeID("panel.background"), t.alpha)
	dl.Text(r, t.Text, ThemeID("text.primary"), t.alpha)
}
