package ui

// InputRouter implements the per-frame routing algorithm: an element
// that has captured the pointer gets every event unconditionally;
// otherwise the tree is walked top-down in reverse child order (last
// drawn is hit-tested first) looking for a blocking element under the
// pointer. Exactly one element may be focused and, independently, at
// most one may capture the pointer -- the two may differ.
type InputRouter struct {
	root Element

	captured Element
	focused  Element
}

// NewInputRouter builds a router over root.
func NewInputRouter(root Element) *InputRouter {
	return &InputRouter{root: root}
}

// Capture marks e as capturing the pointer, routing every subsequent
// event to it regardless of hit testing until Release is called.
func (r *InputRouter) Capture(e Element) { r.captured = e }

// Release clears pointer capture.
func (r *InputRouter) Release() { r.captured = nil }

// Captured returns the element currently capturing the pointer, or nil.
func (r *InputRouter) Captured() Element { return r.captured }

// Focused returns the currently focused element, or nil.
func (r *InputRouter) Focused() Element { return r.focused }

// FocusHandler is implemented by elements that want to react to gaining
// or losing keyboard focus (e.g. to stop a cursor blink or commit a
// pending edit). Focus changes atomically: the previously focused
// element's OnFocusChanged(false) runs before the newly focused
// element's OnFocusChanged(true), both within the same Focus call.
type FocusHandler interface {
	OnFocusChanged(focused bool)
}

// Focus sets the focused element. Passing nil clears focus (click-
// outside / Escape). The previously focused element, if any and if it
// implements FocusHandler, is notified before the new one is.
func (r *InputRouter) Focus(e Element) {
	if e != nil && !e.Focusable() {
		return
	}
	prev := r.focused
	if prev != nil && prev != e {
		if fh, ok := prev.(FocusHandler); ok {
			fh.OnFocusChanged(false)
		}
	}
	r.focused = e
	if e != nil && e != prev {
		if fh, ok := e.(FocusHandler); ok {
			fh.OnFocusChanged(true)
		}
	}
}

// DispatchMouse routes ev per the three-step algorithm and returns
// whether some element consumed it.
func (r *InputRouter) DispatchMouse(ev MouseEvent) bool {
	if r.captured != nil {
		r.captured.HandleMouseEvent(ev)
		return true
	}

	hit := hitTest(r.root, ev)
	if hit == nil {
		if ev.Pressed {
			r.Focus(nil)
		}
		return false
	}

	if ev.Pressed && hit.Focusable() {
		r.Focus(hit)
	}
	return hit.HandleMouseEvent(ev)
}

// hitTest walks the tree top-down, last-drawn-child-first, returning
// the first blocking element whose absolute rect contains the pointer.
func hitTest(e Element, ev MouseEvent) Element {
	if e == nil || !e.Visible() {
		return nil
	}
	children := e.Children()
	for i := len(children) - 1; i >= 0; i-- {
		if hit := hitTest(children[i], ev); hit != nil {
			return hit
		}
	}
	if e.BlocksInput() && e.AbsoluteRect().Contains(ev.X, ev.Y) {
		return e
	}
	return nil
}

// KeyEvent is a single keyboard event delivered to the focused element.
type KeyEvent struct {
	Key     string
	Pressed bool
}

// KeyHandler is implemented by elements that additionally want keyboard/
// character events while focused (InputField is the only one today).
// Widgets not implementing it simply never receive
// DispatchKey calls even while focused.
type KeyHandler interface {
	HandleKeyEvent(ev KeyEvent) bool
}

// DispatchKey routes ev to the focused element if it implements
// KeyHandler, per the "focused element receives keyboard events" rule.
// When the focused element is an InputField, a pressed Enter or Escape
// clears focus after the field has handled the key.
func (r *InputRouter) DispatchKey(ev KeyEvent) bool {
	if r.focused == nil {
		return false
	}
	if kh, ok := r.focused.(KeyHandler); ok {
		handled := kh.HandleKeyEvent(ev)
		if _, isField := r.focused.(*InputField); isField && ev.Pressed && (ev.Key == "Enter" || ev.Key == "Escape") {
			r.Focus(nil)
		}
		return handled
	}
	return false
}
