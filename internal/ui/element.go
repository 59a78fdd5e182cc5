// Package ui is a retained-mode element tree: measure/arrange/draw over a
// cached absolute-rect layout, with tweened animation, themed styling,
// input routing, and localization layered on top of an immediate-mode
// draw backend (the caller supplies the DrawList; this package never
// touches a GPU handle itself).
package ui

// PolicyKind selects how an element reports its desired size along one
// axis.
type PolicyKind int

const (
	// PolicyFixed returns a caller-supplied constant.
	PolicyFixed PolicyKind = iota
	// PolicyStretch shares remaining space with sibling Stretch elements,
	// proportional to Weight; returns 0 along the stretch axis so the
	// parent decides.
	PolicyStretch
	// PolicyContent derives size from children's measurements (for
	// containers) or intrinsic content size (for leaves).
	PolicyContent
)

// Policy is one axis's sizing rule.
type Policy struct {
	Kind   PolicyKind
	Value  float32 // meaningful for PolicyFixed
	Weight float32 // meaningful for PolicyStretch, default 1 if zero
}

// Fixed returns a Policy pinned to value.
func Fixed(value float32) Policy { return Policy{Kind: PolicyFixed, Value: value} }

// Stretch returns a Policy sharing remaining space by weight.
func Stretch(weight float32) Policy {
	if weight <= 0 {
		weight = 1
	}
	return Policy{Kind: PolicyStretch, Weight: weight}
}

// Content returns a Policy deriving size from content.
func Content() Policy { return Policy{Kind: PolicyContent} }

// Align is a one-axis alignment choice.
type Align int

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

// Rect is an axis-aligned box in the parent's coordinate space (Arrange
// input/output) or in absolute screen space (the cached position).
type Rect struct {
	X, Y, W, H float32
}

// Contains reports whether (px, py) falls within the rect, used by the
// hit test during input routing.
func (r Rect) Contains(px, py float32) bool {
	return px >= r.X && px < r.X+r.W && py >= r.Y && py < r.Y+r.H
}

// Size is a measured width/height pair.
type Size struct {
	W, H float32
}

// MouseEvent is the payload passed to HandleMouseEvent.
type MouseEvent struct {
	X, Y    float32
	Pressed bool
	Released bool
}

// Element is one node of the retained tree. Concrete widgets embed
// *Base and override Measure/Arrange/Draw/HandleMouseEvent as needed;
// the tree-walking logic in vbox.go, hbox.go, scrollview.go and input.go
// only depends on the
// Element interface, not on Base directly.
type Element interface {
	Measure(available Size) Size
	Arrange(final Rect)
	Draw(dl DrawList)
	Update(dt float32)

	AbsoluteRect() Rect
	Visible() bool
	SetVisible(bool)
	Alpha() float32
	SetAlpha(float32)
	EffectiveAlpha() float32

	Parent() Element
	setParent(Element)
	Children() []Element
	AddChild(Element)
	RemoveChild(Element)

	Focusable() bool
	BlocksInput() bool

	HandleMouseEvent(ev MouseEvent) bool

	Tweens() *TweenList
}

// DrawList is the immediate-mode backend every Draw call emits
// primitives into. Kept minimal and backend-agnostic: the renderer
// implements it however its draw-call batching works.
type DrawList interface {
	Rect(r Rect, color StyleColor, alpha float32)
	Text(r Rect, text string, color StyleColor, alpha float32)
	PushClip(r Rect)
	PopClip()
}

// Base is the common Element implementation concrete widgets embed.
// Holds the fields spec'd for every node: rect, absolute-position cache,
// visibility, alpha, width/height policy, alignment, parent, ordered
// children, focusable/blockInput flags, and the active tween list.
type Base struct {
	rect     Rect
	absolute Rect

	visible bool
	alpha   float32

	widthPolicy  Policy
	heightPolicy Policy
	alignH       Align
	alignV       Align

	parent   Element
	children []Element

	focusable   bool
	blockInput  bool

	tweens TweenList

	// self is set by NewBase to the concrete widget embedding this Base.
	// AddChild records it as each new child's parent, so a Base whose
	// self is nil gives its children no parent.
	self Element
}

// NewBase constructs a Base with default visible/opaque/fixed-zero
// state. self is the concrete Element embedding this Base; AddChild
// records it as the parent of each child, so nil only suits elements
// that never get children.
func NewBase(self Element) Base {
	return Base{
		visible:      true,
		alpha:        1,
		widthPolicy:  Fixed(0),
		heightPolicy: Fixed(0),
		self:         self,
	}
}

func (b *Base) Rect() Rect          { return b.rect }
func (b *Base) SetRect(r Rect)      { b.rect = r }
func (b *Base) AbsoluteRect() Rect  { return b.absolute }
func (b *Base) Visible() bool       { return b.visible }
func (b *Base) SetVisible(v bool)   { b.visible = v }
func (b *Base) Alpha() float32      { return b.alpha }
func (b *Base) SetAlpha(a float32)  { b.alpha = a }

// EffectiveAlpha multiplies this element's alpha by its parent chain's,
// per the draw-phase compositing rule.
func (b *Base) EffectiveAlpha() float32 {
	if b.parent == nil {
		return b.alpha
	}
	return b.alpha * b.parent.EffectiveAlpha()
}

func (b *Base) WidthPolicy() Policy        { return b.widthPolicy }
func (b *Base) SetWidthPolicy(p Policy)    { b.widthPolicy = p }
func (b *Base) HeightPolicy() Policy       { return b.heightPolicy }
func (b *Base) SetHeightPolicy(p Policy)   { b.heightPolicy = p }
func (b *Base) AlignH() Align              { return b.alignH }
func (b *Base) SetAlignH(a Align)          { b.alignH = a }
func (b *Base) AlignV() Align              { return b.alignV }
func (b *Base) SetAlignV(a Align)          { b.alignV = a }

func (b *Base) Parent() Element     { return b.parent }
func (b *Base) setParent(p Element) { b.parent = p }
func (b *Base) Children() []Element { return b.children }

// AddChild appends child and records b as its parent.
func (b *Base) AddChild(child Element) {
	child.setParent(b.self)
	b.children = append(b.children, child)
}

// RemoveChild removes the first occurrence of child, if present.
func (b *Base) RemoveChild(child Element) {
	for i, c := range b.children {
		if c == child {
			b.children = append(b.children[:i], b.children[i+1:]...)
			return
		}
	}
}

func (b *Base) Focusable() bool      { return b.focusable }
func (b *Base) SetFocusable(v bool)  { b.focusable = v }
func (b *Base) BlocksInput() bool    { return b.blockInput }
func (b *Base) SetBlocksInput(v bool) { b.blockInput = v }

func (b *Base) Tweens() *TweenList { return &b.tweens }

// Update advances this element's tweens, then recurses into children.
// Leaf widgets overriding Update for their own per-frame state should
// call Base.Update(dt) first to keep tween advancement and child
// recursion working.
func (b *Base) Update(dt float32) {
	b.tweens.Advance(dt)
	for _, c := range b.children {
		c.Update(dt)
	}
}

// Measure returns the size this element wants given available, using
// the Content-policy union-of-children default. Containers (VBox/HBox/
// ScrollView) override this with their own arrangement-aware measure.
func (b *Base) Measure(available Size) Size {
	w := resolveAxis(b.widthPolicy, available.W)
	h := resolveAxis(b.heightPolicy, available.H)
	if b.widthPolicy.Kind == PolicyContent || b.heightPolicy.Kind == PolicyContent {
		cw, ch := float32(0), float32(0)
		for _, c := range b.children {
			s := c.Measure(available)
			if s.W > cw {
				cw = s.W
			}
			if s.H > ch {
				ch = s.H
			}
		}
		if b.widthPolicy.Kind == PolicyContent {
			w = cw
		}
		if b.heightPolicy.Kind == PolicyContent {
			h = ch
		}
	}
	return Size{W: w, H: h}
}

func resolveAxis(p Policy, available float32) float32 {
	switch p.Kind {
	case PolicyFixed:
		return p.Value
	case PolicyStretch:
		return 0
	default: // PolicyContent, resolved by the caller from children
		return available
	}
}

// Arrange assigns final as the element's rect and recomputes its
// absolute position from the parent's absolute origin. Children are not
// arranged here; containers call this first and then arrange their own
// children.
func (b *Base) Arrange(final Rect) {
	b.rect = final
	if b.parent != nil {
		parentAbs := b.parent.AbsoluteRect()
		b.absolute = Rect{X: parentAbs.X + final.X, Y: parentAbs.Y + final.Y, W: final.W, H: final.H}
	} else {
		b.absolute = final
	}
}

// Draw emits nothing for a bare Base; concrete widgets override this.
// Default recurses into children so composite widgets that don't need
// their own visuals still draw correctly.
func (b *Base) Draw(dl DrawList) {
	if !b.visible {
		return
	}
	for _, c := range b.children {
		c.Draw(dl)
	}
}

// HandleMouseEvent reports unhandled by default; focusable/clickable
// widgets override this.
func (b *Base) HandleMouseEvent(ev MouseEvent) bool { return false }
