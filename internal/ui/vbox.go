package ui

// VBox stacks children vertically with Padding between them. Fixed and
// Content children get their measured height; Stretch children share
// the remaining space proportionally to their height Policy's Weight.
// Within its row, a child is horizontally aligned per its own AlignH:
// Start/Center/End position it within the column width, Stretch fills
// the column width.
type VBox struct {
	Base
	Padding float32

	measured []Size
}

// NewVBox constructs an empty VBox.
func NewVBox() *VBox {
	v := &VBox{}
	v.Base = NewBase(v)
	return v
}

// Measure sums children's heights (plus padding) and takes the widest
// child's width, matching the Content-policy semantics for a container.
func (v *VBox) Measure(available Size) Size {
	v.measured = v.measured[:0]
	var totalH, maxW float32
	n := len(v.Children())
	for i, c := range v.Children() {
		s := c.Measure(Size{W: available.W, H: available.H})
		v.measured = append(v.measured, s)
		totalH += s.H
		if i < n-1 {
			totalH += v.Padding
		}
		if s.W > maxW {
			maxW = s.W
		}
	}

	w := resolveAxis(v.WidthPolicy(), available.W)
	if v.WidthPolicy().Kind == PolicyContent {
		w = maxW
	}
	h := resolveAxis(v.HeightPolicy(), available.H)
	if v.HeightPolicy().Kind == PolicyContent {
		h = totalH
	}
	return Size{W: w, H: h}
}

// Arrange lays children out top-to-bottom, giving Stretch children a
// share of the leftover height proportional to their weight.
func (v *VBox) Arrange(final Rect) {
	v.Base.Arrange(final)

	children := v.Children()
	n := len(children)
	if n == 0 {
		return
	}

	var fixedTotal, stretchWeight float32
	for i, c := range children {
		pol := heightPolicyOf(c)
		if pol.Kind == PolicyStretch {
			stretchWeight += pol.Weight
		} else {
			h := v.measured[i].H
			fixedTotal += h
		}
	}
	totalPadding := v.Padding * float32(n-1)
	leftover := final.H - fixedTotal - totalPadding
	if leftover < 0 {
		leftover = 0
	}

	y := float32(0)
	for i, c := range children {
		pol := heightPolicyOf(c)
		var h float32
		if pol.Kind == PolicyStretch && stretchWeight > 0 {
			h = leftover * (pol.Weight / stretchWeight)
		} else {
			h = v.measured[i].H
		}

		w := final.W
		x := float32(0)
		childW := w
		if cw := widthOf(v.measured, i); widthPolicyOf(c).Kind != PolicyStretch {
			childW = cw
			switch alignHOf(c) {
			case AlignCenter:
				x = (w - childW) / 2
			case AlignEnd:
				x = w - childW
			}
		}

		c.Arrange(Rect{X: x, Y: y, W: childW, H: h})
		y += h + v.Padding
	}
}

func widthOf(measured []Size, i int) float32 {
	if i < len(measured) {
		return measured[i].W
	}
	return 0
}

// heightPolicyOf/widthPolicyOf/alignHOf read policy/alignment off an
// Element without widening the Element interface: containers only need
// this for their own children, so the type assertion to *Base-embedding
// accessors lives here instead of in element.go.
type heightPolicyGetter interface{ HeightPolicy() Policy }
type widthPolicyGetter interface{ WidthPolicy() Policy }
type alignHGetter interface{ AlignH() Align }
type alignVGetter interface{ AlignV() Align }

func heightPolicyOf(e Element) Policy {
	if g, ok := e.(heightPolicyGetter); ok {
		return g.HeightPolicy()
	}
	return Fixed(0)
}

func widthPolicyOf(e Element) Policy {
	if g, ok := e.(widthPolicyGetter); ok {
		return g.WidthPolicy()
	}
	return Fixed(0)
}

func alignHOf(e Element) Align {
	if g, ok := e.(alignHGetter); ok {
		return g.AlignH()
	}
	return AlignStart
}

func alignVOf(e Element) Align {
	if g, ok := e.(alignVGetter); ok {
		return g.AlignV()
	}
	return AlignStart
}

// Draw paints nothing itself (a VBox is a pure layout container) and
// recurses into children, honoring visibility and alpha via Base.Draw.
func (v *VBox) Draw(dl DrawList) {
	v.Base.Draw(dl)
}
