package ui

// HBox stacks children horizontally with Padding between them,
// symmetric with VBox along the swapped axis: Stretch children share
// leftover width by weight, and within its column each child is
// vertically aligned per its own AlignV.
type HBox struct {
	Base
	Padding float32

	measured []Size
}

// NewHBox constructs an empty HBox.
func NewHBox() *HBox {
	h := &HBox{}
	h.Base = NewBase(h)
	return h
}

// Measure sums children's widths (plus padding) and takes the tallest
// child's height.
func (h *HBox) Measure(available Size) Size {
	h.measured = h.measured[:0]
	var totalW, maxH float32
	n := len(h.Children())
	for i, c := range h.Children() {
		s := c.Measure(Size{W: available.W, H: available.H})
		h.measured = append(h.measured, s)
		totalW += s.W
		if i < n-1 {
			totalW += h.Padding
		}
		if s.H > maxH {
			maxH = s.H
		}
	}

	w := resolveAxis(h.WidthPolicy(), available.W)
	if h.WidthPolicy().Kind == PolicyContent {
		w = totalW
	}
	height := resolveAxis(h.HeightPolicy(), available.H)
	if h.HeightPolicy().Kind == PolicyContent {
		height = maxH
	}
	return Size{W: w, H: height}
}

// Arrange lays children out left-to-right, giving Stretch children a
// share of leftover width proportional to their weight.
func (h *HBox) Arrange(final Rect) {
	h.Base.Arrange(final)

	children := h.Children()
	n := len(children)
	if n == 0 {
		return
	}

	var fixedTotal, stretchWeight float32
	for i, c := range children {
		pol := widthPolicyOf(c)
		if pol.Kind == PolicyStretch {
			stretchWeight += pol.Weight
		} else {
			fixedTotal += h.measured[i].W
		}
	}
	totalPadding := h.Padding * float32(n-1)
	leftover := final.W - fixedTotal - totalPadding
	if leftover < 0 {
		leftover = 0
	}

	x := float32(0)
	for i, c := range children {
		pol := widthPolicyOf(c)
		var w float32
		if pol.Kind == PolicyStretch && stretchWeight > 0 {
			w = leftover * (pol.Weight / stretchWeight)
		} else {
			w = h.measured[i].W
		}

		rowH := final.H
		y := float32(0)
		childH := rowH
		if heightPolicyOf(c).Kind != PolicyStretch {
			childH = h.measured[i].H
			switch alignVOf(c) {
			case AlignCenter:
				y = (rowH - childH) / 2
			case AlignEnd:
				y = rowH - childH
			}
		}

		c.Arrange(Rect{X: x, Y: y, W: w, H: childH})
		x += w + h.Padding
	}
}

// Draw recurses into children; HBox paints nothing itself.
func (h *HBox) Draw(dl DrawList) {
	h.Base.Draw(dl)
}
