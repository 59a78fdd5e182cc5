package ui

import (
	"github.com/lucasb-eyer/go-colorful"
)

// RGBA is a straight (non-premultiplied) color in [0,1] components,
// the form DrawList implementations and go-colorful both work in.
type RGBA struct {
	R, G, B, A float32
}

// StyleColor is the sum type described for element coloring: either a
// named lookup into the current theme, or a literal color, each with an
// optional alpha override applied after resolution.
type StyleColor struct {
	themeID     string // empty means Custom
	custom      RGBA
	alphaOverride float32 // <0 means "no override"
}

// ThemeID builds a StyleColor resolved against the current theme at
// draw time.
func ThemeID(name string) StyleColor {
	return StyleColor{themeID: name, alphaOverride: -1}
}

// Custom builds a StyleColor from a literal color, bypassing the theme
// table entirely.
func Custom(c RGBA) StyleColor {
	return StyleColor{custom: c, alphaOverride: -1}
}

// WithAlpha returns a copy of sc with its alpha override set.
func (sc StyleColor) WithAlpha(a float32) StyleColor {
	sc.alphaOverride = a
	return sc
}

// Resolve looks the color up in theme (if this is a ThemeID) and
// applies any alpha override, per the theming contract: changing theme
// is a single pointer swap and this call always reads the current one.
func (sc StyleColor) Resolve(theme *Theme) RGBA {
	var c RGBA
	if sc.themeID != "" {
		c = theme.Color(sc.themeID)
	} else {
		c = sc.custom
	}
	if sc.alphaOverride >= 0 {
		c.A = sc.alphaOverride
	}
	return c
}

// toColorful/fromColorful bridge RGBA's float32 [0,1] components to
// go-colorful's float64 Color for Blend (hover tinting in widgets.go,
// the pulse highlight in logpanel.go), which interpolates with
// colorful's BlendLab rather than with raw component math.
func toColorful(c RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

func fromColorful(c colorful.Color, alpha float32) RGBA {
	clamped := c.Clamped()
	r, g, b := clamped.R, clamped.G, clamped.B
	return RGBA{R: float32(r), G: float32(g), B: float32(b), A: alpha}
}

// Blend linearly interpolates between a and b in Lab space (perceptually
// more uniform than straight RGB lerp), at t in [0,1]. Used for hover/
// pressed tint transitions on widgets.
func Blend(a, b RGBA, t float32) RGBA {
	blended := toColorful(a).BlendLab(toColorful(b), float64(t))
	alpha := a.A + (b.A-a.A)*t
	return fromColorful(blended, alpha)
}
