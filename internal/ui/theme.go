package ui

import "sync"

// Theme is a named table of colors, looked up by the keys StyleColor's
// ThemeID constructor carries (e.g. "panel.background", "text.primary").
type Theme struct {
	Name   string
	colors map[string]RGBA
}

// NewTheme builds a Theme from a color table. Missing keys resolve to
// opaque magenta at draw time, a visible placeholder rather than a
// silent transparent-black.
func NewTheme(name string, colors map[string]RGBA) *Theme {
	return &Theme{Name: name, colors: colors}
}

// Color looks up id, falling back to a visible placeholder if absent.
func (t *Theme) Color(id string) RGBA {
	if c, ok := t.colors[id]; ok {
		return c
	}
	return RGBA{R: 1, G: 0, B: 1, A: 1}
}

// themeRegistry holds the process-wide "current theme" pointer.
// Changing it is a single pointer swap; the next frame's Draw calls
// pick it up since Resolve always reads through Current().
type themeRegistry struct {
	mu      sync.RWMutex
	current *Theme
}

var themes = &themeRegistry{}

// SetCurrent installs theme as the active theme for subsequent Resolve
// calls.
func SetCurrent(theme *Theme) {
	themes.mu.Lock()
	themes.current = theme
	themes.mu.Unlock()
}

// Current returns the active theme, or a built-in default if none was
// ever set.
func Current() *Theme {
	themes.mu.RLock()
	defer themes.mu.RUnlock()
	if themes.current == nil {
		return defaultTheme
	}
	return themes.current
}

var defaultTheme = NewTheme("default", map[string]RGBA{
	"panel.background":   {R: 0.08, G: 0.10, B: 0.12, A: 0.92},
	"panel.border":       {R: 0.20, G: 0.85, B: 0.90, A: 1.0},
	"text.primary":       {R: 0.90, G: 0.95, B: 0.98, A: 1.0},
	"text.secondary":     {R: 0.55, G: 0.62, B: 0.65, A: 1.0},
	"text.alert":         {R: 0.95, G: 0.25, B: 0.25, A: 1.0},
	"button.idle":        {R: 0.12, G: 0.30, B: 0.34, A: 1.0},
	"button.hover":       {R: 0.18, G: 0.45, B: 0.50, A: 1.0},
	"button.pressed":     {R: 0.08, G: 0.20, B: 0.24, A: 1.0},
	"slider.track":       {R: 0.20, G: 0.24, B: 0.26, A: 1.0},
	"slider.fill":        {R: 0.20, G: 0.85, B: 0.90, A: 1.0},
})
