package ui

import (
	"encoding/json"
	"fmt"

	"github.com/baopinshui/NPGS-sub000/internal/gfxlog"
)

// NodeSpec is one JSON tree node as a UI layout file describes it: a
// type tag, an optional name, a loosely-typed property bag, and nested
// children. Properties are kept as raw JSON and decoded lazily per key
// by applyCommonProperties/applyTypeProperties, the same "name -> still-
// typed value, read on demand" shape as the property bag in
// vulkan-go-asche/usage.go's Usage, adapted to Go's json.RawMessage
// instead of four separate typed maps.
type NodeSpec struct {
	Type       string                `json:"type"`
	Name       string                `json:"name"`
	Properties map[string]json.RawMessage `json:"properties"`
	Children   []NodeSpec            `json:"children"`
}

// Factory constructs a bare Element for a type tag (e.g. "VBox",
// "Button", "LogPanel"); the loader applies common + type-specific
// properties and children afterward.
type Factory func() Element

// Loader builds an Element tree from a JSON layout file, the way
// UILoader.ParseElement walks a parsed document: look up the node's
// "type" in a factory table, create it, apply properties, recurse into
// children. Also holds the action-id -> callback table the original
// wires buttons through instead of inline closures, so layout files can
// reference behavior by name.
type Loader struct {
	factories map[string]Factory
	actions   map[string]func()
}

// NewLoader builds a Loader with the built-in container/widget
// factories registered (VBox, HBox, ScrollView, Button, Slider,
// InputField, Tooltip, LogPanel); callers add their own with Register
// for anything layout files need beyond this package's widgets.
func NewLoader() *Loader {
	l := &Loader{
		factories: map[string]Factory{},
		actions:   map[string]func(){},
	}
	l.Register("VBox", func() Element { return NewVBox() })
	l.Register("HBox", func() Element { return NewHBox() })
	l.Register("ScrollView", func() Element { return NewScrollView() })
	l.Register("Button", func() Element { return NewButton("", nil) })
	l.Register("Slider", func() Element { return NewSlider(0, nil) })
	l.Register("InputField", func() Element { return NewInputField() })
	l.Register("Tooltip", func() Element { return NewTooltip() })
	l.Register("LogPanel", func() Element { return NewLogPanel(4) })
	return l
}

// Register installs a factory for typeName.
func (l *Loader) Register(typeName string, factory Factory) {
	l.factories[typeName] = factory
}

// RegisterAction installs callback under actionID; a Button node whose
// properties include `"onClick": "<actionID>"` resolves to it at load
// time.
func (l *Loader) RegisterAction(actionID string, callback func()) {
	l.actions[actionID] = callback
}

// LoadBytes parses data as a NodeSpec tree and builds the Element tree.
func (l *Loader) LoadBytes(data []byte) (Element, error) {
	var spec NodeSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("ui: parse layout: %w", err)
	}
	return l.buildElement(spec)
}

func (l *Loader) buildElement(spec NodeSpec) (Element, error) {
	factory, ok := l.factories[spec.Type]
	if !ok {
		gfxlog.Errorf("ui: no factory registered for element type %q", spec.Type)
		return nil, fmt.Errorf("ui: unknown element type %q", spec.Type)
	}

	element := factory()
	l.applyCommonProperties(element, spec.Properties)
	l.applyTypeProperties(element, spec.Properties)

	for _, childSpec := range spec.Children {
		child, err := l.buildElement(childSpec)
		if err != nil {
			gfxlog.Errorf("ui: skipping child %q of %q: %v", childSpec.Type, spec.Type, err)
			continue
		}
		element.AddChild(child)
	}
	return element, nil
}

// applyCommonProperties applies the fields every Element understands:
// width/height policy, alignment, visibility, alpha, blockInput.
func (l *Loader) applyCommonProperties(element Element, props map[string]json.RawMessage) {
	type widthSetter interface{ SetWidthPolicy(Policy) }
	type heightSetter interface{ SetHeightPolicy(Policy) }
	type alignHSetter interface{ SetAlignH(Align) }
	type alignVSetter interface{ SetAlignV(Align) }
	type blockSetter interface{ SetBlocksInput(bool) }

	if raw, ok := props["width"]; ok {
		if s, ok := element.(widthSetter); ok {
			if p, err := parseLength(raw); err == nil {
				s.SetWidthPolicy(p)
			}
		}
	}
	if raw, ok := props["height"]; ok {
		if s, ok := element.(heightSetter); ok {
			if p, err := parseLength(raw); err == nil {
				s.SetHeightPolicy(p)
			}
		}
	}
	if raw, ok := props["alignH"]; ok {
		if s, ok := element.(alignHSetter); ok {
			s.SetAlignH(parseAlign(raw))
		}
	}
	if raw, ok := props["alignV"]; ok {
		if s, ok := element.(alignVSetter); ok {
			s.SetAlignV(parseAlign(raw))
		}
	}
	if raw, ok := props["blockInput"]; ok {
		if s, ok := element.(blockSetter); ok {
			var v bool
			if json.Unmarshal(raw, &v) == nil {
				s.SetBlocksInput(v)
			}
		}
	}
	if raw, ok := props["visible"]; ok {
		var v bool
		if json.Unmarshal(raw, &v) == nil {
			element.SetVisible(v)
		}
	}
	if raw, ok := props["alpha"]; ok {
		var v float32
		if json.Unmarshal(raw, &v) == nil {
			element.SetAlpha(v)
		}
	}
}

// applyTypeProperties dispatches the properties specific to each
// concrete widget type, mirroring ApplyProperties's per-type
// dynamic_cast chain with a Go type switch.
func (l *Loader) applyTypeProperties(element Element, props map[string]json.RawMessage) {
	switch e := element.(type) {
	case *VBox:
		if raw, ok := props["padding"]; ok {
			var v float32
			if json.Unmarshal(raw, &v) == nil {
				e.Padding = v
			}
		}
	case *HBox:
		if raw, ok := props["padding"]; ok {
			var v float32
			if json.Unmarshal(raw, &v) == nil {
				e.Padding = v
			}
		}
	case *Button:
		if raw, ok := props["text"]; ok {
			var v string
			if json.Unmarshal(raw, &v) == nil {
				e.Text = v
			}
		}
		if raw, ok := props["onClick"]; ok {
			var actionID string
			if json.Unmarshal(raw, &actionID) == nil {
				if cb, ok := l.actions[actionID]; ok {
					e.OnClick = cb
				}
			}
		}
	case *Slider:
		if raw, ok := props["value"]; ok {
			var v float32
			if json.Unmarshal(raw, &v) == nil {
				e.SetValue(v)
			}
		}
	case *InputField:
		if raw, ok := props["text"]; ok {
			var v string
			if json.Unmarshal(raw, &v) == nil {
				e.Text = v
			}
		}
	}
}

func parseLength(raw json.RawMessage) (Policy, error) {
	var asNumber float32
	if err := json.Unmarshal(raw, &asNumber); err == nil {
		return Fixed(asNumber), nil
	}
	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		switch asString {
		case "stretch":
			return Stretch(1), nil
		case "content":
			return Content(), nil
		}
	}
	return Policy{}, fmt.Errorf("ui: unrecognized length value %s", string(raw))
}

func parseAlign(raw json.RawMessage) Align {
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return AlignStart
	}
	switch s {
	case "center":
		return AlignCenter
	case "end":
		return AlignEnd
	case "stretch":
		return AlignStretch
	default:
		return AlignStart
	}
}
