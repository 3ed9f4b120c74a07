// Package screen holds the authored data model of the screen engine: screen
// specs, slots, widgets, variant rules, themes, layouts and host templates.
// Values here are created by authoring and treated as read-only while a screen
// is resolved and composed.
package screen

import (
	"fmt"
	"strings"

	"github.com/waozixyz/kryon/screens/keys"
	"gopkg.in/yaml.v3"
)

// TemplateRef is an opaque handle to something the host can instantiate.
type TemplateRef string

// IsZero reports whether no template is referenced.
func (t TemplateRef) IsZero() bool { return strings.TrimSpace(string(t)) == "" }

// WidgetType selects how a WidgetSpec is instantiated.
type WidgetType uint8

const (
	WidgetTypeNone       WidgetType = 0x00
	WidgetTypeText       WidgetType = 0x01
	WidgetTypeButton     WidgetType = 0x02
	WidgetTypeImage      WidgetType = 0x03
	WidgetTypeToggle     WidgetType = 0x04
	WidgetTypeSlider     WidgetType = 0x05
	WidgetTypeGameObject WidgetType = 0x06
	WidgetTypeSlot       WidgetType = 0x10
)

var widgetTypeNames = map[WidgetType]string{
	WidgetTypeNone:       "none",
	WidgetTypeText:       "text",
	WidgetTypeButton:     "button",
	WidgetTypeImage:      "image",
	WidgetTypeToggle:     "toggle",
	WidgetTypeSlider:     "slider",
	WidgetTypeGameObject: "gameobject",
	WidgetTypeSlot:       "slot",
}

func (t WidgetType) String() string {
	if s, ok := widgetTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("WidgetType(0x%02X)", uint8(t))
}

// ParseWidgetType maps an authored type name to a WidgetType. Matching is
// case-insensitive; "container" is accepted for gameobject.
func ParseWidgetType(s string) (WidgetType, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "container" {
		return WidgetTypeGameObject, nil
	}
	for t, n := range widgetTypeNames {
		if n == name {
			return t, nil
		}
	}
	return WidgetTypeNone, fmt.Errorf("screen: unknown widget type %q", s)
}

func (t *WidgetType) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseWidgetType(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// RectMode tells the factory whether a widget's rect fields override the
// template placement.
type RectMode uint8

const (
	RectModeNone     RectMode = 0x00 // keep template placement
	RectModeAnchored RectMode = 0x01
	RectModeStretch  RectMode = 0x02
)

func (m *RectMode) UnmarshalYAML(n *yaml.Node) error {
	var s string
	if err := n.Decode(&s); err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		*m = RectModeNone
	case "anchored":
		*m = RectModeAnchored
	case "stretch":
		*m = RectModeStretch
	default:
		return fmt.Errorf("screen: unknown rect mode %q", s)
	}
	return nil
}

// Vec2 is a pair of floats, authored as a two element sequence.
type Vec2 struct {
	X, Y float32
}

func (v *Vec2) UnmarshalYAML(n *yaml.Node) error {
	var xy []float32
	if err := n.Decode(&xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("screen: vec2 needs 2 values, got %d", len(xy))
	}
	v.X, v.Y = xy[0], xy[1]
	return nil
}

// Rect is placement data. The engine never interprets it; it is copied to the
// host verbatim.
type Rect struct {
	Mode      RectMode `yaml:"mode"`
	AnchorMin Vec2     `yaml:"anchor_min"`
	AnchorMax Vec2     `yaml:"anchor_max"`
	Pivot     Vec2     `yaml:"pivot"`
	Position  Vec2     `yaml:"position"`
	Size      Vec2     `yaml:"size"`
}

// Overrides reports whether the rect should replace template placement.
func (r Rect) Overrides() bool { return r.Mode != RectModeNone }

type ImageSpec struct {
	Sprite string `yaml:"sprite"`
	Color  string `yaml:"color"`
}

type ToggleSpec struct {
	IsOn         bool  `yaml:"is_on"`
	Interactable *bool `yaml:"interactable"`
}

type SliderSpec struct {
	Min          float32 `yaml:"min"`
	Max          float32 `yaml:"max"`
	Value        float32 `yaml:"value"`
	WholeNumbers bool    `yaml:"whole_numbers"`
}

// WidgetSpec describes one widget inside a slot. When Type is
// WidgetTypeSlot, SlotID names the SlotSpec grafted at this point.
type WidgetSpec struct {
	Type         WidgetType  `yaml:"type"`
	NameTag      string      `yaml:"name"`
	Text         string      `yaml:"text"`
	OnClickRoute string      `yaml:"on_click"`
	Disabled     bool        `yaml:"disabled"`
	Rect         Rect        `yaml:"rect"`
	Prefab       TemplateRef `yaml:"prefab"`
	Image        ImageSpec   `yaml:"image"`
	Toggle       ToggleSpec  `yaml:"toggle"`
	Slider       SliderSpec  `yaml:"slider"`
	SlotID       string      `yaml:"slot"`
}

// Tag returns the trimmed name tag used as the widget map key.
func (w WidgetSpec) Tag() string { return strings.TrimSpace(w.NameTag) }

// TargetSlot returns the trimmed slot id of a Slot-typed widget, or "".
func (w WidgetSpec) TargetSlot() string {
	if w.Type != WidgetTypeSlot {
		return ""
	}
	return strings.TrimSpace(w.SlotID)
}

// SlotSpec is a named insertion point and the widgets it receives.
type SlotSpec struct {
	Name    string       `yaml:"name"`
	Widgets []WidgetSpec `yaml:"widgets"`
}

// VariantCondition is a conjunction of optional predicates. Unset fields are
// always satisfied.
type VariantCondition struct {
	Theme             string          `yaml:"theme"`
	Locale            string          `yaml:"locale"`
	Experiment        keys.Experiment `yaml:"experiment"`
	ExperimentVariant keys.Variant    `yaml:"experiment_variant"`
	Platform          string          `yaml:"platform"`
	Aspect            string          `yaml:"aspect"`
	MinAspect         float64         `yaml:"min_aspect"`
	MaxAspect         float64         `yaml:"max_aspect"`
	Expr              string          `yaml:"expr"`
}

// VariantRule overrides template/theme/layout when its condition matches.
// Higher Priority is evaluated first.
type VariantRule struct {
	ID        keys.Variant      `yaml:"id"`
	Priority  int               `yaml:"priority"`
	Condition *VariantCondition `yaml:"condition"`
	Template  TemplateRef       `yaml:"template"`
	Theme     string            `yaml:"theme"`
	Layout    string            `yaml:"layout"`
}

// Spec describes one logical screen.
type Spec struct {
	Key        keys.Screen   `yaml:"key"`
	Template   TemplateRef   `yaml:"template"`
	BaseTheme  string        `yaml:"theme"`
	BaseLayout string        `yaml:"layout"`
	Variants   []VariantRule `yaml:"variants"`
	Slots      []SlotSpec    `yaml:"slots"`
}

// Slot returns the first slot named name.
func (s *Spec) Slot(name string) (*SlotSpec, bool) {
	if s == nil {
		return nil, false
	}
	name = strings.TrimSpace(name)
	for i := range s.Slots {
		if strings.TrimSpace(s.Slots[i].Name) == name {
			return &s.Slots[i], true
		}
	}
	return nil, false
}

// Root returns slot 0, the canonical root.
func (s *Spec) Root() (*SlotSpec, bool) {
	if s == nil || len(s.Slots) == 0 {
		return nil, false
	}
	return &s.Slots[0], true
}

// --- Themes and layouts ---

// ThemeEntry recolours widgets. Target is a name tag, "*" for every widget,
// or "type:<widget type>".
type ThemeEntry struct {
	Target    string `yaml:"target"`
	TextColor string `yaml:"text_color"`
	Color     string `yaml:"color"`
	Sprite    string `yaml:"sprite"`
}

type ThemeSpec struct {
	ID      string       `yaml:"id"`
	Entries []ThemeEntry `yaml:"entries"`
}

// LayoutEntry moves or (de)activates widgets, typically per locale.
type LayoutEntry struct {
	Target string `yaml:"target"`
	Rect   *Rect  `yaml:"rect"`
	Active *bool  `yaml:"active"`
}

type LayoutSpec struct {
	ID      string        `yaml:"id"`
	Entries []LayoutEntry `yaml:"entries"`
}

// --- Host templates ---

// Component names a capability a template node carries.
type Component string

const (
	ComponentText   Component = "text"
	ComponentButton Component = "button"
	ComponentImage  Component = "image"
	ComponentToggle Component = "toggle"
	ComponentSlider Component = "slider"
	ComponentSlot   Component = "slot"
)

// NodeSpec is one node of a declarative template.
type NodeSpec struct {
	Name       string      `yaml:"name"`
	Components []Component `yaml:"components"`
	Slot       string      `yaml:"slot"`
	Text       string      `yaml:"text"`
	Rect       Rect        `yaml:"rect"`
	Children   []NodeSpec  `yaml:"children"`
}

// TemplateSpec lets hosts without an engine-side prefab system instantiate
// templates from data. Default, when set, makes the template the fallback for
// that widget type.
type TemplateSpec struct {
	Ref     TemplateRef `yaml:"ref"`
	Default WidgetType  `yaml:"default_for"`
	Root    NodeSpec    `yaml:"root"`
}
