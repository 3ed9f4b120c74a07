package render

import (
	"fmt"
	"strings"

	"github.com/waozixyz/kryon/screens/screen"
)

// Widget is the handle the engine keeps for one composed widget. Capability
// fields are probed once at construction and are nil when the node lacks
// them.
type Widget struct {
	Tag     string
	Type    screen.WidgetType
	Node    Node
	Enabled bool

	Clickable Clickable
	Text      TextDisplay
	Image     ImageDisplay
	Toggle    Toggle
	Slider    Slider
}

// NewWidget wraps n and resolves its capabilities.
func NewWidget(tag string, t screen.WidgetType, n Node) *Widget {
	w := &Widget{Tag: strings.TrimSpace(tag), Type: t, Node: n, Enabled: true}
	if n == nil {
		return w
	}
	w.Clickable, _ = Probe[Clickable](n)
	w.Text, _ = Probe[TextDisplay](n)
	w.Image, _ = Probe[ImageDisplay](n)
	w.Toggle, _ = Probe[Toggle](n)
	w.Slider, _ = Probe[Slider](n)
	return w
}

// WidgetMap indexes composed widgets by name tag. Untagged widgets are kept
// in order but cannot be looked up.
type WidgetMap struct {
	byTag    map[string]*Widget
	order    []*Widget
	warnings []string
}

func NewWidgetMap() *WidgetMap {
	return &WidgetMap{byTag: make(map[string]*Widget)}
}

// Register records w. A tag that is already taken keeps its first widget and
// adds a warning; Register then returns false.
func (m *WidgetMap) Register(w *Widget) bool {
	if w == nil {
		return false
	}
	m.order = append(m.order, w)
	if w.Tag == "" {
		return true
	}
	if _, dup := m.byTag[w.Tag]; dup {
		m.warnings = append(m.warnings, fmt.Sprintf("duplicate name tag %q: first widget kept", w.Tag))
		return false
	}
	m.byTag[w.Tag] = w
	return true
}

// Get returns the widget registered under tag.
func (m *WidgetMap) Get(tag string) (*Widget, bool) {
	if m == nil {
		return nil, false
	}
	w, ok := m.byTag[strings.TrimSpace(tag)]
	return w, ok
}

// Widgets returns every composed widget in composition order.
func (m *WidgetMap) Widgets() []*Widget {
	if m == nil {
		return nil
	}
	return append([]*Widget(nil), m.order...)
}

// Tags returns the number of tagged widgets.
func (m *WidgetMap) Tags() int {
	if m == nil {
		return 0
	}
	return len(m.byTag)
}

func (m *WidgetMap) Warnings() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.warnings...)
}

// Warn appends a composition warning.
func (m *WidgetMap) Warn(format string, args ...any) {
	m.warnings = append(m.warnings, fmt.Sprintf(format, args...))
}
