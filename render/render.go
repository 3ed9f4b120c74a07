// Package render is the boundary between the screen engine and a host scene
// graph. Backends implement Host and Node; the engine only ever talks to
// these interfaces and to the capability interfaces below.
package render

import (
	"github.com/waozixyz/kryon/screens/screen"
)

// Node is one object in the host scene graph.
type Node interface {
	Name() string
	Parent() Node
	Children() []Node
	Active() bool
	SetActive(active bool)
	Rect() screen.Rect
	SetRect(r screen.Rect)
	// Components returns the capability values attached to this node only.
	Components() []any
	// Destroy detaches the node from its parent and releases its subtree.
	Destroy()
}

// --- Capabilities ---

// Clickable is a node that can dispatch a click.
type Clickable interface {
	// SetOnClick replaces any previously bound handler.
	SetOnClick(fn func())
	Click()
	SetInteractable(on bool)
}

type TextDisplay interface {
	SetText(s string)
	Text() string
	SetTextColor(hex string)
}

type ImageDisplay interface {
	SetSprite(id string)
	SetColor(hex string)
}

type Toggle interface {
	SetOn(on bool)
	IsOn() bool
	SetInteractable(on bool)
}

type Slider interface {
	SetRange(min, max float32, wholeNumbers bool)
	SetValue(v float32)
	Value() float32
}

// SlotMarker is an insertion point inside an instantiated template. Widgets
// composed into the slot are parented to Target.
type SlotMarker interface {
	SlotID() string
	SetSlotID(id string)
	Target() Node
}

// Host instantiates templates and attaches slot markers.
type Host interface {
	// Instantiate creates a fresh copy of ref under parent (nil for a
	// detached root).
	Instantiate(ref screen.TemplateRef, parent Node) (Node, error)
	// DefaultTemplate returns the template used for t when a widget spec does
	// not name a prefab.
	DefaultTemplate(t screen.WidgetType) (screen.TemplateRef, bool)
	// AttachSlot returns the marker on n, creating it if needed, with its id
	// set to id.
	AttachSlot(n Node, id string) SlotMarker
}

// Probe finds the first component of type T on n itself, then breadth first
// through its descendants.
func Probe[T any](n Node) (T, bool) {
	var zero T
	if n == nil {
		return zero, false
	}
	queue := []Node{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range cur.Components() {
			if v, ok := c.(T); ok {
				return v, true
			}
		}
		queue = append(queue, cur.Children()...)
	}
	return zero, false
}

// SlotMarkers returns every marker in the subtree rooted at n, breadth first.
func SlotMarkers(n Node) []SlotMarker {
	if n == nil {
		return nil
	}
	var out []SlotMarker
	queue := []Node{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, c := range cur.Components() {
			if m, ok := c.(SlotMarker); ok {
				out = append(out, m)
			}
		}
		queue = append(queue, cur.Children()...)
	}
	return out
}

// WindowConfig holds window settings for backends that open one.
type WindowConfig struct {
	Width       int
	Height      int
	Title       string
	Resizable   bool
	ScaleFactor float32
	Background  string // hex colour
	Assets      string // sprite directory
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:       800,
		Height:      600,
		Title:       "Kryon Screens",
		Resizable:   true,
		ScaleFactor: 1.0,
		Background:  "#F5F5F5",
	}
}
