// Package memory is an in-process render.Host. It builds node trees from
// declarative templates and stores capability state in plain structs, so the
// engine can be driven without a window. The raylib backend draws on top of
// it.
package memory

import (
	"math"
	"slices"

	"github.com/waozixyz/kryon/screens/render"
	"github.com/waozixyz/kryon/screens/screen"
)

// Node is a scene graph node held in memory.
type Node struct {
	name       string
	parent     *Node
	children   []*Node
	active     bool
	rect       screen.Rect
	components []any
	destroyed  bool
}

var _ render.Node = (*Node)(nil)

// NewNode creates a detached, active node.
func NewNode(name string, components ...any) *Node {
	return &Node{name: name, active: true, components: components}
}

func (n *Node) Name() string { return n.name }

func (n *Node) Parent() render.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

func (n *Node) Children() []render.Node {
	out := make([]render.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

func (n *Node) Active() bool          { return n.active }
func (n *Node) SetActive(active bool) { n.active = active }
func (n *Node) Rect() screen.Rect     { return n.rect }
func (n *Node) SetRect(r screen.Rect) { n.rect = r }
func (n *Node) Components() []any     { return n.components }
func (n *Node) Destroyed() bool       { return n.destroyed }
func (n *Node) AddComponent(c any)    { n.components = append(n.components, c) }
func (n *Node) ChildNodes() []*Node   { return n.children }
func (n *Node) ParentNode() *Node     { return n.parent }

// Adopt appends child to n, detaching it from any previous parent.
func (n *Node) Adopt(child *Node) {
	if child.parent != nil {
		child.parent.remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

func (n *Node) remove(child *Node) {
	n.children = slices.DeleteFunc(n.children, func(c *Node) bool { return c == child })
}

func (n *Node) Destroy() {
	if n.destroyed {
		return
	}
	if n.parent != nil {
		n.parent.remove(n)
		n.parent = nil
	}
	n.release()
}

func (n *Node) release() {
	n.destroyed = true
	for _, c := range n.children {
		c.parent = nil
		c.release()
	}
	n.children = nil
}

// Find returns the first node named name in n's subtree, depth first.
func (n *Node) Find(name string) (*Node, bool) {
	if n.name == name {
		return n, true
	}
	for _, c := range n.children {
		if found, ok := c.Find(name); ok {
			return found, true
		}
	}
	return nil, false
}

// Walk visits n's subtree depth first, stopping a branch when fn returns
// false.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}

// --- Components ---

type Text struct {
	Value string
	Color string
}

func (t *Text) SetText(s string)        { t.Value = s }
func (t *Text) Text() string            { return t.Value }
func (t *Text) SetTextColor(hex string) { t.Color = hex }

type Button struct {
	OnClick      func()
	Interactable bool
	Clicks       int
}

func (b *Button) SetOnClick(fn func())    { b.OnClick = fn }
func (b *Button) SetInteractable(on bool) { b.Interactable = on }

// Click runs the bound handler when the button is interactable.
func (b *Button) Click() {
	if !b.Interactable {
		return
	}
	b.Clicks++
	if b.OnClick != nil {
		b.OnClick()
	}
}

type Image struct {
	Sprite string
	Color  string
}

func (i *Image) SetSprite(id string) { i.Sprite = id }
func (i *Image) SetColor(hex string) { i.Color = hex }

type Toggle struct {
	On           bool
	Interactable bool
}

func (t *Toggle) SetOn(on bool)           { t.On = on }
func (t *Toggle) IsOn() bool              { return t.On }
func (t *Toggle) SetInteractable(on bool) { t.Interactable = on }

type Slider struct {
	Min, Max     float32
	WholeNumbers bool
	Current      float32
}

func (s *Slider) SetRange(min, max float32, wholeNumbers bool) {
	s.Min, s.Max, s.WholeNumbers = min, max, wholeNumbers
	s.SetValue(s.Current)
}

// SetValue clamps v into range, rounding when whole numbers are required.
func (s *Slider) SetValue(v float32) {
	if s.Max > s.Min {
		v = max(s.Min, min(s.Max, v))
	}
	if s.WholeNumbers {
		v = float32(math.Round(float64(v)))
	}
	s.Current = v
}

func (s *Slider) Value() float32 { return s.Current }

// Slot marks an insertion point; composed widgets become children of owner.
type Slot struct {
	ID    string
	owner *Node
}

func (s *Slot) SlotID() string      { return s.ID }
func (s *Slot) SetSlotID(id string) { s.ID = id }
func (s *Slot) Target() render.Node { return s.owner }
func (s *Slot) Owner() *Node        { return s.owner }

var (
	_ render.TextDisplay  = (*Text)(nil)
	_ render.Clickable    = (*Button)(nil)
	_ render.ImageDisplay = (*Image)(nil)
	_ render.Toggle       = (*Toggle)(nil)
	_ render.Slider       = (*Slider)(nil)
	_ render.SlotMarker   = (*Slot)(nil)
)
