package memory

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/waozixyz/kryon/screens/render"
	"github.com/waozixyz/kryon/screens/screen"
)

var (
	ErrUnknownTemplate = errors.New("memory: unknown template")
	ErrForeignNode     = errors.New("memory: node does not belong to this backend")
)

// Host instantiates screen.TemplateSpec trees as memory nodes.
type Host struct {
	templates map[screen.TemplateRef]screen.TemplateSpec
	defaults  map[screen.WidgetType]screen.TemplateRef
	scene     *Node
	log       *slog.Logger

	// Instantiated counts successful Instantiate calls.
	Instantiated int
}

var _ render.Host = (*Host)(nil)

// NewHost builds a host with templates registered.
func NewHost(templates []screen.TemplateSpec, log *slog.Logger) *Host {
	if log == nil {
		log = slog.Default()
	}
	h := &Host{
		templates: make(map[screen.TemplateRef]screen.TemplateSpec, len(templates)),
		defaults:  make(map[screen.WidgetType]screen.TemplateRef),
		scene:     NewNode("scene"),
		log:       log,
	}
	h.Register(templates...)
	return h
}

// Register indexes templates. A repeated ref keeps the first definition, and
// so does a second template claiming the same default widget type.
func (h *Host) Register(templates ...screen.TemplateSpec) {
	for _, t := range templates {
		ref := screen.TemplateRef(strings.TrimSpace(string(t.Ref)))
		if _, dup := h.templates[ref]; dup {
			h.log.Warn("memory: duplicate template ref, first kept", "ref", ref)
			continue
		}
		h.templates[ref] = t
		if t.Default == screen.WidgetTypeNone {
			continue
		}
		if prev, taken := h.defaults[t.Default]; taken {
			h.log.Warn("memory: widget type already has a default template", "type", t.Default, "kept", prev, "ignored", ref)
			continue
		}
		h.defaults[t.Default] = ref
	}
}

// Scene is the root every detached instantiation can be parented to.
func (h *Host) Scene() *Node { return h.scene }

// Root is Scene as a render.Node.
func (h *Host) Root() render.Node { return h.scene }

func (h *Host) DefaultTemplate(t screen.WidgetType) (screen.TemplateRef, bool) {
	ref, ok := h.defaults[t]
	return ref, ok
}

func (h *Host) Instantiate(ref screen.TemplateRef, parent render.Node) (render.Node, error) {
	key := screen.TemplateRef(strings.TrimSpace(string(ref)))
	spec, ok := h.templates[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, ref)
	}
	var owner *Node
	if parent != nil {
		p, ok := parent.(*Node)
		if !ok {
			return nil, fmt.Errorf("%w: parent %T", ErrForeignNode, parent)
		}
		if p.destroyed {
			return nil, fmt.Errorf("memory: parent %q is destroyed", p.name)
		}
		owner = p
	}

	n := build(spec.Root)
	if n.name == "" {
		n.name = string(key)
	}
	if owner != nil {
		owner.Adopt(n)
	}
	h.Instantiated++
	return n, nil
}

func (h *Host) AttachSlot(n render.Node, id string) render.SlotMarker {
	node, ok := n.(*Node)
	if !ok || node == nil {
		h.log.Error("memory: cannot attach slot to foreign node", "node", fmt.Sprintf("%T", n), "slot", id)
		return nil
	}
	for _, c := range node.components {
		if s, ok := c.(*Slot); ok {
			s.ID = id
			return s
		}
	}
	s := &Slot{ID: id, owner: node}
	node.AddComponent(s)
	return s
}

func build(spec screen.NodeSpec) *Node {
	n := NewNode(spec.Name)
	n.rect = spec.Rect
	for _, c := range spec.Components {
		switch c {
		case screen.ComponentText:
			n.AddComponent(&Text{Value: spec.Text})
		case screen.ComponentButton:
			n.AddComponent(&Button{Interactable: true})
		case screen.ComponentImage:
			n.AddComponent(&Image{})
		case screen.ComponentToggle:
			n.AddComponent(&Toggle{Interactable: true})
		case screen.ComponentSlider:
			n.AddComponent(&Slider{Max: 1})
		case screen.ComponentSlot:
			n.AddComponent(&Slot{ID: strings.TrimSpace(spec.Slot), owner: n})
		}
	}
	if spec.Slot != "" && !hasSlot(n) {
		n.AddComponent(&Slot{ID: strings.TrimSpace(spec.Slot), owner: n})
	}
	for _, child := range spec.Children {
		n.Adopt(build(child))
	}
	return n
}

func hasSlot(n *Node) bool {
	for _, c := range n.components {
		if _, ok := c.(*Slot); ok {
			return true
		}
	}
	return false
}
