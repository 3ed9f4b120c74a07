// Package compose grafts a screen's authored slots onto an instantiated
// template.
package compose

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/waozixyz/kryon/screens/render"
	"github.com/waozixyz/kryon/screens/screen"
)

var (
	ErrNilSpec             = errors.New("compose: nil screen spec")
	ErrNilRoot             = errors.New("compose: nil template root")
	ErrDuplicateSlot       = errors.New("compose: duplicate slot name")
	ErrMissingSlot         = errors.New("compose: slot never materialized")
	ErrDuplicateSlotMarker = errors.New("compose: slot id shared by several markers")
)

// Composer populates slot markers breadth first.
type Composer struct {
	factory *Factory
	strict  bool
	log     *slog.Logger
}

type Option func(*Composer)

// pending is a queued marker and the slot ids it is nested under.
type pending struct {
	marker render.SlotMarker
	path   []string
}

// WithStrict makes Compose return an error for duplicate slot names, authored
// slots that were never reached and slot ids carried by several markers.
func WithStrict(strict bool) Option {
	return func(c *Composer) { c.strict = strict }
}

func NewComposer(factory *Factory, log *slog.Logger, opts ...Option) *Composer {
	if log == nil {
		log = slog.Default()
	}
	c := &Composer{factory: factory, log: log}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose fills the slot markers under root with the widgets spec authors for
// them, mutating the tree in place. Widgets whose creation fails are skipped.
// The returned map is complete even when a strict-mode error is returned.
func (c *Composer) Compose(root render.Node, spec *screen.Spec) (*render.WidgetMap, error) {
	widgets := render.NewWidgetMap()
	if spec == nil {
		return widgets, ErrNilSpec
	}
	if root == nil {
		return widgets, ErrNilRoot
	}

	var errs []error

	// --- Slot lookup table ---
	slots := make(map[string]*screen.SlotSpec, len(spec.Slots))
	for i := range spec.Slots {
		name := strings.TrimSpace(spec.Slots[i].Name)
		if _, dup := slots[name]; dup {
			widgets.Warn("duplicate slot %q: first kept", name)
			c.log.Warn("compose: duplicate slot", "screen", spec.Key, "slot", name)
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateSlot, name))
			continue
		}
		slots[name] = &spec.Slots[i]
	}

	// --- Breadth-first materialization ---
	var queue []pending
	for _, m := range render.SlotMarkers(root) {
		queue = append(queue, pending{marker: m})
	}
	visited := make(map[render.SlotMarker]bool)
	markerByID := make(map[string]render.SlotMarker)
	materialized := make(map[string]bool)

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		marker := next.marker

		if visited[marker] {
			continue
		}
		visited[marker] = true

		id := strings.TrimSpace(marker.SlotID())
		if prev, seen := markerByID[id]; seen && prev != marker {
			c.log.Debug("compose: slot id on several markers", "screen", spec.Key, "slot", id)
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateSlotMarker, id))
		} else {
			markerByID[id] = marker
		}

		if slices.Contains(next.path, id) {
			widgets.Warn("slot %q nested inside itself: skipped", id)
			c.log.Error("compose: slot cycle", "screen", spec.Key, "slot", id, "path", strings.Join(next.path, "/"))
			continue
		}

		slot, ok := slots[id]
		if !ok {
			c.log.Debug("compose: template slot has no authored content", "screen", spec.Key, "slot", id)
			continue
		}
		materialized[id] = true

		target := marker.Target()
		for _, ws := range slot.Widgets {
			if ws.Disabled {
				continue
			}
			w := c.factory.Create(ws, target)
			if w == nil {
				c.log.Error("compose: widget skipped", "screen", spec.Key, "slot", id, "name", ws.Tag(), "type", ws.Type)
				continue
			}
			if ws.Type != screen.WidgetTypeSlot && ws.Rect.Overrides() {
				w.Node.SetRect(ws.Rect)
			}
			if !widgets.Register(w) {
				c.log.Warn("compose: duplicate name tag, first kept", "screen", spec.Key, "name", w.Tag)
			}
			path := append(slices.Clone(next.path), id)
			for _, m := range render.SlotMarkers(w.Node) {
				queue = append(queue, pending{marker: m, path: path})
			}
		}
	}

	for _, s := range spec.Slots {
		name := strings.TrimSpace(s.Name)
		if !materialized[name] {
			c.log.Debug("compose: authored slot not reached", "screen", spec.Key, "slot", name)
			errs = append(errs, fmt.Errorf("%w: %q", ErrMissingSlot, name))
		}
	}

	c.log.Debug("compose: done", "screen", spec.Key, "widgets", len(widgets.Widgets()), "tags", widgets.Tags())
	if !c.strict {
		return widgets, nil
	}
	return widgets, errors.Join(errs...)
}
