package compose

import (
	"log/slog"
	"strings"

	"github.com/waozixyz/kryon/screens/action"
	"github.com/waozixyz/kryon/screens/keys"
	"github.com/waozixyz/kryon/screens/render"
	"github.com/waozixyz/kryon/screens/screen"
)

// Factory instantiates single widgets from their specs.
type Factory struct {
	host   render.Host
	binder action.Binder
	log    *slog.Logger
}

// NewFactory builds a factory. binder may be nil, in which case button routes
// are left unbound.
func NewFactory(host render.Host, binder action.Binder, log *slog.Logger) *Factory {
	if log == nil {
		log = slog.Default()
	}
	return &Factory{host: host, binder: binder, log: log}
}

// Create instantiates ws under parent. It returns nil, after logging, when no
// template resolves or the host fails.
func (f *Factory) Create(ws screen.WidgetSpec, parent render.Node) *render.Widget {
	ref := ws.Prefab
	if ref.IsZero() {
		var ok bool
		ref, ok = f.host.DefaultTemplate(ws.Type)
		if !ok {
			f.log.Error("compose: no template for widget", "type", ws.Type, "name", ws.Tag())
			return nil
		}
	}

	node, err := f.host.Instantiate(ref, parent)
	if err != nil {
		f.log.Error("compose: instantiate widget", "template", ref, "name", ws.Tag(), "err", err)
		return nil
	}

	if ws.Type == screen.WidgetTypeSlot {
		return f.createSlot(ws, node)
	}

	w := render.NewWidget(ws.Tag(), ws.Type, node)
	f.initialize(w, ws)
	return w
}

func (f *Factory) createSlot(ws screen.WidgetSpec, node render.Node) *render.Widget {
	id := ws.TargetSlot()
	if id == "" {
		f.log.Warn("compose: slot widget without slot id", "name", ws.Tag())
	}
	marker := f.host.AttachSlot(node, id)
	if marker == nil {
		f.log.Error("compose: host refused slot marker", "slot", id)
		node.Destroy()
		return nil
	}
	if ws.Rect.Overrides() {
		node.SetRect(ws.Rect)
	}
	return &render.Widget{Tag: ws.Tag(), Type: ws.Type, Node: node, Enabled: true}
}

// initialize sets whatever capabilities the node actually has.
func (f *Factory) initialize(w *render.Widget, ws screen.WidgetSpec) {
	if w.Text != nil && ws.Text != "" {
		w.Text.SetText(ws.Text)
	}

	switch ws.Type {
	case screen.WidgetTypeButton:
		route := strings.TrimSpace(ws.OnClickRoute)
		if route == "" {
			return
		}
		if w.Clickable == nil {
			f.log.Warn("compose: button has no click target", "name", w.Tag, "route", route)
			return
		}
		if f.binder == nil {
			f.log.Warn("compose: no binder for button route", "name", w.Tag, "route", route)
			return
		}
		f.binder.TryBind(w, keys.ActionOf(route))

	case screen.WidgetTypeImage:
		if w.Image == nil {
			return
		}
		if ws.Image.Sprite != "" {
			w.Image.SetSprite(ws.Image.Sprite)
		}
		if ws.Image.Color != "" {
			w.Image.SetColor(ws.Image.Color)
		}

	case screen.WidgetTypeToggle:
		if w.Toggle == nil {
			return
		}
		w.Toggle.SetOn(ws.Toggle.IsOn)
		if ws.Toggle.Interactable != nil {
			w.Toggle.SetInteractable(*ws.Toggle.Interactable)
		}

	case screen.WidgetTypeSlider:
		if w.Slider == nil {
			return
		}
		if ws.Slider.Max > ws.Slider.Min {
			w.Slider.SetRange(ws.Slider.Min, ws.Slider.Max, ws.Slider.WholeNumbers)
		}
		w.Slider.SetValue(ws.Slider.Value)
	}
}
