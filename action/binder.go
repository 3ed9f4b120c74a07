// Package action binds click targets of composed widgets to action keys.
package action

import (
	"log/slog"

	"github.com/waozixyz/kryon/screens/keys"
	"github.com/waozixyz/kryon/screens/render"
)

// Binder claims an action key for a widget. TryBind returns false, without
// touching the widget, when it does not handle the key or the widget has no
// click target.
type Binder interface {
	TryBind(w *render.Widget, key keys.Action) bool
}

// Composite asks each binder in order; the first claim wins.
type Composite struct {
	binders []Binder
	log     *slog.Logger
}

func NewComposite(log *slog.Logger, binders ...Binder) *Composite {
	if log == nil {
		log = slog.Default()
	}
	return &Composite{binders: binders, log: log}
}

// Add appends a binder with the lowest precedence.
func (c *Composite) Add(b Binder) {
	if b != nil {
		c.binders = append(c.binders, b)
	}
}

func (c *Composite) TryBind(w *render.Widget, key keys.Action) bool {
	for _, b := range c.binders {
		if b.TryBind(w, key) {
			return true
		}
	}
	tag := ""
	if w != nil {
		tag = w.Tag
	}
	c.log.Warn("action: unhandled action", "action", key, "widget", tag)
	return false
}

// RouteTable resolves action routes to screens.
type RouteTable interface {
	TryGetRouteScreenKey(route string) (keys.Screen, bool)
}

// NavigationBinder claims actions whose key is a known route and navigates
// on click.
type NavigationBinder struct {
	routes   RouteTable
	navigate func(keys.Action)
}

func NewNavigationBinder(routes RouteTable, navigate func(keys.Action)) *NavigationBinder {
	return &NavigationBinder{routes: routes, navigate: navigate}
}

func (b *NavigationBinder) TryBind(w *render.Widget, key keys.Action) bool {
	if w == nil || w.Clickable == nil || key.IsNone() || b.routes == nil || b.navigate == nil {
		return false
	}
	if _, ok := b.routes.TryGetRouteScreenKey(key.String()); !ok {
		return false
	}
	navigate := b.navigate
	w.Clickable.SetOnClick(func() { navigate(key) })
	return true
}

// GameplayBinder claims actions registered in its handler table.
type GameplayBinder struct {
	handlers map[keys.Action]func()
	log      *slog.Logger
}

func NewGameplayBinder(log *slog.Logger) *GameplayBinder {
	if log == nil {
		log = slog.Default()
	}
	return &GameplayBinder{handlers: make(map[keys.Action]func()), log: log}
}

// Handle registers fn for key, replacing an earlier registration.
func (b *GameplayBinder) Handle(key keys.Action, fn func()) {
	if key.IsNone() {
		b.log.Warn("action: handler registered with empty key")
		return
	}
	if fn == nil {
		b.log.Warn("action: nil handler ignored", "action", key)
		return
	}
	if _, exists := b.handlers[key]; exists {
		b.log.Info("action: overwriting handler", "action", key)
	}
	b.handlers[key] = fn
}

func (b *GameplayBinder) TryBind(w *render.Widget, key keys.Action) bool {
	if w == nil || w.Clickable == nil {
		return false
	}
	fn, ok := b.handlers[key]
	if !ok {
		return false
	}
	w.Clickable.SetOnClick(fn)
	return true
}
