// Package router navigates between screens: route to key, resolve,
// instantiate, compose, patch, then replace the previous instance of that
// screen.
package router

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/waozixyz/kryon/screens/action"
	"github.com/waozixyz/kryon/screens/compose"
	"github.com/waozixyz/kryon/screens/keys"
	"github.com/waozixyz/kryon/screens/patch"
	"github.com/waozixyz/kryon/screens/render"
	"github.com/waozixyz/kryon/screens/resolve"
	"github.com/waozixyz/kryon/screens/screen"
)

var (
	ErrNoRoute    = errors.New("router: route not mapped and no default screen")
	ErrNoTemplate = errors.New("router: resolved screen has no template")
	ErrClosed     = errors.New("router: closed")
)

// Instance is one live screen.
type Instance struct {
	ID      uuid.UUID
	Key     keys.Screen
	Root    render.Node
	Widgets *render.WidgetMap
	Result  resolve.Result
}

// Deps are the collaborators a Router drives.
type Deps struct {
	Routes   action.RouteTable
	Resolver *resolve.Resolver
	Host     render.Host
	Composer *compose.Composer
	Applier  *patch.Applier
	// Parent receives every instantiated screen; nil leaves screens detached.
	Parent        render.Node
	DefaultScreen keys.Screen
	Context       screen.Context
}

// Router keeps at most one active instance per screen key.
type Router struct {
	deps    Deps
	ctx     screen.Context
	active  map[keys.Screen]*Instance
	current *Instance
	closed  bool
	log     *slog.Logger
}

func New(deps Deps, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}
	if deps.Applier == nil {
		deps.Applier = patch.NewApplier(log)
	}
	return &Router{
		deps:   deps,
		ctx:    deps.Context,
		active: make(map[keys.Screen]*Instance),
		log:    log,
	}
}

// Navigate shows the screen routed from a. Unmapped routes fall back to the
// default screen. On error the previously active instance is left untouched.
func (r *Router) Navigate(a keys.Action) (*Instance, error) {
	if r.closed {
		return nil, ErrClosed
	}

	key, ok := r.deps.Routes.TryGetRouteScreenKey(a.String())
	if !ok {
		if r.deps.DefaultScreen.IsNone() {
			r.log.Error("router: unmapped route", "route", a)
			return nil, fmt.Errorf("%w: %q", ErrNoRoute, a)
		}
		r.log.Warn("router: unmapped route, using default screen", "route", a, "screen", r.deps.DefaultScreen)
		key = r.deps.DefaultScreen
	}
	return r.Show(key)
}

// Show builds and activates the screen key directly.
func (r *Router) Show(key keys.Screen) (*Instance, error) {
	if r.closed {
		return nil, ErrClosed
	}

	res := r.deps.Resolver.Resolve(key, r.ctx)
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Resolved.Template.IsZero() {
		r.log.Error("router: no template", "screen", key)
		return nil, fmt.Errorf("%w: %q", ErrNoTemplate, key)
	}

	root, err := r.deps.Host.Instantiate(res.Resolved.Template, r.deps.Parent)
	if err != nil {
		return nil, fmt.Errorf("router: instantiate %q: %w", key, err)
	}
	widgets, err := r.deps.Composer.Compose(root, res.Spec)
	if err != nil {
		root.Destroy()
		return nil, fmt.Errorf("router: compose %q: %w", key, err)
	}
	r.deps.Applier.Apply(widgets, res.Patches)

	inst := &Instance{ID: uuid.New(), Key: key, Root: root, Widgets: widgets, Result: res}
	if prev, ok := r.active[key]; ok {
		prev.Root.Destroy()
		r.log.Debug("router: replaced instance", "screen", key, "previous", prev.ID)
	}
	r.active[key] = inst
	r.current = inst

	r.log.Info("router: navigated", "screen", key, "instance", inst.ID, "template", res.Resolved.Template,
		"theme", res.Resolved.Theme, "layout", res.Resolved.Layout, "widgets", len(widgets.Widgets()))
	return inst, nil
}

// Go is Navigate for click handlers: errors are logged, not returned.
func (r *Router) Go(a keys.Action) {
	if _, err := r.Navigate(a); err != nil {
		r.log.Error("router: navigation failed", "route", a, "err", err)
	}
}

// Active returns the live instance for key.
func (r *Router) Active(key keys.Screen) (*Instance, bool) {
	inst, ok := r.active[key]
	return inst, ok
}

// Current returns the most recently shown instance, or nil.
func (r *Router) Current() *Instance { return r.current }

// Context returns the presentation context used for new navigations.
func (r *Router) Context() screen.Context { return r.ctx }

// SetContext changes the context for later navigations; live instances keep
// what they were built with.
func (r *Router) SetContext(ctx screen.Context) { r.ctx = ctx }

// Close destroys every instance. Later navigations fail with ErrClosed.
func (r *Router) Close() {
	if r.closed {
		return
	}
	for key, inst := range r.active {
		inst.Root.Destroy()
		delete(r.active, key)
	}
	r.current = nil
	r.closed = true
}
