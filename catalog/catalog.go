// Package catalog is the read-only lookup layer over authored screens,
// routes, themes, layouts and templates. It is built once and never mutated.
package catalog

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/waozixyz/kryon/screens/keys"
	"github.com/waozixyz/kryon/screens/screen"
)

// Catalog maps screen keys to specs and routes to screen keys.
type Catalog struct {
	screens   map[keys.Screen]*screen.Spec
	order     []keys.Screen
	routes    map[string]keys.Screen
	themes    map[string]*screen.ThemeSpec
	layouts   map[string]*screen.LayoutSpec
	templates []screen.TemplateSpec
	warnings  []string
	log       *slog.Logger
}

// New indexes screens and routes. Duplicate screen keys and routes bound to
// different screens keep their first registration and are reported.
func New(screens []screen.Spec, routes []keys.RouteEntry, log *slog.Logger) *Catalog {
	if log == nil {
		log = slog.Default()
	}
	c := &Catalog{
		screens: make(map[keys.Screen]*screen.Spec, len(screens)),
		routes:  make(map[string]keys.Screen, len(routes)),
		themes:  make(map[string]*screen.ThemeSpec),
		layouts: make(map[string]*screen.LayoutSpec),
		log:     log,
	}
	for i := range screens {
		c.addScreen(screens[i])
	}
	for _, r := range routes {
		c.addRoute(r)
	}
	return c
}

// FromDocument builds a catalog from every section of doc.
func FromDocument(doc *screen.Document, log *slog.Logger) *Catalog {
	if doc == nil {
		return New(nil, nil, log)
	}
	c := New(doc.Screens, doc.Routes, log)
	for i := range doc.Themes {
		t := doc.Themes[i]
		id := strings.TrimSpace(t.ID)
		if _, dup := c.themes[id]; dup {
			c.warn("duplicate theme %q: first kept", id)
			continue
		}
		c.themes[id] = &t
	}
	for i := range doc.Layouts {
		l := doc.Layouts[i]
		id := strings.TrimSpace(l.ID)
		if _, dup := c.layouts[id]; dup {
			c.warn("duplicate layout %q: first kept", id)
			continue
		}
		c.layouts[id] = &l
	}
	c.templates = append(c.templates, doc.Templates...)
	return c
}

func (c *Catalog) addScreen(s screen.Spec) {
	if s.Key.IsNone() {
		c.warn("screen without key ignored")
		return
	}
	if _, dup := c.screens[s.Key]; dup {
		c.warn("duplicate screen %q: first kept", s.Key)
		return
	}
	c.screens[s.Key] = &s
	c.order = append(c.order, s.Key)
}

func (c *Catalog) addRoute(r keys.RouteEntry) {
	route := normalizeRoute(r.Route)
	if route == "" {
		c.warn("empty route to %q ignored", r.Screen)
		return
	}
	if prev, dup := c.routes[route]; dup {
		if prev != r.Screen {
			c.warn("route %q maps to %q and %q: first kept", r.Route, prev, r.Screen)
		}
		return
	}
	c.routes[route] = r.Screen
}

func (c *Catalog) warn(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	c.warnings = append(c.warnings, msg)
	c.log.Warn("catalog: " + msg)
}

func normalizeRoute(route string) string {
	return strings.ToLower(strings.TrimSpace(route))
}

// TryGetScreenSpec looks a spec up by exact key.
func (c *Catalog) TryGetScreenSpec(key keys.Screen) (*screen.Spec, bool) {
	s, ok := c.screens[key]
	return s, ok
}

// TryGetRouteScreenKey looks a route up, ignoring case.
func (c *Catalog) TryGetRouteScreenKey(route string) (keys.Screen, bool) {
	k, ok := c.routes[normalizeRoute(route)]
	return k, ok
}

func (c *Catalog) Theme(id string) (*screen.ThemeSpec, bool) {
	t, ok := c.themes[strings.TrimSpace(id)]
	return t, ok
}

func (c *Catalog) Layout(id string) (*screen.LayoutSpec, bool) {
	l, ok := c.layouts[strings.TrimSpace(id)]
	return l, ok
}

// Templates returns the host templates declared alongside the screens.
func (c *Catalog) Templates() []screen.TemplateSpec {
	return append([]screen.TemplateSpec(nil), c.templates...)
}

// Screens returns every screen key in registration order.
func (c *Catalog) Screens() []keys.Screen {
	return append([]keys.Screen(nil), c.order...)
}

// Routes returns the normalized route table.
func (c *Catalog) Routes() map[string]keys.Screen {
	out := make(map[string]keys.Screen, len(c.routes))
	for r, k := range c.routes {
		out[r] = k
	}
	return out
}

// Warnings returns problems found while building the catalog.
func (c *Catalog) Warnings() []string {
	return append([]string(nil), c.warnings...)
}
