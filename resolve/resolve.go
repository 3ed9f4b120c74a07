// Package resolve turns a screen key and a presentation context into the
// resolved variant plus the cosmetic patches to apply after composition.
package resolve

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/waozixyz/kryon/screens/keys"
	"github.com/waozixyz/kryon/screens/patch"
	"github.com/waozixyz/kryon/screens/screen"
	"github.com/waozixyz/kryon/screens/variant"
)

var ErrScreenNotFound = errors.New("resolve: screen not found")

// Specs is the catalog surface the resolver needs.
type Specs interface {
	TryGetScreenSpec(key keys.Screen) (*screen.Spec, bool)
	Theme(id string) (*screen.ThemeSpec, bool)
	Layout(id string) (*screen.LayoutSpec, bool)
}

// Result is everything needed to build one screen instance. Spec is nil and
// Err is set when the key is unknown.
type Result struct {
	Resolved variant.Resolved
	Spec     *screen.Spec
	Patches  []patch.Patch
	Trace    []string
	Err      error
}

type Resolver struct {
	specs    Specs
	variants *variant.Resolver
	log      *slog.Logger
}

func NewResolver(specs Specs, variants *variant.Resolver, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	if variants == nil {
		variants = variant.NewResolver(nil, log)
	}
	return &Resolver{specs: specs, variants: variants, log: log}
}

// Resolve never fails hard: a missing screen yields a degenerate result with
// Err set so callers can decide how to degrade.
func (r *Resolver) Resolve(key keys.Screen, ctx screen.Context) Result {
	spec, ok := r.specs.TryGetScreenSpec(key)
	if !ok {
		err := fmt.Errorf("%w: %q", ErrScreenNotFound, key)
		r.log.Error("resolve: screen not found", "screen", key)
		res := Result{Err: err}
		res.Resolved = r.variants.Resolve(nil, ctx)
		res.Resolved.Screen = key
		res.Trace = append(res.Trace, res.Resolved.Trace...)
		res.Trace = append(res.Trace, err.Error())
		return res
	}

	res := Result{Spec: spec, Resolved: r.variants.Resolve(spec, ctx)}
	res.Trace = append(res.Trace, res.Resolved.Trace...)

	if id := res.Resolved.Theme; id != "" {
		if theme, ok := r.specs.Theme(id); ok {
			p := patch.FromTheme(theme)
			res.Patches = append(res.Patches, p...)
			res.Trace = append(res.Trace, fmt.Sprintf("theme %q: %d patches", id, len(p)))
		} else {
			res.Trace = append(res.Trace, fmt.Sprintf("warning: theme %q not in catalog, no patches", id))
			r.log.Warn("resolve: unknown theme", "screen", key, "theme", id)
		}
	}
	if id := res.Resolved.Layout; id != "" {
		if layout, ok := r.specs.Layout(id); ok {
			p := patch.FromLayout(layout)
			res.Patches = append(res.Patches, p...)
			res.Trace = append(res.Trace, fmt.Sprintf("layout %q: %d patches", id, len(p)))
		} else {
			res.Trace = append(res.Trace, fmt.Sprintf("warning: layout %q not in catalog, no patches", id))
			r.log.Warn("resolve: unknown layout", "screen", key, "layout", id)
		}
	}
	return res
}
