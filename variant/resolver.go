// Package variant picks the effective template, theme and layout of a screen
// from its prioritized, conditional variant rules.
package variant

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/waozixyz/kryon/screens/keys"
	"github.com/waozixyz/kryon/screens/screen"
)

// Resolved is the outcome of variant resolution for one screen.
type Resolved struct {
	Screen   keys.Screen
	Template screen.TemplateRef
	Theme    string
	Layout   string
	Applied  []keys.Variant // in application order
	Forced   bool
	Trace    []string
}

// DecisionTrace returns the trace as one newline separated string.
func (r Resolved) DecisionTrace() string { return strings.Join(r.Trace, "\n") }

func (r *Resolved) tracef(format string, args ...any) {
	r.Trace = append(r.Trace, fmt.Sprintf(format, args...))
}

func (r *Resolved) traceFinal() {
	applied := make([]string, len(r.Applied))
	for i, id := range r.Applied {
		applied[i] = id.String()
	}
	r.tracef("final: template=%q theme=%q layout=%q applied=[%s]", r.Template, r.Theme, r.Layout, strings.Join(applied, ", "))
}

// Resolver applies variant rules on top of a spec's base values.
type Resolver struct {
	matcher *Matcher
	log     *slog.Logger
}

func NewResolver(matcher *Matcher, log *slog.Logger) *Resolver {
	if matcher == nil {
		matcher = NewMatcher(nil, nil, log)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{matcher: matcher, log: log}
}

// Resolve picks the effective template, theme and layout for spec under ctx.
//
// A variant forced through ctx.ScreenOverride is applied unconditionally and
// nothing else is consulted. Otherwise rules run by descending priority (ties
// keep authored order): the first matching rule that names a template locks
// it, while theme and layout take the value of the last matching rule that
// names one.
func (r *Resolver) Resolve(spec *screen.Spec, ctx screen.Context) Resolved {
	if spec == nil {
		res := Resolved{}
		res.tracef("spec missing: nothing to resolve")
		return res
	}

	res := Resolved{
		Screen:   spec.Key,
		Template: spec.Template,
		Theme:    strings.TrimSpace(spec.BaseTheme),
		Layout:   strings.TrimSpace(spec.BaseLayout),
	}
	res.tracef("base: template=%q theme=%q layout=%q", res.Template, res.Theme, res.Layout)

	if forced, ok := ctx.ScreenOverride(spec.Key); ok {
		idx := slices.IndexFunc(spec.Variants, func(v screen.VariantRule) bool { return v.ID == forced })
		if idx >= 0 {
			rule := spec.Variants[idx]
			res.Forced = true
			res.Applied = append(res.Applied, rule.ID)
			res.tracef("forced variant %q: applied, condition ignored", forced)
			if !rule.Template.IsZero() {
				res.Template = rule.Template
				res.tracef("  template -> %q", rule.Template)
			}
			r.applyCosmetics(&res, rule)
			res.traceFinal()
			return res
		}
		res.tracef("forced variant %q: no such rule, override ignored", forced)
		r.log.Warn("variant: forced variant not found", "screen", spec.Key, "variant", forced)
	}

	if len(spec.Variants) == 0 {
		res.tracef("no variants: base values kept")
		res.traceFinal()
		return res
	}

	rules := slices.Clone(spec.Variants)
	slices.SortStableFunc(rules, func(a, b screen.VariantRule) int {
		return cmp.Compare(b.Priority, a.Priority)
	})

	var lockedBy keys.Variant
	templateLocked := false
	for _, rule := range rules {
		if rule.Condition == nil {
			res.tracef("rule %q (priority %d): no condition, skipped", rule.ID, rule.Priority)
			continue
		}
		if !r.matcher.Matches(rule.Condition, ctx) {
			res.tracef("rule %q (priority %d): no match", rule.ID, rule.Priority)
			continue
		}

		res.Applied = append(res.Applied, rule.ID)
		res.tracef("rule %q (priority %d): matched", rule.ID, rule.Priority)

		if !rule.Template.IsZero() {
			if templateLocked {
				res.tracef("  template %q ignored: locked by %q", rule.Template, lockedBy)
			} else {
				res.Template = rule.Template
				templateLocked = true
				lockedBy = rule.ID
				res.tracef("  template -> %q (locked)", rule.Template)
			}
		}
		r.applyCosmetics(&res, rule)
	}

	if len(res.Applied) == 0 {
		res.tracef("no rule matched: base values kept")
	}
	res.traceFinal()

	r.log.Debug("variant: resolved", "screen", spec.Key, "template", res.Template, "theme", res.Theme, "layout", res.Layout, "applied", len(res.Applied))
	return res
}

// applyCosmetics overwrites theme and layout; later calls win.
func (r *Resolver) applyCosmetics(res *Resolved, rule screen.VariantRule) {
	if theme := strings.TrimSpace(rule.Theme); theme != "" {
		res.Theme = theme
		res.tracef("  theme -> %q", theme)
	}
	if layout := strings.TrimSpace(rule.Layout); layout != "" {
		res.Layout = layout
		res.tracef("  layout -> %q", layout)
	}
}
