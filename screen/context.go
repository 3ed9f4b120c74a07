package screen

import (
	"maps"
	"strings"

	"github.com/waozixyz/kryon/screens/keys"
)

// Context is an immutable snapshot of the presentation state a screen is
// resolved against.
type Context struct {
	Theme  string
	Locale string

	experiments map[keys.Experiment]keys.Variant
	overrides   map[keys.Screen]keys.Variant
}

// NewContext copies the given maps so later caller mutation cannot leak in.
func NewContext(theme, locale string, experiments map[keys.Experiment]keys.Variant, overrides map[keys.Screen]keys.Variant) Context {
	return Context{
		Theme:       strings.TrimSpace(theme),
		Locale:      strings.TrimSpace(locale),
		experiments: maps.Clone(experiments),
		overrides:   maps.Clone(overrides),
	}
}

// Experiment returns the variant assigned for an experiment.
func (c Context) Experiment(k keys.Experiment) (keys.Variant, bool) {
	v, ok := c.experiments[k]
	return v, ok
}

// Experiments returns a copy of every assignment.
func (c Context) Experiments() map[keys.Experiment]keys.Variant {
	return maps.Clone(c.experiments)
}

// ScreenOverride returns the variant forced for a screen, if any.
func (c Context) ScreenOverride(k keys.Screen) (keys.Variant, bool) {
	v, ok := c.overrides[k]
	if !ok || v.IsNone() {
		return keys.Variant{}, false
	}
	return v, true
}

// WithTheme returns a copy using a different theme.
func (c Context) WithTheme(theme string) Context {
	return NewContext(theme, c.Locale, c.experiments, c.overrides)
}

// WithLocale returns a copy using a different locale.
func (c Context) WithLocale(locale string) Context {
	return NewContext(c.Theme, locale, c.experiments, c.overrides)
}
