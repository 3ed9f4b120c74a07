// Package patch turns themes and layouts into ordered cosmetic edits on a
// composed widget map.
package patch

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/waozixyz/kryon/screens/render"
	"github.com/waozixyz/kryon/screens/screen"
)

// Patch is one cosmetic edit.
type Patch interface {
	Describe() string
	// Apply edits the targeted widgets and returns how many it touched.
	Apply(widgets *render.WidgetMap, log *slog.Logger) int
}

const (
	TargetAll        = "*"
	targetTypePrefix = "type:"
)

// targets selects widgets by name tag, "*" or "type:<widget type>".
func targets(widgets *render.WidgetMap, target string) []*render.Widget {
	target = strings.TrimSpace(target)
	switch {
	case target == "":
		return nil
	case target == TargetAll:
		return widgets.Widgets()
	case strings.HasPrefix(target, targetTypePrefix):
		want, err := screen.ParseWidgetType(strings.TrimPrefix(target, targetTypePrefix))
		if err != nil {
			return nil
		}
		var out []*render.Widget
		for _, w := range widgets.Widgets() {
			if w.Type == want {
				out = append(out, w)
			}
		}
		return out
	default:
		if w, ok := widgets.Get(target); ok {
			return []*render.Widget{w}
		}
		return nil
	}
}

// --- Theme ---

// ThemePatch recolours or re-skins its targets.
type ThemePatch struct {
	Theme string
	Entry screen.ThemeEntry
}

func (p ThemePatch) Describe() string {
	var parts []string
	if p.Entry.TextColor != "" {
		parts = append(parts, "text_color="+p.Entry.TextColor)
	}
	if p.Entry.Color != "" {
		parts = append(parts, "color="+p.Entry.Color)
	}
	if p.Entry.Sprite != "" {
		parts = append(parts, "sprite="+p.Entry.Sprite)
	}
	return fmt.Sprintf("theme %s: %s {%s}", p.Theme, p.Entry.Target, strings.Join(parts, " "))
}

func (p ThemePatch) Apply(widgets *render.WidgetMap, log *slog.Logger) int {
	touched := 0
	for _, w := range targets(widgets, p.Entry.Target) {
		hit := false
		if p.Entry.TextColor != "" && w.Text != nil {
			w.Text.SetTextColor(p.Entry.TextColor)
			hit = true
		}
		if w.Image != nil {
			if p.Entry.Color != "" {
				w.Image.SetColor(p.Entry.Color)
				hit = true
			}
			if p.Entry.Sprite != "" {
				w.Image.SetSprite(p.Entry.Sprite)
				hit = true
			}
		}
		if hit {
			touched++
		}
	}
	if touched == 0 {
		log.Debug("patch: theme entry matched nothing", "theme", p.Theme, "target", p.Entry.Target)
	}
	return touched
}

// FromTheme returns one patch per entry, in authored order.
func FromTheme(t *screen.ThemeSpec) []Patch {
	if t == nil {
		return nil
	}
	out := make([]Patch, 0, len(t.Entries))
	for _, e := range t.Entries {
		out = append(out, ThemePatch{Theme: t.ID, Entry: e})
	}
	return out
}

// --- Layout ---

// LayoutPatch moves or (de)activates its targets.
type LayoutPatch struct {
	Layout string
	Entry  screen.LayoutEntry
}

func (p LayoutPatch) Describe() string {
	var parts []string
	if p.Entry.Rect != nil {
		r := p.Entry.Rect
		parts = append(parts, fmt.Sprintf("rect=(%g,%g %gx%g)", r.Position.X, r.Position.Y, r.Size.X, r.Size.Y))
	}
	if p.Entry.Active != nil {
		parts = append(parts, fmt.Sprintf("active=%t", *p.Entry.Active))
	}
	return fmt.Sprintf("layout %s: %s {%s}", p.Layout, p.Entry.Target, strings.Join(parts, " "))
}

func (p LayoutPatch) Apply(widgets *render.WidgetMap, log *slog.Logger) int {
	touched := 0
	for _, w := range targets(widgets, p.Entry.Target) {
		if w.Node == nil {
			continue
		}
		if p.Entry.Rect != nil {
			w.Node.SetRect(*p.Entry.Rect)
		}
		if p.Entry.Active != nil {
			w.Node.SetActive(*p.Entry.Active)
			w.Enabled = *p.Entry.Active
		}
		touched++
	}
	if touched == 0 {
		log.Debug("patch: layout entry matched nothing", "layout", p.Layout, "target", p.Entry.Target)
	}
	return touched
}

func FromLayout(l *screen.LayoutSpec) []Patch {
	if l == nil {
		return nil
	}
	out := make([]Patch, 0, len(l.Entries))
	for _, e := range l.Entries {
		out = append(out, LayoutPatch{Layout: l.ID, Entry: e})
	}
	return out
}

// Applier runs patches in order, so later patches win on the same property.
type Applier struct {
	log *slog.Logger
}

func NewApplier(log *slog.Logger) *Applier {
	if log == nil {
		log = slog.Default()
	}
	return &Applier{log: log}
}

// Apply runs every patch and returns the total number of widget edits.
func (a *Applier) Apply(widgets *render.WidgetMap, patches []Patch) int {
	if widgets == nil {
		return 0
	}
	total := 0
	for _, p := range patches {
		n := p.Apply(widgets, a.log)
		a.log.Debug("patch: applied", "patch", p.Describe(), "widgets", n)
		total += n
	}
	return total
}
