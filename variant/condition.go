package variant

import (
	"log/slog"
	"strings"

	"github.com/waozixyz/kryon/screens/screen"
	"golang.org/x/text/language"
)

// Matcher decides whether a VariantCondition holds for a context. Platform and
// aspect facts come from the injected probe, never from the context.
type Matcher struct {
	probe EnvironmentProbe
	exprs *ExprEvaluator
	log   *slog.Logger
}

// NewMatcher builds a matcher. A nil probe means DefaultProbe; a nil exprs
// makes every condition carrying an expression fail.
func NewMatcher(probe EnvironmentProbe, exprs *ExprEvaluator, log *slog.Logger) *Matcher {
	if probe == nil {
		probe = DefaultProbe
	}
	if log == nil {
		log = slog.Default()
	}
	return &Matcher{probe: probe, exprs: exprs, log: log}
}

// Matches reports whether every set predicate of c holds. An empty condition
// matches any context; a nil condition matches none.
func (m *Matcher) Matches(c *screen.VariantCondition, ctx screen.Context) bool {
	if c == nil {
		return false
	}

	if theme := strings.TrimSpace(c.Theme); theme != "" && theme != ctx.Theme {
		return false
	}
	if locale := strings.TrimSpace(c.Locale); locale != "" && !SameLocale(locale, ctx.Locale) {
		return false
	}

	if !c.Experiment.IsNone() {
		assigned, ok := ctx.Experiment(c.Experiment)
		if !ok {
			return false
		}
		if !c.ExperimentVariant.IsNone() && assigned != c.ExperimentVariant {
			return false
		}
	}

	if c.Platform != "" && !samePlatform(c.Platform, m.probe.Platform()) {
		return false
	}
	if aspect := strings.TrimSpace(c.Aspect); aspect != "" && !strings.EqualFold(aspect, AspectClass(m.probe)) {
		return false
	}
	if c.MinAspect > 0 || c.MaxAspect > 0 {
		ratio := AspectRatio(m.probe)
		if ratio == 0 {
			return false
		}
		if c.MinAspect > 0 && ratio < c.MinAspect {
			return false
		}
		if c.MaxAspect > 0 && ratio > c.MaxAspect {
			return false
		}
	}

	if expr := strings.TrimSpace(c.Expr); expr != "" {
		return m.evalExpr(expr, ctx)
	}
	return true
}

func (m *Matcher) evalExpr(expr string, ctx screen.Context) bool {
	if m.exprs == nil {
		m.log.Warn("variant: condition expression ignored, no evaluator configured", "expr", expr)
		return false
	}
	experiments := make(map[string]string)
	for k, v := range ctx.Experiments() {
		experiments[k.String()] = v.String()
	}
	ok, err := m.exprs.Eval(expr, map[string]any{
		"theme":       ctx.Theme,
		"locale":      ctx.Locale,
		"experiments": experiments,
		"platform":    string(m.probe.Platform()),
		"aspect":      AspectRatio(m.probe),
	})
	if err != nil {
		m.log.Error("variant: condition expression failed", "expr", expr, "err", err)
		return false
	}
	return ok
}

// SameLocale compares two locale ids by their canonical BCP 47 form, falling
// back to exact comparison when either side does not parse.
func SameLocale(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if a == b {
		return true
	}
	ta, errA := language.Parse(a)
	tb, errB := language.Parse(b)
	if errA != nil || errB != nil {
		return false
	}
	return ta.String() == tb.String()
}
