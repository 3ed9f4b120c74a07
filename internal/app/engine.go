// Package app is the composition root shared by the binaries: it loads the
// catalog and wires resolver, composer, binders and router around a host.
package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/waozixyz/kryon/screens/action"
	"github.com/waozixyz/kryon/screens/catalog"
	"github.com/waozixyz/kryon/screens/compose"
	"github.com/waozixyz/kryon/screens/config"
	"github.com/waozixyz/kryon/screens/keys"
	"github.com/waozixyz/kryon/screens/patch"
	"github.com/waozixyz/kryon/screens/render"
	"github.com/waozixyz/kryon/screens/resolve"
	"github.com/waozixyz/kryon/screens/router"
	"github.com/waozixyz/kryon/screens/screen"
	"github.com/waozixyz/kryon/screens/variant"
)

var ErrNoStartScreen = errors.New("app: no initial route, default screen or screens to start from")

// Engine holds every wired component for one catalog.
type Engine struct {
	Config   config.Config
	Catalog  *catalog.Catalog
	Host     render.Host
	Resolver *resolve.Resolver
	Composer *compose.Composer
	Gameplay *action.GameplayBinder
	Router   *router.Router
	Log      *slog.Logger
}

// Backend is the host an engine renders into.
type Backend interface {
	render.Host
	// Register makes templates instantiable.
	Register(templates ...screen.TemplateSpec)
	// Root is the parent of every screen instance.
	Root() render.Node
}

// Build wires an engine for doc. probe may be nil.
func Build(cfg config.Config, doc *screen.Document, backend Backend, probe variant.EnvironmentProbe, log *slog.Logger) (*Engine, error) {
	if log == nil {
		log = slog.Default()
	}
	ctx, err := cfg.UIContext()
	if err != nil {
		return nil, err
	}
	exprs, err := variant.NewExprEvaluator()
	if err != nil {
		return nil, err
	}

	cat := catalog.FromDocument(doc, log)
	for _, key := range cat.Screens() {
		spec, _ := cat.TryGetScreenSpec(key)
		for _, d := range screen.Validate(spec) {
			if d.Severity == screen.SeverityInfo {
				continue
			}
			log.Warn("app: screen diagnostic", "screen", key, "diagnostic", d.String())
		}
	}
	backend.Register(cat.Templates()...)

	e := &Engine{Config: cfg, Catalog: cat, Host: backend, Log: log}
	e.Resolver = resolve.NewResolver(cat, variant.NewResolver(variant.NewMatcher(probe, exprs, log), log), log)
	e.Gameplay = action.NewGameplayBinder(log)

	binders := action.NewComposite(log,
		action.NewNavigationBinder(cat, func(a keys.Action) { e.Router.Go(a) }),
		e.Gameplay,
	)
	e.Composer = compose.NewComposer(compose.NewFactory(backend, binders, log), log, compose.WithStrict(cfg.Router.Strict))

	e.Router = router.New(router.Deps{
		Routes:        cat,
		Resolver:      e.Resolver,
		Host:          backend,
		Composer:      e.Composer,
		Applier:       patch.NewApplier(log),
		Parent:        backend.Root(),
		DefaultScreen: keys.ScreenOf(cfg.Router.DefaultScreen),
		Context:       ctx,
	}, log)
	return e, nil
}

// Start shows the first screen: the initial route, else the default screen,
// else the first screen in the catalog.
func (e *Engine) Start() (*router.Instance, error) {
	if route := e.Config.Router.InitialRoute; route != "" {
		return e.Router.Navigate(keys.ActionOf(route))
	}
	if def := keys.ScreenOf(e.Config.Router.DefaultScreen); !def.IsNone() {
		return e.Router.Show(def)
	}
	if screens := e.Catalog.Screens(); len(screens) > 0 {
		return e.Router.Show(screens[0])
	}
	return nil, ErrNoStartScreen
}

// LoadDocument reads the catalog named by cfg.
func LoadDocument(cfg config.Config) (*screen.Document, error) {
	doc, err := screen.ReadFile(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return doc, nil
}
