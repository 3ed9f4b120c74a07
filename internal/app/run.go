package app

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/waozixyz/kryon/screens/config"
	"github.com/waozixyz/kryon/screens/internal/logging"
	"github.com/waozixyz/kryon/screens/render"
	"github.com/waozixyz/kryon/screens/variant"
)

// Renderer is a windowed backend driven by Run.
type Renderer interface {
	Backend
	variant.EnvironmentProbe

	Init(config render.WindowConfig) error
	ShouldClose() bool
	// PollEvents handles input against the tree last passed to RenderFrame.
	PollEvents()
	BeginFrame()
	RenderFrame(root render.Node)
	EndFrame()
	Cleanup()
}

// Run is the windowed application loop, independent of the specific renderer.
// newRenderer receives the configured logger. setup, when non-nil, runs after
// wiring and before the first screen is shown; use it to register gameplay
// handlers.
func Run(newRenderer func(log *slog.Logger) Renderer, setup func(*Engine)) {
	// --- Command Line Args ---
	configPath := flag.String("config", "", "Path to a config file (default $"+config.EnvConfig+" or "+config.DefaultPath()+")")
	catalogPath := flag.String("file", "", "Path to the screen catalog (overrides catalog.path)")
	route := flag.String("route", "", "Initial route (overrides router.initial_route)")
	flag.Parse()

	if *configPath == "" {
		*configPath = os.Getenv(config.EnvConfig)
	}
	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	if *catalogPath != "" {
		cfg.Catalog.Path = *catalogPath
	}
	if *route != "" {
		cfg.Router.InitialRoute = *route
	}

	log, err := logging.New(cfg.Log, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(log)

	log.Info("app: loading catalog", "path", cfg.Catalog.Path)
	doc, err := LoadDocument(cfg)
	if err != nil {
		fatal(log, "app: cannot load catalog", err)
	}
	log.Info("app: catalog parsed", "version", doc.Version, "screens", len(doc.Screens), "routes", len(doc.Routes), "templates", len(doc.Templates))

	if len(doc.Screens) == 0 {
		log.Warn("app: no screens in catalog, exiting")
		return
	}

	// --- Initialize Window (so the probe sees the real viewport) ---
	renderer := newRenderer(log)
	if err := renderer.Init(cfg.RenderWindow()); err != nil {
		renderer.Cleanup()
		fatal(log, "app: failed to initialize renderer", err)
	}
	defer renderer.Cleanup()

	engine, err := Build(cfg, doc, renderer, renderer, log)
	if err != nil {
		fatal(log, "app: failed to wire engine", err)
	}
	defer engine.Router.Close()
	if setup != nil {
		setup(engine)
	}

	if _, err := engine.Start(); err != nil {
		fatal(log, "app: failed to show first screen", err)
	}

	log.Info("app: entering main loop")

	// --- Main Loop ---
	for !renderer.ShouldClose() {
		var root render.Node
		if cur := engine.Router.Current(); cur != nil {
			root = cur.Root
		}
		renderer.BeginFrame()
		renderer.RenderFrame(root)
		renderer.EndFrame()
		renderer.PollEvents()
	}

	log.Info("app: exiting")
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "err", err)
	os.Exit(1)
}
