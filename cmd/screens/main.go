// Command screens inspects a screen catalog without opening a window: it
// validates authored graphs, explains variant resolution, prints composed
// widget trees and replays navigation.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/waozixyz/kryon/screens/catalog"
	"github.com/waozixyz/kryon/screens/config"
	"github.com/waozixyz/kryon/screens/internal/app"
	"github.com/waozixyz/kryon/screens/internal/logging"
	"github.com/waozixyz/kryon/screens/keys"
	"github.com/waozixyz/kryon/screens/render/memory"
	"github.com/waozixyz/kryon/screens/screen"
	"github.com/waozixyz/kryon/screens/variant"
)

const usage = `usage: screens [flags] <command> [args]

commands:
  validate                 check every screen's slot graph
  resolve <screen>         explain variant selection and patches
  compose <screen>         show the screen and print its widget tree
  navigate <step>...       follow routes; a step "@Tag" clicks that widget
  config init [path]       write the default config file

flags:
`

// pairs collects repeated Key=Variant flags.
type pairs []string

func (p *pairs) String() string     { return strings.Join(*p, ",") }
func (p *pairs) Set(v string) error { *p = append(*p, v); return nil }

type options struct {
	configPath  string
	catalogPath string
	theme       string
	locale      string
	experiments pairs
	overrides   pairs
	platform    string
	width       int
	height      int
	strict      bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	fs := flag.NewFlagSet("screens", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.configPath, "config", "", "Path to a config file (default $"+config.EnvConfig+")")
	fs.StringVar(&opts.catalogPath, "file", "", "Path to the screen catalog (overrides catalog.path)")
	fs.StringVar(&opts.theme, "theme", "", "Theme the context asks for")
	fs.StringVar(&opts.locale, "locale", "", "BCP-47 locale of the context")
	fs.Var(&opts.experiments, "experiment", "Experiment assignment Key=Variant (repeatable)")
	fs.Var(&opts.overrides, "force", "Forced variant Screen=Variant (repeatable)")
	fs.StringVar(&opts.platform, "platform", string(variant.PlatformDesktop), "Platform reported to conditions")
	fs.IntVar(&opts.width, "width", 1920, "Viewport width reported to conditions")
	fs.IntVar(&opts.height, "height", 1080, "Viewport height reported to conditions")
	fs.BoolVar(&opts.strict, "strict", false, "Fail composition on slot graph problems")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return 2
	}
	cmd, cmdArgs := rest[0], rest[1:]

	cfg, err := opts.load()
	if err != nil {
		fmt.Fprintln(stderr, errorStyle.Render("error: ")+err.Error())
		return 1
	}
	if cmd == "config" {
		return runConfig(cfg, cmdArgs, stdout, stderr)
	}

	log, err := logging.New(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintln(stderr, errorStyle.Render("error: ")+err.Error())
		return 1
	}
	doc, err := app.LoadDocument(cfg)
	if err != nil {
		fmt.Fprintln(stderr, errorStyle.Render("error: ")+err.Error())
		return 1
	}

	if cmd == "validate" {
		return runValidate(catalog.FromDocument(doc, log), stdout)
	}

	host := memory.NewHost(nil, log)
	probe := variant.StaticProbe{Class: variant.Platform(opts.platform), Width: opts.width, Height: opts.height}
	engine, err := app.Build(cfg, doc, host, probe, log)
	if err != nil {
		fmt.Fprintln(stderr, errorStyle.Render("error: ")+err.Error())
		return 1
	}
	defer engine.Router.Close()

	switch cmd {
	case "resolve":
		if len(cmdArgs) != 1 {
			fmt.Fprintln(stderr, "usage: screens resolve <screen>")
			return 2
		}
		return runResolve(engine, keys.ScreenOf(cmdArgs[0]), stdout)
	case "compose":
		if len(cmdArgs) != 1 {
			fmt.Fprintln(stderr, "usage: screens compose <screen>")
			return 2
		}
		return runCompose(engine, keys.ScreenOf(cmdArgs[0]), stdout, stderr)
	case "navigate":
		if len(cmdArgs) == 0 {
			fmt.Fprintln(stderr, "usage: screens navigate <step>...")
			return 2
		}
		return runNavigate(engine, cmdArgs, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}
}

// load reads the config file and layers the flags on top.
func (o options) load() (config.Config, error) {
	path := o.configPath
	if path == "" {
		path = os.Getenv(config.EnvConfig)
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return config.Config{}, err
	}
	if o.catalogPath != "" {
		cfg.Catalog.Path = o.catalogPath
	}
	if o.theme != "" {
		cfg.Context.Theme = o.theme
	}
	if o.locale != "" {
		cfg.Context.Locale = o.locale
	}
	cfg.Context.Experiments = append(cfg.Context.Experiments, o.experiments...)
	cfg.Context.Overrides = append(cfg.Context.Overrides, o.overrides...)
	if o.strict {
		cfg.Router.Strict = true
	}
	return cfg, nil
}

func runConfig(cfg config.Config, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] != "init" {
		fmt.Fprintln(stderr, "usage: screens config init [path]")
		return 2
	}
	path := config.DefaultPath()
	if len(args) > 1 {
		path = args[1]
	}
	if err := config.Save(cfg, path); err != nil {
		fmt.Fprintln(stderr, errorStyle.Render("error: ")+err.Error())
		return 1
	}
	fmt.Fprintln(stdout, okStyle.Render("wrote ")+path)
	return 0
}

func runValidate(cat *catalog.Catalog, stdout io.Writer) int {
	failed := false
	for _, w := range cat.Warnings() {
		fmt.Fprintln(stdout, warnStyle.Render("catalog: ")+w)
	}
	for _, key := range cat.Screens() {
		spec, _ := cat.TryGetScreenSpec(key)
		diags := screen.Validate(spec)
		if screen.HasErrors(diags) {
			failed = true
		}
		status := okStyle.Render("ok")
		if screen.HasErrors(diags) {
			status = errorStyle.Render("invalid")
		}
		fmt.Fprintf(stdout, "%s %s\n", headerStyle.Render(key.String()), status)
		for _, d := range diags {
			fmt.Fprintln(stdout, "  "+diagnostic(d))
		}
	}
	if failed {
		return 1
	}
	return 0
}

func runResolve(e *app.Engine, key keys.Screen, stdout io.Writer) int {
	res := e.Resolver.Resolve(key, e.Router.Context())
	printResult(stdout, res)
	if res.Err != nil {
		return 1
	}
	return 0
}

func runCompose(e *app.Engine, key keys.Screen, stdout, stderr io.Writer) int {
	inst, err := e.Router.Show(key)
	if err != nil {
		fmt.Fprintln(stderr, errorStyle.Render("error: ")+err.Error())
		return 1
	}
	printInstance(stdout, inst)
	return 0
}

func runNavigate(e *app.Engine, steps []string, stdout, stderr io.Writer) int {
	for _, step := range steps {
		if tag, ok := strings.CutPrefix(step, "@"); ok {
			cur := e.Router.Current()
			if cur == nil {
				fmt.Fprintln(stderr, errorStyle.Render("error: ")+"no screen to click on")
				return 1
			}
			w, ok := cur.Widgets.Get(tag)
			if !ok || w.Clickable == nil {
				fmt.Fprintf(stderr, "%s%s has no clickable widget %q\n", errorStyle.Render("error: "), cur.Key, tag)
				return 1
			}
			fmt.Fprintf(stdout, "%s %s on %s\n", dimStyle.Render("click"), tag, cur.Key)
			w.Clickable.Click()
			continue
		}
		inst, err := e.Router.Navigate(keys.ActionOf(step))
		if err != nil {
			fmt.Fprintln(stderr, errorStyle.Render("error: ")+err.Error())
			return 1
		}
		fmt.Fprintf(stdout, "%s %s -> %s\n", dimStyle.Render("route"), step, inst.Key)
	}
	if cur := e.Router.Current(); cur != nil {
		printInstance(stdout, cur)
	}
	return 0
}
