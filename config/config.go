// Package config loads engine settings from a TOML/YAML file and SCREENS_*
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/waozixyz/kryon/screens/keys"
	"github.com/waozixyz/kryon/screens/render"
	"github.com/waozixyz/kryon/screens/screen"
)

// EnvConfig names the variable holding an explicit config file path.
const EnvConfig = "SCREENS_CONFIG"

// Config holds application configuration.
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Router  RouterConfig  `mapstructure:"router"`
	Context ContextConfig `mapstructure:"context"`
	Log     LogConfig     `mapstructure:"log"`
	Window  WindowConfig  `mapstructure:"window"`
}

type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

type RouterConfig struct {
	DefaultScreen string `mapstructure:"default_screen"`
	InitialRoute  string `mapstructure:"initial_route"`
	Strict        bool   `mapstructure:"strict"`
}

// ContextConfig seeds the presentation context. Experiments and overrides are
// "Key=Variant" pairs so that keys keep their case.
type ContextConfig struct {
	Theme       string   `mapstructure:"theme"`
	Locale      string   `mapstructure:"locale"`
	Experiments []string `mapstructure:"experiments"`
	Overrides   []string `mapstructure:"overrides"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type WindowConfig struct {
	Width      int     `mapstructure:"width"`
	Height     int     `mapstructure:"height"`
	Title      string  `mapstructure:"title"`
	Resizable  bool    `mapstructure:"resizable"`
	Scale      float32 `mapstructure:"scale"`
	Background string  `mapstructure:"background"`
	Assets     string  `mapstructure:"assets"`
}

// DefaultPath is where Load looks when SCREENS_CONFIG is unset.
func DefaultPath() string {
	return filepath.Join(os.Getenv("HOME"), ".config", "kryon-screens", "config.toml")
}

func defaults(v *viper.Viper) {
	win := render.DefaultWindowConfig()
	v.SetDefault("catalog.path", "screens.yaml")
	v.SetDefault("router.default_screen", "")
	v.SetDefault("router.initial_route", "")
	v.SetDefault("router.strict", false)
	v.SetDefault("context.theme", "")
	v.SetDefault("context.locale", "en-US")
	v.SetDefault("context.experiments", []string{})
	v.SetDefault("context.overrides", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("window.width", win.Width)
	v.SetDefault("window.height", win.Height)
	v.SetDefault("window.title", win.Title)
	v.SetDefault("window.resizable", win.Resizable)
	v.SetDefault("window.scale", win.ScaleFactor)
	v.SetDefault("window.background", win.Background)
	v.SetDefault("window.assets", win.Assets)
}

// Load reads configuration from file and env. Env var overrides use prefix
// SCREENS_. A missing default config file is not an error.
func Load() (Config, error) {
	return LoadFile(os.Getenv(EnvConfig))
}

// LoadFile is Load with an explicit file. An empty path falls back to
// DefaultPath, which may be absent; an explicit path must be readable.
func LoadFile(path string) (Config, error) {
	v := viper.New()
	defaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigType("toml")
		v.AddConfigPath(filepath.Dir(DefaultPath()))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("SCREENS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil && path != "" {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes cfg to path, creating the directory if needed. The format
// follows the file extension.
func Save(cfg Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.Set("catalog.path", cfg.Catalog.Path)
	v.Set("router.default_screen", cfg.Router.DefaultScreen)
	v.Set("router.initial_route", cfg.Router.InitialRoute)
	v.Set("router.strict", cfg.Router.Strict)
	v.Set("context.theme", cfg.Context.Theme)
	v.Set("context.locale", cfg.Context.Locale)
	v.Set("context.experiments", cfg.Context.Experiments)
	v.Set("context.overrides", cfg.Context.Overrides)
	v.Set("log.level", cfg.Log.Level)
	v.Set("log.format", cfg.Log.Format)
	v.Set("window.width", cfg.Window.Width)
	v.Set("window.height", cfg.Window.Height)
	v.Set("window.title", cfg.Window.Title)
	v.Set("window.resizable", cfg.Window.Resizable)
	v.Set("window.scale", cfg.Window.Scale)
	v.Set("window.background", cfg.Window.Background)
	v.Set("window.assets", cfg.Window.Assets)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Defaults returns the configuration Load yields with no file and no env.
func Defaults() Config {
	v := viper.New()
	defaults(v)
	var c Config
	_ = v.Unmarshal(&c)
	return c
}

// UIContext builds the presentation context described by c.
func (c Config) UIContext() (screen.Context, error) {
	experiments := make(map[keys.Experiment]keys.Variant, len(c.Context.Experiments))
	for _, pair := range c.Context.Experiments {
		k, v, err := splitPair(pair)
		if err != nil {
			return screen.Context{}, fmt.Errorf("context.experiments: %w", err)
		}
		experiments[keys.ExperimentOf(k)] = keys.VariantOf(v)
	}
	overrides := make(map[keys.Screen]keys.Variant, len(c.Context.Overrides))
	for _, pair := range c.Context.Overrides {
		k, v, err := splitPair(pair)
		if err != nil {
			return screen.Context{}, fmt.Errorf("context.overrides: %w", err)
		}
		overrides[keys.ScreenOf(k)] = keys.VariantOf(v)
	}
	return screen.NewContext(c.Context.Theme, c.Context.Locale, experiments, overrides), nil
}

// RenderWindow converts the window section for render backends.
func (c Config) RenderWindow() render.WindowConfig {
	win := render.DefaultWindowConfig()
	if c.Window.Width > 0 {
		win.Width = c.Window.Width
	}
	if c.Window.Height > 0 {
		win.Height = c.Window.Height
	}
	if c.Window.Title != "" {
		win.Title = c.Window.Title
	}
	win.Resizable = c.Window.Resizable
	if c.Window.Scale > 0 {
		win.ScaleFactor = c.Window.Scale
	}
	if c.Window.Background != "" {
		win.Background = c.Window.Background
	}
	win.Assets = c.Window.Assets
	return win
}

func splitPair(pair string) (string, string, error) {
	k, v, ok := strings.Cut(pair, "=")
	k, v = strings.TrimSpace(k), strings.TrimSpace(v)
	if !ok || k == "" || v == "" {
		return "", "", fmt.Errorf("want Key=Variant, got %q", pair)
	}
	return k, v, nil
}
