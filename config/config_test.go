package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waozixyz/kryon/screens/keys"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(EnvConfig, "")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "screens.yaml", c.Catalog.Path)
	assert.Equal(t, "en-US", c.Context.Locale)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, 800, c.Window.Width)
	assert.False(t, c.Router.Strict)
	assert.Equal(t, Defaults(), c)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "screens.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[catalog]
path = "shop.yaml"

[router]
default_screen = "Home"
strict = true

[context]
theme = "Dark"
experiments = ["ShopLayoutTest=B"]
overrides = ["Shop=qa"]
`), 0o644))

	t.Setenv(EnvConfig, path)
	t.Setenv("SCREENS_CONTEXT_LOCALE", "de-DE")
	t.Setenv("SCREENS_WINDOW_WIDTH", "1280")

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "shop.yaml", c.Catalog.Path)
	assert.Equal(t, "Home", c.Router.DefaultScreen)
	assert.True(t, c.Router.Strict)
	assert.Equal(t, "de-DE", c.Context.Locale)
	assert.Equal(t, 1280, c.Window.Width)

	ctx, err := c.UIContext()
	require.NoError(t, err)
	assert.Equal(t, "Dark", ctx.Theme)
	v, ok := ctx.Experiment(keys.ExperimentOf("ShopLayoutTest"))
	require.True(t, ok)
	assert.Equal(t, keys.VariantOf("B"), v)
	forced, ok := ctx.ScreenOverride(keys.ScreenOf("Shop"))
	require.True(t, ok)
	assert.Equal(t, keys.VariantOf("qa"), forced)
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := Defaults()
	cfg.Router.DefaultScreen = "Home"
	cfg.Context.Experiments = []string{"A=x"}

	require.NoError(t, Save(cfg, path))
	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Home", got.Router.DefaultScreen)
	assert.Equal(t, []string{"A=x"}, got.Context.Experiments)
}

func TestUIContextRejectsMalformedPairs(t *testing.T) {
	c := Defaults()
	c.Context.Experiments = []string{"missing-separator"}
	_, err := c.UIContext()
	assert.Error(t, err)

	c = Defaults()
	c.Context.Overrides = []string{"Shop="}
	_, err = c.UIContext()
	assert.Error(t, err)
}

func TestRenderWindow(t *testing.T) {
	c := Defaults()
	c.Window.Width = 0
	c.Window.Title = "Shop"
	c.Window.Scale = 0
	c.Window.Assets = "assets"
	win := c.RenderWindow()
	assert.Equal(t, 800, win.Width)
	assert.Equal(t, "Shop", win.Title)
	assert.Equal(t, float32(1), win.ScaleFactor)
	assert.Equal(t, "#F5F5F5", win.Background)
	assert.Equal(t, "assets", win.Assets)
}
