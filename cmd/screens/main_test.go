package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waozixyz/kryon/screens/config"
)

const shopCatalog = "../../examples/shop/screens.yaml"

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvConfig, "")
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestValidateShopCatalog(t *testing.T) {
	code, out, errOut := runCLI(t, "-file", shopCatalog, "validate")
	require.Equal(t, 0, code, errOut)
	for _, key := range []string{"Home", "Shop", "Settings"} {
		assert.Contains(t, out, key)
	}
	assert.NotContains(t, out, "invalid")
}

func TestValidateReportsBrokenGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
screens:
  - key: Loop
    template: t
    slots:
      - name: Root
        widgets:
          - {type: slot, name: A, slot: A}
      - name: A
        widgets:
          - {type: slot, name: Back, slot: Root}
`), 0o644))

	code, out, _ := runCLI(t, "-file", path, "validate")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "invalid")
	assert.Contains(t, out, "[cycle]")
}

func TestResolveExplainsVariants(t *testing.T) {
	code, out, errOut := runCLI(t, "-file", shopCatalog,
		"-theme", "Dark", "-experiment", "ShopLayoutTest=B",
		"resolve", "Shop")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "templates/page_wide")
	assert.Contains(t, out, "ThemeB")
	assert.Contains(t, out, `rule "dark" (priority 10): matched`)
	assert.Contains(t, out, `theme "ThemeB": 3 patches`)
	assert.Contains(t, out, "theme ThemeB: Coin {")
}

func TestResolveUnknownScreenFails(t *testing.T) {
	code, out, _ := runCLI(t, "-file", shopCatalog, "resolve", "Ghost")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "screen not found")
}

func TestResolveForcedVariant(t *testing.T) {
	code, out, _ := runCLI(t, "-file", shopCatalog, "-force", "Shop=german", "resolve", "Shop")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "forced")
	assert.Contains(t, out, "layout   de")
}

func TestComposePrintsTree(t *testing.T) {
	code, out, errOut := runCLI(t, "-file", shopCatalog, "compose", "Shop")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "#Buy100")
	assert.Contains(t, out, "slot=Offers")
	assert.Contains(t, out, `text="Balance: 0"`)
	assert.NotContains(t, out, "#Buy1000", "disabled widgets are not created")
}

func TestNavigateFollowsRoutesAndClicks(t *testing.T) {
	code, out, errOut := runCLI(t, "-file", shopCatalog, "navigate", "default/nav/home", "@ToShop", "@Back", "ui/settings")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "default/nav/home -> Home")
	assert.Contains(t, out, "ToShop on Home")
	assert.Contains(t, out, "Back on Shop")
	assert.Contains(t, out, "ui/settings -> Settings")
	assert.Contains(t, out, "toggle(on=true)")
}

func TestNavigateClickUnknownWidget(t *testing.T) {
	code, _, errOut := runCLI(t, "-file", shopCatalog, "navigate", "ui/gold", "@Nope")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, `no clickable widget "Nope"`)
}

func TestConfigInitWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screens.toml")
	code, out, errOut := runCLI(t, "-theme", "Dark", "config", "init", path)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, path)

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Dark", cfg.Context.Theme)
}

func TestUsageErrors(t *testing.T) {
	code, _, _ := runCLI(t)
	assert.Equal(t, 2, code)

	code, _, errOut := runCLI(t, "-file", shopCatalog, "explode")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, `unknown command "explode"`)

	code, _, _ = runCLI(t, "-file", shopCatalog, "resolve")
	assert.Equal(t, 2, code)
}
