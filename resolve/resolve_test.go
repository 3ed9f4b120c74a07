package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waozixyz/kryon/screens/catalog"
	"github.com/waozixyz/kryon/screens/keys"
	"github.com/waozixyz/kryon/screens/patch"
	"github.com/waozixyz/kryon/screens/screen"
)

func testCatalog() *catalog.Catalog {
	return catalog.FromDocument(&screen.Document{
		Screens: []screen.Spec{{
			Key:        keys.ScreenOf("Shop"),
			Template:   "templates/shop",
			BaseTheme:  "Light",
			BaseLayout: "ltr",
			Variants: []screen.VariantRule{
				{ID: keys.VariantOf("dark"), Priority: 1, Condition: &screen.VariantCondition{Theme: "Dark"}, Theme: "Dark", Layout: "missing"},
			},
		}},
		Themes: []screen.ThemeSpec{
			{ID: "Light", Entries: []screen.ThemeEntry{{Target: "*", TextColor: "#000"}}},
			{ID: "Dark", Entries: []screen.ThemeEntry{{Target: "*", TextColor: "#FFF"}, {Target: "Buy", Color: "#222"}}},
		},
		Layouts: []screen.LayoutSpec{
			{ID: "ltr", Entries: []screen.LayoutEntry{{Target: "Buy"}}},
		},
	}, nil)
}

func TestResolveThemePatchesPrecedeLayout(t *testing.T) {
	r := NewResolver(testCatalog(), nil, nil)
	res := r.Resolve(keys.ScreenOf("Shop"), screen.NewContext("Light", "en-US", nil, nil))

	require.NoError(t, res.Err)
	require.NotNil(t, res.Spec)
	assert.Equal(t, "Light", res.Resolved.Theme)
	require.Len(t, res.Patches, 2)
	assert.IsType(t, patch.ThemePatch{}, res.Patches[0])
	assert.IsType(t, patch.LayoutPatch{}, res.Patches[1])
	assert.Contains(t, res.Trace, `theme "Light": 1 patches`)
	assert.Contains(t, res.Trace, `layout "ltr": 1 patches`)
}

func TestResolveUnknownLayoutIsTraced(t *testing.T) {
	r := NewResolver(testCatalog(), nil, nil)
	res := r.Resolve(keys.ScreenOf("Shop"), screen.NewContext("Dark", "", nil, nil))

	require.NoError(t, res.Err)
	assert.Equal(t, "Dark", res.Resolved.Theme)
	assert.Len(t, res.Patches, 2, "only the theme contributes")
	assert.Contains(t, res.Trace, `warning: layout "missing" not in catalog, no patches`)
	assert.Equal(t, res.Resolved.Trace, res.Trace[:len(res.Resolved.Trace)])
}

func TestResolveMissingScreenDegrades(t *testing.T) {
	r := NewResolver(testCatalog(), nil, nil)
	res := r.Resolve(keys.ScreenOf("Nope"), screen.NewContext("", "", nil, nil))

	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, ErrScreenNotFound)
	assert.Nil(t, res.Spec)
	assert.Empty(t, res.Patches)
	assert.Equal(t, keys.ScreenOf("Nope"), res.Resolved.Screen)
	assert.True(t, res.Resolved.Template.IsZero())
	assert.NotEmpty(t, res.Trace)
}
