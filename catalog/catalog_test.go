package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waozixyz/kryon/screens/keys"
	"github.com/waozixyz/kryon/screens/screen"
)

func TestScreenLookupIsOrdinal(t *testing.T) {
	c := New([]screen.Spec{
		{Key: keys.ScreenOf("Shop"), Template: "templates/shop"},
		{Key: keys.ScreenOf("Shop"), Template: "templates/other"},
		{Key: keys.ScreenOf("Inventory")},
	}, nil, nil)

	s, ok := c.TryGetScreenSpec(keys.ScreenOf("Shop"))
	require.True(t, ok)
	assert.Equal(t, screen.TemplateRef("templates/shop"), s.Template)

	_, ok = c.TryGetScreenSpec(keys.ScreenOf("shop"))
	assert.False(t, ok, "screen keys are case sensitive")

	assert.Equal(t, []keys.Screen{keys.ScreenOf("Shop"), keys.ScreenOf("Inventory")}, c.Screens())
	require.Len(t, c.Warnings(), 1)
	assert.Contains(t, c.Warnings()[0], "duplicate screen")
}

func TestRouteLookupIgnoresCase(t *testing.T) {
	c := New(nil, []keys.RouteEntry{
		{Route: "default/nav/Home", Screen: keys.ScreenOf("Home")},
		{Route: "DEFAULT/NAV/HOME", Screen: keys.ScreenOf("Other")},
		{Route: "ui/gold", Screen: keys.ScreenOf("Shop")},
		{Route: "UI/Gold", Screen: keys.ScreenOf("Shop")},
		{Route: "  ", Screen: keys.ScreenOf("Nowhere")},
	}, nil)

	k, ok := c.TryGetRouteScreenKey("Default/Nav/home")
	require.True(t, ok)
	assert.Equal(t, keys.ScreenOf("Home"), k, "first registration wins")

	k, ok = c.TryGetRouteScreenKey("ui/gold")
	require.True(t, ok)
	assert.Equal(t, keys.ScreenOf("Shop"), k)

	_, ok = c.TryGetRouteScreenKey("unknown/route")
	assert.False(t, ok)

	assert.Len(t, c.Warnings(), 2, "conflicting duplicate and empty route; same-target duplicate is silent")
	assert.Len(t, c.Routes(), 2)
}

func TestFromDocument(t *testing.T) {
	doc := &screen.Document{
		Screens: []screen.Spec{{Key: keys.ScreenOf("Shop")}},
		Routes:  []keys.RouteEntry{{Route: "shop", Screen: keys.ScreenOf("Shop")}},
		Themes: []screen.ThemeSpec{
			{ID: "Dark", Entries: []screen.ThemeEntry{{Target: "*", TextColor: "#FFF"}}},
			{ID: "Dark"},
		},
		Layouts:   []screen.LayoutSpec{{ID: "rtl"}},
		Templates: []screen.TemplateSpec{{Ref: "templates/shop"}},
	}
	c := FromDocument(doc, nil)

	theme, ok := c.Theme(" Dark ")
	require.True(t, ok)
	assert.Len(t, theme.Entries, 1)
	_, ok = c.Layout("rtl")
	assert.True(t, ok)
	_, ok = c.Layout("ltr")
	assert.False(t, ok)
	assert.Len(t, c.Templates(), 1)
	assert.Len(t, c.Warnings(), 1)

	doc.Screens[0].Template = "mutated"
	s, _ := c.TryGetScreenSpec(keys.ScreenOf("Shop"))
	assert.True(t, s.Template.IsZero(), "catalog holds its own copy")

	empty := FromDocument(nil, nil)
	assert.Empty(t, empty.Screens())
}
