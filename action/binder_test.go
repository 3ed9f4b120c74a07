package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waozixyz/kryon/screens/keys"
	"github.com/waozixyz/kryon/screens/render"
	"github.com/waozixyz/kryon/screens/render/memory"
	"github.com/waozixyz/kryon/screens/screen"
)

type routeMap map[string]keys.Screen

func (m routeMap) TryGetRouteScreenKey(route string) (keys.Screen, bool) {
	k, ok := m[route]
	return k, ok
}

func buttonWidget(tag string) (*render.Widget, *memory.Button) {
	b := &memory.Button{Interactable: true}
	return render.NewWidget(tag, screen.WidgetTypeButton, memory.NewNode(tag, b)), b
}

func TestNavigationBinderClaimsKnownRoutes(t *testing.T) {
	var navigated []keys.Action
	nav := NewNavigationBinder(routeMap{"shop": keys.ScreenOf("Shop")}, func(a keys.Action) {
		navigated = append(navigated, a)
	})

	w, b := buttonWidget("Buy")
	require.True(t, nav.TryBind(w, keys.ActionOf("shop")))
	b.Click()
	assert.Equal(t, []keys.Action{keys.ActionOf("shop")}, navigated)

	assert.False(t, nav.TryBind(w, keys.ActionOf("inventory")))
	assert.False(t, nav.TryBind(w, keys.Action{}))
}

func TestBindersIgnoreWidgetsWithoutClickTarget(t *testing.T) {
	label := render.NewWidget("Title", screen.WidgetTypeText, memory.NewNode("Title", &memory.Text{}))
	nav := NewNavigationBinder(routeMap{"shop": keys.ScreenOf("Shop")}, func(keys.Action) {})
	game := NewGameplayBinder(nil)
	game.Handle(keys.ActionOf("jump"), func() {})

	assert.False(t, nav.TryBind(label, keys.ActionOf("shop")))
	assert.False(t, game.TryBind(label, keys.ActionOf("jump")))
	assert.False(t, game.TryBind(nil, keys.ActionOf("jump")))
}

func TestCompositeFirstClaimWinsAndReplacesHandler(t *testing.T) {
	var log []string
	nav := NewNavigationBinder(routeMap{"shop": keys.ScreenOf("Shop")}, func(a keys.Action) {
		log = append(log, "nav:"+a.String())
	})
	game := NewGameplayBinder(nil)
	game.Handle(keys.ActionOf("shop"), func() { log = append(log, "game:shop") })
	game.Handle(keys.ActionOf("buy"), func() { log = append(log, "game:buy") })

	c := NewComposite(nil, nav, game)
	w, b := buttonWidget("Buy")
	b.SetOnClick(func() { log = append(log, "stale") })

	require.True(t, c.TryBind(w, keys.ActionOf("shop")))
	b.Click()
	require.True(t, c.TryBind(w, keys.ActionOf("buy")))
	b.Click()
	assert.Equal(t, []string{"nav:shop", "game:buy"}, log)

	assert.False(t, c.TryBind(w, keys.ActionOf("unknown")))
}

func TestGameplayHandleIgnoresInvalidRegistrations(t *testing.T) {
	game := NewGameplayBinder(nil)
	game.Handle(keys.Action{}, func() {})
	game.Handle(keys.ActionOf("x"), nil)
	assert.Empty(t, game.handlers)
}
