package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waozixyz/kryon/screens/render/memory"
	"github.com/waozixyz/kryon/screens/screen"
)

func TestFactoryPrefabOverridesDefault(t *testing.T) {
	host := memory.NewHost(hostTemplates(), nil)
	f := NewFactory(host, nil, nil)

	w := f.Create(screen.WidgetSpec{Type: screen.WidgetTypeGameObject, NameTag: "Card", Prefab: "widgets/card"}, host.Scene())
	require.NotNil(t, w)
	assert.Equal(t, "Card", w.Node.Name())
	assert.Equal(t, screen.WidgetTypeGameObject, w.Type)

	assert.Nil(t, f.Create(screen.WidgetSpec{Type: screen.WidgetTypeGameObject}, host.Scene()))
}

func TestFactoryButtonWithoutRouteOrBinder(t *testing.T) {
	host := memory.NewHost(hostTemplates(), nil)
	f := NewFactory(host, nil, nil)

	w := f.Create(screen.WidgetSpec{Type: screen.WidgetTypeButton, NameTag: "Buy", OnClickRoute: "shop"}, nil)
	require.NotNil(t, w)
	btn := w.Clickable.(*memory.Button)
	assert.Nil(t, btn.OnClick, "nothing binds without a binder")

	w = f.Create(screen.WidgetSpec{Type: screen.WidgetTypeButton, NameTag: "Plain", Text: "Hi"}, nil)
	require.NotNil(t, w)
	assert.Equal(t, "Hi", w.Text.Text())
}

func TestFactoryTextWithoutCapabilityStops(t *testing.T) {
	host := memory.NewHost(hostTemplates(), nil)
	f := NewFactory(host, nil, nil)

	w := f.Create(screen.WidgetSpec{Type: screen.WidgetTypeText, Prefab: "widgets/slot", Text: "lost"}, nil)
	require.NotNil(t, w)
	assert.Nil(t, w.Text)
}
