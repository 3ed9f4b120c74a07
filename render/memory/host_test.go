package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waozixyz/kryon/screens/render"
	"github.com/waozixyz/kryon/screens/screen"
)

func testTemplates() []screen.TemplateSpec {
	return []screen.TemplateSpec{
		{Ref: "templates/shop", Root: screen.NodeSpec{
			Name: "ShopRoot",
			Slot: "Root",
			Children: []screen.NodeSpec{
				{Name: "Header", Components: []screen.Component{screen.ComponentText}, Text: "Shop"},
				{Name: "FooterAnchor", Components: []screen.Component{screen.ComponentSlot}, Slot: "Footer"},
			},
		}},
		{Ref: "widgets/button", Default: screen.WidgetTypeButton, Root: screen.NodeSpec{
			Name:       "Button",
			Components: []screen.Component{screen.ComponentButton, screen.ComponentImage},
			Children: []screen.NodeSpec{
				{Name: "Label", Components: []screen.Component{screen.ComponentText}},
			},
		}},
		{Ref: "widgets/button-alt", Default: screen.WidgetTypeButton, Root: screen.NodeSpec{Name: "Alt"}},
		{Ref: "widgets/button", Root: screen.NodeSpec{Name: "Shadowed"}},
	}
}

func TestInstantiateBuildsTree(t *testing.T) {
	h := NewHost(testTemplates(), nil)

	root, err := h.Instantiate("templates/shop", h.Scene())
	require.NoError(t, err)
	assert.Equal(t, "ShopRoot", root.Name())
	assert.Equal(t, render.Node(h.Scene()), root.Parent())
	require.Len(t, root.Children(), 2)
	assert.Equal(t, 1, h.Instantiated)

	markers := render.SlotMarkers(root)
	require.Len(t, markers, 2)
	assert.Equal(t, "Root", markers[0].SlotID())
	assert.Equal(t, "Footer", markers[1].SlotID())
	assert.Equal(t, "FooterAnchor", markers[1].Target().Name())

	again, err := h.Instantiate("templates/shop", h.Scene())
	require.NoError(t, err)
	assert.NotSame(t, root.(*Node), again.(*Node), "every call yields a fresh instance")
	assert.Len(t, h.Scene().ChildNodes(), 2)
}

func TestInstantiateErrors(t *testing.T) {
	h := NewHost(testTemplates(), nil)

	_, err := h.Instantiate("templates/missing", nil)
	assert.ErrorIs(t, err, ErrUnknownTemplate)

	dead := NewNode("dead")
	dead.Destroy()
	_, err = h.Instantiate("templates/shop", dead)
	assert.Error(t, err)
}

func TestDefaultTemplatesFirstWins(t *testing.T) {
	h := NewHost(testTemplates(), nil)

	ref, ok := h.DefaultTemplate(screen.WidgetTypeButton)
	require.True(t, ok)
	assert.Equal(t, screen.TemplateRef("widgets/button"), ref)

	n, err := h.Instantiate(ref, nil)
	require.NoError(t, err)
	assert.Equal(t, "Button", n.Name(), "duplicate ref keeps the first definition")

	_, ok = h.DefaultTemplate(screen.WidgetTypeSlider)
	assert.False(t, ok)
}

func TestAttachSlotReusesExistingMarker(t *testing.T) {
	h := NewHost(testTemplates(), nil)
	n := NewNode("holder")

	first := h.AttachSlot(n, "Footer")
	require.NotNil(t, first)
	second := h.AttachSlot(n, "Body")
	assert.Same(t, first.(*Slot), second.(*Slot))
	assert.Equal(t, "Body", first.SlotID())
	assert.Len(t, n.Components(), 1)
}

func TestDestroyDetachesSubtree(t *testing.T) {
	h := NewHost(testTemplates(), nil)
	root, err := h.Instantiate("templates/shop", h.Scene())
	require.NoError(t, err)
	header, ok := root.(*Node).Find("Header")
	require.True(t, ok)

	root.Destroy()
	assert.True(t, root.(*Node).Destroyed())
	assert.True(t, header.Destroyed())
	assert.Empty(t, h.Scene().ChildNodes())
	root.Destroy()
}

func TestButtonClickAndSlider(t *testing.T) {
	clicks := 0
	b := &Button{Interactable: true}
	b.SetOnClick(func() { clicks++ })
	b.Click()
	b.SetInteractable(false)
	b.Click()
	assert.Equal(t, 1, clicks)

	s := &Slider{}
	s.SetRange(0, 10, true)
	s.SetValue(12)
	assert.Equal(t, float32(10), s.Value())
	s.SetValue(3.6)
	assert.Equal(t, float32(4), s.Value())
}

func TestWalkDepths(t *testing.T) {
	h := NewHost(testTemplates(), nil)
	root, err := h.Instantiate("templates/shop", nil)
	require.NoError(t, err)

	var names []string
	var depths []int
	root.(*Node).Walk(func(n *Node, depth int) bool {
		names = append(names, n.Name())
		depths = append(depths, depth)
		return true
	})
	assert.Equal(t, []string{"ShopRoot", "Header", "FooterAnchor"}, names)
	assert.Equal(t, []int{0, 1, 1}, depths)
}
