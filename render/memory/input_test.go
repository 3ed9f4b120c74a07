package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/waozixyz/kryon/screens/render"
)

func TestPressButton(t *testing.T) {
	clicked := 0
	btn := &Button{Interactable: true, OnClick: func() { clicked++ }}
	n := NewNode("buy", btn, &Image{})
	b := render.Bounds{X: 10, Y: 10, W: 100, H: 40}

	assert.True(t, Interactive(n))
	assert.True(t, Press(n, b, 20, 20))
	assert.Equal(t, 1, clicked)

	assert.False(t, Press(n, b, 200, 20), "outside bounds")
	assert.Equal(t, 1, clicked)

	btn.Interactable = false
	assert.False(t, Interactive(n))
	assert.False(t, Press(n, b, 20, 20))
	assert.Equal(t, 1, clicked)
}

func TestPressToggle(t *testing.T) {
	tg := &Toggle{Interactable: true}
	n := NewNode("music", tg)
	b := render.Bounds{W: 48, H: 24}

	assert.True(t, Press(n, b, 5, 5))
	assert.True(t, tg.On)
	assert.True(t, Press(n, b, 5, 5))
	assert.False(t, tg.On)

	tg.Interactable = false
	assert.False(t, Press(n, b, 5, 5))
	assert.False(t, tg.On)
}

func TestPressSlider(t *testing.T) {
	s := &Slider{Min: 1, Max: 10, WholeNumbers: true}
	n := NewNode("qty", s)
	b := render.Bounds{X: 100, W: 90, H: 24}

	assert.True(t, Interactive(n))
	assert.True(t, Press(n, b, 145, 10))
	assert.Equal(t, float32(6), s.Value(), "1 + 0.5*9 rounds to 6")

	assert.True(t, Press(n, b, 100, 10))
	assert.Equal(t, float32(1), s.Value())

	s.SetFraction(2)
	assert.Equal(t, float32(10), s.Value())
}

func TestPressIgnoresPlainNodes(t *testing.T) {
	n := NewNode("label", &Text{Value: "hi"})
	assert.False(t, Interactive(n))
	assert.False(t, Press(n, render.Bounds{W: 10, H: 10}, 1, 1))
	assert.False(t, Press(nil, render.Bounds{W: 10, H: 10}, 1, 1))
}
