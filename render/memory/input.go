package memory

import (
	"github.com/waozixyz/kryon/screens/render"
)

// Flip inverts an interactable toggle.
func (t *Toggle) Flip() bool {
	if !t.Interactable {
		return false
	}
	t.On = !t.On
	return true
}

// SetFraction moves the slider to a point between Min and Max.
func (s *Slider) SetFraction(f float32) {
	f = max(0, min(1, f))
	s.SetValue(s.Min + f*(s.Max-s.Min))
}

// Interactive reports whether a press on n does anything.
func Interactive(n render.Node) bool {
	node, ok := n.(*Node)
	if !ok || node == nil {
		return false
	}
	for _, c := range node.components {
		switch c := c.(type) {
		case *Button:
			return c.Interactable
		case *Toggle:
			return c.Interactable
		case *Slider:
			return true
		}
	}
	return false
}

// Press delivers a pointer press at (x, y) to n, laid out at b. It reports
// whether a component consumed it. Buttons win over toggles and sliders on
// the same node.
func Press(n render.Node, b render.Bounds, x, y float32) bool {
	node, ok := n.(*Node)
	if !ok || node == nil || !b.Contains(x, y) {
		return false
	}
	var (
		toggle *Toggle
		slider *Slider
	)
	for _, c := range node.components {
		switch c := c.(type) {
		case *Button:
			if c.Interactable {
				c.Click()
				return true
			}
		case *Toggle:
			toggle = c
		case *Slider:
			slider = c
		}
	}
	if toggle != nil && toggle.Flip() {
		return true
	}
	if slider != nil {
		slider.SetFraction((x - b.X) / b.W)
		return true
	}
	return false
}
