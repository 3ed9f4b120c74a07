package raylib

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/waozixyz/kryon/screens/render"
	"github.com/waozixyz/kryon/screens/render/memory"
)

// --- Default palette ---

var (
	defaultText   = render.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF}
	defaultFill   = render.RGBA{R: 0xC8, G: 0xC8, B: 0xC8, A: 0xFF}
	defaultBorder = render.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xFF}
	accent        = render.RGBA{R: 0x3A, G: 0x7B, B: 0xD5, A: 0xFF}
)

// drawNode draws the components of one placed node. Children are drawn by
// later entries of the layout.
func (r *RaylibRenderer) drawNode(p render.Placed) {
	if p.Bounds.Empty() {
		return
	}
	x, y := int32(p.Bounds.X), int32(p.Bounds.Y)
	w, h := int32(p.Bounds.W), int32(p.Bounds.H)

	var (
		text   *memory.Text
		button *memory.Button
	)
	for _, c := range p.Node.Components() {
		switch c := c.(type) {
		case *memory.Image:
			r.drawImage(c, p.Bounds)
		case *memory.Button:
			button = c
		case *memory.Toggle:
			drawToggle(c, x, y, w, h)
		case *memory.Slider:
			drawSlider(c, x, y, w, h)
		case *memory.Text:
			text = c
		}
	}
	if button != nil {
		border := defaultBorder
		if !button.Interactable {
			border.A = 0x60
		}
		rl.DrawRectangleLines(x, y, w, h, toColor(border))
	}
	if text != nil && text.Value != "" {
		centered := button != nil || parentIsButton(p.Node)
		r.drawText(text, x, y, w, h, centered)
	}
}

func (r *RaylibRenderer) drawImage(img *memory.Image, b render.Bounds) {
	tint := toColor(render.ColorOr(img.Color, defaultFill))
	if tex, ok := r.texture(img.Sprite); ok {
		src := rl.NewRectangle(0, 0, float32(tex.Width), float32(tex.Height))
		dst := rl.NewRectangle(b.X, b.Y, b.W, b.H)
		rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, tint)
		return
	}
	rl.DrawRectangle(int32(b.X), int32(b.Y), int32(b.W), int32(b.H), tint)
}

func (r *RaylibRenderer) drawText(t *memory.Text, x, y, w, h int32, centered bool) {
	fontSize := int32(math.Max(1.0, math.Round(baseFontSize*float64(r.scaleFactor))))
	measured := rl.MeasureText(t.Value, fontSize)

	tx := x
	if centered {
		tx = x + (w-measured)/2
	}
	ty := y + (h-fontSize)/2

	rl.BeginScissorMode(x, y, w, h)
	rl.DrawText(t.Value, tx, ty, fontSize, toColor(render.ColorOr(t.Color, defaultText)))
	rl.EndScissorMode()
}

func drawToggle(t *memory.Toggle, x, y, w, h int32) {
	fill := defaultFill
	if t.On {
		fill = accent
	}
	if !t.Interactable {
		fill.A = 0x80
	}
	rl.DrawRectangle(x, y, w, h, toColor(fill))

	knob := h - 4
	kx := x + 2
	if t.On {
		kx = x + w - knob - 2
	}
	rl.DrawRectangle(kx, y+2, knob, knob, rl.RayWhite)
}

func drawSlider(s *memory.Slider, x, y, w, h int32) {
	track := h / 3
	rl.DrawRectangle(x, y+(h-track)/2, w, track, toColor(defaultFill))

	var frac float32
	if s.Max > s.Min {
		frac = (s.Current - s.Min) / (s.Max - s.Min)
	}
	filled := int32(frac * float32(w))
	rl.DrawRectangle(x, y+(h-track)/2, filled, track, toColor(accent))
	rl.DrawCircle(x+filled, y+h/2, float32(h)/2, rl.RayWhite)
}

func parentIsButton(n render.Node) bool {
	parent := n.Parent()
	if parent == nil {
		return false
	}
	for _, c := range parent.Components() {
		if _, ok := c.(*memory.Button); ok {
			return true
		}
	}
	return false
}

func toColor(c render.RGBA) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}
