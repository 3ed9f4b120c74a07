package render

import (
	"github.com/waozixyz/kryon/screens/screen"
)

// Bounds is an absolute rectangle in window pixels.
type Bounds struct {
	X, Y, W, H float32
}

func (b Bounds) Empty() bool { return b.W <= 0 || b.H <= 0 }

func (b Bounds) Contains(x, y float32) bool {
	return !b.Empty() && x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Place resolves r inside parent. Anchors are fractions of the parent; a
// stretch rect with both anchors at zero fills the parent, and a rect with no
// mode inherits the parent bounds. position and size are scaled.
func Place(r screen.Rect, parent Bounds, scale float32) Bounds {
	if scale <= 0 {
		scale = 1
	}
	switch r.Mode {
	case screen.RectModeStretch:
		minA, maxA := r.AnchorMin, r.AnchorMax
		if minA == (screen.Vec2{}) && maxA == (screen.Vec2{}) {
			maxA = screen.Vec2{X: 1, Y: 1}
		}
		x0 := parent.X + minA.X*parent.W + r.Position.X*scale
		y0 := parent.Y + minA.Y*parent.H + r.Position.Y*scale
		x1 := parent.X + maxA.X*parent.W - r.Position.X*scale
		y1 := parent.Y + maxA.Y*parent.H - r.Position.Y*scale
		return Bounds{X: x0, Y: y0, W: maxF(0, x1-x0), H: maxF(0, y1-y0)}
	case screen.RectModeAnchored:
		w, h := r.Size.X*scale, r.Size.Y*scale
		return Bounds{
			X: parent.X + r.AnchorMin.X*parent.W + r.Position.X*scale - r.Pivot.X*w,
			Y: parent.Y + r.AnchorMin.Y*parent.H + r.Position.Y*scale - r.Pivot.Y*h,
			W: w,
			H: h,
		}
	default:
		return parent
	}
}

// Placed is one node with its resolved bounds, in draw order.
type Placed struct {
	Node   Node
	Bounds Bounds
	Depth  int
}

// Layout walks the active part of the tree under root depth first, parents
// before children. root itself fills viewport unless its rect says otherwise.
func Layout(root Node, viewport Bounds, scale float32) []Placed {
	if root == nil {
		return nil
	}
	var out []Placed
	var walk func(n Node, parent Bounds, depth int)
	walk = func(n Node, parent Bounds, depth int) {
		if n == nil || !n.Active() {
			return
		}
		b := Place(n.Rect(), parent, scale)
		out = append(out, Placed{Node: n, Bounds: b, Depth: depth})
		for _, c := range n.Children() {
			walk(c, b, depth+1)
		}
	}
	walk(root, viewport, 0)
	return out
}

// HitTest returns the topmost placed entry containing (x, y) that accept
// reports true for. Later entries draw over earlier ones.
func HitTest(placed []Placed, x, y float32, accept func(Node) bool) (Placed, bool) {
	for i := len(placed) - 1; i >= 0; i-- {
		p := placed[i]
		if !p.Bounds.Contains(x, y) {
			continue
		}
		if accept == nil || accept(p.Node) {
			return p, true
		}
	}
	return Placed{}, false
}

func maxF(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
