// Package raylib draws memory-host screens in a raylib window and feeds
// mouse input back into their components.
package raylib

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/waozixyz/kryon/screens/render"
	"github.com/waozixyz/kryon/screens/render/memory"
	"github.com/waozixyz/kryon/screens/variant"
)

// baseFontSize is the unscaled text size.
const baseFontSize = 18.0

// RaylibRenderer is a memory host with a window attached. Templates are
// instantiated by the embedded host; the renderer only lays out, draws and
// routes input.
type RaylibRenderer struct {
	*memory.Host

	config      render.WindowConfig
	scaleFactor float32
	background  rl.Color
	assetDir    string
	textures    map[string]rl.Texture2D
	placed      []render.Placed
	dragging    *memory.Slider
	dragBounds  render.Bounds
	log         *slog.Logger
}

var _ variant.EnvironmentProbe = (*RaylibRenderer)(nil)

// NewRaylibRenderer creates a renderer. Sprites are loaded as PNG files from
// the Assets directory of the window config passed to Init.
func NewRaylibRenderer(log *slog.Logger) *RaylibRenderer {
	if log == nil {
		log = slog.Default()
	}
	return &RaylibRenderer{
		Host:        memory.NewHost(nil, log),
		config:      render.DefaultWindowConfig(),
		scaleFactor: 1.0,
		textures:    make(map[string]rl.Texture2D),
		log:         log,
	}
}

// Init opens the window.
func (r *RaylibRenderer) Init(config render.WindowConfig) error {
	r.config = config
	r.assetDir = config.Assets
	r.scaleFactor = float32(math.Max(1.0, float64(config.ScaleFactor)))
	r.background = toColor(render.ColorOr(config.Background, render.RGBA{R: 0xF5, G: 0xF5, B: 0xF5, A: 0xFF}))

	r.log.Info("raylib: initializing window", "width", config.Width, "height", config.Height, "title", config.Title, "scale", r.scaleFactor)

	rl.InitWindow(int32(config.Width), int32(config.Height), config.Title)
	if config.Resizable {
		rl.SetWindowState(rl.FlagWindowResizable)
	} else {
		rl.ClearWindowState(rl.FlagWindowResizable)
		rl.SetWindowSize(config.Width, config.Height)
	}
	rl.SetTargetFPS(60)

	if !rl.IsWindowReady() {
		return fmt.Errorf("raylib: window is not ready after InitWindow")
	}
	return nil
}

// Platform is always desktop for the raylib backend.
func (r *RaylibRenderer) Platform() variant.Platform { return variant.PlatformDesktop }

// Viewport reports the live window size, or the configured size before Init.
func (r *RaylibRenderer) Viewport() (width, height int) {
	if rl.IsWindowReady() {
		return rl.GetScreenWidth(), rl.GetScreenHeight()
	}
	return r.config.Width, r.config.Height
}

func (r *RaylibRenderer) ShouldClose() bool {
	return rl.IsWindowReady() && rl.WindowShouldClose()
}

func (r *RaylibRenderer) BeginFrame() {
	rl.BeginDrawing()
	rl.ClearBackground(r.background)
}

func (r *RaylibRenderer) EndFrame() {
	rl.EndDrawing()
}

// RenderFrame lays out root against the current window and draws it.
func (r *RaylibRenderer) RenderFrame(root render.Node) {
	if rl.IsWindowResized() && r.config.Resizable {
		w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
		if w != r.config.Width || h != r.config.Height {
			r.config.Width, r.config.Height = w, h
			r.log.Debug("raylib: window resized", "width", w, "height", h)
		}
	}
	viewport := render.Bounds{W: float32(r.config.Width), H: float32(r.config.Height)}
	r.placed = render.Layout(root, viewport, r.scaleFactor)
	for _, p := range r.placed {
		r.drawNode(p)
	}
}

// PollEvents routes mouse input to the tree drawn by the last RenderFrame.
func (r *RaylibRenderer) PollEvents() {
	if !rl.IsWindowReady() {
		return
	}
	mouse := rl.GetMousePosition()
	cursor := rl.MouseCursorDefault

	if r.dragging != nil {
		if rl.IsMouseButtonDown(rl.MouseButtonLeft) && r.dragBounds.W > 0 {
			r.dragging.SetFraction((mouse.X - r.dragBounds.X) / r.dragBounds.W)
			rl.SetMouseCursor(rl.MouseCursorResizeEW)
			return
		}
		r.dragging = nil
	}

	hit, hovering := render.HitTest(r.placed, mouse.X, mouse.Y, memory.Interactive)
	if hovering {
		cursor = rl.MouseCursorPointingHand
	}
	if hovering && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		slider := sliderOf(hit.Node)
		if memory.Press(hit.Node, hit.Bounds, mouse.X, mouse.Y) && slider != nil {
			r.dragging, r.dragBounds = slider, hit.Bounds
		}
	}
	rl.SetMouseCursor(cursor)
}

// Cleanup unloads textures and closes the window.
func (r *RaylibRenderer) Cleanup() {
	unloaded := 0
	for sprite, tex := range r.textures {
		if tex.ID > 0 {
			rl.UnloadTexture(tex)
			unloaded++
		}
		delete(r.textures, sprite)
	}
	r.log.Info("raylib: unloaded textures", "count", unloaded)
	r.placed = nil
	r.dragging = nil

	if rl.IsWindowReady() {
		rl.CloseWindow()
	}
}

// texture loads <assetDir>/<sprite>.png once. Failures are cached as a zero
// texture so the file is not retried every frame.
func (r *RaylibRenderer) texture(sprite string) (rl.Texture2D, bool) {
	if sprite == "" || r.assetDir == "" {
		return rl.Texture2D{}, false
	}
	if tex, ok := r.textures[sprite]; ok {
		return tex, tex.ID > 0
	}
	path := filepath.Join(r.assetDir, sprite+".png")
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		r.log.Warn("raylib: cannot load sprite", "sprite", sprite, "path", path)
	}
	r.textures[sprite] = tex
	return tex, tex.ID > 0
}

func sliderOf(n render.Node) *memory.Slider {
	for _, c := range n.Components() {
		if s, ok := c.(*memory.Slider); ok {
			return s
		}
	}
	return nil
}
