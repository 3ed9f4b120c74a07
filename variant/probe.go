package variant

import "strings"

// Platform is the coarse device class a condition can target.
type Platform string

const (
	PlatformDesktop Platform = "desktop"
	PlatformMobile  Platform = "mobile"
	PlatformConsole Platform = "console"
)

// Aspect classes derived from the viewport.
const (
	AspectPortrait  = "portrait"
	AspectLandscape = "landscape"
	AspectSquare    = "square"
)

// EnvironmentProbe supplies the execution environment facts that conditions
// may depend on. Hosts implement it; tests use StaticProbe.
type EnvironmentProbe interface {
	Platform() Platform
	Viewport() (width, height int)
}

// StaticProbe reports fixed values.
type StaticProbe struct {
	Class  Platform
	Width  int
	Height int
}

// DefaultProbe is used when no probe is injected: a 1920x1080 desktop.
var DefaultProbe = StaticProbe{Class: PlatformDesktop, Width: 1920, Height: 1080}

func (p StaticProbe) Platform() Platform            { return p.Class }
func (p StaticProbe) Viewport() (width, height int) { return p.Width, p.Height }

// AspectRatio returns width/height, or 0 when the viewport is unknown.
func AspectRatio(p EnvironmentProbe) float64 {
	w, h := p.Viewport()
	if w <= 0 || h <= 0 {
		return 0
	}
	return float64(w) / float64(h)
}

// AspectClass classifies the probe's viewport, "" when unknown.
func AspectClass(p EnvironmentProbe) string {
	w, h := p.Viewport()
	switch {
	case w <= 0 || h <= 0:
		return ""
	case w > h:
		return AspectLandscape
	case h > w:
		return AspectPortrait
	default:
		return AspectSquare
	}
}

func samePlatform(want string, got Platform) bool {
	return strings.EqualFold(strings.TrimSpace(want), string(got))
}
