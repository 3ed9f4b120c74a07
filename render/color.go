package render

import (
	"strconv"
	"strings"
)

// RGBA is a color decoded from a "#RRGGBB" or "#RRGGBBAA" string.
type RGBA struct {
	R, G, B, A uint8
}

// ParseColor decodes a hex color. The leading '#' is optional.
func ParseColor(s string) (RGBA, bool) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return RGBA{}, false
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGBA{}, false
	}
	if len(s) == 6 {
		return RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, true
	}
	return RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
}

// ColorOr decodes s, falling back to def when s is empty or malformed.
func ColorOr(s string, def RGBA) RGBA {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return def
}
