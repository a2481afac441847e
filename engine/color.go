package engine

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Hex converts 0xRRGGBB into an opaque colour.
func Hex(v uint32) color.RGBA {
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// ParseHexColor accepts "#rrggbb", "rrggbb", "#rgb" or "0xrrggbb".
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	h = strings.TrimPrefix(strings.ToLower(h), "0x")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("parse colour %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse colour %q: %w", s, err)
	}
	return Hex(uint32(v)), nil
}
