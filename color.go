package bmp2ansi

import (
	"fmt"
	"strconv"
	"strings"
)

// Alpha returns the alpha channel of a packed aRGB color.
func Alpha(c uint32) uint8 {
	return uint8((c >> 24) & 0xff)
}

// Red returns the red channel of a packed aRGB color.
func Red(c uint32) uint8 {
	return uint8((c >> 16) & 0xff)
}

// Green returns the green channel of a packed aRGB color.
func Green(c uint32) uint8 {
	return uint8((c >> 8) & 0xff)
}

// Blue returns the blue channel of a packed aRGB color.
func Blue(c uint32) uint8 {
	return uint8(c & 0xff)
}

// PackARGB packs four 8-bit channels into a single aRGB color.
func PackARGB(a, r, g, b uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// HexString formats the RGB part of a color as six lowercase hex digits,
// ignoring alpha.
func HexString(c uint32) string {
	return fmt.Sprintf("%06x", c&0xffffff)
}

// ParseHexColor parses "rrggbb", "#rrggbb" or "aarrggbb" into a packed color.
// Six digit forms are treated as fully opaque.
func ParseHexColor(s string) (uint32, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")

	switch len(hex) {
	case 6, 8:
	default:
		return 0, fmt.Errorf("bmp2ansi: invalid hex color %q", s)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bmp2ansi: invalid hex color %q", s)
	}

	if len(hex) == 6 {
		v |= 0xff000000
	}

	return uint32(v), nil
}
