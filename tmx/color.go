package tmx

import (
	"fmt"
	"strconv"
)

// Color is an ARGB color as used by tint, background and type attributes.
type Color struct {
	R, G, B, A uint8
}

// White is the neutral tint.
var White = Color{R: 255, G: 255, B: 255, A: 255}

// ParseColor parses "#RRGGBB" or "#AARRGGBB"; the leading '#' is optional.
func ParseColor(value string) (Color, error) {
	hex := value
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, value)
	}

	parsed, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, value)
	}

	color := Color{A: 255}
	if len(hex) == 8 {
		color.A = uint8(parsed >> 24)
	}
	color.R = uint8(parsed >> 16)
	color.G = uint8(parsed >> 8)
	color.B = uint8(parsed)
	return color, nil
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B)
}

// blend multiplies two colors per channel, the composition rule for tints
// down a layer hierarchy.
func (c Color) blend(other Color) Color {
	mul := func(a, b uint8) uint8 {
		return uint8((uint16(a) * uint16(b)) / 255)
	}
	return Color{
		R: mul(c.R, other.R),
		G: mul(c.G, other.G),
		B: mul(c.B, other.B),
		A: mul(c.A, other.A),
	}
}
