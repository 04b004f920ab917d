package interp

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color with a straight (non-premultiplied) alpha channel.
// Components are nominally in [0, 1].
type Color struct {
	colorful.Color
	A float64
}

// RGBA builds a color from components in [0, 1].
func RGBA(r, g, b, a float64) Color {
	return Color{Color: colorful.Color{R: r, G: g, B: b}, A: a}
}

// Hex parses "#rgb", "#rrggbb" or "#rrggbbaa". Alpha defaults to opaque.
func Hex(s string) (Color, error) {
	switch len(s) {
	case 4, 7, 9:
	default:
		return Color{}, fmt.Errorf("color %q: expected #rgb, #rrggbb or #rrggbbaa", s)
	}
	alpha := 1.0
	if len(s) == 9 {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("color %q: invalid alpha: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{Color: c, A: alpha}, nil
}

// MustHex is Hex for literals known to be valid.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Interpolate blends RGB with colorful's linear RGB blend and alpha linearly.
func (c Color) Interpolate(to Color, t float64) Color {
	return Color{Color: c.BlendRgb(to.Color, t), A: lerp(c.A, to.A, t)}
}

// NRGBA converts to 8-bit non-premultiplied components, clamping each channel.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	a := math.Round(math.Max(0, math.Min(1, c.A)) * 255)
	return color.NRGBA{R: r, G: g, B: b, A: uint8(a)}
}

// Hex formats the color as "#rrggbbaa".
func (c Color) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
