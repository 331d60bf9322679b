// Package color parses the CSS color strings a chart is configured with.
//
// Sinks that cannot hand a CSS string to their backend (PNG, terminal) use
// [Parse] to get an [RGBA] built on go-colorful, and [RGBA.Over] to
// composite translucent fills the way a browser canvas would.
package color

import (
	stdcolor "image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"

	"github.com/matzehuels/radar/pkg/errors"
)

// RGBA is a color with straight (non-premultiplied) alpha in [0, 1].
type RGBA struct {
	colorful.Color
	A float64
}

// Parse accepts any CSS color: hex with or without alpha, rgb(), rgba(),
// hsl(), hwb(), named colors and "transparent".
func Parse(s string) (RGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return RGBA{}, errors.New(errors.ErrCodeInvalidColor, "empty color")
	}
	c, err := csscolorparser.Parse(v)
	if err != nil {
		return RGBA{}, errors.Wrap(errors.ErrCodeInvalidColor, err, "unsupported color %q", s)
	}
	return RGBA{
		Color: colorful.Color{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B)},
		A:     clamp01(c.A),
	}, nil
}

// MustParse is Parse for constants known to be valid.
func MustParse(s string) RGBA {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

// Hex returns the opaque part of c as #rrggbb.
func (c RGBA) Hex() string {
	return c.Clamped().Hex()
}

// Opaque reports whether c has full alpha.
func (c RGBA) Opaque() bool {
	return c.A >= 1
}

// NRGBA converts c for image/draw based backends.
func (c RGBA) NRGBA() stdcolor.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return stdcolor.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(c.A * 255))}
}

// Over composites c onto an opaque background.
func (c RGBA) Over(bg colorful.Color) colorful.Color {
	if c.A <= 0 {
		return bg
	}
	if c.A >= 1 {
		return c.Color
	}
	return bg.BlendRgb(c.Color, c.A)
}

// SVG returns the color and opacity attributes for an SVG paint: the hex
// color and, when translucent, the opacity as a separate value.
func (c RGBA) SVG() (string, float64) {
	return c.Hex(), c.A
}
