// Package png is a [radar.Surface] that rasterizes in process with
// fogleman/gg, for hosts without rsvg-convert.
//
// Fill and Stroke keep the current path, like the canvas 2D API, so the
// chart can fill and outline its polygon from one path.
package png

import (
	"bytes"
	"image"
	stdcolor "image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/radar/pkg/errors"
	"github.com/matzehuels/radar/pkg/fonts"
	"github.com/matzehuels/radar/pkg/radar"
	"github.com/matzehuels/radar/pkg/render/color"
)

// Option configures a Canvas.
type Option func(*Canvas)

// WithScale renders at scale times the logical size (default 2 for
// high-density output). Chart coordinates stay logical.
func WithScale(s float64) Option {
	return func(c *Canvas) {
		if s > 0 {
			c.scale = s
		}
	}
}

// WithBackground sets the color Clear paints. Default white.
func WithBackground(css string) Option {
	return func(c *Canvas) {
		if v, err := color.Parse(css); err == nil {
			c.background = v.NRGBA()
		}
	}
}

// Canvas implements radar.Surface on a gg context.
type Canvas struct {
	dc         *gg.Context
	w, h       float64
	scale      float64
	background stdcolor.NRGBA

	stroke, fill stdcolor.NRGBA
	fontErr      error
}

var _ radar.Surface = (*Canvas)(nil)

// New returns a canvas of the given logical size, cleared to the background.
func New(width, height float64, opts ...Option) *Canvas {
	c := &Canvas{
		w:          width,
		h:          height,
		scale:      2,
		background: stdcolor.NRGBA{R: 255, G: 255, B: 255, A: 255},
		stroke:     stdcolor.NRGBA{A: 255},
		fill:       stdcolor.NRGBA{A: 255},
	}
	for _, opt := range opts {
		opt(c)
	}
	pw := max(1, int(math.Ceil(width*c.scale)))
	ph := max(1, int(math.Ceil(height*c.scale)))
	c.dc = gg.NewContext(pw, ph)
	c.dc.Scale(c.scale, c.scale)
	c.Clear()
	return c
}

func (c *Canvas) Size() (float64, float64) { return c.w, c.h }

func (c *Canvas) Bounds() radar.Rect { return radar.Rect{Width: c.w, Height: c.h} }

func (c *Canvas) Clear() {
	c.dc.ClearPath()
	c.dc.SetColor(c.background)
	c.dc.Clear()
}

// SetStrokeStyle sets the outline color. Unparseable colors are ignored.
func (c *Canvas) SetStrokeStyle(s string) {
	if v, err := color.Parse(s); err == nil {
		c.stroke = v.NRGBA()
	}
}

// SetFillStyle sets the fill color. Unparseable colors are ignored.
func (c *Canvas) SetFillStyle(s string) {
	if v, err := color.Parse(s); err == nil {
		c.fill = v.NRGBA()
	}
}

func (c *Canvas) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) {
		c.dc.SetLineWidth(w)
	}
}

// SetFont loads the embedded Go font closest to f. A failure is kept and
// reported by Err; text keeps the previous face.
func (c *Canvas) SetFont(f radar.Font) {
	face, err := fonts.Face(f.Size*c.scale, f.Bold())
	if err != nil {
		c.fontErr = err
		return
	}
	c.dc.SetFontFace(face)
}

func (c *Canvas) BeginPath()          { c.dc.ClearPath() }
func (c *Canvas) MoveTo(x, y float64) { c.dc.MoveTo(x, y) }
func (c *Canvas) LineTo(x, y float64) { c.dc.LineTo(x, y) }
func (c *Canvas) ClosePath()          { c.dc.ClosePath() }

func (c *Canvas) Arc(x, y, r, start, end float64) {
	c.dc.DrawArc(x, y, r, start, end)
}

func (c *Canvas) Fill() {
	c.dc.SetColor(c.fill)
	c.dc.FillPreserve()
}

func (c *Canvas) Stroke() {
	c.dc.SetColor(c.stroke)
	c.dc.StrokePreserve()
}

func (c *Canvas) FillText(text string, x, y float64) {
	c.dc.SetColor(c.fill)
	c.dc.DrawStringAnchored(text, x, y, 0.5, 0.5)
}

// Err returns the first font loading error, if any.
func (c *Canvas) Err() error {
	if c.fontErr != nil {
		return errors.Wrap(errors.ErrCodeInternal, c.fontErr, "load label font")
	}
	return nil
}

// Image returns the rendered image.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// Bytes encodes the image as PNG.
func (c *Canvas) Bytes() ([]byte, error) {
	if err := c.Err(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := c.dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
