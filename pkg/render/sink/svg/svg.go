// Package svg is a [radar.Surface] that records drawing calls as an SVG
// document.
//
// Every Fill or Stroke emits one <path> element carrying the current path, so
// the output mirrors the order the chart drew in. Translucent rgba() colors
// are split into a hex paint and a separate opacity attribute, which keeps
// the document readable by converters that ignore CSS color functions.
//
// A [Tooltip] can be bound to the canvas through a [Document]; when it is
// visible it is rendered on top of the chart. [EmbedPopups] instead bakes one
// popup per vertex into the document together with a small script that
// shows them on hover, for standalone files opened in a browser.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/radar/pkg/radar"
	"github.com/matzehuels/radar/pkg/render/color"
)

// Option configures a Canvas.
type Option func(*Canvas)

// WithID sets the id attribute of the root element. By default a random
// id is generated so several charts can share one HTML page.
func WithID(id string) Option { return func(c *Canvas) { c.id = id } }

// WithTooltip renders t on top of the chart while it is visible.
func WithTooltip(t *Tooltip) Option { return func(c *Canvas) { c.tooltip = t } }

// Canvas implements radar.Surface.
type Canvas struct {
	w, h float64
	id   string

	body bytes.Buffer
	path strings.Builder
	open bool

	stroke    color.RGBA
	fill      color.RGBA
	lineWidth float64
	font      radar.Font

	tooltip *Tooltip
	popups  []Popup
}

var _ radar.Surface = (*Canvas)(nil)

// New returns an empty canvas of the given size in pixels.
func New(width, height float64, opts ...Option) *Canvas {
	c := &Canvas{
		w:         width,
		h:         height,
		id:        "radar-" + uuid.NewString(),
		stroke:    color.MustParse("#000"),
		fill:      color.MustParse("#000"),
		lineWidth: 1,
		font:      radar.Font{Size: 10, Family: radar.DefaultFontFamily},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the id of the root element.
func (c *Canvas) ID() string { return c.id }

func (c *Canvas) Size() (float64, float64) { return c.w, c.h }

func (c *Canvas) Bounds() radar.Rect { return radar.Rect{Width: c.w, Height: c.h} }

func (c *Canvas) Clear() {
	c.body.Reset()
	c.path.Reset()
	c.open = false
	c.popups = nil
}

// SetStrokeStyle sets the outline color. Unparseable colors are ignored,
// as a browser canvas does.
func (c *Canvas) SetStrokeStyle(s string) {
	if v, err := color.Parse(s); err == nil {
		c.stroke = v
	}
}

// SetFillStyle sets the fill color. Unparseable colors are ignored.
func (c *Canvas) SetFillStyle(s string) {
	if v, err := color.Parse(s); err == nil {
		c.fill = v
	}
}

func (c *Canvas) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) {
		c.lineWidth = w
	}
}

func (c *Canvas) SetFont(f radar.Font) { c.font = f }

func (c *Canvas) BeginPath() {
	c.path.Reset()
	c.open = false
}

func (c *Canvas) MoveTo(x, y float64) {
	fmt.Fprintf(&c.path, "M%.2f %.2f ", x, y)
	c.open = true
}

func (c *Canvas) LineTo(x, y float64) {
	if !c.open {
		c.MoveTo(x, y)
		return
	}
	fmt.Fprintf(&c.path, "L%.2f %.2f ", x, y)
}

// Arc appends a clockwise arc. A sweep of 2π or more is written as two
// half circles since a single SVG arc cannot close on itself.
func (c *Canvas) Arc(x, y, r, start, end float64) {
	sx, sy := x+r*math.Cos(start), y+r*math.Sin(start)
	if c.open {
		fmt.Fprintf(&c.path, "L%.2f %.2f ", sx, sy)
	} else {
		fmt.Fprintf(&c.path, "M%.2f %.2f ", sx, sy)
		c.open = true
	}

	sweep := end - start
	if sweep >= 2*math.Pi {
		mx, my := x+r*math.Cos(start+math.Pi), y+r*math.Sin(start+math.Pi)
		fmt.Fprintf(&c.path, "A%.2f %.2f 0 1 1 %.2f %.2f ", r, r, mx, my)
		fmt.Fprintf(&c.path, "A%.2f %.2f 0 1 1 %.2f %.2f ", r, r, sx, sy)
		return
	}
	if sweep <= 0 {
		return
	}
	large := 0
	if sweep > math.Pi {
		large = 1
	}
	ex, ey := x+r*math.Cos(end), y+r*math.Sin(end)
	fmt.Fprintf(&c.path, "A%.2f %.2f 0 %d 1 %.2f %.2f ", r, r, large, ex, ey)
}

func (c *Canvas) ClosePath() {
	if c.open {
		c.path.WriteString("Z ")
	}
}

func (c *Canvas) Fill() {
	d := strings.TrimSpace(c.path.String())
	if d == "" {
		return
	}
	hex, alpha := c.fill.SVG()
	fmt.Fprintf(&c.body, `  <path d="%s" fill="%s"%s stroke="none"/>`+"\n", d, hex, opacityAttr("fill-opacity", alpha))
}

func (c *Canvas) Stroke() {
	d := strings.TrimSpace(c.path.String())
	if d == "" {
		return
	}
	hex, alpha := c.stroke.SVG()
	fmt.Fprintf(&c.body, `  <path d="%s" fill="none" stroke="%s"%s stroke-width="%g"/>`+"\n",
		d, hex, opacityAttr("stroke-opacity", alpha), c.lineWidth)
}

func (c *Canvas) FillText(text string, x, y float64) {
	hex, alpha := c.fill.SVG()
	weight := ""
	if c.font.Weight != "" && c.font.Weight != "normal" {
		weight = fmt.Sprintf(` font-weight="%s"`, escapeXML(c.font.Weight))
	}
	fmt.Fprintf(&c.body, `  <text x="%.2f" y="%.2f" text-anchor="middle" dominant-baseline="middle" font-family="%s" font-size="%g"%s fill="%s"%s>%s</text>`+"\n",
		x, y, escapeXML(fontFamily(c.font)), c.font.Size, weight, hex, opacityAttr("fill-opacity", alpha), escapeXML(text))
}

// Bytes returns the complete SVG document.
func (c *Canvas) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" id="%s" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		escapeXML(c.id), c.w, c.h, c.w, c.h)
	buf.Write(c.body.Bytes())

	if len(c.popups) > 0 {
		renderPopups(&buf, c.popups)
		renderPopupScript(&buf)
	}
	if c.tooltip != nil {
		c.tooltip.render(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func opacityAttr(name string, alpha float64) string {
	if alpha >= 1 {
		return ""
	}
	return fmt.Sprintf(` %s="%.3g"`, name, alpha)
}

func fontFamily(f radar.Font) string {
	if f.Family == "" {
		return radar.DefaultFontFamily
	}
	return f.Family
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
