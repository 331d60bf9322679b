// Package term is a [radar.Surface] that draws into a terminal-cell raster.
//
// Each cell holds two square sub-pixels stacked vertically and is printed as
// an upper half block (▀) with the top sub-pixel as foreground and the
// bottom one as background. A sub-pixel covers SubPixel×SubPixel logical
// pixels, so the chart lays out in an ordinary pixel space of
// cols·CellWidth × rows·CellHeight and text stays legible.
//
// Bounds are reported in cells, which is what bubbletea mouse events use;
// the chart scales pointer positions back to logical pixels.
package term

import (
	"math"
	"sort"
	"strings"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/radar/pkg/radar"
	"github.com/matzehuels/radar/pkg/render/color"
)

// Logical pixel sizes.
const (
	SubPixel   = 8
	CellWidth  = SubPixel
	CellHeight = 2 * SubPixel
)

type pt struct{ x, y float64 }

type subpath struct {
	pts    []pt
	closed bool
}

type glyph struct {
	r  rune
	fg colorful.Color
}

// Canvas implements radar.Surface.
type Canvas struct {
	cols, rows int
	pw, ph     int
	px         []colorful.Color
	text       map[int]glyph
	bg         colorful.Color

	paths []subpath

	stroke, fill color.RGBA
	lineWidth    float64
	font         radar.Font

	tooltip *Tooltip
}

var _ radar.Surface = (*Canvas)(nil)

// Option configures a Canvas.
type Option func(*Canvas)

// WithBackground sets the color Clear paints. Default black.
func WithBackground(css string) Option {
	return func(c *Canvas) {
		if v, err := color.Parse(css); err == nil {
			c.bg = v.Color
		}
	}
}

// WithTooltip composites t over the chart while it is visible.
func WithTooltip(t *Tooltip) Option { return func(c *Canvas) { c.tooltip = t } }

// New returns a canvas of cols×rows terminal cells.
func New(cols, rows int, opts ...Option) *Canvas {
	cols, rows = max(1, cols), max(1, rows)
	c := &Canvas{
		cols:      cols,
		rows:      rows,
		pw:        cols,
		ph:        rows * 2,
		stroke:    color.MustParse("#fff"),
		fill:      color.MustParse("#fff"),
		lineWidth: 1,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.px = make([]colorful.Color, c.pw*c.ph)
	c.Clear()
	return c
}

// Cells returns the canvas size in terminal cells.
func (c *Canvas) Cells() (cols, rows int) { return c.cols, c.rows }

func (c *Canvas) Size() (float64, float64) {
	return float64(c.cols * CellWidth), float64(c.rows * CellHeight)
}

func (c *Canvas) Bounds() radar.Rect {
	return radar.Rect{Width: float64(c.cols), Height: float64(c.rows)}
}

func (c *Canvas) Clear() {
	for i := range c.px {
		c.px[i] = c.bg
	}
	c.text = map[int]glyph{}
	c.paths = nil
}

// SetStrokeStyle sets the outline color. Unparseable colors are ignored.
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

func (c *Canvas) BeginPath() { c.paths = nil }

func (c *Canvas) MoveTo(x, y float64) {
	c.paths = append(c.paths, subpath{pts: []pt{{x, y}}})
}

func (c *Canvas) LineTo(x, y float64) {
	if len(c.paths) == 0 {
		c.MoveTo(x, y)
		return
	}
	last := &c.paths[len(c.paths)-1]
	last.pts = append(last.pts, pt{x, y})
}

// Arc flattens the arc into line segments about two sub-pixels long.
func (c *Canvas) Arc(x, y, r, start, end float64) {
	sweep := math.Min(end-start, 2*math.Pi)
	if sweep < 0 {
		sweep = 0
	}
	n := int(math.Ceil(sweep * r / (2 * SubPixel)))
	n = max(8, min(n, 256))
	for i := 0; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		px, py := x+r*math.Cos(a), y+r*math.Sin(a)
		if i == 0 && len(c.paths) == 0 {
			c.MoveTo(px, py)
			continue
		}
		c.LineTo(px, py)
	}
}

func (c *Canvas) ClosePath() {
	if len(c.paths) == 0 {
		return
	}
	last := &c.paths[len(c.paths)-1]
	last.closed = true
	c.paths = append(c.paths, subpath{pts: []pt{last.pts[0]}})
}

// Fill paints the sub-pixels whose centers lie inside the path, using the
// even-odd rule. Open subpaths are closed implicitly. A shape smaller than
// a sub-pixel still paints the one under its center, so vertex markers stay
// visible.
func (c *Canvas) Fill() {
	painted := 0
	for j := 0; j < c.ph; j++ {
		y := (float64(j) + 0.5) * SubPixel
		xs := c.crossings(y)
		for k := 0; k+1 < len(xs); k += 2 {
			i0 := int(math.Ceil(xs[k]/SubPixel - 0.5))
			i1 := int(math.Floor(xs[k+1]/SubPixel - 0.5))
			for i := max(0, i0); i <= min(c.pw-1, i1); i++ {
				c.blend(i, j, c.fill)
				painted++
			}
		}
	}
	if painted > 0 {
		return
	}
	if p, ok := c.center(); ok {
		i, j := int(math.Floor(p.x/SubPixel)), int(math.Floor(p.y/SubPixel))
		if i >= 0 && i < c.pw && j >= 0 && j < c.ph {
			c.blend(i, j, c.fill)
		}
	}
}

// center returns the middle of the path's bounding box.
func (c *Canvas) center() (pt, bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, sp := range c.paths {
		for _, p := range sp.pts {
			minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
			minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
		}
	}
	if math.IsInf(minX, 1) {
		return pt{}, false
	}
	return pt{(minX + maxX) / 2, (minY + maxY) / 2}, true
}

func (c *Canvas) crossings(y float64) []float64 {
	var xs []float64
	for _, sp := range c.paths {
		n := len(sp.pts)
		if n < 2 {
			continue
		}
		for k := 0; k < n; k++ {
			a, b := sp.pts[k], sp.pts[(k+1)%n]
			if (a.y <= y) == (b.y <= y) {
				continue
			}
			xs = append(xs, a.x+(y-a.y)*(b.x-a.x)/(b.y-a.y))
		}
	}
	sort.Float64s(xs)
	return xs
}

// Stroke draws every segment one sub-pixel wide; widths below a sub-pixel
// cannot be told apart.
func (c *Canvas) Stroke() {
	visited := map[int]bool{}
	for _, sp := range c.paths {
		n := len(sp.pts)
		for k := 0; k+1 < n; k++ {
			c.line(sp.pts[k], sp.pts[k+1], visited)
		}
		if sp.closed && n > 2 {
			c.line(sp.pts[n-1], sp.pts[0], visited)
		}
	}
}

// line plots the sub-pixels of segment ab with ntcharts' line rasterizer.
func (c *Canvas) line(a, b pt, visited map[int]bool) {
	for _, p := range graph.GetLinePoints(subPixel(a), subPixel(b)) {
		if p.X < 0 || p.X >= c.pw || p.Y < 0 || p.Y >= c.ph {
			continue
		}
		if idx := p.Y*c.pw + p.X; !visited[idx] {
			visited[idx] = true
			c.blend(p.X, p.Y, c.stroke)
		}
	}
}

// subPixel returns the sub-pixel containing logical point p.
func subPixel(p pt) canvas.Point {
	return canvas.Point{X: int(math.Floor(p.x / SubPixel)), Y: int(math.Floor(p.y / SubPixel))}
}

// FillText writes text into the cell row containing y, centered on x.
// Wide runes take two cells.
func (c *Canvas) FillText(text string, x, y float64) {
	row := int(math.Floor(y / CellHeight))
	col := int(math.Round(x/CellWidth)) - lipgloss.Width(text)/2
	if row < 0 || row >= c.rows {
		return
	}
	for _, r := range text {
		w := runeWidth(r)
		if w == 0 {
			continue
		}
		if col >= 0 && col+w <= c.cols {
			c.text[row*c.cols+col] = glyph{r: r, fg: c.fill.Over(c.bg)}
			if w > 1 {
				delete(c.text, row*c.cols+col+1)
			}
		}
		col += w
	}
}

// runeWidth returns the number of terminal cells r occupies.
func runeWidth(r rune) int { return lipgloss.Width(string(r)) }

func (c *Canvas) blend(i, j int, src color.RGBA) {
	k := j*c.pw + i
	c.px[k] = src.Over(c.px[k])
}

// Pixel returns the color of the sub-pixel covering logical point (x, y).
func (c *Canvas) Pixel(x, y float64) colorful.Color {
	i, j := int(x/SubPixel), int(y/SubPixel)
	if i < 0 || j < 0 || i >= c.pw || j >= c.ph {
		return c.bg
	}
	return c.px[j*c.pw+i]
}

// Text returns the plain text of cell row row, with spaces where no glyph
// was written.
func (c *Canvas) Text(row int) string {
	var b strings.Builder
	for col := 0; col < c.cols; col++ {
		if g, ok := c.text[row*c.cols+col]; ok {
			b.WriteRune(g.r)
			if runeWidth(g.r) > 1 {
				col++
			}
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// Render returns the frame as lines of styled half blocks, with the tooltip
// composited on top.
func (c *Canvas) Render() string {
	cells := c.cells()
	if c.tooltip != nil {
		c.tooltip.composite(cells, c.cols, c.rows)
	}

	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		if row > 0 {
			b.WriteByte('\n')
		}
		for col := 0; col < c.cols; col++ {
			cl := cells[row*c.cols+col]
			b.WriteString(cl.render())
			// the next cell is covered by this one
			if runeWidth(cl.r) > 1 {
				col++
			}
		}
	}
	return b.String()
}

type cell struct {
	r      rune
	fg, bg colorful.Color
}

func (cl cell) render() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(cl.fg.Clamped().Hex())).
		Background(lipgloss.Color(cl.bg.Clamped().Hex())).
		Render(string(cl.r))
}

func (c *Canvas) cells() []cell {
	out := make([]cell, c.cols*c.rows)
	for row := 0; row < c.rows; row++ {
		for col := 0; col < c.cols; col++ {
			top, bottom := c.px[(2*row)*c.pw+col], c.px[(2*row+1)*c.pw+col]
			cl := cell{r: '▀', fg: top, bg: bottom}
			if g, ok := c.text[row*c.cols+col]; ok {
				cl = cell{r: g.r, fg: g.fg, bg: top.BlendRgb(bottom, 0.5)}
			}
			out[row*c.cols+col] = cl
		}
	}
	return out
}
