package term

import (
	"math"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/radar/pkg/radar"
)

var (
	breakTag = regexp.MustCompile(`(?i)<br\s*/?>`)
	anyTag   = regexp.MustCompile(`<[^>]*>`)

	tooltipBorder = lipgloss.RoundedBorder()
	tooltipFg     = colorful.Color{R: 1, G: 1, B: 1}
	tooltipBg     = colorful.Color{R: 0.15, G: 0.15, B: 0.18}
	tooltipEdge   = colorful.Color{R: 0.55, G: 0.55, B: 0.6}
)

// Tooltip is a radar.Element drawn as a rounded box of terminal cells.
type Tooltip struct {
	lines     []string
	left, top float64
	visible   bool
}

var _ radar.Element = (*Tooltip)(nil)

// NewTooltip returns a hidden tooltip.
func NewTooltip() *Tooltip { return &Tooltip{} }

func (t *Tooltip) SetContent(content string) {
	s := breakTag.ReplaceAllString(content, "\n")
	s = anyTag.ReplaceAllString(s, "")
	t.lines = t.lines[:0]
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			t.lines = append(t.lines, l)
		}
	}
}

// Measure returns the box size in logical pixels: one cell of border and
// one of padding on each side horizontally, a border row above and below.
func (t *Tooltip) Measure() (float64, float64) {
	if len(t.lines) == 0 {
		return 0, 0
	}
	cols, rows := t.cellSize()
	return float64(cols * CellWidth), float64(rows * CellHeight)
}

func (t *Tooltip) cellSize() (int, int) {
	w := 0
	for _, l := range t.lines {
		w = max(w, lipgloss.Width(l))
	}
	return w + 4, len(t.lines) + 2
}

func (t *Tooltip) Place(left, top float64) { t.left, t.top = left, top }
func (t *Tooltip) Show()                   { t.visible = true }
func (t *Tooltip) Hide()                   { t.visible = false }
func (t *Tooltip) ResetPlacement()         { t.left, t.top = 0, 0 }

// Visible reports whether the tooltip is shown.
func (t *Tooltip) Visible() bool { return t.visible }

// Lines returns the text lines of the current content.
func (t *Tooltip) Lines() []string { return append([]string(nil), t.lines...) }

func (t *Tooltip) composite(cells []cell, cols, rows int) {
	if !t.visible || len(t.lines) == 0 {
		return
	}
	w, h := t.cellSize()
	x0 := int(math.Round(t.left / CellWidth))
	y0 := int(math.Round(t.top / CellHeight))

	put := func(x, y int, r rune, fg colorful.Color) {
		if x < 0 || y < 0 || x >= cols || y >= rows {
			return
		}
		// a wide rune to the left would spill into this cell
		if x > 0 && runeWidth(cells[y*cols+x-1].r) > 1 {
			cells[y*cols+x-1].r = ' '
		}
		cells[y*cols+x] = cell{r: r, fg: fg, bg: tooltipBg}
	}
	first := func(s string) rune { return []rune(s)[0] }

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r := ' '
			switch {
			case y == 0 && x == 0:
				r = first(tooltipBorder.TopLeft)
			case y == 0 && x == w-1:
				r = first(tooltipBorder.TopRight)
			case y == h-1 && x == 0:
				r = first(tooltipBorder.BottomLeft)
			case y == h-1 && x == w-1:
				r = first(tooltipBorder.BottomRight)
			case y == 0:
				r = first(tooltipBorder.Top)
			case y == h-1:
				r = first(tooltipBorder.Bottom)
			case x == 0:
				r = first(tooltipBorder.Left)
			case x == w-1:
				r = first(tooltipBorder.Right)
			}
			put(x0+x, y0+y, r, tooltipEdge)
		}
	}
	for i, line := range t.lines {
		x := 0
		for _, r := range line {
			w := runeWidth(r)
			if w == 0 {
				continue
			}
			put(x0+2+x, y0+1+i, r, tooltipFg)
			x += w
		}
	}
}
