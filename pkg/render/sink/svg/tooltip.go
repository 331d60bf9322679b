package svg

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/radar/pkg/radar"
)

const (
	fontCharWidth   = 0.55
	lineHeightRatio = 1.4

	tooltipFontSize = 12.0
	tooltipPadding  = 6.0
)

var (
	breakTag = regexp.MustCompile(`(?i)<br\s*/?>`)
	anyTag   = regexp.MustCompile(`<[^>]*>`)
)

// Tooltip is a radar.Element drawn as a rounded box with one text line per
// line of content. Markup in the content is reduced to text; <br> starts a
// new line.
type Tooltip struct {
	FontSize float64
	Padding  float64

	content   string
	lines     []string
	left, top float64
	placed    bool
	visible   bool
}

var _ radar.Element = (*Tooltip)(nil)

// NewTooltip returns a hidden tooltip with the default text metrics.
func NewTooltip() *Tooltip {
	return &Tooltip{FontSize: tooltipFontSize, Padding: tooltipPadding}
}

// TooltipState is a snapshot of a Tooltip, shaped for JSON clients that
// position their own element.
type TooltipState struct {
	Visible bool    `json:"visible"`
	Content string  `json:"content"`
	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

func (t *Tooltip) SetContent(content string) {
	t.content = content
	t.lines = textLines(content)
}

// Measure estimates the box size from character counts, since there is no
// layout engine to ask.
func (t *Tooltip) Measure() (float64, float64) {
	return measureLines(t.lines, t.FontSize, t.Padding)
}

func (t *Tooltip) Place(left, top float64) {
	t.left, t.top, t.placed = left, top, true
}

func (t *Tooltip) Show() { t.visible = true }
func (t *Tooltip) Hide() { t.visible = false }

func (t *Tooltip) ResetPlacement() {
	t.left, t.top, t.placed = 0, 0, false
}

// Visible reports whether the tooltip is shown.
func (t *Tooltip) Visible() bool { return t.visible }

// State returns the current snapshot.
func (t *Tooltip) State() TooltipState {
	w, h := t.Measure()
	return TooltipState{
		Visible: t.visible,
		Content: t.content,
		Left:    t.left,
		Top:     t.top,
		Width:   w,
		Height:  h,
	}
}

func (t *Tooltip) render(buf *bytes.Buffer) {
	if !t.visible || len(t.lines) == 0 {
		return
	}
	w, h := t.Measure()
	fmt.Fprintf(buf, `  <g class="tooltip" transform="translate(%.2f,%.2f)">`+"\n", t.left, t.top)
	writeBox(buf, t.lines, w, h, t.FontSize, t.Padding)
	buf.WriteString("  </g>\n")
}

func writeBox(buf *bytes.Buffer, lines []string, w, h, size, pad float64) {
	fmt.Fprintf(buf, `    <rect width="%.2f" height="%.2f" rx="4" fill="#000000" fill-opacity="0.8"/>`+"\n", w, h)
	lh := size * lineHeightRatio
	for i, line := range lines {
		y := pad + lh*float64(i) + lh/2
		fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" dominant-baseline="middle" font-family="%s" font-size="%g" fill="#ffffff">%s</text>`+"\n",
			pad, y, radar.DefaultFontFamily, size, escapeXML(line))
	}
}

func measureLines(lines []string, size, pad float64) (float64, float64) {
	if len(lines) == 0 {
		return 0, 0
	}
	longest := 0
	for _, l := range lines {
		longest = max(longest, utf8.RuneCountInString(l))
	}
	w := float64(longest)*size*fontCharWidth + 2*pad
	h := float64(len(lines))*size*lineHeightRatio + 2*pad
	return w, h
}

func textLines(content string) []string {
	s := breakTag.ReplaceAllString(content, "\n")
	s = anyTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	var out []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
