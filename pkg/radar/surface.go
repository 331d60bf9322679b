package radar

import (
	"fmt"
	"strings"
)

// Point is a position in canvas-local pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle, used for the on-screen bounds of a surface.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Font describes the text style used for labels.
type Font struct {
	Size   float64
	Weight string
	Family string
}

// String returns the CSS shorthand, e.g. "bold 14px sans-serif".
func (f Font) String() string {
	family := f.Family
	if family == "" {
		family = DefaultFontFamily
	}
	var b strings.Builder
	if f.Weight != "" && f.Weight != "normal" {
		b.WriteString(f.Weight)
		b.WriteByte(' ')
	}
	fmt.Fprintf(&b, "%gpx %s", f.Size, family)
	return b.String()
}

// Bold reports whether the weight is rendered heavier than normal.
func (f Font) Bold() bool {
	switch f.Weight {
	case "bold", "bolder", "600", "700", "800", "900":
		return true
	}
	return false
}

// Surface is the drawing capability a chart renders onto. The method set
// follows the canvas 2D context: a current path is built with BeginPath,
// MoveTo, LineTo, Arc and ClosePath and is painted by Fill and Stroke, which
// do not consume it.
type Surface interface {
	// Size returns the drawing area in pixels.
	Size() (width, height float64)
	// Bounds returns where the surface is displayed, in the coordinate space
	// pointer events are reported in. A display size different from Size
	// means the surface is scaled.
	Bounds() Rect
	// Clear erases everything drawn so far.
	Clear()

	SetStrokeStyle(color string)
	SetFillStyle(color string)
	SetLineWidth(width float64)
	SetFont(font Font)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a clockwise circular arc from angle start to end (radians).
	// Like the canvas API, it connects to the arc's start point with a line
	// when the path already has a current point.
	Arc(x, y, r, start, end float64)
	ClosePath()
	Fill()
	Stroke()

	// FillText draws text centered horizontally and vertically on (x, y).
	FillText(text string, x, y float64)
}

// Element is the tooltip the hover controller populates and positions.
// Positions and sizes are in canvas-local pixels.
type Element interface {
	SetContent(content string)
	// Measure returns the rendered size of the current content.
	Measure() (width, height float64)
	Place(left, top float64)
	Show()
	Hide()
	// ResetPlacement removes any position set by Place.
	ResetPlacement()
}

// ElementFinder resolves a tooltip selector to an element.
type ElementFinder interface {
	Element(selector string) (Element, bool)
}

// ElementFinderFunc adapts a function to ElementFinder.
type ElementFinderFunc func(selector string) (Element, bool)

// Element calls f(selector).
func (f ElementFinderFunc) Element(selector string) (Element, bool) { return f(selector) }

// Document looks up surfaces by identifier and tooltip elements by selector.
// It stands in for whatever registry the host environment keeps.
type Document interface {
	ElementFinder
	Surface(id string) (Surface, bool)
}
