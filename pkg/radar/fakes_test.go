package radar

import (
	"fmt"
	"math"
)

// recordSurface logs every primitive it receives.
type recordSurface struct {
	w, h   float64
	bounds Rect
	ops    []string
	clears int
}

func newRecordSurface(w, h float64) *recordSurface {
	return &recordSurface{w: w, h: h, bounds: Rect{Width: w, Height: h}}
}

func (s *recordSurface) Size() (float64, float64) { return s.w, s.h }
func (s *recordSurface) Bounds() Rect             { return s.bounds }
func (s *recordSurface) Clear()                   { s.ops = nil; s.clears++ }

func (s *recordSurface) SetStrokeStyle(c string) { s.log("strokeStyle %s", c) }
func (s *recordSurface) SetFillStyle(c string)   { s.log("fillStyle %s", c) }
func (s *recordSurface) SetLineWidth(w float64)  { s.log("lineWidth %g", w) }
func (s *recordSurface) SetFont(f Font)          { s.log("font %s", f) }
func (s *recordSurface) BeginPath()              { s.log("beginPath") }
func (s *recordSurface) MoveTo(x, y float64)     { s.log("moveTo %.3f %.3f", x, y) }
func (s *recordSurface) LineTo(x, y float64)     { s.log("lineTo %.3f %.3f", x, y) }
func (s *recordSurface) ClosePath()              { s.log("closePath") }
func (s *recordSurface) Fill()                   { s.log("fill") }
func (s *recordSurface) Stroke()                 { s.log("stroke") }
func (s *recordSurface) Arc(x, y, r, a0, a1 float64) {
	s.log("arc %.3f %.3f %.3f %.3f %.3f", x, y, r, a0, a1)
}
func (s *recordSurface) FillText(t string, x, y float64) { s.log("text %s %.3f %.3f", t, x, y) }

func (s *recordSurface) log(format string, args ...any) {
	for _, a := range args {
		if f, ok := a.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			panic(fmt.Sprintf("non-finite coordinate in %q", format))
		}
	}
	s.ops = append(s.ops, fmt.Sprintf(format, args...))
}

func (s *recordSurface) count(prefix string) int {
	n := 0
	for _, op := range s.ops {
		if len(op) >= len(prefix) && op[:len(prefix)] == prefix {
			n++
		}
	}
	return n
}

// recordElement is a tooltip with a fixed rendered size.
type recordElement struct {
	w, h      float64
	content   string
	left, top float64
	placed    bool
	visible   bool
	calls     int
}

func (e *recordElement) SetContent(c string)        { e.calls++; e.content = c }
func (e *recordElement) Measure() (float64, float64) { e.calls++; return e.w, e.h }
func (e *recordElement) Place(l, t float64)         { e.calls++; e.left, e.top, e.placed = l, t, true }
func (e *recordElement) Show()                      { e.calls++; e.visible = true }
func (e *recordElement) Hide()                      { e.calls++; e.visible = false }
func (e *recordElement) ResetPlacement()            { e.calls++; e.left, e.top, e.placed = 0, 0, false }

// recordDocument serves one surface and one element.
type recordDocument struct {
	id       string
	surface  *recordSurface
	selector string
	element  *recordElement
}

func (d *recordDocument) Surface(id string) (Surface, bool) {
	if id != d.id {
		return nil, false
	}
	return d.surface, true
}

func (d *recordDocument) Element(sel string) (Element, bool) {
	if sel == "" || sel != d.selector {
		return nil, false
	}
	return d.element, true
}
