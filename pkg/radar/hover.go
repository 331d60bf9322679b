package radar

import (
	"fmt"
	"math"

	"github.com/matzehuels/radar/pkg/observability"
)

// TooltipState is the state of the hover controller.
type TooltipState int

const (
	// Idle means the tooltip is hidden.
	Idle TooltipState = iota
	// Showing means the tooltip is visible and bound to one vertex.
	Showing
)

func (s TooltipState) String() string {
	if s == Showing {
		return "showing"
	}
	return "idle"
}

// HoverResult identifies the vertex under the pointer.
type HoverResult struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Index int     `json:"index"`
}

// TooltipData is what a TooltipTemplate receives.
type TooltipData struct {
	Label      string
	Value      float64
	Index      int
	Dataset    Dataset
	CustomData any
}

// DefaultTooltipTemplate renders "label: value".
func DefaultTooltipTemplate(d TooltipData) string {
	return fmt.Sprintf("%s: %g", d.Label, d.Value)
}

// Hover returns the vertex within HoverRadius of the canvas-local point
// (x, y). When several qualify the lowest index wins.
func (c *Chart) Hover(x, y float64) (HoverResult, bool) {
	for _, p := range c.points {
		if math.Hypot(p.X-x, p.Y-y) <= HoverRadius {
			return HoverResult{Label: p.Label, Value: p.Value, Index: p.Index}, true
		}
	}
	return HoverResult{}, false
}

// ToLocal converts pointer coordinates into canvas-local pixels using the
// surface's display bounds.
func (c *Chart) ToLocal(clientX, clientY float64) Point {
	b := c.surface.Bounds()
	w, h := c.surface.Size()
	sx, sy := 1.0, 1.0
	if b.Width > 0 {
		sx = w / b.Width
	}
	if b.Height > 0 {
		sy = h / b.Height
	}
	return Point{X: (clientX - b.X) * sx, Y: (clientY - b.Y) * sy}
}

// PointerMove handles a pointer move reported in client coordinates.
func (c *Chart) PointerMove(clientX, clientY float64) {
	if c.tooltip == nil {
		return
	}
	p := c.ToLocal(clientX, clientY)
	hit, ok := c.Hover(p.X, p.Y)
	if !ok {
		c.hide()
		return
	}
	c.show(hit, p)
}

// PointerLeave handles the pointer leaving the surface.
func (c *Chart) PointerLeave() {
	if c.tooltip == nil {
		return
	}
	c.hide()
}

// State returns the hover controller state.
func (c *Chart) State() TooltipState {
	return c.state
}

// Active returns the index the tooltip is bound to while Showing.
func (c *Chart) Active() (int, bool) {
	if c.state != Showing {
		return -1, false
	}
	return c.active, true
}

func (c *Chart) show(hit HoverResult, pointer Point) {
	el := c.tooltip
	el.SetContent(c.tooltipContent(hit))

	tw, th := el.Measure()
	w, h := c.surface.Size()
	pos := PlaceTooltip(pointer, tw, th, w, h)
	el.Place(pos.X, pos.Y)
	el.Show()

	c.state = Showing
	c.active = hit.Index
	observability.Chart().OnTooltipShow(hit.Index)
}

func (c *Chart) hide() {
	if c.tooltip == nil || c.state == Idle {
		return
	}
	c.tooltip.Hide()
	c.tooltip.ResetPlacement()
	c.state = Idle
	c.active = -1
	observability.Chart().OnTooltipHide()
}

// TooltipContent renders the tooltip for vertex i without touching the
// hover state. Sinks that bake tooltips into their output use it.
func (c *Chart) TooltipContent(i int) (string, bool) {
	if i < 0 || i >= len(c.points) {
		return "", false
	}
	p := c.points[i]
	return c.tooltipContent(HoverResult{Label: p.Label, Value: p.Value, Index: p.Index}), true
}

func (c *Chart) tooltipContent(hit HoverResult) (content string) {
	data := TooltipData{
		Label:      hit.Label,
		Value:      hit.Value,
		Index:      hit.Index,
		Dataset:    c.data.Clone(),
		CustomData: c.data.CustomData(hit.Index),
	}
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("tooltip template failed, using default content", "index", hit.Index, "panic", r)
			content = DefaultTooltipTemplate(data)
		}
	}()
	return c.cfg.TooltipTemplate(data)
}

// PlaceTooltip returns the top-left corner of a tw×th tooltip for a pointer
// on a w×h canvas. The tooltip goes left of the pointer on the right half of
// the canvas and above it on the bottom half, TooltipOffset away on each
// axis, and is then clamped so it stays inside the canvas.
func PlaceTooltip(pointer Point, tw, th, w, h float64) Point {
	left := pointer.X + TooltipOffset
	if pointer.X > w/2 {
		left = pointer.X - tw - TooltipOffset
	}
	top := pointer.Y + TooltipOffset
	if pointer.Y > h/2 {
		top = pointer.Y - th - TooltipOffset
	}
	return Point{X: clampBox(left, w-tw), Y: clampBox(top, h-th)}
}

// clampBox limits v to [0, hi]; a box larger than the canvas sticks to 0.
func clampBox(v, hi float64) float64 {
	return math.Max(0, math.Min(v, hi))
}
