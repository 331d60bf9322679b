// Package radar renders radar (spider) charts and drives their hover tooltips.
//
// A [Chart] draws onto an injected [Surface], a canvas-2D-like drawing
// capability, in three independent passes: the circular grid (levels and
// spokes), the axis labels, and the filled data polygon with its vertex
// markers. The vertex positions of the last pass are recorded as
// [DataPoint] values and are the only state hover queries read.
//
// # Geometry
//
// With N labels, spoke i points at angle i·2π/N − π/2, so index 0 points
// straight up and angles grow clockwise in screen coordinates. A value v is
// placed at distance (v / max) · radius from the center, where max is the
// largest value of the series. A series whose maximum is zero (or an empty
// series) divides by 1 instead, which leaves every vertex on the center.
//
// # Configuration
//
// [Options] is a partial configuration whose nil fields fall back to the
// defaults computed by [Resolve] from the surface size. Center, radius and
// font size are responsive: they are recomputed from the surface dimensions
// every time the configuration is resolved unless that specific field was set.
//
// # Tooltips
//
// [Chart.PointerMove] and [Chart.PointerLeave] run a two-state machine
// (Idle, Showing) against an [Element] located through the configured
// selector. When the element cannot be found the chart still renders and
// logs a warning; pointer events then become no-ops.
//
// # Concurrency
//
// A Chart is not safe for concurrent use. Draw, UpdateData and the pointer
// handlers must be called from a single goroutine or serialized by the caller.
//
// # Usage
//
//	canvas := svg.New(400, 400)
//	chart, err := radar.New(canvas, radar.Dataset{
//	    Labels: []string{"Speed", "Power", "Range"},
//	    Values: []float64{10, 5, 10},
//	}, radar.Options{Levels: radar.Int(4)})
//	if err != nil {
//	    return err
//	}
//	os.Stdout.Write(canvas.Bytes())
package radar
