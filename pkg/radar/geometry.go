package radar

import "math"

// DataPoint is the screen position of one plotted value.
type DataPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
	Index int     `json:"index"`
}

// SpokeAngle returns the angle of spoke i out of n: i·2π/n − π/2.
// With n == 0 there are no spokes; the upward angle is returned without
// dividing.
func SpokeAngle(i, n int) float64 {
	if n <= 0 {
		return -math.Pi / 2
	}
	return float64(i)*(2*math.Pi/float64(n)) - math.Pi/2
}

// Polar returns the point at distance dist from center along angle.
func Polar(center Point, angle, dist float64) Point {
	return Point{
		X: center.X + math.Cos(angle)*dist,
		Y: center.Y + math.Sin(angle)*dist,
	}
}

// Scale returns the divisor values are normalized by: the largest value,
// or 1 when no value is positive.
func Scale(values []float64) float64 {
	m := 0.0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	if m <= 0 {
		return 1
	}
	return m
}

// Vertices computes the data polygon of d for a chart centered on center
// with the given outer radius.
func Vertices(center Point, radius float64, d Dataset) []DataPoint {
	n := len(d.Values)
	if n == 0 {
		return nil
	}
	scale := Scale(d.Values)
	points := make([]DataPoint, n)
	for i, v := range d.Values {
		p := Polar(center, SpokeAngle(i, n), v/scale*radius)
		label := ""
		if i < len(d.Labels) {
			label = d.Labels[i]
		}
		points[i] = DataPoint{X: p.X, Y: p.Y, Label: label, Value: v, Index: i}
	}
	return points
}

// LabelPosition returns where label i of n is drawn.
func LabelPosition(center Point, radius float64, i, n int) Point {
	return Polar(center, SpokeAngle(i, n), radius+LabelOffset)
}
