package radar

import (
	"math"
	"testing"
)

const eps = 1e-9

func normAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}

func TestSpokeAngle(t *testing.T) {
	for n := 1; n <= 12; n++ {
		for i := 0; i < n; i++ {
			want := float64(i)*2*math.Pi/float64(n) - math.Pi/2
			if got := SpokeAngle(i, n); math.Abs(got-want) > eps {
				t.Errorf("SpokeAngle(%d, %d) = %v, want %v", i, n, got, want)
			}
		}
	}
	if got := SpokeAngle(0, 0); got != -math.Pi/2 {
		t.Errorf("SpokeAngle(0, 0) = %v, want -π/2", got)
	}
}

func TestVerticesFollowSpokes(t *testing.T) {
	center := Point{200, 200}
	for n := 1; n <= 9; n++ {
		d := Dataset{Labels: make([]string, n), Values: make([]float64, n)}
		for i := range d.Values {
			d.Values[i] = float64(i + 1)
		}
		for _, p := range Vertices(center, 150, d) {
			got := normAngle(math.Atan2(p.Y-center.Y, p.X-center.X))
			want := normAngle(SpokeAngle(p.Index, n))
			if math.Abs(got-want) > 1e-6 && math.Abs(got-want-2*math.Pi) > 1e-6 {
				t.Errorf("n=%d vertex %d angle = %v, want %v", n, p.Index, got, want)
			}
		}
	}
}

func TestVerticesMaxAtRadius(t *testing.T) {
	center := Point{100, 120}
	series := [][]float64{
		{10, 5, 10},
		{0.5, 3, 2.25, 1},
		{7},
		{0, 0, 42, 0, 1},
	}
	for _, values := range series {
		d := Dataset{Labels: make([]string, len(values)), Values: values}
		scale := Scale(values)
		for _, p := range Vertices(center, 150, d) {
			dist := math.Hypot(p.X-center.X, p.Y-center.Y)
			want := values[p.Index] / scale * 150
			if math.Abs(dist-want) > 1e-6 {
				t.Errorf("%v: vertex %d distance = %v, want %v", values, p.Index, dist, want)
			}
			if values[p.Index] == scale && math.Abs(dist-150) > 1e-6 {
				t.Errorf("%v: max vertex %d at %v, want radius", values, p.Index, dist)
			}
		}
	}
}

func TestVerticesScenario(t *testing.T) {
	d := Dataset{Labels: []string{"A", "B", "C"}, Values: []float64{10, 5, 10}}
	center := Point{200, 200}
	points := Vertices(center, 150, d)

	if len(points) != 3 {
		t.Fatalf("len = %d, want 3", len(points))
	}

	a := points[0]
	if a.Label != "A" || math.Abs(a.X-200) > eps || math.Abs(a.Y-50) > eps {
		t.Errorf("A = %+v, want (200, 50)", a)
	}

	b := points[1]
	angle := -math.Pi/2 + 2*math.Pi/3
	wantX, wantY := 200+math.Cos(angle)*75, 200+math.Sin(angle)*75
	if math.Abs(b.X-wantX) > eps || math.Abs(b.Y-wantY) > eps {
		t.Errorf("B = (%v, %v), want (%v, %v)", b.X, b.Y, wantX, wantY)
	}
	if dist := math.Hypot(b.X-200, b.Y-200); math.Abs(dist-75) > eps {
		t.Errorf("B distance = %v, want 75", dist)
	}
}

func TestVerticesAllZero(t *testing.T) {
	d := Dataset{Labels: []string{"a", "b", "c"}, Values: []float64{0, 0, 0}}
	for _, p := range Vertices(Point{50, 60}, 100, d) {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			t.Fatalf("vertex %d not finite: %+v", p.Index, p)
		}
		if p.X != 50 || p.Y != 60 {
			t.Errorf("vertex %d = (%v, %v), want center", p.Index, p.X, p.Y)
		}
	}
}

func TestVerticesEmpty(t *testing.T) {
	if got := Vertices(Point{}, 100, Dataset{}); got != nil {
		t.Errorf("Vertices(empty) = %v, want nil", got)
	}
}

func TestScale(t *testing.T) {
	tests := []struct {
		values []float64
		want   float64
	}{
		{[]float64{1, 9, 3}, 9},
		{[]float64{0, 0}, 1},
		{nil, 1},
		{[]float64{0.25}, 0.25},
	}
	for _, tt := range tests {
		if got := Scale(tt.values); got != tt.want {
			t.Errorf("Scale(%v) = %v, want %v", tt.values, got, tt.want)
		}
	}
}

func TestLabelPosition(t *testing.T) {
	p := LabelPosition(Point{200, 200}, 150, 0, 4)
	if math.Abs(p.X-200) > eps || math.Abs(p.Y-(200-150-LabelOffset)) > eps {
		t.Errorf("LabelPosition(0, 4) = %v", p)
	}
	p = LabelPosition(Point{200, 200}, 150, 1, 4)
	if math.Abs(p.X-(200+150+LabelOffset)) > eps || math.Abs(p.Y-200) > eps {
		t.Errorf("LabelPosition(1, 4) = %v", p)
	}
}
