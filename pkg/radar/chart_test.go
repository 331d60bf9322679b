package radar

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/radar/pkg/errors"
)

func sampleData() Dataset {
	return Dataset{Labels: []string{"A", "B", "C"}, Values: []float64{10, 5, 10}}
}

func TestNewDrawsOnce(t *testing.T) {
	s := newRecordSurface(400, 400)
	c, err := New(s, sampleData(), Options{Radius: Float(150), Levels: Int(5)})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if s.clears != 1 {
		t.Errorf("clears = %d, want 1", s.clears)
	}
	// 5 level circles + 3 vertex discs
	if got := s.count("arc"); got != 8 {
		t.Errorf("arcs = %d, want 8", got)
	}
	if got := s.count("text"); got != 3 {
		t.Errorf("labels = %d, want 3", got)
	}
	if got := len(c.Points()); got != 3 {
		t.Errorf("points = %d, want 3", got)
	}
}

func TestDrawOrder(t *testing.T) {
	s := newRecordSurface(400, 400)
	if _, err := New(s, sampleData(), Options{}); err != nil {
		t.Fatal(err)
	}

	firstText, firstFill := -1, -1
	lastGridStroke := -1
	for i, op := range s.ops {
		switch {
		case strings.HasPrefix(op, "text") && firstText < 0:
			firstText = i
		case op == "fill" && firstFill < 0:
			firstFill = i
		case op == "stroke" && firstText < 0:
			lastGridStroke = i
		}
	}
	if !(lastGridStroke < firstText && firstText < firstFill) {
		t.Errorf("draw order grid=%d labels=%d data=%d, want increasing", lastGridStroke, firstText, firstFill)
	}
}

func TestDrawHidesLevels(t *testing.T) {
	s := newRecordSurface(400, 400)
	if _, err := New(s, sampleData(), Options{ShowLevels: Bool(false)}); err != nil {
		t.Fatal(err)
	}
	if got := s.count("arc"); got != 3 {
		t.Errorf("arcs = %d, want only the 3 vertex discs", got)
	}
}

func TestDatasetColorOverrides(t *testing.T) {
	s := newRecordSurface(400, 400)
	d := sampleData()
	d.Colors = &Colors{FillColor: "red", PointColor: "blue"}
	if _, err := New(s, d, Options{}); err != nil {
		t.Fatal(err)
	}

	ops := strings.Join(s.ops, "\n")
	for _, want := range []string{"fillStyle red", "fillStyle blue", "strokeStyle " + DefaultLineColor} {
		if !strings.Contains(ops, want) {
			t.Errorf("ops missing %q", want)
		}
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name    string
		surface Surface
		data    Dataset
		opts    Options
		code    errors.Code
	}{
		{"nil surface", nil, sampleData(), Options{}, errors.ErrCodeSurfaceNotFound},
		{"shape mismatch", newRecordSurface(400, 400), Dataset{Labels: []string{"a", "b"}, Values: []float64{1}}, Options{}, errors.ErrCodeShapeMismatch},
		{"negative value", newRecordSurface(400, 400), Dataset{Labels: []string{"a"}, Values: []float64{-1}}, Options{}, errors.ErrCodeInvalidData},
		{"bad levels", newRecordSurface(400, 400), sampleData(), Options{Levels: Int(0)}, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.surface, tt.data, tt.opts)
			if c != nil {
				t.Error("New() returned a chart on error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("New() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	doc := &recordDocument{
		id:       "radar",
		surface:  newRecordSurface(400, 400),
		selector: DefaultTooltipSelector,
		element:  &recordElement{w: 60, h: 20},
	}

	c, err := Open(doc, "radar", sampleData(), Options{})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !c.Interactive() {
		t.Error("Open() should resolve the tooltip through the document")
	}

	if _, err := Open(doc, "missing", sampleData(), Options{}); !errors.Is(err, errors.ErrCodeSurfaceNotFound) {
		t.Errorf("Open(missing) error = %v, want SURFACE_NOT_FOUND", err)
	}
	if _, err := Open(nil, "radar", sampleData(), Options{}); !errors.Is(err, errors.ErrCodeSurfaceNotFound) {
		t.Errorf("Open(nil) error = %v, want SURFACE_NOT_FOUND", err)
	}
}

func TestUpdateDataReplacesPoints(t *testing.T) {
	s := newRecordSurface(400, 400)
	c, err := New(s, Dataset{
		Labels: []string{"a", "b", "c", "d", "e"},
		Values: []float64{1, 2, 3, 4, 5},
	}, Options{})
	if err != nil {
		t.Fatal(err)
	}

	next := Dataset{Labels: []string{"x", "y", "z"}, Values: []float64{3, 1, 2}}
	if err := c.UpdateData(next); err != nil {
		t.Fatalf("UpdateData() error = %v", err)
	}

	points := c.Points()
	if len(points) != 3 {
		t.Fatalf("points = %d, want 3", len(points))
	}
	for i, p := range points {
		if p.Label != next.Labels[i] || p.Value != next.Values[i] || p.Index != i {
			t.Errorf("point %d = %+v", i, p)
		}
	}
	if s.clears != 2 {
		t.Errorf("clears = %d, want 2", s.clears)
	}
}

func TestUpdateDataRejectsMismatch(t *testing.T) {
	c, err := New(newRecordSurface(400, 400), sampleData(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	err = c.UpdateData(Dataset{Labels: []string{"a"}, Values: []float64{1, 2}})
	if !errors.Is(err, errors.ErrCodeShapeMismatch) {
		t.Errorf("UpdateData() error = %v, want SHAPE_MISMATCH", err)
	}
	if len(c.Points()) != 3 {
		t.Error("a rejected update must keep the previous points")
	}
}

func TestDrawIdempotent(t *testing.T) {
	s := newRecordSurface(400, 400)
	c, err := New(s, sampleData(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	firstPoints, firstOps := c.Points(), append([]string(nil), s.ops...)

	c.Draw()

	if !reflect.DeepEqual(firstPoints, c.Points()) {
		t.Error("second Draw() changed the recorded points")
	}
	if !reflect.DeepEqual(firstOps, s.ops) {
		t.Error("second Draw() issued different drawing operations")
	}
}

func TestAllZeroSeries(t *testing.T) {
	s := newRecordSurface(400, 400)
	// recordSurface panics on non-finite coordinates
	c, err := New(s, Dataset{Labels: []string{"a", "b", "c"}, Values: []float64{0, 0, 0}}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	center := c.Config().Center
	for _, p := range c.Points() {
		if p.X != center.X || p.Y != center.Y {
			t.Errorf("point %d = (%v, %v), want center", p.Index, p.X, p.Y)
		}
	}
}

func TestEmptySeries(t *testing.T) {
	s := newRecordSurface(400, 400)
	c, err := New(s, Dataset{}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if got := s.count("lineTo"); got != 0 {
		t.Errorf("lineTo = %d, want no spokes", got)
	}
	if got := s.count("arc"); got != DefaultLevels {
		t.Errorf("arcs = %d, want only the %d levels", got, DefaultLevels)
	}
	if len(c.Points()) != 0 {
		t.Error("empty series must record no points")
	}
}

func TestMissingTooltipElementWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{})
	el := &recordElement{w: 50, h: 20}
	doc := &recordDocument{selector: "#tip", element: el}

	c, err := New(newRecordSurface(400, 400), sampleData(),
		Options{EnableTooltips: Bool(true), TooltipSelector: String("")},
		WithLogger(logger), WithElements(doc))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !strings.Contains(buf.String(), "tooltip element not found") {
		t.Errorf("log = %q, want a warning", buf.String())
	}
	if c.Interactive() {
		t.Error("chart without tooltip element must not be interactive")
	}

	for _, p := range c.Points() {
		c.PointerMove(p.X, p.Y)
	}
	c.PointerLeave()
	if el.calls != 0 {
		t.Errorf("element received %d calls, want none", el.calls)
	}
	if c.State() != Idle {
		t.Errorf("State() = %v, want idle", c.State())
	}
}

func TestTooltipsDisabledIsSilent(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{})
	c, err := New(newRecordSurface(400, 400), sampleData(),
		Options{EnableTooltips: Bool(false)}, WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("disabled tooltips should not warn, got %q", buf.String())
	}
	if c.Interactive() {
		t.Error("Interactive() = true with tooltips disabled")
	}
}
