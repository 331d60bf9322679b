package png

import (
	"bytes"
	stdpng "image/png"
	"testing"

	"github.com/matzehuels/radar/pkg/radar"
)

func TestCanvasRendersChart(t *testing.T) {
	c := New(200, 200, WithScale(1))
	ch, err := radar.New(c, radar.Dataset{
		Labels: []string{"A", "B", "C"},
		Values: []float64{10, 5, 10},
	}, radar.Options{Radius: radar.Float(80), PointColor: radar.String("#ff0000")})
	if err != nil {
		t.Fatalf("radar.New() error = %v", err)
	}

	data, err := c.Bytes()
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}
	img, err := stdpng.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 200 {
		t.Errorf("bounds = %v, want 200x200", b)
	}

	// vertex A carries an opaque red disc
	a := ch.Points()[0]
	r, g, bl, _ := img.At(int(a.X), int(a.Y)).RGBA()
	if r>>8 < 200 || g>>8 > 60 || bl>>8 > 60 {
		t.Errorf("pixel at A = (%d, %d, %d), want red", r>>8, g>>8, bl>>8)
	}

	// corners stay background
	r, g, bl, _ = img.At(1, 1).RGBA()
	if r>>8 != 255 || g>>8 != 255 || bl>>8 != 255 {
		t.Errorf("corner = (%d, %d, %d), want white", r>>8, g>>8, bl>>8)
	}
}

func TestCanvasScale(t *testing.T) {
	c := New(50, 40)
	if w, h := c.Size(); w != 50 || h != 40 {
		t.Errorf("Size() = %v x %v, want logical size", w, h)
	}
	if b := c.Image().Bounds(); b.Dx() != 100 || b.Dy() != 80 {
		t.Errorf("image = %v, want 2x", b)
	}
}

func TestCanvasBackground(t *testing.T) {
	c := New(4, 4, WithScale(1), WithBackground("#000"))
	r, g, b, a := c.Image().At(2, 2).RGBA()
	if r != 0 || g != 0 || b != 0 || a>>8 != 255 {
		t.Errorf("pixel = (%d, %d, %d, %d), want opaque black", r, g, b, a)
	}
}
