package radar

import (
	"testing"

	"github.com/matzehuels/radar/pkg/errors"
)

func TestDefaults(t *testing.T) {
	tests := []struct {
		name         string
		w, h         float64
		wantCenter   Point
		wantRadius   float64
		wantFontSize float64
	}{
		{"landscape", 800, 600, Point{400, 300}, 240, 16},
		{"small square", 300, 300, Point{150, 150}, 90, 12},
		{"font in range", 420, 400, Point{210, 200}, 140, 14},
		{"too small for margin", 100, 100, Point{50, 50}, 0, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults(tt.w, tt.h)
			if cfg.Center != tt.wantCenter {
				t.Errorf("Center = %v, want %v", cfg.Center, tt.wantCenter)
			}
			if cfg.Radius != tt.wantRadius {
				t.Errorf("Radius = %v, want %v", cfg.Radius, tt.wantRadius)
			}
			if cfg.FontSize != tt.wantFontSize {
				t.Errorf("FontSize = %v, want %v", cfg.FontSize, tt.wantFontSize)
			}
			if cfg.Levels != DefaultLevels || !cfg.ShowLevels || !cfg.EnableTooltips {
				t.Errorf("unexpected non-responsive defaults: %+v", cfg)
			}
		})
	}
}

func TestResolveOverridesFields(t *testing.T) {
	cfg := Resolve(400, 400, Options{
		Levels:      Int(3),
		ShowLevels:  Bool(false),
		StrokeColor: String("#000"),
		FontWeight:  String("bold"),
	})

	if cfg.Levels != 3 || cfg.ShowLevels || cfg.StrokeColor != "#000" || cfg.FontWeight != "bold" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.FillColor != DefaultFillColor {
		t.Errorf("FillColor = %q, want default", cfg.FillColor)
	}
}

func TestResolveKeepsResponsiveDefaults(t *testing.T) {
	opts := Options{Levels: Int(4)}

	small := Resolve(400, 400, opts)
	large := Resolve(1000, 800, opts)

	if small.Center != (Point{200, 200}) || large.Center != (Point{500, 400}) {
		t.Errorf("centers = %v, %v; want surface midpoints", small.Center, large.Center)
	}
	if small.Radius != 140 || large.Radius != 340 {
		t.Errorf("radii = %v, %v; want 140, 340", small.Radius, large.Radius)
	}
}

func TestResolveExplicitResponsiveFields(t *testing.T) {
	opts := Options{Center: &Point{10, 20}, Radius: Float(50), FontSize: Float(9)}

	for _, size := range [][2]float64{{400, 400}, {1200, 900}} {
		cfg := Resolve(size[0], size[1], opts)
		if cfg.Center != (Point{10, 20}) || cfg.Radius != 50 || cfg.FontSize != 9 {
			t.Errorf("Resolve(%v) = %+v, explicit fields must win", size, cfg)
		}
	}
}

func TestOptionsMerge(t *testing.T) {
	base := Options{Levels: Int(3), LineColor: String("red")}
	merged := base.Merge(Options{Levels: Int(7), PointColor: String("blue")})

	if *merged.Levels != 7 || *merged.LineColor != "red" || *merged.PointColor != "blue" {
		t.Errorf("Merge() = levels %d line %q point %q", *merged.Levels, *merged.LineColor, *merged.PointColor)
	}
	if *base.Levels != 3 {
		t.Error("Merge() must not modify the receiver")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"defaults", Options{}, false},
		{"zero levels", Options{Levels: Int(0)}, true},
		{"negative radius", Options{Radius: Float(-1)}, true},
		{"zero radius", Options{Radius: Float(0)}, false},
		{"zero font", Options{FontSize: Float(0)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Resolve(400, 400, tt.opts).Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %v, want INVALID_CONFIG", errors.GetCode(err))
			}
		})
	}
}

func TestFontString(t *testing.T) {
	tests := []struct {
		font Font
		want string
	}{
		{Font{Size: 14, Weight: "bold"}, "bold 14px sans-serif"},
		{Font{Size: 12, Weight: "normal", Family: "Arial"}, "12px Arial"},
		{Font{Size: 13.5}, "13.5px sans-serif"},
	}
	for _, tt := range tests {
		if got := tt.font.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
