package radar

import (
	"math"

	"github.com/matzehuels/radar/pkg/errors"
)

// Layout constants, in pixels.
const (
	// LabelMargin is the space between the outer grid circle and the surface
	// edge reserved for axis labels when the radius is derived from the size.
	LabelMargin = 60.0
	// LabelOffset is how far beyond the outer radius labels are placed.
	LabelOffset = 20.0
	// PointRadius is the radius of the disc drawn at each vertex.
	PointRadius = 4.0
	// HoverRadius is the distance within which the pointer is on a vertex.
	HoverRadius = 15.0
	// TooltipOffset separates the tooltip from the pointer on both axes.
	TooltipOffset = 12.0

	gridLineWidth    = 1.0
	outlineLineWidth = 2.0

	minFontSize     = 12.0
	maxFontSize     = 16.0
	fontSizeDivisor = 30.0
)

// Default colors and styles.
const (
	DefaultStrokeColor     = "#999"
	DefaultFillColor       = "rgba(54, 162, 235, 0.2)"
	DefaultLineColor       = "rgba(54, 162, 235, 1)"
	DefaultPointColor      = "rgba(54, 162, 235, 1)"
	DefaultLabelColor      = "#333"
	DefaultFontWeight      = "normal"
	DefaultFontFamily      = "sans-serif"
	DefaultTooltipSelector = "#radar-tooltip"
	DefaultLevels          = 5
)

// TooltipTemplate renders the content of the tooltip for a hovered vertex.
type TooltipTemplate func(TooltipData) string

// Config is a fully resolved chart configuration. It is not changed after
// the chart is constructed.
type Config struct {
	Center          Point
	Radius          float64
	Levels          int
	ShowLevels      bool
	StrokeColor     string
	FillColor       string
	LineColor       string
	PointColor      string
	LabelColor      string
	FontSize        float64
	FontWeight      string
	EnableTooltips  bool
	TooltipSelector string
	TooltipTemplate TooltipTemplate
}

// Options is a partial configuration. A nil field keeps the default.
type Options struct {
	Center          *Point
	Radius          *float64
	Levels          *int
	ShowLevels      *bool
	StrokeColor     *string
	FillColor       *string
	LineColor       *string
	PointColor      *string
	LabelColor      *string
	FontSize        *float64
	FontWeight      *string
	EnableTooltips  *bool
	TooltipSelector *string
	TooltipTemplate TooltipTemplate
}

// Float returns a pointer to v, for filling Options.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for filling Options.
func Int(v int) *int { return &v }

// Bool returns a pointer to v, for filling Options.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v, for filling Options.
func String(v string) *string { return &v }

// Defaults returns the configuration used for a surface of the given size
// when no option is set.
func Defaults(width, height float64) Config {
	return Config{
		Center:          Point{X: width / 2, Y: height / 2},
		Radius:          math.Max(0, math.Min(width, height)/2-LabelMargin),
		Levels:          DefaultLevels,
		ShowLevels:      true,
		StrokeColor:     DefaultStrokeColor,
		FillColor:       DefaultFillColor,
		LineColor:       DefaultLineColor,
		PointColor:      DefaultPointColor,
		LabelColor:      DefaultLabelColor,
		FontSize:        clamp(width/fontSizeDivisor, minFontSize, maxFontSize),
		FontWeight:      DefaultFontWeight,
		EnableTooltips:  true,
		TooltipSelector: DefaultTooltipSelector,
		TooltipTemplate: DefaultTooltipTemplate,
	}
}

// Resolve merges opts over the defaults for a width×height surface.
// Every set field replaces its default. The responsive fields (center,
// radius, font size) are always derived from the given size first, so a
// partial Options keeps them in step with the surface unless it sets them.
func Resolve(width, height float64, opts Options) Config {
	cfg := Defaults(width, height)
	if opts.Center != nil {
		cfg.Center = *opts.Center
	}
	if opts.Radius != nil {
		cfg.Radius = *opts.Radius
	}
	if opts.Levels != nil {
		cfg.Levels = *opts.Levels
	}
	if opts.ShowLevels != nil {
		cfg.ShowLevels = *opts.ShowLevels
	}
	if opts.StrokeColor != nil {
		cfg.StrokeColor = *opts.StrokeColor
	}
	if opts.FillColor != nil {
		cfg.FillColor = *opts.FillColor
	}
	if opts.LineColor != nil {
		cfg.LineColor = *opts.LineColor
	}
	if opts.PointColor != nil {
		cfg.PointColor = *opts.PointColor
	}
	if opts.LabelColor != nil {
		cfg.LabelColor = *opts.LabelColor
	}
	if opts.FontSize != nil {
		cfg.FontSize = *opts.FontSize
	}
	if opts.FontWeight != nil {
		cfg.FontWeight = *opts.FontWeight
	}
	if opts.EnableTooltips != nil {
		cfg.EnableTooltips = *opts.EnableTooltips
	}
	if opts.TooltipSelector != nil {
		cfg.TooltipSelector = *opts.TooltipSelector
	}
	if opts.TooltipTemplate != nil {
		cfg.TooltipTemplate = opts.TooltipTemplate
	}
	return cfg
}

// Merge returns o with every field set in other replacing its own.
func (o Options) Merge(other Options) Options {
	out := o
	if other.Center != nil {
		out.Center = other.Center
	}
	if other.Radius != nil {
		out.Radius = other.Radius
	}
	if other.Levels != nil {
		out.Levels = other.Levels
	}
	if other.ShowLevels != nil {
		out.ShowLevels = other.ShowLevels
	}
	if other.StrokeColor != nil {
		out.StrokeColor = other.StrokeColor
	}
	if other.FillColor != nil {
		out.FillColor = other.FillColor
	}
	if other.LineColor != nil {
		out.LineColor = other.LineColor
	}
	if other.PointColor != nil {
		out.PointColor = other.PointColor
	}
	if other.LabelColor != nil {
		out.LabelColor = other.LabelColor
	}
	if other.FontSize != nil {
		out.FontSize = other.FontSize
	}
	if other.FontWeight != nil {
		out.FontWeight = other.FontWeight
	}
	if other.EnableTooltips != nil {
		out.EnableTooltips = other.EnableTooltips
	}
	if other.TooltipSelector != nil {
		out.TooltipSelector = other.TooltipSelector
	}
	if other.TooltipTemplate != nil {
		out.TooltipTemplate = other.TooltipTemplate
	}
	return out
}

// Validate reports configuration values that would corrupt the geometry.
func (c Config) Validate() error {
	if err := errors.ValidateFinite("center.x", c.Center.X); err != nil {
		return err
	}
	if err := errors.ValidateFinite("center.y", c.Center.Y); err != nil {
		return err
	}
	if err := errors.ValidateFinite("radius", c.Radius); err != nil {
		return err
	}
	if c.Radius < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "radius must not be negative (%g)", c.Radius)
	}
	if c.Levels < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "levels must be at least 1 (%d)", c.Levels)
	}
	if err := errors.ValidateFinite("font size", c.FontSize); err != nil {
		return err
	}
	if c.FontSize <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "font size must be positive (%g)", c.FontSize)
	}
	if c.TooltipTemplate == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "tooltip template is nil")
	}
	return nil
}

// LabelFont returns the font labels are drawn with.
func (c Config) LabelFont() Font {
	return Font{Size: c.FontSize, Weight: c.FontWeight, Family: DefaultFontFamily}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
