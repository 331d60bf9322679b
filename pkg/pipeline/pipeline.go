// Package pipeline renders radar charts to files with artifact caching.
//
// It is the one place the CLI render command and the HTTP server turn a
// dataset and a set of chart options into SVG, PNG, PDF or JSON bytes, so
// both entry points produce identical output for identical input.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Render(ctx, pipeline.Options{
//	    Width:   400,
//	    Height:  400,
//	    Formats: []string{"svg", "png"},
//	    Data:    radar.Dataset{Labels: labels, Values: values},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Each format is drawn on its own chart instance, so formats render
// concurrently without sharing mutable state.
package pipeline

import (
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/radar/pkg/cache"
	"github.com/matzehuels/radar/pkg/errors"
	pkgio "github.com/matzehuels/radar/pkg/io"
	"github.com/matzehuels/radar/pkg/radar"
)

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 400.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 400.0

	// DefaultScale is the default PNG resolution multiplier.
	DefaultScale = 2.0

	// MaxDimension bounds each side of the canvas, and of a PNG after
	// scaling, in pixels.
	MaxDimension = 8192
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Options contains everything needed to render a chart.
type Options struct {
	Width   float64  `json:"width,omitempty"`
	Height  float64  `json:"height,omitempty"`
	Formats []string `json:"formats,omitempty"`
	// Popups embeds hover tooltips and their script into SVG output.
	Popups bool `json:"popups,omitempty"`
	// Scale is the PNG resolution multiplier.
	Scale float64 `json:"scale,omitempty"`
	// Refresh skips cache lookups but still stores fresh artifacts.
	Refresh bool `json:"refresh,omitempty"`

	Chart radar.Options `json:"-"`
	// Template is the text/template source of the tooltip. It is compiled
	// into Chart.TooltipTemplate when that is unset, and it is what the
	// cache key sees, since a compiled template cannot be hashed.
	Template string        `json:"template,omitempty"`
	Data     radar.Dataset `json:"-"`

	Logger *log.Logger `json:"-"`
}

// FromFile builds render options from a chart file.
func FromFile(f *pkgio.File) (Options, error) {
	if err := f.Validate(); err != nil {
		return Options{}, err
	}
	chartOpts, err := f.Options()
	if err != nil {
		return Options{}, err
	}
	return Options{
		Width:    f.Canvas.Width,
		Height:   f.Canvas.Height,
		Chart:    chartOpts,
		Template: f.Chart.TooltipTemplate,
		Data:     f.Dataset(),
	}, nil
}

// Result contains the outputs of a render.
type Result struct {
	// ChartHash is the content hash of the dataset and chart options.
	ChartHash string

	// Points are the plotted vertices.
	Points []radar.DataPoint

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains render statistics.
type Stats struct {
	Points     int
	RenderTime time.Duration
	Bytes      int
}

// CacheInfo tracks which formats came from the cache.
type CacheInfo struct {
	Hits      []string
	Misses    []string
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets defaults and validates the options, the dataset
// and the resolved chart configuration.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas size %gx%g is negative", o.Width, o.Height)
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "scale %g is negative", o.Scale)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if err := o.validateSize(); err != nil {
		return err
	}
	if o.Chart.TooltipTemplate == nil && o.Template != "" {
		tmpl, err := pkgio.TooltipTemplate(o.Template)
		if err != nil {
			return err
		}
		o.Chart.TooltipTemplate = tmpl
	}
	if err := o.Data.Validate(); err != nil {
		return err
	}
	if err := o.config().Validate(); err != nil {
		return err
	}
	_, err := o.ChartHash()
	return err
}

// validateSize bounds the canvas, and for PNG output the raster after
// scaling, to MaxDimension pixels per side.
func (o *Options) validateSize() error {
	if o.Width > MaxDimension || o.Height > MaxDimension {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas size %gx%g exceeds %d px", o.Width, o.Height, MaxDimension)
	}
	if slices.Contains(o.Formats, FormatPNG) {
		w, h := math.Ceil(o.Width*o.Scale), math.Ceil(o.Height*o.Scale)
		if w > MaxDimension || h > MaxDimension {
			return errors.New(errors.ErrCodeInvalidConfig, "png size %gx%g at scale %g exceeds %d px", w, h, o.Scale, MaxDimension)
		}
	}
	return nil
}

func (o *Options) config() radar.Config {
	return radar.Resolve(o.Width, o.Height, o.Chart)
}

// chartKey is radar.Options without the compiled template, which shadows
// the embedded field so the value is JSON-encodable.
type chartKey struct {
	radar.Options
	TooltipTemplate string `json:"TooltipTemplate,omitempty"`
}

type datasetKey struct {
	Labels      []string
	Values      []float64
	Colors      *radar.Colors
	TooltipData []any
}

// ChartHash returns the content hash of the dataset and the chart options.
// Tooltip data that JSON cannot encode, such as NaN, is INVALID_DATA.
func (o *Options) ChartHash() (string, error) {
	d := o.Data
	h, err := cache.HashJSON(struct {
		Chart chartKey
		Data  datasetKey
	}{
		Chart: chartKey{Options: o.Chart, TooltipTemplate: o.Template},
		Data:  datasetKey{Labels: d.Labels, Values: d.Values, Colors: d.Colors, TooltipData: d.TooltipData},
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidData, err, "chart is not hashable")
	}
	return h, nil
}

// ArtifactKeyOpts returns cache key options for one format. Settings that
// do not change a format's bytes are left out of its key.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format, Width: o.Width, Height: o.Height}
	switch format {
	case FormatSVG:
		k.Popups = o.Popups
	case FormatPNG:
		k.Scale = o.Scale
	}
	return k
}

func formatError(format string, err error) error {
	return fmt.Errorf("render %s: %w", format, err)
}
