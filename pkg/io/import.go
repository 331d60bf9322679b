package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/radar/pkg/errors"
	"github.com/matzehuels/radar/pkg/radar"
	"github.com/matzehuels/radar/pkg/render/color"
)

// Format is a chart file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// File is a decoded chart file.
type File struct {
	Canvas Canvas `toml:"canvas" json:"canvas"`
	Chart  Chart  `toml:"chart" json:"chart"`
	Data   Data   `toml:"data" json:"data"`
}

// Canvas is the render size in pixels. Zero keeps the caller's default.
type Canvas struct {
	Width  float64 `toml:"width,omitempty" json:"width,omitempty"`
	Height float64 `toml:"height,omitempty" json:"height,omitempty"`
}

// Point is a position in a chart file.
type Point struct {
	X float64 `toml:"x" json:"x"`
	Y float64 `toml:"y" json:"y"`
}

// Chart holds the [chart] options. Nil fields are unset.
type Chart struct {
	Center          *Point   `toml:"center,omitempty" json:"center,omitempty"`
	Radius          *float64 `toml:"radius,omitempty" json:"radius,omitempty"`
	Levels          *int     `toml:"levels,omitempty" json:"levels,omitempty"`
	ShowLevels      *bool    `toml:"show_levels,omitempty" json:"show_levels,omitempty"`
	StrokeColor     *string  `toml:"stroke_color,omitempty" json:"stroke_color,omitempty"`
	FillColor       *string  `toml:"fill_color,omitempty" json:"fill_color,omitempty"`
	LineColor       *string  `toml:"line_color,omitempty" json:"line_color,omitempty"`
	PointColor      *string  `toml:"point_color,omitempty" json:"point_color,omitempty"`
	LabelColor      *string  `toml:"label_color,omitempty" json:"label_color,omitempty"`
	FontSize        *float64 `toml:"font_size,omitempty" json:"font_size,omitempty"`
	FontWeight      *string  `toml:"font_weight,omitempty" json:"font_weight,omitempty"`
	EnableTooltips  *bool    `toml:"enable_tooltips,omitempty" json:"enable_tooltips,omitempty"`
	TooltipSelector *string  `toml:"tooltip_selector,omitempty" json:"tooltip_selector,omitempty"`
	TooltipTemplate string   `toml:"tooltip_template,omitempty" json:"tooltip_template,omitempty"`
}

// Data holds the [data] series.
type Data struct {
	Labels      []string  `toml:"labels" json:"labels"`
	Values      []float64 `toml:"values" json:"values"`
	Colors      *Colors   `toml:"colors,omitempty" json:"colors,omitempty"`
	TooltipData []any     `toml:"tooltip_data,omitempty" json:"tooltip_data,omitempty"`
}

// Colors holds the optional [data.colors] overrides.
type Colors struct {
	Fill  string `toml:"fill,omitempty" json:"fill,omitempty"`
	Line  string `toml:"line,omitempty" json:"line,omitempty"`
	Point string `toml:"point,omitempty" json:"point,omitempty"`
}

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported chart file %q (want .toml or .json)", path)
}

// ReadFile decodes and validates the chart file at path.
func ReadFile(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	file, err := Read(f, format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return file, nil
}

// Read decodes and validates a chart file from r. It does not close r.
func Read(r io.Reader, format Format) (*File, error) {
	var file File
	switch format {
	case FormatTOML:
		md, err := toml.NewDecoder(r).Decode(&file)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown key %q", undecoded[0].String())
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&file); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", format)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// Validate checks the series, the colors and the template.
func (f *File) Validate() error {
	if f.Canvas.Width < 0 || f.Canvas.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas size must not be negative")
	}
	if err := f.Dataset().Validate(); err != nil {
		return err
	}

	type colorField struct {
		key string
		v   *string
	}
	colors := []colorField{
		{"stroke_color", f.Chart.StrokeColor},
		{"fill_color", f.Chart.FillColor},
		{"line_color", f.Chart.LineColor},
		{"point_color", f.Chart.PointColor},
		{"label_color", f.Chart.LabelColor},
	}
	if c := f.Data.Colors; c != nil {
		colors = append(colors, colorField{"colors.fill", &c.Fill}, colorField{"colors.line", &c.Line}, colorField{"colors.point", &c.Point})
	}
	for _, c := range colors {
		if c.v == nil || *c.v == "" {
			continue
		}
		if _, err := color.Parse(*c.v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidColor, err, "%s", c.key)
		}
	}

	if f.Chart.TooltipTemplate != "" {
		if _, err := parseTemplate(f.Chart.TooltipTemplate); err != nil {
			return err
		}
	}
	return nil
}

// Dataset returns the [data] section as a radar.Dataset.
func (f *File) Dataset() radar.Dataset {
	d := radar.Dataset{
		Labels:      f.Data.Labels,
		Values:      f.Data.Values,
		TooltipData: f.Data.TooltipData,
	}
	if c := f.Data.Colors; c != nil {
		d.Colors = &radar.Colors{FillColor: c.Fill, LineColor: c.Line, PointColor: c.Point}
	}
	return d.Clone()
}

// Options returns the [chart] section as radar.Options.
func (f *File) Options() (radar.Options, error) {
	c := f.Chart
	opts := radar.Options{
		Radius:          c.Radius,
		Levels:          c.Levels,
		ShowLevels:      c.ShowLevels,
		StrokeColor:     c.StrokeColor,
		FillColor:       c.FillColor,
		LineColor:       c.LineColor,
		PointColor:      c.PointColor,
		LabelColor:      c.LabelColor,
		FontSize:        c.FontSize,
		FontWeight:      c.FontWeight,
		EnableTooltips:  c.EnableTooltips,
		TooltipSelector: c.TooltipSelector,
	}
	if c.Center != nil {
		opts.Center = &radar.Point{X: c.Center.X, Y: c.Center.Y}
	}
	if c.TooltipTemplate != "" {
		tmpl, err := TooltipTemplate(c.TooltipTemplate)
		if err != nil {
			return radar.Options{}, err
		}
		opts.TooltipTemplate = tmpl
	}
	return opts, nil
}

// TooltipTemplate compiles a text/template into a radar.TooltipTemplate.
// An execution error panics, which the chart recovers from by falling back
// to the default content.
func TooltipTemplate(src string) (radar.TooltipTemplate, error) {
	tmpl, err := parseTemplate(src)
	if err != nil {
		return nil, err
	}
	return func(d radar.TooltipData) string {
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, d); err != nil {
			panic(fmt.Errorf("tooltip template: %w", err))
		}
		return buf.String()
	}, nil
}

func parseTemplate(src string) (*template.Template, error) {
	tmpl, err := template.New("tooltip").Option("missingkey=zero").Parse(src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "tooltip_template")
	}
	return tmpl, nil
}
