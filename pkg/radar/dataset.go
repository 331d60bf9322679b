package radar

import (
	"slices"

	"github.com/matzehuels/radar/pkg/errors"
)

// Dataset is the series a chart plots. Labels and Values are index-aligned.
type Dataset struct {
	Labels []string
	Values []float64
	// Colors overrides the configured data colors when set.
	Colors *Colors
	// TooltipData holds an optional payload per index, passed to the
	// tooltip template as CustomData.
	TooltipData []any
}

// Colors overrides the data colors of a configuration. Empty fields keep
// the configured color.
type Colors struct {
	FillColor  string
	LineColor  string
	PointColor string
}

// Validate rejects datasets whose labels and values are not aligned and
// values that are negative or not finite.
func (d Dataset) Validate() error {
	if err := errors.ValidateShape(len(d.Labels), len(d.Values)); err != nil {
		return err
	}
	return errors.ValidateValues(d.Values)
}

// Len returns the number of entries.
func (d Dataset) Len() int {
	return len(d.Values)
}

// CustomData returns the tooltip payload for index i, or nil.
func (d Dataset) CustomData(i int) any {
	if i < 0 || i >= len(d.TooltipData) {
		return nil
	}
	return d.TooltipData[i]
}

// Clone returns a copy that shares no slices with d.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Labels:      slices.Clone(d.Labels),
		Values:      slices.Clone(d.Values),
		TooltipData: slices.Clone(d.TooltipData),
	}
	if d.Colors != nil {
		c := *d.Colors
		out.Colors = &c
	}
	return out
}

func (d Dataset) fillColor(cfg Config) string {
	if d.Colors != nil && d.Colors.FillColor != "" {
		return d.Colors.FillColor
	}
	return cfg.FillColor
}

func (d Dataset) lineColor(cfg Config) string {
	if d.Colors != nil && d.Colors.LineColor != "" {
		return d.Colors.LineColor
	}
	return cfg.LineColor
}

func (d Dataset) pointColor(cfg Config) string {
	if d.Colors != nil && d.Colors.PointColor != "" {
		return d.Colors.PointColor
	}
	return cfg.PointColor
}
