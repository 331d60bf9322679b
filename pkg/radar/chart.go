package radar

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/radar/pkg/errors"
	"github.com/matzehuels/radar/pkg/observability"
)

// Chart is a radar chart bound to one drawing surface.
type Chart struct {
	surface Surface
	cfg     Config
	data    Dataset
	points  []DataPoint

	tooltip Element
	state   TooltipState
	active  int

	logger *log.Logger
}

// Option configures a Chart at construction.
type Option func(*chartOptions)

type chartOptions struct {
	logger   *log.Logger
	elements ElementFinder
}

// WithLogger sets the logger warnings are reported to. By default they are
// discarded.
func WithLogger(l *log.Logger) Option {
	return func(o *chartOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithElements sets where the tooltip selector is resolved.
func WithElements(f ElementFinder) Option {
	return func(o *chartOptions) { o.elements = f }
}

// New creates a chart on s and draws it once.
//
// It fails with SURFACE_NOT_FOUND when s is nil, SHAPE_MISMATCH or
// INVALID_DATA when the dataset is malformed, and INVALID_CONFIG when the
// resolved configuration would produce broken geometry. A missing tooltip
// element is not an error: it is logged and the chart is drawn without
// interactivity.
func New(s Surface, data Dataset, opts Options, chartOpts ...Option) (*Chart, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeSurfaceNotFound, "drawing surface not found")
	}
	co := chartOptions{logger: log.NewWithOptions(io.Discard, log.Options{})}
	for _, opt := range chartOpts {
		opt(&co)
	}

	if err := data.Validate(); err != nil {
		return nil, err
	}
	w, h := s.Size()
	cfg := Resolve(w, h, opts)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Chart{
		surface: s,
		cfg:     cfg,
		data:    data.Clone(),
		active:  -1,
		logger:  co.logger,
	}
	c.bindTooltip(co.elements)
	c.Draw()
	return c, nil
}

// Open looks up the surface id in doc and creates a chart on it. Unless
// WithElements is given, the tooltip is resolved through doc as well.
func Open(doc Document, id string, data Dataset, opts Options, chartOpts ...Option) (*Chart, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeSurfaceNotFound, "drawing surface %q not found", id)
	}
	s, ok := doc.Surface(id)
	if !ok || s == nil {
		return nil, errors.New(errors.ErrCodeSurfaceNotFound, "drawing surface %q not found", id)
	}
	return New(s, data, opts, append([]Option{WithElements(doc)}, chartOpts...)...)
}

func (c *Chart) bindTooltip(f ElementFinder) {
	if !c.cfg.EnableTooltips {
		return
	}
	sel := c.cfg.TooltipSelector
	if f != nil && sel != "" {
		if el, ok := f.Element(sel); ok && el != nil {
			c.tooltip = el
			el.Hide()
			el.ResetPlacement()
			return
		}
	}
	c.logger.Warn("tooltip element not found, tooltips disabled", "selector", sel)
}

// Draw clears the surface and renders the grid, the labels and the data,
// in that order.
func (c *Chart) Draw() {
	start := time.Now()
	c.surface.Clear()
	c.drawGrid()
	c.drawLabels()
	c.drawData()
	observability.Chart().OnDraw(len(c.points), time.Since(start))
}

// UpdateData replaces the dataset and redraws. A tooltip showing a vertex
// of the previous dataset is hidden.
func (c *Chart) UpdateData(data Dataset) error {
	if err := data.Validate(); err != nil {
		return err
	}
	c.data = data.Clone()
	c.hide()
	c.Draw()
	return nil
}

// Points returns the vertices recorded by the last draw.
func (c *Chart) Points() []DataPoint {
	return slices.Clone(c.points)
}

// Config returns the resolved configuration.
func (c *Chart) Config() Config {
	return c.cfg
}

// Dataset returns a copy of the current dataset.
func (c *Chart) Dataset() Dataset {
	return c.data.Clone()
}

// Surface returns the surface the chart draws on.
func (c *Chart) Surface() Surface {
	return c.surface
}

// Interactive reports whether pointer events can show a tooltip.
func (c *Chart) Interactive() bool {
	return c.tooltip != nil
}
