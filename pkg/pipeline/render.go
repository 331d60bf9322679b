package pipeline

import (
	"bytes"
	"context"

	pkgio "github.com/matzehuels/radar/pkg/io"
	"github.com/matzehuels/radar/pkg/radar"
	"github.com/matzehuels/radar/pkg/render"
	"github.com/matzehuels/radar/pkg/render/sink/png"
	"github.com/matzehuels/radar/pkg/render/sink/svg"
)

// RenderFormat draws the chart on a fresh surface for format and returns
// the artifact. opts must have passed ValidateForRender.
func RenderFormat(ctx context.Context, format string, opts Options) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data, err = renderSVG(opts, opts.Popups)
	case FormatPNG:
		data, err = renderPNG(ctx, opts)
	case FormatPDF:
		data, err = renderPDF(ctx, opts)
	case FormatJSON:
		data, err = renderJSON(opts)
	default:
		err = ValidateFormat(format)
	}
	if err != nil {
		return nil, formatError(format, err)
	}
	return data, nil
}

// staticChart draws a chart that never binds a tooltip element. Hover
// content is still available through TooltipContent for popups.
func staticChart(s radar.Surface, opts Options) (*radar.Chart, error) {
	chartOpts := opts.Chart
	chartOpts.EnableTooltips = radar.Bool(false)
	return radar.New(s, opts.Data, chartOpts, radar.WithLogger(opts.Logger))
}

func renderSVG(opts Options, popups bool) ([]byte, error) {
	canvas := svg.New(opts.Width, opts.Height)
	ch, err := staticChart(canvas, opts)
	if err != nil {
		return nil, err
	}
	if popups {
		svg.EmbedPopups(ch)
	}
	return canvas.Bytes(), nil
}

// renderPNG rasterizes through rsvg-convert when it is installed, so PNG
// and PDF share one text renderer, and draws with the built-in rasterizer
// otherwise.
func renderPNG(ctx context.Context, opts Options) ([]byte, error) {
	if render.HasRSVG() {
		doc, err := renderSVG(opts, false)
		if err != nil {
			return nil, err
		}
		return render.ToPNG(ctx, doc, opts.Scale)
	}
	canvas := png.New(opts.Width, opts.Height, png.WithScale(opts.Scale))
	if _, err := staticChart(canvas, opts); err != nil {
		return nil, err
	}
	return canvas.Bytes()
}

func renderPDF(ctx context.Context, opts Options) ([]byte, error) {
	doc, err := renderSVG(opts, false)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(ctx, doc)
}

func renderJSON(opts Options) ([]byte, error) {
	canvas := svg.New(opts.Width, opts.Height)
	ch, err := staticChart(canvas, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pkgio.WriteJSON(ch, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
