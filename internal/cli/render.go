package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/radar/pkg/io"
	"github.com/matzehuels/radar/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string   // output file path (or base path for multiple outputs)
	formats []string // output formats: "svg", "png", "pdf", "json"
	width   float64  // canvas width, overrides the chart file
	height  float64  // canvas height, overrides the chart file
	scale   float64  // PNG resolution multiplier
	popups  bool     // embed hover tooltips in SVG output
	refresh bool     // re-render even when cached
	cache   cacheFlags
}

// renderCommand creates the render command for generating chart files.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{popups: true, scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a chart file to SVG, PNG, PDF or JSON",
		Long: `Render a chart file to one or more output formats.

Outputs are written next to the chart file unless -o is given. With several
formats, -o is used as the base path and each format gets its extension.`,
		Example: `  radar render chart.toml
  radar render chart.toml -f svg,png -o out/chart
  radar render chart.json --width 800 --height 600 --popups=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			if !cmd.Flags().Changed("width") {
				opts.width = 0
			}
			if !cmd.Flags().Changed("height") {
				opts.height = 0
			}
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", pipeline.DefaultWidth, "canvas width (overrides the chart file)")
	cmd.Flags().Float64Var(&opts.height, "height", pipeline.DefaultHeight, "canvas height (overrides the chart file)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.popups, "popups", opts.popups, "embed hover tooltips in SVG output")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")
	addCacheFlags(cmd, &opts.cache)

	return cmd
}

func addCacheFlags(cmd *cobra.Command, f *cacheFlags) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().StringVar(&f.redisURL, "redis", "", "cache artifacts in Redis (redis://host:port/db)")
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	prog := newProgress(loggerFromContext(ctx))

	f, err := pkgio.ReadFile(input)
	if err != nil {
		return err
	}
	popts, err := pipeline.FromFile(f)
	if err != nil {
		return err
	}
	applyRenderFlags(&popts, opts)

	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering "+input)
	spinner.Start()
	result, err := runner.Render(ctx, popts)
	spinner.Stop()
	if err != nil {
		return err
	}

	paths := outputPaths(opts.output, input, popts.Formats)
	for _, format := range popts.Formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
	}

	printSuccess("Rendered %s", input)
	printStats(result.Stats.Points, result.Stats.Bytes, result.CacheInfo.RenderHit)
	for _, format := range popts.Formats {
		printFile(paths[format])
	}
	prog.done(fmt.Sprintf("Rendered %d file(s)", len(popts.Formats)))
	return nil
}

// applyRenderFlags layers command-line flags over the chart file.
func applyRenderFlags(p *pipeline.Options, opts renderOpts) {
	p.Formats = opts.formats
	if opts.width > 0 {
		p.Width = opts.width
	}
	if opts.height > 0 {
		p.Height = opts.height
	}
	p.Scale = opts.scale
	p.Popups = opts.popups
	p.Refresh = opts.refresh
}

// outputPaths maps each format to the file it is written to.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, format := range formats {
		paths[format] = base + "." + format
	}
	return paths
}

func writeArtifact(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
