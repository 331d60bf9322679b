// Package render converts rendered charts between output formats.
//
// # Overview
//
// Charts draw onto a [radar.Surface]; the sinks under render/sink turn the
// recorded drawing into an artifact:
//
//   - [sink/svg]: SVG documents, optionally with embedded hover popups
//   - [sink/png]: in-process rasterization with fogleman/gg
//   - [sink/term]: half-block terminal frames for the interactive viewer
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg). PDF output always goes
// through it; PNG output prefers it when it is installed and otherwise falls
// back to [sink/png].
//
//	svg := canvas.Bytes()
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [radar.Surface]: github.com/matzehuels/radar/pkg/radar#Surface
// [sink/svg]: github.com/matzehuels/radar/pkg/render/sink/svg
// [sink/png]: github.com/matzehuels/radar/pkg/render/sink/png
// [sink/term]: github.com/matzehuels/radar/pkg/render/sink/term
package render
