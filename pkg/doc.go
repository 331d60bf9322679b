// Package pkg provides the core libraries for radar chart rendering.
//
// # Overview
//
// Radar draws radar (spider) charts: one spoke per label, concentric level
// polygons, and a filled data polygon with a vertex for every value. A live
// chart tracks the pointer and shows a tooltip for the vertex under it. The
// pkg directory is organized into these areas:
//
//  1. [radar] - Chart model (configuration, geometry, drawing, hover state)
//  2. [render] - Sinks that turn a drawing into SVG, PNG or terminal output
//  3. [io] - Chart files in TOML or JSON, and JSON export
//  4. [pipeline] - Orchestration (validate → draw → encode → cache)
//  5. [cache] - Artifact caches backed by files or Redis
//
// # Architecture
//
// The typical data flow:
//
//	chart.toml / chart.json
//	         ↓
//	    [io] package (decode, validate, compile the tooltip template)
//	         ↓
//	    [radar] package (resolve config, compute vertices, draw)
//	         ↓
//	    [render] sinks (svg, png, term)
//	         ↓
//	    SVG/PDF/PNG/JSON output
//
// # Quick Start
//
// Draw a chart onto an SVG canvas and hover a vertex:
//
//	import (
//	    "github.com/matzehuels/radar/pkg/radar"
//	    "github.com/matzehuels/radar/pkg/render/sink/svg"
//	)
//
//	tip := svg.NewTooltip()
//	doc := svg.NewDocument()
//	doc.AddCanvas(svg.New(400, 400, svg.WithID("radar"), svg.WithTooltip(tip)))
//	doc.AddTooltip("#radar-tooltip", tip)
//
//	chart, err := radar.Open(doc, "radar", radar.Dataset{
//	    Labels: []string{"Speed", "Power", "Range"},
//	    Values: []float64{8, 6, 9},
//	}, radar.Options{})
//	chart.PointerMove(200, 80)
//
// Render every output format through the cached pipeline:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	result, err := runner.Render(ctx, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	    Data:    data,
//	})
//
// # Supporting Packages
//
//   - [errors]: Structured error codes shared by every package
//   - [observability]: Hooks for draw, tooltip, render and cache events
//   - [fonts]: Embedded label font for in-process rasterization
//   - [buildinfo]: Version information set at build time
//
// [radar]: https://pkg.go.dev/github.com/matzehuels/radar/pkg/radar
// [render]: https://pkg.go.dev/github.com/matzehuels/radar/pkg/render
// [io]: https://pkg.go.dev/github.com/matzehuels/radar/pkg/io
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/radar/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/radar/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/radar/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/radar/pkg/observability
// [fonts]: https://pkg.go.dev/github.com/matzehuels/radar/pkg/fonts
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/radar/pkg/buildinfo
package pkg
