// Package io reads chart files and exports rendered vertices.
//
// # File Format
//
// A chart file describes one chart: its options, its data and the canvas
// size to render at. TOML and JSON are accepted, chosen by file extension:
//
//	[canvas]
//	width = 400
//	height = 400
//
//	[chart]
//	levels = 4
//	fill_color = "rgba(255, 99, 132, 0.2)"
//	tooltip_template = "{{.Label}}: {{.Value}} {{with .CustomData}}({{.unit}}){{end}}"
//
//	[data]
//	labels = ["Speed", "Power", "Range"]
//	values = [10, 5, 10]
//	tooltip_data = [{unit = "km/h"}, {unit = "kW"}, {unit = "km"}]
//
// Every [chart] key is optional and mirrors a field of radar.Options in
// snake_case. Unset keys keep the chart defaults, including the responsive
// center, radius and font size. tooltip_template is a text/template executed
// with radar.TooltipData.
//
// # Export
//
// [WriteJSON] writes the vertices recorded by the last draw, for tools that
// want the computed geometry instead of a picture.
package io
