package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/radar/pkg/radar"
)

type export struct {
	Center radar.Point       `json:"center"`
	Radius float64           `json:"radius"`
	Levels int               `json:"levels"`
	Points []radar.DataPoint `json:"points"`
}

// WriteJSON writes the configuration geometry and the vertices recorded by
// the chart's last draw to w.
func WriteJSON(ch *radar.Chart, w io.Writer) error {
	cfg := ch.Config()
	out := export{
		Center: cfg.Center,
		Radius: cfg.Radius,
		Levels: cfg.Levels,
		Points: ch.Points(),
	}
	if out.Points == nil {
		out.Points = []radar.DataPoint{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes f as a chart file.
func WriteTOML(f *File, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(f); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// Example returns a small chart file, used to scaffold new charts.
func Example() *File {
	levels := 5
	return &File{
		Canvas: Canvas{Width: 400, Height: 400},
		Chart: Chart{
			Levels:          &levels,
			TooltipTemplate: "{{.Label}}: {{.Value}}",
		},
		Data: Data{
			Labels: []string{"Speed", "Power", "Range", "Comfort", "Price"},
			Values: []float64{8, 6, 9, 5, 7},
		},
	}
}
