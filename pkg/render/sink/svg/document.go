package svg

import "github.com/matzehuels/radar/pkg/radar"

// Document is a radar.Document over SVG canvases and tooltips.
type Document struct {
	canvases map[string]*Canvas
	tooltips map[string]*Tooltip
}

var _ radar.Document = (*Document)(nil)

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{
		canvases: make(map[string]*Canvas),
		tooltips: make(map[string]*Tooltip),
	}
}

// AddCanvas registers c under its id.
func (d *Document) AddCanvas(c *Canvas) {
	d.canvases[c.ID()] = c
}

// AddTooltip registers t under selector, e.g. "#radar-tooltip".
func (d *Document) AddTooltip(selector string, t *Tooltip) {
	d.tooltips[selector] = t
}

func (d *Document) Surface(id string) (radar.Surface, bool) {
	c, ok := d.canvases[id]
	if !ok {
		return nil, false
	}
	return c, true
}

func (d *Document) Element(selector string) (radar.Element, bool) {
	t, ok := d.tooltips[selector]
	if !ok {
		return nil, false
	}
	return t, true
}
