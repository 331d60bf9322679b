package radar

import "math"

func (c *Chart) drawGrid() {
	s, cfg := c.surface, c.cfg
	n := len(c.data.Labels)

	s.SetStrokeStyle(cfg.StrokeColor)
	s.SetLineWidth(gridLineWidth)

	if cfg.ShowLevels {
		for level := 1; level <= cfg.Levels; level++ {
			r := cfg.Radius * float64(level) / float64(cfg.Levels)
			s.BeginPath()
			s.Arc(cfg.Center.X, cfg.Center.Y, r, 0, 2*math.Pi)
			s.Stroke()
		}
	}

	for i := 0; i < n; i++ {
		end := Polar(cfg.Center, SpokeAngle(i, n), cfg.Radius)
		s.BeginPath()
		s.MoveTo(cfg.Center.X, cfg.Center.Y)
		s.LineTo(end.X, end.Y)
		s.Stroke()
	}
}

func (c *Chart) drawLabels() {
	s, cfg := c.surface, c.cfg
	n := len(c.data.Labels)

	s.SetFillStyle(cfg.LabelColor)
	s.SetFont(cfg.LabelFont())
	for i, label := range c.data.Labels {
		p := LabelPosition(cfg.Center, cfg.Radius, i, n)
		s.FillText(label, p.X, p.Y)
	}
}

func (c *Chart) drawData() {
	s, cfg := c.surface, c.cfg

	c.points = Vertices(cfg.Center, cfg.Radius, c.data)
	if len(c.points) == 0 {
		return
	}

	s.SetFillStyle(c.data.fillColor(cfg))
	s.BeginPath()
	for i, p := range c.points {
		if i == 0 {
			s.MoveTo(p.X, p.Y)
		} else {
			s.LineTo(p.X, p.Y)
		}
	}
	s.ClosePath()
	s.Fill()

	s.SetStrokeStyle(c.data.lineColor(cfg))
	s.SetLineWidth(outlineLineWidth)
	s.Stroke()

	s.SetFillStyle(c.data.pointColor(cfg))
	for _, p := range c.points {
		s.BeginPath()
		s.Arc(p.X, p.Y, PointRadius, 0, 2*math.Pi)
		s.Fill()
	}
}
