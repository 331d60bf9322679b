package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/radar/pkg/radar"
)

const (
	popupCSS = `
    .popup { pointer-events: none; transition: opacity 0.15s ease; }
    .popup[visibility="hidden"] { opacity: 0; }
    .popup[visibility="visible"] { opacity: 1; }`

	// popupJS mirrors radar.PlaceTooltip: left of the pointer on the right
	// half, above it on the bottom half, clamped to the viewBox.
	popupJS = `
    (function() {
      const svg = document.currentScript ? document.currentScript.closest('svg') : document.querySelector('svg');
      const vb = svg.viewBox.baseVal;
      const popups = Array.from(svg.querySelectorAll('.popup'));
      const hoverRadius = %g, offset = %g;
      let active = null;
      function hide() {
        if (active) { active.setAttribute('visibility', 'hidden'); active = null; }
      }
      svg.addEventListener('mousemove', e => {
        const pt = svg.createSVGPoint();
        pt.x = e.clientX; pt.y = e.clientY;
        const p = pt.matrixTransform(svg.getScreenCTM().inverse());
        const hit = popups.find(el => Math.hypot(el.dataset.x - p.x, el.dataset.y - p.y) <= hoverRadius);
        if (!hit) { hide(); return; }
        if (active !== hit) hide();
        const box = hit.getBBox();
        let x = p.x > vb.width / 2 ? p.x - box.width - offset : p.x + offset;
        let y = p.y > vb.height / 2 ? p.y - box.height - offset : p.y + offset;
        x = Math.max(0, Math.min(x, vb.width - box.width));
        y = Math.max(0, Math.min(y, vb.height - box.height));
        hit.setAttribute('transform', 'translate(' + x.toFixed(1) + ',' + y.toFixed(1) + ')');
        hit.setAttribute('visibility', 'visible');
        active = hit;
      });
      svg.addEventListener('mouseleave', hide);
    })();`
)

// Popup is a tooltip baked into the document for one vertex.
type Popup struct {
	Index   int
	X, Y    float64
	Content string
}

// SetPopups embeds popups and the script that shows them on hover. They are
// dropped by the next Clear.
func (c *Canvas) SetPopups(popups []Popup) {
	c.popups = popups
}

// EmbedPopups embeds one popup per vertex of ch, rendered with the chart's
// tooltip template. It is applied after the chart has drawn.
func EmbedPopups(ch *radar.Chart) {
	c, ok := ch.Surface().(*Canvas)
	if !ok {
		return
	}
	points := ch.Points()
	popups := make([]Popup, 0, len(points))
	for _, p := range points {
		content, _ := ch.TooltipContent(p.Index)
		popups = append(popups, Popup{Index: p.Index, X: p.X, Y: p.Y, Content: content})
	}
	c.SetPopups(popups)
}

func renderPopups(buf *bytes.Buffer, popups []Popup) {
	for _, p := range popups {
		lines := textLines(p.Content)
		w, h := measureLines(lines, tooltipFontSize, tooltipPadding)
		fmt.Fprintf(buf, `  <g class="popup" data-for="%d" data-x="%.2f" data-y="%.2f" visibility="hidden">`+"\n",
			p.Index, p.X, p.Y)
		writeBox(buf, lines, w, h, tooltipFontSize, tooltipPadding)
		buf.WriteString("  </g>\n")
	}
}

func renderPopupScript(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", popupCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n",
		fmt.Sprintf(popupJS, radar.HoverRadius, radar.TooltipOffset))
}
