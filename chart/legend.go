package chart

import (
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/vizlab/palreport/colormap"
)

// legendWidth is the horizontal room a vertical color bar needs in
// the right margin.
const legendWidth = 72

// gradientLegend draws a vertical continuous color bar to the right
// of the plot area, running from min at the bottom to max at the top.
// id must be unique within the document.
func gradientLegend(c *svg.SVG, f frame, m *colormap.Mapping, min, max float64, id string) {
	const stopCount = 9
	stops := make([]svg.Offcolor, 0, stopCount)
	for i := 0; i < stopCount; i++ {
		t := float64(i) / (stopCount - 1)
		stops = append(stops, svg.Offcolor{
			Offset:  uint8(t * 100),
			Color:   m.Hex(t),
			Opacity: 1,
		})
	}
	c.Def()
	// Gradient vector points from the bottom of the bar (t=0) to
	// the top (t=1).
	c.LinearGradient(id, 0, 100, 0, 0, stops)
	c.DefEnd()

	x := f.x0 + f.pw + 14
	c.Rect(x, f.y0, 14, f.ph, fmt.Sprintf(`fill="url(#%s)"`, id),
		"stroke:"+cssColor(f.th.Axis)+";stroke-width:0.5")
	c.Text(x+18, f.y0+f.th.FontSize-2, fmt.Sprintf("%.6g", max), f.th.smallTextStyle(""))
	c.Text(x+18, f.y0+f.ph, fmt.Sprintf("%.6g", min), f.th.smallTextStyle(""))
}
