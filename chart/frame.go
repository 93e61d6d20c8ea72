package chart

import (
	"fmt"

	svg "github.com/ajstarks/svgo"
	"github.com/aclements/go-moremath/scale"
)

// frame is the plot-area geometry for the svgo-rendered charts. The
// tick placement comes from the same moremath scale package go-gg uses
// for its own axes.
type frame struct {
	th             Theme
	x0, y0, pw, ph int
}

func newFrame(th Theme) frame {
	return frame{
		th: th,
		x0: th.MarginLeft,
		y0: th.MarginTop,
		pw: th.Width - th.MarginLeft - th.MarginRight,
		ph: th.Height - th.MarginTop - th.MarginBottom,
	}
}

// begin opens the SVG document, fills the background, and draws the
// title.
func (f frame) begin(c *svg.SVG, title string) {
	c.Start(f.th.Width, f.th.Height)
	c.Rect(0, 0, f.th.Width, f.th.Height, "fill:"+cssColor(f.th.Background))
	if title != "" {
		c.Text(f.th.Width/2, f.th.MarginTop/2+f.th.FontSize/2, title,
			f.th.textStyle("text-anchor:middle;font-weight:bold"))
	}
}

func (f frame) end(c *svg.SVG) {
	c.End()
}

// px maps a data value on [min, max] to a horizontal pixel position.
func (f frame) px(v, min, max float64) float64 {
	if min == max {
		return float64(f.x0) + float64(f.pw)/2
	}
	ls := scale.Linear{Min: min, Max: max}
	return float64(f.x0) + ls.Map(v)*float64(f.pw)
}

// py maps a data value on [min, max] to a vertical pixel position.
// SVG y grows downward, so the axis is flipped here.
func (f frame) py(v, min, max float64) float64 {
	if min == max {
		return float64(f.y0) + float64(f.ph)/2
	}
	ls := scale.Linear{Min: min, Max: max}
	return float64(f.y0+f.ph) - ls.Map(v)*float64(f.ph)
}

// ticks picks at most most major ticks covering [min, max].
func ticks(min, max float64, most int) ([]float64, []string) {
	if min == max {
		max = min + 1
	}
	ls := scale.Linear{Min: min, Max: max}
	major, _ := ls.Ticks(scale.TickOptions{Max: most})
	labels := make([]string, len(major))
	for i, v := range major {
		labels[i] = fmt.Sprintf("%.6g", v)
	}
	return major, labels
}

// xAxis draws the bottom axis with numeric ticks and a label.
func (f frame) xAxis(c *svg.SVG, min, max float64, label string) {
	axis := "stroke:" + cssColor(f.th.Axis) + ";stroke-width:1"
	base := f.y0 + f.ph
	c.Line(f.x0, base, f.x0+f.pw, base, axis)
	major, labels := ticks(min, max, 7)
	for i, v := range major {
		if v < min || v > max {
			continue
		}
		x := int(f.px(v, min, max))
		c.Line(x, base, x, base+5, axis)
		c.Text(x, base+5+f.th.FontSize, labels[i], f.th.smallTextStyle("text-anchor:middle"))
	}
	if label != "" {
		c.Text(f.x0+f.pw/2, f.th.Height-8, label, f.th.textStyle("text-anchor:middle"))
	}
}

// xBands draws the bottom axis with one centered label per category.
func (f frame) xBands(c *svg.SVG, labels []string, label string) {
	axis := "stroke:" + cssColor(f.th.Axis) + ";stroke-width:1"
	base := f.y0 + f.ph
	c.Line(f.x0, base, f.x0+f.pw, base, axis)
	n := len(labels)
	for i, l := range labels {
		x := f.x0 + (2*i+1)*f.pw/(2*n)
		c.Text(x, base+5+f.th.FontSize, l, f.th.smallTextStyle("text-anchor:middle"))
	}
	if label != "" {
		c.Text(f.x0+f.pw/2, f.th.Height-8, label, f.th.textStyle("text-anchor:middle"))
	}
}

// yAxis draws the left axis with numeric ticks, grid lines, and a
// label.
func (f frame) yAxis(c *svg.SVG, min, max float64, label string) {
	axis := "stroke:" + cssColor(f.th.Axis) + ";stroke-width:1"
	grid := "stroke:" + cssColor(f.th.GridLine) + ";stroke-width:1"
	c.Line(f.x0, f.y0, f.x0, f.y0+f.ph, axis)
	major, labels := ticks(min, max, 6)
	for i, v := range major {
		if v < min || v > max {
			continue
		}
		y := int(f.py(v, min, max))
		c.Line(f.x0, y, f.x0+f.pw, y, grid)
		c.Line(f.x0-5, y, f.x0, y, axis)
		c.Text(f.x0-8, y+(f.th.FontSize-2)/2-1, labels[i], f.th.smallTextStyle("text-anchor:end"))
	}
	if label != "" {
		c.TranslateRotate(14, f.y0+f.ph/2, -90)
		c.Text(0, 0, label, f.th.textStyle("text-anchor:middle"))
		c.Gend()
	}
}
