package chart

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/aclements/go-gg/table"

	"github.com/vizlab/palreport/colormap"
)

// Filled is a filled two-dimensional bin chart: the x/y plane is cut
// into a regular grid and each occupied cell is filled with the
// palette color for its relative count.
type Filled struct {
	data    *table.Table
	x, y    string
	bins    int
	mapping *colormap.Mapping
	title   string
	th      Theme
}

// NewFilled builds a filled bin chart over two numeric columns. bins
// is the grid resolution per axis; 0 selects a default.
func NewFilled(data *table.Table, x, y string, bins int, m *colormap.Mapping, title string, th Theme) (*Filled, error) {
	if data == nil || data.Len() == 0 {
		return nil, &InvalidGeometryError{"filled", "no data supplied"}
	}
	for _, col := range []string{x, y} {
		if _, ok := data.Column(col).([]float64); !ok {
			return nil, &InvalidGeometryError{"filled", fmt.Sprintf("numeric column %q not present", col)}
		}
	}
	if m.Selection().Mode != colormap.Continuous {
		return nil, &InvalidGeometryError{"filled", "requires a continuous palette mapping"}
	}
	if bins <= 0 {
		bins = 24
	}
	th.MarginRight = legendWidth
	return &Filled{data: data, x: x, y: y, bins: bins, mapping: m, title: title, th: th}, nil
}

func (c *Filled) Title() string { return c.title }

func (c *Filled) Render(w io.Writer) error {
	xs := c.data.MustColumn(c.x).([]float64)
	ys := c.data.MustColumn(c.y).([]float64)

	xmin, xmax := bounds(xs)
	ymin, ymax := bounds(ys)

	counts := make([][]int, c.bins)
	for i := range counts {
		counts[i] = make([]int, c.bins)
	}
	cell := func(v, min, max float64) int {
		if min == max {
			return 0
		}
		i := int(float64(c.bins) * (v - min) / (max - min))
		if i < 0 {
			i = 0
		} else if i >= c.bins {
			i = c.bins - 1
		}
		return i
	}
	maxCount := 0
	for i := range xs {
		cx, cy := cell(xs[i], xmin, xmax), cell(ys[i], ymin, ymax)
		counts[cx][cy]++
		if counts[cx][cy] > maxCount {
			maxCount = counts[cx][cy]
		}
	}

	canvas := svg.New(w)
	f := newFrame(c.th)
	f.begin(canvas, c.title)
	f.yAxis(canvas, ymin, ymax, c.y)
	f.xAxis(canvas, xmin, xmax, c.x)

	cw := float64(f.pw) / float64(c.bins)
	ch := float64(f.ph) / float64(c.bins)
	for i := range counts {
		for j, n := range counts[i] {
			if n == 0 {
				continue
			}
			t := float64(n) / float64(maxCount)
			x := float64(f.x0) + float64(i)*cw
			y := float64(f.y0+f.ph) - float64(j+1)*ch
			canvas.Rect(int(x), int(y), int(cw)+1, int(ch)+1,
				"fill:"+c.mapping.Hex(t))
		}
	}
	gradientLegend(canvas, f, c.mapping, 0, float64(maxCount), "filled-scale")
	f.end(canvas)
	return nil
}

func bounds(vs []float64) (min, max float64) {
	min, max = vs[0], vs[0]
	for _, v := range vs {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
