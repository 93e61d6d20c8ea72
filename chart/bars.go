package chart

import (
	"fmt"
	"io"
	"math"
	"sort"

	svg "github.com/ajstarks/svgo"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/vizlab/palreport/colormap"
)

// Bars is a bar chart of the mean of a numeric column per category,
// with one discrete palette color per category.
type Bars struct {
	data    *table.Table
	label   string
	value   string
	mapping *colormap.Mapping
	title   string
	th      Theme
}

// NewBars builds a bar chart of data. label must be a string column
// and value a numeric column; the mapping must be discrete.
func NewBars(data *table.Table, label, value string, m *colormap.Mapping, title string, th Theme) (*Bars, error) {
	if data == nil || data.Len() == 0 {
		return nil, &InvalidGeometryError{"bar", "no data supplied"}
	}
	if _, ok := data.Column(label).([]string); !ok {
		return nil, &InvalidGeometryError{"bar", fmt.Sprintf("label column %q not present", label)}
	}
	if _, ok := data.Column(value).([]float64); !ok {
		return nil, &InvalidGeometryError{"bar", fmt.Sprintf("numeric column %q not present", value)}
	}
	if m.Selection().Mode != colormap.Discrete {
		return nil, &InvalidGeometryError{"bar", "requires a discrete palette mapping"}
	}
	return &Bars{data: data, label: label, value: value, mapping: m, title: title, th: th}, nil
}

func (c *Bars) Title() string { return c.title }

// bars aggregates the data to one mean per category, in label order.
func (c *Bars) bars() (labels []string, means []float64) {
	g := ggstat.Agg(c.label)(ggstat.AggMean(c.value)).F(c.data)
	t := g.Table(table.RootGroupID)
	labels = append(labels, t.MustColumn(c.label).([]string)...)
	means = append(means, t.MustColumn("mean "+c.value).([]float64)...)
	idx := make([]int, len(labels))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return labels[idx[i]] < labels[idx[j]] })
	sl := make([]string, len(idx))
	sm := make([]float64, len(idx))
	for i, j := range idx {
		sl[i], sm[i] = labels[j], means[j]
	}
	return sl, sm
}

// fills returns the bar fill colors, one distinct color per category
// present in the data.
func (c *Bars) fills(n int) []string {
	cs := c.mapping.Colors(n)
	out := make([]string, n)
	for i, col := range cs {
		cc, _ := colorful.MakeColor(col)
		out[i] = cc.Hex()
	}
	return out
}

func (c *Bars) Render(w io.Writer) error {
	labels, means := c.bars()
	fills := c.fills(len(labels))

	min, max := 0.0, 0.0
	for _, m := range means {
		min = math.Min(min, m)
		max = math.Max(max, m)
	}

	canvas := svg.New(w)
	f := newFrame(c.th)
	f.begin(canvas, c.title)
	f.yAxis(canvas, min, max, "mean "+c.value)
	f.xBands(canvas, labels, c.label)

	n := len(labels)
	band := f.pw / n
	pad := band / 6
	for i, m := range means {
		top := f.py(math.Max(0, m), min, max)
		bottom := f.py(math.Min(0, m), min, max)
		canvas.Rect(f.x0+i*band+pad, int(top), band-2*pad, int(bottom-top),
			`class="bar"`, "fill:"+fills[i])
	}
	f.end(canvas)
	return nil
}
