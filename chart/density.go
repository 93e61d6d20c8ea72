package chart

import (
	"fmt"
	"io"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/ggstat"
	"github.com/aclements/go-gg/table"

	"github.com/vizlab/palreport/colormap"
)

// Density overlays kernel density estimates of several numeric
// columns, one curve per column, colored discretely.
type Density struct {
	data    *table.Table
	cols    []string
	mapping *colormap.Mapping
	title   string
	th      Theme
}

// NewDensity builds a density figure over the named numeric columns.
// The mapping must be discrete: each curve gets one color.
func NewDensity(data *table.Table, cols []string, m *colormap.Mapping, title string, th Theme) (*Density, error) {
	if data == nil || data.Len() == 0 {
		return nil, &InvalidGeometryError{"density", "no data supplied"}
	}
	if len(cols) == 0 {
		return nil, &InvalidGeometryError{"density", "no columns named"}
	}
	for _, col := range cols {
		if _, ok := data.Column(col).([]float64); !ok {
			return nil, &InvalidGeometryError{"density", fmt.Sprintf("numeric column %q not present", col)}
		}
	}
	if m.Selection().Mode != colormap.Discrete {
		return nil, &InvalidGeometryError{"density", "requires a discrete palette mapping"}
	}
	return &Density{data: data, cols: cols, mapping: m, title: title, th: th}, nil
}

func (c *Density) Title() string { return c.title }

func (c *Density) Render(w io.Writer) error {
	// One (column, value) pair per original cell, so the estimate
	// can group per source column.
	g := table.Unpivot(c.data, "column", "value", c.cols...)

	plot := gg.NewPlot(g)
	s := gg.NewOrdinalScale()
	s.Ranger(c.mapping.Ranger(len(c.cols)))
	plot.SetScale("stroke", s)

	plot.GroupBy("column")
	plot.Stat(ggstat.Density{X: "value"})
	plot.Add(
		gg.LayerLines{X: "value", Y: "probability density", Color: "column"},
		gg.AxisLabel("x", "value"),
		gg.AxisLabel("y", "density"),
		gg.Title(c.title),
	)
	return plot.WriteSVG(w, c.th.Width, c.th.Height)
}
