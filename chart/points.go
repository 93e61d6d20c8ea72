package chart

import (
	"fmt"
	"io"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"

	"github.com/vizlab/palreport/colormap"
)

// Points is a scatter plot with each point colored by a third column
// through a palette mapping.
type Points struct {
	data    *table.Table
	x, y    string
	colorBy string
	mapping *colormap.Mapping
	title   string
	th      Theme

	discrete bool
	levels   int
}

// NewPoints builds a scatter plot of data. colorBy names the column
// driving the color scale: a numeric column requires a continuous
// mapping, a label column a discrete one.
func NewPoints(data *table.Table, x, y, colorBy string, m *colormap.Mapping, title string, th Theme) (*Points, error) {
	if data == nil || data.Len() == 0 {
		return nil, &InvalidGeometryError{"point", "no data supplied"}
	}
	for _, col := range []string{x, y} {
		if _, ok := data.Column(col).([]float64); !ok {
			return nil, &InvalidGeometryError{"point", fmt.Sprintf("numeric column %q not present", col)}
		}
	}
	p := &Points{data: data, x: x, y: y, colorBy: colorBy, mapping: m, title: title, th: th}
	switch col := data.Column(colorBy).(type) {
	case []float64:
		if m.Selection().Mode != colormap.Continuous {
			return nil, &InvalidGeometryError{"point", fmt.Sprintf("numeric color column %q requires a continuous palette mapping", colorBy)}
		}
	case []string:
		if m.Selection().Mode != colormap.Discrete {
			return nil, &InvalidGeometryError{"point", fmt.Sprintf("label color column %q requires a discrete palette mapping", colorBy)}
		}
		p.discrete = true
		p.levels = distinctStrings(col)
	case nil:
		return nil, &InvalidGeometryError{"point", fmt.Sprintf("color column %q not present", colorBy)}
	default:
		return nil, &InvalidGeometryError{"point", fmt.Sprintf("color column %q has unsupported type %T", colorBy, col)}
	}
	return p, nil
}

func (c *Points) Title() string { return c.title }

func (c *Points) Render(w io.Writer) error {
	plot := gg.NewPlot(c.data)
	var scaler gg.Scaler
	if c.discrete {
		s := gg.NewOrdinalScale()
		s.Ranger(c.mapping.Ranger(c.levels))
		scaler = s
	} else {
		s := gg.NewLinearScaler()
		s.Ranger(c.mapping.Ranger(0))
		scaler = s
	}
	plot.SetScale("stroke", scaler)
	plot.Add(
		gg.LayerPoints{X: c.x, Y: c.y, Color: c.colorBy},
		gg.AxisLabel("x", c.x),
		gg.AxisLabel("y", c.y),
		gg.Title(c.title),
	)
	return plot.WriteSVG(w, c.th.Width, c.th.Height)
}

func distinctStrings(ss []string) int {
	seen := make(map[string]bool, len(ss))
	for _, s := range ss {
		seen[s] = true
	}
	return len(seen)
}
