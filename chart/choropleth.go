package chart

import (
	"fmt"
	"io"
	"strings"

	svg "github.com/ajstarks/svgo"
	"github.com/paulmach/orb"

	"github.com/vizlab/palreport/census"
	"github.com/vizlab/palreport/colormap"
)

// Choropleth fills each tract polygon with the palette color for its
// measured value. The tract set is shared, read-only input: rendering
// the same tracts with several mappings never copies or refetches
// them.
type Choropleth struct {
	tracts  *census.Tracts
	mapping *colormap.Mapping
	title   string
	th      Theme
}

// NewChoropleth builds a tract map. The mapping must be continuous.
func NewChoropleth(tracts *census.Tracts, m *colormap.Mapping, title string, th Theme) (*Choropleth, error) {
	if tracts == nil || tracts.Len() == 0 {
		return nil, &InvalidGeometryError{"polygon", "no polygon geometry present"}
	}
	if m.Selection().Mode != colormap.Continuous {
		return nil, &InvalidGeometryError{"polygon", "requires a continuous palette mapping"}
	}
	th.MarginRight = legendWidth
	return &Choropleth{tracts: tracts, mapping: m, title: title, th: th}, nil
}

func (c *Choropleth) Title() string { return c.title }

func (c *Choropleth) Render(w io.Writer) error {
	b := c.tracts.Bound()
	vmin, vmax := c.tracts.ValueBounds()

	f := newFrame(c.th)
	// Fit the planar bound into the plot area without distorting
	// the aspect ratio.
	sx := float64(f.pw) / (b.Max[0] - b.Min[0])
	sy := float64(f.ph) / (b.Max[1] - b.Min[1])
	s := sx
	if sy < s {
		s = sy
	}
	offx := float64(f.x0) + (float64(f.pw)-s*(b.Max[0]-b.Min[0]))/2
	offy := float64(f.y0) + (float64(f.ph)-s*(b.Max[1]-b.Min[1]))/2
	tx := func(p orb.Point) (float64, float64) {
		return offx + s*(p[0]-b.Min[0]), offy + s*(b.Max[1]-p[1])
	}

	canvas := svg.New(w)
	f.begin(canvas, c.title)
	for i := 0; i < c.tracts.Len(); i++ {
		tract := c.tracts.At(i)
		t := 0.5
		if vmax > vmin {
			t = (tract.Value - vmin) / (vmax - vmin)
		}
		style := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:0.5",
			c.mapping.Hex(t), cssColor(c.th.Background))
		switch g := tract.Geometry.(type) {
		case orb.Polygon:
			canvas.Path(polygonPath(g, tx), style)
		case orb.MultiPolygon:
			for _, p := range g {
				canvas.Path(polygonPath(p, tx), style)
			}
		}
	}
	gradientLegend(canvas, f, c.mapping, vmin, vmax, "choropleth-scale")
	f.end(canvas)
	return nil
}

// polygonPath encodes all rings of p as one SVG path. GeoJSON winds
// interior rings opposite the exterior, so they render as holes.
func polygonPath(p orb.Polygon, tx func(orb.Point) (float64, float64)) string {
	var sb strings.Builder
	for _, ring := range p {
		for i, pt := range ring {
			x, y := tx(pt)
			if i == 0 {
				fmt.Fprintf(&sb, "M%.1f %.1f", x, y)
			} else {
				fmt.Fprintf(&sb, "L%.1f %.1f", x, y)
			}
		}
		sb.WriteString("Z")
	}
	return sb.String()
}
