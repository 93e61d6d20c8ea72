package chart

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/aclements/go-gg/table"
	"github.com/paulmach/orb"

	"github.com/vizlab/palreport/census"
	"github.com/vizlab/palreport/colormap"
	"github.com/vizlab/palreport/dataset"
)

func mustMapping(t *testing.T, sel colormap.Selection) *colormap.Mapping {
	t.Helper()
	m, err := colormap.Resolve(sel)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func render(t *testing.T, c Chart) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "<svg") {
		t.Fatal("rendered output is not SVG")
	}
	return out
}

func TestPointsPaletteComparison(t *testing.T) {
	// The same 50-point dataset rendered under three palettes must
	// produce three distinct color mappings.
	s, err := dataset.NewSynthetic(50, 1)
	if err != nil {
		t.Fatal(err)
	}
	th := DefaultTheme()
	outs := make(map[string]string)
	for _, name := range []string{"viridis", "magma", "turbo"} {
		p, err := NewPoints(s.Table(), "x", "y", "z", mustMapping(t, colormap.Selection{Name: name}), name, th)
		if err != nil {
			t.Fatal(err)
		}
		outs[name] = render(t, p)
	}
	if outs["viridis"] == outs["magma"] || outs["magma"] == outs["turbo"] || outs["viridis"] == outs["turbo"] {
		t.Error("different palettes should produce different renderings")
	}
}

func TestPointsDiscrete(t *testing.T) {
	// A string color column with a discrete mapping gets one
	// distinct color per category.
	tab := new(table.Builder).
		Add("x", []float64{1, 2, 3, 4, 5, 6}).
		Add("y", []float64{2, 1, 3, 2, 4, 3}).
		Add("group", []string{"a", "b", "c", "a", "b", "c"}).
		Done()
	m := mustMapping(t, colormap.Selection{Name: "cividis", Mode: colormap.Discrete})
	p, err := NewPoints(tab, "x", "y", "group", m, "grouped", DefaultTheme())
	if err != nil {
		t.Fatal(err)
	}
	if !p.discrete || p.levels != 3 {
		t.Errorf("want a discrete scale over 3 levels; got discrete=%v levels=%d", p.discrete, p.levels)
	}
	render(t, p)
}

func TestPointsInvalid(t *testing.T) {
	s, _ := dataset.NewSynthetic(10, 1)
	th := DefaultTheme()
	cont := mustMapping(t, colormap.Selection{Name: "viridis"})
	disc := mustMapping(t, colormap.Selection{Name: "viridis", Mode: colormap.Discrete})

	var gerr *InvalidGeometryError
	if _, err := NewPoints(s.Table(), "x", "y", "nope", cont, "", th); !errors.As(err, &gerr) {
		t.Errorf("missing color column: want *InvalidGeometryError; got %v", err)
	}
	if _, err := NewPoints(s.Table(), "x", "nope", "z", cont, "", th); !errors.As(err, &gerr) {
		t.Errorf("missing y column: want *InvalidGeometryError; got %v", err)
	}
	if _, err := NewPoints(s.Table(), "x", "y", "z", disc, "", th); !errors.As(err, &gerr) {
		t.Errorf("discrete mapping over numeric column: want *InvalidGeometryError; got %v", err)
	}
}

func TestGridOrder(t *testing.T) {
	g := NewGrid(DefaultTheme(), 320, 240,
		Panel{Href: "points-viridis.svg", Caption: "viridis"},
		Panel{Href: "points-magma.svg", Caption: "magma"},
		Panel{Href: "points-turbo.svg", Caption: "turbo"},
	)
	out := render(t, g)
	i := strings.Index(out, "points-viridis.svg")
	j := strings.Index(out, "points-magma.svg")
	k := strings.Index(out, "points-turbo.svg")
	if i < 0 || j < 0 || k < 0 {
		t.Fatal("grid should reference every panel")
	}
	if !(i < j && j < k) {
		t.Error("panel order not preserved")
	}
}

func TestBarsDistinctColors(t *testing.T) {
	c, err := dataset.NewCategorical(50, 123, 5)
	if err != nil {
		t.Fatal(err)
	}
	m := mustMapping(t, colormap.Selection{Name: "cividis", Mode: colormap.Discrete})
	b, err := NewBars(c.Table(), "label", "value", m, "categories", DefaultTheme())
	if err != nil {
		t.Fatal(err)
	}

	labels, means := b.bars()
	if len(labels) != 5 {
		t.Fatalf("want 5 categories; got %v", labels)
	}
	if len(means) != len(labels) {
		t.Fatalf("want one mean per category; got %d", len(means))
	}
	for i := 1; i < len(labels); i++ {
		if labels[i-1] >= labels[i] {
			t.Errorf("categories should be in label order; got %v", labels)
		}
	}

	fills := b.fills(len(labels))
	seen := make(map[string]bool)
	for _, f := range fills {
		seen[f] = true
	}
	if len(seen) != 5 {
		t.Errorf("want exactly 5 distinct bar colors; got %d (%v)", len(seen), fills)
	}

	out := render(t, b)
	if got := strings.Count(out, `class="bar"`); got != 5 {
		t.Errorf("want 5 bars in the rendering; got %d", got)
	}
	for _, f := range fills {
		if !strings.Contains(out, f) {
			t.Errorf("rendering is missing bar color %s", f)
		}
	}
}

func TestBarsInvalid(t *testing.T) {
	c, _ := dataset.NewCategorical(20, 1, 3)
	var gerr *InvalidGeometryError
	cont := mustMapping(t, colormap.Selection{Name: "viridis"})
	disc := mustMapping(t, colormap.Selection{Name: "viridis", Mode: colormap.Discrete})
	if _, err := NewBars(c.Table(), "label", "value", cont, "", DefaultTheme()); !errors.As(err, &gerr) {
		t.Errorf("continuous mapping: want *InvalidGeometryError; got %v", err)
	}
	if _, err := NewBars(c.Table(), "value", "value", disc, "", DefaultTheme()); !errors.As(err, &gerr) {
		t.Errorf("numeric label column: want *InvalidGeometryError; got %v", err)
	}
}

func TestFilled(t *testing.T) {
	s, err := dataset.NewSynthetic(500, 7)
	if err != nil {
		t.Fatal(err)
	}
	m := mustMapping(t, colormap.Selection{Name: "inferno"})
	f, err := NewFilled(s.Table(), "x", "y", 0, m, "density of x and y", DefaultTheme())
	if err != nil {
		t.Fatal(err)
	}
	out := render(t, f)
	if !strings.Contains(out, "filled-scale") {
		t.Error("filled chart should carry a continuous legend")
	}
}

func TestFilledConstantColumn(t *testing.T) {
	// A constant column collapses its axis to a single bin instead
	// of dividing by a zero span.
	tab := new(table.Builder).
		Add("x", []float64{2, 2, 2, 2}).
		Add("y", []float64{0, 1, 2, 3}).
		Done()
	m := mustMapping(t, colormap.Selection{Name: "inferno"})
	f, err := NewFilled(tab, "x", "y", 4, m, "degenerate", DefaultTheme())
	if err != nil {
		t.Fatal(err)
	}
	render(t, f)
}

func TestFilledInvalid(t *testing.T) {
	s, _ := dataset.NewSynthetic(10, 1)
	var gerr *InvalidGeometryError
	disc := mustMapping(t, colormap.Selection{Name: "inferno", Mode: colormap.Discrete})
	if _, err := NewFilled(s.Table(), "x", "y", 0, disc, "", DefaultTheme()); !errors.As(err, &gerr) {
		t.Errorf("discrete mapping: want *InvalidGeometryError; got %v", err)
	}
	cont := mustMapping(t, colormap.Selection{Name: "inferno"})
	if _, err := NewFilled(s.Table(), "x", "nope", 0, cont, "", DefaultTheme()); !errors.As(err, &gerr) {
		t.Errorf("missing column: want *InvalidGeometryError; got %v", err)
	}
}

func square(x, y, side float64) orb.Polygon {
	return orb.Polygon{orb.Ring{
		{x, y}, {x + side, y}, {x + side, y + side}, {x, y + side}, {x, y},
	}}
}

func testTracts() *census.Tracts {
	return census.NewTracts("EPSG:3857",
		census.Tract{GEOID: "a", Value: 100, Geometry: square(0, 0, 10)},
		census.Tract{GEOID: "b", Value: 900, Geometry: square(10, 0, 10)},
		census.Tract{GEOID: "c", Value: 500, Geometry: square(0, 10, 10)},
	)
}

func TestChoroplethForwardAndReversed(t *testing.T) {
	tracts := testTracts()
	m := mustMapping(t, colormap.Selection{Name: "viridis"})

	fwd, err := NewChoropleth(tracts, m, "forward", DefaultTheme())
	if err != nil {
		t.Fatal(err)
	}
	rev, err := NewChoropleth(tracts, m.Reverse(), "reversed", DefaultTheme())
	if err != nil {
		t.Fatal(err)
	}
	a, b := render(t, fwd), render(t, rev)
	if !strings.Contains(a, "choropleth-scale") {
		t.Error("choropleth should carry a continuous legend")
	}
	if a == b {
		t.Error("reversed palette should change the rendering")
	}
}

func TestChoroplethInvalid(t *testing.T) {
	var gerr *InvalidGeometryError
	m := mustMapping(t, colormap.Selection{Name: "viridis"})
	if _, err := NewChoropleth(nil, m, "", DefaultTheme()); !errors.As(err, &gerr) {
		t.Errorf("nil tracts: want *InvalidGeometryError; got %v", err)
	}
	if _, err := NewChoropleth(census.NewTracts("EPSG:3857"), m, "", DefaultTheme()); !errors.As(err, &gerr) {
		t.Errorf("empty tracts: want *InvalidGeometryError; got %v", err)
	}
	disc := mustMapping(t, colormap.Selection{Name: "viridis", Mode: colormap.Discrete})
	if _, err := NewChoropleth(testTracts(), disc, "", DefaultTheme()); !errors.As(err, &gerr) {
		t.Errorf("discrete mapping: want *InvalidGeometryError; got %v", err)
	}
}

func TestDensity(t *testing.T) {
	s, err := dataset.NewSynthetic(200, 3)
	if err != nil {
		t.Fatal(err)
	}
	m := mustMapping(t, colormap.Selection{Name: "plasma", Mode: colormap.Discrete})
	d, err := NewDensity(s.Table(), []string{"x", "y", "z"}, m, "distributions", DefaultTheme())
	if err != nil {
		t.Fatal(err)
	}
	render(t, d)
}

func TestDensityInvalid(t *testing.T) {
	s, _ := dataset.NewSynthetic(20, 1)
	var gerr *InvalidGeometryError
	cont := mustMapping(t, colormap.Selection{Name: "plasma"})
	if _, err := NewDensity(s.Table(), []string{"x"}, cont, "", DefaultTheme()); !errors.As(err, &gerr) {
		t.Errorf("continuous mapping: want *InvalidGeometryError; got %v", err)
	}
	disc := mustMapping(t, colormap.Selection{Name: "plasma", Mode: colormap.Discrete})
	if _, err := NewDensity(s.Table(), nil, disc, "", DefaultTheme()); !errors.As(err, &gerr) {
		t.Errorf("no columns: want *InvalidGeometryError; got %v", err)
	}
}
