// Package report sequences the whole document-generation pipeline:
// directory preparation, dataset generation and fetch, palette
// resolution, chart rendering, and final HTML assembly.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"

	"github.com/vizlab/palreport/census"
	"github.com/vizlab/palreport/chart"
	"github.com/vizlab/palreport/colormap"
	"github.com/vizlab/palreport/dataset"
)

// Section is one narrative block: a heading, explanatory text, and an
// optional embedded figure.
type Section struct {
	Heading string
	Text    string
	Image   string
}

// Build generates the complete report under root: figures in
// images/, the document in output/index.html. Steps run in a fixed
// order because each consumes the artifacts of the previous ones;
// the first failure aborts the whole run.
func Build(root string, cfg Defaults, client *census.Client, req census.Request) error {
	logf := func(format string, args ...interface{}) {
		if !cfg.Quiet {
			log.Printf(format, args...)
		}
	}

	outDir, imgDir, err := EnsureDirs(root)
	if err != nil {
		return err
	}

	th := chart.DefaultTheme()
	th.Width, th.Height = cfg.ImageWidth, cfg.ImageHeight
	panelTh := th
	panelTh.Width, panelTh.Height = cfg.PanelWidth, cfg.PanelHeight
	panelTh.FontSize = th.FontSize - 2

	writeFig := func(name string, c chart.Chart) error {
		path := filepath.Join(imgDir, name)
		f, err := os.Create(path)
		if err != nil {
			return &FilesystemError{path, err}
		}
		if err := c.Render(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return &FilesystemError{path, err}
		}
		logf("wrote %s", path)
		return nil
	}

	var sections []Section

	// Synthetic scatter data under three palettes, side by side.
	logf("generating synthetic sample")
	synth, err := dataset.NewSynthetic(50, 1)
	if err != nil {
		return err
	}
	mean, stddev := synth.Summary("z")
	var panels []chart.Panel
	for _, name := range []string{"viridis", "magma", "turbo"} {
		m, err := colormap.Resolve(colormap.Selection{Name: name})
		if err != nil {
			return err
		}
		p, err := chart.NewPoints(synth.Table(), "x", "y", "z", m, name, panelTh)
		if err != nil {
			return err
		}
		file := "points-" + name + ".svg"
		if err := writeFig(file, p); err != nil {
			return err
		}
		panels = append(panels, chart.Panel{Href: file, Caption: name})
	}
	if err := writeFig("points-grid.svg", chart.NewGrid(th, cfg.PanelWidth, cfg.PanelHeight, panels...)); err != nil {
		return err
	}
	sections = append(sections, Section{
		Heading: "Comparing sequential palettes",
		Text: fmt.Sprintf("The same 50 points, colored by a third standard normal "+
			"variable (mean %.2f, standard deviation %.2f), under the default "+
			"sequential palette, the dark high-contrast variant, and the "+
			"rainbow-like variant. Equal steps in the data produce visually "+
			"equal steps in color for all three.", mean, stddev),
		Image: "../images/points-grid.svg",
	})

	// Categorical data with a discrete colorblind-safe palette.
	logf("generating categorical sample")
	catg, err := dataset.NewCategorical(50, 123, 5)
	if err != nil {
		return err
	}
	cividis, err := colormap.Resolve(colormap.Selection{Name: "cividis", Mode: colormap.Discrete})
	if err != nil {
		return err
	}
	bars, err := chart.NewBars(catg.Table(), "label", "value", cividis, "mean value per category", th)
	if err != nil {
		return err
	}
	if err := writeFig("bars-cividis.svg", bars); err != nil {
		return err
	}
	sections = append(sections, Section{
		Heading: "Discrete scales",
		Text: "A discrete scale assigns one distinct color per category. The " +
			"colorblind-safe sequential palette keeps the categories ordered " +
			"and distinguishable under common color vision deficiencies.",
		Image: "../images/bars-cividis.svg",
	})

	// Distribution check of the generator.
	plasma, err := colormap.Resolve(colormap.Selection{Name: "plasma", Mode: colormap.Discrete})
	if err != nil {
		return err
	}
	dens, err := chart.NewDensity(synth.Table(), []string{"x", "y", "z"}, plasma, "density of the synthetic columns", th)
	if err != nil {
		return err
	}
	if err := writeFig("density.svg", dens); err != nil {
		return err
	}
	sections = append(sections, Section{
		Heading: "The synthetic sample",
		Text: "Kernel density estimates of the three generated columns. The " +
			"columns are drawn independently from a standard normal " +
			"distribution with a fixed seed, so the report is reproducible " +
			"bit for bit.",
		Image: "../images/density.svg",
	})

	// A dense sample as a filled two-dimensional bin chart.
	logf("generating dense sample")
	dense, err := dataset.NewSynthetic(4000, 7)
	if err != nil {
		return err
	}
	inferno, err := colormap.Resolve(colormap.Selection{Name: "inferno"})
	if err != nil {
		return err
	}
	filled, err := chart.NewFilled(dense.Table(), "x", "y", 0, inferno, "joint density, 4000 points", th)
	if err != nil {
		return err
	}
	if err := writeFig("filled-inferno.svg", filled); err != nil {
		return err
	}
	sections = append(sections, Section{
		Heading: "Continuous scales over counts",
		Text: "Binning a dense sample and filling each cell by its count shows " +
			"how a continuous perceptually uniform scale preserves the shape " +
			"of a distribution without the false boundaries a rainbow scale " +
			"introduces.",
		Image: "../images/filled-inferno.svg",
	})

	// Census tracts, fetched once and rendered twice: forward and
	// reversed palette over the same read-only dataset.
	logf("fetching %s %s for state %s county %s", req.Geography, req.VariableID, req.State, req.County)
	tracts, err := client.Fetch(req)
	if err != nil {
		return err
	}
	viridis, err := colormap.Resolve(colormap.Selection{Name: "viridis"})
	if err != nil {
		return err
	}
	fwd, err := chart.NewChoropleth(tracts, viridis, "population by tract", th)
	if err != nil {
		return err
	}
	if err := writeFig("tracts-forward.svg", fwd); err != nil {
		return err
	}
	rev, err := chart.NewChoropleth(tracts, viridis.Reverse(), "population by tract, reversed", th)
	if err != nil {
		return err
	}
	if err := writeFig("tracts-reversed.svg", rev); err != nil {
		return err
	}
	vmin, vmax := tracts.ValueBounds()
	sections = append(sections,
		Section{
			Heading: "Census tracts",
			Text: fmt.Sprintf("%d tracts fetched for state %s, county %s (%d), "+
				"reprojected into %s. Tract values span %.0f to %.0f.",
				tracts.Len(), req.State, req.County, req.Year, tracts.CRS(), vmin, vmax),
			Image: "../images/tracts-forward.svg",
		},
		Section{
			Heading: "Reversing the direction",
			Text: "The same tracts under the same palette with the domain " +
				"direction reversed. The dataset is fetched once and shared " +
				"between both renderings.",
			Image: "../images/tracts-reversed.svg",
		},
	)

	// Assemble the document.
	var session bytes.Buffer
	Session().Fprint(&session)
	doc := filepath.Join(outDir, "index.html")
	f, err := os.Create(doc)
	if err != nil {
		return &FilesystemError{doc, err}
	}
	data := struct {
		Title      string
		ImageWidth int
		DPI        int
		Sections   []Section
		Session    string
	}{
		Title:      "Perceptually uniform color palettes",
		ImageWidth: cfg.ImageWidth,
		DPI:        cfg.DPI,
		Sections:   sections,
		Session:    session.String(),
	}
	if err := reportTmpl.Execute(f, data); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return &FilesystemError{doc, err}
	}
	logf("wrote %s", doc)
	return nil
}

var reportTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="display-density" content="{{.DPI}}">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: {{.ImageWidth}}px; margin: 2em auto; line-height: 1.5; }
figure { margin: 1em 0; }
img { max-width: 100%; }
pre { background: #f6f6f6; padding: 0.75em; overflow-x: auto; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Sections}}<section>
<h2>{{.Heading}}</h2>
<p>{{.Text}}</p>
{{if .Image}}<figure><img src="{{.Image}}" alt="{{.Heading}}"></figure>{{end}}
</section>
{{end}}<section>
<h2>Session</h2>
<pre>{{.Session}}</pre>
</section>
</body>
</html>
`))
