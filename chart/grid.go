package chart

import (
	"io"

	svg "github.com/ajstarks/svgo"
)

// Panel is one cell of a comparison grid: a previously rendered
// figure referenced by location, plus its caption.
type Panel struct {
	// Href locates the panel image relative to the grid document.
	Href string

	Caption string
}

// Grid lays out independently rendered figures side by side, in the
// order given, for comparison.
type Grid struct {
	panels         []Panel
	panelW, panelH int
	th             Theme
}

// NewGrid builds a single-row comparison grid. Panel order is
// preserved exactly as given.
func NewGrid(th Theme, panelW, panelH int, panels ...Panel) *Grid {
	return &Grid{panels: panels, panelW: panelW, panelH: panelH, th: th}
}

func (g *Grid) Title() string { return "" }

// captionStrip is the vertical room reserved under the panels.
const captionStrip = 28

func (g *Grid) Render(w io.Writer) error {
	width := g.panelW * len(g.panels)
	height := g.panelH + captionStrip

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:"+cssColor(g.th.Background))
	for i, p := range g.panels {
		x := i * g.panelW
		canvas.Image(x, 0, g.panelW, g.panelH, p.Href)
		if p.Caption != "" {
			canvas.Text(x+g.panelW/2, g.panelH+g.th.FontSize+4, p.Caption,
				g.th.smallTextStyle("text-anchor:middle"))
		}
	}
	canvas.End()
	return nil
}
