// Package chart composes datasets and resolved palette mappings into
// renderable SVG figures.
//
// Scatter and density figures are declarative go-gg plots. Bars,
// binned heatmaps, choropleth maps, and the comparison grid are drawn
// directly with svgo, the same backend go-gg renders through.
package chart

import (
	"fmt"
	"io"
)

// A Chart is a fully specified figure that renders itself as a
// standalone SVG document.
type Chart interface {
	Render(w io.Writer) error
	Title() string
}

// InvalidGeometryError reports that a requested geometry is
// incompatible with the supplied data shape.
type InvalidGeometryError struct {
	Geometry string
	Reason   string
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("cannot render %s geometry: %s", e.Geometry, e.Reason)
}
