package chart

import (
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"
)

// Theme is the visual styling preset shared by the charts: canvas
// size, margins, and the fixed colors of the frame around the data.
type Theme struct {
	Width, Height int

	MarginTop, MarginRight, MarginBottom, MarginLeft int

	Background color.RGBA
	Axis       color.RGBA
	GridLine   color.RGBA
	Text       color.RGBA

	FontSize int
}

// DefaultTheme returns the styling used by the published report.
func DefaultTheme() Theme {
	return Theme{
		Width:        640,
		Height:       480,
		MarginTop:    36,
		MarginRight:  24,
		MarginBottom: 52,
		MarginLeft:   60,
		Background:   colornames.White,
		Axis:         colornames.Dimgray,
		GridLine:     colornames.Gainsboro,
		Text:         colornames.Black,
		FontSize:     14,
	}
}

func cssColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func (t Theme) textStyle(extra string) string {
	s := fmt.Sprintf("font-family:sans-serif;font-size:%dpx;fill:%s", t.FontSize, cssColor(t.Text))
	if extra != "" {
		s += ";" + extra
	}
	return s
}

func (t Theme) smallTextStyle(extra string) string {
	s := fmt.Sprintf("font-family:sans-serif;font-size:%dpx;fill:%s", t.FontSize-2, cssColor(t.Text))
	if extra != "" {
		s += ";" + extra
	}
	return s
}
