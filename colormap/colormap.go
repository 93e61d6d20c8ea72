// Package colormap selects among a closed set of perceptually uniform
// color palettes and adapts them to the scale machinery of go-gg.
//
// The palettes themselves come from colorgrad; this package only picks
// a named gradient, orients it, and exposes it in continuous or
// discrete form. It performs no color math of its own.
package colormap

import (
	"fmt"
	"image/color"
	"reflect"
	"sort"

	"github.com/aclements/go-gg/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/colorgrad"
)

// Mode selects how a palette maps a data domain onto colors.
type Mode int

const (
	// Continuous maps a real-valued domain smoothly onto the
	// palette's color range.
	Continuous Mode = iota

	// Discrete assigns one distinct color per category, sampled
	// evenly from the palette.
	Discrete
)

func (m Mode) String() string {
	switch m {
	case Continuous:
		return "continuous"
	case Discrete:
		return "discrete"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Selection names a palette and how it should be applied. The zero
// value selects the default sequential palette (viridis), continuous,
// in forward orientation.
type Selection struct {
	// Name is one of the palette names returned by Names, or ""
	// for the default sequential palette.
	Name string

	Mode Mode

	// Reversed inverts the domain-to-color direction.
	Reversed bool
}

// InvalidPaletteError reports a palette name outside the closed set
// understood by Resolve.
type InvalidPaletteError struct {
	Name string
}

func (e *InvalidPaletteError) Error() string {
	return fmt.Sprintf("unknown palette %q (valid palettes: %v)", e.Name, Names())
}

// DefaultName is the palette used when a Selection does not name one.
const DefaultName = "viridis"

var gradients = map[string]func() colorgrad.Gradient{
	"viridis": colorgrad.Viridis, // default sequential
	"plasma":  colorgrad.Plasma,  // vibrant sequential
	"inferno": colorgrad.Inferno, // fiery sequential
	"magma":   colorgrad.Magma,   // dark, high-contrast sequential
	"cividis": colorgrad.Cividis, // colorblind-safe sequential
	"turbo":   colorgrad.Turbo,   // rainbow-like
}

// Names returns the closed set of palette names, sorted.
func Names() []string {
	names := make([]string, 0, len(gradients))
	for name := range gradients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// A Mapping is a resolved palette: an opaque function from a unit
// domain onto a perceptually ordered color range. Mappings are
// immutable and safe to share between charts.
type Mapping struct {
	sel  Selection
	grad colorgrad.Gradient
}

// Resolve looks up the palette named by sel. It fails with
// *InvalidPaletteError if the name is not in the closed set.
func Resolve(sel Selection) (*Mapping, error) {
	if sel.Name == "" {
		sel.Name = DefaultName
	}
	mk, ok := gradients[sel.Name]
	if !ok {
		return nil, &InvalidPaletteError{sel.Name}
	}
	return &Mapping{sel: sel, grad: mk()}, nil
}

// Selection returns the selection this mapping was resolved from.
func (m *Mapping) Selection() Selection { return m.sel }

// Reverse returns a mapping over the same palette with the domain
// orientation flipped. Reversing twice restores the original mapping.
func (m *Mapping) Reverse() *Mapping {
	m2 := *m
	m2.sel.Reversed = !m2.sel.Reversed
	return &m2
}

// At maps t in [0, 1] to a color. Values outside [0, 1] are clamped.
func (m *Mapping) At(t float64) color.Color {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	if m.sel.Reversed {
		t = 1 - t
	}
	return m.grad.At(t)
}

// Hex returns the color at t as a CSS hex literal.
func (m *Mapping) Hex(t float64) string {
	c, _ := colorful.MakeColor(m.At(t))
	return c.Hex()
}

// Colors samples n evenly spaced colors, in domain order. n must be
// positive.
func (m *Mapping) Colors(n int) []color.Color {
	cs := make([]color.Color, n)
	if n == 1 {
		cs[0] = m.At(0)
		return cs
	}
	for i := range cs {
		cs[i] = m.At(float64(i) / float64(n-1))
	}
	return cs
}

var colorType = reflect.TypeOf((*color.Color)(nil)).Elem()

// Ranger adapts the mapping for use as a gg scale range. For discrete
// mappings, levels gives the number of distinct colors to sample;
// it is ignored for continuous mappings.
func (m *Mapping) Ranger(levels int) gg.Ranger {
	if m.sel.Mode == Discrete {
		if levels < 1 {
			levels = 1
		}
		return gg.NewColorRanger(m.Colors(levels))
	}
	return &continuousRanger{m}
}

// continuousRanger maps the unit interval produced by a continuous gg
// scaler through the palette.
type continuousRanger struct {
	m *Mapping
}

func (r *continuousRanger) RangeType() reflect.Type { return colorType }

func (r *continuousRanger) Map(x float64) interface{} { return r.m.At(x) }

func (r *continuousRanger) Unmap(y interface{}) (float64, bool) { return 0, false }
