// Package display presents the 1-bit framebuffer on simulation hardware:
// a terminal panel, scaled images, and (in display/window) a desktop window
package display

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

// Palette maps lit and unlit pixels to colours
type Palette struct {
	On  colorful.Color
	Off colorful.Color
}

// DefaultPalette is a pale blue panel on near black
var DefaultPalette = Palette{
	On:  colorful.Color{R: 0xe8 / 255.0, G: 0xf4 / 255.0, B: 1},
	Off: colorful.Color{R: 0, G: 0x08 / 255.0, B: 0x14 / 255.0},
}

// ParsePalette reads two #rrggbb colours
func ParsePalette(on, off string) (Palette, error) {
	onC, err := colorful.Hex(on)
	if err != nil {
		return Palette{}, errors.Wrapf(err, "display: on colour %q", on)
	}
	offC, err := colorful.Hex(off)
	if err != nil {
		return Palette{}, errors.Wrapf(err, "display: off colour %q", off)
	}
	return Palette{On: onC, Off: offC}, nil
}

// RGBA returns the colour of a pixel
func (p Palette) RGBA(lit bool) color.RGBA {
	c := p.Off
	if lit {
		c = p.On
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Cell returns the terminal colour of a pixel
func (p Palette) Cell(lit bool) tcell.Color {
	c := p.RGBA(lit)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Dim blends the lit colour toward the unlit one, t in [0, 1]
func (p Palette) Dim(t float64) tcell.Color {
	r, g, b := p.On.BlendLab(p.Off, t).Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Color palette for image export, unlit first
func (p Palette) Color() color.Palette {
	return color.Palette{p.RGBA(false), p.RGBA(true)}
}
