package render

import (
	"unicode/utf16"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/johndoe6345789/3dfsnav/tree"
	"github.com/johndoe6345789/3dfsnav/vmath"
)

// Palette is the immutable color table injected into the renderer
type Palette struct {
	Background colorful.Color
	FloorRed   colorful.Color
	FloorBlue  colorful.Color
	GridLine   colorful.Color
	FG         colorful.Color
	FGDim      colorful.Color
	Warn       colorful.Color
	Directory  colorful.Color
	files      []colorful.Color
}

func rgb255(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// DefaultPalette returns the classic navigator colors
func DefaultPalette() *Palette {
	return &Palette{
		Background: colorful.Color{},
		FloorRed:   colorful.Color{R: 0.7, G: 0.15, B: 0.25},
		FloorBlue:  colorful.Color{R: 0.25, G: 0.35, B: 0.75},
		GridLine:   colorful.Color{R: 0, G: 0.7, B: 0.7},
		FG:         rgb255(119, 225, 255),
		FGDim:      rgb255(123, 193, 167),
		Warn:       rgb255(255, 239, 91),
		Directory:  colorful.Color{R: 0.95, G: 0.15, B: 0.15},
		files: []colorful.Color{
			rgb255(19, 123, 177),
			rgb255(255, 132, 0),
			rgb255(255, 252, 0),
			rgb255(32, 160, 152),
			rgb255(0, 71, 255),
			rgb255(168, 0, 255),
			rgb255(154, 38, 103),
		},
	}
}

// StringHash is the 32-bit multiplicative hash over UTF-16 code units used to pick file colors
func StringHash(s string) int32 {
	var h int32
	for _, u := range utf16.Encode([]rune(s)) {
		h = (h << 5) - h + int32(u)
	}
	return h
}

// NodeColor returns the base color of a node
func (p *Palette) NodeColor(n tree.Node) colorful.Color {
	switch n.Kind {
	case tree.KindDirectory:
		return p.Directory
	case tree.KindFile:
		if len(p.files) == 0 {
			return p.FG
		}
		i := int(StringHash(n.Name) % int32(len(p.files)))
		if i < 0 {
			i = -i
		}
		return p.files[i]
	}
	return p.FG
}

// Fade mixes c toward the background, opacity 0 yields the background
func (p *Palette) Fade(c colorful.Color, opacity float64) colorful.Color {
	switch opacity = vmath.Clamp01(opacity); opacity {
	case 0:
		return p.Background
	case 1:
		return c
	}
	return p.Background.BlendRgb(c, opacity)
}

// Brighten scales c by factor, clamped to the displayable range
func Brighten(c colorful.Color, factor float64) colorful.Color {
	return colorful.Color{R: c.R * factor, G: c.G * factor, B: c.B * factor}.Clamped()
}

// Shade darkens c toward black by amount in [0, 1]
func Shade(c colorful.Color, amount float64) colorful.Color {
	return c.BlendLab(colorful.Color{}, amount).Clamped()
}

// ToTcell converts a color for the screen
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
