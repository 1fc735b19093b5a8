/*
Package glyph maps pixel values to the single characters used to draw them
in a terminal.

EHEX2 images store a palette index per pixel which selects one of sixteen
glyphs ordered from sparse to dense. EHEX images store full RGBA pixels which
are reduced to one of five glyphs by brightness.
*/
package glyph

// PaletteSize is the number of glyphs in Palette.
const PaletteSize = 16

// Palette is the fixed EHEX2 glyph ramp, index 0 is the sparsest.
var Palette = [PaletteSize]rune{
	' ', '.', ':', '-', '=', '+', '*', '#',
	'%', '&', '$', '@', 'Q', 'W', 'M', '█',
}

// ForIndex returns the palette glyph for index i. Callers must pass an
// index in the range 0 to 15.
func ForIndex(i uint8) rune {
	return Palette[i]
}

// Shade is one brightness bucket used by ForRGB.
type Shade struct {
	Below float64
	Glyph rune
}

// Shades lists the brightness buckets in ascending order. A brightness not
// below any threshold uses Brightest.
var Shades = [...]Shade{
	{50, ' '},
	{100, '.'},
	{150, '*'},
	{200, '#'},
}

// Brightest is the glyph used for the top brightness bucket.
const Brightest = '@'

// Brightness returns the mean of the three color channels.
func Brightness(r, g, b uint8) float64 {
	return (float64(r) + float64(g) + float64(b)) / 3
}

// ForRGB returns the glyph for an RGB color. Alpha plays no part.
func ForRGB(r, g, b uint8) rune {
	v := Brightness(r, g, b)
	for _, s := range Shades {
		if v < s.Below {
			return s.Glyph
		}
	}
	return Brightest
}
