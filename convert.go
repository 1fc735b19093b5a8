package ehex

import (
	"image/color"
	"math"

	"github.com/bodgit/ehex/ehex1"
	"github.com/bodgit/ehex/ehex2"
	"github.com/lucasb-eyer/go-colorful"
)

// lightness returns the CIE L* of c scaled to 0-1 and false if c is fully
// transparent.
func lightness(c color.Color) (float64, bool) {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return 0, false
	}
	l, _, _ := cf.Lab()
	return math.Max(0, math.Min(1, l)), true
}

// LightnessIndex returns the palette index whose position on the glyph
// ramp matches the perceptual lightness of c. Fully transparent colors map
// to index 0.
func LightnessIndex(c color.Color) uint8 {
	l, ok := lightness(c)
	if !ok {
		return 0
	}
	return uint8(math.Round(l * ehex2.MaxIndex))
}

// ConvertV1 returns a second generation image with each pixel replaced by
// its LightnessIndex. Pixels beyond 150 by 25 are dropped.
func ConvertV1(src *ehex1.Image) *ehex2.Image {
	dst := ehex2.New(src.Width(), src.Height())
	for y := 0; y < dst.Height(); y++ {
		for x := 0; x < dst.Width(); x++ {
			dst.SetIndex(x, y, LightnessIndex(src.Pixel(x, y)))
		}
	}
	return dst
}
