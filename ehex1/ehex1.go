/*
Package ehex1 implements the first generation EHEX image format.

Each pixel is four 8-bit channels written in RGBA order as eight uppercase
hex digits. The header is the magic EHEX, version V1, the size line, the
channel count CHANNELS:4 and the PIXELS: marker.

New images are not limited in size, but resizing clamps to 150 by 25 the
same way as the second generation.
*/
package ehex1

import (
	"encoding/hex"
	"image"
	"image/color"

	"github.com/bodgit/ehex/codec"
	"github.com/bodgit/ehex/glyph"
	"github.com/bodgit/ehex/grid"
)

const (
	channels  = 4
	hexDigits = "0123456789ABCDEF"
)

// Format describes the first generation layout.
var Format = codec.Format{
	Magic:    codec.MagicV1,
	Version:  1,
	Digits:   channels * 2,
	Channels: channels,
}

// Background is the value of every pixel in a new image, opaque black.
var Background = color.NRGBA{0, 0, 0, 0xff}

type pixelCodec struct{}

func (pixelCodec) Format() codec.Format {
	return Format
}

func (pixelCodec) AppendPixel(dst []byte, v color.NRGBA) []byte {
	for _, c := range [channels]uint8{v.R, v.G, v.B, v.A} {
		dst = append(dst, hexDigits[c>>4], hexDigits[c&0x0f])
	}
	return dst
}

func (pixelCodec) ParsePixel(group string) (color.NRGBA, error) {
	var tmp [channels]byte
	if _, err := hex.Decode(tmp[:], []byte(group)); err != nil {
		return color.NRGBA{}, err
	}
	return color.NRGBA{tmp[0], tmp[1], tmp[2], tmp[3]}, nil
}

// Image is a grid of RGBA pixels with straight alpha. It implements
// draw.Image using the color.NRGBAModel color model.
type Image struct {
	g *grid.Grid[color.NRGBA]
}

// New returns an image filled with Background.
func New(width, height int) *Image {
	return &Image{
		g: grid.New(width, height, Background, codec.Limit),
	}
}

func (m *Image) Width() int {
	return m.g.Width()
}

func (m *Image) Height() int {
	return m.g.Height()
}

// Pixel returns the pixel at (x, y), or Background outside the image.
func (m *Image) Pixel(x, y int) color.NRGBA {
	return m.g.Get(x, y)
}

// SetPixel sets the pixel at (x, y). Writes outside the image are dropped.
func (m *Image) SetPixel(x, y int, c color.NRGBA) {
	m.g.Set(x, y, c)
}

// SetPixelChecked is like SetPixel but returns grid.ErrOutOfBounds for
// writes outside the image.
func (m *Image) SetPixelChecked(x, y int, c color.NRGBA) error {
	return m.g.SetChecked(x, y, c)
}

// Glyph returns the brightness glyph for the pixel at (x, y).
func (m *Image) Glyph(x, y int) rune {
	c := m.Pixel(x, y)
	return glyph.ForRGB(c.R, c.G, c.B)
}

// Resize changes the image size, clamped to 150 by 25, keeping the
// overlapping pixels and filling new ones with Background.
func (m *Image) Resize(width, height int) {
	m.g.Resize(width, height)
}

func (m *Image) Clone() *Image {
	return &Image{g: m.g.Clone()}
}

func (m *Image) Equal(o *Image) bool {
	return m.g.Equal(o.g)
}

func (m *Image) ColorModel() color.Model {
	return color.NRGBAModel
}

func (m *Image) Bounds() image.Rectangle {
	return m.g.Bounds()
}

// At implements image.Image.
func (m *Image) At(x, y int) color.Color {
	return m.Pixel(x, y)
}

// Set implements draw.Image.
func (m *Image) Set(x, y int, c color.Color) {
	m.SetPixel(x, y, color.NRGBAModel.Convert(c).(color.NRGBA))
}
