/*
Package ehex2 implements the second generation EHEX image format.

Each pixel is a 4-bit index into the fixed sixteen glyph palette in package
glyph and is written as a single lowercase hex digit. The header is the
magic EHEX2, version V2, the size line and the PIXELS: marker. Images are
limited to 150 by 25 pixels when created or resized.

The first generation magic is recognised but rejected with a
*codec.UnsupportedVersionError; such images must be converted first.
*/
package ehex2

import (
	"errors"
	"image"
	"image/color"
	"strconv"

	"github.com/bodgit/ehex/codec"
	"github.com/bodgit/ehex/glyph"
	"github.com/bodgit/ehex/grid"
)

const (
	// MaxIndex is the largest palette index.
	MaxIndex = glyph.PaletteSize - 1

	hexDigits = "0123456789abcdef"
)

// Format describes the second generation layout.
var Format = codec.Format{
	Magic:   codec.MagicV2,
	Version: 2,
	Digits:  1,
}

// ErrInvalidIndex is returned by SetIndexChecked for an index above
// MaxIndex.
var ErrInvalidIndex = errors.New("ehex2: palette index out of range")

// Gray is the color model used when an Image is viewed as an image.Image:
// index 0 is black and MaxIndex is white.
var Gray color.Palette

func init() {
	Gray = make(color.Palette, glyph.PaletteSize)
	for i := range Gray {
		Gray[i] = color.Gray{Y: uint8(i * 0x11)}
	}
}

type pixelCodec struct{}

func (pixelCodec) Format() codec.Format {
	return Format
}

func (pixelCodec) AppendPixel(dst []byte, v uint8) []byte {
	// This is masking off any bits leaving a 0-15 value
	return append(dst, hexDigits[v&0x0f])
}

func (pixelCodec) ParsePixel(group string) (uint8, error) {
	v, err := strconv.ParseUint(group, 16, 4)
	if err != nil {
		return 0, err
	}
	return uint8(v), nil
}

// Image is a grid of palette indices. It implements image.PalettedImage
// using the Gray palette.
type Image struct {
	g *grid.Grid[uint8]
}

// New returns a blank image. The size is clamped to 150 by 25.
func New(width, height int) *Image {
	width, height = grid.Clamp(width, height, codec.Limit)
	return &Image{
		g: grid.New[uint8](width, height, 0, codec.Limit),
	}
}

func (m *Image) Width() int {
	return m.g.Width()
}

func (m *Image) Height() int {
	return m.g.Height()
}

// Index returns the palette index at (x, y), or 0 outside the image.
func (m *Image) Index(x, y int) uint8 {
	return m.g.Get(x, y)
}

// SetIndex sets the palette index at (x, y). Writes outside the image or
// with an index above MaxIndex are dropped.
func (m *Image) SetIndex(x, y int, i uint8) {
	if i > MaxIndex {
		return
	}
	m.g.Set(x, y, i)
}

// SetIndexChecked is like SetIndex but reports dropped writes.
func (m *Image) SetIndexChecked(x, y int, i uint8) error {
	if i > MaxIndex {
		return ErrInvalidIndex
	}
	return m.g.SetChecked(x, y, i)
}

// Fill sets every pixel of r inside the image to index i.
func (m *Image) Fill(r image.Rectangle, i uint8) {
	if i > MaxIndex {
		return
	}
	m.g.Fill(r, i)
}

// Glyph returns the palette glyph for the pixel at (x, y).
func (m *Image) Glyph(x, y int) rune {
	return glyph.ForIndex(m.Index(x, y))
}

// Resize changes the image size, clamped to 150 by 25, keeping the
// overlapping pixels and filling new ones with index 0.
func (m *Image) Resize(width, height int) {
	m.g.Resize(width, height)
}

func (m *Image) Clone() *Image {
	return &Image{g: m.g.Clone()}
}

func (m *Image) Equal(o *Image) bool {
	return m.g.Equal(o.g)
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model {
	return Gray
}

func (m *Image) Bounds() image.Rectangle {
	return m.g.Bounds()
}

// At implements image.Image.
func (m *Image) At(x, y int) color.Color {
	return Gray[m.Index(x, y)]
}

func (m *Image) ColorIndexAt(x, y int) uint8 {
	return m.Index(x, y)
}
