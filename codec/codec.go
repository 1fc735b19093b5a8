/*
Package codec implements the parts of the EHEX text image format shared by
both generations.

An EHEX file is a short header followed by one line of hexadecimal per pixel
row:

	EHEX2
	V2
	SIZE:8x2
	PIXELS:
	0123456789abcdef
	fedcba9876543210

The first line is the magic string naming the generation. It is followed by
header lines in any order, each recognised by its prefix: V for the version,
SIZE: for the dimensions and, in the first generation only, CHANNELS: for the
channel count. The PIXELS: marker ends the header and is followed by exactly
height rows each holding width fixed size pixel groups with no delimiter.

The generations differ only in how a pixel group is written, which is
captured by the PixelCodec interface. Packages ehex1 and ehex2 provide the
two implementations.
*/
package codec

import "github.com/bodgit/ehex/grid"

const (
	// MagicV1 is the first line of a first generation (RGBA) image.
	MagicV1 = "EHEX"
	// MagicV2 is the first line of a second generation (palette) image.
	MagicV2 = "EHEX2"

	// PixelsMarker ends the header.
	PixelsMarker = "PIXELS:"

	versionPrefix  = "V"
	sizePrefix     = "SIZE:"
	sizeSeparator  = "x"
	channelsPrefix = "CHANNELS:"

	// MaxWidth and MaxHeight bound the canvas size used by the editor.
	MaxWidth  = 150
	MaxHeight = 25

	// Longest pixel row, in characters, the decoder accepts.
	maxRowLength = 1 << 24
	lineSlack    = 4096
)

// Limit is the canvas size limit applied when resizing.
var Limit = grid.Limit{Width: MaxWidth, Height: MaxHeight}

var knownMagic = map[string]int{
	MagicV1: 1,
	MagicV2: 2,
}

// Format describes one generation of the format.
type Format struct {
	// Magic is the expected first line.
	Magic string
	// Version is the only version number accepted by the decoder.
	Version int
	// Digits is the number of hex digits in each pixel group.
	Digits int
	// Channels is written as the CHANNELS: header when non-zero.
	Channels int
}

// Header holds the image metadata read from, or written to, the header.
type Header struct {
	Magic    string
	Version  int
	Width    int
	Height   int
	Channels int
}

// PixelCodec converts a single pixel value to and from its pixel group.
type PixelCodec[T comparable] interface {
	// Format returns the generation the codec implements.
	Format() Format
	// AppendPixel appends the pixel group for v to dst.
	AppendPixel(dst []byte, v T) []byte
	// ParsePixel parses a pixel group of exactly Format().Digits
	// characters.
	ParsePixel(group string) (T, error)
}
