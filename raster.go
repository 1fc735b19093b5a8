package ehex

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"sort"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/bodgit/ehex/codec"
	"github.com/bodgit/ehex/ehex1"
	"github.com/bodgit/ehex/ehex2"
	"github.com/bodgit/ehex/glyph"
	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"
	_ "golang.org/x/image/bmp" // Register BMP format decoder
)

// fit scales m down, keeping its aspect ratio, until it fits within 150 by
// 25. The result always has its origin at (0, 0).
func fit(m image.Image) *image.NRGBA {
	return imaging.Fit(m, codec.MaxWidth, codec.MaxHeight, imaging.NearestNeighbor)
}

// rankPalette maps each palette entry to a glyph index so that the darkest
// entry uses index 0, the lightest uses the top index and the rest are
// spread evenly between them. Transparent entries always use index 0.
func rankPalette(p color.Palette) []uint8 {
	type entry struct {
		i int
		l float64
	}

	indices := make([]uint8, len(p))
	entries := make([]entry, 0, len(p))
	for i, c := range p {
		if l, ok := lightness(c); ok {
			entries = append(entries, entry{i, l})
		}
	}

	switch len(entries) {
	case 0:
		return indices
	case 1:
		indices[entries[0].i] = LightnessIndex(p[entries[0].i])
		return indices
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].l < entries[j].l
	})
	for rank, e := range entries {
		indices[e.i] = uint8(rank * ehex2.MaxIndex / (len(entries) - 1))
	}

	return indices
}

// FromImage reduces m to a second generation image. The image is scaled to
// fit within 150 by 25, reduced to at most sixteen colors and each color is
// assigned a glyph by its lightness rank.
func FromImage(m image.Image) *ehex2.Image {
	src := fit(m)
	b := src.Bounds()
	if b.Empty() {
		return ehex2.New(0, 0)
	}

	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, glyph.PaletteSize), src)
	if len(p) == 0 {
		return ehex2.New(b.Dx(), b.Dy())
	}

	pm := image.NewPaletted(b, p)
	draw.Draw(pm, b, src, b.Min, draw.Src)

	indices := rankPalette(pm.Palette)

	dst := ehex2.New(b.Dx(), b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			dst.SetIndex(x, y, indices[pm.ColorIndexAt(x, y)])
		}
	}
	return dst
}

// FromImageV1 copies m into a first generation image after scaling it to
// fit within 150 by 25.
func FromImageV1(m image.Image) *ehex1.Image {
	src := fit(m)
	b := src.Bounds()

	dst := ehex1.New(b.Dx(), b.Dy())
	draw.Draw(dst, b, src, b.Min, draw.Src)
	return dst
}

// ImportRaster reads a PNG, JPEG, GIF, BMP or EHEX file and converts it
// with FromImage.
func ImportRaster(path string) (*ehex2.Image, error) {
	m, err := imgio.Open(path)
	if err != nil {
		return nil, &IOError{Op: "import", Path: path, Err: err}
	}
	return FromImage(m), nil
}

// ImportRasterV1 reads a PNG, JPEG, GIF, BMP or EHEX file and converts it
// with FromImageV1.
func ImportRasterV1(path string) (*ehex1.Image, error) {
	m, err := imgio.Open(path)
	if err != nil {
		return nil, &IOError{Op: "import", Path: path, Err: err}
	}
	return FromImageV1(m), nil
}

// ExportRaster writes c to path as a PNG with every pixel enlarged to a
// scale by scale block.
func ExportRaster(path string, c Canvas, scale int) error {
	if c.Width() == 0 || c.Height() == 0 {
		return codec.ErrEmpty
	}
	if scale < 1 {
		scale = 1
	}

	out := imaging.Resize(c, c.Width()*scale, c.Height()*scale, imaging.NearestNeighbor)
	if err := imgio.Save(path, out, imgio.PNGEncoder()); err != nil {
		return &IOError{Op: "export", Path: path, Err: err}
	}
	return nil
}
