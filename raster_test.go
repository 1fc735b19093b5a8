package ehex

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/ehex/codec"
	"github.com/bodgit/ehex/ehex2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func halves(w, h int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{0, 0, 0, 255}
			if x >= w/2 {
				c = color.NRGBA{255, 255, 255, 255}
			}
			m.SetNRGBA(x, y, c)
		}
	}
	return m
}

func writePNG(t *testing.T, path string, m image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))
}

func TestRankPalette(t *testing.T) {
	p := color.Palette{
		color.NRGBA{255, 255, 255, 255},
		color.NRGBA{0, 0, 0, 255},
		color.NRGBA{0, 0, 0, 0},
		color.NRGBA{128, 128, 128, 255},
	}

	assert.Equal(t, []uint8{15, 0, 0, 7}, rankPalette(p))
	assert.Equal(t, []uint8{15}, rankPalette(color.Palette{color.White}))
	assert.Equal(t, []uint8{0}, rankPalette(color.Palette{color.Transparent}))
}

func TestFromImage(t *testing.T) {
	m := FromImage(halves(4, 2))

	require.Equal(t, 4, m.Width())
	require.Equal(t, 2, m.Height())
	for y := 0; y < 2; y++ {
		assert.Equal(t, uint8(0), m.Index(0, y))
		assert.Equal(t, m.Index(0, y), m.Index(1, y))
		assert.Equal(t, m.Index(2, y), m.Index(3, y))
		assert.Greater(t, m.Index(3, y), m.Index(0, y))
	}
}

func TestFromImage_Fit(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{300, 50, 150, 25},
		{100, 100, 25, 25},
		{10, 5, 10, 5},
		{0, 0, 0, 0},
	}

	for _, tt := range tests {
		m := FromImage(image.NewNRGBA(image.Rect(0, 0, tt.w, tt.h)))
		assert.Equal(t, tt.wantW, m.Width(), "%dx%d", tt.w, tt.h)
		assert.Equal(t, tt.wantH, m.Height(), "%dx%d", tt.w, tt.h)
	}
}

func TestFromImageV1(t *testing.T) {
	m := FromImageV1(halves(400, 10))

	assert.Equal(t, 150, m.Width())
	assert.Equal(t, 4, m.Height())
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, m.Pixel(0, 0))
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, m.Pixel(149, 3))
}

func TestImportRaster(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "halves.png")
	writePNG(t, path, halves(8, 4))

	m, err := ImportRaster(path)
	require.NoError(t, err)
	assert.Equal(t, 8, m.Width())
	assert.Equal(t, 4, m.Height())
	assert.Equal(t, uint8(0), m.Index(0, 0))

	v1, err := ImportRasterV1(path)
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, v1.Pixel(7, 3))
}

func TestImportRaster_Ehex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src.ehex")
	src := ehex2.New(6, 3)
	src.Fill(image.Rect(3, 0, 6, 3), 15)
	require.NoError(t, WriteFile(path, src))

	m, err := ImportRaster(path)
	require.NoError(t, err)
	assert.Equal(t, 6, m.Width())
	assert.Equal(t, 3, m.Height())
	assert.Equal(t, uint8(0), m.Index(0, 0))
	assert.Greater(t, m.Index(5, 2), uint8(0))
}

func TestImportRaster_Missing(t *testing.T) {
	_, err := ImportRaster(filepath.Join(t.TempDir(), "missing.png"))

	var ioe *IOError
	require.True(t, errors.As(err, &ioe), "got %v", err)
	assert.Equal(t, "import", ioe.Op)
}

func TestExportRaster(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	m := ehex2.New(2, 1)
	m.SetIndex(1, 0, 15)

	require.NoError(t, ExportRaster(path, m, 4))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	out, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), out.Bounds())
	assert.Equal(t, color.NRGBA{0, 0, 0, 255}, color.NRGBAModel.Convert(out.At(3, 3)))
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, color.NRGBAModel.Convert(out.At(4, 0)))
}

func TestExportRaster_Empty(t *testing.T) {
	assert.Equal(t, codec.ErrEmpty, ExportRaster(filepath.Join(t.TempDir(), "out.png"), ehex2.New(0, 0), 1))
}
