package ehex

import (
	"image/color"
	"testing"

	"github.com/bodgit/ehex/codec"
	"github.com/bodgit/ehex/ehex1"
	"github.com/stretchr/testify/assert"
)

func TestLightnessIndex(t *testing.T) {
	tests := []struct {
		name string
		c    color.Color
		want uint8
	}{
		{"black", color.NRGBA{0, 0, 0, 255}, 0},
		{"white", color.NRGBA{255, 255, 255, 255}, 15},
		{"transparent", color.NRGBA{255, 255, 255, 0}, 0},
		{"gray", color.Gray{Y: 0xff}, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LightnessIndex(tt.c))
		})
	}
}

func TestLightnessIndex_Ordering(t *testing.T) {
	var last uint8
	for v := 0; v < 256; v += 15 {
		i := LightnessIndex(color.Gray{Y: uint8(v)})
		assert.GreaterOrEqual(t, int(i), int(last), "gray %d", v)
		last = i
	}
}

func TestConvertV1(t *testing.T) {
	src := ehex1.New(3, 1)
	src.SetPixel(1, 0, color.NRGBA{128, 128, 128, 255})
	src.SetPixel(2, 0, color.NRGBA{255, 255, 255, 255})

	dst := ConvertV1(src)

	assert.Equal(t, 3, dst.Width())
	assert.Equal(t, 1, dst.Height())
	assert.Equal(t, uint8(0), dst.Index(0, 0))
	assert.Equal(t, uint8(15), dst.Index(2, 0))
	assert.Greater(t, dst.Index(1, 0), dst.Index(0, 0))
	assert.Less(t, dst.Index(1, 0), dst.Index(2, 0))
}

func TestConvertV1_Cropped(t *testing.T) {
	src := ehex1.New(200, 30)
	src.SetPixel(149, 24, color.NRGBA{255, 255, 255, 255})

	dst := ConvertV1(src)

	assert.Equal(t, codec.MaxWidth, dst.Width())
	assert.Equal(t, codec.MaxHeight, dst.Height())
	assert.Equal(t, uint8(15), dst.Index(149, 24))
}
