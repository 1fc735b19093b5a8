package ehex2

import (
	"image"
	"io"

	"github.com/bodgit/ehex/codec"
)

func init() {
	image.RegisterFormat("ehex2", codec.MagicV2, func(r io.Reader) (image.Image, error) {
		return Decode(r)
	}, DecodeConfig)
}

// Decode reads an EHEX2 image from r.
func Decode(r io.Reader) (*Image, error) {
	g, _, err := codec.Decode[uint8](r, pixelCodec{}, 0)
	if err != nil {
		return nil, err
	}
	return &Image{g: g}, nil
}

// DecodeConfig returns the color model and dimensions of an EHEX2 image
// without decoding the pixel rows.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := codec.DecodeConfig[uint8](r, pixelCodec{})
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: Gray,
		Width:      h.Width,
		Height:     h.Height,
	}, nil
}
