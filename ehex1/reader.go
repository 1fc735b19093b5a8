package ehex1

import (
	"image"
	"image/color"
	"io"

	"github.com/bodgit/ehex/codec"
)

func init() {
	decode := func(r io.Reader) (image.Image, error) {
		return Decode(r)
	}
	// The magic is a prefix of the second generation magic so the line
	// ending is part of it.
	image.RegisterFormat("ehex", codec.MagicV1+"\n", decode, DecodeConfig)
	image.RegisterFormat("ehex", codec.MagicV1+"\r", decode, DecodeConfig)
}

// Decode reads an EHEX image from r.
func Decode(r io.Reader) (*Image, error) {
	g, _, err := codec.Decode[color.NRGBA](r, pixelCodec{}, Background)
	if err != nil {
		return nil, err
	}
	return &Image{g: g}, nil
}

// DecodeConfig returns the color model and dimensions of an EHEX image
// without decoding the pixel rows.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := codec.DecodeConfig[color.NRGBA](r, pixelCodec{})
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      h.Width,
		Height:     h.Height,
	}, nil
}
