package ehex1

import (
	"image/color"
	"io"

	"github.com/bodgit/ehex/codec"
)

// Encode writes the Image m to w in EHEX format.
func Encode(w io.Writer, m *Image) error {
	return codec.Encode[color.NRGBA](w, pixelCodec{}, m.g)
}
