package ehex2

import (
	"io"

	"github.com/bodgit/ehex/codec"
)

// Encode writes the Image m to w in EHEX2 format.
func Encode(w io.Writer, m *Image) error {
	return codec.Encode[uint8](w, pixelCodec{}, m.g)
}
