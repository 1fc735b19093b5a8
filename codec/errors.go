package codec

import (
	"errors"
	"fmt"
)

// ErrEmpty is returned when encoding an image with no pixels, which could
// not be decoded again.
var ErrEmpty = errors.New("ehex: image has no pixels")

// A FormatError reports that the input is not a valid EHEX image.
type FormatError string

func (e FormatError) Error() string {
	return "ehex: invalid format: " + string(e)
}

// An UnsupportedVersionError reports a recognised image generation or
// version that the decoder does not implement.
type UnsupportedVersionError struct {
	// Magic is the first line of the input.
	Magic string
	// Version is the version found.
	Version int
	// Want is the version the decoder implements.
	Want int
}

// Legacy reports whether the input was a first generation image handed to a
// later generation decoder.
func (e *UnsupportedVersionError) Legacy() bool {
	return e.Magic == MagicV1 && e.Want > 1
}

func (e *UnsupportedVersionError) Error() string {
	if e.Legacy() {
		return "ehex: legacy EHEX (v1) images are not supported, convert to EHEX2 first"
	}
	return fmt.Sprintf("ehex: unsupported version: %d (expected %d)", e.Version, e.Want)
}

// A TruncatedDataError reports pixel data shorter than the header declares.
type TruncatedDataError struct {
	// Row is the short row, or -1 if whole rows are missing.
	Row int
	// Want and Got count characters in Row, or rows if Row is -1.
	Want int
	Got  int
}

func (e *TruncatedDataError) Error() string {
	if e.Row < 0 {
		return fmt.Sprintf("ehex: truncated pixel data: got %d of %d rows", e.Got, e.Want)
	}
	return fmt.Sprintf("ehex: truncated pixel data: row %d has %d of %d characters", e.Row, e.Got, e.Want)
}
