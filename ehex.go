/*
Package ehex is a library for creating, editing and cataloguing EHEX pixel
art images.

Editor holds a single second generation image and exposes the painting
operations used by an interactive front end. Open, Decode and WriteFile
work with either generation, ConvertV1 upgrades first generation images,
ImportRaster and ExportRaster move images to and from common raster formats
and Library keeps a SQLite catalog of images.
*/
package ehex

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"strings"

	"github.com/bodgit/ehex/codec"
	"github.com/bodgit/ehex/ehex1"
	"github.com/bodgit/ehex/ehex2"
	"github.com/sirupsen/logrus"
)

// Format names as registered with the image package.
const (
	FormatV1 = "ehex"
	FormatV2 = "ehex2"
)

// Canvas is implemented by the images of both generations.
type Canvas interface {
	image.Image
	Width() int
	Height() int
	Glyph(x, y int) rune
}

// An IOError reports a failure reading or writing a file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return "ehex: " + e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func magic(b []byte) string {
	line, _, _ := bytes.Cut(b, []byte("\n"))
	return strings.TrimSpace(string(line))
}

// Decode reads an image of either generation from b and returns it along
// with its format name.
func Decode(b []byte) (Canvas, string, error) {
	switch m := magic(b); m {
	case codec.MagicV1:
		img, err := ehex1.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, "", err
		}
		return img, FormatV1, nil
	case codec.MagicV2:
		img, err := ehex2.Decode(bytes.NewReader(b))
		if err != nil {
			return nil, "", err
		}
		return img, FormatV2, nil
	default:
		return nil, "", codec.FormatError(fmt.Sprintf("unrecognised magic %q", m))
	}
}

// Open reads the whole file and decodes it with Decode.
func Open(path string) (Canvas, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", &IOError{Op: "open", Path: path, Err: err}
	}
	return Decode(b)
}

// Encode writes c to w in the format of its generation.
func Encode(w io.Writer, c Canvas) error {
	switch m := c.(type) {
	case *ehex1.Image:
		return ehex1.Encode(w, m)
	case *ehex2.Image:
		return ehex2.Encode(w, m)
	default:
		return fmt.Errorf("ehex: cannot encode %T", c)
	}
}

// WriteFile encodes c completely and then writes it to path in one call.
func WriteFile(path string, c Canvas) error {
	var b bytes.Buffer
	if err := Encode(&b, c); err != nil {
		return err
	}
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		return &IOError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// Render draws c as text, one line of glyphs per pixel row.
func Render(c Canvas) string {
	var sb strings.Builder
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			sb.WriteRune(c.Glyph(x, y))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
