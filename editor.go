package ehex

import (
	"bytes"
	"errors"
	"image"
	"os"

	"github.com/bodgit/ehex/ehex2"
	"github.com/sirupsen/logrus"
)

// Size of the canvas an Editor starts with.
const (
	DefaultWidth  = 32
	DefaultHeight = 16
)

// ErrNoPath is returned by SaveToPath when no path is given and the image
// was never loaded or saved.
var ErrNoPath = errors.New("ehex: no path to save to")

// Editor owns the image being edited. It is not safe for concurrent use.
type Editor struct {
	img    *ehex2.Image
	path   string
	dirty  bool
	logger logrus.FieldLogger
}

// NewEditor returns an editor holding a blank DefaultWidth by
// DefaultHeight image. A nil logger discards all output.
func NewEditor(logger logrus.FieldLogger) *Editor {
	if logger == nil {
		logger = discardLogger()
	}
	e := &Editor{
		logger: logger,
	}
	e.NewImage(DefaultWidth, DefaultHeight)
	return e
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

// Image returns the image being edited.
func (e *Editor) Image() *ehex2.Image {
	return e.img
}

// Path returns the file the image was last loaded from or saved to.
func (e *Editor) Path() string {
	return e.path
}

// Dirty reports whether the image changed since it was created, loaded or
// saved.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// NewImage replaces the image with a blank one. The size is clamped to
// between 1 by 1 and 150 by 25.
func (e *Editor) NewImage(width, height int) {
	e.img = ehex2.New(atLeastOne(width), atLeastOne(height))
	e.path = ""
	e.dirty = false
	e.logger.WithFields(logrus.Fields{
		"width":  e.img.Width(),
		"height": e.img.Height(),
	}).Debug("New image")
}

// LoadFromPath replaces the image with the one stored at path. On failure
// the current image is kept.
func (e *Editor) LoadFromPath(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return &IOError{Op: "load", Path: path, Err: err}
	}

	img, err := ehex2.Decode(bytes.NewReader(b))
	if err != nil {
		e.logger.WithError(err).WithField("path", path).Debug("Load failed")
		return err
	}

	e.img = img
	e.path = path
	e.dirty = false
	e.logger.WithFields(logrus.Fields{
		"path":   path,
		"width":  img.Width(),
		"height": img.Height(),
	}).Info("Loaded image")

	return nil
}

// SaveToPath writes the image to path, or to Path if path is empty.
func (e *Editor) SaveToPath(path string) error {
	if path == "" {
		path = e.path
	}
	if path == "" {
		return ErrNoPath
	}

	if err := WriteFile(path, e.img); err != nil {
		return err
	}

	e.path = path
	e.dirty = false
	e.logger.WithField("path", path).Info("Saved image")

	return nil
}

// PaintCell sets the palette index at (x, y). Cells outside the canvas and
// indices above 15 are ignored.
func (e *Editor) PaintCell(x, y int, v uint8) {
	if !(image.Point{x, y}).In(e.img.Bounds()) || v > ehex2.MaxIndex {
		return
	}
	e.img.SetIndex(x, y, v)
	e.dirty = true
}

// BrushRect returns the square painted by a brush of the given size
// centred on (x, y). Sizes below 1 are treated as 1.
func BrushRect(x, y, size int) image.Rectangle {
	size = atLeastOne(size)
	x0, y0 := x-(size-1)/2, y-(size-1)/2
	return image.Rect(x0, y0, x0+size, y0+size)
}

// PaintBrush paints every cell of BrushRect(x, y, size) that lies on the
// canvas.
func (e *Editor) PaintBrush(x, y, size int, v uint8) {
	r := BrushRect(x, y, size).Intersect(e.img.Bounds())
	if r.Empty() || v > ehex2.MaxIndex {
		return
	}
	e.img.Fill(r, v)
	e.dirty = true
}

// ResizeCanvas changes the canvas size, clamped to between 1 by 1 and 150
// by 25. Pixels outside the new size are lost.
func (e *Editor) ResizeCanvas(width, height int) {
	e.img.Resize(atLeastOne(width), atLeastOne(height))
	e.dirty = true
	e.logger.WithFields(logrus.Fields{
		"width":  e.img.Width(),
		"height": e.img.Height(),
	}).Debug("Resized canvas")
}

// CellValue returns the palette index at (x, y), 0 outside the canvas.
func (e *Editor) CellValue(x, y int) uint8 {
	return e.img.Index(x, y)
}

// CellGlyph returns the glyph drawn for (x, y).
func (e *Editor) CellGlyph(x, y int) rune {
	return e.img.Glyph(x, y)
}

// Render draws the whole canvas as text.
func (e *Editor) Render() string {
	return Render(e.img)
}
