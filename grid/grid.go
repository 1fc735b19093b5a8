/*
Package grid implements the rectangular pixel store shared by both EHEX
generations.

A Grid is parameterised over the pixel value type so the same bounds
checking, painting and resizing logic serves RGBA pixels and palette
indices alike. Reads outside the grid return the default value and writes
outside the grid are dropped; GetChecked and SetChecked are provided for
callers that would rather be told.
*/
package grid

import (
	"errors"
	"image"
)

// ErrOutOfBounds is returned by the checked accessors when the coordinates
// fall outside the grid.
var ErrOutOfBounds = errors.New("grid: coordinates out of bounds")

// Limit is the largest size a grid may be resized to. A zero value for
// either axis leaves that axis unbounded.
type Limit struct {
	Width  int
	Height int
}

// Clamp restricts width and height to the range [0, limit].
func Clamp(width, height int, limit Limit) (int, int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if limit.Width > 0 && width > limit.Width {
		width = limit.Width
	}
	if limit.Height > 0 && height > limit.Height {
		height = limit.Height
	}
	return width, height
}

// Grid is a width by height array of pixel values stored row-major.
type Grid[T comparable] struct {
	width  int
	height int
	fill   T
	limit  Limit
	pix    []T
}

// New returns a grid of the given size with every cell set to fill.
// Negative dimensions are treated as zero; the size is not clamped to
// limit, which only applies to Resize.
func New[T comparable](width, height int, fill T, limit Limit) *Grid[T] {
	width, height = Clamp(width, height, Limit{})
	g := &Grid[T]{
		width:  width,
		height: height,
		fill:   fill,
		limit:  limit,
		pix:    make([]T, width*height),
	}
	for i := range g.pix {
		g.pix[i] = fill
	}
	return g
}

func (g *Grid[T]) Width() int {
	return g.width
}

func (g *Grid[T]) Height() int {
	return g.height
}

// Default returns the value used for new and out of bounds cells.
func (g *Grid[T]) Default() T {
	return g.fill
}

func (g *Grid[T]) Limit() Limit {
	return g.limit
}

// Bounds returns the grid area with its origin at (0, 0).
func (g *Grid[T]) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

func (g *Grid[T]) In(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid[T]) offset(x, y int) int {
	return y*g.width + x
}

// Get returns the value at (x, y), or the default value if (x, y) is
// outside the grid.
func (g *Grid[T]) Get(x, y int) T {
	if !g.In(x, y) {
		return g.fill
	}
	return g.pix[g.offset(x, y)]
}

// Set stores v at (x, y). Writes outside the grid are silently dropped.
func (g *Grid[T]) Set(x, y int, v T) {
	if !g.In(x, y) {
		return
	}
	g.pix[g.offset(x, y)] = v
}

// GetChecked is like Get but returns ErrOutOfBounds instead of the default
// value.
func (g *Grid[T]) GetChecked(x, y int) (T, error) {
	if !g.In(x, y) {
		return g.fill, ErrOutOfBounds
	}
	return g.pix[g.offset(x, y)], nil
}

// SetChecked is like Set but returns ErrOutOfBounds instead of dropping
// the write.
func (g *Grid[T]) SetChecked(x, y int, v T) error {
	if !g.In(x, y) {
		return ErrOutOfBounds
	}
	g.pix[g.offset(x, y)] = v
	return nil
}

// Fill sets every cell of r that lies inside the grid to v.
func (g *Grid[T]) Fill(r image.Rectangle, v T) {
	r = r.Intersect(g.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			g.pix[g.offset(x, y)] = v
		}
	}
}

// Resize replaces the grid contents with a grid of the new size, clamped to
// the grid's limit. Cells present in both the old and new sizes keep their
// value, newly exposed cells take the default value and anything beyond the
// new size is discarded.
func (g *Grid[T]) Resize(width, height int) {
	width, height = Clamp(width, height, g.limit)

	n := New(width, height, g.fill, g.limit)

	w, h := min(width, g.width), min(height, g.height)
	for y := 0; y < h; y++ {
		copy(n.pix[y*width:y*width+w], g.pix[y*g.width:y*g.width+w])
	}

	*g = *n
}

// Row returns a copy of row y, or nil if y is outside the grid.
func (g *Grid[T]) Row(y int) []T {
	if y < 0 || y >= g.height {
		return nil
	}
	row := make([]T, g.width)
	copy(row, g.pix[y*g.width:(y+1)*g.width])
	return row
}

func (g *Grid[T]) Clone() *Grid[T] {
	dup := *g
	dup.pix = append([]T(nil), g.pix...)
	return &dup
}

// Equal reports whether both grids have the same size and cell values.
func (g *Grid[T]) Equal(o *Grid[T]) bool {
	if g.width != o.width || g.height != o.height {
		return false
	}
	for i := range g.pix {
		if g.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}
