package codec

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bodgit/ehex/grid"
)

type encoder[T comparable] struct {
	w  *bufio.Writer
	pc PixelCodec[T]
	f  Format
}

func (e *encoder[T]) writeHeader(h Header) error {
	if _, err := fmt.Fprintf(e.w, "%s\n%s%d\n%s%d%s%d\n", h.Magic, versionPrefix, h.Version, sizePrefix, h.Width, sizeSeparator, h.Height); err != nil {
		return err
	}
	if h.Channels > 0 {
		if _, err := fmt.Fprintf(e.w, "%s%d\n", channelsPrefix, h.Channels); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(e.w, PixelsMarker)
	return err
}

func (e *encoder[T]) writeRows(g *grid.Grid[T]) error {
	row := make([]byte, 0, g.Width()*e.f.Digits+1)
	for y := 0; y < g.Height(); y++ {
		row = row[:0]
		for x := 0; x < g.Width(); x++ {
			row = e.pc.AppendPixel(row, g.Get(x, y))
		}
		row = append(row, '\n')
		if _, err := e.w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// HeaderFor returns the header written for g in format f.
func HeaderFor(f Format, width, height int) Header {
	return Header{
		Magic:    f.Magic,
		Version:  f.Version,
		Width:    width,
		Height:   height,
		Channels: f.Channels,
	}
}

// Encode writes g to w using the pixel groups produced by pc.
func Encode[T comparable](w io.Writer, pc PixelCodec[T], g *grid.Grid[T]) error {
	if g.Width() == 0 || g.Height() == 0 {
		return ErrEmpty
	}

	e := encoder[T]{
		w:  bufio.NewWriter(w),
		pc: pc,
		f:  pc.Format(),
	}

	if err := e.writeHeader(HeaderFor(e.f, g.Width(), g.Height())); err != nil {
		return err
	}
	if err := e.writeRows(g); err != nil {
		return err
	}

	return e.w.Flush()
}
