package codec

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bodgit/ehex/grid"
)

type decoder[T comparable] struct {
	s  *bufio.Scanner
	pc PixelCodec[T]
	f  Format

	header Header
}

func newDecoder[T comparable](r io.Reader, pc PixelCodec[T]) *decoder[T] {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, lineSlack), maxRowLength+lineSlack)
	return &decoder[T]{
		s:  s,
		pc: pc,
		f:  pc.Format(),
	}
}

// next returns the next line with surrounding whitespace, including any
// carriage return, removed. It returns io.EOF at the end of the input.
func (d *decoder[T]) next() (string, error) {
	if !d.s.Scan() {
		if err := d.s.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				return "", FormatError(fmt.Sprintf("line exceeds %d characters", maxRowLength))
			}
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(d.s.Text()), nil
}

func (d *decoder[T]) readMagic() error {
	line, err := d.next()
	if err != nil {
		if err == io.EOF {
			return FormatError("missing magic")
		}
		return err
	}
	d.header.Magic = line

	if line == d.f.Magic {
		return nil
	}
	if version, ok := knownMagic[line]; ok {
		return &UnsupportedVersionError{
			Magic:   line,
			Version: version,
			Want:    d.f.Version,
		}
	}
	return FormatError(fmt.Sprintf("unrecognised magic %q", line))
}

func parseVersion(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimPrefix(s, versionPrefix))
	if err != nil {
		return 0, FormatError(fmt.Sprintf("bad version %q", s))
	}
	return v, nil
}

func parseSize(s string) (int, int, error) {
	parts := strings.Split(strings.TrimPrefix(s, sizePrefix), sizeSeparator)
	if len(parts) != 2 {
		return 0, 0, FormatError(fmt.Sprintf("bad size %q", s))
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, FormatError(fmt.Sprintf("bad size %q", s))
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, FormatError(fmt.Sprintf("bad size %q", s))
	}
	if w <= 0 || h <= 0 {
		return 0, 0, FormatError(fmt.Sprintf("size %dx%d is not positive", w, h))
	}
	return w, h, nil
}

func parseChannels(s string) (int, error) {
	c, err := strconv.Atoi(strings.TrimPrefix(s, channelsPrefix))
	if err != nil {
		return 0, FormatError(fmt.Sprintf("bad channel count %q", s))
	}
	return c, nil
}

func (d *decoder[T]) readHeader() error {
	if err := d.readMagic(); err != nil {
		return err
	}

	var haveVersion, haveSize bool

header:
	for {
		line, err := d.next()
		if err != nil {
			if err == io.EOF {
				return FormatError("missing " + PixelsMarker + " marker")
			}
			return err
		}

		switch {
		case line == PixelsMarker:
			break header
		case strings.HasPrefix(line, sizePrefix):
			if d.header.Width, d.header.Height, err = parseSize(line); err != nil {
				return err
			}
			haveSize = true
		case strings.HasPrefix(line, channelsPrefix):
			if d.header.Channels, err = parseChannels(line); err != nil {
				return err
			}
		case strings.HasPrefix(line, versionPrefix):
			if d.header.Version, err = parseVersion(line); err != nil {
				return err
			}
			if d.header.Version != d.f.Version {
				return &UnsupportedVersionError{
					Magic:   d.header.Magic,
					Version: d.header.Version,
					Want:    d.f.Version,
				}
			}
			haveVersion = true
		}
	}

	if !haveVersion {
		return FormatError("missing version")
	}
	if !haveSize {
		return FormatError("missing size")
	}
	if d.header.Width > maxRowLength/d.f.Digits {
		return FormatError(fmt.Sprintf("row of %d pixels exceeds %d characters", d.header.Width, maxRowLength))
	}

	if d.f.Channels > 0 {
		switch d.header.Channels {
		case 0:
			d.header.Channels = d.f.Channels
		case d.f.Channels:
		default:
			return FormatError(fmt.Sprintf("unsupported channel count %d", d.header.Channels))
		}
	}

	return nil
}

// readRows parses the pixel rows in order. Storage grows with the rows
// actually read rather than the declared height.
func (d *decoder[T]) readRows() ([]T, error) {
	digits := d.f.Digits
	want := d.header.Width * digits

	var pix []T
	for y := 0; y < d.header.Height; y++ {
		line, err := d.next()
		if err != nil {
			if err == io.EOF {
				return nil, &TruncatedDataError{Row: -1, Want: d.header.Height, Got: y}
			}
			return nil, err
		}

		switch {
		case len(line) < want:
			return nil, &TruncatedDataError{Row: y, Want: want, Got: len(line)}
		case len(line) > want:
			return nil, FormatError(fmt.Sprintf("row %d has %d characters, want %d", y, len(line), want))
		}

		for x := 0; x < d.header.Width; x++ {
			v, err := d.pc.ParsePixel(line[x*digits : (x+1)*digits])
			if err != nil {
				return nil, FormatError(fmt.Sprintf("row %d column %d: %v", y, x, err))
			}
			pix = append(pix, v)
		}
	}

	return pix, nil
}

// DecodeConfig reads and validates only the header.
func DecodeConfig[T comparable](r io.Reader, pc PixelCodec[T]) (Header, error) {
	d := newDecoder(r, pc)
	if err := d.readHeader(); err != nil {
		return Header{}, err
	}
	return d.header, nil
}

// Decode reads a complete image. The grid is built once every row has been
// read, uses fill as its default value and is limited to Limit on resize;
// the decoded size itself is not clamped.
func Decode[T comparable](r io.Reader, pc PixelCodec[T], fill T) (*grid.Grid[T], Header, error) {
	d := newDecoder(r, pc)
	if err := d.readHeader(); err != nil {
		return nil, Header{}, err
	}

	pix, err := d.readRows()
	if err != nil {
		return nil, Header{}, err
	}

	w := d.header.Width
	g := grid.New(w, d.header.Height, fill, Limit)
	for i, v := range pix {
		g.Set(i%w, i/w, v)
	}

	return g, d.header, nil
}
