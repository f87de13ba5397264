package cte

import (
	"encoding/binary"
	"io"
)

// Header is the fixed header found at the start of every CTE file.
type Header struct {
	Format    Format
	Width     uint32
	Height    uint32
	PixelBits uint32
	Reserved  uint32
	// Offset is where the pixel data starts, relative to the start of the
	// file.
	Offset uint32
}

// Skip returns the number of padding bytes between the header and the pixel
// data. It is zero if Offset points inside the header.
func (h Header) Skip() uint32 {
	if h.Offset < headerSize {
		return 0
	}
	return h.Offset - headerSize
}

type rawHeader struct {
	Format    uint32
	Width     uint32
	Height    uint32
	PixelBits uint32
	Reserved  uint32
	Offset    uint32
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

func checkDimensions(width, height uint32) error {
	if width%blockWidth != 0 {
		return &WidthError{Width: width}
	}
	if height%blockHeight != 0 {
		return &HeightError{Height: height}
	}
	return nil
}

// ReadHeader reads and validates a CTE header from r. On success r is left
// positioned at the start of the pixel data.
func ReadHeader(r io.Reader) (Header, error) {
	var m [len(Magic)]byte
	if err := readFull(r, m[:]); err != nil {
		return Header{}, err
	}
	if string(m[:]) != Magic {
		return Header{}, &InvalidHeaderError{Magic: m}
	}

	var raw rawHeader
	if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Header{}, err
	}

	f, err := lookupFormat(raw.Format)
	if err != nil {
		return Header{}, err
	}

	h := Header{
		Format:    f,
		Width:     raw.Width,
		Height:    raw.Height,
		PixelBits: raw.PixelBits,
		Reserved:  raw.Reserved,
		Offset:    raw.Offset,
	}

	if h.PixelBits != f.BitsPerPixel() {
		return Header{}, &PixelLengthError{Length: h.PixelBits, Format: f}
	}

	if err := checkDimensions(h.Width, h.Height); err != nil {
		return Header{}, err
	}

	if h.Offset < headerSize {
		return Header{}, &PayloadStartsTooSoonError{Offset: h.Offset}
	}

	// The padding isn't interpreted
	if _, err := io.CopyN(io.Discard, r, int64(h.Skip())); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return Header{}, err
	}

	return h, nil
}

// WriteHeader writes a CTE header for an image of the given format and
// dimensions to w. The header is always padded to 128 bytes.
func WriteHeader(w io.Writer, f Format, width, height int) error {
	if !f.Supported() {
		return &UnsupportedFormatError{ID: uint32(f)}
	}
	if err := checkDimensions(uint32(width), uint32(height)); err != nil {
		return err
	}

	var b [payloadSize]byte
	copy(b[:], Magic)
	binary.LittleEndian.PutUint32(b[4:], uint32(f))
	binary.LittleEndian.PutUint32(b[8:], uint32(width))
	binary.LittleEndian.PutUint32(b[12:], uint32(height))
	binary.LittleEndian.PutUint32(b[16:], f.BitsPerPixel())
	binary.LittleEndian.PutUint32(b[20:], 0)
	binary.LittleEndian.PutUint32(b[24:], payloadSize)

	_, err := w.Write(b[:])
	return err
}
