package cte

import "fmt"

// InvalidHeaderError is returned when a file does not start with the CTE
// magic bytes.
type InvalidHeaderError struct {
	Magic [4]byte
}

func (e *InvalidHeaderError) Error() string {
	return fmt.Sprintf("cte: invalid magic % x, expected % x", e.Magic[:], Magic)
}

// UnsupportedFormatError is returned for a format identifier that isn't
// known.
type UnsupportedFormatError struct {
	ID uint32
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("cte: unsupported format %d", e.ID)
}

// PayloadStartsTooSoonError is returned when the header claims the pixel
// data starts inside the header itself.
type PayloadStartsTooSoonError struct {
	Offset uint32
}

func (e *PayloadStartsTooSoonError) Error() string {
	return fmt.Sprintf("cte: pixel data offset %d is inside the %d byte header", e.Offset, headerSize)
}

// PixelLengthError is returned when the bits per pixel recorded in the header
// disagree with the format.
type PixelLengthError struct {
	Length uint32
	Format Format
}

func (e *PixelLengthError) Error() string {
	return fmt.Sprintf("cte: %d bits per pixel is invalid for format %s, expected %d", e.Length, e.Format, e.Format.BitsPerPixel())
}

// WidthError is returned when the width is not a multiple of the block width.
type WidthError struct {
	Width uint32
}

func (e *WidthError) Error() string {
	return fmt.Sprintf("cte: width %d is not a multiple of %d", e.Width, blockWidth)
}

// TooLargeError is returned when the header describes an image too large
// to decode.
type TooLargeError struct {
	Width  uint32
	Height uint32
}

func (e *TooLargeError) Error() string {
	return fmt.Sprintf("cte: image dimensions %dx%d are too large", e.Width, e.Height)
}

// HeightError is returned when the height is not a multiple of the block
// height.
type HeightError struct {
	Height uint32
}

func (e *HeightError) Error() string {
	return fmt.Sprintf("cte: height %d is not a multiple of %d", e.Height, blockHeight)
}
