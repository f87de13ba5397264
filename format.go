package cte

import (
	"fmt"
	"image/color"
	"sort"
	"strings"
)

// Format identifies how the pixel data of a CTE file is packed. The value is
// the identifier stored in the file header.
type Format uint32

const (
	// A8 packs each pixel into a single byte; a 4-bit luminance shared by
	// the red, green and blue channels and a 4-bit alpha.
	A8 Format = 8
)

type variant struct {
	name   string
	bits   uint32
	pack   func(color.NRGBA) byte
	unpack func(byte) color.NRGBA
}

var variants = map[Format]variant{
	A8: {
		name:   "A8",
		bits:   8,
		pack:   packA8,
		unpack: unpackA8,
	},
}

// Only the alpha is scaled up to 8 bits, the luminance keeps its 4-bit range.
func unpackA8(v byte) color.NRGBA {
	l := v >> 4
	return color.NRGBA{l, l, l, (v & 0x0f) << 4}
}

func packA8(c color.NRGBA) byte {
	l := (uint32(c.R) + uint32(c.G) + uint32(c.B)) / 3
	return byte(l<<4) + c.A>>4
}

func lookupFormat(id uint32) (Format, error) {
	if _, ok := variants[Format(id)]; !ok {
		return 0, &UnsupportedFormatError{ID: id}
	}
	return Format(id), nil
}

// ParseFormat returns the Format with the given name, ignoring case.
func ParseFormat(name string) (Format, error) {
	for f, v := range variants {
		if strings.EqualFold(v.name, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("cte: unknown format %q", name)
}

// Formats returns every supported Format, ordered by identifier.
func Formats() []Format {
	formats := make([]Format, 0, len(variants))
	for f := range variants {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Supported reports whether f is a known format.
func (f Format) Supported() bool {
	_, ok := variants[f]
	return ok
}

// BitsPerPixel returns the number of bits each pixel occupies in the pixel
// data, as recorded in the file header. It returns 0 for an unsupported
// format.
func (f Format) BitsPerPixel() uint32 {
	return variants[f].bits
}

// Pack converts c into its packed representation. It returns 0 for an
// unsupported format.
func (f Format) Pack(c color.NRGBA) byte {
	v, ok := variants[f]
	if !ok {
		return 0
	}
	return v.pack(c)
}

// Unpack converts the packed value v into a color. It returns the zero color
// for an unsupported format.
func (f Format) Unpack(v byte) color.NRGBA {
	vr, ok := variants[f]
	if !ok {
		return color.NRGBA{}
	}
	return vr.unpack(v)
}

func (f Format) String() string {
	if v, ok := variants[f]; ok {
		return v.name
	}
	return fmt.Sprintf("Format(%d)", uint32(f))
}
