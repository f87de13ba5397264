/*
Package raster loads and saves images in the common formats, choosing the
encoder from the file extension.

Decoding supports PNG, GIF, JPEG, BMP, TIFF and CTE files regardless of the
extension.
*/
package raster

import (
	"errors"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/cte"
	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ErrUnknownExtension is returned by Save when the file extension doesn't
// map to a supported format.
var ErrUnknownExtension = errors.New("raster: unknown file extension")

type encodeFunc func(io.Writer, image.Image) error

func encodeGIF(w io.Writer, m image.Image) error {
	// A decoded A8 texture never uses more than 256 colors
	return gif.Encode(w, m, &gif.Options{
		NumColors: 256,
		Quantizer: &quantize.MedianCutQuantizer{},
	})
}

func encodeJPEG(w io.Writer, m image.Image) error {
	return jpeg.Encode(w, m, &jpeg.Options{Quality: 95})
}

func encodeCTE(w io.Writer, m image.Image) error {
	f := cte.A8
	if cm, ok := m.(*cte.Image); ok {
		f = cm.Format
	}
	return cte.Encode(w, m, f)
}

var encoders = map[string]encodeFunc{
	".png":  png.Encode,
	".gif":  encodeGIF,
	".jpg":  encodeJPEG,
	".jpeg": encodeJPEG,
	".bmp":  bmp.Encode,
	".tif":  func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) },
	".tiff": func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) },
	".img":  encodeCTE,
	".cte":  encodeCTE,
}

// Supported reports whether Save can write a file with the given name.
func Supported(file string) bool {
	_, ok := encoders[strings.ToLower(filepath.Ext(file))]
	return ok
}

// Load decodes the image stored in file.
func Load(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	return m, err
}

// Save encodes m to file, the format is determined by the file extension.
// The file is removed again if encoding fails.
func Save(file string, m image.Image) (err error) {
	encode, ok := encoders[strings.ToLower(filepath.Ext(file))]
	if !ok {
		return ErrUnknownExtension
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(file)
		}
	}()

	return encode(f, m)
}
