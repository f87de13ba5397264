package cte

import (
	"image"
	"image/color"
	"io"
)

// Image is a decoded CTE texture. Format records how the pixels were packed
// so that the image can be written back the same way.
type Image struct {
	*image.NRGBA
	Format Format
}

// Encode writes the image to w using its original format.
func (m *Image) Encode(w io.Writer) error {
	return Encode(w, m.NRGBA, m.Format)
}

type decoder struct {
	r io.Reader

	header Header
	image  *image.NRGBA

	// One block of pixel data
	tmp [blockPixels]byte
}

func (d *decoder) readBlock(bx, by int) error {
	if err := readFull(d.r, d.tmp[:]); err != nil {
		return err
	}

	for i, v := range d.tmp {
		p := blockOrder[i]
		d.image.SetNRGBA(bx*blockWidth+p.x, by*blockHeight+p.y, d.header.Format.Unpack(v))
	}

	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	var err error
	if d.header, err = ReadHeader(r); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	if d.header.Width > maxDimension || d.header.Height > maxDimension || uint64(d.header.Width)*uint64(d.header.Height) > maxPixels {
		return &TooLargeError{Width: d.header.Width, Height: d.header.Height}
	}

	width, height := int(d.header.Width), int(d.header.Height)
	d.image = image.NewNRGBA(image.Rect(0, 0, width, height))

	// Rows of blocks are stored from the bottom of the image upwards
	for by := height/blockHeight - 1; by >= 0; by-- {
		for bx := 0; bx < width/blockWidth; bx++ {
			if err := d.readBlock(bx, by); err != nil {
				return err
			}
		}
	}

	return nil
}

// DecodeImage reads a CTE texture from r.
func DecodeImage(r io.Reader) (*Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return &Image{
		NRGBA:  d.image,
		Format: d.header.Format,
	}, nil
}

// Decode reads a CTE texture from r and returns it as an image.Image. The
// concrete type is *Image.
func Decode(r io.Reader) (image.Image, error) {
	m, err := DecodeImage(r)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeConfig returns the color model and dimensions of a CTE texture
// without decoding the pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.NRGBAModel,
		Width:      int(d.header.Width),
		Height:     int(d.header.Height),
	}, nil
}
