package cte

import (
	"image"
	"image/color"
	"io"
)

type encoder struct {
	w io.Writer
	m image.Image
	f Format

	// One block of pixel data
	tmp [blockPixels]byte
}

func (e *encoder) at(x, y int) color.NRGBA {
	b := e.m.Bounds()
	if nm, ok := e.m.(*image.NRGBA); ok {
		return nm.NRGBAAt(b.Min.X+x, b.Min.Y+y)
	}
	return color.NRGBAModel.Convert(e.m.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
}

func (e *encoder) writeBlock(bx, by int) error {
	for i, p := range blockOrder {
		e.tmp[i] = e.f.Pack(e.at(bx*blockWidth+p.x, by*blockHeight+p.y))
	}

	_, err := e.w.Write(e.tmp[:])
	return err
}

func (e *encoder) encode() error {
	b := e.m.Bounds()

	if err := WriteHeader(e.w, e.f, b.Dx(), b.Dy()); err != nil {
		return err
	}

	for by := b.Dy()/blockHeight - 1; by >= 0; by-- {
		for bx := 0; bx < b.Dx()/blockWidth; bx++ {
			if err := e.writeBlock(bx, by); err != nil {
				return err
			}
		}
	}

	return nil
}

// Encode writes the Image m to w as a CTE texture packed using format f. The
// width and height of m must both be a multiple of 8. Packing is lossy; only
// the upper four bits of the alpha channel are kept.
func Encode(w io.Writer, m image.Image, f Format) error {
	if cm, ok := m.(*Image); ok {
		m = cm.NRGBA
	}

	e := encoder{
		w: w,
		m: m,
		f: f,
	}

	return e.encode()
}
