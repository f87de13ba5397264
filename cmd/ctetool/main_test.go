package main

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/cte"
	"github.com/bodgit/cte/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func run(t *testing.T, db string, args ...string) (string, error) {
	app := newApp(db)
	out := new(bytes.Buffer)
	app.Writer = out
	app.ErrWriter = new(bytes.Buffer)
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"ctetool"}, args...))
	return out.String(), err
}

func TestEncodeExtract(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "ctetool.db")

	m := image.NewNRGBA(image.Rect(0, 0, 16, 8))
	for x := 0; x < 16; x++ {
		m.SetNRGBA(x, 0, color.NRGBA{uint8(x), uint8(x), uint8(x), 0xf0})
	}
	input := filepath.Join(dir, "input.png")
	require.NoError(t, raster.Save(input, m))

	texture := filepath.Join(dir, "font.img")
	out, err := run(t, db, "encode", input, texture)
	require.NoError(t, err)
	assert.Contains(t, out, "using the A8 encoding")

	out, err = run(t, db, "info", texture)
	require.NoError(t, err)
	assert.Contains(t, out, "A8, 16x8, 8 bits per pixel, pixel data at offset 128")

	output := filepath.Join(dir, "output.png")
	out, err = run(t, db, "extract", texture, output)
	require.NoError(t, err)
	assert.Contains(t, out, "done")

	extracted, err := raster.Load(output)
	require.NoError(t, err)
	for x := 0; x < 16; x++ {
		assert.Equal(t, m.NRGBAAt(x, 0), color.NRGBAModel.Convert(extracted.At(x, 0)))
	}
}

func TestEncodeInvalid(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "ctetool.db")

	input := filepath.Join(dir, "odd.png")
	require.NoError(t, raster.Save(input, image.NewNRGBA(image.Rect(0, 0, 10, 8))))

	texture := filepath.Join(dir, "odd.img")
	_, err := run(t, db, "encode", input, texture)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "width 10 is not a multiple of 8")

	_, err = os.Stat(texture)
	assert.True(t, os.IsNotExist(err))

	_, err = run(t, db, "encode", "--format", "rgb565", input, texture)
	assert.Error(t, err)
}

func TestExtractInvalid(t *testing.T) {
	dir := t.TempDir()

	input := filepath.Join(dir, "input.png")
	require.NoError(t, raster.Save(input, image.NewNRGBA(image.Rect(0, 0, 8, 8))))

	_, err := run(t, filepath.Join(dir, "ctetool.db"), "extract", input, filepath.Join(dir, "output.png"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid magic")
}

func TestScanList(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(t.TempDir(), "ctetool.db")

	b := new(bytes.Buffer)
	require.NoError(t, cte.Encode(b, image.NewNRGBA(image.Rect(0, 0, 8, 16)), cte.A8))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "font.img"), b.Bytes(), 0o644))

	_, err := run(t, db, "scan", "--ext", "bmp", "--workers", "2", dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "font.bmp"))
	assert.NoError(t, err)

	out, err := run(t, db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "8x16")
	assert.Contains(t, out, filepath.Join(dir, "font.img"))
}
