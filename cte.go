/*
Package cte implements a decoder and encoder for the CTE texture format used
by Pokémon Super Mystery Dungeon.

A CTE file starts with a 28 byte header of little-endian 32-bit fields
following the four magic bytes "\x00cte": the format identifier, the width
and height in pixels, the number of bits per pixel, a reserved field and the
offset of the pixel data. Anything between the header and that offset is
padding.

The pixel data is split into 8 by 8 blocks. Blocks are stored left to right,
but the rows of blocks are stored bottom to top. Within each block the 64
pixels are stored in Z-order, recursively visiting the four quadrants of the
block, then of each 4 by 4 quadrant, then of each 2 by 2 quadrant.

Only the A8 format is supported, where each pixel is one byte holding a 4-bit
luminance in the upper nibble and a 4-bit alpha in the lower nibble.
*/
package cte

import "image"

const (
	blockWidth  = 8
	blockHeight = blockWidth
	blockPixels = blockWidth * blockHeight

	headerSize  = 28
	payloadSize = 128

	// Limits on the size of a decoded image
	maxDimension = 1 << 16
	maxPixels    = 1 << 26
)

// Magic is the signature at the start of every CTE file.
const Magic = "\x00cte"

func init() {
	image.RegisterFormat("cte", Magic, Decode, DecodeConfig)
}
