package cte

type point struct {
	x, y int
}

// Offsets of the four quadrants of an 8x8, 4x4 and 2x2 square in the order
// they are stored. The two quadrants with the larger y come first.
var quadrants = [...][4]point{
	{{0, 4}, {4, 4}, {0, 0}, {4, 0}},
	{{0, 2}, {2, 2}, {0, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {0, 0}, {1, 0}},
}

// blockOrder maps the index of a pixel within a stored block to its position
// within the 8 by 8 block.
var blockOrder = buildBlockOrder()

func buildBlockOrder() (order [blockPixels]point) {
	i := 0
	for _, outer := range quadrants[0] {
		for _, middle := range quadrants[1] {
			for _, inner := range quadrants[2] {
				order[i] = point{
					outer.x + middle.x + inner.x,
					outer.y + middle.y + inner.y,
				}
				i++
			}
		}
	}
	return
}
