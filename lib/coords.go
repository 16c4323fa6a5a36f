package lib

import "image"

// MapCoords are grid coordinates of a terrain cell.
type MapCoords struct {
	X, Y int
}

func (c MapCoords) Neighbour(d Direction) MapCoords {
	dx, dy := d.Offset()
	return MapCoords{c.X + dx, c.Y + dy}
}

// Projection is the 2:1 diamond mapping between grid and world pixel space.
// The projected point of a cell is the top vertex of its diamond.
type Projection struct {
	HalfWidth, HalfHeight int
}

func NewProjection(defs TerrainDefinitions) Projection {
	return Projection{defs.TileHalfWidth(), defs.TileHalfHeight()}
}

func (p Projection) ToScreen(xy MapCoords) image.Point {
	return image.Pt((xy.X-xy.Y)*p.HalfWidth, (xy.X+xy.Y)*p.HalfHeight)
}

// ToMap inverts ToScreen. The second result is false if pt is not the
// projection of any cell.
func (p Projection) ToMap(pt image.Point) (MapCoords, bool) {
	if pt.X%p.HalfWidth != 0 || pt.Y%p.HalfHeight != 0 {
		return MapCoords{}, false
	}
	a, b := pt.X/p.HalfWidth, pt.Y/p.HalfHeight
	if (a+b)%2 != 0 {
		return MapCoords{}, false
	}
	return MapCoords{(a + b) / 2, (b - a) / 2}, true
}

// ToMapFloor returns the cell whose diamond contains the pixel pt.
func (p Projection) ToMapFloor(pt image.Point) MapCoords {
	d := 2 * p.HalfWidth * p.HalfHeight
	x := FloorDiv(pt.X*p.HalfHeight+pt.Y*p.HalfWidth, d)
	y := FloorDiv(pt.Y*p.HalfWidth-pt.X*p.HalfHeight, d)
	return MapCoords{x, y}
}

// Footprint is the bounding box of the diamond of the cell at xy.
func (p Projection) Footprint(xy MapCoords) image.Rectangle {
	pt := p.ToScreen(xy)
	return image.Rect(pt.X-p.HalfWidth, pt.Y, pt.X+p.HalfWidth, pt.Y+2*p.HalfHeight)
}
