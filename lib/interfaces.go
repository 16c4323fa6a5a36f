package lib

// TerrainDefinitions describes terrain types and their tiles.
type TerrainDefinitions interface {
	TileHalfWidth() int
	TileHalfHeight() int
	// Vertical offset in pixels of a single elevation level.
	ElevationHeight() int
	// BorderTile returns the image drawn on a cell of type a to blend it
	// with neighbouring cells of type b.
	BorderTile(a, b TerrainType, pattern BlendPattern) (ImageRef, bool)
	BaseTile(t TerrainType) ImageRef
	Priority(t TerrainType) int
}

// MapGrid is a read-only grid of terrain cells.
type MapGrid interface {
	Width() int
	Height() int
	Cell(x, y int) TerrainCell
}

// ShapeSource resolves image references into drawable sprites.
type ShapeSource[S any] interface {
	Lookup(ref ImageRef) (S, bool)
}

// Backend draws sprites. Positions passed to Draw are in world pixels,
// the backend offsets them by the negated camera position.
type Backend[S any] interface {
	Draw(sprite S, x, y int)
	SetCamera(x, y int)
	Present()
}

type Blender interface {
	Resolve(xy MapCoords) (DrawDescriptor, error)
	Width() int
	Height() int
}
