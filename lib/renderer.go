package lib

import (
	"errors"
	"image"
)

// Viewport is the camera-relative rectangle of the screen in world pixels.
type Viewport struct {
	Camera image.Point
	Size   image.Point
}

func (v Viewport) Bounds() image.Rectangle {
	return image.Rectangle{v.Camera, v.Camera.Add(v.Size)}
}

func (v Viewport) Scroll(dx, dy int) Viewport {
	v.Camera = v.Camera.Add(image.Pt(dx, dy))
	return v
}

// ClampTo moves the viewport to stay within bounds. Along axes where the
// viewport is larger than bounds it is centred on them.
func (v Viewport) ClampTo(bounds image.Rectangle) Viewport {
	clamp := func(pos, size, min, max int) int {
		if size >= max-min {
			return min - (size-(max-min))/2
		}
		return Clamp(pos, min, max-size)
	}
	v.Camera.X = clamp(v.Camera.X, v.Size.X, bounds.Min.X, bounds.Max.X)
	v.Camera.Y = clamp(v.Camera.Y, v.Size.Y, bounds.Min.Y, bounds.Max.Y)
	return v
}

// FrameStats summarises a single Render call.
type FrameStats struct {
	CellsVisited      int
	CellsCulled       int
	DrawCalls         int
	MissingImages     int
	MissingBlendTiles int
	OutOfBounds       int
}

// TerrainRenderer draws the visible part of a blended terrain map.
type TerrainRenderer[S any] struct {
	projection      Projection
	elevationHeight int
	maxElevation    int
}

func NewTerrainRenderer[S any](defs TerrainDefinitions, maxElevation int) *TerrainRenderer[S] {
	return &TerrainRenderer[S]{
		projection:      NewProjection(defs),
		elevationHeight: defs.ElevationHeight(),
		maxElevation:    maxElevation}
}

func (r *TerrainRenderer[S]) Projection() Projection {
	return r.projection
}

// TileFootprint returns bounds of a cell's tile raised to the given
// elevation.
func (r *TerrainRenderer[S]) TileFootprint(xy MapCoords, elevation int) image.Rectangle {
	return r.projection.Footprint(xy).Sub(image.Pt(0, elevation*r.elevationHeight))
}

// maxFootprint covers the tile at every elevation present on the map.
func (r *TerrainRenderer[S]) maxFootprint(xy MapCoords) image.Rectangle {
	return r.TileFootprint(xy, 0).Union(r.TileFootprint(xy, r.maxElevation))
}

// MapBounds returns the world pixel bounds of a width x height map.
func (r *TerrainRenderer[S]) MapBounds(width, height int) image.Rectangle {
	if width <= 0 || height <= 0 {
		return image.Rectangle{}
	}
	bounds := r.maxFootprint(MapCoords{0, 0})
	for _, corner := range []MapCoords{{width - 1, 0}, {0, height - 1}, {width - 1, height - 1}} {
		bounds = bounds.Union(r.maxFootprint(corner))
	}
	return bounds
}

// CandidateBounds returns the cells of visibleRect which may intersect the
// viewport, clipped to a width x height map.
func (r *TerrainRenderer[S]) CandidateBounds(visibleRect image.Rectangle, view Viewport, width, height int) image.Rectangle {
	bounds := view.Bounds()
	if bounds.Empty() {
		return image.Rectangle{}
	}
	corners := [4]image.Point{
		bounds.Min,
		image.Pt(bounds.Max.X-1, bounds.Min.Y),
		image.Pt(bounds.Min.X, bounds.Max.Y-1),
		bounds.Max.Sub(image.Pt(1, 1))}
	first := r.projection.ToMapFloor(corners[0])
	cells := image.Rectangle{image.Pt(first.X, first.Y), image.Pt(first.X+1, first.Y+1)}
	for _, corner := range corners[1:] {
		xy := r.projection.ToMapFloor(corner)
		cells = cells.Union(image.Rect(xy.X, xy.Y, xy.X+1, xy.Y+1))
	}
	// Tile bounding boxes reach into neighbouring diamonds, and elevated
	// tiles further south are lifted into the view.
	lift := DivRoundUp(r.maxElevation*r.elevationHeight, r.projection.HalfHeight)
	cells.Min = cells.Min.Sub(image.Pt(1, 1))
	cells.Max = cells.Max.Add(image.Pt(1+lift, 1+lift))
	return cells.Intersect(visibleRect).Intersect(image.Rect(0, 0, width, height))
}

// Render draws the cells of visibleRect (in map coordinates) visible in the
// viewport, back to front. Missing images and blending errors never abort
// the frame; they are counted in the returned stats.
func (r *TerrainRenderer[S]) Render(backend Backend[S], shapes ShapeSource[S], blender Blender, visibleRect image.Rectangle, view Viewport) FrameStats {
	var stats FrameStats
	backend.SetCamera(view.Camera.X, view.Camera.Y)
	viewBounds := view.Bounds()
	cells := r.CandidateBounds(visibleRect, view, blender.Width(), blender.Height())
	if cells.Empty() {
		return stats
	}
	maxX, maxY := cells.Max.X-1, cells.Max.Y-1
	for depth := cells.Min.X + cells.Min.Y; depth <= maxX+maxY; depth++ {
		for x := Max(cells.Min.X, depth-maxY); x <= Min(maxX, depth-cells.Min.Y); x++ {
			xy := MapCoords{x, depth - x}
			stats.CellsVisited++
			if !r.maxFootprint(xy).Overlaps(viewBounds) {
				stats.CellsCulled++
				continue
			}
			descriptor, err := blender.Resolve(xy)
			if errors.Is(err, ErrOutOfBounds) {
				stats.OutOfBounds++
				continue
			}
			if errors.Is(err, ErrMissingBlendTile) {
				stats.MissingBlendTiles++
			}
			footprint := r.TileFootprint(xy, descriptor.Elevation)
			if !footprint.Overlaps(viewBounds) {
				stats.CellsCulled++
				continue
			}
			r.draw(backend, shapes, descriptor.Base, footprint.Min, &stats)
			for _, overlay := range descriptor.Overlays {
				r.draw(backend, shapes, overlay.Image, footprint.Min, &stats)
			}
		}
	}
	return stats
}

func (r *TerrainRenderer[S]) draw(backend Backend[S], shapes ShapeSource[S], ref ImageRef, pt image.Point, stats *FrameStats) {
	sprite, ok := shapes.Lookup(ref)
	if !ok {
		stats.MissingImages++
		return
	}
	backend.Draw(sprite, pt.X, pt.Y)
	stats.DrawCalls++
}
