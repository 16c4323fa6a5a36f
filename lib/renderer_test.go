package lib

import (
	"image"
	"reflect"
	"testing"
)

// countingBlender counts resolved cells.
type countingBlender struct {
	*TerrainBlender
	resolved map[MapCoords]int
}

func (b *countingBlender) Resolve(xy MapCoords) (DrawDescriptor, error) {
	b.resolved[xy]++
	return b.TerrainBlender.Resolve(xy)
}

func newCountingBlender(t *testing.T, table *TerrainTable, rows ...string) *countingBlender {
	return &countingBlender{
		TerrainBlender: NewTerrainBlender(table, newTestMap(t, rows...)),
		resolved:       make(map[MapCoords]int)}
}

func TestRenderWholeMapInDepthOrder(t *testing.T) {
	table := newTestTable(t)
	blender := newCountingBlender(t, table,
		"11",
		"12")
	renderer := NewTerrainRenderer[ImageRef](table, 0)
	backend := &recordingBackend{}
	view := Viewport{Camera: image.Pt(-100, -100), Size: image.Pt(300, 300)}
	stats := renderer.Render(backend, refShapes{}, blender, image.Rect(0, 0, 2, 2), view)

	if backend.camera != view.Camera {
		t.Errorf("Expected camera %v, got %v", view.Camera, backend.camera)
	}
	grassBorder := borderShape(testGrass, testDirt)
	expected := []drawCall{
		{ImageRef{baseShape(testGrass), 0}, -32, 0},
		{ImageRef{grassBorder, int(InnerSE)}, -32, 0},
		{ImageRef{baseShape(testGrass), 0}, -64, 16},
		{ImageRef{grassBorder, int(EdgeE)}, -64, 16},
		{ImageRef{baseShape(testGrass), 0}, 0, 16},
		{ImageRef{grassBorder, int(EdgeS)}, 0, 16},
		{ImageRef{baseShape(testDirt), 0}, -32, 32},
	}
	if !reflect.DeepEqual(backend.calls, expected) {
		t.Errorf("Expected draw calls\n%v\ngot\n%v", expected, backend.calls)
	}
	if stats.DrawCalls != len(expected) || stats.CellsVisited != 4 || stats.CellsCulled != 0 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if backend.presents != 0 {
		t.Error("Render should not present the frame")
	}
}

func TestRenderCullsCellsOutsideViewport(t *testing.T) {
	table := newTestTable(t)
	blender := newCountingBlender(t, table,
		"1111111111",
		"1111111111",
		"1111111111",
		"1111111111",
		"1111111111",
		"1111111111",
		"1111111111",
		"1111111111",
		"1111111111",
		"1111111112")
	renderer := NewTerrainRenderer[ImageRef](table, 0)
	backend := &recordingBackend{}
	// A viewport showing only the diamond of the cell (0,0) and the bounding
	// boxes of its neighbours.
	view := Viewport{Camera: image.Pt(-32, 0), Size: image.Pt(64, 32)}
	stats := renderer.Render(backend, refShapes{}, blender, image.Rect(0, 0, 10, 10), view)

	for xy := range blender.resolved {
		footprint := renderer.TileFootprint(xy, 0)
		if !footprint.Overlaps(view.Bounds()) {
			t.Errorf("Resolved culled cell %v", xy)
		}
	}
	if blender.resolved[MapCoords{9, 9}] != 0 {
		t.Error("Far away cell was resolved")
	}
	if stats.CellsVisited >= 100 {
		t.Errorf("Expected candidate cells to be limited by the viewport, visited %d", stats.CellsVisited)
	}
	for _, call := range backend.calls {
		callBounds := image.Rect(call.X, call.Y, call.X+64, call.Y+32)
		if !callBounds.Overlaps(view.Bounds()) {
			t.Errorf("Draw call %v outside of the viewport", call)
		}
	}
	// (0,0), (1,0) and (0,1) overlap the viewport, (1,1) only touches it.
	if stats.DrawCalls != 3 {
		t.Errorf("Expected 3 draw calls, got %d (%v)", stats.DrawCalls, backend.calls)
	}
}

func TestRenderRespectsVisibleRect(t *testing.T) {
	table := newTestTable(t)
	blender := newCountingBlender(t, table,
		"111",
		"111",
		"111")
	renderer := NewTerrainRenderer[ImageRef](table, 0)
	backend := &recordingBackend{}
	view := Viewport{Camera: image.Pt(-200, -200), Size: image.Pt(400, 400)}
	renderer.Render(backend, refShapes{}, blender, image.Rect(1, 1, 5, 2), view)
	if len(blender.resolved) != 2 || blender.resolved[MapCoords{1, 1}] != 1 || blender.resolved[MapCoords{2, 1}] != 1 {
		t.Errorf("Expected only (1,1) and (2,1) to be resolved, got %v", blender.resolved)
	}
	stats := renderer.Render(backend, refShapes{}, blender, image.Rectangle{}, view)
	if stats.CellsVisited != 0 {
		t.Errorf("Empty visible rect visited %d cells", stats.CellsVisited)
	}
}

func TestRenderSkipsMissingImages(t *testing.T) {
	table := newTestTable(t)
	blender := newCountingBlender(t, table, "1112")
	renderer := NewTerrainRenderer[ImageRef](table, 0)
	backend := &recordingBackend{}
	shapes := refShapes{missing: map[ImageRef]bool{
		{baseShape(testGrass), 0}: true}}
	view := Viewport{Camera: image.Pt(-100, -100), Size: image.Pt(400, 400)}
	stats := renderer.Render(backend, shapes, blender, image.Rect(0, 0, 4, 1), view)
	if stats.MissingImages != 3 {
		t.Errorf("Expected 3 missing images, got %d", stats.MissingImages)
	}
	expected := []drawCall{
		{ImageRef{borderShape(testGrass, testDirt), int(EdgeE)}, 32, 32},
		{ImageRef{baseShape(testDirt), 0}, 64, 48},
	}
	if !reflect.DeepEqual(backend.calls, expected) {
		t.Errorf("Expected draw calls\n%v\ngot\n%v", expected, backend.calls)
	}
}

func TestRenderDrawsBaseTileWhenBorderIsMissing(t *testing.T) {
	table := newTestTable(t, EdgeE)
	blender := newCountingBlender(t, table, "12")
	renderer := NewTerrainRenderer[ImageRef](table, 0)
	backend := &recordingBackend{}
	view := Viewport{Camera: image.Pt(-100, -100), Size: image.Pt(400, 400)}
	stats := renderer.Render(backend, refShapes{}, blender, image.Rect(0, 0, 2, 1), view)
	expected := []drawCall{
		{ImageRef{baseShape(testGrass), 0}, -32, 0},
		{ImageRef{baseShape(testDirt), 0}, 0, 16},
	}
	if !reflect.DeepEqual(backend.calls, expected) {
		t.Errorf("Expected draw calls\n%v\ngot\n%v", expected, backend.calls)
	}
	if stats.MissingBlendTiles != 1 {
		t.Errorf("Expected 1 missing blend tile, got %d", stats.MissingBlendTiles)
	}
}

func TestRenderLiftsElevatedCells(t *testing.T) {
	table := newTestTable(t)
	terrainMap, err := NewMap(1, 3, []TerrainCell{{testGrass, 0}, {testGrass, 0}, {testGrass, 4}})
	if err != nil {
		t.Fatal(err)
	}
	blender := NewTerrainBlender(table, terrainMap)
	renderer := NewTerrainRenderer[ImageRef](table, terrainMap.MaxElevation())
	backend := &recordingBackend{}
	// (0,2) is lifted by 4*8 pixels.
	view := Viewport{Camera: image.Pt(-64, 16), Size: image.Pt(64, 32)}
	renderer.Render(backend, refShapes{}, blender, image.Rect(0, 0, 1, 3), view)
	found := false
	for _, call := range backend.calls {
		if call.X == -96 && call.Y == 0 {
			found = true
		}
	}
	if !found {
		t.Errorf("Elevated cell (0,2) not drawn at its lifted position, calls %v", backend.calls)
	}
}

func TestNegativeElevationIsRejected(t *testing.T) {
	if _, err := NewMap(2, 1, []TerrainCell{{testGrass, 0}, {testGrass, -1}}); err == nil {
		t.Error("Expected an error creating a map with negative elevation")
	}
	tiledMap := &TiledMap{
		Width:       1,
		Height:      1,
		Orientation: Isometric,
		Layers: []Layer{
			{Name: TerrainLayerName, Type: TileLayer, Width: 1, Height: 1, Data: []int{2}},
			{Name: ElevationLayerName, Type: TileLayer, Width: 1, Height: 1, Data: []int{-5}}}}
	if _, err := MapFromTiled(tiledMap); err == nil {
		t.Error("Expected an error converting a Tiled map with negative elevation")
	}
}

func TestViewportClamp(t *testing.T) {
	bounds := image.Rect(-100, 0, 100, 50)
	for _, tc := range []struct {
		view     Viewport
		expected image.Point
	}{
		{Viewport{image.Pt(-10, 10), image.Pt(50, 20)}, image.Pt(-10, 10)},
		{Viewport{image.Pt(-500, -500), image.Pt(50, 20)}, image.Pt(-100, 0)},
		{Viewport{image.Pt(500, 500), image.Pt(50, 20)}, image.Pt(50, 30)},
		// Wider than the map.
		{Viewport{image.Pt(500, 5), image.Pt(300, 20)}, image.Pt(-150, 5)},
	} {
		if got := tc.view.ClampTo(bounds).Camera; got != tc.expected {
			t.Errorf("%v: expected camera %v, got %v", tc.view, tc.expected, got)
		}
	}
	if got := (Viewport{image.Pt(1, 2), image.Pt(3, 4)}).Scroll(-2, 5); got.Camera != image.Pt(-1, 7) || got.Size != image.Pt(3, 4) {
		t.Errorf("Unexpected scrolled viewport %v", got)
	}
}

func TestMapBounds(t *testing.T) {
	table := newTestTable(t)
	renderer := NewTerrainRenderer[ImageRef](table, 2)
	// Corners (0,0) top (0,0), (3,0) top (96,48), (0,1) top (-32,16),
	// (3,1) top (64,64), lifted by up to 16 pixels.
	expected := image.Rect(-64, -16, 128, 96)
	if got := renderer.MapBounds(4, 2); got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
	if got := renderer.MapBounds(0, 2); !got.Empty() {
		t.Errorf("Expected empty bounds, got %v", got)
	}
}
