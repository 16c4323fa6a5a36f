package lib

import (
	"image"
	"image/color"
	"testing"
)

func TestRenderOntoImage(t *testing.T) {
	table := newTestTable(t)
	frameSize := image.Pt(64, 32)
	shapes := NewShapeSheets(frameSize)
	solid := func(c color.NRGBA) []image.Image {
		frame := image.NewNRGBA(image.Rectangle{Max: frameSize})
		for y := 0; y < frameSize.Y; y++ {
			for x := 0; x < frameSize.X; x++ {
				frame.SetNRGBA(x, y, c)
			}
		}
		return []image.Image{frame}
	}
	shapes.sheets[baseShape(testGrass)] = solid(color.NRGBA{G: 255, A: 255})
	shapes.sheets[baseShape(testWater)] = solid(color.NRGBA{B: 255, A: 255})

	terrainMap := newTestMap(t, "14")
	blender := NewTerrainBlender(table, terrainMap)
	renderer := NewTerrainRenderer[image.Image](table, 0)
	view := Viewport{Camera: image.Pt(-32, 0), Size: image.Pt(96, 48)}
	backend := NewImageBackend(view.Size, color.Black)
	stats := renderer.Render(backend, shapes, blender, image.Rect(0, 0, 2, 1), view)
	backend.Present()

	if stats.DrawCalls != 2 || stats.MissingImages != 1 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if backend.Frames() != 1 {
		t.Errorf("Expected a single frame, got %d", backend.Frames())
	}
	img := backend.Image()
	if got := img.RGBAAt(2, 2); got != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("Expected grass at (2,2), got %v", got)
	}
	// (1,0) is drawn at world (0,16), i.e. (32,16) in the image.
	if got := img.RGBAAt(90, 40); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("Expected water at (90,40), got %v", got)
	}
	if got := img.RGBAAt(95, 5); got != (color.RGBA{A: 255}) {
		t.Errorf("Expected background at (95,5), got %v", got)
	}
}
