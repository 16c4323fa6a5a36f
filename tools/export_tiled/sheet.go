package main

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/pwiecz/isoterrain/lib"
	"golang.org/x/image/draw"
)

// CreateTileSheet stacks the base tile of every terrain type vertically, so
// that the tile index within the sheet equals the terrain type.
func CreateTileSheet(table *lib.TerrainTable, shapes lib.ShapeSource[image.Image]) (image.Image, int) {
	tileCount := 0
	for _, terrain := range table.Terrains {
		tileCount = lib.Max(tileCount, int(terrain.ID)+1)
	}
	width, height := 2*table.TileHalfWidth(), 2*table.TileHalfHeight()
	sheet := image.NewNRGBA(image.Rect(0, 0, width, height*tileCount))
	for _, terrain := range table.Terrains {
		tile, ok := shapes.Lookup(table.BaseTile(terrain.ID))
		if !ok {
			continue
		}
		y := int(terrain.ID) * height
		draw.Draw(sheet, image.Rect(0, y, width, y+height),
			tile, tile.Bounds().Min, draw.Over)
	}
	return sheet, tileCount
}

func SaveImageToFile(image image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("cannot create \"%s\" file (%v)", filename, err)
	}
	if err := png.Encode(f, image); err != nil {
		f.Close()
		return fmt.Errorf("error encoding image to \"%s\" (%v)", filename, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("error closing \"%s\" file (%v)", filename, err)
	}
	return nil
}
