package main

import (
	"encoding/json"
	"flag"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pwiecz/isoterrain/drs"
	"github.com/pwiecz/isoterrain/lib"
)

var gameDataDir = flag.String("d", "game", "directory or .drs archive containing the terrain table and sprite sheets")
var terrainTable = flag.String("terrain", "terrain.json", "name of the terrain table file within the game data")
var outputDir = flag.String("o", ".", "output directory")
var render = flag.Bool("render", false, "also render the whole map to a png file")

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("Usage: %s [flags] <scenario map>\n", os.Args[0])
	}
	fsys, closeGameData, err := drs.OpenGameData(*gameDataDir)
	if err != nil {
		log.Fatal(err)
	}
	defer closeGameData()
	table, err := lib.ReadTerrainTable(fsys, *terrainTable)
	if err != nil {
		log.Fatal(err)
	}
	scenario := flag.Arg(0)
	scenarioDir, scenarioFile := filepath.Split(scenario)
	if scenarioDir == "" {
		scenarioDir = "."
	}
	terrainMap, err := lib.ReadMap(os.DirFS(scenarioDir), scenarioFile)
	if err != nil {
		log.Fatal(err)
	}
	if err := table.CheckMap(terrainMap); err != nil {
		log.Fatal(err)
	}
	shapes := lib.ReadShapeSheets(fsys, table)
	name := strings.TrimSuffix(scenarioFile, filepath.Ext(scenarioFile))

	sheet, tileCount := CreateTileSheet(table, shapes)
	sheetFilename := name + "_terrain.png"
	if err := SaveImageToFile(sheet, filepath.Join(*outputDir, sheetFilename)); err != nil {
		log.Fatal(err)
	}

	renderer := lib.NewTerrainRenderer[image.Image](table, terrainMap.MaxElevation())
	tiledMap := terrainMap.ToTiled(renderer.Projection(), lib.TileSet{
		Columns:     1,
		FirstGID:    1,
		Name:        "terrain",
		TileCount:   tileCount,
		TileHeight:  2 * table.TileHalfHeight(),
		TileWidth:   2 * table.TileHalfWidth(),
		Image:       sheetFilename,
		ImageHeight: sheet.Bounds().Dy(),
		ImageWidth:  sheet.Bounds().Dx()})
	b, err := json.MarshalIndent(tiledMap, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	mapFilename := filepath.Join(*outputDir, name+".json")
	if err := os.WriteFile(mapFilename, b, 0644); err != nil {
		log.Fatalf("cannot write to file %s (%v)", mapFilename, err)
	}

	if *render {
		blender := lib.NewTerrainBlender(table, terrainMap)
		blender.Precompute()
		bounds := renderer.MapBounds(terrainMap.Width(), terrainMap.Height())
		backend := lib.NewImageBackend(bounds.Size(), color.Black)
		stats := renderer.Render(backend, shapes, blender,
			image.Rect(0, 0, terrainMap.Width(), terrainMap.Height()),
			lib.Viewport{Camera: bounds.Min, Size: bounds.Size()})
		backend.Present()
		log.Printf("Rendered %d cells with %d draw calls, %d missing images", stats.CellsVisited, stats.DrawCalls, stats.MissingImages)
		if err := SaveImageToFile(backend.Image(), filepath.Join(*outputDir, name+"_render.png")); err != nil {
			log.Fatal(err)
		}
	}
}
