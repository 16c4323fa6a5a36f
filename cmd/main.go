package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pwiecz/isoterrain/drs"
	"github.com/pwiecz/isoterrain/lib"
	"github.com/pwiecz/isoterrain/ui"
)

var gameDataDir = flag.String("game-data-dir", "game", "directory or .drs archive containing the terrain table and sprite sheets")
var terrainTable = flag.String("terrain", "terrain.json", "name of the terrain table file within the game data")
var width = flag.Int("width", 1024, "window width")
var height = flag.Int("height", 768, "window height")
var cameraSpeed = flag.Int("camera-speed", 4, "camera movement in pixels per tick")
var precompute = flag.Bool("precompute", false, "resolve blending of the whole map before showing it")
var debug = flag.Bool("debug", false, "show the debug overlay")
var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")

func init() {
	flag.StringVar(gameDataDir, "d", "game", "shorthand for -game-data-dir")
}

func main() {
	flag.Parse()
	if len(flag.Args()) != 1 {
		log.Fatalf("Usage: %s [flags] <scenario map>\n", os.Args[0])
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	fsys, closeGameData, err := drs.OpenGameData(*gameDataDir)
	if err != nil {
		log.Fatal(err)
	}
	defer closeGameData()

	log.Printf("Loading terrain table %s", *terrainTable)
	table, err := lib.ReadTerrainTable(fsys, *terrainTable)
	if err != nil {
		log.Fatal(err)
	}

	scenario := flag.Arg(0)
	log.Printf("Loading map %s", scenario)
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

	log.Printf("Loading %d sprite sheets", len(table.Shapes()))
	shapes := lib.ReadShapeSheets(fsys, table)

	ebiten.SetWindowSize(*width, *height)
	ebiten.SetWindowTitle("Isometric Terrain Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	game := ui.NewGame(table, terrainMap, shapes, ui.Options{
		CameraSpeed: *cameraSpeed,
		Precompute:  *precompute,
		ShowStats:   *debug,
	})
	if err := ebiten.RunGame(game); err != nil {
		fmt.Println(err.Error())
	}
}
