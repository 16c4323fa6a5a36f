package ui

import (
	"image"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/pwiecz/isoterrain/lib"
)

var backgroundColor = color.RGBA{0, 0, 0, 255}

type Options struct {
	CameraSpeed int
	Precompute  bool
	ShowStats   bool
}

// Game shows a scrollable isometric view of a single terrain map.
type Game struct {
	terrainMap *lib.Map
	blender    *lib.TerrainBlender
	renderer   *lib.TerrainRenderer[*ebiten.Image]
	sprites    *SpriteCache
	backend    *ScreenBackend
	camera     *Camera

	lastStats lib.FrameStats
}

var _ ebiten.Game = (*Game)(nil)

func NewGame(table *lib.TerrainTable, terrainMap *lib.Map, shapes *lib.ShapeSheets, options Options) *Game {
	blender := lib.NewTerrainBlender(table, terrainMap)
	if options.Precompute {
		blender.Precompute()
		if missing := blender.MissingBlendTiles(); len(missing) > 0 {
			log.Printf("%d blend tile combinations are missing from the terrain table", len(missing))
		}
	}
	renderer := lib.NewTerrainRenderer[*ebiten.Image](table, terrainMap.MaxElevation())
	bounds := renderer.MapBounds(terrainMap.Width(), terrainMap.Height())
	return &Game{
		terrainMap: terrainMap,
		blender:    blender,
		renderer:   renderer,
		sprites:    NewSpriteCache(shapes),
		backend:    NewScreenBackend(options.ShowStats),
		camera:     NewCamera(bounds, options.CameraSpeed),
	}
}

func (g *Game) Update() error {
	g.camera.Update()
	if inpututil.IsKeyJustPressed(ebiten.KeyHome) {
		bounds := g.renderer.MapBounds(g.terrainMap.Width(), g.terrainMap.Height())
		g.camera.CenterOn(bounds.Min.Add(bounds.Max).Div(2))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.backend.ToggleStats()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		log.Printf("%+v", g.lastStats)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.backend.SetScreen(screen)
	view := g.camera.Viewport()
	visibleRect := image.Rect(0, 0, g.terrainMap.Width(), g.terrainMap.Height())
	g.lastStats = g.renderer.Render(g.backend, g.sprites, g.blender, visibleRect, view)
	g.backend.SetStats(g.lastStats)
	g.backend.Present()
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.camera.SetSize(image.Pt(outsideWidth, outsideHeight))
	return outsideWidth, outsideHeight
}
