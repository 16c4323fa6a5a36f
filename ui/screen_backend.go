package ui

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/pwiecz/isoterrain/lib"
)

// ScreenBackend draws terrain sprites onto the ebiten screen.
type ScreenBackend struct {
	screen *ebiten.Image
	camera image.Point
	opts   ebiten.DrawImageOptions

	showStats bool
	stats     lib.FrameStats
}

var _ lib.Backend[*ebiten.Image] = (*ScreenBackend)(nil)

func NewScreenBackend(showStats bool) *ScreenBackend {
	return &ScreenBackend{showStats: showStats}
}

// SetScreen sets the image drawn to until the next Present.
func (b *ScreenBackend) SetScreen(screen *ebiten.Image) {
	b.screen = screen
}
func (b *ScreenBackend) SetCamera(x, y int) {
	b.camera = image.Pt(x, y)
}
func (b *ScreenBackend) Draw(sprite *ebiten.Image, x, y int) {
	b.opts.GeoM.Reset()
	b.opts.GeoM.Translate(float64(x-b.camera.X), float64(y-b.camera.Y))
	b.screen.DrawImage(sprite, &b.opts)
}
func (b *ScreenBackend) SetStats(stats lib.FrameStats) {
	b.stats = stats
}
func (b *ScreenBackend) ToggleStats() {
	b.showStats = !b.showStats
}

func (b *ScreenBackend) Present() {
	if b.showStats && b.screen != nil {
		ebitenutil.DebugPrint(b.screen, fmt.Sprintf(
			"FPS %.1f  camera %d,%d\ncells %d (culled %d)  draws %d\nmissing images %d  missing blend tiles %d",
			ebiten.ActualFPS(), b.camera.X, b.camera.Y,
			b.stats.CellsVisited, b.stats.CellsCulled, b.stats.DrawCalls,
			b.stats.MissingImages, b.stats.MissingBlendTiles))
	}
	b.screen = nil
}
