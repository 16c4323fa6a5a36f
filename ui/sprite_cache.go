package ui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pwiecz/isoterrain/lib"
)

// SpriteCache lazily uploads sprite sheet frames as ebiten images.
type SpriteCache struct {
	shapes *lib.ShapeSheets
	images map[lib.ImageRef]*ebiten.Image
}

var _ lib.ShapeSource[*ebiten.Image] = (*SpriteCache)(nil)

func NewSpriteCache(shapes *lib.ShapeSheets) *SpriteCache {
	return &SpriteCache{
		shapes: shapes,
		images: make(map[lib.ImageRef]*ebiten.Image)}
}

func (c *SpriteCache) Lookup(ref lib.ImageRef) (*ebiten.Image, bool) {
	spriteImage, ok := c.images[ref]
	if !ok {
		// Misses are cached as nil images.
		if frame, found := c.shapes.Lookup(ref); found {
			spriteImage = ebiten.NewImageFromImage(frame)
		}
		c.images[ref] = spriteImage
	}
	return spriteImage, spriteImage != nil
}
