package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pwiecz/isoterrain/lib"
)

// Camera scrolls the view over the map in world pixels.
type Camera struct {
	view   lib.Viewport
	bounds image.Rectangle
	speed  int
}

func NewCamera(bounds image.Rectangle, speed int) *Camera {
	c := &Camera{bounds: bounds, speed: speed}
	c.CenterOn(bounds.Min.Add(bounds.Max).Div(2))
	return c
}

func (c *Camera) Viewport() lib.Viewport {
	return c.view
}

func (c *Camera) SetSize(size image.Point) {
	if size == c.view.Size {
		return
	}
	center := c.view.Camera.Add(c.view.Size.Div(2))
	c.view.Size = size
	c.CenterOn(center)
}

func (c *Camera) CenterOn(pt image.Point) {
	c.view.Camera = pt.Sub(c.view.Size.Div(2))
	c.view = c.view.ClampTo(c.bounds)
}

func (c *Camera) Update() {
	var dx, dy int
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		dy = -c.speed
	} else if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		dy = c.speed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		dx = -c.speed
	} else if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		dx = c.speed
	}
	if dx != 0 || dy != 0 {
		c.view = c.view.Scroll(dx, dy).ClampTo(c.bounds)
	}
}
