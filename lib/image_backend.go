package lib

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ImageBackend composes sprites onto an in-memory image.
type ImageBackend struct {
	target *image.RGBA
	camera image.Point
	frames int
}

var _ Backend[image.Image] = (*ImageBackend)(nil)

func NewImageBackend(size image.Point, background color.Color) *ImageBackend {
	target := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(target, target.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	return &ImageBackend{target: target}
}

func (b *ImageBackend) Draw(sprite image.Image, x, y int) {
	bounds := sprite.Bounds()
	dst := bounds.Sub(bounds.Min).Add(image.Pt(x, y).Sub(b.camera))
	draw.Draw(b.target, dst, sprite, bounds.Min, draw.Over)
}

func (b *ImageBackend) SetCamera(x, y int) {
	b.camera = image.Pt(x, y)
}

func (b *ImageBackend) Present() {
	b.frames++
}

func (b *ImageBackend) Frames() int {
	return b.frames
}

func (b *ImageBackend) Image() *image.RGBA {
	return b.target
}
