package lib

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"io/fs"
	"log"

	"golang.org/x/image/draw"
)

// ShapeSheets holds sprite sheets sliced into equally sized frames.
type ShapeSheets struct {
	frameSize image.Point
	sheets    map[int][]image.Image
}

var _ ShapeSource[image.Image] = (*ShapeSheets)(nil)

func NewShapeSheets(frameSize image.Point) *ShapeSheets {
	return &ShapeSheets{
		frameSize: frameSize,
		sheets:    make(map[int][]image.Image)}
}

func ShapeFilename(shape int) string {
	return fmt.Sprintf("%d.png", shape)
}

// ReadShapeSheets reads sheets of all the shapes used by the terrain table.
// Sheets which cannot be read are skipped, their images will be reported
// missing when drawn.
func ReadShapeSheets(fsys fs.FS, table *TerrainTable) *ShapeSheets {
	s := NewShapeSheets(image.Pt(2*table.TileHalfWidth(), 2*table.TileHalfHeight()))
	for _, shape := range table.Shapes() {
		filename := ShapeFilename(shape)
		file, err := fsys.Open(filename)
		if err != nil {
			log.Printf("Warning: skipping shape %d (%v)", shape, err)
			continue
		}
		err = s.AddSheet(shape, file)
		file.Close()
		if err != nil {
			log.Printf("Warning: skipping shape %d, cannot decode %s (%v)", shape, filename, err)
		}
	}
	return s
}

// AddSheet decodes a PNG sheet and slices it into frames, left to right,
// top to bottom.
func (s *ShapeSheets) AddSheet(shape int, data io.Reader) error {
	sheet, err := png.Decode(data)
	if err != nil {
		return err
	}
	frames, err := SliceFrames(sheet, s.frameSize)
	if err != nil {
		return err
	}
	s.sheets[shape] = frames
	return nil
}

func SliceFrames(sheet image.Image, frameSize image.Point) ([]image.Image, error) {
	bounds := sheet.Bounds()
	columns, rows := bounds.Dx()/frameSize.X, bounds.Dy()/frameSize.Y
	if columns == 0 || rows == 0 {
		return nil, fmt.Errorf("sheet %dx%d smaller than a single %dx%d frame",
			bounds.Dx(), bounds.Dy(), frameSize.X, frameSize.Y)
	}
	frames := make([]image.Image, 0, columns*rows)
	for row := 0; row < rows; row++ {
		for column := 0; column < columns; column++ {
			frameBounds := image.Rectangle{Max: frameSize}.Add(
				bounds.Min.Add(image.Pt(column*frameSize.X, row*frameSize.Y)))
			frame := image.NewNRGBA(image.Rectangle{Max: frameSize})
			draw.Copy(frame, image.Point{}, sheet, frameBounds, draw.Src, nil)
			frames = append(frames, frame)
		}
	}
	return frames, nil
}

func (s *ShapeSheets) FrameSize() image.Point {
	return s.frameSize
}

func (s *ShapeSheets) Image(ref ImageRef) (image.Image, error) {
	frames, ok := s.sheets[ref.Shape]
	if !ok || !InRange(ref.Frame, 0, len(frames)) {
		return nil, &MissingImageError{ref}
	}
	return frames[ref.Frame], nil
}

func (s *ShapeSheets) Lookup(ref ImageRef) (image.Image, bool) {
	img, err := s.Image(ref)
	return img, err == nil
}
