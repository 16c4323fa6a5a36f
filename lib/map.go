package lib

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"io/fs"
	"path"
)

type TerrainType uint8

type TerrainCell struct {
	Type TerrainType
	// Elevation level, never negative.
	Elevation int
}

// A rectangular grid of terrain cells parsed from a scenario map.
type Map struct {
	width, height int
	cells         []TerrainCell
}

var _ MapGrid = (*Map)(nil)

var mapMagic = [4]byte{'I', 'S', 'O', 'M'}

func NewMap(width, height int, cells []TerrainCell) (*Map, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid map size %dx%d", width, height)
	}
	if len(cells) != width*height {
		return nil, fmt.Errorf("expected %d cells for a %dx%d map, got %d", width*height, width, height, len(cells))
	}
	for i, cell := range cells {
		if cell.Elevation < 0 {
			return nil, fmt.Errorf("negative elevation %d at (%d,%d)", cell.Elevation, i%width, i/width)
		}
	}
	return &Map{width: width, height: height, cells: cells}, nil
}

func (m *Map) Width() int  { return m.width }
func (m *Map) Height() int { return m.height }

func (m *Map) AreCoordsValid(xy MapCoords) bool {
	return InRange(xy.X, 0, m.width) && InRange(xy.Y, 0, m.height)
}

// Cell returns a zero cell for coordinates outside of the map.
func (m *Map) Cell(x, y int) TerrainCell {
	if !m.AreCoordsValid(MapCoords{x, y}) {
		return TerrainCell{}
	}
	return m.cells[y*m.width+x]
}

func (m *Map) MaxElevation() int {
	maxElevation := 0
	for _, cell := range m.cells {
		maxElevation = Max(maxElevation, cell.Elevation)
	}
	return maxElevation
}

// TerrainTypes returns the set of terrain types used on the map.
func (m *Map) TerrainTypes() []TerrainType {
	var used [256]bool
	var types []TerrainType
	for _, cell := range m.cells {
		if !used[cell.Type] {
			used[cell.Type] = true
			types = append(types, cell.Type)
		}
	}
	return types
}

// ParseMap parses a binary map: the "ISOM" magic, little endian uint16
// width and height, followed by a (terrain, elevation) byte pair per cell
// in row-major order.
func ParseMap(data io.Reader) (*Map, error) {
	var header struct {
		Magic         [4]byte
		Width, Height uint16
	}
	if err := binary.Read(data, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if header.Magic != mapMagic {
		return nil, fmt.Errorf("not a map file, magic %q", header.Magic[:])
	}
	width, height := int(header.Width), int(header.Height)
	cells := make([]TerrainCell, 0, width*height)
	row := make([]byte, 2*width)
	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(data, row); err != nil {
			return nil, err
		}
		for x := 0; x < width; x++ {
			cells = append(cells, TerrainCell{
				Type:      TerrainType(row[2*x]),
				Elevation: int(row[2*x+1])})
		}
	}
	return NewMap(width, height, cells)
}

// ReadMap reads a scenario map. Files with a .json extension are parsed as
// Tiled maps, everything else as binary maps.
func ReadMap(fsys fs.FS, filename string) (*Map, error) {
	fileData, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return nil, fmt.Errorf("cannot read map file %s (%w)", filename, err)
	}
	var terrainMap *Map
	if path.Ext(filename) == ".json" {
		tiledMap, err := ParseTiledMap(bytes.NewReader(fileData))
		if err == nil {
			terrainMap, err = MapFromTiled(tiledMap)
		}
		if err != nil {
			return nil, fmt.Errorf("cannot parse Tiled map %s (%w)", filename, err)
		}
	} else {
		terrainMap, err = ParseMap(bytes.NewReader(fileData))
		if err != nil {
			return nil, fmt.Errorf("cannot parse map file %s (%w)", filename, err)
		}
	}
	return terrainMap, nil
}
