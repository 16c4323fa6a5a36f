package lib

import (
	"image"
	"testing"
)

const (
	testGrass TerrainType = 1
	testDirt  TerrainType = 2
	testSand  TerrainType = 3
	testWater TerrainType = 4
)

func baseShape(t TerrainType) int {
	return 100 + int(t)
}
func borderShape(from, to TerrainType) int {
	return 1000 + 10*int(from) + int(to)
}

// newTestTable creates a table with priority equal to terrain type number
// and a complete set of border tiles, except for the skipped patterns.
func newTestTable(t *testing.T, skipped ...BlendPattern) *TerrainTable {
	t.Helper()
	types := []TerrainType{testGrass, testDirt, testSand, testWater}
	var terrains []TerrainDef
	var borders []BorderDef
	for _, from := range types {
		terrains = append(terrains, TerrainDef{
			ID:       from,
			Priority: int(from),
			Base:     ImageRef{baseShape(from), 0}})
		for _, to := range types {
			if to <= from {
				continue
			}
			frames := make(map[BlendPattern]int)
		patterns:
			for pattern := EdgeN; pattern <= Full; pattern++ {
				for _, skip := range skipped {
					if pattern == skip {
						continue patterns
					}
				}
				frames[pattern] = int(pattern)
			}
			borders = append(borders, BorderDef{from, to, borderShape(from, to), frames})
		}
	}
	table, err := NewTerrainTable(32, 16, 8, terrains, borders)
	if err != nil {
		t.Fatal("Cannot create terrain table,", err)
	}
	return table
}

// newTestMap creates a map from rows of digits, each digit being a terrain
// type.
func newTestMap(t *testing.T, rows ...string) *Map {
	t.Helper()
	var cells []TerrainCell
	for _, row := range rows {
		for _, c := range row {
			cells = append(cells, TerrainCell{Type: TerrainType(c - '0')})
		}
	}
	m, err := NewMap(len(rows[0]), len(rows), cells)
	if err != nil {
		t.Fatal("Cannot create map,", err)
	}
	return m
}

type drawCall struct {
	Sprite ImageRef
	X, Y   int
}

// recordingBackend uses image references as sprites.
type recordingBackend struct {
	camera   image.Point
	calls    []drawCall
	presents int
}

func (b *recordingBackend) Draw(sprite ImageRef, x, y int) {
	b.calls = append(b.calls, drawCall{sprite, x, y})
}
func (b *recordingBackend) SetCamera(x, y int) {
	b.camera = image.Pt(x, y)
}
func (b *recordingBackend) Present() {
	b.presents++
}

type refShapes struct {
	missing map[ImageRef]bool
}

func (s refShapes) Lookup(ref ImageRef) (ImageRef, bool) {
	if s.missing[ref] {
		return ImageRef{}, false
	}
	return ref, true
}
