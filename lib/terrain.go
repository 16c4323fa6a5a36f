package lib

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"math"
	"sort"
)

// ImageRef references a single frame of a sprite sheet.
type ImageRef struct {
	Shape int `json:"shape"`
	Frame int `json:"frame"`
}

// Shape of image references which never resolve to a sprite.
const NoShape = -1

type TerrainDef struct {
	ID       TerrainType `json:"id"`
	Name     string      `json:"name"`
	Priority int         `json:"priority"`
	Base     ImageRef    `json:"base"`
}

// BorderDef lists the border tiles drawn on terrain From where it meets
// the higher priority terrain To. Frames are indices into the sheet Shape.
type BorderDef struct {
	From   TerrainType          `json:"from"`
	To     TerrainType          `json:"to"`
	Shape  int                  `json:"shape"`
	Frames map[BlendPattern]int `json:"frames"`
}

type borderKey struct {
	from, to TerrainType
	pattern  BlendPattern
}

// Representation of the terrain definition table parsed from terrain.json.
type TerrainTable struct {
	HalfWidth     int          `json:"tileHalfWidth"`
	HalfHeight    int          `json:"tileHalfHeight"`
	ElevationStep int          `json:"elevationHeight"`
	Terrains      []TerrainDef `json:"terrains"`
	Borders       []BorderDef  `json:"borders"`

	terrains map[TerrainType]*TerrainDef
	borders  map[borderKey]ImageRef
}

var _ TerrainDefinitions = (*TerrainTable)(nil)

// NewTerrainTable indexes and validates terrain definitions.
func NewTerrainTable(halfWidth, halfHeight, elevationStep int, terrains []TerrainDef, borders []BorderDef) (*TerrainTable, error) {
	t := &TerrainTable{
		HalfWidth:     halfWidth,
		HalfHeight:    halfHeight,
		ElevationStep: elevationStep,
		Terrains:      terrains,
		Borders:       borders}
	if err := t.index(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *TerrainTable) index() error {
	if err := t.Validate(); err != nil {
		return err
	}
	t.terrains = make(map[TerrainType]*TerrainDef, len(t.Terrains))
	for i := range t.Terrains {
		t.terrains[t.Terrains[i].ID] = &t.Terrains[i]
	}
	t.borders = make(map[borderKey]ImageRef)
	for _, border := range t.Borders {
		for pattern, frame := range border.Frames {
			t.borders[borderKey{border.From, border.To, pattern}] = ImageRef{border.Shape, frame}
		}
	}
	return nil
}

// Validate checks integrity of the table. Priorities have to form a strict
// total order, otherwise blending would be ambiguous.
func (t *TerrainTable) Validate() error {
	if t.HalfWidth <= 0 || t.HalfHeight <= 0 {
		return fmt.Errorf("invalid tile half size %dx%d", t.HalfWidth, t.HalfHeight)
	}
	if t.ElevationStep < 0 {
		return fmt.Errorf("negative elevation height %d", t.ElevationStep)
	}
	ids := make(map[TerrainType]bool)
	priorities := make(map[int]TerrainType)
	for _, terrain := range t.Terrains {
		if ids[terrain.ID] {
			return fmt.Errorf("duplicate terrain type %d", terrain.ID)
		}
		ids[terrain.ID] = true
		if other, ok := priorities[terrain.Priority]; ok {
			return fmt.Errorf("%w: %d and %d have priority %d", ErrPriorityTie, other, terrain.ID, terrain.Priority)
		}
		priorities[terrain.Priority] = terrain.ID
	}
	for _, border := range t.Borders {
		if !ids[border.From] || !ids[border.To] {
			return fmt.Errorf("border between unknown terrain types %d and %d", border.From, border.To)
		}
		if border.From == border.To {
			return fmt.Errorf("border of terrain type %d with itself", border.From)
		}
	}
	return nil
}

// CheckMap verifies that every terrain type used on the map is defined.
func (t *TerrainTable) CheckMap(m *Map) error {
	for _, terrainType := range m.TerrainTypes() {
		if _, ok := t.terrains[terrainType]; !ok {
			return fmt.Errorf("map uses undefined terrain type %d", terrainType)
		}
	}
	return nil
}

func (t *TerrainTable) TileHalfWidth() int   { return t.HalfWidth }
func (t *TerrainTable) TileHalfHeight() int  { return t.HalfHeight }
func (t *TerrainTable) ElevationHeight() int { return t.ElevationStep }

func (t *TerrainTable) BorderTile(a, b TerrainType, pattern BlendPattern) (ImageRef, bool) {
	ref, ok := t.borders[borderKey{a, b, pattern}]
	return ref, ok
}

func (t *TerrainTable) BaseTile(terrainType TerrainType) ImageRef {
	if terrain, ok := t.terrains[terrainType]; ok {
		return terrain.Base
	}
	return ImageRef{Shape: NoShape}
}

// Priority of undefined terrain types is lower than of any defined one.
func (t *TerrainTable) Priority(terrainType TerrainType) int {
	if terrain, ok := t.terrains[terrainType]; ok {
		return terrain.Priority
	}
	return math.MinInt
}

// Shapes returns the sorted, distinct sprite sheets referenced by the table.
func (t *TerrainTable) Shapes() []int {
	seen := make(map[int]bool)
	var shapes []int
	add := func(shape int) {
		if !seen[shape] {
			seen[shape] = true
			shapes = append(shapes, shape)
		}
	}
	for _, terrain := range t.Terrains {
		add(terrain.Base.Shape)
	}
	for _, border := range t.Borders {
		add(border.Shape)
	}
	sort.Ints(shapes)
	return shapes
}

func ParseTerrainTable(data io.Reader) (*TerrainTable, error) {
	var table TerrainTable
	decoder := json.NewDecoder(data)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&table); err != nil {
		return nil, err
	}
	if err := table.index(); err != nil {
		return nil, err
	}
	return &table, nil
}

func ReadTerrainTable(fsys fs.FS, filename string) (*TerrainTable, error) {
	fileData, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return nil, fmt.Errorf("cannot read terrain table %s (%w)", filename, err)
	}
	table, err := ParseTerrainTable(bytes.NewReader(fileData))
	if err != nil {
		return nil, fmt.Errorf("cannot parse terrain table %s (%w)", filename, err)
	}
	return table, nil
}
