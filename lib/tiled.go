package lib

import (
	"encoding/json"
	"fmt"
	"io"
)

// Subset of the Tiled JSON map format (https://www.mapeditor.org) used to
// exchange scenario maps with the Tiled editor.

type Orientation int

const (
	Orthogonal Orientation = iota
	Isometric
	Staggered
	Hexagonal
)

var orientationNames = []string{"orthogonal", "isometric", "staggered", "hexagonal"}

func (o Orientation) MarshalText() ([]byte, error) {
	return marshalName("orientation", orientationNames, int(o))
}
func (o *Orientation) UnmarshalText(text []byte) error {
	i, err := unmarshalName("orientation", orientationNames, text)
	*o = Orientation(i)
	return err
}

type RenderOrder int

const (
	RightDown RenderOrder = iota
	RightUp
	LeftDown
	LeftUp
)

var renderOrderNames = []string{"right-down", "right-up", "left-down", "left-up"}

func (ro RenderOrder) MarshalText() ([]byte, error) {
	return marshalName("renderorder", renderOrderNames, int(ro))
}
func (ro *RenderOrder) UnmarshalText(text []byte) error {
	i, err := unmarshalName("renderorder", renderOrderNames, text)
	*ro = RenderOrder(i)
	return err
}

type LayerType int

const (
	TileLayer LayerType = iota
	ObjectGroup
	ImageLayer
	Group
)

var layerTypeNames = []string{"tilelayer", "objectgroup", "imagelayer", "group"}

func (lt LayerType) MarshalText() ([]byte, error) {
	return marshalName("layer type", layerTypeNames, int(lt))
}
func (lt *LayerType) UnmarshalText(text []byte) error {
	i, err := unmarshalName("layer type", layerTypeNames, text)
	*lt = LayerType(i)
	return err
}

func marshalName(kind string, names []string, i int) ([]byte, error) {
	if !InRange(i, 0, len(names)) {
		return nil, fmt.Errorf("unknown %s: %d", kind, i)
	}
	return []byte(names[i]), nil
}
func unmarshalName(kind string, names []string, text []byte) (int, error) {
	for i, name := range names {
		if name == string(text) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown %s: \"%s\"", kind, text)
}

type Layer struct {
	Data    []int     `json:"data,omitempty"`
	Height  int       `json:"height"`
	Width   int       `json:"width"`
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Opacity float64   `json:"opacity"`
	Type    LayerType `json:"type"`
	Visible bool      `json:"visible"`
	X       int       `json:"x"`
	Y       int       `json:"y"`
}

type TileSet struct {
	Columns     int    `json:"columns"`
	FirstGID    int    `json:"firstgid"`
	Margin      int    `json:"margin"`
	Name        string `json:"name"`
	Spacing     int    `json:"spacing"`
	TileCount   int    `json:"tilecount"`
	TileHeight  int    `json:"tileheight"`
	TileWidth   int    `json:"tilewidth"`
	Image       string `json:"image"`
	ImageHeight int    `json:"imageheight"`
	ImageWidth  int    `json:"imagewidth"`
}

type TiledMap struct {
	Height       int         `json:"height"`
	Width        int         `json:"width"`
	Infinite     bool        `json:"infinite"`
	Layers       []Layer     `json:"layers"`
	NextLayerID  int         `json:"nextlayerid"`
	NextObjectID int         `json:"nextobjectid"`
	Orientation  Orientation `json:"orientation"`
	RenderOrder  RenderOrder `json:"renderorder"`
	TileHeight   int         `json:"tileheight"`
	TileWidth    int         `json:"tilewidth"`
	Type         string      `json:"type"`
	TileSets     []TileSet   `json:"tilesets"`
}

const (
	TerrainLayerName   = "terrain"
	ElevationLayerName = "elevation"
)

// Tiled stores flip flags in the three highest bits of a gid.
const tiledGIDMask = 0x1fffffff

func ParseTiledMap(data io.Reader) (*TiledMap, error) {
	var tiledMap TiledMap
	if err := json.NewDecoder(data).Decode(&tiledMap); err != nil {
		return nil, err
	}
	return &tiledMap, nil
}

func (t *TiledMap) layer(name string) *Layer {
	for i, layer := range t.Layers {
		if layer.Name == name && layer.Type == TileLayer {
			return &t.Layers[i]
		}
	}
	return nil
}

// MapFromTiled converts an isometric Tiled map. Tiles of the terrain layer
// encode terrain type+1 relative to the first tile set, the optional
// elevation layer holds raw elevation levels.
func MapFromTiled(t *TiledMap) (*Map, error) {
	if t.Orientation != Isometric {
		orientation, _ := t.Orientation.MarshalText()
		return nil, fmt.Errorf("unsupported map orientation %s", orientation)
	}
	terrainLayer := t.layer(TerrainLayerName)
	if terrainLayer == nil {
		return nil, fmt.Errorf("no \"%s\" tile layer", TerrainLayerName)
	}
	size := t.Width * t.Height
	if len(terrainLayer.Data) != size {
		return nil, fmt.Errorf("terrain layer has %d tiles, expected %d", len(terrainLayer.Data), size)
	}
	firstGID := 1
	if len(t.TileSets) > 0 {
		firstGID = t.TileSets[0].FirstGID
	}
	elevationLayer := t.layer(ElevationLayerName)
	if elevationLayer != nil && len(elevationLayer.Data) != size {
		return nil, fmt.Errorf("elevation layer has %d tiles, expected %d", len(elevationLayer.Data), size)
	}
	cells := make([]TerrainCell, size)
	for i, gid := range terrainLayer.Data {
		terrainType := gid&tiledGIDMask - firstGID
		if !InRange(terrainType, 0, 256) {
			return nil, fmt.Errorf("invalid terrain tile %d at (%d,%d)", gid, i%t.Width, i/t.Width)
		}
		cells[i].Type = TerrainType(terrainType)
		if elevationLayer != nil {
			cells[i].Elevation = elevationLayer.Data[i]
		}
	}
	return NewMap(t.Width, t.Height, cells)
}

// ToTiled converts the map to an isometric Tiled map using the given tile
// set for terrain tiles.
func (m *Map) ToTiled(projection Projection, tileSet TileSet) *TiledMap {
	terrainData := make([]int, len(m.cells))
	elevationData := make([]int, len(m.cells))
	for i, cell := range m.cells {
		terrainData[i] = int(cell.Type) + tileSet.FirstGID
		elevationData[i] = cell.Elevation
	}
	newLayer := func(id int, name string, data []int, visible bool) Layer {
		return Layer{
			Data:    data,
			Height:  m.height,
			Width:   m.width,
			ID:      id,
			Name:    name,
			Opacity: 1,
			Type:    TileLayer,
			Visible: visible}
	}
	return &TiledMap{
		Height: m.height,
		Width:  m.width,
		Layers: []Layer{
			newLayer(1, TerrainLayerName, terrainData, true),
			newLayer(2, ElevationLayerName, elevationData, false)},
		NextLayerID:  3,
		NextObjectID: 1,
		Orientation:  Isometric,
		RenderOrder:  RightDown,
		TileHeight:   2 * projection.HalfHeight,
		TileWidth:    2 * projection.HalfWidth,
		Type:         "map",
		TileSets:     []TileSet{tileSet}}
}
