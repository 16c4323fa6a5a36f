package lib

import (
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"

	"github.com/zyedidia/generic/mapset"
)

// Overlay is a border tile drawn on top of a cell's base tile.
type Overlay struct {
	Image   ImageRef
	Pattern BlendPattern
	// Terrain type the border blends into.
	Type TerrainType
}

// DrawDescriptor is a fully resolved drawing instruction for a single cell.
type DrawDescriptor struct {
	XY        MapCoords
	Elevation int
	Base      ImageRef
	// Overlays in drawing order.
	Overlays []Overlay
}

type resolvedCell struct {
	descriptor DrawDescriptor
	err        error
}

// TerrainBlender computes which border tiles blend every cell of a map with
// its neighbours. Results are cached, neither the map nor the terrain
// definitions may change after the blender is created.
type TerrainBlender struct {
	defs TerrainDefinitions
	grid MapGrid

	width, height int
	cells         []*resolvedCell

	reportedMutex sync.Mutex
	reported      mapset.Set[MissingBlendTileError]
}

var _ Blender = (*TerrainBlender)(nil)

func NewTerrainBlender(defs TerrainDefinitions, grid MapGrid) *TerrainBlender {
	return &TerrainBlender{
		defs:     defs,
		grid:     grid,
		width:    grid.Width(),
		height:   grid.Height(),
		cells:    make([]*resolvedCell, grid.Width()*grid.Height()),
		reported: mapset.New[MissingBlendTileError]()}
}

func (b *TerrainBlender) Width() int  { return b.width }
func (b *TerrainBlender) Height() int { return b.height }

func (b *TerrainBlender) areCoordsValid(xy MapCoords) bool {
	return InRange(xy.X, 0, b.width) && InRange(xy.Y, 0, b.height)
}

// Resolve returns the drawing instruction for the cell at xy. If a border
// tile is missing the returned descriptor contains only the base tile and
// the error is a *MissingBlendTileError for the first missing tile in
// drawing order.
func (b *TerrainBlender) Resolve(xy MapCoords) (DrawDescriptor, error) {
	if !b.areCoordsValid(xy) {
		return DrawDescriptor{}, fmt.Errorf("%w: (%d,%d) outside of %dx%d map", ErrOutOfBounds, xy.X, xy.Y, b.width, b.height)
	}
	ix := xy.Y*b.width + xy.X
	cell := b.cells[ix]
	if cell == nil {
		cell = b.resolve(xy)
		b.cells[ix] = cell
	}
	descriptor := cell.descriptor
	descriptor.Overlays = append([]Overlay(nil), descriptor.Overlays...)
	return descriptor, cell.err
}

// Precompute resolves all cells of the map. It must not be called
// concurrently with Resolve.
func (b *TerrainBlender) Precompute() {
	rows := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < runtime.NumCPU(); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				for x := 0; x < b.width; x++ {
					if ix := y*b.width + x; b.cells[ix] == nil {
						b.cells[ix] = b.resolve(MapCoords{x, y})
					}
				}
			}
		}()
	}
	for y := 0; y < b.height; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()
}

// contribution collects directions of neighbours of a single terrain type.
type contribution struct {
	terrainType TerrainType
	priority    int
	mask        DirectionMask
}

func (b *TerrainBlender) resolve(xy MapCoords) *resolvedCell {
	cell := b.grid.Cell(xy.X, xy.Y)
	descriptor := DrawDescriptor{
		XY:        xy,
		Elevation: cell.Elevation,
		Base:      b.defs.BaseTile(cell.Type)}
	priority := b.defs.Priority(cell.Type)

	var contributions []contribution
	for _, d := range Directions {
		n := xy.Neighbour(d)
		if !b.areCoordsValid(n) {
			continue
		}
		neighbourType := b.grid.Cell(n.X, n.Y).Type
		if neighbourType == cell.Type {
			continue
		}
		neighbourPriority := b.defs.Priority(neighbourType)
		if neighbourPriority <= priority {
			continue
		}
		found := false
		for i := range contributions {
			if contributions[i].terrainType == neighbourType {
				contributions[i].mask |= MaskOf(d)
				found = true
				break
			}
		}
		if !found {
			contributions = append(contributions, contribution{neighbourType, neighbourPriority, MaskOf(d)})
		}
	}
	sort.Slice(contributions, func(i, j int) bool {
		return contributions[i].priority < contributions[j].priority
	})

	var overlays []Overlay
	var firstMissing *MissingBlendTileError
	for _, c := range contributions {
		for _, pattern := range BlendPatterns(c.mask) {
			image, ok := b.defs.BorderTile(cell.Type, c.terrainType, pattern)
			if !ok {
				missing := MissingBlendTileError{cell.Type, c.terrainType, pattern}
				b.report(missing)
				if firstMissing == nil {
					firstMissing = &missing
				}
				continue
			}
			overlays = append(overlays, Overlay{image, pattern, c.terrainType})
		}
	}
	if firstMissing != nil {
		return &resolvedCell{descriptor, firstMissing}
	}
	descriptor.Overlays = overlays
	return &resolvedCell{descriptor: descriptor}
}

func (b *TerrainBlender) report(missing MissingBlendTileError) {
	b.reportedMutex.Lock()
	defer b.reportedMutex.Unlock()
	if b.reported.Has(missing) {
		return
	}
	b.reported.Put(missing)
	log.Printf("Terrain table is incomplete, %v", &missing)
}

// MissingBlendTiles returns all distinct missing border tiles found so far.
func (b *TerrainBlender) MissingBlendTiles() []MissingBlendTileError {
	b.reportedMutex.Lock()
	defer b.reportedMutex.Unlock()
	var missing []MissingBlendTileError
	b.reported.Each(func(m MissingBlendTileError) {
		missing = append(missing, m)
	})
	sort.Slice(missing, func(i, j int) bool {
		if missing[i].From != missing[j].From {
			return missing[i].From < missing[j].From
		}
		if missing[i].To != missing[j].To {
			return missing[i].To < missing[j].To
		}
		return missing[i].Pattern < missing[j].Pattern
	})
	return missing
}
