package lib

import "fmt"

// Direction is one of the eight compass directions in grid space.
// North is y-1, east is x+1.
type Direction int

const (
	North Direction = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

var Directions = [8]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

var directionOffsets = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}}

func (d Direction) Offset() (dx, dy int) {
	return directionOffsets[d][0], directionOffsets[d][1]
}

func (d Direction) IsDiagonal() bool {
	return d%2 == 1
}

func (d Direction) String() string {
	return [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}[d]
}

// DirectionMask has bit d set for every direction d in the set.
type DirectionMask uint8

func MaskOf(dirs ...Direction) DirectionMask {
	var m DirectionMask
	for _, d := range dirs {
		m |= 1 << d
	}
	return m
}

func (m DirectionMask) Has(d Direction) bool {
	return m&(1<<d) != 0
}

// orthogonalIndex packs the N, E, S, W bits into a 4 bit number (N lowest).
func (m DirectionMask) orthogonalIndex() int {
	return int(m&1) | int(m>>1&2) | int(m>>2&4) | int(m>>3&8)
}

// BlendPattern selects the shape of a border tile.
type BlendPattern int

const (
	NoBlend BlendPattern = iota
	EdgeN
	EdgeE
	EdgeS
	EdgeW
	OuterNE
	OuterSE
	OuterSW
	OuterNW
	InnerNE
	InnerSE
	InnerSW
	InnerNW
	// Peninsula patterns are named after the only orthogonal side which
	// is not covered by the overlay.
	PeninsulaN
	PeninsulaE
	PeninsulaS
	PeninsulaW
	Full
)

var blendPatternNames = [...]string{
	"none",
	"edge_n", "edge_e", "edge_s", "edge_w",
	"outer_ne", "outer_se", "outer_sw", "outer_nw",
	"inner_ne", "inner_se", "inner_sw", "inner_nw",
	"peninsula_n", "peninsula_e", "peninsula_s", "peninsula_w",
	"full"}

func (p BlendPattern) String() string {
	if p < 0 || int(p) >= len(blendPatternNames) {
		return fmt.Sprintf("BlendPattern(%d)", int(p))
	}
	return blendPatternNames[p]
}

func (p BlendPattern) MarshalText() ([]byte, error) {
	if p <= NoBlend || int(p) >= len(blendPatternNames) {
		return nil, fmt.Errorf("unknown blend pattern: %d", p)
	}
	return []byte(blendPatternNames[p]), nil
}
func (p *BlendPattern) UnmarshalText(text []byte) error {
	s := string(text)
	for i := int(EdgeN); i < len(blendPatternNames); i++ {
		if blendPatternNames[i] == s {
			*p = BlendPattern(i)
			return nil
		}
	}
	return fmt.Errorf("unknown blend pattern: \"%s\"", s)
}

// Patterns for every combination of differing orthogonal neighbours,
// indexed by DirectionMask.orthogonalIndex.
var orthogonalPatterns = [16][]BlendPattern{
	nil,            // -
	{EdgeN},        // N
	{EdgeE},        // E
	{OuterNE},      // N E
	{EdgeS},        // S
	{EdgeN, EdgeS}, // N S
	{OuterSE},      // E S
	{PeninsulaW},   // N E S
	{EdgeW},        // W
	{OuterNW},      // N W
	{EdgeE, EdgeW}, // E W
	{PeninsulaS},   // N E W
	{OuterSW},      // S W
	{PeninsulaE},   // N S W
	{PeninsulaN},   // E S W
	{Full},         // N E S W
}

var innerCorners = [8]BlendPattern{
	NorthEast: InnerNE,
	SouthEast: InnerSE,
	SouthWest: InnerSW,
	NorthWest: InnerNW,
}

// blendTable maps every mask of differing neighbour directions to the
// patterns that have to be drawn, in drawing order.
var blendTable = buildBlendTable()

func buildBlendTable() (table [256][]BlendPattern) {
	for i := 0; i < 256; i++ {
		mask := DirectionMask(i)
		patterns := append([]BlendPattern(nil), orthogonalPatterns[mask.orthogonalIndex()]...)
		for _, d := range Directions {
			if !d.IsDiagonal() || !mask.Has(d) {
				continue
			}
			// A diagonal next to a covered orthogonal side is already part
			// of that side's border.
			if mask.Has((d+7)%8) || mask.Has((d+1)%8) {
				continue
			}
			patterns = append(patterns, innerCorners[d])
		}
		table[i] = patterns
	}
	return
}

// BlendPatterns returns the border shapes for a mask of differing
// neighbours. The returned slice must not be modified.
func BlendPatterns(mask DirectionMask) []BlendPattern {
	return blendTable[mask]
}
