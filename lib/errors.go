package lib

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds      = errors.New("coordinates out of bounds")
	ErrMissingBlendTile = errors.New("missing blend tile")
	ErrMissingImage     = errors.New("missing image")
	ErrPriorityTie      = errors.New("terrain types with equal priority")
)

// MissingBlendTileError reports a combination of terrain types and a blend
// pattern for which the terrain table has no border tile.
type MissingBlendTileError struct {
	From, To TerrainType
	Pattern  BlendPattern
}

func (e *MissingBlendTileError) Error() string {
	return fmt.Sprintf("missing blend tile %v for terrain %d bordering %d", e.Pattern, e.From, e.To)
}
func (e *MissingBlendTileError) Is(target error) bool {
	return target == ErrMissingBlendTile
}

type MissingImageError struct {
	Ref ImageRef
}

func (e *MissingImageError) Error() string {
	return fmt.Sprintf("missing image %d/%d", e.Ref.Shape, e.Ref.Frame)
}
func (e *MissingImageError) Is(target error) bool {
	return target == ErrMissingImage
}
