package grid

import (
	"fmt"
	"sync/atomic"
)

// Fallback values substituted for non-positive construction parameters.
const (
	FallbackSizeX   = 16
	FallbackSizeY   = 1
	FallbackSizeZ   = 1
	FallbackScaleXZ = 1.0
	FallbackScaleY  = 2.0
)

// Kind classifies the terrain a cell represents. Searches ignore it.
type Kind uint8

const (
	// KindGround is a cell units stand on.
	KindGround Kind = iota
	// KindAir is an empty cell above the ground.
	KindAir
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindGround:
		return "ground"
	case KindAir:
		return "air"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Coord is an integer cell coordinate.
type Coord struct {
	X, Y, Z int
}

// String formats the coordinate as "x,y,z".
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d,%d", c.X, c.Y, c.Z)
}

// Vec3 is a world-space position.
type Vec3 struct {
	X, Y, Z float64
}

// Cell is one addressable point of the lattice.
//
// Cells are created by New and handed out by pointer; they must not be copied.
// Coordinates are fixed. Walkability is the only mutable state.
type Cell struct {
	X, Y, Z int  // Coordinates within the grid
	Kind    Kind // Terrain classification

	blocked atomic.Bool // zero value means walkable
}

// Walkable reports whether a unit may enter the cell.
func (c *Cell) Walkable() bool {
	return !c.blocked.Load()
}

// setWalkable stores the flag and reports whether it changed.
func (c *Cell) setWalkable(walkable bool) bool {
	return c.blocked.Swap(!walkable) != !walkable
}

// Coord returns the cell coordinates.
func (c *Cell) Coord() Coord {
	return Coord{X: c.X, Y: c.Y, Z: c.Z}
}

// String formats the cell as "x,y,z".
func (c *Cell) String() string {
	return c.Coord().String()
}

// Spec holds the construction parameters of a Grid.
type Spec struct {
	SizeX, SizeY, SizeZ int     // Cell counts per axis
	ScaleXZ             float64 // World distance between horizontal neighbours
	ScaleY              float64 // World distance between floors
}

// DefaultSpec returns a 32×3×32 grid with horizontal scale 1 and vertical
// scale 2.3.
func DefaultSpec() Spec {
	return Spec{
		SizeX:   32,
		SizeY:   3,
		SizeZ:   32,
		ScaleXZ: 1,
		ScaleY:  2.3,
	}
}

// Grid is a dense 3D lattice of cells.
// SizeX, SizeY, SizeZ and the scales are set by New and never change.
type Grid struct {
	sizeX, sizeY, sizeZ int
	scaleXZ, scaleY     float64
	cells               []Cell
	version             atomic.Uint64
}
