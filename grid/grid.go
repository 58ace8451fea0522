package grid

import (
	"encoding/binary"
	"math"

	"github.com/zeebo/xxh3"

	"github.com/katalvlaran/voxpath/internal/logger"
	"github.com/katalvlaran/voxpath/types"
)

// Option configures optional Grid dependencies.
type Option func(*options)

type options struct {
	logger types.Logger
}

// WithLogger sets the logger used to report defaulted construction parameters.
func WithLogger(l types.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New constructs a Grid from spec. It never fails: each non-positive dimension
// or scale is replaced by its fallback value and reported at Info level.
// Every cell starts walkable with KindGround.
// Complexity: O(X×Y×Z) time and memory.
func New(spec Spec, opts ...Option) *Grid {
	o := options{logger: logger.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	spec = normalize(spec, o.logger)

	g := &Grid{
		sizeX:   spec.SizeX,
		sizeY:   spec.SizeY,
		sizeZ:   spec.SizeZ,
		scaleXZ: spec.ScaleXZ,
		scaleY:  spec.ScaleY,
		cells:   make([]Cell, spec.SizeX*spec.SizeY*spec.SizeZ),
	}
	for i := range g.cells {
		x, y, z := g.Coordinate(i)
		g.cells[i].X, g.cells[i].Y, g.cells[i].Z = x, y, z
	}

	o.logger.Debug("grid created",
		"sizeX", g.sizeX, "sizeY", g.sizeY, "sizeZ", g.sizeZ,
		"scaleXZ", g.scaleXZ, "scaleY", g.scaleY)

	return g
}

func normalize(s Spec, l types.Logger) Spec {
	if s.SizeX <= 0 {
		l.Info("dimension x is not positive, assigning default value", "value", s.SizeX, "default", FallbackSizeX)
		s.SizeX = FallbackSizeX
	}
	if s.SizeY <= 0 {
		l.Info("dimension y is not positive, assigning default value", "value", s.SizeY, "default", FallbackSizeY)
		s.SizeY = FallbackSizeY
	}
	if s.SizeZ <= 0 {
		l.Info("dimension z is not positive, assigning default value", "value", s.SizeZ, "default", FallbackSizeZ)
		s.SizeZ = FallbackSizeZ
	}
	// !(v > 0) also catches NaN.
	if !(s.ScaleXZ > 0) || math.IsInf(s.ScaleXZ, 0) {
		l.Info("scale xz is not positive, assigning default value", "value", s.ScaleXZ, "default", FallbackScaleXZ)
		s.ScaleXZ = FallbackScaleXZ
	}
	if !(s.ScaleY > 0) || math.IsInf(s.ScaleY, 0) {
		l.Info("scale y is not positive, assigning default value", "value", s.ScaleY, "default", FallbackScaleY)
		s.ScaleY = FallbackScaleY
	}

	return s
}

// Dimensions returns the cell counts per axis.
func (g *Grid) Dimensions() (sizeX, sizeY, sizeZ int) {
	return g.sizeX, g.sizeY, g.sizeZ
}

// Spacing returns the horizontal (X and Z) and vertical (Y) scales.
func (g *Grid) Spacing() (horizontal, vertical float64) {
	return g.scaleXZ, g.scaleY
}

// Spec returns the effective construction parameters after defaulting.
func (g *Grid) Spec() Spec {
	return Spec{SizeX: g.sizeX, SizeY: g.sizeY, SizeZ: g.sizeZ, ScaleXZ: g.scaleXZ, ScaleY: g.scaleY}
}

// Len returns the total number of cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// InBounds reports whether (x,y,z) lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(x, y, z int) bool {
	return x >= 0 && x < g.sizeX && y >= 0 && y < g.sizeY && z >= 0 && z < g.sizeZ
}

// Index maps in-range (x,y,z) to its dense layer-major index:
// (y*SizeZ + z)*SizeX + x.
// Complexity: O(1).
func (g *Grid) Index(x, y, z int) int {
	return (y*g.sizeZ+z)*g.sizeX + x
}

// Coordinate converts a dense index back to (x,y,z).
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) (x, y, z int) {
	x = idx % g.sizeX
	rest := idx / g.sizeX
	z = rest % g.sizeZ
	y = rest / g.sizeZ

	return x, y, z
}

// IndexOf returns the dense index of c.
func (g *Grid) IndexOf(c *Cell) int {
	return g.Index(c.X, c.Y, c.Z)
}

// CellByIndex returns the cell at a dense index in [0, Len()).
func (g *Grid) CellByIndex(idx int) *Cell {
	return &g.cells[idx]
}

// Owns reports whether c is one of this grid's cells.
func (g *Grid) Owns(c *Cell) bool {
	if c == nil || !g.InBounds(c.X, c.Y, c.Z) {
		return false
	}

	return &g.cells[g.Index(c.X, c.Y, c.Z)] == c
}

// CellAt returns the cell at (x,y,z) after clamping each axis independently
// into [0, size-1]. Out-of-range requests saturate to the nearest edge cell.
// Complexity: O(1).
func (g *Grid) CellAt(x, y, z int) *Cell {
	x = clamp(x, g.sizeX)
	y = clamp(y, g.sizeY)
	z = clamp(z, g.sizeZ)

	return &g.cells[g.Index(x, y, z)]
}

// Lookup returns the cell at (x,y,z) without clamping.
// The boolean is false when the coordinates fall outside the grid.
// Complexity: O(1).
func (g *Grid) Lookup(x, y, z int) (*Cell, bool) {
	if !g.InBounds(x, y, z) {
		return nil, false
	}

	return &g.cells[g.Index(x, y, z)], true
}

// At is CellAt for a Coord.
func (g *Grid) At(c Coord) *Cell {
	return g.CellAt(c.X, c.Y, c.Z)
}

// CellToWorld returns the world position of cell coordinates:
// (x*ScaleXZ, y*ScaleY, z*ScaleXZ). Coordinates are not clamped.
func (g *Grid) CellToWorld(x, y, z int) Vec3 {
	return Vec3{
		X: float64(x) * g.scaleXZ,
		Y: float64(y) * g.scaleY,
		Z: float64(z) * g.scaleXZ,
	}
}

// WorldToCell rounds each axis of p to the nearest multiple of its scale and
// returns the clamped cell there. It is the inverse of CellToWorld for every
// in-range coordinate.
// Complexity: O(1).
func (g *Grid) WorldToCell(p Vec3) *Cell {
	return &g.cells[g.Index(
		roundAxis(p.X, g.scaleXZ, g.sizeX),
		roundAxis(p.Y, g.scaleY, g.sizeY),
		roundAxis(p.Z, g.scaleXZ, g.sizeZ),
	)]
}

// SetWalkable sets the walkability of the clamped cell at (x,y,z).
// The change is visible to every later read, including running searches.
func (g *Grid) SetWalkable(x, y, z int, walkable bool) {
	if g.CellAt(x, y, z).setWalkable(walkable) {
		g.version.Add(1)
	}
}

// SetCellWalkable sets the walkability of c. Cells g does not own, nil
// included, are ignored.
func (g *Grid) SetCellWalkable(c *Cell, walkable bool) {
	if !g.Owns(c) {
		return
	}
	if c.setWalkable(walkable) {
		g.version.Add(1)
	}
}

// SetRegion sets walkability on every cell of the inclusive box spanned by
// a and b (corners in any order, each clamped into range).
// Returns the number of cells whose flag changed.
// Complexity: O(box volume).
func (g *Grid) SetRegion(a, b Coord, walkable bool) int {
	x0, x1 := span(a.X, b.X, g.sizeX)
	y0, y1 := span(a.Y, b.Y, g.sizeY)
	z0, z1 := span(a.Z, b.Z, g.sizeZ)

	changed := 0
	for y := y0; y <= y1; y++ {
		for z := z0; z <= z1; z++ {
			for x := x0; x <= x1; x++ {
				if g.cells[g.Index(x, y, z)].setWalkable(walkable) {
					changed++
				}
			}
		}
	}
	if changed > 0 {
		g.version.Add(uint64(changed))
	}

	return changed
}

// Version returns a counter bumped on every effective walkability change.
func (g *Grid) Version() uint64 {
	return g.version.Load()
}

// WalkableCount returns the number of walkable cells.
// Complexity: O(X×Y×Z).
func (g *Grid) WalkableCount() int {
	n := 0
	for i := range g.cells {
		if g.cells[i].Walkable() {
			n++
		}
	}

	return n
}

// Digest hashes the dimensions and the walkability bitmap with xxh3.
// Two grids with equal digests have, with overwhelming probability, the same
// shape and the same walkable cells.
// Complexity: O(X×Y×Z).
func (g *Grid) Digest() uint64 {
	buf := make([]byte, 12+(len(g.cells)+7)/8)
	binary.LittleEndian.PutUint32(buf[0:], uint32(g.sizeX))
	binary.LittleEndian.PutUint32(buf[4:], uint32(g.sizeY))
	binary.LittleEndian.PutUint32(buf[8:], uint32(g.sizeZ))
	bits := buf[12:]
	for i := range g.cells {
		if g.cells[i].Walkable() {
			bits[i>>3] |= 1 << (i & 7)
		}
	}

	return xxh3.Hash(buf)
}

// clamp saturates v into [0, size-1].
func clamp(v, size int) int {
	if v < 0 {
		return 0
	}
	if v >= size {
		return size - 1
	}

	return v
}

// span orders and clamps an inclusive range.
func span(a, b, size int) (lo, hi int) {
	if a > b {
		a, b = b, a
	}

	return clamp(a, size), clamp(b, size)
}

// roundAxis converts a world coordinate to a clamped cell coordinate.
func roundAxis(v, scale float64, size int) int {
	r := math.Round(v / scale)
	switch {
	case math.IsNaN(r), r <= 0:
		return 0
	case r >= float64(size-1):
		return size - 1
	default:
		return int(r)
	}
}
