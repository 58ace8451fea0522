package astar

import "github.com/katalvlaran/voxpath/grid"

// offset is a candidate move relative to the current cell.
type offset struct{ dx, dy, dz int }

// Precomputed candidate offsets, in x-major, y, z order.
var (
	cubeOffsets  = buildOffsets(true)  // 26 neighbours
	planeOffsets = buildOffsets(false) // 8 neighbours
)

func buildOffsets(vertical bool) []offset {
	out := make([]offset, 0, 26)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if !vertical && dy != 0 {
				continue
			}
			for dz := -1; dz <= 1; dz++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				out = append(out, offset{dx, dy, dz})
			}
		}
	}

	return out
}

// Neighbors returns the cells reachable in one step from c, using the same
// resolution rules as Search. The result may repeat a cell when two offsets
// resolve to it, and may contain c itself on stepped terrain.
func Neighbors(g *grid.Grid, c *grid.Cell, vertical bool) []*grid.Cell {
	return appendNeighbors(make([]*grid.Cell, 0, 26), g, c, vertical)
}

func appendNeighbors(dst []*grid.Cell, g *grid.Grid, c *grid.Cell, vertical bool) []*grid.Cell {
	offsets := planeOffsets
	if vertical {
		offsets = cubeOffsets
	}

	for _, o := range offsets {
		nb := resolve(g, c.X+o.dx, c.Y+o.dy, c.Z+o.dz)
		if nb == nil {
			continue
		}
		if o.dx != 0 && o.dz != 0 && !cornerClear(g, c, o) {
			continue
		}
		dst = append(dst, nb)
	}

	return dst
}

// resolve picks the cell at (x,y,z) if walkable, else the one below, else
// the one above. Cells outside the grid do not exist.
func resolve(g *grid.Grid, x, y, z int) *grid.Cell {
	if c, ok := g.Lookup(x, y, z); ok && c.Walkable() {
		return c
	}
	if c, ok := g.Lookup(x, y-1, z); ok && c.Walkable() {
		return c
	}
	if c, ok := g.Lookup(x, y+1, z); ok && c.Walkable() {
		return c
	}

	return nil
}

// cornerClear reports whether both orthogonal cells beside a diagonal move
// exist and are walkable on the current cell's layer.
func cornerClear(g *grid.Grid, c *grid.Cell, o offset) bool {
	a, ok := g.Lookup(c.X+o.dx, c.Y, c.Z)
	if !ok || !a.Walkable() {
		return false
	}
	b, ok := g.Lookup(c.X, c.Y, c.Z+o.dz)

	return ok && b.Walkable()
}
