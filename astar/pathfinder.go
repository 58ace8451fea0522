package astar

import "github.com/katalvlaran/voxpath/grid"

// Pathfinder binds a grid and search options so the search can be injected
// into components that only know start and goal cells, such as the job
// scheduler.
type Pathfinder struct {
	g    *grid.Grid
	opts []Option
}

// NewPathfinder returns a Pathfinder searching g with opts.
func NewPathfinder(g *grid.Grid, opts ...Option) *Pathfinder {
	return &Pathfinder{g: g, opts: opts}
}

// Grid returns the bound grid.
func (p *Pathfinder) Grid() *grid.Grid {
	return p.g
}

// Find runs Search on the bound grid.
func (p *Pathfinder) Find(start, goal *grid.Cell) (Result, error) {
	return Search(p.g, start, goal, p.opts...)
}
