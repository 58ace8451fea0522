package astar

import (
	"errors"

	"github.com/katalvlaran/voxpath/grid"
)

// Sentinel errors returned by Search.
var (
	// ErrNilGrid indicates that a nil *grid.Grid was passed to Search.
	ErrNilGrid = errors.New("astar: grid is nil")

	// ErrNilCell indicates that start or goal is nil.
	ErrNilCell = errors.New("astar: start or goal cell is nil")

	// ErrForeignCell indicates that start or goal is not a cell of the grid.
	ErrForeignCell = errors.New("astar: cell does not belong to grid")
)

// Step weights of the octile distance.
const (
	// StraightCost is the cost of one orthogonal or vertical step.
	StraightCost = 10
	// DiagonalCost is the cost of one diagonal step in the horizontal plane.
	DiagonalCost = 14
)

// Options configures a search.
//
// Vertical – if true, candidate offsets span the full 3×3×3 cube (26
// neighbours); otherwise only the 8 neighbours of the current layer. Stepped
// terrain resolution (one below, one above) applies in both modes.
type Options struct {
	Vertical bool
}

// Option represents a functional option for configuring Search.
type Option func(*Options)

// WithVertical enables or disables the 26-neighbour search.
func WithVertical(vertical bool) Option {
	return func(o *Options) {
		o.Vertical = vertical
	}
}

// DefaultOptions returns the defaults: Vertical=true.
func DefaultOptions() Options {
	return Options{Vertical: true}
}

// Result contains the outcome of a search.
//
// Path     – cells from the one after start to goal, inclusive of goal.
// Cost     – octile cost of the path (0 when Path is empty).
// Expanded – number of cells moved to the closed set.
// Found    – true when goal was reached (also for start == goal).
type Result struct {
	Path     []*grid.Cell
	Cost     int
	Expanded int
	Found    bool
}

// Coords returns the path as coordinates.
func (r Result) Coords() []grid.Coord {
	out := make([]grid.Coord, len(r.Path))
	for i, c := range r.Path {
		out[i] = c.Coord()
	}

	return out
}
