package movement

import "github.com/katalvlaran/voxpath/grid"

// DefaultActionPoints is the budget a unit starts a turn with.
const DefaultActionPoints = 20

// Unit occupies one cell of a grid and spends action points to move.
// The occupied cell is kept unwalkable so other searches route around it.
// A Unit is not safe for concurrent use.
type Unit struct {
	g      *grid.Grid
	cell   *grid.Cell
	points int
}

// Place puts a unit on cell with the given points and marks the cell
// unwalkable.
func Place(g *grid.Grid, cell *grid.Cell, points int) (*Unit, error) {
	if cell == nil {
		return nil, ErrNilCell
	}
	if !g.Owns(cell) {
		return nil, ErrForeignCell
	}
	g.SetCellWalkable(cell, false)

	return &Unit{g: g, cell: cell, points: points}, nil
}

// Cell returns the occupied cell.
func (u *Unit) Cell() *grid.Cell { return u.cell }

// Points returns the remaining action points.
func (u *Unit) Points() int { return u.points }

// Refill sets the action points, typically at the start of a turn.
func (u *Unit) Refill(points int) { u.points = points }

// Advance walks the affordable steps of plan, releasing each cell it leaves
// and occupying each cell it enters. It stops early if a step costs more
// than the remaining points and returns the number of steps taken.
func (u *Unit) Advance(plan Plan) (int, error) {
	if plan.Origin != u.cell {
		return 0, ErrStalePlan
	}

	moved := 0
	for _, s := range plan.Affordable {
		if s.Cost > u.points {
			break
		}
		u.g.SetCellWalkable(u.cell, true)
		u.g.SetCellWalkable(s.Cell, false)
		u.cell = s.Cell
		u.points -= s.Cost
		moved++
	}

	return moved, nil
}

// Remove frees the occupied cell.
func (u *Unit) Remove() {
	u.g.SetCellWalkable(u.cell, true)
}
