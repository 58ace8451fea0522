package movement

import (
	"errors"

	"github.com/katalvlaran/voxpath/grid"
)

// Action point costs.
const (
	// StraightStepCost is charged for every step.
	StraightStepCost = 2
	// DiagonalStepSurcharge is added when a step changes both x and z.
	DiagonalStepSurcharge = StraightStepCost / 2
)

// Sentinel errors.
var (
	// ErrNilCell is returned when a required cell is nil.
	ErrNilCell = errors.New("movement: cell is nil")

	// ErrForeignCell is returned by Place when the cell belongs to another grid.
	ErrForeignCell = errors.New("movement: cell does not belong to grid")

	// ErrStalePlan is returned by Unit.Advance when the plan does not start
	// at the unit's cell.
	ErrStalePlan = errors.New("movement: plan does not start at unit cell")
)

// Step is one charged move along a path.
type Step struct {
	Cell     *grid.Cell
	Position grid.Vec3 // world position of Cell
	Cost     int       // action points for this step alone
	Diagonal bool
}

// Plan is a path split against an action point budget.
type Plan struct {
	Origin       *grid.Cell
	Affordable   []Step
	Unaffordable []Step
	Required     int // cost of the whole path
	Budget       int
}

// Spent returns the cost of the affordable prefix.
func (p Plan) Spent() int {
	n := 0
	for _, s := range p.Affordable {
		n += s.Cost
	}

	return n
}

// Complete reports whether the whole path fits in the budget.
func (p Plan) Complete() bool {
	return len(p.Unaffordable) == 0
}

// Destination returns the last affordable cell, or Origin when nothing is
// affordable.
func (p Plan) Destination() *grid.Cell {
	if len(p.Affordable) == 0 {
		return p.Origin
	}

	return p.Affordable[len(p.Affordable)-1].Cell
}

// StepCost returns the action point cost of moving from a to b and whether
// the move is diagonal.
func StepCost(a, b *grid.Cell) (cost int, diagonal bool) {
	if a.X != b.X && a.Z != b.Z {
		return StraightStepCost + DiagonalStepSurcharge, true
	}

	return StraightStepCost, false
}

// Split charges path, which starts after origin, against budget.
//
// Steps are charged in order and the running total is compared with budget.
// Once the total exceeds budget every remaining step is unaffordable, even a
// cheaper one. An empty path yields an empty, complete Plan.
func Split(g *grid.Grid, origin *grid.Cell, path []*grid.Cell, budget int) Plan {
	plan := Plan{
		Origin:       origin,
		Affordable:   make([]Step, 0, len(path)),
		Unaffordable: []Step{},
		Budget:       budget,
	}

	prev := origin
	for _, c := range path {
		cost, diag := StepCost(prev, c)
		plan.Required += cost
		step := Step{Cell: c, Position: g.CellToWorld(c.X, c.Y, c.Z), Cost: cost, Diagonal: diag}
		if plan.Required > budget {
			plan.Unaffordable = append(plan.Unaffordable, step)
		} else {
			plan.Affordable = append(plan.Affordable, step)
		}
		prev = c
	}

	return plan
}
