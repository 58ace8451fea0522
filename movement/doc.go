// Package movement turns a computed path into a move a unit can afford.
//
// Moving one cell costs StraightStepCost action points, and a step that
// changes both x and z costs DiagonalStepSurcharge more. Split charges a
// path step by step against a budget: the prefix whose running total stays
// within the budget is Affordable, everything after the first step that
// overshoots is Unaffordable.
//
// Tracker sits between a unit and the scheduler. It requests a new path only
// when the (current, target) pair changes and keeps the Plan built from the
// latest delivered path. Unit owns an occupied cell: it keeps that cell
// unwalkable and moves along the affordable prefix of a Plan.
package movement
