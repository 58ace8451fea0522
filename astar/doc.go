// Package astar implements A* shortest-path search over a grid.Grid.
//
// The search moves between neighbouring cells of the 3D lattice. Candidate
// offsets are the 26 cells around the current one (vertical search) or the 8
// cells of its horizontal layer (planar search). Each candidate is resolved
// for stepped terrain: the cell at the offset if it is walkable, otherwise
// the cell one below, otherwise the cell one above. Diagonal moves (both X
// and Z change) also require the two orthogonal cells next to the current
// cell to be walkable, so a path never cuts a blocked corner.
//
// Costs:
//
//	distance = 14*min(dx,dz) + 10*(max(dx,dz)-min(dx,dz)) + 10*dy
//
// is used both as the step cost and as the heuristic. It satisfies the
// triangle inequality, so the heuristic is consistent and returned paths are
// optimal for the resolved neighbour relation.
//
// State:
//
//   - Every call allocates private scratch tables (cost so far, estimate,
//     predecessor, open/closed state) sized to the grid, so any number of
//     searches may run concurrently over one grid.
//   - Walkability is read through the cells' atomic flags; a concurrent
//     writer may make the result momentarily stale but never corrupt it.
//
// Results:
//
//   - Path runs from the cell after start up to and including goal.
//   - start == goal is found with an empty path.
//   - An unreachable goal is not an error: Found is false and Path is empty.
//
// Errors (sentinel, programmer errors only):
//
//   - ErrNilGrid     if the grid is nil.
//   - ErrNilCell     if start or goal is nil.
//   - ErrForeignCell if start or goal belongs to another grid.
//
// Complexity:
//
//   - Time:  O(V log V) with V = cells reachable from start (each expansion
//     visits at most 26 candidates).
//   - Space: O(X×Y×Z) for the scratch tables.
package astar
