package astar

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/voxpath/grid"
)

// Search runs A* from start to goal over g.
//
// Returns:
//
//   - Result with Found=true and the path (start excluded, goal included).
//   - Result with Found=false and an empty path when goal is unreachable.
//   - error only when an argument is invalid (ErrNilGrid, ErrNilCell,
//     ErrForeignCell).
//
// Preconditions and validation (in order):
//  1. g must be non-nil (ErrNilGrid).
//  2. start and goal must be non-nil (ErrNilCell).
//  3. start and goal must be cells of g (ErrForeignCell).
//
// The walkability of start is not checked: a unit standing on start usually
// marks its own cell unwalkable. An unwalkable goal is never reached.
//
// Complexity:
//
//   - Time:  O(V log V)
//   - Space: O(X×Y×Z)
func Search(g *grid.Grid, start, goal *grid.Cell, opts ...Option) (Result, error) {
	// 1) Build options
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	// 2) Validate arguments
	if g == nil {
		return Result{}, ErrNilGrid
	}
	if start == nil || goal == nil {
		return Result{}, ErrNilCell
	}
	if !g.Owns(start) {
		return Result{}, fmt.Errorf("%w: start %s", ErrForeignCell, start)
	}
	if !g.Owns(goal) {
		return Result{}, fmt.Errorf("%w: goal %s", ErrForeignCell, goal)
	}

	// 3) Run with private scratch tables
	r := newRunner(g, cfg, start, goal)
	r.init()

	return r.process(), nil
}

// Distance returns the octile distance between two cells:
// 14*min(dx,dz) + 10*(max(dx,dz)-min(dx,dz)) + 10*dy.
func Distance(a, b *grid.Cell) int {
	return distance(a.X, a.Y, a.Z, b.X, b.Y, b.Z)
}

func distance(ax, ay, az, bx, by, bz int) int {
	dx, dy, dz := abs(ax-bx), abs(ay-by), abs(az-bz)
	if dx > dz {
		return DiagonalCost*dz + StraightCost*(dx-dz) + StraightCost*dy
	}

	return DiagonalCost*dx + StraightCost*(dz-dx) + StraightCost*dy
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// Per-cell search state.
const (
	stateUnseen uint8 = iota
	stateOpen
	stateClosed
)

// runner holds the mutable state for a single A* execution.
// Nothing here is shared with other searches.
type runner struct {
	g       *grid.Grid
	options Options
	start   int // dense index of start
	goal    int // dense index of goal
	goalC   *grid.Cell

	move  []int       // cost so far, valid when state != stateUnseen
	prev  []int       // predecessor index, -1 for start
	state []uint8     // unseen, open or closed
	items []*openItem // heap entry of each open cell
	pq    openSet     // min-heap ordered by (total, heuristic, seq)
	seq   uint64      // insertion counter for deterministic ties

	expanded int
	nbuf     []*grid.Cell // reused neighbour buffer
}

func newRunner(g *grid.Grid, cfg Options, start, goal *grid.Cell) *runner {
	n := g.Len()

	return &runner{
		g:       g,
		options: cfg,
		start:   g.IndexOf(start),
		goal:    g.IndexOf(goal),
		goalC:   goal,
		move:    make([]int, n),
		prev:    make([]int, n),
		state:   make([]uint8, n),
		items:   make([]*openItem, n),
		pq:      make(openSet, 0, 64),
		nbuf:    make([]*grid.Cell, 0, 26),
	}
}

// init opens the start cell with zero cost.
func (r *runner) init() {
	heap.Init(&r.pq)
	r.prev[r.start] = -1
	r.open(r.start, 0, Distance(r.g.CellByIndex(r.start), r.goalC))
}

// process is the main loop: pop the best open cell, stop at goal, expand.
func (r *runner) process() Result {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*openItem)
		cur := item.idx
		r.items[cur] = nil
		r.state[cur] = stateClosed
		r.expanded++

		if cur == r.goal {
			return Result{
				Path:     r.retrace(),
				Cost:     r.move[cur],
				Expanded: r.expanded,
				Found:    true,
			}
		}

		r.relax(cur)
	}

	return Result{Path: []*grid.Cell{}, Expanded: r.expanded}
}

// relax updates every resolved, non-closed neighbour of cur whose recorded
// cost improves through cur.
func (r *runner) relax(cur int) {
	curCell := r.g.CellByIndex(cur)
	r.nbuf = appendNeighbors(r.nbuf[:0], r.g, curCell, r.options.Vertical)

	for _, nb := range r.nbuf {
		ni := r.g.IndexOf(nb)
		if r.state[ni] == stateClosed {
			continue
		}

		tentative := r.move[cur] + Distance(curCell, nb)
		if r.state[ni] == stateOpen && tentative >= r.move[ni] {
			continue
		}

		r.prev[ni] = cur
		h := Distance(nb, r.goalC)
		if r.state[ni] == stateOpen {
			r.move[ni] = tentative
			it := r.items[ni]
			it.total = tentative + h
			it.heuristic = h
			heap.Fix(&r.pq, it.index)

			continue
		}
		r.open(ni, tentative, h)
	}
}

// open records costs for idx and pushes it onto the heap.
func (r *runner) open(idx, move, h int) {
	r.move[idx] = move
	r.state[idx] = stateOpen
	it := &openItem{idx: idx, total: move + h, heuristic: h, seq: r.seq}
	r.seq++
	r.items[idx] = it
	heap.Push(&r.pq, it)
}

// retrace follows predecessors from goal back to start and reverses them.
// The start cell is excluded.
func (r *runner) retrace() []*grid.Cell {
	path := make([]*grid.Cell, 0, 16)
	for cur := r.goal; cur != r.start; cur = r.prev[cur] {
		path = append(path, r.g.CellByIndex(cur))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
