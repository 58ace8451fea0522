package astar

// openItem is one open cell in the priority queue.
type openItem struct {
	idx       int    // dense cell index
	total     int    // move + heuristic
	heuristic int    // estimate to goal, breaks total ties
	seq       uint64 // push order, breaks remaining ties
	index     int    // position in the heap, maintained by Swap
}

// openSet is a min-heap of *openItem ordered by total cost, then heuristic,
// then insertion order. It supports decrease-key through heap.Fix.
type openSet []*openItem

// Len returns the number of items in the heap.
func (pq openSet) Len() int { return len(pq) }

// Less orders by lowest total, then lowest heuristic, then earliest push.
func (pq openSet) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.total != b.total {
		return a.total < b.total
	}
	if a.heuristic != b.heuristic {
		return a.heuristic < b.heuristic
	}

	return a.seq < b.seq
}

// Swap swaps two elements and keeps their heap positions current.
func (pq openSet) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

// Push adds x to the heap. Called by heap.Push; x must be *openItem.
func (pq *openSet) Push(x any) {
	it := x.(*openItem)
	it.index = len(*pq)
	*pq = append(*pq, it)
}

// Pop removes and returns the last element. Called by heap.Pop.
func (pq *openSet) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*pq = old[:n-1]

	return it
}
