package movement

import (
	"sync"

	"github.com/katalvlaran/voxpath/grid"
	"github.com/katalvlaran/voxpath/scheduler"
)

// Requester submits path requests. *scheduler.Scheduler satisfies it.
type Requester interface {
	Submit(start, goal *grid.Cell, cb scheduler.Callback) (*scheduler.Job, error)
}

var _ Requester = (*scheduler.Scheduler)(nil)

// Tracker requests paths for one unit and keeps the latest Plan.
//
// Update is meant to be called every tick with the unit's cell and the cell
// under the cursor; it only submits when that pair changes. Results for a
// pair that has since been replaced are dropped.
type Tracker struct {
	g      *grid.Grid
	req    Requester
	budget func() int

	mu       sync.Mutex
	from, to *grid.Cell
	plan     Plan
	hasPlan  bool
	requests int
}

// NewTracker creates a Tracker. budget is read when a path is delivered, so
// the plan always reflects the unit's points at that moment.
func NewTracker(g *grid.Grid, req Requester, budget func() int) *Tracker {
	return &Tracker{g: g, req: req, budget: budget}
}

// Update submits a request if (current, target) differs from the last pair.
// A nil target clears nothing and submits nothing. It reports whether a
// request was submitted.
func (t *Tracker) Update(current, target *grid.Cell) (bool, error) {
	if current == nil {
		return false, ErrNilCell
	}
	if target == nil {
		return false, nil
	}

	t.mu.Lock()
	if current == t.from && target == t.to {
		t.mu.Unlock()

		return false, nil
	}
	t.from, t.to = current, target
	t.hasPlan = false
	t.mu.Unlock()

	_, err := t.req.Submit(current, target, func(path []*grid.Cell) {
		t.deliver(current, target, path)
	})
	if err != nil {
		// forget the pair so the next Update retries
		t.mu.Lock()
		if t.from == current && t.to == target {
			t.from, t.to = nil, nil
		}
		t.mu.Unlock()

		return false, err
	}

	t.mu.Lock()
	t.requests++
	t.mu.Unlock()

	return true, nil
}

func (t *Tracker) deliver(from, to *grid.Cell, path []*grid.Cell) {
	plan := Split(t.g, from, path, t.budget())

	t.mu.Lock()
	defer t.mu.Unlock()
	if from != t.from || to != t.to {
		return
	}
	t.plan = plan
	t.hasPlan = true
}

// Plan returns the plan for the current pair, if it has been delivered.
func (t *Tracker) Plan() (Plan, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.plan, t.hasPlan
}

// Requests returns how many requests were submitted.
func (t *Tracker) Requests() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.requests
}

// Reset forgets the current pair and plan, forcing the next Update to submit.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.from, t.to = nil, nil
	t.plan = Plan{}
	t.hasPlan = false
}
