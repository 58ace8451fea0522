package scheduler

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/voxpath/astar"
	"github.com/katalvlaran/voxpath/grid"
)

// Callback receives the path of a finished job: the cells after start up to
// and including goal, or an empty slice when there is no path.
type Callback func(path []*grid.Cell)

// JobState is the lifecycle stage of a Job.
type JobState int32

const (
	// JobQueued means the job waits in the FIFO queue for a slot.
	JobQueued JobState = iota
	// JobRunning means the job holds a slot and its search is executing.
	JobRunning
	// JobCompleted means the search finished and the callback is pending.
	JobCompleted
	// JobDelivered means the callback has fired and the slot is free.
	JobDelivered
)

// String returns a lower-case name of the state.
func (s JobState) String() string {
	switch s {
	case JobQueued:
		return "queued"
	case JobRunning:
		return "running"
	case JobCompleted:
		return "completed"
	case JobDelivered:
		return "delivered"
	default:
		return "unknown"
	}
}

// Job is one path request. It is created by Submit and is safe to inspect
// from any goroutine.
type Job struct {
	id          uuid.UUID
	seq         uint64
	start, goal *grid.Cell
	cb          Callback
	submittedAt time.Time

	state atomic.Int32
	done  chan struct{}

	// written once by the worker before done is closed
	result astar.Result
	err    error
}

func newJob(seq uint64, start, goal *grid.Cell, cb Callback) *Job {
	return &Job{
		id:          uuid.New(),
		seq:         seq,
		start:       start,
		goal:        goal,
		cb:          cb,
		submittedAt: time.Now(),
		done:        make(chan struct{}),
	}
}

// ID returns the job's random identifier.
func (j *Job) ID() string { return j.id.String() }

// Seq returns the submission sequence number, starting at 1.
func (j *Job) Seq() uint64 { return j.seq }

// Start returns the start cell.
func (j *Job) Start() *grid.Cell { return j.start }

// Goal returns the goal cell.
func (j *Job) Goal() *grid.Cell { return j.goal }

// State returns the current lifecycle stage.
func (j *Job) State() JobState { return JobState(j.state.Load()) }

// Done returns a channel closed when the search has finished. Delivery of
// the callback still waits for the next Poll.
func (j *Job) Done() <-chan struct{} { return j.done }

// Result returns the search result and true once the search has finished,
// or a zero Result and false before that.
func (j *Job) Result() (astar.Result, bool) {
	select {
	case <-j.done:
		return j.result, true
	default:
		return astar.Result{}, false
	}
}

// Err returns the searcher error of a failed job, or nil.
// It is only meaningful after Done is closed.
func (j *Job) Err() error {
	select {
	case <-j.done:
		return j.err
	default:
		return nil
	}
}

func (j *Job) setState(s JobState) { j.state.Store(int32(s)) }
