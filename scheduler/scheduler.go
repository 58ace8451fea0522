package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"

	"github.com/katalvlaran/voxpath/astar"
	"github.com/katalvlaran/voxpath/grid"
	"github.com/katalvlaran/voxpath/types"
)

// DefaultPollInterval is the tick used by Run when none is given; roughly
// one frame at 60 Hz.
const DefaultPollInterval = 16 * time.Millisecond

// drainInterval is how often Drain polls while jobs are outstanding.
const drainInterval = time.Millisecond

// Searcher computes one path. *astar.Pathfinder satisfies it.
//
// Find is called from worker goroutines, several at a time.
type Searcher interface {
	Find(start, goal *grid.Cell) (astar.Result, error)
}

// Compile-time assertion that the A* pathfinder can be scheduled.
var _ Searcher = (*astar.Pathfinder)(nil)

// Stats is a snapshot of scheduler counters.
type Stats struct {
	Submitted   uint64 // jobs accepted by Submit
	Queued      int    // jobs waiting for a slot
	InFlight    int    // jobs holding a slot, running or awaiting delivery
	Running     int    // searches executing right now
	Completed   uint64 // searches finished
	Delivered   uint64 // callbacks fired
	PeakRunning int    // highest Running ever observed
}

// Scheduler dispatches path searches with bounded concurrency.
//
// Submit may be called from any goroutine. Poll, Run and Drain deliver
// callbacks; they serialise with each other, so callbacks never run
// concurrently. A callback may call Submit but must not call Poll or Drain.
type Scheduler struct {
	searcher Searcher
	maxJobs  int
	logger   types.Logger
	metrics  types.MetricsCollector

	pollMu sync.Mutex // serialises delivery

	mu       sync.Mutex
	queue    []*Job // FIFO of jobs waiting for a slot
	finished []*Job // completed, undelivered jobs in completion order
	closed   bool

	inFlight *xsync.Map[uint64, *Job] // slot holders keyed by Seq

	seq       atomic.Uint64
	running   atomic.Int64
	peak      atomic.Int64
	completed atomic.Uint64
	delivered atomic.Uint64
}

// New creates a Scheduler around searcher.
//
// Returns:
//   - *Scheduler: ready to accept jobs
//   - error: ErrNilSearcher if searcher is nil
func New(searcher Searcher, opts ...Option) (*Scheduler, error) {
	if searcher == nil {
		return nil, ErrNilSearcher
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Scheduler{
		searcher: searcher,
		maxJobs:  o.maxJobs,
		logger:   o.logger,
		metrics:  o.metrics,
		inFlight: xsync.NewMap[uint64, *Job](),
	}, nil
}

// MaxConcurrentJobs returns the slot count.
func (s *Scheduler) MaxConcurrentJobs() int {
	return s.maxJobs
}

// Submit enqueues a search from start to goal and returns its handle.
// It never blocks and never starts the search itself; the next Poll does.
// cb may be nil when the caller only uses the handle.
//
// Errors: ErrNilCell, ErrClosed.
func (s *Scheduler) Submit(start, goal *grid.Cell, cb Callback) (*Job, error) {
	if start == nil || goal == nil {
		return nil, ErrNilCell
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return nil, ErrClosed
	}
	j := newJob(s.seq.Add(1), start, goal, cb)
	s.queue = append(s.queue, j)
	depth := len(s.queue)
	s.mu.Unlock()

	s.metrics.RecordJobSubmitted()
	s.metrics.SetQueueDepth(depth)
	s.logger.Debug("job submitted", "job", j.ID(), "seq", j.seq, "start", start.String(), "goal", goal.String())

	return j, nil
}

// Poll delivers finished jobs and then fills free slots from the queue.
// It returns the number of callbacks invoked. Poll never waits for a search.
func (s *Scheduler) Poll() int {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()

	// 1) Deliver in completion order
	s.mu.Lock()
	ready := s.finished
	s.finished = nil
	s.mu.Unlock()

	for _, j := range ready {
		s.deliver(j)
	}

	// 2) Promote FIFO while slots are free
	s.mu.Lock()
	for len(s.queue) > 0 && s.inFlight.Size() < s.maxJobs {
		j := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		j.setState(JobRunning)
		s.inFlight.Store(j.seq, j)
		go s.work(j)
	}
	depth := len(s.queue)
	s.mu.Unlock()

	s.metrics.SetQueueDepth(depth)
	s.metrics.SetInFlight(s.inFlight.Size())

	return len(ready)
}

// deliver fires the callback of j and releases its slot. The slot is
// released even when the callback panics.
func (s *Scheduler) deliver(j *Job) {
	s.invoke(j)
	j.setState(JobDelivered)
	s.inFlight.Delete(j.seq)
	s.delivered.Add(1)
	s.logger.Debug("job delivered", "job", j.ID(), "seq", j.seq, "found", j.result.Found, "steps", len(j.result.Path))
}

func (s *Scheduler) invoke(j *Job) {
	if j.cb == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("callback panicked", "job", j.ID(), "seq", j.seq, "panic", r)
		}
	}()
	j.cb(j.result.Path)
}

// work runs one search to completion on its own goroutine.
func (s *Scheduler) work(j *Job) {
	s.metrics.RecordJobStarted(time.Since(j.submittedAt))
	s.observePeak(s.running.Add(1))

	began := time.Now()
	res, err := s.find(j)
	elapsed := time.Since(began)
	s.running.Add(-1)

	if err != nil {
		s.logger.Error("search failed", "job", j.ID(), "seq", j.seq, "error", err)
		s.metrics.RecordJobFailed()
		res = astar.Result{Path: []*grid.Cell{}}
	} else {
		if res.Path == nil {
			res.Path = []*grid.Cell{}
		}
		s.metrics.RecordJobCompleted(elapsed, res.Found, res.Expanded)
	}

	j.result = res
	j.err = err
	j.setState(JobCompleted)
	s.completed.Add(1)

	// Done and the delivery queue change together: a Poll that follows Done
	// finds the job, and a delivered job always reports Done.
	s.mu.Lock()
	s.finished = append(s.finished, j)
	close(j.done)
	s.mu.Unlock()
}

// find calls the searcher, turning a panic into an error.
func (s *Scheduler) find(j *Job) (res astar.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSearchPanic, r)
		}
	}()

	return s.searcher.Find(j.start, j.goal)
}

func (s *Scheduler) observePeak(n int64) {
	for {
		p := s.peak.Load()
		if n <= p || s.peak.CompareAndSwap(p, n) {
			return
		}
	}
}

// Run calls Poll every interval until ctx is done, then returns ctx.Err().
// An interval <= 0 uses DefaultPollInterval.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Debug("poll loop started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("poll loop stopped", "reason", ctx.Err())

			return ctx.Err()
		case <-ticker.C:
			s.Poll()
		}
	}
}

// Drain polls until no job is queued or in flight.
// It returns ctx.Err() if ctx ends first; outstanding jobs keep running.
func (s *Scheduler) Drain(ctx context.Context) error {
	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()

	for {
		s.Poll()
		if s.idle() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Scheduler) idle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.queue) == 0 && len(s.finished) == 0 && s.inFlight.Size() == 0
}

// Close stops accepting new jobs. Jobs already submitted still run and are
// delivered by later polls. Close is idempotent.
func (s *Scheduler) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		s.logger.Debug("scheduler closed", "queued", len(s.queue), "in_flight", s.inFlight.Size())
	}
}

// Stats returns a snapshot of the scheduler counters.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	queued := len(s.queue)
	s.mu.Unlock()

	return Stats{
		Submitted:   s.seq.Load(),
		Queued:      queued,
		InFlight:    s.inFlight.Size(),
		Running:     int(s.running.Load()),
		Completed:   s.completed.Load(),
		Delivered:   s.delivered.Load(),
		PeakRunning: int(s.peak.Load()),
	}
}
