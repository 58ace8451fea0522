package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/voxpath/astar"
	"github.com/katalvlaran/voxpath/grid"
	"github.com/katalvlaran/voxpath/internal/logger"
	"github.com/katalvlaran/voxpath/scheduler"
)

// fakeSearcher returns a one-step path to goal. Searches for goals listed in
// gates block until the gate is closed; goals in fail return an error and
// goals in panics panic. It tracks concurrency and start order.
type fakeSearcher struct {
	mu     sync.Mutex
	gates  map[*grid.Cell]chan struct{}
	fail   map[*grid.Cell]bool
	panics map[*grid.Cell]bool
	order  []*grid.Cell
	delay  time.Duration

	running atomic.Int64
	peak    atomic.Int64
	calls   atomic.Int64
}

func newFake() *fakeSearcher {
	return &fakeSearcher{
		gates:  map[*grid.Cell]chan struct{}{},
		fail:   map[*grid.Cell]bool{},
		panics: map[*grid.Cell]bool{},
	}
}

func (f *fakeSearcher) gate(c *grid.Cell) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.gates[c] = ch

	return ch
}

func (f *fakeSearcher) Find(start, goal *grid.Cell) (astar.Result, error) {
	n := f.running.Add(1)
	defer f.running.Add(-1)
	f.calls.Add(1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}

	f.mu.Lock()
	f.order = append(f.order, goal)
	gate := f.gates[goal]
	fail, boom := f.fail[goal], f.panics[goal]
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if boom {
		panic("searcher exploded")
	}
	if fail {
		return astar.Result{}, errors.New("searcher failed")
	}

	return astar.Result{Path: []*grid.Cell{goal}, Cost: astar.Distance(start, goal), Expanded: 2, Found: true}, nil
}

func (f *fakeSearcher) startOrder() []*grid.Cell {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]*grid.Cell(nil), f.order...)
}

// countingMetrics tallies collector calls.
type countingMetrics struct {
	submitted, started, found, unreachable, failed atomic.Int64
	maxInFlight                                    atomic.Int64
}

func (m *countingMetrics) RecordJobSubmitted()            { m.submitted.Add(1) }
func (m *countingMetrics) RecordJobStarted(time.Duration) { m.started.Add(1) }
func (m *countingMetrics) RecordJobFailed()               { m.failed.Add(1) }
func (m *countingMetrics) SetQueueDepth(int)              {}

func (m *countingMetrics) RecordJobCompleted(_ time.Duration, found bool, _ int) {
	if found {
		m.found.Add(1)
	} else {
		m.unreachable.Add(1)
	}
}
func (m *countingMetrics) SetInFlight(n int) {
	if int64(n) > m.maxInFlight.Load() {
		m.maxInFlight.Store(int64(n))
	}
}

func drain(t *testing.T, s *scheduler.Scheduler) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Drain(ctx))
}

//----------------------------------------------------------------------------//
// Construction and validation
//----------------------------------------------------------------------------//

func TestNew(t *testing.T) {
	_, err := scheduler.New(nil)
	require.ErrorIs(t, err, scheduler.ErrNilSearcher)

	s, err := scheduler.New(newFake())
	require.NoError(t, err)
	require.Equal(t, scheduler.DefaultMaxConcurrentJobs, s.MaxConcurrentJobs())

	s, err = scheduler.New(newFake(), scheduler.WithMaxConcurrentJobs(0), scheduler.WithLogger(nil), scheduler.WithMetrics(nil))
	require.NoError(t, err)
	require.Equal(t, 3, s.MaxConcurrentJobs())

	s, err = scheduler.New(newFake(), scheduler.WithMaxConcurrentJobs(7))
	require.NoError(t, err)
	require.Equal(t, 7, s.MaxConcurrentJobs())
}

func TestSubmit_Validation(t *testing.T) {
	g := grid.New(grid.Spec{SizeX: 2, SizeY: 1, SizeZ: 2, ScaleXZ: 1, ScaleY: 2})
	s, err := scheduler.New(newFake())
	require.NoError(t, err)

	_, err = s.Submit(nil, g.CellAt(0, 0, 0), nil)
	require.ErrorIs(t, err, scheduler.ErrNilCell)
	_, err = s.Submit(g.CellAt(0, 0, 0), nil, nil)
	require.ErrorIs(t, err, scheduler.ErrNilCell)

	s.Close()
	s.Close()
	_, err = s.Submit(g.CellAt(0, 0, 0), g.CellAt(1, 0, 1), nil)
	require.ErrorIs(t, err, scheduler.ErrClosed)
	require.Zero(t, s.Stats().Submitted)
}

func TestJobState_String(t *testing.T) {
	cases := map[scheduler.JobState]string{
		scheduler.JobQueued:    "queued",
		scheduler.JobRunning:   "running",
		scheduler.JobCompleted: "completed",
		scheduler.JobDelivered: "delivered",
		scheduler.JobState(42): "unknown",
	}
	for st, want := range cases {
		assert.Equal(t, want, st.String())
	}
}

//----------------------------------------------------------------------------//
// Dispatch behaviour
//----------------------------------------------------------------------------//

// DispatchSuite exercises queueing, promotion and delivery with a fake searcher.
type DispatchSuite struct {
	suite.Suite
	g      *grid.Grid
	fake   *fakeSearcher
	rec    *logger.Recorder
	counts *countingMetrics
}

func (s *DispatchSuite) SetupTest() {
	s.g = grid.New(grid.Spec{SizeX: 8, SizeY: 1, SizeZ: 8, ScaleXZ: 1, ScaleY: 2})
	s.fake = newFake()
	s.rec = logger.NewRecorder()
	s.counts = &countingMetrics{}
}

func (s *DispatchSuite) newScheduler(n int) *scheduler.Scheduler {
	sch, err := scheduler.New(s.fake,
		scheduler.WithMaxConcurrentJobs(n),
		scheduler.WithLogger(s.rec),
		scheduler.WithMetrics(s.counts),
	)
	s.Require().NoError(err)

	return sch
}

func (s *DispatchSuite) goal(i int) *grid.Cell {
	return s.g.CellByIndex(i + 1)
}

// TestExactlyOnceUnderCap submits K jobs with N < K slots.
func (s *DispatchSuite) TestExactlyOnceUnderCap() {
	const k, n = 24, 3
	s.fake.delay = 2 * time.Millisecond
	sch := s.newScheduler(n)

	var mu sync.Mutex
	calls := map[*grid.Cell]int{}
	for i := 0; i < k; i++ {
		goal := s.goal(i)
		_, err := sch.Submit(s.g.CellAt(0, 0, 0), goal, func(path []*grid.Cell) {
			mu.Lock()
			defer mu.Unlock()
			s.Require().Len(path, 1)
			calls[path[0]]++
		})
		s.Require().NoError(err)
	}

	drain(s.T(), sch)

	s.Require().Len(calls, k)
	for c, n := range calls {
		s.Require().Equal(1, n, "goal %s delivered %d times", c, n)
	}
	st := sch.Stats()
	s.Require().Equal(uint64(k), st.Submitted)
	s.Require().Equal(uint64(k), st.Completed)
	s.Require().Equal(uint64(k), st.Delivered)
	s.Require().Zero(st.Queued)
	s.Require().Zero(st.InFlight)
	s.Require().LessOrEqual(st.PeakRunning, n)
	s.Require().LessOrEqual(s.fake.peak.Load(), int64(n))
	s.Require().Equal(int64(k), s.fake.calls.Load())

	s.Require().Equal(int64(k), s.counts.submitted.Load())
	s.Require().Equal(int64(k), s.counts.started.Load())
	s.Require().Equal(int64(k), s.counts.found.Load())
	s.Require().LessOrEqual(s.counts.maxInFlight.Load(), int64(n))
}

// TestFIFOPromotion checks that a single slot serves jobs in submission order.
func (s *DispatchSuite) TestFIFOPromotion() {
	sch := s.newScheduler(1)
	want := make([]*grid.Cell, 6)
	for i := range want {
		want[i] = s.goal(i)
		_, err := sch.Submit(s.g.CellAt(0, 0, 0), want[i], nil)
		s.Require().NoError(err)
	}

	drain(s.T(), sch)

	s.Require().Equal(want, s.fake.startOrder())
	s.Require().Equal(int64(1), s.fake.peak.Load())
}

// TestPollNeverBlocks keeps every search parked and polls anyway.
func (s *DispatchSuite) TestPollNeverBlocks() {
	sch := s.newScheduler(2)
	gates := make([]chan struct{}, 5)
	jobs := make([]*scheduler.Job, 5)
	for i := range gates {
		gates[i] = s.fake.gate(s.goal(i))
		j, err := sch.Submit(s.g.CellAt(0, 0, 0), s.goal(i), nil)
		s.Require().NoError(err)
		s.Require().Equal(scheduler.JobQueued, j.State())
		jobs[i] = j
	}

	s.Require().Zero(sch.Poll())
	s.Require().Zero(sch.Poll())
	st := sch.Stats()
	s.Require().Equal(2, st.InFlight)
	s.Require().Equal(3, st.Queued)
	s.Require().Equal(scheduler.JobRunning, jobs[0].State())
	s.Require().Equal(scheduler.JobRunning, jobs[1].State())
	s.Require().Equal(scheduler.JobQueued, jobs[2].State())

	_, ok := jobs[0].Result()
	s.Require().False(ok)

	for _, g := range gates {
		close(g)
	}
	drain(s.T(), sch)
	for _, j := range jobs {
		s.Require().Equal(scheduler.JobDelivered, j.State())
	}
}

// TestCompletionOrder delivers a fast job before a slow one submitted earlier.
func (s *DispatchSuite) TestCompletionOrder() {
	sch := s.newScheduler(2)
	slow, fast := s.goal(0), s.goal(1)
	gate := s.fake.gate(slow)

	var mu sync.Mutex
	var got []*grid.Cell
	record := func(path []*grid.Cell) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, path[0])
	}
	_, err := sch.Submit(s.g.CellAt(0, 0, 0), slow, record)
	s.Require().NoError(err)
	fj, err := sch.Submit(s.g.CellAt(0, 0, 0), fast, record)
	s.Require().NoError(err)

	sch.Poll()
	select {
	case <-fj.Done():
	case <-time.After(5 * time.Second):
		s.FailNow("fast job never finished")
	}
	s.Require().Equal(1, sch.Poll())

	close(gate)
	drain(s.T(), sch)

	s.Require().Equal([]*grid.Cell{fast, slow}, got)
}

// TestFailuresDeliverEmptyPath covers searcher errors and panics.
func (s *DispatchSuite) TestFailuresDeliverEmptyPath() {
	sch := s.newScheduler(2)
	bad, boom := s.goal(0), s.goal(1)
	s.fake.fail[bad] = true
	s.fake.panics[boom] = true

	paths := make(chan []*grid.Cell, 2)
	jb, err := sch.Submit(s.g.CellAt(0, 0, 0), bad, func(p []*grid.Cell) { paths <- p })
	s.Require().NoError(err)
	jp, err := sch.Submit(s.g.CellAt(0, 0, 0), boom, func(p []*grid.Cell) { paths <- p })
	s.Require().NoError(err)

	drain(s.T(), sch)
	close(paths)

	n := 0
	for p := range paths {
		s.Require().NotNil(p)
		s.Require().Empty(p)
		n++
	}
	s.Require().Equal(2, n)
	s.Require().Error(jb.Err())
	s.Require().ErrorIs(jp.Err(), scheduler.ErrSearchPanic)
	res, ok := jp.Result()
	s.Require().True(ok)
	s.Require().False(res.Found)

	s.Require().Equal(2, s.rec.Count("ERROR"))
	s.Require().Equal(int64(2), s.counts.failed.Load())
	s.Require().Zero(s.counts.found.Load())
}

// TestCallbackPanicReleasesSlot checks a panicking callback neither escapes
// Poll nor holds its slot.
func (s *DispatchSuite) TestCallbackPanicReleasesSlot() {
	sch := s.newScheduler(1)
	var fired atomic.Int32
	jobs := make([]*scheduler.Job, 0, 3)
	for i := range 3 {
		cb := func([]*grid.Cell) { fired.Add(1) }
		if i == 0 {
			cb = func([]*grid.Cell) { panic("callback failure") }
		}
		j, err := sch.Submit(s.g.CellAt(0, 0, 0), s.goal(i), cb)
		s.Require().NoError(err)
		jobs = append(jobs, j)
	}

	s.Require().NotPanics(func() { drain(s.T(), sch) })

	s.Require().Equal(int32(2), fired.Load())
	for _, j := range jobs {
		s.Require().Equal(scheduler.JobDelivered, j.State())
	}
	st := sch.Stats()
	s.Require().Equal(uint64(3), st.Delivered)
	s.Require().Zero(st.InFlight)
	s.Require().Zero(st.Queued)
	s.Require().Equal(1, s.rec.Count("ERROR"))
}

// TestSubmitFromCallback re-submits while a delivery is in progress.
func (s *DispatchSuite) TestSubmitFromCallback() {
	sch := s.newScheduler(1)
	var second atomic.Bool
	_, err := sch.Submit(s.g.CellAt(0, 0, 0), s.goal(0), func([]*grid.Cell) {
		_, err := sch.Submit(s.g.CellAt(0, 0, 0), s.goal(1), func([]*grid.Cell) { second.Store(true) })
		s.Require().NoError(err)
	})
	s.Require().NoError(err)

	drain(s.T(), sch)
	s.Require().True(second.Load())
	s.Require().Equal(uint64(2), sch.Stats().Delivered)
}

// TestCloseLetsJobsFinish checks that Close only rejects new work.
func (s *DispatchSuite) TestCloseLetsJobsFinish() {
	sch := s.newScheduler(1)
	var delivered atomic.Int64
	for i := 0; i < 3; i++ {
		_, err := sch.Submit(s.g.CellAt(0, 0, 0), s.goal(i), func([]*grid.Cell) { delivered.Add(1) })
		s.Require().NoError(err)
	}
	sch.Close()

	drain(s.T(), sch)
	s.Require().Equal(int64(3), delivered.Load())
}

// TestDrainHonoursContext returns when the context ends first.
func (s *DispatchSuite) TestDrainHonoursContext() {
	sch := s.newScheduler(1)
	gate := s.fake.gate(s.goal(0))
	_, err := sch.Submit(s.g.CellAt(0, 0, 0), s.goal(0), nil)
	s.Require().NoError(err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	s.Require().ErrorIs(sch.Drain(ctx), context.DeadlineExceeded)

	close(gate)
	drain(s.T(), sch)
}

// TestRunDeliversOnTicks drives delivery from Run instead of manual polls.
func (s *DispatchSuite) TestRunDeliversOnTicks() {
	sch := s.newScheduler(2)
	got := make(chan []*grid.Cell, 4)
	for i := 0; i < 4; i++ {
		_, err := sch.Submit(s.g.CellAt(0, 0, 0), s.goal(i), func(p []*grid.Cell) { got <- p })
		s.Require().NoError(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- sch.Run(ctx, time.Millisecond) }()

	for i := 0; i < 4; i++ {
		select {
		case <-got:
		case <-time.After(5 * time.Second):
			s.FailNow("callback not delivered")
		}
	}
	cancel()
	s.Require().ErrorIs(<-errCh, context.Canceled)
}

func TestDispatchSuite(t *testing.T) {
	suite.Run(t, new(DispatchSuite))
}

//----------------------------------------------------------------------------//
// Integration with A*
//----------------------------------------------------------------------------//

// TestWithPathfinder schedules real searches and compares them with direct calls.
func TestWithPathfinder(t *testing.T) {
	g := grid.New(grid.Spec{SizeX: 12, SizeY: 2, SizeZ: 12, ScaleXZ: 1, ScaleY: 2})
	g.SetRegion(grid.Coord{X: 5, Y: 0, Z: 0}, grid.Coord{X: 5, Y: 1, Z: 10}, false)
	pf := astar.NewPathfinder(g)

	sch, err := scheduler.New(pf, scheduler.WithMaxConcurrentJobs(2))
	require.NoError(t, err)

	start := g.CellAt(0, 0, 0)
	goals := []*grid.Cell{g.CellAt(11, 0, 0), g.CellAt(11, 1, 11), g.CellAt(4, 0, 4), g.CellAt(0, 0, 0)}
	got := make([][]*grid.Cell, len(goals))
	jobs := make([]*scheduler.Job, len(goals))
	for i, goal := range goals {
		i := i
		jobs[i], err = sch.Submit(start, goal, func(p []*grid.Cell) { got[i] = p })
		require.NoError(t, err)
	}
	drain(t, sch)

	for i, goal := range goals {
		want, err := astar.Search(g, start, goal)
		require.NoError(t, err)
		require.Equal(t, want.Path, got[i], "goal %s", goal)
		require.Empty(t, cmp.Diff(want.Coords(), astar.Result{Path: got[i]}.Coords()))

		res, ok := jobs[i].Result()
		require.True(t, ok)
		require.Equal(t, want.Cost, res.Cost)
		require.Equal(t, want.Found, res.Found)
	}
}
