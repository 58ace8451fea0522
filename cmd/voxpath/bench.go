package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/voxpath/astar"
	"github.com/katalvlaran/voxpath/grid"
	"github.com/katalvlaran/voxpath/internal/metrics"
	"github.com/katalvlaran/voxpath/scheduler"
)

type benchFlags struct {
	jobs        int
	density     float64
	seed        int64
	metricsAddr string
	hold        time.Duration
}

func newBenchCmd(a *app) *cobra.Command {
	f := &benchFlags{}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run many random searches through the scheduler and report latency",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBench(cmd, f)
		},
	}
	cmd.Flags().IntVar(&f.jobs, "jobs", 200, "number of path requests")
	cmd.Flags().Float64Var(&f.density, "density", 0.2, "fraction of cells made unwalkable")
	cmd.Flags().Int64Var(&f.seed, "seed", 42, "random seed for walls and endpoints")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	cmd.Flags().DurationVar(&f.hold, "hold", 0, "keep serving metrics this long after the run")

	return cmd
}

// timedSearcher records the wall time of every search.
type timedSearcher struct {
	next scheduler.Searcher

	mu        sync.Mutex
	durations []float64 // milliseconds
}

func (t *timedSearcher) Find(start, goal *grid.Cell) (astar.Result, error) {
	began := time.Now()
	res, err := t.next.Find(start, goal)
	ms := float64(time.Since(began)) / float64(time.Millisecond)

	t.mu.Lock()
	t.durations = append(t.durations, ms)
	t.mu.Unlock()

	return res, err
}

func (a *app) runBench(cmd *cobra.Command, f *benchFlags) error {
	if f.jobs < 1 {
		return fmt.Errorf("--jobs must be >= 1, got %d", f.jobs)
	}
	if f.density < 0 || f.density >= 1 {
		return fmt.Errorf("--density must be in [0, 1), got %v", f.density)
	}

	reg := prometheus.NewRegistry()
	collector := metrics.NewPrometheus(reg, "")
	if f.metricsAddr != "" {
		srv := &http.Server{
			Addr:              f.metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.Error("metrics server failed", "addr", f.metricsAddr, "error", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		a.log.Info("serving metrics", "addr", f.metricsAddr)
	}

	rng := rand.New(rand.NewSource(f.seed))
	g := grid.New(a.cfg.GridSpec(), grid.WithLogger(a.log))
	for i := 0; i < g.Len(); i++ {
		if rng.Float64() < f.density {
			g.SetCellWalkable(g.CellByIndex(i), false)
		}
	}
	open := make([]*grid.Cell, 0, g.Len())
	for i := 0; i < g.Len(); i++ {
		if c := g.CellByIndex(i); c.Walkable() {
			open = append(open, c)
		}
	}
	if len(open) == 0 {
		return errors.New("no walkable cells left, lower --density")
	}

	timed := &timedSearcher{next: astar.NewPathfinder(g, a.cfg.SearchOptions()...)}
	sch, err := scheduler.New(timed,
		append(a.cfg.SchedulerOptions(),
			scheduler.WithLogger(a.log),
			scheduler.WithMetrics(collector),
		)...,
	)
	if err != nil {
		return err
	}
	defer sch.Close()

	var delivered int
	jobs := make([]*scheduler.Job, 0, f.jobs)
	began := time.Now()
	for i := 0; i < f.jobs; i++ {
		start, goal := open[rng.Intn(len(open))], open[rng.Intn(len(open))]
		j, err := sch.Submit(start, goal, func([]*grid.Cell) { delivered++ })
		if err != nil {
			return err
		}
		jobs = append(jobs, j)
	}
	// Run drives polling at the configured tick; Drain finishes the tail.
	ctx, cancel := context.WithCancel(cmd.Context())
	runDone := make(chan struct{})
	go func() {
		defer close(runDone)
		_ = sch.Run(ctx, a.cfg.Scheduler.PollInterval)
	}()
	err = sch.Drain(cmd.Context())
	cancel()
	<-runDone
	if err != nil {
		return err
	}
	wall := time.Since(began)

	// start == goal delivers an empty path but counts as found.
	found := 0
	for _, j := range jobs {
		if res, ok := j.Result(); ok && res.Found {
			found++
		}
	}

	timed.mu.Lock()
	ms := append([]float64(nil), timed.durations...)
	timed.mu.Unlock()
	sort.Float64s(ms)

	st := sch.Stats()
	out := cmd.OutOrStdout()
	p := newPalette(out)
	sx, sy, sz := g.Dimensions()
	fmt.Fprintln(out, strings.Join([]string{
		p.metric("grid", fmt.Sprintf("%dx%dx%d", sx, sy, sz)),
		p.metric("walkable", len(open)),
		p.metric("slots", sch.MaxConcurrentJobs()),
	}, "  "))
	fmt.Fprintln(out, strings.Join([]string{
		p.metric("jobs", f.jobs),
		p.metric("delivered", delivered),
		p.metric("found", found),
		p.metric("peak", st.PeakRunning),
	}, "  "))
	fmt.Fprintln(out, strings.Join([]string{
		p.metric("mean", fmt.Sprintf("%.3fms", stat.Mean(ms, nil))),
		p.metric("p95", fmt.Sprintf("%.3fms", stat.Quantile(0.95, stat.Empirical, ms, nil))),
		p.metric("wall", wall.Round(time.Millisecond)),
	}, "  "))

	if f.metricsAddr != "" && f.hold > 0 {
		a.log.Info("holding metrics endpoint", "for", f.hold)
		select {
		case <-time.After(f.hold):
		case <-cmd.Context().Done():
		}
	}

	return nil
}
