// Package scheduler runs path searches on a bounded number of goroutines and
// hands the results back on the caller's own goroutine.
//
// A Scheduler owns a FIFO queue of pending jobs and a set of in-flight jobs.
// Submit only enqueues and never blocks. The caller drives everything else by
// calling Poll once per tick (or by letting Run do it on a ticker):
//
//  1. every job whose search has finished is removed from the in-flight set
//     and its callback is invoked, in completion order, exactly once;
//  2. queued jobs are promoted, oldest first, while fewer than
//     MaxConcurrentJobs are in flight. Each promoted job searches in its own
//     goroutine.
//
// A job keeps its slot until its callback has been delivered, so at most
// MaxConcurrentJobs searches ever run at the same time.
//
// Besides the callback, Submit returns a *Job handle. Job.Done is closed as
// soon as the search finishes and Job.Result can then be read from any
// goroutine, which suits callers that prefer futures to callbacks.
//
// An unreachable goal is not an error: the callback receives an empty path.
// A searcher error or panic is logged and also delivered as an empty path.
//
// Example:
//
//	pf := astar.NewPathfinder(g)
//	s, _ := scheduler.New(pf, scheduler.WithMaxConcurrentJobs(3))
//	s.Submit(from, to, func(path []*grid.Cell) { unit.Follow(path) })
//	for range frameTicker.C {
//		s.Poll()
//	}
package scheduler
