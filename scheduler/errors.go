package scheduler

import "errors"

// Sentinel errors returned by the Scheduler.
var (
	// ErrNilSearcher is returned by New when no searcher is given.
	ErrNilSearcher = errors.New("scheduler: searcher is nil")

	// ErrNilCell is returned by Submit when start or goal is nil.
	ErrNilCell = errors.New("scheduler: start or goal cell is nil")

	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("scheduler: closed")

	// ErrSearchPanic wraps a panic recovered from a searcher.
	ErrSearchPanic = errors.New("scheduler: search panicked")
)
