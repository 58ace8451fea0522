package types

import "time"

// MetricsCollector records scheduler activity.
//
// Implementations must be safe for concurrent use: job completions are
// reported from worker goroutines while gauges are set from the poll loop.
type MetricsCollector interface {
	// RecordJobSubmitted counts a path request accepted by Submit.
	RecordJobSubmitted()

	// RecordJobStarted reports how long a job waited in the FIFO queue.
	RecordJobStarted(queueWait time.Duration)

	// RecordJobCompleted reports a finished search.
	//
	// Parameters:
	//   - duration: wall time spent inside the search
	//   - found: whether a path to the goal exists
	//   - expanded: number of cells moved to the closed set
	RecordJobCompleted(duration time.Duration, found bool, expanded int)

	// RecordJobFailed counts a search that returned an error or panicked.
	RecordJobFailed()

	// SetQueueDepth reports the number of jobs waiting for a slot.
	SetQueueDepth(n int)

	// SetInFlight reports the number of jobs holding a concurrency slot.
	SetInFlight(n int)
}
