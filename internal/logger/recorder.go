package logger

import (
	"sync"

	"github.com/katalvlaran/voxpath/types"
)

// Entry is one captured log call.
type Entry struct {
	Level         string
	Msg           string
	KeysAndValues []any
}

// Recorder captures log calls in memory. It is safe for concurrent use,
// since scheduler workers log from their own goroutines.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

// Compile-time assertion that Recorder implements Logger.
var _ types.Logger = (*Recorder)(nil)

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(level, msg string, kv []any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Msg: msg, KeysAndValues: kv})
}

// Debug records a debug entry.
func (r *Recorder) Debug(msg string, keysAndValues ...any) { r.add("DEBUG", msg, keysAndValues) }

// Info records an info entry.
func (r *Recorder) Info(msg string, keysAndValues ...any) { r.add("INFO", msg, keysAndValues) }

// Warn records a warn entry.
func (r *Recorder) Warn(msg string, keysAndValues ...any) { r.add("WARN", msg, keysAndValues) }

// Error records an error entry.
func (r *Recorder) Error(msg string, keysAndValues ...any) { r.add("ERROR", msg, keysAndValues) }

// Fatal records a fatal entry without exiting.
func (r *Recorder) Fatal(msg string, keysAndValues ...any) { r.add("FATAL", msg, keysAndValues) }

// Entries returns a copy of everything recorded so far.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)

	return out
}

// Count returns how many entries were recorded at level.
func (r *Recorder) Count(level string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.entries {
		if e.Level == level {
			n++
		}
	}

	return n
}
