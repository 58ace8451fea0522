package logger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxpath/types"
)

func TestNopLogger(t *testing.T) {
	logger := NewNop()

	var _ types.Logger = logger

	require.NotPanics(t, func() {
		logger.Debug("test message", "key", "value")
		logger.Info("test message", "key", "value")
		logger.Warn("test message", "key", "value")
		logger.Error("test message", "key", "value")
		logger.Fatal("test message", "key", "value") // Should NOT exit
		logger.Info("")
		logger.Info("odd pairs", "key")
	})
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder()
	rec.Info("dimension defaulted", "axis", "x", "value", 16)
	rec.Error("search failed")

	entries := rec.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, "INFO", entries[0].Level)
	require.Equal(t, "dimension defaulted", entries[0].Msg)
	require.Equal(t, []any{"axis", "x", "value", 16}, entries[0].KeysAndValues)
	require.Equal(t, 1, rec.Count("ERROR"))
	require.Equal(t, 0, rec.Count("WARN"))
}

func TestRecorder_Concurrent(t *testing.T) {
	rec := NewRecorder()
	const n = 64

	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(id int) {
			defer wg.Done()
			rec.Debug("worker", "id", id)
		}(i)
	}
	wg.Wait()

	require.Equal(t, n, rec.Count("DEBUG"))
}
