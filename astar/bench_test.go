package astar_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/voxpath/astar"
	"github.com/katalvlaran/voxpath/grid"
)

// benchGrid builds a size×2×size grid with roughly 20% of cells blocked and
// both corners of layer 0 open.
func benchGrid(size int) *grid.Grid {
	g := grid.New(grid.Spec{SizeX: size, SizeY: 2, SizeZ: size, ScaleXZ: 1, ScaleY: 2.3})
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < g.Len(); i++ {
		if rng.Float64() < 0.2 {
			g.SetCellWalkable(g.CellByIndex(i), false)
		}
	}
	g.SetWalkable(0, 0, 0, true)
	g.SetWalkable(size-1, 0, size-1, true)

	return g
}

// BenchmarkSearch_Vertical searches corner to corner with 26 candidate offsets.
// Complexity: O(V log V) per search.
func BenchmarkSearch_Vertical(b *testing.B) {
	g := benchGrid(128)
	start, goal := g.CellAt(0, 0, 0), g.CellAt(127, 0, 127)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = astar.Search(g, start, goal)
	}
}

// BenchmarkSearch_Planar searches corner to corner with 8 candidate offsets.
func BenchmarkSearch_Planar(b *testing.B) {
	g := benchGrid(128)
	start, goal := g.CellAt(0, 0, 0), g.CellAt(127, 0, 127)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = astar.Search(g, start, goal, astar.WithVertical(false))
	}
}

// BenchmarkSearch_Parallel runs independent searches on a shared grid.
func BenchmarkSearch_Parallel(b *testing.B) {
	g := benchGrid(64)
	start, goal := g.CellAt(0, 0, 0), g.CellAt(63, 0, 63)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = astar.Search(g, start, goal)
		}
	})
}
