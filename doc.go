// Package voxpath is a grid-based path search library for stacked voxel
// terrain, with a bounded job scheduler for running searches off the
// caller's loop.
//
// What is in the box?
//
//	grid/         dense X×Y×Z lattice of cells, clamped lookup, world ⇄ cell
//	              transforms, atomic walkability flags, xxh3 digest
//	astar/        A* with octile costs, stepped-terrain neighbour resolution
//	              and the diagonal corner rule; private scratch per search
//	scheduler/    FIFO queue + capped in-flight set; Poll delivers callbacks
//	              exactly once, in completion order
//	movement/     action point budget split, request-on-change tracker, units
//	              that occupy cells
//	config/       YAML configuration with defaults and validation
//	cmd/voxpath/  CLI: find a single path, or benchmark the scheduler
//
// Layers and steps:
//
//	y=1   # # . .
//	y=0   . . # #
//
// A unit on layer 0 walking right meets a blocked cell and steps up onto
// layer 1: a neighbour that is unwalkable resolves to the cell below it,
// then the cell above it, before it is discarded.
//
// Costs:
//
//	straight step  10
//	diagonal step  14
//	per layer      10
//
// The heuristic is the same octile distance, so the first time the goal is
// taken off the open set its cost is optimal.
//
//	go get github.com/katalvlaran/voxpath
package voxpath
