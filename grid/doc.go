// Package grid models a fixed-size 3D lattice of cells for path searches.
//
// What:
//
//   - Grid owns SizeX×SizeY×SizeZ cells stored densely in layer-major order.
//   - Each Cell carries its integer coordinates, a Kind tag and a walkability
//     flag that callers may flip at any time (for example unit occupancy).
//   - Spacing maps cell coordinates to world positions: X and Z use the
//     horizontal scale, Y uses the vertical scale.
//
// Why:
//
//   - Tactics maps: stacked floors with stepped terrain.
//   - A single shared lattice read concurrently by many searches.
//
// Construction never fails. Any non-positive dimension or scale is replaced by
// a fallback value (16×1×1 cells, scales 1 and 2) and the substitution is
// logged at Info level.
//
// Lookups:
//
//   - CellAt clamps each axis independently into range, so out-of-range
//     coordinates saturate to the nearest edge cell.
//   - Lookup is the strict variant: it reports whether the coordinates exist.
//   - WorldToCell rounds a world position to the nearest cell, then clamps.
//
// Concurrency:
//
//   - Dimensions, spacing and the cell set are immutable after New.
//   - Walkability is stored atomically per cell; writers and concurrent
//     searches never race, but a search may observe a flag that changes
//     right after it was read.
//
// Complexity:
//
//   - New: O(X×Y×Z) time and memory.
//   - CellAt, Lookup, WorldToCell, SetWalkable: O(1).
//   - Digest, WalkableCount: O(X×Y×Z).
package grid
