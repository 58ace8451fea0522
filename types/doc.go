// Package types provides the interfaces shared across the voxpath packages.
//
// Keeping them in a leaf package lets grid, astar, scheduler and the internal
// logging/metrics adapters depend on the same contracts without import cycles.
//
// Key types:
//   - Logger: structured logging interface
//   - MetricsCollector: metrics recording interface for the job scheduler
package types
