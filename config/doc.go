// Package config loads voxpath settings from YAML.
//
// Zero values in a file mean "use the default", so a file only needs the
// keys it changes:
//
//	grid:
//	  sizeX: 64
//	  sizeZ: 64
//	scheduler:
//	  maxConcurrentJobs: 4
//	  pollInterval: 16ms
//	log:
//	  level: debug
//
// Load and Parse apply defaults and validate; unknown keys are rejected.
package config
