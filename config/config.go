package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/voxpath/astar"
	"github.com/katalvlaran/voxpath/grid"
	"github.com/katalvlaran/voxpath/internal/logging"
	"github.com/katalvlaran/voxpath/movement"
	"github.com/katalvlaran/voxpath/scheduler"
	"github.com/katalvlaran/voxpath/types"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// largeGridCells is the cell count above which ValidateWithWarnings warns:
// every search allocates scratch tables of this size.
const largeGridCells = 1 << 22

// GridConfig holds the grid dimensions and spacing.
type GridConfig struct {
	SizeX   int     `yaml:"sizeX"`
	SizeY   int     `yaml:"sizeY"`
	SizeZ   int     `yaml:"sizeZ"`
	ScaleXZ float64 `yaml:"scaleXZ"`
	ScaleY  float64 `yaml:"scaleY"`
}

// SearchConfig controls the A* neighbourhood.
type SearchConfig struct {
	// Planar restricts candidate moves to the 8 neighbours of the current
	// layer. Stepped terrain still resolves one layer up or down.
	Planar bool `yaml:"planar"`
}

// SchedulerConfig controls job dispatch.
type SchedulerConfig struct {
	// MaxConcurrentJobs caps simultaneous searches.
	//
	// Default: 3
	MaxConcurrentJobs int `yaml:"maxConcurrentJobs"`

	// PollInterval is the tick used when the scheduler drives itself.
	//
	// Default: 16ms
	PollInterval time.Duration `yaml:"pollInterval"`
}

// UnitConfig holds per-unit movement settings.
type UnitConfig struct {
	// ActionPoints is the budget a unit starts its turn with.
	//
	// Default: 20
	ActionPoints int `yaml:"actionPoints"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// Config is the complete voxpath configuration.
type Config struct {
	Grid      GridConfig      `yaml:"grid"`
	Search    SearchConfig    `yaml:"search"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Unit      UnitConfig      `yaml:"unit"`
	Log       LogConfig       `yaml:"log"`
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values
func DefaultConfig() Config {
	spec := grid.DefaultSpec()

	return Config{
		Grid: GridConfig{
			SizeX:   spec.SizeX,
			SizeY:   spec.SizeY,
			SizeZ:   spec.SizeZ,
			ScaleXZ: spec.ScaleXZ,
			ScaleY:  spec.ScaleY,
		},
		Scheduler: SchedulerConfig{
			MaxConcurrentJobs: scheduler.DefaultMaxConcurrentJobs,
			PollInterval:      scheduler.DefaultPollInterval,
		},
		Unit: UnitConfig{ActionPoints: movement.DefaultActionPoints},
		Log:  LogConfig{Level: "info", Format: "text"},
	}
}

// ApplyDefaults fills zero-valued fields of cfg from DefaultConfig.
//
// The grid section is all or nothing: when it is absent (every field zero)
// it becomes the default grid. A partial or out-of-range grid section is
// kept as written and grid.New substitutes its logged fallbacks.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func ApplyDefaults(cfg *Config) {
	d := DefaultConfig()

	if cfg.Grid == (GridConfig{}) {
		cfg.Grid = d.Grid
	}
	if cfg.Scheduler.MaxConcurrentJobs == 0 {
		cfg.Scheduler.MaxConcurrentJobs = d.Scheduler.MaxConcurrentJobs
	}
	if cfg.Scheduler.PollInterval == 0 {
		cfg.Scheduler.PollInterval = d.Scheduler.PollInterval
	}
	if cfg.Unit.ActionPoints == 0 {
		cfg.Unit.ActionPoints = d.Unit.ActionPoints
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = d.Log.Level
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = d.Log.Format
	}
}

// Validate checks the configuration after defaults are applied.
//
// Grid values are not checked: grid.New replaces any unusable dimension or
// scale with a fallback and logs it.
//
// Rules:
//   - MaxConcurrentJobs >= 1 and PollInterval > 0
//   - ActionPoints >= 0
//   - Log.Level parses and Log.Format is text or json
//
// Returns:
//   - error: wrapping ErrInvalidConfig, nil if valid
func (cfg *Config) Validate() error {
	if cfg.Scheduler.MaxConcurrentJobs < 1 {
		return fmt.Errorf("%w: maxConcurrentJobs must be >= 1, got %d", ErrInvalidConfig, cfg.Scheduler.MaxConcurrentJobs)
	}
	if cfg.Scheduler.PollInterval <= 0 {
		return fmt.Errorf("%w: pollInterval must be > 0, got %v", ErrInvalidConfig, cfg.Scheduler.PollInterval)
	}
	if cfg.Unit.ActionPoints < 0 {
		return fmt.Errorf("%w: actionPoints must be >= 0, got %d", ErrInvalidConfig, cfg.Unit.ActionPoints)
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("%w: log format %q must be text or json", ErrInvalidConfig, cfg.Log.Format)
	}

	return nil
}

// ValidateWithWarnings logs warnings for values that work but are unlikely
// to be intended.
//
// Parameters:
//   - logger: Logger instance for warning output
func (cfg *Config) ValidateWithWarnings(logger types.Logger) {
	g := cfg.Grid
	if cells := g.SizeX * g.SizeY * g.SizeZ; g.SizeX > 0 && g.SizeY > 0 && g.SizeZ > 0 && cells > largeGridCells {
		logger.Warn(
			"grid is very large, every search allocates per-cell scratch",
			"cells", cells,
			"recommended", largeGridCells,
		)
	}
	if n := runtime.NumCPU(); cfg.Scheduler.MaxConcurrentJobs > n {
		logger.Warn(
			"maxConcurrentJobs exceeds available CPUs",
			"maxConcurrentJobs", cfg.Scheduler.MaxConcurrentJobs,
			"cpus", n,
		)
	}
	if cfg.Scheduler.PollInterval > 100*time.Millisecond {
		logger.Warn(
			"pollInterval is long, path results will feel delayed",
			"pollInterval", cfg.Scheduler.PollInterval,
			"recommended", "16ms to 50ms",
		)
	}
}

// Parse decodes YAML, applies defaults and validates.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(data)
}

// GridSpec converts the grid section into a grid.Spec, unchanged.
func (cfg *Config) GridSpec() grid.Spec {
	return grid.Spec{
		SizeX:   cfg.Grid.SizeX,
		SizeY:   cfg.Grid.SizeY,
		SizeZ:   cfg.Grid.SizeZ,
		ScaleXZ: cfg.Grid.ScaleXZ,
		ScaleY:  cfg.Grid.ScaleY,
	}
}

// SearchOptions converts the search section into A* options.
func (cfg *Config) SearchOptions() []astar.Option {
	return []astar.Option{astar.WithVertical(!cfg.Search.Planar)}
}

// SchedulerOptions converts the scheduler section into scheduler options.
// Logger and metrics are added by the caller.
func (cfg *Config) SchedulerOptions() []scheduler.Option {
	return []scheduler.Option{scheduler.WithMaxConcurrentJobs(cfg.Scheduler.MaxConcurrentJobs)}
}
