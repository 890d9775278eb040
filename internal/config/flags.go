package config

import "flag"

// Flags holds command-line overrides bound to one FlagSet.
type Flags struct {
	fs *flag.FlagSet

	config      *string
	debug       *bool
	seed        *int64
	levels      *int
	terrains    *int
	terrainSize *float64
	border      *float64
	resolution  *float64
	workers     *int
	outDir      *string
	prefix      *string
}

// RegisterFlags binds the config override flags to fs.
func RegisterFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:          fs,
		config:      fs.String("config", "", "Path to config file"),
		debug:       fs.Bool("debug", false, "Enable debug logging"),
		seed:        fs.Int64("seed", 0, "Random seed"),
		levels:      fs.Int("levels", 0, "Number of difficulty rows"),
		terrains:    fs.Int("terrains", 0, "Number of terrain columns"),
		terrainSize: fs.Float64("terrain-size", 0, "Side of one terrain cell in meters"),
		border:      fs.Float64("border", 0, "Width of the flat border in meters"),
		resolution:  fs.Float64("resolution", 0, "Heightmap samples per meter"),
		workers:     fs.Int("workers", 0, "Worker goroutines (0 = all CPUs)"),
		outDir:      fs.String("out", "", "Output directory"),
		prefix:      fs.String("prefix", "", "Output file prefix"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// apply applies flags that were set on the command line.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	set := make(map[string]bool)
	f.fs.Visit(func(fl *flag.Flag) { set[fl.Name] = true })

	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if set["seed"] {
		cfg.Grid.Seed = *f.seed
	}
	if set["levels"] {
		cfg.Grid.NumLevels = *f.levels
	}
	if set["terrains"] {
		cfg.Grid.NumTerrains = *f.terrains
	}
	if set["terrain-size"] {
		cfg.Grid.TerrainSize = *f.terrainSize
	}
	if set["border"] {
		cfg.Grid.BorderSize = *f.border
	}
	if set["resolution"] {
		cfg.Heightmap.Resolution = *f.resolution
	}
	if set["workers"] {
		cfg.Grid.Workers = *f.workers
	}
	if set["out"] {
		cfg.Output.Dir = *f.outDir
	}
	if set["prefix"] {
		cfg.Output.Prefix = *f.prefix
	}
}
