// Package config handles terrain generation settings.
package config

import (
	"github.com/Faultbox/terragrid/internal/grid"
	"github.com/Faultbox/terragrid/internal/heightmap"
	"github.com/Faultbox/terragrid/internal/logger"
	"github.com/Faultbox/terragrid/internal/terrain"
)

// Config holds all generation settings.
type Config struct {
	Grid        GridConfig      `yaml:"grid"`
	Heightmap   HeightmapConfig `yaml:"heightmap"`
	Proportions Proportions     `yaml:"proportions"`
	Generators  terrain.Params  `yaml:"generators"`
	Output      OutputConfig    `yaml:"output"`
	Logging     LoggingConfig   `yaml:"logging"`
}

// GridConfig sizes the assembled world.
type GridConfig struct {
	TerrainSize float64 `yaml:"terrain_size"` // side of one cell [m]
	BorderSize  float64 `yaml:"border_size"`  // flat ring around the grid [m]
	NumLevels   int     `yaml:"num_levels"`   // rows, difficulty axis
	NumTerrains int     `yaml:"num_terrains"` // columns, terrain type axis
	Seed        int64   `yaml:"seed"`
	Workers     int     `yaml:"workers"` // 0 = GOMAXPROCS
}

// HeightmapConfig controls heightmap extraction.
type HeightmapConfig struct {
	Resolution float64 `yaml:"resolution"` // samples per meter
	RayOffset  float64 `yaml:"ray_offset"` // jitter radius [m]
	ZeroBorder bool    `yaml:"zero_border"`
}

// OutputConfig selects what gets written.
type OutputConfig struct {
	Dir     string `yaml:"dir"`
	Prefix  string `yaml:"prefix"`
	Bundle  bool   `yaml:"bundle"`
	OBJ     bool   `yaml:"obj"`
	TIFF    bool   `yaml:"tiff"`
	Preview bool   `yaml:"preview"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	hm := heightmap.DefaultOptions()
	return &Config{
		Grid: GridConfig{
			TerrainSize: 8.0,
			BorderSize:  2.5,
			NumLevels:   4,
			NumTerrains: 9,
			Seed:        1,
		},
		Heightmap: HeightmapConfig{
			Resolution: hm.Resolution,
			RayOffset:  hm.RayOffset,
		},
		Proportions: Proportions{
			{Name: terrain.NameFlat, Weight: 1},
			{Name: terrain.NameStairsUpwards, Weight: 1},
			{Name: terrain.NameStairsDownwards, Weight: 1},
			{Name: terrain.NameSlopeUpwards, Weight: 1},
			{Name: terrain.NameSlopeDownwards, Weight: 0},
			{Name: terrain.NameRandomBlocks, Weight: 1},
			{Name: terrain.NamePerlin, Weight: 1},
			{Name: terrain.NameCheckers, Weight: 1},
			{Name: terrain.NameTiltedSquares, Weight: 1},
			{Name: terrain.NameSquareCentric, Weight: 1},
		},
		Generators: terrain.DefaultParams(),
		Output: OutputConfig{
			Dir:     "output",
			Prefix:  "terrains",
			Bundle:  true,
			Preview: true,
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// GridOptions converts the grid section for the assembler.
func (c *Config) GridOptions() grid.Options {
	return grid.Options{
		TerrainSize: c.Grid.TerrainSize,
		BorderSize:  c.Grid.BorderSize,
		NumLevels:   c.Grid.NumLevels,
		NumTerrains: c.Grid.NumTerrains,
		Seed:        c.Grid.Seed,
		Workers:     c.Grid.Workers,
	}
}

// HeightmapOptions converts the heightmap section for the extractor.
func (c *Config) HeightmapOptions() heightmap.Options {
	opts := heightmap.DefaultOptions()
	opts.Resolution = c.Heightmap.Resolution
	opts.RayOffset = c.Heightmap.RayOffset
	opts.ZeroBorder = c.Heightmap.ZeroBorder
	opts.Workers = c.Grid.Workers
	return opts
}

// LogFileConfig converts the logging section for the logger.
func (c *Config) LogFileConfig() logger.FileConfig {
	return logger.FileConfig{
		Path:       c.Logging.LogFile,
		MaxSizeMB:  c.Logging.MaxSizeMB,
		MaxBackups: c.Logging.MaxBackups,
		MaxAgeDays: c.Logging.MaxAgeDays,
		Compress:   true,
	}
}
