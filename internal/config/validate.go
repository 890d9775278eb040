package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/Faultbox/terragrid/internal/logger"
	"github.com/Faultbox/terragrid/internal/terrain"
)

// ErrInvalidConfig marks every validation problem.
var ErrInvalidConfig = errors.New("invalid config")

// Validate reports every problem in the configuration at once.
// Use multierr.Errors to list them individually.
func (c *Config) Validate() error {
	var errs error
	add := func(format string, args ...any) {
		errs = multierr.Append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	g := c.Grid
	if g.TerrainSize <= 0 {
		add("grid.terrain_size must be positive, got %g", g.TerrainSize)
	}
	if g.BorderSize < 0 {
		add("grid.border_size must not be negative, got %g", g.BorderSize)
	}
	if g.NumLevels < 1 {
		add("grid.num_levels must be at least 1, got %d", g.NumLevels)
	}
	if g.NumTerrains < 1 {
		add("grid.num_terrains must be at least 1, got %d", g.NumTerrains)
	}
	if g.Workers < 0 {
		add("grid.workers must not be negative, got %d", g.Workers)
	}

	h := c.Heightmap
	if h.Resolution <= 0 {
		add("heightmap.resolution must be positive, got %g", h.Resolution)
	} else if h.RayOffset < 0 || h.RayOffset >= 0.5/h.Resolution {
		add("heightmap.ray_offset must be in [0, %g), got %g", 0.5/h.Resolution, h.RayOffset)
	}

	known := make(map[string]bool)
	for _, name := range terrain.DefaultRegistry().Names() {
		known[name] = true
	}
	seen := make(map[string]bool)
	for _, p := range c.Proportions {
		if !known[p.Name] {
			add("proportions: unknown generator %q", p.Name)
		}
		if seen[p.Name] {
			add("proportions: %q listed twice", p.Name)
		}
		seen[p.Name] = true
		if p.Weight < 0 {
			add("proportions.%s must not be negative, got %g", p.Name, p.Weight)
		}
	}
	enabled := c.Proportions.Enabled()
	if len(enabled) == 0 {
		add("proportions: at least one generator needs a positive weight")
	}

	if g.TerrainSize > 0 {
		for _, name := range enabled {
			if platform, ok := c.platformSize(name); ok && platform >= g.TerrainSize {
				add("generators.%s.platform_size %g must be below terrain_size %g", name, platform, g.TerrainSize)
			}
		}
	}

	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		add("logging.level: %v", err)
	}
	if c.Output.Prefix == "" {
		add("output.prefix must not be empty")
	}

	return errs
}

// platformSize returns the central platform size of a generator, if it has one.
func (c *Config) platformSize(name string) (float64, bool) {
	p := c.Generators
	switch name {
	case terrain.NameStairsUpwards:
		return p.StairsUp.PlatformSize, true
	case terrain.NameStairsDownwards:
		return p.StairsDown.PlatformSize, true
	case terrain.NameSlopeUpwards:
		return p.SlopeUp.PlatformSize, true
	case terrain.NameSlopeDownwards:
		return p.SlopeDown.PlatformSize, true
	case terrain.NameRandomBlocks:
		return p.RandomBlocks.PlatformSize, true
	case terrain.NamePerlin:
		return p.Perlin.PlatformSize, true
	case terrain.NameCheckers:
		return p.Checkers.PlatformSize, true
	case terrain.NameTiltedSquares:
		return p.TiltedSquares.PlatformSize, true
	case terrain.NameSquareCentric:
		return p.SquareCentric.PlatformSize, true
	}
	return 0, false
}
