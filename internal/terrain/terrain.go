// Package terrain builds parametric obstacle terrain cells: the primitive
// surfaces and the difficulty-scaled generators that combine them.
//
// Every generator produces a surface whose XY footprint is exactly
// [0, terrainSize] x [0, terrainSize].
package terrain

import (
	"errors"
	"fmt"

	"github.com/Faultbox/terragrid/pkg/math"
)

// Terrain errors.
var (
	ErrInvalidParams    = errors.New("invalid terrain parameters")
	ErrUnknownGenerator = errors.New("unknown terrain generator")
)

// Info describes how a cell was generated. Params holds the unscaled record.
type Info struct {
	Name        string  `yaml:"name"`
	TerrainSize float64 `yaml:"terrain_size"`
	Params      any     `yaml:"params,omitempty"`
}

func footprintCenter(terrainSize float64) math.Vec2 {
	return math.Vec2{X: terrainSize / 2, Y: terrainSize / 2}
}

func checkDifficulty(difficulty float64) error {
	if difficulty < 0 || difficulty > 1 {
		return fmt.Errorf("%w: difficulty %.3f outside [0, 1]", ErrInvalidParams, difficulty)
	}
	return nil
}

func checkPositive(name string, v float64) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %g", ErrInvalidParams, name, v)
	}
	return nil
}

func checkPlatform(platformSize, terrainSize float64) error {
	if platformSize <= 0 || platformSize >= terrainSize {
		return fmt.Errorf("%w: platform size %g must be in (0, %g)", ErrInvalidParams, platformSize, terrainSize)
	}
	return nil
}
