package terrain

import (
	"fmt"
	"math"

	"github.com/Faultbox/terragrid/pkg/mesh"
)

// countFit returns how many whole steps of size step fit in span,
// tolerating floating point noise on exact fits.
func countFit(span, step float64) int {
	return int(math.Floor(span/step + 1e-9))
}

// Stairs builds a square pyramid of steps around a central platform.
// Going up, the platform is the lowest point and the outer edge sits at z=0;
// going down, the platform is the highest point.
func Stairs(terrainSize float64, p StairsParams) (*mesh.Surface, error) {
	if err := checkPlatform(p.PlatformSize, terrainSize); err != nil {
		return nil, err
	}
	if err := checkPositive("step width", p.StepWidth); err != nil {
		return nil, err
	}

	numSteps := countFit((terrainSize-p.PlatformSize)/2, p.StepWidth)
	if numSteps < 1 {
		return nil, fmt.Errorf("%w: step width %g leaves no room for a step", ErrInvalidParams, p.StepWidth)
	}

	center := footprintCenter(terrainSize)
	totalHeight := float64(numSteps) * p.StepHeight
	sign := 1.0
	if !p.GoingUp {
		sign = -1
	}

	parts := make([]*mesh.Surface, 0, 2*numSteps+1)
	parts = append(parts, SquarePlane(center, p.PlatformSize, -sign*totalHeight))

	for i := 0; i < numSteps; i++ {
		outerSize := p.PlatformSize + 2*p.StepWidth*float64(i+1)
		if i == numSteps-1 {
			outerSize = terrainSize
		}
		innerSize := p.PlatformSize + 2*p.StepWidth*float64(i)
		height := sign * (p.StepHeight*float64(i+1) - totalHeight)

		top, err := PlaneWithHole(center, outerSize, innerSize, height)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		parts = append(parts, top, SquareWall(center, innerSize, height, -sign*p.StepHeight))
	}

	return mesh.Concat(parts...), nil
}
