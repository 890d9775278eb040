package terrain

import (
	"fmt"

	"github.com/Faultbox/terragrid/pkg/mesh"
)

// SquareCentric surrounds the central platform with raised square loops,
// StepSpacing apart. Each loop has an inner and an outer wall joined by a flat top.
func SquareCentric(terrainSize float64, p SquareCentricParams) (*mesh.Surface, error) {
	if err := checkPlatform(p.PlatformSize, terrainSize); err != nil {
		return nil, err
	}
	if err := checkPositive("step width", p.StepWidth); err != nil {
		return nil, err
	}
	if err := checkPositive("step spacing", p.StepSpacing); err != nil {
		return nil, err
	}

	center := footprintCenter(terrainSize)
	numRings := countFit((terrainSize-p.PlatformSize)/2, p.StepSpacing)

	parts := make([]*mesh.Surface, 0, 3*numRings+1)
	parts = append(parts, SquarePlane(center, terrainSize, 0))
	for i := 0; i < numRings; i++ {
		innerSize := p.PlatformSize + 2*p.StepSpacing*float64(i)
		outerSize := min(innerSize+p.StepWidth, terrainSize)
		if innerSize >= outerSize {
			break
		}
		top, err := PlaneWithHole(center, outerSize, innerSize, p.StepHeight)
		if err != nil {
			return nil, fmt.Errorf("ring %d: %w", i, err)
		}
		parts = append(parts,
			SquareWall(center, innerSize, p.StepHeight, -p.StepHeight),
			SquareWall(center, outerSize, 0, p.StepHeight),
			top,
		)
	}
	return mesh.Concat(parts...), nil
}
