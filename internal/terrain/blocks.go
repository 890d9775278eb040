package terrain

import (
	"fmt"
	gomath "math"
	"math/rand"

	"github.com/Faultbox/terragrid/pkg/math"
	"github.com/Faultbox/terragrid/pkg/mesh"
)

// maxPlacementAttempts bounds the rejection sampling of block positions.
const maxPlacementAttempts = 100000

// RandomBlocks scatters randomly sized and yawed blocks over a ground plane.
// Positions keep an outer margin from the footprint edge so yawed blocks stay
// inside, and are resampled when they fall in the square reserved for the
// optional central platform.
func RandomBlocks(terrainSize float64, p BlocksParams, rng *rand.Rand) (*mesh.Surface, error) {
	if err := checkPositive("min block size", p.MinBlockSize); err != nil {
		return nil, err
	}
	if p.MaxBlockSize < p.MinBlockSize {
		return nil, fmt.Errorf("%w: max block size %g below min %g", ErrInvalidParams, p.MaxBlockSize, p.MinBlockSize)
	}
	if p.NumBlocks < 0 {
		return nil, fmt.Errorf("%w: negative block count %d", ErrInvalidParams, p.NumBlocks)
	}

	center := footprintCenter(terrainSize)
	outerMargin := p.MaxBlockSize * 0.75
	innerMargin := p.MaxBlockSize*0.75 + p.PlatformSize*0.5
	span := terrainSize - 2*outerMargin
	if span <= 0 || innerMargin >= terrainSize/2-outerMargin {
		return nil, fmt.Errorf("%w: no room to place blocks in a %g m cell", ErrInvalidParams, terrainSize)
	}

	parts := make([]*mesh.Surface, 0, p.NumBlocks+2)
	parts = append(parts, SquarePlane(center, terrainSize, 0))

	attempts := 0
	for placed := 0; placed < p.NumBlocks; {
		if attempts++; attempts > maxPlacementAttempts {
			return nil, fmt.Errorf("%w: gave up placing block %d", ErrInvalidParams, placed)
		}
		xy := math.Vec2{
			X: rng.Float64()*span + outerMargin,
			Y: rng.Float64()*span + outerMargin,
		}
		if xy.ChebyshevDistance(center) < innerMargin {
			continue
		}

		yaw := rng.Float64() * gomath.Pi
		length := rng.Float64()*(p.MaxBlockSize-p.MinBlockSize) + p.MinBlockSize
		width := rng.Float64()*(p.MaxBlockSize-p.MinBlockSize) + p.MinBlockSize
		blockHeight := rng.Float64() * p.MaxBlockHeight

		parts = append(parts, Block(xy, length, width, 0, blockHeight, yaw))
		placed++
	}

	if p.CentralPlatform {
		parts = append(parts, SquareBlock(center, p.PlatformSize, 0, 0.5*p.MaxBlockHeight))
	}

	return mesh.Concat(parts...), nil
}
