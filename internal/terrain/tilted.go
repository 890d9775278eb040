package terrain

import (
	"math/rand"

	"github.com/Faultbox/terragrid/pkg/mesh"
)

// TiltedSquares covers the checkerboard with tilted-top blocks. Tiles whose
// centers fall on the central platform stay flat.
func TiltedSquares(terrainSize float64, p TiltedSquaresParams, rng *rand.Rand) (*mesh.Surface, error) {
	if err := checkPositive("block size", p.BlockSize); err != nil {
		return nil, err
	}
	if err := checkPlatform(p.PlatformSize, terrainSize); err != nil {
		return nil, err
	}
	board, err := tiles(terrainSize, p.BlockSize)
	if err != nil {
		return nil, err
	}

	center := footprintCenter(terrainSize)
	parts := make([]*mesh.Surface, 0, len(board)+1)
	parts = append(parts, SquarePlane(center, terrainSize, 0))
	for _, t := range board {
		height := p.BlockHeight + (2*rng.Float64()-1)*p.Noise
		block := TiltedBlock(t.center, p.BlockSize, p.BlockSize, 0, height, 0, p.Noise, rng)
		if t.center.ChebyshevDistance(center) < p.PlatformSize/2 {
			continue
		}
		parts = append(parts, block)
	}
	return mesh.Concat(parts...), nil
}
