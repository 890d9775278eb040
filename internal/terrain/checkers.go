package terrain

import (
	"fmt"
	"math/rand"

	"github.com/Faultbox/terragrid/pkg/math"
	"github.com/Faultbox/terragrid/pkg/mesh"
)

// tile is one square of the interior checkerboard.
type tile struct {
	i, j   int
	center math.Vec2
}

// tiles lays a blockSize checkerboard over the footprint, leaving a flat strip
// of one block around the edge. The board is centered in the footprint.
func tiles(terrainSize, blockSize float64) ([]tile, error) {
	n := countFit(terrainSize-2*blockSize, blockSize)
	if n < 1 {
		return nil, fmt.Errorf("%w: block size %g leaves no interior tiles", ErrInvalidParams, blockSize)
	}
	start := (terrainSize-float64(n)*blockSize)/2 + blockSize/2
	out := make([]tile, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out = append(out, tile{i: i, j: j, center: math.Vec2{
				X: start + float64(i)*blockSize,
				Y: start + float64(j)*blockSize,
			}})
		}
	}
	return out, nil
}

// Checkers raises every other tile of a checkerboard by BlockHeight plus a
// uniform perturbation in [-Noise, Noise]. Tiles touching the central platform
// stay flat.
func Checkers(terrainSize float64, p CheckersParams, rng *rand.Rand) (*mesh.Surface, error) {
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
	keepOut := (p.PlatformSize + p.BlockSize) / 2

	parts := make([]*mesh.Surface, 0, len(board)/2+1)
	parts = append(parts, SquarePlane(center, terrainSize, 0))
	for _, t := range board {
		// Draw for every tile so heights at a given seed do not depend on the platform.
		jitter := (2*rng.Float64() - 1) * p.Noise
		if (t.i+t.j)%2 != 0 || t.center.ChebyshevDistance(center) < keepOut {
			continue
		}
		parts = append(parts, SquareBlock(t.center, p.BlockSize, 0, p.BlockHeight+jitter))
	}
	return mesh.Concat(parts...), nil
}
