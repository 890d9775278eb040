package terrain

import (
	"fmt"
	gomath "math"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/Faultbox/terragrid/pkg/math"
	"github.com/Faultbox/terragrid/pkg/mesh"
)

// Perlin noise shape: amplitude halves and frequency doubles per octave.
const (
	perlinAlpha = 2
	perlinBeta  = 2
)

// PerlinField builds a height-field surface from coherent noise.
// The field fades to zero at the footprint edge and blends into a flat
// platform at the center. Every call draws a fresh noise seed and offset from rng.
func PerlinField(terrainSize float64, p PerlinParams, rng *rand.Rand) (*mesh.Surface, error) {
	if err := checkPositive("resolution per meter", p.ResolutionPerMeter); err != nil {
		return nil, err
	}
	if err := checkPositive("noise scale", p.Scale); err != nil {
		return nil, err
	}
	if p.Octaves < 1 {
		return nil, fmt.Errorf("%w: octaves must be at least 1, got %d", ErrInvalidParams, p.Octaves)
	}

	res := int(gomath.Round(terrainSize * p.ResolutionPerMeter))
	if res < 1 {
		return nil, fmt.Errorf("%w: %g m at %g samples/m gives an empty lattice", ErrInvalidParams, terrainSize, p.ResolutionPerMeter)
	}

	heights := perlinHeights(res, p, rng)

	// Lattice vertices are shared between neighbouring quads.
	n := res + 1
	vertices := make([]math.Vec3, 0, n*n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			vertices = append(vertices, math.Vec3{
				X: float64(x) * terrainSize / float64(res),
				Y: float64(y) * terrainSize / float64(res),
				Z: heights[x*n+y],
			})
		}
	}

	triangles := make([]mesh.Triangle, 0, 2*res*res)
	for x := 0; x < res; x++ {
		for y := 0; y < res; y++ {
			v0 := x*n + y
			v1 := (x+1)*n + y
			v2 := x*n + y + 1
			v3 := (x+1)*n + y + 1
			triangles = append(triangles, mesh.Triangle{v0, v1, v2}, mesh.Triangle{v2, v1, v3})
		}
	}

	return mesh.New(vertices, triangles), nil
}

// perlinHeights samples the (res+1)^2 lattice, indexed [x*(res+1)+y].
// Distances are measured in lattice steps.
func perlinHeights(res int, p PerlinParams, rng *rand.Rand) []float64 {
	xs, ys := 1000*rng.Float64(), 1000*rng.Float64()
	noise := perlin.NewPerlin(perlinAlpha, perlinBeta, int32(p.Octaves), rng.Int63())

	platformHalf := p.PlatformSize * p.ResolutionPerMeter / 2
	platformSmooth := p.PlatformSmoothing * p.ResolutionPerMeter
	edgeSmooth := p.EdgeSmoothing * p.ResolutionPerMeter
	mid := math.Vec2{X: float64(res) / 2, Y: float64(res) / 2}

	n := res + 1
	heights := make([]float64, n*n)
	for x := 0; x < n; x++ {
		for y := 0; y < n; y++ {
			nx := (float64(x) + xs) / float64(res)
			ny := (float64(y) + ys) / float64(res)
			base := noise.Noise2D(nx/p.Scale, ny/p.Scale) * p.HeightMultiplier

			edgeDist := float64(min(x, y, res-x, res-y))
			edgeFactor := 1.0
			if edgeSmooth > 0 {
				edgeFactor = gomath.Min(1, edgeDist/edgeSmooth)
			} else if edgeDist == 0 {
				edgeFactor = 0
			}

			h := base
			centerDist := math.Vec2{X: float64(x), Y: float64(y)}.ChebyshevDistance(mid)
			if centerDist < platformHalf+platformSmooth {
				smooth := blendFactor(centerDist, platformHalf, platformSmooth)
				h = p.PlatformHeight*smooth + base*(1-smooth)
			}

			heights[x*n+y] = h * edgeFactor
		}
	}
	return heights
}

// blendFactor is 1 inside the platform and falls linearly to 0 across the
// smoothing band.
func blendFactor(dist, radius, smoothing float64) float64 {
	outside := gomath.Max(0, dist-radius)
	if smoothing <= 0 {
		if outside > 0 {
			return 0
		}
		return 1
	}
	return gomath.Max(0, 1-outside/smoothing)
}
