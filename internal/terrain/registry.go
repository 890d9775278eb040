package terrain

import (
	"fmt"
	"math/rand"

	"github.com/Faultbox/terragrid/pkg/mesh"
)

// Generator names.
const (
	NameFlat            = "flat"
	NameStairsUpwards   = "stairs_upwards"
	NameStairsDownwards = "stairs_downwards"
	NameSlopeUpwards    = "slope_upwards"
	NameSlopeDownwards  = "slope_downwards"
	NameRandomBlocks    = "random_blocks"
	NamePerlin          = "perlin"
	NameCheckers        = "checkers"
	NameTiltedSquares   = "tilted_squares"
	NameSquareCentric   = "square_centric"
)

// GenerateFunc builds one cell. Implementations scale the height-like fields of
// their parameter record by difficulty and draw randomness only from rng.
type GenerateFunc func(terrainSize, difficulty float64, params *Params, rng *rand.Rand) (*mesh.Surface, Info, error)

// Generator is a named cell builder.
type Generator struct {
	Name     string
	Generate GenerateFunc
}

// Registry maps generator names to builders, remembering registration order.
type Registry struct {
	order      []string
	generators map[string]Generator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{generators: make(map[string]Generator)}
}

// DefaultRegistry returns a registry holding every built-in generator.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, g := range builtin() {
		r.Register(g)
	}
	return r
}

// Register adds or replaces a generator.
func (r *Registry) Register(g Generator) {
	if _, ok := r.generators[g.Name]; !ok {
		r.order = append(r.order, g.Name)
	}
	r.generators[g.Name] = g
}

// Lookup returns the generator registered under name.
func (r *Registry) Lookup(name string) (Generator, error) {
	g, ok := r.generators[name]
	if !ok {
		return Generator{}, fmt.Errorf("%w: %q", ErrUnknownGenerator, name)
	}
	return g, nil
}

// Names returns generator names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

func builtin() []Generator {
	return []Generator{
		{NameFlat, generateFlat},
		{NameStairsUpwards, generateStairs(NameStairsUpwards, true, func(p *Params) StairsParams { return p.StairsUp })},
		{NameStairsDownwards, generateStairs(NameStairsDownwards, false, func(p *Params) StairsParams { return p.StairsDown })},
		{NameSlopeUpwards, generateSlope(NameSlopeUpwards, true, func(p *Params) SlopeParams { return p.SlopeUp })},
		{NameSlopeDownwards, generateSlope(NameSlopeDownwards, false, func(p *Params) SlopeParams { return p.SlopeDown })},
		{NameRandomBlocks, generateRandomBlocks},
		{NamePerlin, generatePerlin},
		{NameCheckers, generateCheckers},
		{NameTiltedSquares, generateTiltedSquares},
		{NameSquareCentric, generateSquareCentric},
	}
}

func generateFlat(terrainSize, difficulty float64, _ *Params, _ *rand.Rand) (*mesh.Surface, Info, error) {
	info := Info{Name: NameFlat, TerrainSize: terrainSize}
	if err := checkDifficulty(difficulty); err != nil {
		return nil, info, err
	}
	return Flat(terrainSize), info, nil
}

// generateStairs builds one direction of stairs. The direction comes from the
// registered name, never from the parameter record.
func generateStairs(name string, up bool, pick func(*Params) StairsParams) GenerateFunc {
	return func(terrainSize, difficulty float64, params *Params, _ *rand.Rand) (*mesh.Surface, Info, error) {
		p := pick(params)
		p.GoingUp = up
		info := Info{Name: name, TerrainSize: terrainSize, Params: p}
		if err := checkDifficulty(difficulty); err != nil {
			return nil, info, err
		}
		p.StepHeight *= difficulty
		s, err := Stairs(terrainSize, p)
		return s, info, err
	}
}

func generateSlope(name string, up bool, pick func(*Params) SlopeParams) GenerateFunc {
	return func(terrainSize, difficulty float64, params *Params, _ *rand.Rand) (*mesh.Surface, Info, error) {
		p := pick(params)
		p.GoingUp = up
		info := Info{Name: name, TerrainSize: terrainSize, Params: p}
		if err := checkDifficulty(difficulty); err != nil {
			return nil, info, err
		}
		p.TotalHeight *= difficulty
		p.BarHeight *= difficulty
		s, err := Slope(terrainSize, p)
		return s, info, err
	}
}

func generateRandomBlocks(terrainSize, difficulty float64, params *Params, rng *rand.Rand) (*mesh.Surface, Info, error) {
	p := params.RandomBlocks
	info := Info{Name: NameRandomBlocks, TerrainSize: terrainSize, Params: p}
	if err := checkDifficulty(difficulty); err != nil {
		return nil, info, err
	}
	p.MaxBlockHeight *= difficulty
	s, err := RandomBlocks(terrainSize, p, rng)
	return s, info, err
}

func generatePerlin(terrainSize, difficulty float64, params *Params, rng *rand.Rand) (*mesh.Surface, Info, error) {
	p := params.Perlin
	info := Info{Name: NamePerlin, TerrainSize: terrainSize, Params: p}
	if err := checkDifficulty(difficulty); err != nil {
		return nil, info, err
	}
	p.HeightMultiplier *= difficulty
	p.PlatformHeight *= difficulty
	s, err := PerlinField(terrainSize, p, rng)
	return s, info, err
}

func generateCheckers(terrainSize, difficulty float64, params *Params, rng *rand.Rand) (*mesh.Surface, Info, error) {
	p := params.Checkers
	info := Info{Name: NameCheckers, TerrainSize: terrainSize, Params: p}
	if err := checkDifficulty(difficulty); err != nil {
		return nil, info, err
	}
	p.BlockHeight *= difficulty
	p.Noise *= difficulty
	s, err := Checkers(terrainSize, p, rng)
	return s, info, err
}

func generateTiltedSquares(terrainSize, difficulty float64, params *Params, rng *rand.Rand) (*mesh.Surface, Info, error) {
	p := params.TiltedSquares
	info := Info{Name: NameTiltedSquares, TerrainSize: terrainSize, Params: p}
	if err := checkDifficulty(difficulty); err != nil {
		return nil, info, err
	}
	p.BlockHeight *= difficulty
	p.Noise *= difficulty
	s, err := TiltedSquares(terrainSize, p, rng)
	return s, info, err
}

func generateSquareCentric(terrainSize, difficulty float64, params *Params, _ *rand.Rand) (*mesh.Surface, Info, error) {
	p := params.SquareCentric
	info := Info{Name: NameSquareCentric, TerrainSize: terrainSize, Params: p}
	if err := checkDifficulty(difficulty); err != nil {
		return nil, info, err
	}
	p.StepHeight *= difficulty
	s, err := SquareCentric(terrainSize, p)
	return s, info, err
}
