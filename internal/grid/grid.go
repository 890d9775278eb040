// Package grid assembles terrain cells into a difficulty-graded world.
//
// Cell (row r, col c) covers [r*TerrainSize, (r+1)*TerrainSize] along X and
// [c*TerrainSize, (c+1)*TerrainSize] along Y. Rows step difficulty from 0 to 1;
// columns step through the weighted generator mix.
package grid

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/terragrid/internal/heightmap"
	"github.com/Faultbox/terragrid/internal/terrain"
	"github.com/Faultbox/terragrid/pkg/math"
	"github.com/Faultbox/terragrid/pkg/mesh"
)

// Grid errors.
var (
	ErrNoGenerators = errors.New("no terrain generators enabled")
	ErrInvalidGrid  = errors.New("invalid grid options")
)

// Options sizes the world.
type Options struct {
	TerrainSize float64 `yaml:"terrain_size"`
	BorderSize  float64 `yaml:"border_size"`
	NumLevels   int     `yaml:"num_levels"`
	NumTerrains int     `yaml:"num_terrains"`
	Seed        int64   `yaml:"seed"`
	Workers     int     `yaml:"workers"`
}

// Validate checks the grid dimensions.
func (o Options) Validate() error {
	if o.TerrainSize <= 0 {
		return fmt.Errorf("%w: terrain size %g", ErrInvalidGrid, o.TerrainSize)
	}
	if o.BorderSize < 0 {
		return fmt.Errorf("%w: border size %g", ErrInvalidGrid, o.BorderSize)
	}
	if o.NumLevels < 1 || o.NumTerrains < 1 {
		return fmt.Errorf("%w: %d levels x %d terrains", ErrInvalidGrid, o.NumLevels, o.NumTerrains)
	}
	return nil
}

// Rect returns the XY extent of the world including its border.
func (o Options) Rect() heightmap.Rect {
	return heightmap.Rect{
		MinX: -o.BorderSize,
		MinY: -o.BorderSize,
		MaxX: float64(o.NumLevels)*o.TerrainSize + o.BorderSize,
		MaxY: float64(o.NumTerrains)*o.TerrainSize + o.BorderSize,
	}
}

// Cell is one generated terrain cell. Range locates its geometry in World.Surface.
type Cell struct {
	Row        int
	Col        int
	Generator  string
	Difficulty float64
	Info       terrain.Info
	Range      mesh.Range
}

// World is the assembled composite surface.
type World struct {
	Options Options
	Columns []string       // generator per column
	Infos   []terrain.Info // unscaled parameters per column
	Cells   []Cell         // row-major
	Border  mesh.Range
	Surface *mesh.Surface
}

// Cell returns the cell at (row, col).
func (w *World) Cell(row, col int) *Cell {
	return &w.Cells[row*w.Options.NumTerrains+col]
}

// Assembler generates and concatenates grid cells.
type Assembler struct {
	registry *terrain.Registry
	params   terrain.Params
	logger   *zap.Logger
}

// NewAssembler creates an assembler. A nil logger discards output.
func NewAssembler(registry *terrain.Registry, params terrain.Params, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Assembler{registry: registry, params: params, logger: logger}
}

// Assemble builds every cell of the grid and concatenates them with the border.
// Generator selection is checked before any cell is generated. Each cell draws
// from its own seed so the result does not depend on Workers.
func (a *Assembler) Assemble(ctx context.Context, opts Options, props []Proportion) (*World, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	columns, err := Columns(props, opts.NumTerrains)
	if err != nil {
		return nil, err
	}
	generators := make([]terrain.Generator, len(columns))
	for c, name := range columns {
		g, err := a.registry.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", c, err)
		}
		generators[c] = g
		a.logger.Debug("column generator", zap.Int("col", c), zap.String("generator", name))
	}

	start := time.Now()
	surfaces := make([]*mesh.Surface, opts.NumLevels*opts.NumTerrains)
	cells := make([]Cell, len(surfaces))

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for r := 0; r < opts.NumLevels; r++ {
		for c := 0; c < opts.NumTerrains; c++ {
			r, c := r, c
			i := r*opts.NumTerrains + c
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				d := Difficulty(r, opts.NumLevels)
				rng := rand.New(rand.NewSource(math.CellSeed(opts.Seed, r, c)))
				s, info, err := generators[c].Generate(opts.TerrainSize, d, &a.params, rng)
				if err != nil {
					return fmt.Errorf("cell (%d, %d) %s: %w", r, c, columns[c], err)
				}
				s.Translate(float64(r)*opts.TerrainSize, float64(c)*opts.TerrainSize, 0)
				surfaces[i] = s
				cells[i] = Cell{Row: r, Col: c, Generator: columns[c], Difficulty: d, Info: info}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	border, err := terrain.Border(float64(opts.NumLevels)*opts.TerrainSize, float64(opts.NumTerrains)*opts.TerrainSize, opts.BorderSize)
	if err != nil {
		return nil, err
	}

	vertices, triangles := 0, 0
	for _, s := range surfaces {
		vertices += s.VertexCount()
		triangles += s.TriangleCount()
	}
	arena := mesh.NewArena(vertices+8, triangles+8)
	for i, s := range surfaces {
		cells[i].Range = arena.Append(s)
	}

	world := &World{
		Options: opts,
		Columns: columns,
		Infos:   make([]terrain.Info, opts.NumTerrains),
		Cells:   cells,
	}
	for c := range world.Infos {
		world.Infos[c] = cells[c].Info
	}
	if border != nil {
		world.Border = arena.Append(border)
	}
	world.Surface = arena.Surface()

	a.logger.Info("grid assembled",
		zap.Int("levels", opts.NumLevels),
		zap.Int("terrains", opts.NumTerrains),
		zap.Int("cells", len(cells)),
		zap.Int("vertices", world.Surface.VertexCount()),
		zap.Int("triangles", world.Surface.TriangleCount()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return world, nil
}
