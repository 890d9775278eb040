package grid

import (
	"context"
	"errors"
	"math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/terragrid/internal/terrain"
)

func flatOnly() []Proportion {
	return []Proportion{{Name: terrain.NameFlat, Weight: 1}}
}

func mixed() []Proportion {
	return []Proportion{
		{Name: terrain.NameFlat, Weight: 0.5},
		{Name: terrain.NameStairsUpwards, Weight: 1},
		{Name: terrain.NameSlopeDownwards, Weight: 0},
		{Name: terrain.NameRandomBlocks, Weight: 1},
		{Name: terrain.NameCheckers, Weight: 1},
		{Name: terrain.NamePerlin, Weight: 0.5},
	}
}

func newAssembler(logger *zap.Logger) *Assembler {
	return NewAssembler(terrain.DefaultRegistry(), terrain.DefaultParams(), logger)
}

func TestCumulativeWeights(t *testing.T) {
	names, cum, err := cumulativeWeights(mixed())
	if err != nil {
		t.Fatalf("cumulativeWeights: %v", err)
	}
	if len(names) != 5 || names[2] != terrain.NameRandomBlocks {
		t.Errorf("zero weights not dropped: %v", names)
	}
	want := []float64{0.125, 0.375, 0.625, 0.875, 1}
	for i := range want {
		if math.Abs(cum[i]-want[i]) > 1e-12 {
			t.Errorf("cum[%d] = %g, want %g", i, cum[i], want[i])
		}
	}
}

func TestNoGenerators(t *testing.T) {
	props := []Proportion{{Name: terrain.NameFlat, Weight: 0}, {Name: terrain.NamePerlin, Weight: -1}}
	if _, err := Columns(props, 3); !errors.Is(err, ErrNoGenerators) {
		t.Errorf("expected ErrNoGenerators, got %v", err)
	}
	_, err := newAssembler(nil).Assemble(context.Background(), Options{TerrainSize: 8, NumLevels: 1, NumTerrains: 1}, nil)
	if !errors.Is(err, ErrNoGenerators) {
		t.Errorf("expected ErrNoGenerators, got %v", err)
	}
}

func TestSelectionCoverage(t *testing.T) {
	weightSets := [][]float64{
		{1},
		{1, 1, 1},
		{0.1, 0.2, 0.7},
		{1e-9, 1, 1e-9},
		{3, 0, 0, 0, 0.001},
	}
	for _, weights := range weightSets {
		var props []Proportion
		for i, w := range weights {
			props = append(props, Proportion{Name: string(rune('a' + i)), Weight: w})
		}
		_, cum, err := cumulativeWeights(props)
		if err != nil {
			t.Fatalf("%v: %v", weights, err)
		}
		for _, n := range []int{1, 2, 7, 9, 100} {
			for c := 0; c < n; c++ {
				k := SelectColumn(c, n, cum)
				if k < 0 || k >= len(cum) {
					t.Fatalf("%v: column %d of %d selected %d", weights, c, n, k)
				}
				if float64(c)/float64(n) >= cum[k] {
					t.Fatalf("%v: column %d fell through to %d", weights, c, k)
				}
			}
		}
	}
}

func TestColumnsFollowWeights(t *testing.T) {
	cols, err := Columns([]Proportion{{Name: "a", Weight: 1}, {Name: "b", Weight: 2}}, 9)
	if err != nil {
		t.Fatalf("Columns: %v", err)
	}
	want := []string{"a", "a", "a", "b", "b", "b", "b", "b", "b"}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("column %d = %s, want %s", i, cols[i], want[i])
		}
	}
}

func TestDifficulty(t *testing.T) {
	tests := []struct {
		row, levels int
		want        float64
	}{
		{0, 1, 0},
		{0, 4, 0},
		{1, 4, 1.0 / 3},
		{3, 4, 1},
		{5, 11, 0.5},
	}
	for _, tt := range tests {
		if got := Difficulty(tt.row, tt.levels); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Difficulty(%d, %d) = %g, want %g", tt.row, tt.levels, got, tt.want)
		}
	}
}

func TestAssembleBounds(t *testing.T) {
	opts := Options{TerrainSize: 8, BorderSize: 2.5, NumLevels: 4, NumTerrains: 9, Seed: 7}
	world, err := newAssembler(nil).Assemble(context.Background(), opts, flatOnly())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	b := world.Surface.Bounds()
	if b.Min.X != -2.5 || b.Min.Y != -2.5 || b.Max.X != 34.5 || b.Max.Y != 74.5 {
		t.Errorf("bounds [%g, %g] x [%g, %g], want [-2.5, 34.5] x [-2.5, 74.5]", b.Min.X, b.Max.X, b.Min.Y, b.Max.Y)
	}
	r := opts.Rect()
	if r.MinX != b.Min.X || r.MaxX != b.Max.X || r.MinY != b.Min.Y || r.MaxY != b.Max.Y {
		t.Errorf("Rect %+v disagrees with surface bounds", r)
	}
	if len(world.Cells) != 36 {
		t.Fatalf("expected 36 cells, got %d", len(world.Cells))
	}
	if world.Border.TriangleCount != 8 {
		t.Errorf("border has %d triangles, want 8", world.Border.TriangleCount)
	}
}

func TestAssembleCellPlacement(t *testing.T) {
	opts := Options{TerrainSize: 8, BorderSize: 1, NumLevels: 3, NumTerrains: 6, Seed: 3}
	world, err := newAssembler(nil).Assemble(context.Background(), opts, mixed())
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	for r := 0; r < opts.NumLevels; r++ {
		for c := 0; c < opts.NumTerrains; c++ {
			cell := world.Cell(r, c)
			if cell.Row != r || cell.Col != c {
				t.Fatalf("cell (%d, %d) reports (%d, %d)", r, c, cell.Row, cell.Col)
			}
			if cell.Generator != world.Columns[c] {
				t.Errorf("cell (%d, %d) generator %s, column says %s", r, c, cell.Generator, world.Columns[c])
			}
			if want := Difficulty(r, opts.NumLevels); cell.Difficulty != want {
				t.Errorf("cell (%d, %d) difficulty %g, want %g", r, c, cell.Difficulty, want)
			}

			minX, minY := float64(r)*8, float64(c)*8
			for _, v := range world.Surface.Vertices[cell.Range.FirstVertex : cell.Range.FirstVertex+cell.Range.VertexCount] {
				if v.X < minX-1e-9 || v.X > minX+8+1e-9 || v.Y < minY-1e-9 || v.Y > minY+8+1e-9 {
					t.Fatalf("cell (%d, %d) vertex %v outside its footprint", r, c, v)
				}
			}
		}
	}
	if world.Infos[1].Name != world.Columns[1] {
		t.Errorf("column info %q, want %q", world.Infos[1].Name, world.Columns[1])
	}
}

func TestParallelMatchesSequential(t *testing.T) {
	opts := Options{TerrainSize: 8, BorderSize: 2, NumLevels: 3, NumTerrains: 6, Seed: 11, Workers: 1}
	seq, err := newAssembler(nil).Assemble(context.Background(), opts, mixed())
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}
	opts.Workers = 8
	par, err := newAssembler(nil).Assemble(context.Background(), opts, mixed())
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}

	if seq.Surface.VertexCount() != par.Surface.VertexCount() || seq.Surface.TriangleCount() != par.Surface.TriangleCount() {
		t.Fatal("surface sizes differ")
	}
	for i := range seq.Surface.Vertices {
		if seq.Surface.Vertices[i] != par.Surface.Vertices[i] {
			t.Fatalf("vertex %d differs", i)
		}
	}
	for i := range seq.Surface.Triangles {
		if seq.Surface.Triangles[i] != par.Surface.Triangles[i] {
			t.Fatalf("triangle %d differs", i)
		}
	}
}

func TestAssembleErrors(t *testing.T) {
	ctx := context.Background()
	a := newAssembler(nil)

	if _, err := a.Assemble(ctx, Options{TerrainSize: 0, NumLevels: 1, NumTerrains: 1}, flatOnly()); !errors.Is(err, ErrInvalidGrid) {
		t.Errorf("expected ErrInvalidGrid, got %v", err)
	}
	if _, err := a.Assemble(ctx, Options{TerrainSize: 8, NumLevels: 1, NumTerrains: 1}, []Proportion{{Name: "lava", Weight: 1}}); !errors.Is(err, terrain.ErrUnknownGenerator) {
		t.Errorf("expected ErrUnknownGenerator, got %v", err)
	}

	// A 2 m cell cannot hold the default 1 m stairs platform plus a 0.6 m step on each side.
	small := Options{TerrainSize: 2, NumLevels: 2, NumTerrains: 1}
	if _, err := a.Assemble(ctx, small, []Proportion{{Name: terrain.NameStairsUpwards, Weight: 1}}); !errors.Is(err, terrain.ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams, got %v", err)
	}
}

func TestAssembleLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	opts := Options{TerrainSize: 8, BorderSize: 1, NumLevels: 2, NumTerrains: 3}

	if _, err := newAssembler(zap.New(core)).Assemble(context.Background(), opts, flatOnly()); err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	if n := logs.FilterMessage("column generator").Len(); n != 3 {
		t.Errorf("expected 3 column logs, got %d", n)
	}
	summary := logs.FilterMessage("grid assembled").All()
	if len(summary) != 1 {
		t.Fatalf("expected one summary log, got %d", len(summary))
	}
	if got := summary[0].ContextMap()["cells"]; got != int64(6) {
		t.Errorf("summary cells = %v, want 6", got)
	}
}
