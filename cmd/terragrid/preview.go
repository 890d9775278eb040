package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/terragrid/internal/bundle"
	"github.com/Faultbox/terragrid/internal/heightmap"
	"github.com/Faultbox/terragrid/internal/logger"
	"github.com/Faultbox/terragrid/internal/terrain"
	"github.com/Faultbox/terragrid/pkg/mesh"
	tmath "github.com/Faultbox/terragrid/pkg/math"
)

func cmdPreview(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("preview", flag.ExitOnError)
	name := fs.String("generator", "", "Generator to preview")
	difficulty := fs.Float64("difficulty", 1, "Difficulty in [0, 1]")
	bundlePath := fs.String("bundle", "", "Render the heightmap of an existing bundle instead")
	writeOBJ := fs.Bool("obj", false, "Also write the cell mesh as OBJ")

	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	if *bundlePath != "" {
		b, err := bundle.ReadFile(*bundlePath)
		if err != nil {
			return err
		}
		path, err := heightmap.NewExporter(cfg.Output.Dir, cfg.Output.Prefix).SavePNG(b.Heightmap)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	}

	if *name == "" {
		return fmt.Errorf("preview needs -generator or -bundle (generators: %v)", terrain.DefaultRegistry().Names())
	}
	g, err := terrain.DefaultRegistry().Lookup(*name)
	if err != nil {
		return err
	}

	ts := cfg.Grid.TerrainSize
	rng := rand.New(rand.NewSource(tmath.CellSeed(cfg.Grid.Seed, 0, 0)))
	s, info, err := g.Generate(ts, *difficulty, &cfg.Generators, rng)
	if err != nil {
		return fmt.Errorf("generating %s: %w", *name, err)
	}
	logger.Info("generated cell",
		zap.String("generator", info.Name),
		zap.Float64("difficulty", *difficulty),
		zap.Int("vertices", s.VertexCount()),
		zap.Int("triangles", s.TriangleCount()))

	hm, err := extract(ctx, s, heightmap.SurfaceRect(s), cfg.HeightmapOptions())
	if err != nil {
		return err
	}

	prefix := fmt.Sprintf("%s_%s", cfg.Output.Prefix, info.Name)
	path, err := heightmap.NewExporter(cfg.Output.Dir, prefix).SavePNG(hm)
	if err != nil {
		return err
	}
	fmt.Println(path)

	if *writeOBJ {
		objPath := filepath.Join(cfg.Output.Dir, prefix+".obj")
		if err := mesh.WriteOBJFile(objPath, s); err != nil {
			return err
		}
		fmt.Println(objPath)
	}
	return nil
}
