package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/terragrid/internal/bundle"
	"github.com/Faultbox/terragrid/internal/config"
	"github.com/Faultbox/terragrid/internal/grid"
	"github.com/Faultbox/terragrid/internal/heightmap"
	"github.com/Faultbox/terragrid/internal/logger"
	"github.com/Faultbox/terragrid/internal/terrain"
	"github.com/Faultbox/terragrid/pkg/mesh"
)

// runParams is the params entry of a bundle.
type runParams struct {
	Config         *config.Config   `yaml:"config"`
	Info           []terrain.Info   `yaml:"info"`
	HeightmapScale *heightmap.Scale `yaml:"heightmap_scale,omitempty"`
}

func cmdGenerate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}

	logger.Info("=== terragrid generate ===",
		zap.Int64("seed", cfg.Grid.Seed),
		zap.Int("levels", cfg.Grid.NumLevels),
		zap.Int("terrains", cfg.Grid.NumTerrains))

	assembler := grid.NewAssembler(terrain.DefaultRegistry(), cfg.Generators, logger.Named("grid"))
	opts := cfg.GridOptions()
	world, err := assembler.Assemble(ctx, opts, cfg.Proportions)
	if err != nil {
		return fmt.Errorf("assembling grid: %w", err)
	}

	hm, err := extract(ctx, world.Surface, opts.Rect(), cfg.HeightmapOptions())
	if err != nil {
		return err
	}

	return writeOutputs(cfg, world, hm)
}

// extract samples the heightmap and reports cells no ray reached.
func extract(ctx context.Context, s *mesh.Surface, rect heightmap.Rect, opts heightmap.Options) (*heightmap.Heightmap, error) {
	log := logger.Named("heightmap")
	start := time.Now()

	hm, err := heightmap.Extract(ctx, s, rect, opts)
	if err != nil {
		return nil, fmt.Errorf("extracting heightmap: %w", err)
	}

	log.Info("heightmap extracted",
		zap.Int("width", hm.Width),
		zap.Int("height", hm.Height),
		zap.Duration("elapsed", time.Since(start)))
	if missing := hm.Missing(); missing > 0 {
		log.Warn("heightmap has cells without data",
			zap.Int("missing", missing),
			zap.Int("total", hm.Width*hm.Height))
	}
	return hm, nil
}

func writeOutputs(cfg *config.Config, world *grid.World, hm *heightmap.Heightmap) error {
	out := cfg.Output
	log := logger.Named("output")
	if err := os.MkdirAll(out.Dir, 0755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	exporter := heightmap.NewExporter(out.Dir, out.Prefix)

	params := runParams{Config: cfg, Info: world.Infos}

	configPath := filepath.Join(out.Dir, out.Prefix+"_config.yaml")
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	log.Info("wrote config", zap.String("path", configPath))

	if out.TIFF {
		path, scale, err := exporter.SaveTIFF(hm)
		if err != nil {
			return fmt.Errorf("writing TIFF: %w", err)
		}
		params.HeightmapScale = &scale
		log.Info("wrote heightmap", zap.String("path", path),
			zap.Float64("min", scale.Min), zap.Float64("max", scale.Max))
	}

	if out.Preview {
		path, err := exporter.SavePNG(hm)
		if err != nil {
			return fmt.Errorf("writing preview: %w", err)
		}
		log.Info("wrote preview", zap.String("path", path))
	}

	if out.OBJ {
		path := filepath.Join(out.Dir, out.Prefix+".obj")
		if err := mesh.WriteOBJFile(path, world.Surface); err != nil {
			return fmt.Errorf("writing OBJ: %w", err)
		}
		log.Info("wrote mesh", zap.String("path", path))
	}

	if out.Bundle {
		b := &bundle.Bundle{Surface: world.Surface, Heightmap: hm}
		if err := b.SetParams(params); err != nil {
			return err
		}
		path := filepath.Join(out.Dir, out.Prefix+".tgb")
		if err := bundle.WriteFile(path, b); err != nil {
			return fmt.Errorf("writing bundle: %w", err)
		}
		log.Info("wrote bundle", zap.String("path", path))
	}

	return nil
}
