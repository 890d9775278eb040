// terragrid generates grids of obstacle terrains and their heightmaps.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/Faultbox/terragrid/internal/config"
	"github.com/Faultbox/terragrid/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch command {
	case "generate", "gen":
		err = cmdGenerate(ctx, args)
	case "preview":
		err = cmdPreview(ctx, args)
	case "inspect", "info":
		err = cmdInspect(args)
	case "config":
		err = cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`terragrid - obstacle terrain grid generator

Usage:
  terragrid <command> [options]

Commands:
  generate [flags]                   Build the terrain grid, heightmap and outputs
  preview -generator <name> [flags]  Build one cell and write its heightmap preview
  preview -bundle <file.tgb>         Render the heightmap preview of a bundle
  inspect [-at x,y] <file.tgb>       Show bundle contents
  config [-save] [flags]             Print the effective config, or save it as the user default

Examples:
  terragrid generate -seed 7 -levels 4 -terrains 9 -out ./output
  terragrid generate -config terragrid.yaml -debug
  terragrid preview -generator perlin -difficulty 0.8
  terragrid inspect -at 3.5,12 output/terrains.tgb
  terragrid config -seed 7 -levels 6 -save`)
}

// loadConfig parses the shared config flags and starts logging.
func loadConfig(fs *flag.FlagSet, args []string) (*config.Config, error) {
	flags := config.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := logger.InitWithFileConfig(cfg.Logging.Level, cfg.LogFileConfig(), true); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	logger.Sugar.Debugf("Config: %+v", cfg)
	return cfg, nil
}
