package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/Faultbox/terragrid/internal/bundle"
)

func cmdInspect(args []string) error {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	at := fs.String("at", "", "Sample the heightmap at x,y (meters)")
	showParams := fs.Bool("params", false, "Print the params entry")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: terragrid inspect [-at x,y] [-params] <file.tgb>")
	}

	archive, err := bundle.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer archive.Close()

	fmt.Printf("Bundle: %s\n", fs.Arg(0))
	fmt.Printf("Version: %d\n", archive.Version())
	fmt.Println("\nEntries:")
	for _, name := range archive.List() {
		e, err := archive.Stat(name)
		if err != nil {
			return err
		}
		ratio := 0.0
		if e.UncompressedSize > 0 {
			ratio = float64(e.CompressedSize) / float64(e.UncompressedSize) * 100
		}
		fmt.Printf("  %-10s %12d bytes  (%5.1f%% compressed)\n", name, e.UncompressedSize, ratio)
	}

	b, err := bundle.Read(archive)
	if err != nil {
		return err
	}

	fmt.Println("\nSurface:")
	fmt.Printf("  Vertices:  %d\n", b.Surface.VertexCount())
	fmt.Printf("  Triangles: %d\n", b.Surface.TriangleCount())
	bounds := b.Surface.Bounds()
	fmt.Printf("  Bounds:    (%.3f, %.3f, %.3f) - (%.3f, %.3f, %.3f)\n",
		bounds.Min.X, bounds.Min.Y, bounds.Min.Z, bounds.Max.X, bounds.Max.Y, bounds.Max.Z)

	hm := b.Heightmap
	fmt.Println("\nHeightmap:")
	fmt.Printf("  Size:       %d x %d\n", hm.Width, hm.Height)
	fmt.Printf("  Resolution: %g samples/m\n", hm.Resolution)
	fmt.Printf("  Range:      [%g, %g] x [%g, %g]\n", hm.Rect.MinX, hm.Rect.MaxX, hm.Rect.MinY, hm.Rect.MaxY)
	if lo, hi, ok := hm.MinMax(); ok {
		fmt.Printf("  Heights:    %.4f .. %.4f m\n", lo, hi)
	}
	fmt.Printf("  Missing:    %d cells\n", hm.Missing())

	if *at != "" {
		x, y, err := parsePoint(*at)
		if err != nil {
			return err
		}
		if z, ok := hm.Interpolate(x, y); ok {
			fmt.Printf("  At (%g, %g): %.4f m\n", x, y, z)
		} else {
			fmt.Printf("  At (%g, %g): no data\n", x, y)
		}
	}

	if *showParams {
		fmt.Printf("\nParams:\n%s", b.Params)
	}
	return nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (x, y float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("point %q: expected x,y", s)
	}
	if x, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64); err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	if y, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64); err != nil {
		return 0, 0, fmt.Errorf("point %q: %w", s, err)
	}
	return x, y, nil
}
