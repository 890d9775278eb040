package heightmap

import (
	"context"
	"fmt"

	"github.com/Faultbox/terragrid/internal/picking"
	tmath "github.com/Faultbox/terragrid/pkg/math"
	"github.com/Faultbox/terragrid/pkg/mesh"
)

// Options controls extraction.
type Options struct {
	Resolution float64 `yaml:"resolution"` // samples per meter
	RayOffset  float64 `yaml:"ray_offset"` // jitter radius in meters
	ZeroBorder bool    `yaml:"zero_border"`
	Clearance  float64 `yaml:"-"` // ray start height above the surface top
	Workers    int     `yaml:"-"`
}

// DefaultOptions returns the reference extraction settings.
func DefaultOptions() Options {
	return Options{
		Resolution: 10,
		RayOffset:  0.01,
		Clearance:  10,
	}
}

// offsets returns the center and its eight neighbours at distance o.
func offsets(o float64) [9]tmath.Vec2 {
	return [9]tmath.Vec2{
		{X: 0, Y: 0},
		{X: o, Y: 0}, {X: -o, Y: 0},
		{X: 0, Y: o}, {X: 0, Y: -o},
		{X: o, Y: o}, {X: -o, Y: -o},
		{X: o, Y: -o}, {X: -o, Y: o},
	}
}

// Extract samples s over rect by casting vertical rays from above the surface.
// Each lattice point is sampled nine times, once at its exact position and once
// per jittered neighbour, and each cell keeps the highest hit that maps back to it.
// Cells never hit hold NoData unless ZeroBorder forces the outer ring to 0.
func Extract(ctx context.Context, s *mesh.Surface, rect Rect, opts Options) (*Heightmap, error) {
	if s == nil || s.IsEmpty() {
		return nil, ErrEmptySurface
	}
	hm, err := New(rect, opts.Resolution)
	if err != nil {
		return nil, err
	}
	// Jittered hits must round back to their own lattice point.
	if opts.RayOffset < 0 || opts.RayOffset >= 0.5/opts.Resolution {
		return nil, fmt.Errorf("%w: %g m at %g samples/m, want [0, %g)",
			ErrInvalidOffset, opts.RayOffset, opts.Resolution, 0.5/opts.Resolution)
	}
	clearance := opts.Clearance
	if clearance <= 0 {
		clearance = DefaultOptions().Clearance
	}

	idx := picking.NewTriangleIndex(s, 0)
	zStart := s.Bounds().Max.Z + clearance

	points := make([]tmath.Vec2, hm.Width*hm.Height)
	for _, off := range offsets(opts.RayOffset) {
		for iy := 0; iy < hm.Height; iy++ {
			for ix := 0; ix < hm.Width; ix++ {
				x, y := hm.Point(ix, iy)
				points[iy*hm.Width+ix] = tmath.Vec2{X: x + off.X, Y: y + off.Y}
			}
		}

		hits, err := picking.CastDown(ctx, idx, points, zStart, opts.Workers)
		if err != nil {
			return nil, fmt.Errorf("casting rays at offset (%g, %g): %w", off.X, off.Y, err)
		}
		for _, h := range hits {
			ix, iy, ok := hm.Nearest(h.Point.X, h.Point.Y)
			if !ok {
				continue
			}
			i := iy*hm.Width + ix
			if IsNoData(hm.Data[i]) || h.Point.Z > hm.Data[i] {
				hm.Data[i] = h.Point.Z
			}
		}
	}

	if opts.ZeroBorder {
		hm.zeroBorder()
	}
	return hm, nil
}

func (hm *Heightmap) zeroBorder() {
	for ix := 0; ix < hm.Width; ix++ {
		hm.Set(ix, 0, 0)
		hm.Set(ix, hm.Height-1, 0)
	}
	for iy := 0; iy < hm.Height; iy++ {
		hm.Set(0, iy, 0)
		hm.Set(hm.Width-1, iy, 0)
	}
}

// SurfaceRect returns the XY rectangle covered by s.
func SurfaceRect(s *mesh.Surface) Rect {
	b := s.Bounds()
	if b.IsEmpty() {
		return Rect{}
	}
	return Rect{MinX: b.Min.X, MinY: b.Min.Y, MaxX: b.Max.X, MaxY: b.Max.Y}
}

