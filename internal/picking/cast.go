package picking

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/terragrid/pkg/math"
)

// Hit is one intersection of a batched ray with the surface.
type Hit struct {
	Ray   int // index into the query points
	Point math.Vec3
}

// CastDown casts one downward ray from zStart at every query point and returns
// all intersections. Rays are split into contiguous chunks cast concurrently
// by up to workers goroutines (GOMAXPROCS when workers <= 0); hits come back
// grouped by ray in query order.
func CastDown(ctx context.Context, idx *TriangleIndex, points []math.Vec2, zStart float64, workers int) ([]Hit, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	chunks := min(workers, len(points))
	if chunks == 0 {
		return nil, nil
	}
	chunkSize := (len(points) + chunks - 1) / chunks
	results := make([][]Hit, chunks)

	g, ctx := errgroup.WithContext(ctx)
	for c := 0; c < chunks; c++ {
		c := c
		lo := c * chunkSize
		hi := min(lo+chunkSize, len(points))
		g.Go(func() error {
			var hits []Hit
			for i := lo; i < hi; i++ {
				if (i-lo)%4096 == 0 {
					if err := ctx.Err(); err != nil {
						return err
					}
				}
				p := points[i]
				for _, h := range idx.Cast(Down(p.X, p.Y, zStart)) {
					hits = append(hits, Hit{Ray: i, Point: h})
				}
			}
			results[c] = hits
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	merged := make([]Hit, 0, total)
	for _, r := range results {
		merged = append(merged, r...)
	}
	return merged, nil
}
