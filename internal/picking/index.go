package picking

import (
	gomath "math"

	"github.com/Faultbox/terragrid/pkg/math"
	"github.com/Faultbox/terragrid/pkg/mesh"
)

// maxBuckets caps the bucket grid of a TriangleIndex.
const maxBuckets = 1 << 22

// TriangleIndex buckets the triangles of a surface by their XY bounding boxes
// so vertical rays only test triangles under them.
type TriangleIndex struct {
	surface  *mesh.Surface
	bounds   AABB
	cellSize float64
	gridW    int
	gridH    int
	cells    [][]int32
}

// NewTriangleIndex builds an index over s. A non-positive cellSize picks one
// from the average triangle footprint.
func NewTriangleIndex(s *mesh.Surface, cellSize float64) *TriangleIndex {
	b := s.Bounds()
	idx := &TriangleIndex{surface: s}
	if s.IsEmpty() || b.IsEmpty() {
		return idx
	}
	idx.bounds = NewAABB(b.Min, b.Max)

	width := gomath.Max(b.Max.X-b.Min.X, 1e-9)
	height := gomath.Max(b.Max.Y-b.Min.Y, 1e-9)
	if cellSize <= 0 {
		cellSize = 2 * gomath.Sqrt(width*height/float64(s.TriangleCount()))
	}
	if floor := gomath.Sqrt(width * height / maxBuckets); cellSize < floor {
		cellSize = floor
	}

	idx.cellSize = cellSize
	idx.gridW = max(1, int(gomath.Ceil(width/cellSize)))
	idx.gridH = max(1, int(gomath.Ceil(height/cellSize)))
	idx.cells = make([][]int32, idx.gridW*idx.gridH)

	for ti := range s.Triangles {
		a, bb, c := s.Corners(ti)
		// Walls project to a line and can never be hit from above.
		if gomath.Abs(bb.XY().Sub(a.XY()).Cross(c.XY().Sub(a.XY()))) < 1e-12 {
			continue
		}

		minCX, minCY := idx.cell(gomath.Min(a.X, gomath.Min(bb.X, c.X)), gomath.Min(a.Y, gomath.Min(bb.Y, c.Y)))
		maxCX, maxCY := idx.cell(gomath.Max(a.X, gomath.Max(bb.X, c.X)), gomath.Max(a.Y, gomath.Max(bb.Y, c.Y)))
		for cy := minCY; cy <= maxCY; cy++ {
			for cx := minCX; cx <= maxCX; cx++ {
				i := cy*idx.gridW + cx
				idx.cells[i] = append(idx.cells[i], int32(ti))
			}
		}
	}
	return idx
}

// cell returns the clamped bucket coordinates of (x, y).
func (idx *TriangleIndex) cell(x, y float64) (int, int) {
	cx := int((x - idx.bounds.Min.X) / idx.cellSize)
	cy := int((y - idx.bounds.Min.Y) / idx.cellSize)
	return min(max(cx, 0), idx.gridW-1), min(max(cy, 0), idx.gridH-1)
}

// Bounds returns the box enclosing the indexed surface.
func (idx *TriangleIndex) Bounds() AABB {
	return idx.bounds
}

// Candidates returns the triangles whose XY bounding boxes may contain (x, y).
// The slice is shared with the index and must not be modified.
func (idx *TriangleIndex) Candidates(x, y float64) []int32 {
	if idx.cells == nil {
		return nil
	}
	// Widen by the intersection tolerance so points on the far edge still resolve.
	if x < idx.bounds.Min.X-intersectEpsilon || x > idx.bounds.Max.X+intersectEpsilon ||
		y < idx.bounds.Min.Y-intersectEpsilon || y > idx.bounds.Max.Y+intersectEpsilon {
		return nil
	}
	cx, cy := idx.cell(x, y)
	return idx.cells[cy*idx.gridW+cx]
}

// Cast returns every intersection of r with the indexed surface, in
// triangle order. Only vertical rays use the bucket grid; others test every triangle.
func (idx *TriangleIndex) Cast(r Ray) []math.Vec3 {
	var hits []math.Vec3
	if r.Direction.X == 0 && r.Direction.Y == 0 {
		for _, ti := range idx.Candidates(r.Origin.X, r.Origin.Y) {
			a, b, c := idx.surface.Corners(int(ti))
			if t, ok := r.IntersectTriangle(a, b, c); ok {
				hits = append(hits, r.At(t))
			}
		}
		return hits
	}
	if _, ok := r.IntersectAABB(idx.bounds); !ok {
		return nil
	}
	for ti := range idx.surface.Triangles {
		a, b, c := idx.surface.Corners(ti)
		if t, ok := r.IntersectTriangle(a, b, c); ok {
			hits = append(hits, r.At(t))
		}
	}
	return hits
}
