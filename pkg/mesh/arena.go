package mesh

import "github.com/Faultbox/terragrid/pkg/math"

// Range is the span a part occupies inside an Arena.
type Range struct {
	FirstVertex   int
	VertexCount   int
	FirstTriangle int
	TriangleCount int
}

// Arena accumulates surfaces into one shared vertex and triangle buffer.
// Every appended part owns exactly the Range returned by Append.
type Arena struct {
	vertices  []math.Vec3
	triangles []Triangle
	parts     []Range
}

// NewArena creates an arena with capacity hints.
func NewArena(vertexHint, triangleHint int) *Arena {
	return &Arena{
		vertices:  make([]math.Vec3, 0, vertexHint),
		triangles: make([]Triangle, 0, triangleHint),
	}
}

// Append copies s into the arena, shifting its indices, and returns its range.
func (a *Arena) Append(s *Surface) Range {
	r := Range{
		FirstVertex:   len(a.vertices),
		VertexCount:   len(s.Vertices),
		FirstTriangle: len(a.triangles),
		TriangleCount: len(s.Triangles),
	}
	a.vertices = append(a.vertices, s.Vertices...)
	for _, t := range s.Triangles {
		a.triangles = append(a.triangles, Triangle{
			t[0] + r.FirstVertex,
			t[1] + r.FirstVertex,
			t[2] + r.FirstVertex,
		})
	}
	a.parts = append(a.parts, r)
	return r
}

// Parts returns the ranges in append order.
func (a *Arena) Parts() []Range {
	return a.parts
}

// Part returns a standalone copy of part i with local indices.
func (a *Arena) Part(i int) *Surface {
	r := a.parts[i]
	out := &Surface{
		Vertices:  append([]math.Vec3(nil), a.vertices[r.FirstVertex:r.FirstVertex+r.VertexCount]...),
		Triangles: make([]Triangle, r.TriangleCount),
	}
	for k, t := range a.triangles[r.FirstTriangle : r.FirstTriangle+r.TriangleCount] {
		out.Triangles[k] = Triangle{t[0] - r.FirstVertex, t[1] - r.FirstVertex, t[2] - r.FirstVertex}
	}
	return out
}

// Surface returns the composite surface. It shares the arena's buffers.
func (a *Arena) Surface() *Surface {
	return &Surface{Vertices: a.vertices, Triangles: a.triangles}
}
