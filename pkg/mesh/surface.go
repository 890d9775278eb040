// Package mesh holds triangle surfaces and the vertex arena used to assemble them.
package mesh

import (
	gomath "math"

	"github.com/Faultbox/terragrid/pkg/math"
)

// Triangle is a triple of vertex indices into the owning Surface.
type Triangle [3]int

// Surface is an indexed triangle soup. It is not required to be manifold or
// watertight, and coincident vertices are never merged.
type Surface struct {
	Vertices  []math.Vec3
	Triangles []Triangle
}

// New wraps vertices and triangles into a Surface.
func New(vertices []math.Vec3, triangles []Triangle) *Surface {
	return &Surface{Vertices: vertices, Triangles: triangles}
}

// VertexCount returns the number of vertices.
func (s *Surface) VertexCount() int {
	return len(s.Vertices)
}

// TriangleCount returns the number of triangles.
func (s *Surface) TriangleCount() int {
	return len(s.Triangles)
}

// IsEmpty returns true if the surface has no geometry.
func (s *Surface) IsEmpty() bool {
	return s == nil || len(s.Triangles) == 0
}

// Corners returns the three vertices of triangle i.
func (s *Surface) Corners(i int) (a, b, c math.Vec3) {
	t := s.Triangles[i]
	return s.Vertices[t[0]], s.Vertices[t[1]], s.Vertices[t[2]]
}

// Transform applies m to every vertex in place and returns s for chaining.
// Topology is untouched.
func (s *Surface) Transform(m math.Mat4) *Surface {
	for i, v := range s.Vertices {
		s.Vertices[i] = m.TransformPoint(v)
	}
	return s
}

// Translate shifts every vertex in place and returns s.
func (s *Surface) Translate(dx, dy, dz float64) *Surface {
	for i := range s.Vertices {
		s.Vertices[i].X += dx
		s.Vertices[i].Y += dy
		s.Vertices[i].Z += dz
	}
	return s
}

// Yaw rotates the surface in place around the vertical axis through (cx, cy).
// A zero angle is a no-op.
func (s *Surface) Yaw(angle, cx, cy float64) *Surface {
	if angle == 0 {
		return s
	}
	return s.Transform(math.YawAbout(angle, cx, cy))
}

// Bounds returns the axis-aligned bounding box of all vertices.
func (s *Surface) Bounds() Bounds {
	b := EmptyBounds()
	for _, v := range s.Vertices {
		b.Extend(v)
	}
	return b
}

// Concat returns the index-shifted union of parts. Nil parts are skipped.
func Concat(parts ...*Surface) *Surface {
	nv, nt := 0, 0
	for _, p := range parts {
		if p != nil {
			nv += len(p.Vertices)
			nt += len(p.Triangles)
		}
	}
	a := NewArena(nv, nt)
	for _, p := range parts {
		if p != nil {
			a.Append(p)
		}
	}
	return a.Surface()
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// EmptyBounds returns inverted bounds that any Extend call will overwrite.
func EmptyBounds() Bounds {
	inf := gomath.Inf(1)
	return Bounds{
		Min: math.Vec3{X: inf, Y: inf, Z: inf},
		Max: math.Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether no point has been added.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X
}

// Extend grows the box to contain p.
func (b *Bounds) Extend(p math.Vec3) {
	b.Min.X = gomath.Min(b.Min.X, p.X)
	b.Min.Y = gomath.Min(b.Min.Y, p.Y)
	b.Min.Z = gomath.Min(b.Min.Z, p.Z)
	b.Max.X = gomath.Max(b.Max.X, p.X)
	b.Max.Y = gomath.Max(b.Max.Y, p.Y)
	b.Max.Z = gomath.Max(b.Max.Z, p.Z)
}

// MaxAbsZ returns the largest absolute elevation in the box.
func (b Bounds) MaxAbsZ() float64 {
	if b.IsEmpty() {
		return 0
	}
	return gomath.Max(gomath.Abs(b.Min.Z), gomath.Abs(b.Max.Z))
}
