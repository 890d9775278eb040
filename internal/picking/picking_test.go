package picking

import (
	"context"
	"errors"
	gomath "math"
	"testing"

	"github.com/Faultbox/terragrid/pkg/math"
	"github.com/Faultbox/terragrid/pkg/mesh"
)

func square(z float64) *mesh.Surface {
	return mesh.New(
		[]math.Vec3{{X: 0, Y: 0, Z: z}, {X: 2, Y: 0, Z: z}, {X: 2, Y: 2, Z: z}, {X: 0, Y: 2, Z: z}},
		[]mesh.Triangle{{0, 1, 2}, {0, 2, 3}},
	)
}

func TestIntersectTriangle(t *testing.T) {
	a := math.Vec3{X: 0, Y: 0, Z: 1}
	b := math.Vec3{X: 1, Y: 0, Z: 1}
	c := math.Vec3{X: 0, Y: 1, Z: 1}

	tests := []struct {
		name string
		ray  Ray
		hit  bool
		dist float64
	}{
		{"inside", Down(0.2, 0.2, 5), true, 4},
		{"on edge", Down(0.5, 0.5, 5), true, 4},
		{"on vertex", Down(0, 0, 5), true, 4},
		{"outside", Down(0.8, 0.8, 5), false, 0},
		{"below", Down(0.2, 0.2, 0), false, 0},
		{"parallel", Ray{Origin: math.Vec3{X: -1, Y: 0.2, Z: 1}, Direction: math.Vec3{X: 1}}, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, hit := tt.ray.IntersectTriangle(a, b, c)
			if hit != tt.hit {
				t.Fatalf("hit = %v, want %v", hit, tt.hit)
			}
			if hit && gomath.Abs(dist-tt.dist) > 1e-12 {
				t.Errorf("distance = %f, want %f", dist, tt.dist)
			}
		})
	}
}

func TestIntersectAABB(t *testing.T) {
	box := NewAABB(math.Vec3{X: 1, Y: 1, Z: 1}, math.Vec3{X: -1, Y: -1, Z: -1})

	if d, ok := Down(0, 0, 5).IntersectAABB(box); !ok || d != 4 {
		t.Errorf("from above: %f, %v", d, ok)
	}
	if d, ok := Down(0, 0, 0).IntersectAABB(box); !ok || d != 1 {
		t.Errorf("from inside: %f, %v", d, ok)
	}
	if _, ok := Down(3, 0, 5).IntersectAABB(box); ok {
		t.Error("expected miss beside the box")
	}
	if _, ok := Down(0, 0, -5).IntersectAABB(box); ok {
		t.Error("expected miss below the box")
	}
}

func TestIndexSkipsWalls(t *testing.T) {
	wall := mesh.New(
		[]math.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}},
		[]mesh.Triangle{{0, 1, 2}},
	)
	idx := NewTriangleIndex(mesh.Concat(square(0), wall), 0.5)
	for _, ti := range idx.Candidates(0.5, 0) {
		if ti == 2 {
			t.Fatal("wall triangle was indexed")
		}
	}
}

func TestCastStackedSurfaces(t *testing.T) {
	idx := NewTriangleIndex(mesh.Concat(square(0), square(1.5)), 0)
	hits := idx.Cast(Down(0.7, 1.3, 10))
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	top := gomath.Max(hits[0].Z, hits[1].Z)
	if top != 1.5 {
		t.Errorf("top hit z = %f, want 1.5", top)
	}

	if hits := idx.Cast(Down(3, 3, 10)); len(hits) != 0 {
		t.Errorf("expected no hits outside the surface, got %d", len(hits))
	}
}

func TestCastDownMatchesSequential(t *testing.T) {
	idx := NewTriangleIndex(mesh.Concat(square(0), square(2).Translate(1, 1, 0)), 0.25)
	var points []math.Vec2
	for x := -0.5; x <= 3.5; x += 0.1 {
		for y := -0.5; y <= 3.5; y += 0.1 {
			points = append(points, math.Vec2{X: x, Y: y})
		}
	}

	serial, err := CastDown(context.Background(), idx, points, 10, 1)
	if err != nil {
		t.Fatalf("CastDown: %v", err)
	}
	parallel, err := CastDown(context.Background(), idx, points, 10, 7)
	if err != nil {
		t.Fatalf("CastDown: %v", err)
	}
	if len(serial) != len(parallel) {
		t.Fatalf("hit counts differ: %d vs %d", len(serial), len(parallel))
	}
	for i := range serial {
		if serial[i] != parallel[i] {
			t.Fatalf("hit %d differs: %+v vs %+v", i, serial[i], parallel[i])
		}
	}
	for i := 1; i < len(serial); i++ {
		if serial[i].Ray < serial[i-1].Ray {
			t.Fatal("hits not grouped in query order")
		}
	}
}

func TestCastDownCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	idx := NewTriangleIndex(square(0), 0)
	_, err := CastDown(ctx, idx, []math.Vec2{{X: 1, Y: 1}}, 10, 2)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
