package terrain

import (
	"fmt"
	"math/rand"

	"github.com/Faultbox/terragrid/pkg/math"
	"github.com/Faultbox/terragrid/pkg/mesh"
)

// Quad-ring faces shared by walls and annuli: vertices 0..3 are the first
// rectangle, 4..7 the second, both counter-clockwise.
var ringFaces = []mesh.Triangle{
	{0, 1, 5}, {0, 5, 4},
	{1, 2, 6}, {1, 6, 5},
	{2, 3, 7}, {2, 7, 6},
	{3, 0, 4}, {3, 4, 7},
}

// rectCorners returns the four corners of an axis-aligned rectangle at height z,
// counter-clockwise from the (-x, -y) corner.
func rectCorners(center math.Vec2, halfL, halfW, z float64) [4]math.Vec3 {
	return [4]math.Vec3{
		{X: center.X - halfL, Y: center.Y - halfW, Z: z},
		{X: center.X + halfL, Y: center.Y - halfW, Z: z},
		{X: center.X + halfL, Y: center.Y + halfW, Z: z},
		{X: center.X - halfL, Y: center.Y + halfW, Z: z},
	}
}

func ring(first, second [4]math.Vec3) *mesh.Surface {
	vertices := make([]math.Vec3, 0, 8)
	vertices = append(vertices, first[:]...)
	vertices = append(vertices, second[:]...)
	return mesh.New(vertices, append([]mesh.Triangle(nil), ringFaces...))
}

// Plane builds a length x width rectangle at height z, rotated by yaw around its center.
func Plane(center math.Vec2, length, width, z, yaw float64) *mesh.Surface {
	c := rectCorners(center, length/2, width/2, z)
	s := mesh.New(c[:], []mesh.Triangle{{0, 1, 2}, {0, 2, 3}})
	return s.Yaw(yaw, center.X, center.Y)
}

// SquarePlane builds a size x size plane.
func SquarePlane(center math.Vec2, size, z float64) *mesh.Surface {
	return Plane(center, size, size, z, 0)
}

// PlaneWithHole builds a flat square annulus: the outer square minus the inner one.
func PlaneWithHole(center math.Vec2, outerSize, innerSize, z float64) (*mesh.Surface, error) {
	if innerSize <= 0 || innerSize >= outerSize {
		return nil, fmt.Errorf("%w: plane hole %.3f must be in (0, %.3f)", ErrInvalidParams, innerSize, outerSize)
	}
	return RectAnnulus(center, outerSize, outerSize, innerSize, innerSize, z), nil
}

// RectAnnulus builds a flat rectangular ring. Callers guarantee inner < outer.
func RectAnnulus(center math.Vec2, outerL, outerW, innerL, innerW, z float64) *mesh.Surface {
	return ring(
		rectCorners(center, outerL/2, outerW/2, z),
		rectCorners(center, innerL/2, innerW/2, z),
	)
}

// Wall builds the four vertical sides of a rectangle, from baseZ to baseZ+stepHeight.
// stepHeight may be negative, in which case the wall hangs down.
func Wall(center math.Vec2, length, width, baseZ, stepHeight, yaw float64) *mesh.Surface {
	s := ring(
		rectCorners(center, length/2, width/2, baseZ),
		rectCorners(center, length/2, width/2, baseZ+stepHeight),
	)
	return s.Yaw(yaw, center.X, center.Y)
}

// SquareWall builds a size x size wall.
func SquareWall(center math.Vec2, size, baseZ, stepHeight float64) *mesh.Surface {
	return Wall(center, size, size, baseZ, stepHeight, 0)
}

// Block is a plane on top of a wall: a prism with no bottom face.
func Block(center math.Vec2, length, width, baseZ, blockHeight, yaw float64) *mesh.Surface {
	s := mesh.Concat(
		Plane(center, length, width, baseZ+blockHeight, 0),
		Wall(center, length, width, baseZ, blockHeight, 0),
	)
	return s.Yaw(yaw, center.X, center.Y)
}

// SquareBlock builds a size x size block.
func SquareBlock(center math.Vec2, size, baseZ, blockHeight float64) *mesh.Surface {
	return Block(center, size, size, baseZ, blockHeight, 0)
}

// TiltedBlock is a Block whose top is tilted along both horizontal axes.
// Two offsets are drawn in [-noise/2, noise/2]; corners on the same edge move
// together and the opposite edge moves the other way, so no corner leaves
// [top-noise, top+noise]. The walls follow the tilted corners.
func TiltedBlock(center math.Vec2, length, width, baseZ, blockHeight, yaw, noise float64, rng *rand.Rand) *mesh.Surface {
	tiltX := (rng.Float64() - 0.5) * noise
	tiltY := (rng.Float64() - 0.5) * noise

	top := rectCorners(center, length/2, width/2, baseZ+blockHeight)
	signs := [4][2]float64{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for i := range top {
		top[i].Z += signs[i][0]*tiltX + signs[i][1]*tiltY
	}

	lid := mesh.New(append([]math.Vec3(nil), top[:]...), []mesh.Triangle{{0, 1, 2}, {0, 2, 3}})
	sides := ring(rectCorners(center, length/2, width/2, baseZ), top)
	return mesh.Concat(lid, sides).Yaw(yaw, center.X, center.Y)
}

// BlockPattern places side-by-side stacks of blocks described by a digit string
// such as "121": each digit is the number of unit heights in that stack.
// Stacks are unitWidth wide along the local Y axis and length long along X.
func BlockPattern(center math.Vec2, yaw float64, pattern string, length, unitWidth, unitHeight float64) (*mesh.Surface, error) {
	n := len(pattern)
	yStart := -0.5*unitWidth - unitWidth*(float64(n)/2-1)
	parts := make([]*mesh.Surface, 0, n)
	for i, r := range pattern {
		if r < '0' || r > '9' {
			return nil, fmt.Errorf("%w: block pattern %q has non-digit %q", ErrInvalidParams, pattern, r)
		}
		stack := float64(r - '0')
		parts = append(parts, Block(math.Vec2{Y: yStart + unitWidth*float64(i)}, length, unitWidth, 0, unitHeight*stack, 0))
	}
	s := mesh.Concat(parts...)
	s.Transform(math.Translate(center.X, center.Y, 0).Mul(math.RotateZ(yaw)))
	return s, nil
}
