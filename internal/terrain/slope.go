package terrain

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/terragrid/pkg/math"
	"github.com/Faultbox/terragrid/pkg/mesh"
)

// Relative positions of the transversal bars along a barred slope side.
var barPositions = []float64{0.25, 0.5, 0.75}

// Slope builds a square pyramid of four smooth ramps around a central platform.
// Two opposing ramps carry transversal bars. A flat collar of EdgeWidth joins
// the ramps to the footprint edge. A zero total height returns Flat.
func Slope(terrainSize float64, p SlopeParams) (*mesh.Surface, error) {
	if p.TotalHeight == 0 {
		return Flat(terrainSize), nil
	}
	if err := checkPositive("edge width", p.EdgeWidth); err != nil {
		return nil, err
	}
	outerSize := terrainSize - 2*p.EdgeWidth
	if err := checkPlatform(p.PlatformSize, outerSize); err != nil {
		return nil, fmt.Errorf("slope: %w", err)
	}

	center := footprintCenter(terrainSize)
	sign := 1.0
	if !p.GoingUp {
		sign = -1
	}
	height := -sign * p.TotalHeight

	collar, err := PlaneWithHole(center, terrainSize, outerSize, 0)
	if err != nil {
		return nil, err
	}

	return mesh.Concat(
		SquarePlane(center, p.PlatformSize, height),
		smoothSlopeSide(center, 0, outerSize, p.PlatformSize, height),
		barredSlopeSide(center, gomath.Pi/2, outerSize, p.PlatformSize, height, p.BarHeight, p.BarWidth),
		smoothSlopeSide(center, gomath.Pi, outerSize, p.PlatformSize, height),
		barredSlopeSide(center, 3*gomath.Pi/2, outerSize, p.PlatformSize, height, p.BarHeight, p.BarWidth),
		collar,
	), nil
}

// smoothSlopeSide builds the +X trapezoid between the outer edge (z=0) and the
// platform edge (z=height), then yaws it into place.
func smoothSlopeSide(center math.Vec2, yaw, outerSize, innerSize, height float64) *mesh.Surface {
	ho, hi := outerSize/2, innerSize/2
	s := mesh.New(
		[]math.Vec3{
			{X: center.X + ho, Y: center.Y - ho, Z: 0},
			{X: center.X + ho, Y: center.Y + ho, Z: 0},
			{X: center.X + hi, Y: center.Y + hi, Z: height},
			{X: center.X + hi, Y: center.Y - hi, Z: height},
		},
		[]mesh.Triangle{{0, 1, 2}, {2, 3, 0}},
	)
	return s.Transform(math.YawAbout(yaw, center.X, center.Y))
}

// bar builds a thin raised loop across the +X trapezoid at relative position alpha.
// Its ends follow the trapezoid's diagonal edges.
func bar(center math.Vec2, alpha, outerSize, innerSize, barHeight, barWidth float64) *mesh.Surface {
	ho, hi := outerSize/2, innerSize/2
	d := hi + alpha*(ho-hi)
	bw := barWidth / 2

	near, far := d-bw, d+bw
	return mesh.New(
		[]math.Vec3{
			{X: center.X + near, Y: center.Y + near, Z: 0},
			{X: center.X + near, Y: center.Y - near, Z: 0},
			{X: center.X + near, Y: center.Y + near, Z: barHeight},
			{X: center.X + near, Y: center.Y - near, Z: barHeight},
			{X: center.X + far, Y: center.Y + far, Z: 0},
			{X: center.X + far, Y: center.Y - far, Z: 0},
			{X: center.X + far, Y: center.Y + far, Z: barHeight},
			{X: center.X + far, Y: center.Y - far, Z: barHeight},
		},
		[]mesh.Triangle{
			{0, 1, 2}, {1, 3, 2},
			{4, 6, 5}, {5, 6, 7},
			{1, 5, 7}, {1, 7, 3},
			{4, 0, 2}, {4, 2, 6},
			{3, 7, 6}, {3, 6, 2},
		},
	)
}

// barredSlopeSide lays a flat trapezoid with bars on it, tilts the whole thing
// about the platform edge onto the slope, then rescales X and Z so the ramp's
// extremal coordinates land exactly on the analytic slope endpoints.
func barredSlopeSide(center math.Vec2, yaw, outerSize, innerSize, height, barHeight, barWidth float64) *mesh.Surface {
	ho, hi := outerSize/2, innerSize/2
	ramp := mesh.New(
		[]math.Vec3{
			{X: center.X + ho, Y: center.Y - ho},
			{X: center.X + ho, Y: center.Y + ho},
			{X: center.X + hi, Y: center.Y + hi},
			{X: center.X + hi, Y: center.Y - hi},
		},
		[]mesh.Triangle{{0, 1, 2}, {2, 3, 0}},
	)
	bars := make([]*mesh.Surface, 0, len(barPositions))
	for _, a := range barPositions {
		bars = append(bars, bar(center, a, outerSize, innerSize, barHeight, barWidth))
	}

	edgeX := center.X + hi
	tilt := math.Translate(0, 0, height).Mul(
		math.RotateAbout(math.Vec3{Y: 1}, gomath.Atan2(height, ho-hi), math.Vec3{X: edgeX, Y: center.Y}),
	)
	ramp.Transform(tilt)
	for _, b := range bars {
		b.Transform(tilt)
	}

	maxX := gomath.Inf(-1)
	extremeZ := gomath.Inf(1)
	if height < 0 {
		extremeZ = gomath.Inf(-1)
	}
	for _, v := range ramp.Vertices {
		maxX = gomath.Max(maxX, v.X-edgeX)
		if height < 0 {
			extremeZ = gomath.Max(extremeZ, v.Z-height)
		} else {
			extremeZ = gomath.Min(extremeZ, v.Z-height)
		}
	}
	kx := (ho - hi) / maxX
	kz := -height / extremeZ

	side := mesh.Concat(append([]*mesh.Surface{ramp}, bars...)...)
	for i, v := range side.Vertices {
		side.Vertices[i] = math.Vec3{
			X: kx*(v.X-edgeX) + edgeX,
			Y: v.Y,
			Z: kz*(v.Z-height) + height,
		}
	}
	return side.Transform(math.YawAbout(yaw, center.X, center.Y))
}
