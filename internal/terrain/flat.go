package terrain

import "github.com/Faultbox/terragrid/pkg/mesh"

// Flat builds a single ground plane covering the footprint.
func Flat(terrainSize float64) *mesh.Surface {
	return SquarePlane(footprintCenter(terrainSize), terrainSize, 0)
}
