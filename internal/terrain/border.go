package terrain

import (
	"fmt"

	"github.com/Faultbox/terragrid/pkg/math"
	"github.com/Faultbox/terragrid/pkg/mesh"
)

// Border builds the flat ring of width border around the [0, sizeX] x [0, sizeY]
// rectangle. A zero border yields nil.
func Border(sizeX, sizeY, border float64) (*mesh.Surface, error) {
	if border < 0 {
		return nil, fmt.Errorf("%w: negative border %g", ErrInvalidParams, border)
	}
	if sizeX <= 0 || sizeY <= 0 {
		return nil, fmt.Errorf("%w: border around empty rectangle %gx%g", ErrInvalidParams, sizeX, sizeY)
	}
	if border == 0 {
		return nil, nil
	}
	center := math.Vec2{X: sizeX / 2, Y: sizeY / 2}
	return RectAnnulus(center, sizeX+2*border, sizeY+2*border, sizeX, sizeY, 0), nil
}
