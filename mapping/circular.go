package mapping

import (
	"math"

	"github.com/notargets/gobsl/types"
)

// Circular is x = X0 + r cos(theta), y = Y0 + r sin(theta)
type Circular struct {
	X0, Y0 float64
}

func NewCircular(x0, y0 float64) *Circular { return &Circular{X0: x0, Y0: y0} }

func (m *Circular) ToPhysical(c types.Coord2D) types.Coord2D {
	return types.Coord2D{m.X0 + c[0]*math.Cos(c[1]), m.Y0 + c[0]*math.Sin(c[1])}
}

func (m *Circular) ToLogical(xy types.Coord2D) types.Coord2D {
	return FromPseudoCartesian(types.Coord2D{xy[0] - m.X0, xy[1] - m.Y0})
}

func (m *Circular) Jacobian(c types.Coord2D) types.Matrix2x2 {
	var (
		r      = c[0]
		cs, sn = math.Cos(c[1]), math.Sin(c[1])
	)
	return types.Matrix2x2{{cs, -r * sn}, {sn, r * cs}}
}
