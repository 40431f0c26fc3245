package mapping

import (
	"math"

	"github.com/notargets/gobsl/types"
	"github.com/notargets/gobsl/utils"
)

// Mapping is an invertible map from logical (r, theta) coordinates to
// physical (x, y) coordinates. Theta is 2*Pi periodic and r = 0 is the
// O-point.
type Mapping interface {
	ToPhysical(c types.Coord2D) types.Coord2D
	// ToLogical returns theta in [0, 2*Pi)
	ToLogical(xy types.Coord2D) types.Coord2D
	// Jacobian is [[dx/dr, dx/dtheta], [dy/dr, dy/dtheta]]
	Jacobian(c types.Coord2D) types.Matrix2x2
}

// OPoint is the physical image of r = 0
func OPoint(m Mapping) types.Coord2D {
	return m.ToPhysical(types.Coord2D{0, 0})
}

func Jacobian11(m Mapping, c types.Coord2D) float64 { return m.Jacobian(c)[0][0] }
func Jacobian12(m Mapping, c types.Coord2D) float64 { return m.Jacobian(c)[0][1] }
func Jacobian21(m Mapping, c types.Coord2D) float64 { return m.Jacobian(c)[1][0] }
func Jacobian22(m Mapping, c types.Coord2D) float64 { return m.Jacobian(c)[1][1] }

// InvJacobian is singular at the O-point
func InvJacobian(m Mapping, c types.Coord2D) types.Matrix2x2 {
	return m.Jacobian(c).Inverse()
}

// MetricTensor is J^T J
func MetricTensor(m Mapping, c types.Coord2D) types.Matrix2x2 {
	J := m.Jacobian(c)
	return J.Transpose().Mul(J)
}

func InverseMetricTensor(m Mapping, c types.Coord2D) types.Matrix2x2 {
	return MetricTensor(m, c).Inverse()
}

// PseudoCartesianCenterMatrix is the limit at r = 0 of J_pc J^-1, where
// J_pc is the jacobian of (r, theta) -> (r cos(theta), r sin(theta)). Near
// the O-point a smooth mapping is linear in (r cos, r sin), with a matrix L
// read from dx/dr and dy/dr at theta = 0 and Pi/2; the limit is L^-1.
func PseudoCartesianCenterMatrix(m Mapping) types.Matrix2x2 {
	var (
		c0  = types.Coord2D{0, 0}
		c90 = types.Coord2D{0, 0.5 * math.Pi}
		L   = types.Matrix2x2{
			{Jacobian11(m, c0), Jacobian11(m, c90)},
			{Jacobian21(m, c0), Jacobian21(m, c90)},
		}
	)
	return L.Inverse()
}

// PseudoCartesianJacobian is J_pc J^-1 at c, the map from physical vector
// components to pseudo-Cartesian ones. Below radius epsilon it blends
// linearly between the O-point limit and its value at r = epsilon.
func PseudoCartesianJacobian(m Mapping, c types.Coord2D, epsilon float64) types.Matrix2x2 {
	r := c[0]
	switch {
	case r < utils.OPOINTTOL:
		return PseudoCartesianCenterMatrix(m)
	case r < epsilon:
		var (
			J0   = PseudoCartesianCenterMatrix(m)
			Jeps = pseudoCartesianJacobian(m, types.Coord2D{epsilon, c[1]})
			w    = r / epsilon
		)
		return J0.Scale(1 - w).Add(Jeps.Scale(w))
	}
	return pseudoCartesianJacobian(m, c)
}

func pseudoCartesianJacobian(m Mapping, c types.Coord2D) types.Matrix2x2 {
	var (
		r, th  = c[0], c[1]
		cs, sn = math.Cos(th), math.Sin(th)
		Jpc    = types.Matrix2x2{{cs, -r * sn}, {sn, r * cs}}
	)
	return Jpc.Mul(InvJacobian(m, c))
}

// ToPseudoCartesian is the auxiliary circular map centred on the origin
func ToPseudoCartesian(c types.Coord2D) types.Coord2D {
	return types.Coord2D{c[0] * math.Cos(c[1]), c[0] * math.Sin(c[1])}
}

func FromPseudoCartesian(xy types.Coord2D) types.Coord2D {
	return types.Coord2D{math.Hypot(xy[0], xy[1]), wrapTheta(math.Atan2(xy[1], xy[0]))}
}

func wrapTheta(th float64) float64 {
	return utils.WrapPeriodic(th, 0, 2*math.Pi)
}
