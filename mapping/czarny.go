package mapping

import (
	"fmt"
	"math"

	"github.com/notargets/gobsl/types"
)

// Czarny is the D-shaped mapping of Czarny and Hüysmans with inverse aspect
// ratio Epsilon and ellipticity E:
//
//	x = (1 - sqrt(1 + eps (eps + 2 r cos(theta)))) / eps
//	y = E xi r sin(theta) / (2 - sqrt(1 + eps (eps + 2 r cos(theta))))
//
// with xi = 1/sqrt(1 - eps^2/4).
type Czarny struct {
	Epsilon, E float64
	xi         float64
}

func NewCzarny(epsilon, e float64) (m *Czarny, err error) {
	if !(epsilon > 0 && epsilon < 1) {
		err = fmt.Errorf("czarny mapping: epsilon must be in (0, 1), have %g", epsilon)
		return
	}
	if !(e > 0) {
		err = fmt.Errorf("czarny mapping: ellipticity must be positive, have %g", e)
		return
	}
	m = &Czarny{
		Epsilon: epsilon,
		E:       e,
		xi:      1. / math.Sqrt(1.-epsilon*epsilon*0.25),
	}
	return
}

func (m *Czarny) tmp1(r, th float64) float64 {
	return math.Sqrt(m.Epsilon*(m.Epsilon+2.*r*math.Cos(th)) + 1.)
}

func (m *Czarny) ToPhysical(c types.Coord2D) types.Coord2D {
	var (
		r, th = c[0], c[1]
		tmp1  = m.tmp1(r, th)
	)
	return types.Coord2D{
		(1. - tmp1) / m.Epsilon,
		m.E * m.xi * r * math.Sin(th) / (2. - tmp1),
	}
}

func (m *Czarny) ToLogical(xy types.Coord2D) types.Coord2D {
	var (
		eps  = m.Epsilon
		tmp1 = 1. - eps*xy[0]
		rcos = (tmp1*tmp1 - 1. - eps*eps) / (2. * eps)
		rsin = xy[1] * (2. - tmp1) / (m.E * m.xi)
	)
	return FromPseudoCartesian(types.Coord2D{rcos, rsin})
}

func (m *Czarny) Jacobian(c types.Coord2D) types.Matrix2x2 {
	var (
		r, th  = c[0], c[1]
		cs, sn = math.Cos(th), math.Sin(th)
		eps    = m.Epsilon
		exi    = m.E * m.xi
		tmp1   = m.tmp1(r, th)
		tmp2   = 2. - tmp1
	)
	return types.Matrix2x2{
		{
			-cs / tmp1,
			r * sn / tmp1,
		},
		{
			exi*sn/tmp2 + exi*eps*r*sn*cs/(tmp2*tmp2*tmp1),
			exi * r * (cs/tmp2 - eps*r*sn*sn/(tmp2*tmp2*tmp1)),
		},
	}
}
