package mapping

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gobsl/types"
)

func testMappings(t *testing.T) map[string]Mapping {
	cz, err := NewCzarny(0.3, 1.4)
	require.NoError(t, err)
	return map[string]Mapping{
		"circular": NewCircular(0.5, -0.25),
		"czarny":   cz,
	}
}

func TestMappingInverse(t *testing.T) {
	for name, m := range testMappings(t) {
		for _, r := range []float64{0.1, 0.5, 0.99} {
			for k := 0; k < 12; k++ {
				th := 2 * math.Pi * float64(k) / 12
				c := m.ToLogical(m.ToPhysical(types.Coord2D{r, th}))
				assert.InDelta(t, r, c[0], 1.e-13, name)
				// theta = 0 may come back as 2*Pi - tiny
				dth := math.Remainder(c[1]-th, 2*math.Pi)
				assert.InDelta(t, 0, dth, 1.e-12, name)
				assert.True(t, c[1] >= 0 && c[1] < 2*math.Pi, name)
			}
		}
	}
	_, err := NewCzarny(1.2, 1.4)
	assert.Error(t, err)
	_, err = NewCzarny(0.3, 0)
	assert.Error(t, err)
}

func TestMappingJacobian(t *testing.T) {
	var (
		h = 1.e-6
	)
	for name, m := range testMappings(t) {
		for _, c := range []types.Coord2D{{0.3, 0.2}, {0.7, 2.}, {0.9, 4.5}} {
			var (
				J   = m.Jacobian(c)
				xrp = m.ToPhysical(types.Coord2D{c[0] + h, c[1]})
				xrm = m.ToPhysical(types.Coord2D{c[0] - h, c[1]})
				xtp = m.ToPhysical(types.Coord2D{c[0], c[1] + h})
				xtm = m.ToPhysical(types.Coord2D{c[0], c[1] - h})
			)
			for d := 0; d < 2; d++ {
				assert.InDelta(t, (xrp[d]-xrm[d])/(2*h), J[d][0], 1.e-8, name)
				assert.InDelta(t, (xtp[d]-xtm[d])/(2*h), J[d][1], 1.e-8, name)
			}
			I := InvJacobian(m, c).Mul(J)
			assert.InDelta(t, 1., I[0][0], 1.e-12)
			assert.InDelta(t, 0., I[0][1], 1.e-12)
			G := MetricTensor(m, c)
			assert.InDelta(t, G[0][1], G[1][0], 1.e-14)
			assert.InDelta(t, J[0][0]*J[0][0]+J[1][0]*J[1][0], G[0][0], 1.e-14)
			Gi := InverseMetricTensor(m, c).Mul(G)
			assert.InDelta(t, 1., Gi[1][1], 1.e-12)
		}
	}
}

func TestPseudoCartesian(t *testing.T) {
	{ // The circular mapping centred on the origin is the pseudo-Cartesian map
		m := NewCircular(0, 0)
		var (
			J0 = PseudoCartesianCenterMatrix(m)
			I  = types.Identity2x2()
		)
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				assert.InDelta(t, I[i][j], J0[i][j], 1.e-15)
			}
		}
		J := PseudoCartesianJacobian(m, types.Coord2D{0.4, 1.1}, 0)
		assert.InDelta(t, 1., J[0][0], 1.e-14)
		assert.InDelta(t, 0., J[1][0], 1.e-14)
		xy := ToPseudoCartesian(types.Coord2D{0.4, 1.1})
		assert.Equal(t, m.ToPhysical(types.Coord2D{0.4, 1.1}), xy)
	}
	{ // Czarny: J_pc J^-1 tends to the centre matrix at the O-point
		m := testMappings(t)["czarny"]
		J0 := PseudoCartesianCenterMatrix(m)
		for _, th := range []float64{0, 1., 3., 5.} {
			J := PseudoCartesianJacobian(m, types.Coord2D{1.e-7, th}, 0)
			for i := 0; i < 2; i++ {
				for j := 0; j < 2; j++ {
					assert.InDelta(t, J0[i][j], J[i][j], 1.e-5)
				}
			}
			assert.Equal(t, J0, PseudoCartesianJacobian(m, types.Coord2D{0, th}, 0.1))
		}
		// Blended values move linearly towards the value at epsilon
		var (
			eps  = 0.1
			Jeps = PseudoCartesianJacobian(m, types.Coord2D{eps, 2.}, eps)
			Jmid = PseudoCartesianJacobian(m, types.Coord2D{0.5 * eps, 2.}, eps)
		)
		assert.InDelta(t, 0.5*(J0[0][1]+Jeps[0][1]), Jmid[0][1], 1.e-14)
		assert.InDelta(t, OPoint(m)[0], (1-math.Sqrt(1+0.09))/0.3, 1.e-15)
	}
}
