package timestepper

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rotation is y' = (-y1, y0), exact solution (cos t, sin t) from (1, 0)
func rotation(deriv, y []float64) {
	deriv[0], deriv[1] = -y[1], y[0]
}

func solveRotation(st StepperType, dt float64) (err float64) {
	var (
		y      = []float64{1, 0}
		s      = NewStepper(st, 2, 2)
		nSteps = int(math.Round(1. / dt))
	)
	for n := 0; n < nSteps; n++ {
		s.Update(y, dt, rotation, nil)
	}
	return math.Max(math.Abs(y[0]-math.Cos(1)), math.Abs(y[1]-math.Sin(1)))
}

func TestStepperOrder(t *testing.T) {
	for st, order := range map[StepperType]float64{
		Euler:         1,
		RK2:           2,
		RK3:           3,
		RK4:           4,
		LSRK4:         4,
		CrankNicolson: 2,
	} {
		var (
			e1 = solveRotation(st, 0.1)
			e2 = solveRotation(st, 0.05)
		)
		assert.InDelta(t, order, math.Log2(e1/e2), 0.3, st.String())
	}
}

func TestCustomUpdate(t *testing.T) {
	{ // The update callback owns the state arithmetic: wrap into [0, 1)
		var (
			y      = []float64{0.9}
			nCalls int
			wrap   = func(y, deriv []float64, dt float64) {
				nCalls++
				y[0] = math.Mod(y[0]+dt*deriv[0], 1)
			}
			constant = func(deriv, y []float64) { deriv[0] = 1 }
		)
		NewStepper(RK4, 1, 1).Update(y, 0.2, constant, wrap)
		assert.InDelta(t, 0.1, y[0], 1.e-14)
		assert.Equal(t, 4, nCalls)
	}
	{ // State and derivative may differ in length
		var (
			y  = []float64{1, 2, 3}
			dy = func(deriv, y []float64) { deriv[0] = y[0] + y[1] + y[2] }
			up = func(y, deriv []float64, dt float64) {
				for i := range y {
					y[i] += dt * deriv[0]
				}
			}
		)
		NewStepper(Euler, 3, 1).Update(y, 0.5, dy, up)
		assert.Equal(t, []float64{4, 5, 6}, y)
	}
}

func TestCrankNicolson(t *testing.T) {
	var (
		s = NewCrankNicolsonStepper(2, 2)
		y = []float64{1, 0}
	)
	s.Update(y, 0.1, rotation, nil)
	assert.True(t, s.Converged)
	assert.True(t, s.Iterations < CNMaxIterations)
	// The trapezoidal rule conserves the norm of a rotation
	assert.InDelta(t, 1., math.Hypot(y[0], y[1]), 1.e-11)
	{ // A stiff right hand side does not converge and stops at the cap
		var (
			stiff = func(deriv, y []float64) { deriv[0] = -100 * y[0] }
			z     = []float64{1}
			cn    = NewCrankNicolsonStepper(1, 1)
		)
		cn.Update(z, 0.1, stiff, nil)
		assert.False(t, cn.Converged)
		assert.Equal(t, CNMaxIterations, cn.Iterations)
	}
}

func TestParseStepperType(t *testing.T) {
	st, err := ParseStepperType(" RK3 ")
	require.NoError(t, err)
	assert.Equal(t, RK3, st)
	st, err = ParseStepperType("CrankNicolson")
	require.NoError(t, err)
	assert.Equal(t, "CrankNicolson", NewStepper(st, 1, 1).Name())
	_, err = ParseStepperType("leapfrog")
	assert.Error(t, err)
	assert.Panics(t, func() { NewStepper(StepperType(42), 1, 1) })
}
