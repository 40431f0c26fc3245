package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gobsl/timestepper"
)

func TestParse(t *testing.T) {
	fileInput := []byte(`
Title: Shifted Gaussian
Mapping: Czarny
Epsilon: 0.2
Domain: Physical
TimeStepper: CrankNicolson
NR: 16
NTheta: 40
DT: 0.1
FinalTime: 0.25
Advection: Translation # Can be Rotation
Velocity: [0.5, -0.25]
InitialCondition:
   CenterX: 0.1
   CenterY: 0.2
   Sigma: 0.05
`)
	ip := NewAdvectionParameters()
	require.NoError(t, ip.Parse(fileInput))
	assert.Equal(t, "Shifted Gaussian", ip.Title)
	assert.Equal(t, 0.2, ip.Epsilon)
	// Defaults survive when the file does not set them
	assert.Equal(t, 1.4, ip.Elongation)
	assert.Equal(t, 3, ip.SplineDegree)
	assert.Equal(t, 16, ip.NR)
	assert.Equal(t, [2]float64{0.5, -0.25}, ip.Velocity)
	assert.Equal(t, GaussianParams{CenterX: 0.1, CenterY: 0.2, Sigma: 0.05}, ip.InitialCondition)
	st, err := ip.StepperType()
	require.NoError(t, err)
	assert.Equal(t, timestepper.CrankNicolson, st)
	assert.Equal(t, 3, ip.Steps())
	ip.Print()

	{ // Invalid inputs
		for _, bad := range []string{
			"Mapping: Elliptic",
			"Domain: Logical",
			"TimeStepper: RK5",
			"Advection: Shear",
			"NR: 0",
			"RMax: -1",
			"DT: 0",
			"InitialCondition: {Sigma: 0}",
			"NR: [1, 2]",
		} {
			assert.Error(t, NewAdvectionParameters().Parse([]byte(bad)), bad)
		}
	}
	{ // Both coordinates of the centre are read from the file
		ip := NewAdvectionParameters()
		require.NoError(t, ip.Parse([]byte("InitialCondition: {CenterX: -0.4, CenterY: 0.35, Sigma: 0.1}")))
		assert.Equal(t, -0.4, ip.InitialCondition.CenterX)
		assert.Equal(t, 0.35, ip.InitialCondition.CenterY)
	}
	{ // Whole number of steps
		ip := NewAdvectionParameters()
		ip.DT, ip.FinalTime = 0.1, 1
		assert.Equal(t, 10, ip.Steps())
	}
}
