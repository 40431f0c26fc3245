package PolarAdvection2D

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gobsl/InputParameters"
	"github.com/notargets/gobsl/advection"
)

func newTestCase() *InputParameters.AdvectionParameters {
	ip := InputParameters.NewAdvectionParameters()
	ip.NR, ip.NTheta = 32, 64
	ip.DT, ip.FinalTime = 0.05, 0.12
	ip.LogEvery = 1
	return ip
}

func TestPolarAdvection(t *testing.T) {
	{ // Rotation on the default czarny case
		log, hook := logtest.NewNullLogger()
		c, err := NewPolarAdvection(newTestCase(), log)
		require.NoError(t, err)
		_, pseudo := c.Domain.(*advection.PseudoCartesianDomain)
		assert.True(t, pseudo)
		assert.True(t, c.Mesh.HasOPoint())
		assert.Equal(t, 0., c.Error())
		maxErr := c.Run()
		assert.Equal(t, 3, c.Steps)
		// The last step is shortened to land on FinalTime
		assert.InDelta(t, 0.12, c.Time, 1.e-14)
		assert.Less(t, maxErr, 2.e-2)
		require.NotEmpty(t, hook.Entries)
		assert.Equal(t, "polar advection initialised", hook.Entries[0].Message)
		// One entry per step after the initial one
		assert.Len(t, hook.Entries, 4)
		last := hook.LastEntry()
		assert.Equal(t, logrus.InfoLevel, last.Level)
		assert.Equal(t, 3, last.Data["step"])
	}
	{ // Circular mapping falls back to the physical domain
		log, hook := logtest.NewNullLogger()
		ip := newTestCase()
		ip.Mapping = "Circular"
		c, err := NewPolarAdvection(ip, log)
		require.NoError(t, err)
		assert.Equal(t, "Physical", c.Domain.Name())
		assert.Equal(t, "circular mapping, advecting in the physical domain", hook.Entries[0].Message)
	}
	{ // Logical frame advection matches the physical one
		for _, normalised := range []bool{false, true} {
			log, _ := logtest.NewNullLogger()
			ip := newTestCase()
			ip.FinalTime = 0.1
			xy, err := NewPolarAdvection(ip, log)
			require.NoError(t, err)
			ip = newTestCase()
			ip.FinalTime = 0.1
			ip.RThetaFrame, ip.NormalisedRTheta = true, normalised
			rth, err := NewPolarAdvection(ip, log)
			require.NoError(t, err)
			xy.Run()
			rth.Run()
			for k := range xy.Field.Data {
				assert.InDelta(t, xy.Field.Data[k], rth.Field.Data[k], 1.e-11)
			}
		}
	}
	{ // Translation on a disk
		log, _ := logtest.NewNullLogger()
		ip := newTestCase()
		ip.Mapping, ip.Domain = "Circular", "Physical"
		ip.Advection, ip.Velocity = "Translation", [2]float64{0.2, -0.1}
		ip.InitialCondition = InputParameters.GaussianParams{CenterX: -0.1, CenterY: 0.1, Sigma: 0.15}
		ip.TimeStepper = "RK2"
		c, err := NewPolarAdvection(ip, log)
		require.NoError(t, err)
		assert.Less(t, c.Run(), 5.e-2)
		// The peak has moved with the flow
		exact := c.Exact(c.Time)
		peak := exact.Data[0]
		for _, v := range exact.Data {
			peak = math.Max(peak, v)
		}
		assert.Greater(t, peak, 0.5)
	}
	{ // Invalid parameters
		ip := newTestCase()
		ip.NR = 0
		_, err := NewPolarAdvection(ip, nil)
		assert.Error(t, err)
	}
}
