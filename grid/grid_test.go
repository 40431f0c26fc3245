package grid

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gobsl/bsplines"
)

func TestGrid1D(t *testing.T) {
	{ // Uniform, non-periodic
		g, err := NewUniformGrid("x1", "x", 0, 2, 16, false)
		require.NoError(t, err)
		assert.Equal(t, 17, g.Size())
		assert.Equal(t, 16, g.NCells())
		assert.Equal(t, 1.5, g.Coordinate(12))
		assert.Equal(t, 2., g.Coordinate(16))
		assert.True(t, g.Uniform())
		assert.Equal(t, 12, g.Nearest(1.49))
	}
	{ // Uniform, periodic: the end of the period is not a point
		g, err := NewUniformGrid("theta1", "theta", 2.5, 7, 8, true)
		require.NoError(t, err)
		assert.Equal(t, 8, g.Size())
		assert.Equal(t, 8, g.NCells())
		assert.Equal(t, 2.5, g.Coordinate(0))
		assert.InDelta(t, 7., g.Coordinate(8), 1.e-15)
		assert.InDelta(t, 2.5-4.5/8, g.Coordinate(-1), 1.e-15)
		assert.InDelta(t, 3.0, g.Restrict(7.5), 1.e-15)
		assert.Equal(t, 0, g.Nearest(6.99))
	}
	{ // Non-uniform grids
		_, err := NewNonUniformGrid("bad", "x", []float64{0, 1, 1})
		assert.Error(t, err)
		_, err = NewPeriodicNonUniformGrid("bad", "x", []float64{0, 1}, 1)
		assert.Error(t, err)
		g, err := NewPeriodicNonUniformGrid("th", "theta", []float64{0, 1, 3}, 4)
		require.NoError(t, err)
		assert.Equal(t, 5., g.Coordinate(4))
		assert.False(t, g.Uniform())
	}
	{ // Grids built on spline interpolation points
		br, err := bsplines.NewUniformBSplines(3, 0, 1, 4, false)
		require.NoError(t, err)
		bth, err := bsplines.NewUniformBSplines(3, 0, 2*math.Pi, 8, true)
		require.NoError(t, err)
		ctx := NewContext()
		gr, err := ctx.AddSplineGrid("r", "r", br)
		require.NoError(t, err)
		gth, err := ctx.AddSplineGrid("theta", "theta", bth)
		require.NoError(t, err)
		assert.Equal(t, 7, gr.Size())
		assert.Equal(t, 0., gr.Coordinate(0))
		assert.Equal(t, 1., gr.Coordinate(6))
		assert.False(t, gr.Uniform())
		assert.Equal(t, 8, gth.Size())
		assert.True(t, gth.Uniform())
		assert.InDelta(t, 2*math.Pi, gth.Max(), 1.e-15)

		_, err = ctx.AddSplineGrid("r", "r", br)
		assert.Error(t, err)
		ctx.Freeze()
		g, err := NewUniformGrid("x", "x", 0, 1, 2, false)
		require.NoError(t, err)
		assert.Error(t, ctx.AddGrid(g))
		got, err := ctx.Grid("theta")
		require.NoError(t, err)
		assert.Equal(t, gth, got)
		_, err = ctx.Grid("nothing")
		assert.Error(t, err)
		_, err = ctx.BSplines("r")
		assert.NoError(t, err)
		assert.Equal(t, []string{"r", "theta"}, ctx.GridNames())
	}
}
