package multipatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gobsl/grid"
	"github.com/notargets/gobsl/types"
	"github.com/notargets/gobsl/utils"
)

func uniformGrid(t *testing.T, name, dim string, min, max float64, nCells int, periodic bool) *grid.Grid1D {
	g, err := grid.NewUniformGrid(name, dim, min, max, nCells, periodic)
	require.NoError(t, err)
	return g
}

// nonUniformGrid has evenly spaced points but is searched as a general grid
func nonUniformGrid(t *testing.T, name, dim string, min, max float64, nCells int, periodic bool) *grid.Grid1D {
	var (
		g   *grid.Grid1D
		err error
		x   = utils.Linspace(min, max, nCells+1)
	)
	if periodic {
		g, err = grid.NewPeriodicNonUniformGrid(name, dim, x[:nCells], max)
	} else {
		g, err = grid.NewNonUniformGrid(name, dim, x)
	}
	require.NoError(t, err)
	require.False(t, g.Uniform())
	return g
}

func newPatch(t *testing.T, name string, g1, g2 *grid.Grid1D) *Patch {
	p, err := NewPatch(name, g1, g2, nil, nil)
	require.NoError(t, err)
	return p
}

func newInterface(t *testing.T, e1, e2 Edge, agree bool) *Interface {
	iface, err := NewInterface(e1, e2, agree)
	require.NoError(t, err)
	return iface
}

func newTransformation(t *testing.T, iface *Interface, r1, r2 types.IdxRange1D) *EdgeTransformation {
	et, err := NewEdgeTransformation(iface, r1, r2)
	require.NoError(t, err)
	return et
}

func TestEdgeTransformationNonUniform(t *testing.T) {
	var (
		x1 = nonUniformGrid(t, "x1", "x1", 0, 2, 16, false)
		y1 = nonUniformGrid(t, "y1", "y1", 2.5, 7, 10, false)
		x2 = nonUniformGrid(t, "x2", "x2", 1, 3, 8, false)
		y2 = nonUniformGrid(t, "y2", "y2", -4, -3.5, 12, false)
		x3 = nonUniformGrid(t, "x3", "x3", 1, 3, 10, false)
		y3 = nonUniformGrid(t, "y3", "y3", -4, -3.5, 15, false)
		p1 = newPatch(t, "patch1", x1, y1)
		p2 = newPatch(t, "patch2", x2, y2)
		p3 = newPatch(t, "patch3", x3, y3)
		// Patch 3 ranges start past the first grid points
		rx1 = types.NewIdxRange1D(0, 17)
		rx2 = types.NewIdxRange1D(0, 9)
		rx3 = types.NewIdxRange1D(2, 9)
		ry2 = types.NewIdxRange1D(0, 13)
		ry3 = types.NewIdxRange1D(3, 13)
		i12 = newInterface(t, NewEdge(p1, y1, BACK), NewEdge(p2, y2, FRONT), false)
		i13 = newInterface(t, NewEdge(p1, y1, BACK), NewEdge(p3, y3, FRONT), false)
		i31 = newInterface(t, NewEdge(p3, y3, FRONT), NewEdge(p1, y1, BACK), false)
	)
	{ // Index availability
		et12 := newTransformation(t, i12, rx1, rx2)
		assert.False(t, et12.IsMatchAvailable(x1, 9))
		assert.True(t, et12.IsMatchAvailable(x1, 8))
		et13 := newTransformation(t, i13, rx1, rx3)
		assert.False(t, et13.IsMatchAvailable(x1, 9))
		assert.True(t, et13.IsMatchAvailable(x1, 8))
		et31 := newTransformation(t, i31, rx3, rx1)
		assert.True(t, et31.IsMatchAvailable(x1, 8))
	}
	{ // Inverted orientation, then back
		et12 := newTransformation(t, i12, rx1, rx2)
		assert.Equal(t, 2, et12.Transform(x1, 12))
		assert.Equal(t, 12, et12.Transform(x2, 2))
		et13 := newTransformation(t, i13, rx1, rx3)
		assert.Equal(t, 2+2, et13.Transform(x1, 12))
		assert.Equal(t, 12, et13.Transform(x3, 2+2))
		assert.Panics(t, func() { et12.Transform(x1, 9) })
		assert.Panics(t, func() { et12.Transform(y1, 0) })
	}
	{ // Edges along different dimensions
		i := newInterface(t, NewEdge(p1, y1, BACK), NewEdge(p2, x2, FRONT), true)
		et := newTransformation(t, i, rx1, ry2)
		assert.Equal(t, 3, et.Transform(x1, 4))
		i = newInterface(t, NewEdge(p1, y1, BACK), NewEdge(p3, x3, FRONT), true)
		et = newTransformation(t, i, rx1, ry3)
		assert.Equal(t, 3+3, et.Transform(x1, 4))
	}
	{ // Coordinates
		agree := newTransformation(t,
			newInterface(t, NewEdge(p1, y1, BACK), NewEdge(p2, x2, FRONT), true), rx1, ry2)
		reversed := newTransformation(t,
			newInterface(t, NewEdge(p1, y1, BACK), NewEdge(p2, x2, FRONT), false), rx1, ry2)
		assert.InDelta(t, -3.825, agree.Coord(x1, 0.7), 1.e-14)
		assert.InDelta(t, -3.675, reversed.Coord(x1, 0.7), 1.e-14)
		// Reversal swaps the ends
		assert.InDelta(t, -3.5, reversed.Coord(x1, 0), 1.e-14)
		assert.InDelta(t, -4., reversed.Coord(x1, 2), 1.e-14)
		// Round trip
		for _, c := range []float64{0, 0.3, 1.1, 2} {
			assert.InDelta(t, c, reversed.Coord(y2, reversed.Coord(x1, c)), 1.e-14)
		}
	}
	{ // Round trip on every conforming index
		et := newTransformation(t, i12, rx1, rx2)
		for _, idx := range rx1.Indices() {
			if target, ok := et.SearchForMatch(x1, idx); ok {
				assert.Equal(t, idx, et.Transform(x2, target))
			}
		}
	}
	{ // Construction errors
		_, err := NewEdgeTransformation(i12, rx1, types.NewIdxRange1D(3, 9))
		assert.ErrorIs(t, err, ErrInvalidArgument)
		out := newInterface(t, NewEdge(p1, x1, FRONT), OutsideEdge, true)
		_, err = NewEdgeTransformation(out, rx1, rx2)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func testPeriodicTransformation(t *testing.T, theta1, theta2 *grid.Grid1D, front2 int) {
	var (
		r1  = uniformGrid(t, "r1", "r1", 0, 2, 16, false)
		r2  = uniformGrid(t, "r2", "r2", 1, 3, 8, false)
		p1  = newPatch(t, "patch1", r1, theta1)
		p2  = newPatch(t, "patch2", r2, theta2)
		rt1 = types.NewIdxRange1D(0, 8)
		rt2 = types.NewIdxRange1D(front2, 12)
		e1  = NewEdge(p1, r1, BACK)
		e2  = NewEdge(p2, r2, FRONT)
	)
	reversed := newTransformation(t, newInterface(t, e1, e2, false), rt1, rt2)
	agree := newTransformation(t, newInterface(t, e1, e2, true), rt1, rt2)
	// Indices are counted from the period origin and returned inside rt2
	transform := func(et *EdgeTransformation, idx int) int {
		target := et.Transform(theta1, idx)
		require.True(t, rt2.Contains(target), "index %d outside %v", target, rt2)
		return utils.Mod(target, 12)
	}

	assert.False(t, reversed.IsMatchAvailable(theta1, 7))
	assert.True(t, reversed.IsMatchAvailable(theta1, 6))
	assert.Equal(t, 3, transform(reversed, 6))
	assert.Equal(t, 6, reversed.Transform(theta2, 3))
	assert.Equal(t, 6, reversed.Transform(theta2, 15))
	// Periodicity
	assert.Equal(t, 0, transform(agree, 8))
	assert.Equal(t, 0, transform(reversed, 0))
	assert.Equal(t, 3, transform(agree, 2))
	// Both ends of the period land on the period origin
	for _, et := range []*EdgeTransformation{agree, reversed} {
		assert.InDelta(t, -4., et.Coord(theta1, 2.5), 1.e-14)
		assert.InDelta(t, -4., et.Coord(theta1, 7.0), 1.e-14)
		assert.InDelta(t, 2.5, et.Coord(theta2, -4.), 1.e-14)
	}
	assert.InDelta(t, -3.75, agree.Coord(theta1, 4.75), 1.e-14)
}

func TestEdgeTransformationPeriodic(t *testing.T) {
	for _, front2 := range []int{0, 1} {
		{ // Closed form on uniform grids
			testPeriodicTransformation(t,
				uniformGrid(t, "theta1", "theta1", 2.5, 7, 8, true),
				uniformGrid(t, "theta2", "theta2", -4, -3.5, 12, true), front2)
		}
		{ // Bisection on non-uniform grids
			testPeriodicTransformation(t,
				nonUniformGrid(t, "theta1", "theta1", 2.5, 7, 8, true),
				nonUniformGrid(t, "theta2", "theta2", -4, -3.5, 12, true), front2)
		}
	}
}

func TestPatchEdgeInterface(t *testing.T) {
	var (
		x = uniformGrid(t, "x", "x", 0, 1, 4, false)
		y = uniformGrid(t, "y", "y", 0, 1, 4, false)
		z = uniformGrid(t, "z", "x", 0, 1, 4, false)
		p = newPatch(t, "p", x, y)
	)
	_, err := NewPatch("bad", x, z, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Equal(t, y, NewEdge(p, x, FRONT).ParallelGrid())
	assert.Equal(t, BACK, FRONT.Opposite())
	assert.True(t, OutsideEdge.IsOutside())

	_, err = NewInterface(OutsideEdge, OutsideEdge, true)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewInterface(NewEdge(p, z, FRONT), OutsideEdge, true)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = NewInterface(NewEdge(p, x, FRONT), NewEdge(p, x, FRONT), true)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	iface := newInterface(t, NewEdge(p, x, FRONT), NewEdge(p, x, BACK), true)
	other, ok := iface.OtherEdge(NewEdge(p, x, BACK))
	assert.True(t, ok)
	assert.Equal(t, NewEdge(p, x, FRONT), other)
	_, ok = iface.OtherEdge(NewEdge(p, y, BACK))
	assert.False(t, ok)
	assert.True(t, iface.Touches(p))
	assert.False(t, iface.Touches(nil))
}
