package multipatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gobsl/grid"
	"github.com/notargets/gobsl/types"
)

func TestMatchingIdxSliceUniform(t *testing.T) {
	var (
		x1 = uniformGrid(t, "x1", "x1", 0, 2, 16, false)
		y1 = uniformGrid(t, "y1", "y1", 2.5, 7, 10, false)
		x2 = uniformGrid(t, "x2", "x2", 1, 3, 8, false)
		y2 = uniformGrid(t, "y2", "y2", -4, -3.5, 12, false)
		p1 = newPatch(t, "patch1", x1, y1)
		p2 = newPatch(t, "patch2", x2, y2)
	)
	iface := newInterface(t, NewEdge(p1, y1, FRONT), NewEdge(p2, y2, BACK), true)
	mis, err := NewMatchingIdxSliceFromPatches(iface, p1.IdxRange(), p2.IdxRange())
	require.NoError(t, err)
	s1, s2 := mis.Get(x1), mis.Get(x2)
	assert.Equal(t, []int{0}, s1.Front())
	assert.Equal(t, []int{9}, s1.Extents())
	assert.Equal(t, []int{2}, s1.Strides())
	assert.Equal(t, []int{9}, s2.Extents())
	assert.Equal(t, []int{1}, s2.Strides())
	assert.Equal(t, []int{0, 2, 4, 6, 8, 10, 12, 14, 16}, s1.Indices())
	assert.Equal(t, s1, mis.GetFromPerp(y1))
	assert.Equal(t, s2, mis.GetFromPerp(y2))
	assert.Panics(t, func() { mis.Get(y1) })
	// Every pair of conforming indices maps onto each other
	et, err := NewEdgeTransformation(iface, x1.IdxRange(), x2.IdxRange())
	require.NoError(t, err)
	for k := 0; k < s1.Size(); k++ {
		assert.Equal(t, s2.At(k), et.Transform(x1, s1.At(k)))
	}
	{ // Periodic edges of 8 and 12 cells
		var (
			r1 = uniformGrid(t, "r1", "r1", 0, 1, 4, false)
			t1 = uniformGrid(t, "theta1", "theta1", 0, 1, 8, true)
			r2 = uniformGrid(t, "r2", "r2", 1, 2, 4, false)
			t2 = uniformGrid(t, "theta2", "theta2", 0, 1, 12, true)
			q1 = newPatch(t, "q1", r1, t1)
			q2 = newPatch(t, "q2", r2, t2)
		)
		iface := newInterface(t, NewEdge(q1, r1, BACK), NewEdge(q2, r2, FRONT), true)
		mis, err := NewMatchingIdxSlice(iface, t1.IdxRange(), t2.IdxRange())
		require.NoError(t, err)
		assert.Equal(t, []int{0, 2, 4, 6}, mis.Get(t1).Indices())
		assert.Equal(t, []int{0, 3, 6, 9}, mis.Get(t2).Indices())
	}
	{ // Periodic range not starting at the period origin
		var (
			r1 = uniformGrid(t, "r1", "r1", 0, 1, 4, false)
			t1 = uniformGrid(t, "theta1", "theta1", 0, 1, 8, true)
			r2 = uniformGrid(t, "r2", "r2", 1, 2, 4, false)
			t2 = uniformGrid(t, "theta2", "theta2", 0, 1, 12, true)
			q1 = newPatch(t, "q1", r1, t1)
			q2 = newPatch(t, "q2", r2, t2)
		)
		iface := newInterface(t, NewEdge(q1, r1, BACK), NewEdge(q2, r2, FRONT), true)
		mis, err := NewMatchingIdxSlice(iface, t1.IdxRange(), types.NewIdxRange1D(1, 12))
		require.NoError(t, err)
		assert.Equal(t, []int{0, 2, 4, 6}, mis.Get(t1).Indices())
		// 12 is the period origin seen from a range starting at 1
		assert.Equal(t, []int{3, 6, 9, 12}, mis.Get(t2).Indices())
	}
}

func TestMatchingIdxSliceNonUniform(t *testing.T) {
	var (
		x1 = nonUniformGrid(t, "x1", "x1", 0, 2, 16, false)
		y1 = nonUniformGrid(t, "y1", "y1", 2.5, 7, 11, false)
		x2 = nonUniformGrid(t, "x2", "x2", 1, 3, 10, false)
		y2 = nonUniformGrid(t, "y2", "y2", -4, -3.5, 15, false)
		x3 = nonUniformGrid(t, "x3", "x3", 1, 3, 20, false)
		p1 = newPatch(t, "patch1", x1, y1)
		p2 = newPatch(t, "patch2", x2, y2)
		r1 = types.NewIdxRange2D(types.NewIdxRange1D(0, 17), types.NewIdxRange1D(1, 11))
		r2 = types.NewIdxRange2D(types.NewIdxRange1D(2, 9), types.NewIdxRange1D(3, 13))
		r3 = types.NewIdxRange2D(types.NewIdxRange1D(4, 17), types.NewIdxRange1D(5, 6))
	)
	// The last points of y3 are irregular
	y3, err := grid.NewNonUniformGrid("y3", "y3",
		[]float64{0, .1, .2, .3, .4, .5, .55, .6, .7, .85, 1})
	require.NoError(t, err)
	p3 := newPatch(t, "patch3", x3, y3)

	{ // One grid included in the other
		iface := newInterface(t, NewEdge(p1, y1, FRONT), NewEdge(p2, y2, BACK), true)
		mis, err := NewMatchingIdxSliceFromPatches(iface, r1, r2)
		require.NoError(t, err)
		s1, s2 := mis.Get(x1), mis.Get(x2)
		assert.Equal(t, types.NewIdxRangeSlice1D(0, 9, 2), s1)
		assert.Equal(t, types.NewIdxRangeSlice1D(2, 9, 1), s2)
		for _, idx := range []int{0, 2, 4, 6, 8, 10, 12, 14, 16} {
			assert.True(t, s1.Contains(idx))
		}
		assert.False(t, s1.Contains(3))
		assert.Equal(t, s1, mis.GetFromPerp(y1))

		// Edges listed the other way round
		iface = newInterface(t, NewEdge(p2, y2, BACK), NewEdge(p1, y1, FRONT), true)
		mis, err = NewMatchingIdxSliceFromPatches(iface, r2, r1)
		require.NoError(t, err)
		assert.Equal(t, s1, mis.Get(x1))
		assert.Equal(t, s2, mis.Get(x2))
	}
	{ // Reversed orientations: side 2 conforming indices run backwards
		iface := newInterface(t, NewEdge(p1, y1, BACK), NewEdge(p2, y2, FRONT), false)
		var mis *MatchingIdxSlice
		require.NotPanics(t, func() {
			mis, err = NewMatchingIdxSlice(iface, x1.IdxRange(), x2.IdxRange())
		})
		require.NoError(t, err)
		assert.Equal(t, types.NewIdxRangeSlice1D(0, 3, 8), mis.Get(x1))
		assert.Equal(t, types.NewIdxRangeSlice1D(0, 3, 5), mis.Get(x2))
		et, err := NewEdgeTransformation(iface, x1.IdxRange(), x2.IdxRange())
		require.NoError(t, err)
		assert.Equal(t, 10, et.Transform(x1, 0))
		assert.Equal(t, 5, et.Transform(x1, 8))
		assert.Equal(t, 0, et.Transform(x1, 16))
	}
	{ // Grids sharing some points: 10 and 12 cells
		iface := newInterface(t, NewEdge(p1, x1, BACK), NewEdge(p2, x2, FRONT), true)
		mis, err := NewMatchingIdxSliceFromPatches(iface, r1, r2)
		require.NoError(t, err)
		assert.Equal(t, types.NewIdxRangeSlice1D(1, 3, 5), mis.Get(y1))
		assert.Equal(t, types.NewIdxRangeSlice1D(3, 3, 6), mis.Get(y2))
	}
	{ // Irregular steps between conforming indices
		iface := newInterface(t, NewEdge(p1, x1, BACK), NewEdge(p3, x3, FRONT), true)
		_, err := NewMatchingIdxSliceFromPatches(iface, r1, r3)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
	{ // No transformation across the outside
		iface := newInterface(t, NewEdge(p1, x1, BACK), OutsideEdge, true)
		_, err := NewMatchingIdxSliceFromPatches(iface, r1, r2)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}
