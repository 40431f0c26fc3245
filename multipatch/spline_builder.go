package multipatch

import (
	"fmt"

	"github.com/notargets/gobsl/bsplines"
	"github.com/notargets/gobsl/types"
	"github.com/notargets/gobsl/utils"
)

// MultipatchSplineBuilder interpolates a field given per patch: one 2D
// builder per patch, all of them run concurrently. Values and coefficients
// are ordered like Patches.
type MultipatchSplineBuilder struct {
	Patches  []*Patch
	builders []*bsplines.Builder2D
}

func NewMultipatchSplineBuilder(patches []*Patch) (mb *MultipatchSplineBuilder, err error) {
	if len(patches) == 0 {
		err = fmt.Errorf("%w: no patches to build on", ErrInvalidArgument)
		return
	}
	mb = &MultipatchSplineBuilder{
		Patches:  patches,
		builders: make([]*bsplines.Builder2D, len(patches)),
	}
	for i, p := range patches {
		if p.BSplines1 == nil || p.BSplines2 == nil {
			err = fmt.Errorf("%w: patch %s has no B-splines", ErrInvalidArgument, p.Name)
			return nil, err
		}
		if mb.builders[i], err = bsplines.NewBuilder2D(p.BSplines1, p.BSplines2); err != nil {
			return nil, fmt.Errorf("patch %s: %w", p.Name, err)
		}
	}
	return
}

func (mb *MultipatchSplineBuilder) NPatches() int { return len(mb.builders) }

func (mb *MultipatchSplineBuilder) Builder(p int) *bsplines.Builder2D { return mb.builders[p] }

// NewValues is shaped on the interpolation points of each patch
func (mb *MultipatchSplineBuilder) NewValues() (values []*types.Field2D) {
	values = make([]*types.Field2D, len(mb.builders))
	for i, bld := range mb.builders {
		values[i] = types.NewField2D(bld.InterpolationGrid())
	}
	return
}

func (mb *MultipatchSplineBuilder) NewCoeffs() (coeffs []*types.Field2D) {
	coeffs = make([]*types.Field2D, len(mb.builders))
	for i, bld := range mb.builders {
		coeffs[i] = bld.NewCoeffs()
	}
	return
}

// Sample evaluates f at the interpolation points of every patch, in the
// patch's logical frame
func (mb *MultipatchSplineBuilder) Sample(f func(p int, c types.Coord2D) float64) (values []*types.Field2D) {
	values = mb.NewValues()
	utils.ParallelFor(len(mb.builders), func(pMin, pMax int) {
		for p := pMin; p < pMax; p++ {
			bld := mb.builders[p]
			for i, x1 := range bld.B1.Points {
				for j, x2 := range bld.B2.Points {
					values[p].Set(i, j, f(p, types.Coord2D{x1, x2}))
				}
			}
		}
	})
	return
}

// Build fills the coefficients of every patch from its values
func (mb *MultipatchSplineBuilder) Build(coeffs, values []*types.Field2D) {
	if len(coeffs) != len(mb.builders) || len(values) != len(mb.builders) {
		panic(fmt.Errorf("%d coefficient and %d value fields for %d patches",
			len(coeffs), len(values), len(mb.builders)))
	}
	utils.ParallelFor(len(mb.builders), func(pMin, pMax int) {
		for p := pMin; p < pMax; p++ {
			mb.builders[p].Build(coeffs[p], values[p])
		}
	})
}
