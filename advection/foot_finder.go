package advection

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/notargets/gobsl/bsplines"
	"github.com/notargets/gobsl/timestepper"
	"github.com/notargets/gobsl/types"
	"github.com/notargets/gobsl/utils"
)

// OPointTolerance bounds the spread of the feet on the O-point ring
const OPointTolerance = 1.e-15

// SplineFootFinder integrates the characteristics backward over one time
// step. The advection field is interpolated by splines on the mesh so it
// can be sampled at the feet of every stage.
type SplineFootFinder struct {
	Stepper   timestepper.Stepper
	Domain    AdvectionDomain
	Log       logrus.FieldLogger
	builder   *bsplines.Builder2D
	evaluator *bsplines.Evaluator2D
	advDomain *types.VectorField2D
	coeffs    [2]*types.Field2D
}

// NewSplineFootFinder takes a builder on the mesh bases and an evaluator of
// the advection field at arbitrary feet. The stepper state is the feet
// VectorField2D data.
func NewSplineFootFinder(stepper timestepper.Stepper, domain AdvectionDomain,
	builder *bsplines.Builder2D, evaluator *bsplines.Evaluator2D) (ff *SplineFootFinder, err error) {
	mesh := domain.Mesh()
	if builder.B1.B != mesh.BR || builder.B2.B != mesh.BTheta {
		err = fmt.Errorf("the advection field builder is not on the bases of the mesh")
		return
	}
	if n1, n2 := builder.InterpolationGrid(); n1 != mesh.NR() || n2 != mesh.NTheta() {
		err = fmt.Errorf("builder interpolates on %dx%d points, mesh has %dx%d", n1, n2, mesh.NR(), mesh.NTheta())
		return
	}
	ff = &SplineFootFinder{
		Stepper:   stepper,
		Domain:    domain,
		Log:       logrus.StandardLogger(),
		builder:   builder,
		evaluator: evaluator,
		advDomain: mesh.NewVectorField(),
		coeffs:    [2]*types.Field2D{builder.NewCoeffs(), builder.NewCoeffs()},
	}
	return
}

// NewDefaultSplineFootFinder evaluates the advection field with constant
// extrapolation in r
func NewDefaultSplineFootFinder(st timestepper.StepperType, domain AdvectionDomain) (ff *SplineFootFinder, err error) {
	var (
		mesh      = domain.Mesh()
		builder   *bsplines.Builder2D
		evaluator *bsplines.Evaluator2D
	)
	if builder, err = bsplines.NewBuilder2D(mesh.BR, mesh.BTheta); err != nil {
		return
	}
	if evaluator, err = bsplines.NewEvaluator2D(mesh.BR, mesh.BTheta,
		bsplines.ConstantRule, bsplines.ConstantRule, bsplines.PeriodicRule, bsplines.PeriodicRule); err != nil {
		return
	}
	n := 2 * mesh.Size()
	return NewSplineFootFinder(timestepper.NewStepper(st, n, n), domain, builder, evaluator)
}

// FindFeet replaces feet, which usually start on the mesh points, by the
// feet of the characteristics after dt under the physical advection field
// advXY sampled on the mesh.
func (ff *SplineFootFinder) FindFeet(feet, advXY *types.VectorField2D, dt float64) {
	var (
		mesh = ff.Domain.Mesh()
	)
	mesh.checkShape(feet)
	ff.Domain.AdvectionFieldInDomain(ff.advDomain, advXY)
	for d := 0; d < 2; d++ {
		ff.builder.Build(ff.coeffs[d], ff.advDomain.Component(d))
	}

	dy := func(deriv, y []float64) {
		var (
			at  = types.NewVectorField2DFromData(mesh.NR(), mesh.NTheta(), y)
			out = types.NewVectorField2DFromData(mesh.NR(), mesh.NTheta(), deriv)
		)
		utils.ParallelFor(at.Size(), func(kMin, kMax int) {
			for k := kMin; k < kMax; k++ {
				c := at.GetLinear(k)
				out.SetLinear(k, types.Coord2D{
					ff.evaluator.Eval(c, ff.coeffs[0]),
					ff.evaluator.Eval(c, ff.coeffs[1]),
				})
			}
		})
	}
	update := func(y, deriv []float64, dt float64) {
		var (
			at  = types.NewVectorField2DFromData(mesh.NR(), mesh.NTheta(), y)
			adv = types.NewVectorField2DFromData(mesh.NR(), mesh.NTheta(), deriv)
		)
		ff.Domain.AdvectFeet(at, adv, dt)
		ff.UnifyOPoint(at)
		ff.CheckUnified(at)
	}

	ff.Stepper.Update(feet.Data, dt, dy, update)
	ff.UnifyOPoint(feet)
	ff.CheckUnified(feet)
}

// UnifyOPoint copies the first foot of the O-point ring onto the whole
// ring. Meshes not starting at r = 0 are left alone.
func (ff *SplineFootFinder) UnifyOPoint(feet *types.VectorField2D) {
	mesh := ff.Domain.Mesh()
	if !mesh.HasOPoint() {
		return
	}
	c0 := feet.Get(0, 0)
	for j := 1; j < mesh.NTheta(); j++ {
		feet.Set(0, j, c0)
	}
}

// CheckUnified logs every foot of the O-point ring away from the first one,
// then panics if there was any.
func (ff *SplineFootFinder) CheckUnified(feet *types.VectorField2D) {
	mesh := ff.Domain.Mesh()
	if !mesh.HasOPoint() {
		return
	}
	var (
		c0     = feet.Get(0, 0)
		spread float64
	)
	for j := 1; j < mesh.NTheta(); j++ {
		if d := feet.Get(0, j).Sub(c0).NormInf(); d > OPointTolerance {
			ff.Log.WithFields(logrus.Fields{
				"theta_index": j,
				"foot":        feet.Get(0, j),
				"reference":   c0,
			}).Warn("discontinuous feet at the O-point")
			spread = math.Max(spread, d)
		}
	}
	if spread > 0 {
		panic(fmt.Errorf("feet at the O-point differ by up to %g", spread))
	}
}
