package advection

import (
	"github.com/notargets/gobsl/bsplines"
	"github.com/notargets/gobsl/types"
	"github.com/notargets/gobsl/utils"
)

// SplinePolarInterpolator resamples a field given on the mesh at arbitrary
// feet. Beyond the radial bounds the boundary value is extended.
type SplinePolarInterpolator struct {
	Mesh      *PolarMesh
	builder   *bsplines.Builder2D
	evaluator *bsplines.Evaluator2D
	coeffs    *types.Field2D
}

func NewSplinePolarInterpolator(mesh *PolarMesh) (ip *SplinePolarInterpolator, err error) {
	ip = &SplinePolarInterpolator{Mesh: mesh}
	if ip.builder, err = bsplines.NewBuilder2D(mesh.BR, mesh.BTheta); err != nil {
		return nil, err
	}
	if ip.evaluator, err = bsplines.NewEvaluator2D(mesh.BR, mesh.BTheta,
		bsplines.ConstantRule, bsplines.ConstantRule, bsplines.PeriodicRule, bsplines.PeriodicRule); err != nil {
		return nil, err
	}
	ip.coeffs = ip.builder.NewCoeffs()
	return
}

// Interpolate overwrites field with its own spline evaluated at the feet
func (ip *SplinePolarInterpolator) Interpolate(field *types.Field2D, feet *types.VectorField2D) {
	ip.Mesh.checkShape(feet)
	ip.builder.Build(ip.coeffs, field)
	utils.ParallelFor(field.Size(), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			field.Data[k] = ip.evaluator.Eval(feet.GetLinear(k), ip.coeffs)
		}
	})
}

// Coeffs are the spline coefficients of the last interpolated field
func (ip *SplinePolarInterpolator) Coeffs() *types.Field2D { return ip.coeffs }
