package bsplines

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gobsl/types"
)

// Builder1D computes interpolating spline coefficients on the basis
// interpolation points.
type Builder1D struct {
	B      *BSplines
	Points []float64
	lu     mat.LU
}

func NewBuilder1D(b *BSplines) (bld *Builder1D, err error) {
	bld = &Builder1D{
		B:      b,
		Points: b.InterpolationPoints(),
	}
	M := collocationMatrix(b, bld.Points)
	bld.lu.Factorize(M)
	if cond := bld.lu.Cond(); cond > 1.e12 {
		err = fmt.Errorf("ill conditioned collocation matrix, condition number %g", cond)
		return nil, err
	}
	return
}

// collocationMatrix has M[i][b] = B_b(x_i). At most degree+1 entries per row
// are non-zero so it is assembled in sparse form.
func collocationMatrix(b *BSplines, x []float64) mat.Matrix {
	var (
		n    = b.NBasis()
		vals [MaxDegree + 1]float64
	)
	if len(x) != n {
		panic(fmt.Errorf("need %d interpolation points, have %d", n, len(x)))
	}
	dok := sparse.NewDOK(n, n)
	for i, xi := range x {
		jmin := b.EvalBasis(xi, vals[:])
		for k := 0; k <= b.degree; k++ {
			ib := b.Index(jmin + k)
			// Periodic bases of few cells wrap onto the same coefficient
			dok.Set(i, ib, dok.At(i, ib)+vals[k])
		}
	}
	return dok.ToCSR()
}

// Solve overwrites rhs, whose rows run along the interpolation points, with
// the coefficients; every column is an independent right hand side.
func (bld *Builder1D) Solve(rhs *mat.Dense) {
	if err := bld.lu.SolveTo(rhs, false, mat.DenseCopyOf(rhs)); err != nil {
		panic(err)
	}
}

func (bld *Builder1D) Build(coeffs, values []float64) {
	if len(values) != len(bld.Points) || len(coeffs) != bld.B.NBasis() {
		panic(fmt.Errorf("builder sizes mismatch: %d values, %d coefficients, %d points",
			len(values), len(coeffs), len(bld.Points)))
	}
	copy(coeffs, values)
	bld.Solve(mat.NewDense(len(coeffs), 1, coeffs))
}

// Builder2D is the tensor product of two 1D builders
type Builder2D struct {
	B1, B2 *Builder1D
}

func NewBuilder2D(b1, b2 *BSplines) (bld *Builder2D, err error) {
	bld = &Builder2D{}
	if bld.B1, err = NewBuilder1D(b1); err != nil {
		return nil, err
	}
	if bld.B2, err = NewBuilder1D(b2); err != nil {
		return nil, err
	}
	return
}

// InterpolationGrid is the shape of the values expected by Build
func (bld *Builder2D) InterpolationGrid() (n1, n2 int) {
	return len(bld.B1.Points), len(bld.B2.Points)
}

func (bld *Builder2D) NewCoeffs() *types.Field2D {
	return types.NewField2D(bld.B1.B.NBasis(), bld.B2.B.NBasis())
}

// Build fills coeffs (NBasis1 x NBasis2) from values sampled on the
// interpolation points (n1 x n2).
func (bld *Builder2D) Build(coeffs, values *types.Field2D) {
	var (
		n1, n2 = bld.InterpolationGrid()
	)
	if values.N1 != n1 || values.N2 != n2 {
		panic(fmt.Errorf("values are %dx%d, interpolation grid is %dx%d", values.N1, values.N2, n1, n2))
	}
	if coeffs.N1 != bld.B1.B.NBasis() || coeffs.N2 != bld.B2.B.NBasis() {
		panic(fmt.Errorf("coefficients are %dx%d, basis is %dx%d",
			coeffs.N1, coeffs.N2, bld.B1.B.NBasis(), bld.B2.B.NBasis()))
	}
	// Along the first dimension for every column, then along the second
	C1 := mat.NewDense(n1, n2, append([]float64{}, values.Data...))
	bld.B1.Solve(C1)
	CT := mat.DenseCopyOf(C1.T())
	bld.B2.Solve(CT)
	mat.NewDense(coeffs.N1, coeffs.N2, coeffs.Data).Copy(CT.T())
}
