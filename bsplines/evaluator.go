package bsplines

import (
	"fmt"

	"github.com/notargets/gobsl/types"
	"github.com/notargets/gobsl/utils"
)

// ExtrapolationRule says what a spline is worth beyond one end of a
// non-periodic dimension.
type ExtrapolationRule uint8

const (
	// PeriodicRule is the only rule allowed on a periodic dimension
	PeriodicRule ExtrapolationRule = iota
	// ConstantRule extends the boundary value
	ConstantRule
	// NullRule evaluates to zero
	NullRule
)

func (r ExtrapolationRule) String() string {
	switch r {
	case PeriodicRule:
		return "Periodic"
	case ConstantRule:
		return "Constant"
	case NullRule:
		return "Null"
	}
	return fmt.Sprintf("ExtrapolationRule(%d)", uint8(r))
}

// EvalKind selects the value or a partial derivative
type EvalKind uint8

const (
	Value EvalKind = iota
	DerivDim1
	DerivDim2
	Deriv1And2
)

type Evaluator2D struct {
	B1, B2 *BSplines
	// rules[dim][0] applies below the minimum, rules[dim][1] above the maximum
	rules [2][2]ExtrapolationRule
}

func NewEvaluator2D(b1, b2 *BSplines, lower1, upper1, lower2, upper2 ExtrapolationRule) (e *Evaluator2D, err error) {
	e = &Evaluator2D{
		B1:    b1,
		B2:    b2,
		rules: [2][2]ExtrapolationRule{{lower1, upper1}, {lower2, upper2}},
	}
	for d, b := range []*BSplines{b1, b2} {
		for _, r := range e.rules[d] {
			if b.Periodic() != (r == PeriodicRule) {
				err = fmt.Errorf("dimension %d: rule %s does not fit a basis with periodic = %v",
					d+1, r, b.Periodic())
				return nil, err
			}
		}
	}
	return
}

// restrict applies the boundary rules; ok is false when the spline (or its
// derivative along dim) vanishes at x.
func (e *Evaluator2D) restrict(dim int, b *BSplines, x float64, deriv bool) (xr float64, ok bool) {
	if b.Periodic() {
		return x, true
	}
	var (
		side = -1
	)
	switch {
	case x < b.Min():
		side = 0
	case x > b.Max():
		side = 1
	}
	if side < 0 {
		return x, true
	}
	switch e.rules[dim][side] {
	case ConstantRule:
		if deriv {
			return x, false
		}
		return b.restrict(x), true
	}
	return x, false
}

// Evaluate is the per-point kernel behind every evaluation method
func (e *Evaluator2D) Evaluate(c types.Coord2D, coeffs *types.Field2D, kind EvalKind) (val float64) {
	var (
		d1       = kind == DerivDim1 || kind == Deriv1And2
		d2       = kind == DerivDim2 || kind == Deriv1And2
		v1, v2   [MaxDegree + 1]float64
		j1, j2   int
		x1, x2   float64
		ok1, ok2 bool
		p1, p2   = e.B1.degree, e.B2.degree
	)
	if x1, ok1 = e.restrict(0, e.B1, c[0], d1); !ok1 {
		return 0
	}
	if x2, ok2 = e.restrict(1, e.B2, c[1], d2); !ok2 {
		return 0
	}
	if d1 {
		j1 = e.B1.EvalDeriv(x1, v1[:])
	} else {
		j1 = e.B1.EvalBasis(x1, v1[:])
	}
	if d2 {
		j2 = e.B2.EvalDeriv(x2, v2[:])
	} else {
		j2 = e.B2.EvalBasis(x2, v2[:])
	}
	for k1 := 0; k1 <= p1; k1++ {
		var (
			i1  = e.B1.Index(j1 + k1)
			sum float64
		)
		for k2 := 0; k2 <= p2; k2++ {
			sum += coeffs.At(i1, e.B2.Index(j2+k2)) * v2[k2]
		}
		val += sum * v1[k1]
	}
	return
}

func (e *Evaluator2D) Eval(c types.Coord2D, coeffs *types.Field2D) float64 {
	return e.Evaluate(c, coeffs, Value)
}

func (e *Evaluator2D) Deriv1(c types.Coord2D, coeffs *types.Field2D) float64 {
	return e.Evaluate(c, coeffs, DerivDim1)
}

func (e *Evaluator2D) Deriv2(c types.Coord2D, coeffs *types.Field2D) float64 {
	return e.Evaluate(c, coeffs, DerivDim2)
}

func (e *Evaluator2D) Deriv12(c types.Coord2D, coeffs *types.Field2D) float64 {
	return e.Evaluate(c, coeffs, Deriv1And2)
}

// EvaluateBatch evaluates at every coordinate in parallel
func (e *Evaluator2D) EvaluateBatch(out []float64, coords []types.Coord2D, coeffs *types.Field2D, kind EvalKind) {
	if len(out) != len(coords) {
		panic(fmt.Errorf("%d outputs for %d coordinates", len(out), len(coords)))
	}
	utils.ParallelFor(len(coords), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			out[k] = e.Evaluate(coords[k], coeffs, kind)
		}
	})
}

// Integrate is the integral of the spline over the whole basis domain
func (e *Evaluator2D) Integrate(coeffs *types.Field2D) (integral float64) {
	var (
		w1, w2 = e.B1.Integrals(), e.B2.Integrals()
	)
	for i := range w1 {
		var sum float64
		for j := range w2 {
			sum += coeffs.At(i, j) * w2[j]
		}
		integral += sum * w1[i]
	}
	return
}
