package multipatch

import (
	"fmt"
	"math"

	"github.com/notargets/gobsl/bsplines"
	"github.com/notargets/gobsl/types"
	"github.com/notargets/gobsl/utils"
)

// PatchEval evaluates the spline of patch p at a coordinate in p's logical
// frame
type PatchEval func(p int, c types.Coord2D) float64

// ExtrapolationRule gives the value at a point outside every patch;
// outside is the sentinel returned by the patch locator.
type ExtrapolationRule interface {
	Extrapolate(c types.Coord2D, outside int, onPatch PatchEval) float64
}

type NullExtrapolationRule struct{}

func (NullExtrapolationRule) Extrapolate(types.Coord2D, int, PatchEval) float64 { return 0 }

// ConstantExtrapolationRuleOnion extends the value on the inner boundary
// of the innermost patch and on the outer boundary of the outermost one,
// at the same theta.
type ConstantExtrapolationRuleOnion struct {
	Rmin, Rmax             float64
	InnerPatch, OuterPatch int
}

func NewConstantExtrapolationRuleOnion(l *OnionPatchLocator) ConstantExtrapolationRuleOnion {
	radii := l.Radii()
	return ConstantExtrapolationRuleOnion{
		Rmin:       radii[0],
		Rmax:       radii[len(radii)-1],
		InnerPatch: 0,
		OuterPatch: l.NPatches() - 1,
	}
}

func (rule ConstantExtrapolationRuleOnion) Extrapolate(c types.Coord2D, outside int, onPatch PatchEval) float64 {
	switch outside {
	case OutsideRminDomain:
		return onPatch(rule.InnerPatch, types.Coord2D{rule.Rmin, c[1]})
	case OutsideRmaxDomain:
		return onPatch(rule.OuterPatch, types.Coord2D{rule.Rmax, c[1]})
	}
	panic(fmt.Errorf("no constant extrapolation from patch locator result %d", outside))
}

// MultipatchSplineEvaluator evaluates a spline defined piecewise on the
// patches of an onion geometry. Coefficients are passed per patch, in the
// locator's patch order.
type MultipatchSplineEvaluator struct {
	Locator    *OnionPatchLocator
	Rule       ExtrapolationRule
	evaluators []*bsplines.Evaluator2D
}

func NewMultipatchSplineEvaluator(l *OnionPatchLocator, rule ExtrapolationRule) (e *MultipatchSplineEvaluator, err error) {
	e = &MultipatchSplineEvaluator{
		Locator:    l,
		Rule:       rule,
		evaluators: make([]*bsplines.Evaluator2D, l.NPatches()),
	}
	for i, p := range l.Patches {
		if p.BSplines1 == nil || p.BSplines2 == nil {
			err = fmt.Errorf("%w: patch %s has no B-splines", ErrInvalidArgument, p.Name)
			return nil, err
		}
		var (
			r1, r2 = localRule(p.BSplines1), localRule(p.BSplines2)
		)
		if e.evaluators[i], err = bsplines.NewEvaluator2D(p.BSplines1, p.BSplines2, r1, r1, r2, r2); err != nil {
			return nil, fmt.Errorf("patch %s: %w", p.Name, err)
		}
	}
	return
}

// localRule never extrapolates: points off a patch were located elsewhere
func localRule(b *bsplines.BSplines) bsplines.ExtrapolationRule {
	if b.Periodic() {
		return bsplines.PeriodicRule
	}
	return bsplines.NullRule
}

// Evaluate is the value (or derivative) at c, expressed in the logical
// frame of patch q.
func (e *MultipatchSplineEvaluator) Evaluate(q int, c types.Coord2D, coeffs []*types.Field2D,
	kind bsplines.EvalKind) float64 {
	var (
		xy = e.Locator.ToPhysical(c)
		p  = e.Locator.Locate(xy)
	)
	if p < 0 {
		if kind != bsplines.Value {
			panic(fmt.Errorf("no derivative outside the domain, point %v located %d", c, p))
		}
		return e.Rule.Extrapolate(c, p, func(p int, c types.Coord2D) float64 {
			return e.onPatch(p, c, coeffs, bsplines.Value)
		})
	}
	if e.Locator.Patches[p].Dims() != e.Locator.Patches[q].Dims() {
		c = e.Locator.ToLogical(xy)
	}
	return e.onPatch(p, c, coeffs, kind)
}

func (e *MultipatchSplineEvaluator) onPatch(p int, c types.Coord2D, coeffs []*types.Field2D,
	kind bsplines.EvalKind) float64 {
	if p >= len(e.evaluators) {
		panic(fmt.Errorf("patch index %d out of %d patches", p, len(e.evaluators)))
	}
	var (
		b1, b2 = e.evaluators[p].B1, e.evaluators[p].B2
	)
	// round-off from the physical round trip can leave r just off the patch
	c[0] = restrictInside(b1, c[0])
	c[1] = restrictInside(b2, c[1])
	return e.evaluators[p].Evaluate(c, coeffs[p], kind)
}

func restrictInside(b *bsplines.BSplines, x float64) float64 {
	if b.Periodic() {
		return utils.WrapPeriodic(x, b.Min(), b.Length())
	}
	return math.Min(math.Max(x, b.Min()), b.Max())
}

func (e *MultipatchSplineEvaluator) Eval(c types.Coord2D, coeffs []*types.Field2D) float64 {
	return e.Evaluate(0, c, coeffs, bsplines.Value)
}

func (e *MultipatchSplineEvaluator) DerivDim1(c types.Coord2D, coeffs []*types.Field2D) float64 {
	return e.Evaluate(0, c, coeffs, bsplines.DerivDim1)
}

func (e *MultipatchSplineEvaluator) DerivDim2(c types.Coord2D, coeffs []*types.Field2D) float64 {
	return e.Evaluate(0, c, coeffs, bsplines.DerivDim2)
}

func (e *MultipatchSplineEvaluator) Deriv1And2(c types.Coord2D, coeffs []*types.Field2D) float64 {
	return e.Evaluate(0, c, coeffs, bsplines.Deriv1And2)
}

// EvaluateBatch fills values[q][k] at coords[q][k], the coordinates stored
// on patch q, for every patch in parallel.
func (e *MultipatchSplineEvaluator) EvaluateBatch(values [][]float64, coords [][]types.Coord2D,
	coeffs []*types.Field2D, kind bsplines.EvalKind) {
	if len(values) != len(coords) {
		panic(fmt.Errorf("%d value fields for %d coordinate fields", len(values), len(coords)))
	}
	for q := range coords {
		var (
			out, cs = values[q], coords[q]
		)
		if len(out) != len(cs) {
			panic(fmt.Errorf("patch %d: %d values for %d coordinates", q, len(out), len(cs)))
		}
		utils.ParallelFor(len(cs), func(kMin, kMax int) {
			for k := kMin; k < kMax; k++ {
				out[k] = e.Evaluate(q, cs[k], coeffs, kind)
			}
		})
	}
}

// Integrate returns the integral over each patch in its logical frame
func (e *MultipatchSplineEvaluator) Integrate(coeffs []*types.Field2D) (integrals []float64) {
	integrals = make([]float64, len(e.evaluators))
	for p, ev := range e.evaluators {
		integrals[p] = ev.Integrate(coeffs[p])
	}
	return
}
