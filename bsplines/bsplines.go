package bsplines

import (
	"fmt"
	"sort"

	"github.com/notargets/gobsl/utils"
)

// MaxDegree bounds the degree so the per-point kernels work on stack arrays
const MaxDegree = 7

// BSplines is a 1D B-spline basis on the break points breaks[0..N]. A
// periodic basis has N distinct functions, a clamped one N+degree.
type BSplines struct {
	degree   int
	periodic bool
	uniform  bool
	nCells   int
	breaks   []float64
}

func NewUniformBSplines(degree int, min, max float64, nCells int, periodic bool) (b *BSplines, err error) {
	if nCells < 1 {
		err = fmt.Errorf("a B-spline basis needs at least one cell, have %d", nCells)
		return
	}
	if !(max > min) {
		err = fmt.Errorf("invalid B-spline domain [%g, %g]", min, max)
		return
	}
	breaks := make([]float64, nCells+1)
	dx := (max - min) / float64(nCells)
	for i := range breaks {
		breaks[i] = min + float64(i)*dx
	}
	breaks[nCells] = max
	if b, err = newBSplines(degree, breaks, periodic); err != nil {
		return
	}
	b.uniform = true
	return
}

func NewNonUniformBSplines(degree int, breaks []float64, periodic bool) (b *BSplines, err error) {
	return newBSplines(degree, append([]float64{}, breaks...), periodic)
}

func newBSplines(degree int, breaks []float64, periodic bool) (b *BSplines, err error) {
	if degree < 1 || degree > MaxDegree {
		err = fmt.Errorf("B-spline degree must be in [1, %d], have %d", MaxDegree, degree)
		return
	}
	if len(breaks) < 2 {
		err = fmt.Errorf("a B-spline basis needs at least two break points, have %d", len(breaks))
		return
	}
	for i := 1; i < len(breaks); i++ {
		if !(breaks[i] > breaks[i-1]) {
			err = fmt.Errorf("break points must be strictly increasing, breaks[%d] = %g, breaks[%d] = %g",
				i-1, breaks[i-1], i, breaks[i])
			return
		}
	}
	nCells := len(breaks) - 1
	if periodic && nCells < degree {
		err = fmt.Errorf("a periodic basis of degree %d needs at least %d cells, have %d",
			degree, degree, nCells)
		return
	}
	b = &BSplines{
		degree:   degree,
		periodic: periodic,
		nCells:   nCells,
		breaks:   breaks,
	}
	return
}

func (b *BSplines) Degree() int       { return b.degree }
func (b *BSplines) Periodic() bool    { return b.periodic }
func (b *BSplines) Uniform() bool     { return b.uniform }
func (b *BSplines) NCells() int       { return b.nCells }
func (b *BSplines) Min() float64      { return b.breaks[0] }
func (b *BSplines) Max() float64      { return b.breaks[b.nCells] }
func (b *BSplines) Length() float64   { return b.Max() - b.Min() }
func (b *BSplines) Breaks() []float64 { return append([]float64{}, b.breaks...) }

func (b *BSplines) NBasis() int {
	if b.periodic {
		return b.nCells
	}
	return b.nCells + b.degree
}

// knot extends the break points beyond [0, N]: periodically, or by
// repeating the end points for a clamped basis.
func (b *BSplines) knot(i int) float64 {
	if b.periodic {
		return b.breaks[utils.Mod(i, b.nCells)] + float64(utils.FloorDiv(i, b.nCells))*b.Length()
	}
	switch {
	case i < 0:
		return b.breaks[0]
	case i > b.nCells:
		return b.breaks[b.nCells]
	}
	return b.breaks[i]
}

// Index converts a raw basis number, the index of the first knot of the
// function's support, into a coefficient index.
func (b *BSplines) Index(j int) int {
	if b.periodic {
		return utils.Mod(j, b.nCells)
	}
	return j + b.degree
}

func (b *BSplines) restrict(x float64) float64 {
	if b.periodic {
		return utils.WrapPeriodic(x, b.Min(), b.Length())
	}
	switch {
	case x < b.Min():
		return b.Min()
	case x > b.Max():
		return b.Max()
	}
	return x
}

func (b *BSplines) findCell(x float64) (cell int) {
	if b.uniform {
		cell = int((x - b.Min()) / b.Length() * float64(b.nCells))
	} else {
		cell = sort.Search(len(b.breaks), func(k int) bool { return b.breaks[k] > x }) - 1
	}
	if cell < 0 {
		cell = 0
	}
	if cell > b.nCells-1 {
		cell = b.nCells - 1
	}
	// Guard against round off in the uniform estimate
	for cell > 0 && x < b.breaks[cell] {
		cell--
	}
	for cell < b.nCells-1 && x >= b.breaks[cell+1] {
		cell++
	}
	return
}

func (b *BSplines) basisValues(x float64, cell, degree int, vals []float64) {
	var (
		left, right [MaxDegree + 1]float64
	)
	vals[0] = 1
	for j := 1; j <= degree; j++ {
		left[j] = x - b.knot(cell+1-j)
		right[j] = b.knot(cell+j) - x
		saved := 0.
		for r := 0; r < j; r++ {
			temp := vals[r] / (right[r+1] + left[j-r])
			vals[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		vals[j] = saved
	}
}

// EvalBasis fills vals[0..degree] with the non-zero basis functions at x;
// vals[k] belongs to raw basis number jmin+k (see Index).
func (b *BSplines) EvalBasis(x float64, vals []float64) (jmin int) {
	x = b.restrict(x)
	cell := b.findCell(x)
	b.basisValues(x, cell, b.degree, vals)
	jmin = cell - b.degree
	return
}

// EvalDeriv is EvalBasis for the first derivatives
func (b *BSplines) EvalDeriv(x float64, derivs []float64) (jmin int) {
	var (
		p     = b.degree
		lower [MaxDegree + 1]float64
	)
	x = b.restrict(x)
	cell := b.findCell(x)
	b.basisValues(x, cell, p-1, lower[:])
	jmin = cell - p
	for k := 0; k <= p; k++ {
		var (
			j      = jmin + k
			t1, t2 float64
		)
		if k >= 1 {
			if den := b.knot(j+p) - b.knot(j); den != 0 {
				t1 = lower[k-1] / den
			}
		}
		if k < p {
			if den := b.knot(j+p+1) - b.knot(j+1); den != 0 {
				t2 = lower[k] / den
			}
		}
		derivs[k] = float64(p) * (t1 - t2)
	}
	return
}

// Integrals is the definite integral of each basis function over the domain
func (b *BSplines) Integrals() (w []float64) {
	var (
		p = b.degree
	)
	w = make([]float64, b.NBasis())
	for ib := range w {
		j := ib
		if !b.periodic {
			j = ib - p
		}
		w[ib] = (b.knot(j+p+1) - b.knot(j)) / float64(p+1)
	}
	return
}

// InterpolationPoints are the points where an interpolating spline takes
// the sampled values: the break points for an odd degree periodic basis,
// otherwise the Greville abscissae.
func (b *BSplines) InterpolationPoints() (x []float64) {
	var (
		p = b.degree
		n = b.NBasis()
	)
	if b.periodic && p%2 == 1 {
		return append([]float64{}, b.breaks[:b.nCells]...)
	}
	x = make([]float64, n)
	for ib := range x {
		j := ib
		if !b.periodic {
			j = ib - p
		}
		var sum float64
		for k := 1; k <= p; k++ {
			sum += b.knot(j + k)
		}
		x[ib] = sum / float64(p)
		if b.periodic {
			x[ib] = utils.WrapPeriodic(x[ib], b.Min(), b.Length())
		}
	}
	if b.periodic {
		sort.Float64s(x)
	} else {
		// The end points are exact
		x[0], x[n-1] = b.Min(), b.Max()
	}
	return
}
