package grid

import (
	"fmt"
	"math"

	"github.com/notargets/gobsl/bsplines"
	"github.com/notargets/gobsl/types"
	"github.com/notargets/gobsl/utils"
)

// Grid1D is a set of sampling points along one continuous dimension. A
// periodic grid covers [Min, Max) and Max-Min is the period.
type Grid1D struct {
	Name string
	// Dim names the continuous dimension; grids sampling the same dimension
	// share a coordinate system.
	Dim      string
	points   []float64
	min, max float64
	periodic bool
	uniform  bool
}

func NewUniformGrid(name, dim string, min, max float64, nCells int, periodic bool) (g *Grid1D, err error) {
	if nCells < 1 || !(max > min) {
		err = fmt.Errorf("grid %s: invalid uniform grid of %d cells on [%g, %g]", name, nCells, min, max)
		return
	}
	nPoints := nCells + 1
	if periodic {
		nPoints = nCells
	}
	g = &Grid1D{
		Name:     name,
		Dim:      dim,
		points:   make([]float64, nPoints),
		min:      min,
		max:      max,
		periodic: periodic,
		uniform:  true,
	}
	dx := (max - min) / float64(nCells)
	for i := range g.points {
		g.points[i] = min + float64(i)*dx
	}
	if !periodic {
		g.points[nCells] = max
	}
	return
}

// NewNonUniformGrid samples a non-periodic dimension at the given points
func NewNonUniformGrid(name, dim string, points []float64) (g *Grid1D, err error) {
	if len(points) < 2 {
		err = fmt.Errorf("grid %s: needs at least two points", name)
		return
	}
	if err = checkIncreasing(name, points); err != nil {
		return
	}
	g = &Grid1D{
		Name:   name,
		Dim:    dim,
		points: append([]float64{}, points...),
		min:    points[0],
		max:    points[len(points)-1],
	}
	return
}

// NewPeriodicNonUniformGrid samples a periodic dimension of period
// max-points[0]; max itself is not a grid point.
func NewPeriodicNonUniformGrid(name, dim string, points []float64, max float64) (g *Grid1D, err error) {
	if len(points) < 1 {
		err = fmt.Errorf("grid %s: needs at least one point", name)
		return
	}
	if err = checkIncreasing(name, points); err != nil {
		return
	}
	if !(max > points[len(points)-1]) {
		err = fmt.Errorf("grid %s: period end %g must follow the last point %g",
			name, max, points[len(points)-1])
		return
	}
	g = &Grid1D{
		Name:     name,
		Dim:      dim,
		points:   append([]float64{}, points...),
		min:      points[0],
		max:      max,
		periodic: true,
	}
	return
}

// NewGridFromBSplines samples the interpolation points of the basis
func NewGridFromBSplines(name, dim string, b *bsplines.BSplines) (g *Grid1D, err error) {
	var (
		points = b.InterpolationPoints()
	)
	if b.Periodic() {
		g, err = NewPeriodicNonUniformGrid(name, dim, points, points[0]+b.Length())
	} else {
		g, err = NewNonUniformGrid(name, dim, points)
	}
	if err != nil {
		return
	}
	g.uniform = b.Uniform() && b.Periodic() && b.Degree()%2 == 1
	return
}

func checkIncreasing(name string, points []float64) error {
	for i := 1; i < len(points); i++ {
		if !(points[i] > points[i-1]) {
			return fmt.Errorf("grid %s: points must be strictly increasing, points[%d] = %g, points[%d] = %g",
				name, i-1, points[i-1], i, points[i])
		}
	}
	return nil
}

func (g *Grid1D) Size() int         { return len(g.points) }
func (g *Grid1D) Min() float64      { return g.min }
func (g *Grid1D) Max() float64      { return g.max }
func (g *Grid1D) Length() float64   { return g.max - g.min }
func (g *Grid1D) Periodic() bool    { return g.periodic }
func (g *Grid1D) Uniform() bool     { return g.uniform }
func (g *Grid1D) Points() []float64 { return append([]float64{}, g.points...) }

// NCells is the number of intervals between points, closing the loop on a
// periodic grid.
func (g *Grid1D) NCells() int {
	if g.periodic {
		return len(g.points)
	}
	return len(g.points) - 1
}

// Coordinate of index i; periodic grids accept any index and add whole periods
func (g *Grid1D) Coordinate(i int) float64 {
	if g.periodic {
		n := len(g.points)
		return g.points[utils.Mod(i, n)] + float64(utils.FloorDiv(i, n))*g.Length()
	}
	return g.points[i]
}

func (g *Grid1D) IdxRange() types.IdxRange1D {
	return types.NewIdxRange1D(0, len(g.points))
}

// Contains is true when x lies in the grid's domain, or always for a
// periodic grid.
func (g *Grid1D) Contains(x float64) bool {
	return g.periodic || (x >= g.min && x <= g.max)
}

// Restrict wraps a periodic coordinate into [Min, Max)
func (g *Grid1D) Restrict(x float64) float64 {
	if g.periodic {
		return utils.WrapPeriodic(x, g.min, g.Length())
	}
	return x
}

// Nearest is the index of the grid point closest to x
func (g *Grid1D) Nearest(x float64) (i int) {
	var (
		best = math.Inf(1)
	)
	x = g.Restrict(x)
	for k, p := range g.points {
		if d := math.Abs(p - x); d < best {
			best, i = d, k
		}
	}
	if g.periodic && math.Abs(g.max-x) < best {
		i = 0
	}
	return
}

func (g *Grid1D) String() string {
	return fmt.Sprintf("Grid1D{%s on %s: %d points in [%g, %g], periodic %v, uniform %v}",
		g.Name, g.Dim, len(g.points), g.min, g.max, g.periodic, g.uniform)
}
