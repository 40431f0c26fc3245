package advection

import (
	"fmt"
	"math"

	"github.com/notargets/gobsl/bsplines"
	"github.com/notargets/gobsl/grid"
	"github.com/notargets/gobsl/types"
	"github.com/notargets/gobsl/utils"
)

// PolarMesh is the (r, theta) tensor grid of spline interpolation points
// every advected field and every set of feet lives on. Point (i, j) is at
// linear position i*NTheta + j of a Field2D or VectorField2D.
type PolarMesh struct {
	R, Theta   *grid.Grid1D
	BR, BTheta *bsplines.BSplines
}

func NewPolarMesh(br, bth *bsplines.BSplines) (m *PolarMesh, err error) {
	var (
		r, th *grid.Grid1D
	)
	if br.Periodic() || !bth.Periodic() {
		err = fmt.Errorf("a polar mesh needs a clamped radial basis and a periodic theta basis")
		return
	}
	if math.Abs(bth.Length()-2*math.Pi) > utils.NODETOL {
		err = fmt.Errorf("theta basis spans %g, not 2*Pi", bth.Length())
		return
	}
	if br.Min() < 0 {
		err = fmt.Errorf("radial basis starts at negative radius %g", br.Min())
		return
	}
	if r, err = grid.NewGridFromBSplines("r", "r", br); err != nil {
		return
	}
	if th, err = grid.NewGridFromBSplines("theta", "theta", bth); err != nil {
		return
	}
	m = &PolarMesh{R: r, Theta: th, BR: br, BTheta: bth}
	return
}

// NewPolarMeshFromContext uses the bases registered under rName and
// thetaName.
func NewPolarMeshFromContext(ctx *grid.Context, rName, thetaName string) (m *PolarMesh, err error) {
	var (
		br, bth *bsplines.BSplines
	)
	if br, err = ctx.BSplines(rName); err != nil {
		return
	}
	if bth, err = ctx.BSplines(thetaName); err != nil {
		return
	}
	return NewPolarMesh(br, bth)
}

func (m *PolarMesh) NR() int     { return m.R.Size() }
func (m *PolarMesh) NTheta() int { return m.Theta.Size() }
func (m *PolarMesh) Size() int   { return m.NR() * m.NTheta() }

func (m *PolarMesh) Coord(i, j int) types.Coord2D {
	return types.Coord2D{m.R.Coordinate(i), m.Theta.Coordinate(j)}
}

// CoordLinear is the coordinate of the point at linear position k
func (m *PolarMesh) CoordLinear(k int) types.Coord2D {
	return m.Coord(k/m.NTheta(), k%m.NTheta())
}

// HasOPoint is true when the first radial line is the O-point
func (m *PolarMesh) HasOPoint() bool { return math.Abs(m.R.Min()) < utils.OPOINTTOL }

func (m *PolarMesh) NewField() *types.Field2D { return types.NewField2D(m.NR(), m.NTheta()) }

func (m *PolarMesh) NewVectorField() *types.VectorField2D {
	return types.NewVectorField2D(m.NR(), m.NTheta())
}

// IdentityFeet places every foot on its own mesh point
func (m *PolarMesh) IdentityFeet() (feet *types.VectorField2D) {
	feet = m.NewVectorField()
	m.ResetFeet(feet)
	return
}

func (m *PolarMesh) ResetFeet(feet *types.VectorField2D) {
	m.checkShape(feet)
	for k := 0; k < m.Size(); k++ {
		feet.SetLinear(k, m.CoordLinear(k))
	}
}

// wrapTheta brings theta into the periodic range of the mesh
func (m *PolarMesh) wrapTheta(th float64) float64 {
	return utils.WrapPeriodic(th, m.Theta.Min(), m.Theta.Length())
}

func (m *PolarMesh) checkShape(f *types.VectorField2D) {
	if f.N1 != m.NR() || f.N2 != m.NTheta() {
		panic(fmt.Errorf("vector field is %dx%d, mesh is %dx%d", f.N1, f.N2, m.NR(), m.NTheta()))
	}
}
