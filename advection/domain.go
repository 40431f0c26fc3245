package advection

import (
	"fmt"

	"github.com/notargets/gobsl/mapping"
	"github.com/notargets/gobsl/types"
	"github.com/notargets/gobsl/utils"
)

// OPointSnapTolerance is the distance to the O-point below which a foot is
// put exactly on it
const OPointSnapTolerance = 1.e-15

// AdvectionDomain is the frame the characteristics are integrated in
type AdvectionDomain interface {
	// AdvectFeet moves every foot, in place, by -dt times the advection
	// field expressed in the frame of the domain.
	AdvectFeet(feet, advField *types.VectorField2D, dt float64)
	// AdvectionFieldInDomain converts a physical (x, y) advection field
	// sampled on the mesh into the frame of the domain.
	AdvectionFieldInDomain(dst, advXY *types.VectorField2D)
	Mesh() *PolarMesh
	Mapping() mapping.Mapping
	Name() string
}

// advectFeet steps every foot in the cartesian frame given by toFrame and
// fromFrame, putting feet landing on the O-point exactly at r = 0.
func advectFeet(mesh *PolarMesh, feet, advField *types.VectorField2D, dt float64,
	center types.Coord2D, toFrame, fromFrame func(types.Coord2D) types.Coord2D) {
	mesh.checkShape(feet)
	mesh.checkShape(advField)
	utils.ParallelFor(feet.Size(), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			xy := toFrame(feet.GetLinear(k)).Sub(advField.GetLinear(k).Scale(dt))
			if xy.Sub(center).NormInf() < OPointSnapTolerance {
				feet.SetLinear(k, types.Coord2D{0, 0})
				continue
			}
			c := fromFrame(xy)
			c[1] = mesh.wrapTheta(c[1])
			feet.SetLinear(k, c)
		}
	})
}

// PhysicalDomain integrates in the physical (x, y) frame, inverting the
// mapping at every step.
type PhysicalDomain struct {
	mesh *PolarMesh
	m    mapping.Mapping
}

func NewPhysicalDomain(mesh *PolarMesh, m mapping.Mapping) *PhysicalDomain {
	return &PhysicalDomain{mesh: mesh, m: m}
}

func (d *PhysicalDomain) Mesh() *PolarMesh         { return d.mesh }
func (d *PhysicalDomain) Mapping() mapping.Mapping { return d.m }
func (d *PhysicalDomain) Name() string             { return "Physical" }

func (d *PhysicalDomain) AdvectFeet(feet, advField *types.VectorField2D, dt float64) {
	advectFeet(d.mesh, feet, advField, dt, mapping.OPoint(d.m), d.m.ToPhysical, d.m.ToLogical)
}

func (d *PhysicalDomain) AdvectionFieldInDomain(dst, advXY *types.VectorField2D) {
	d.mesh.checkShape(advXY)
	dst.CopyFrom(advXY)
}

// PseudoCartesianDomain integrates in the frame of the circular map
// (r cos(theta), r sin(theta)), which is inverted analytically and is
// regular at the O-point. Below radius Epsilon the field conversion blends
// into its O-point limit.
type PseudoCartesianDomain struct {
	Epsilon float64
	mesh    *PolarMesh
	m       mapping.Mapping
}

const DefaultPseudoCartesianEpsilon = 1.e-12

func NewPseudoCartesianDomain(mesh *PolarMesh, m mapping.Mapping, epsilon float64) (d *PseudoCartesianDomain, err error) {
	if _, circular := m.(*mapping.Circular); circular {
		err = fmt.Errorf("the pseudo cartesian domain of a circular mapping is the physical domain")
		return
	}
	if epsilon <= 0 {
		err = fmt.Errorf("pseudo cartesian blending radius must be positive, have %g", epsilon)
		return
	}
	d = &PseudoCartesianDomain{Epsilon: epsilon, mesh: mesh, m: m}
	return
}

func (d *PseudoCartesianDomain) Mesh() *PolarMesh         { return d.mesh }
func (d *PseudoCartesianDomain) Mapping() mapping.Mapping { return d.m }
func (d *PseudoCartesianDomain) Name() string             { return "PseudoCartesian" }

func (d *PseudoCartesianDomain) AdvectFeet(feet, advField *types.VectorField2D, dt float64) {
	advectFeet(d.mesh, feet, advField, dt, types.Coord2D{0, 0},
		mapping.ToPseudoCartesian, mapping.FromPseudoCartesian)
}

func (d *PseudoCartesianDomain) AdvectionFieldInDomain(dst, advXY *types.VectorField2D) {
	d.mesh.checkShape(dst)
	d.mesh.checkShape(advXY)
	utils.ParallelFor(advXY.Size(), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			J := mapping.PseudoCartesianJacobian(d.m, d.mesh.CoordLinear(k), d.Epsilon)
			dst.SetLinear(k, J.MulVec(advXY.GetLinear(k)))
		}
	})
}
