package advection

import (
	"fmt"
	"math"

	"github.com/notargets/gobsl/mapping"
	"github.com/notargets/gobsl/types"
	"github.com/notargets/gobsl/utils"
)

// BslAdvectionPolar is the backward semi-Lagrangian advection of a field
// on a polar mesh: find the feet of the characteristics ending on the mesh
// points, then sample the field there.
type BslAdvectionPolar struct {
	Interpolator *SplinePolarInterpolator
	FootFinder   *SplineFootFinder
	Mapping      mapping.Mapping
	// NormalisedRTheta selects the metric normalised conversion of (r, theta)
	// advection fields instead of the jacobian product
	NormalisedRTheta bool
	feet             *types.VectorField2D
	advXY            *types.VectorField2D
}

func NewBslAdvectionPolar(ip *SplinePolarInterpolator, ff *SplineFootFinder, m mapping.Mapping) (adv *BslAdvectionPolar, err error) {
	if ip.Mesh != ff.Domain.Mesh() {
		err = fmt.Errorf("the interpolator and the foot finder are on different meshes")
		return
	}
	adv = &BslAdvectionPolar{
		Interpolator: ip,
		FootFinder:   ff,
		Mapping:      m,
		feet:         ip.Mesh.NewVectorField(),
		advXY:        ip.Mesh.NewVectorField(),
	}
	return
}

func (adv *BslAdvectionPolar) Mesh() *PolarMesh { return adv.Interpolator.Mesh }

// Feet of the last advection
func (adv *BslAdvectionPolar) Feet() *types.VectorField2D { return adv.feet }

// AdvectXY advects field in place over dt under the physical advection
// field advXY, both sampled on the mesh.
func (adv *BslAdvectionPolar) AdvectXY(field *types.Field2D, advXY *types.VectorField2D, dt float64) *types.Field2D {
	adv.Mesh().ResetFeet(adv.feet)
	adv.FootFinder.FindFeet(adv.feet, advXY, dt)
	adv.Interpolator.Interpolate(field, adv.feet)
	return field
}

// AdvectRTheta takes the advection field in the logical frame and its
// physical value at the O-point, where the logical components are not
// defined.
func (adv *BslAdvectionPolar) AdvectRTheta(field *types.Field2D, advRTheta *types.VectorField2D,
	advXYCentre types.Coord2D, dt float64) *types.Field2D {
	if adv.convertRTheta(advRTheta) {
		adv.setOPointRing(advXYCentre)
	}
	return adv.AdvectXY(field, adv.advXY, dt)
}

// AdvectRThetaAveraged uses the mean of the converted field on the first
// ring after the O-point as the O-point value.
func (adv *BslAdvectionPolar) AdvectRThetaAveraged(field *types.Field2D, advRTheta *types.VectorField2D,
	dt float64) *types.Field2D {
	if adv.convertRTheta(advRTheta) {
		var (
			mesh = adv.Mesh()
			mean types.Coord2D
		)
		if mesh.NR() < 2 {
			panic(fmt.Errorf("averaging around the O-point needs a second radial line"))
		}
		for j := 0; j < mesh.NTheta(); j++ {
			mean = mean.Add(adv.advXY.Get(1, j))
		}
		adv.setOPointRing(mean.Scale(1. / float64(mesh.NTheta())))
	}
	return adv.AdvectXY(field, adv.advXY, dt)
}

// convertRTheta fills advXY from the logical field everywhere off the
// O-point and reports whether the mesh has an O-point ring left to fill.
func (adv *BslAdvectionPolar) convertRTheta(advRTheta *types.VectorField2D) (hasOPoint bool) {
	var (
		mesh  = adv.Mesh()
		first = 0
	)
	mesh.checkShape(advRTheta)
	if hasOPoint = mesh.HasOPoint(); hasOPoint {
		if d := adv.Mapping.ToPhysical(mesh.Coord(0, 0)).Sub(mapping.OPoint(adv.Mapping)).NormInf(); d > OPointTolerance {
			panic(fmt.Errorf("the first radial line is %g away from the O-point", d))
		}
		first = mesh.NTheta()
	}
	utils.ParallelFor(mesh.Size()-first, func(kMin, kMax int) {
		for k := kMin + first; k < kMax+first; k++ {
			adv.advXY.SetLinear(k, adv.ToXY(mesh.CoordLinear(k), advRTheta.GetLinear(k)))
		}
	})
	return
}

func (adv *BslAdvectionPolar) setOPointRing(centre types.Coord2D) {
	for j := 0; j < adv.Mesh().NTheta(); j++ {
		adv.advXY.Set(0, j, centre)
	}
}

// ToXY converts logical advection components a = (a_r, a_theta) at c to
// physical ones. The default is the jacobian product J a; the normalised
// form divides each logical direction by its length in the metric.
func (adv *BslAdvectionPolar) ToXY(c, a types.Coord2D) types.Coord2D {
	J := adv.Mapping.Jacobian(c)
	if !adv.NormalisedRTheta {
		return J.MulVec(a)
	}
	var (
		G      = mapping.MetricTensor(adv.Mapping, c)
		sqrtRR = math.Sqrt(G[0][0])
		sqrtTT = math.Sqrt(G[1][1])
	)
	return types.Coord2D{
		a[0]*J[1][1]/sqrtTT - a[1]*J[1][0]/sqrtRR,
		-a[0]*J[0][1]/sqrtTT + a[1]*J[0][0]/sqrtRR,
	}
}
