package PolarAdvection2D

import (
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gobsl/InputParameters"
	"github.com/notargets/gobsl/advection"
	"github.com/notargets/gobsl/bsplines"
	"github.com/notargets/gobsl/grid"
	"github.com/notargets/gobsl/mapping"
	"github.com/notargets/gobsl/types"
	"github.com/notargets/gobsl/utils"
)

// PolarAdvection transports a gaussian under a rigid rotation around the
// O-point or a uniform translation, for which the solution is known.
type PolarAdvection struct {
	Params    *InputParameters.AdvectionParameters
	Log       logrus.FieldLogger
	Context   *grid.Context
	Mesh      *advection.PolarMesh
	Mapping   mapping.Mapping
	Domain    advection.AdvectionDomain
	Advection *advection.BslAdvectionPolar
	Field     *types.Field2D
	Time      float64
	Steps     int
	advXY     *types.VectorField2D
	advRTheta *types.VectorField2D
	centre    types.Coord2D
}

func NewPolarAdvection(ip *InputParameters.AdvectionParameters, log logrus.FieldLogger) (c *PolarAdvection, err error) {
	if err = ip.Validate(); err != nil {
		return
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	c = &PolarAdvection{
		Params:  ip,
		Log:     log,
		Context: grid.NewContext(),
	}
	if err = c.newMesh(); err != nil {
		return nil, err
	}
	if c.Mapping, err = newMapping(ip); err != nil {
		return nil, err
	}
	c.centre = mapping.OPoint(c.Mapping)
	if c.Domain, err = c.newDomain(); err != nil {
		return nil, err
	}
	st, _ := ip.StepperType()
	var (
		ff  *advection.SplineFootFinder
		itp *advection.SplinePolarInterpolator
	)
	if ff, err = advection.NewDefaultSplineFootFinder(st, c.Domain); err != nil {
		return nil, err
	}
	ff.Log = log
	if itp, err = advection.NewSplinePolarInterpolator(c.Mesh); err != nil {
		return nil, err
	}
	if c.Advection, err = advection.NewBslAdvectionPolar(itp, ff, c.Mapping); err != nil {
		return nil, err
	}
	c.Advection.NormalisedRTheta = ip.NormalisedRTheta
	c.Field = c.Exact(0)
	c.advXY = c.Mesh.NewVectorField()
	for k := 0; k < c.Mesh.Size(); k++ {
		c.advXY.SetLinear(k, c.velocity(c.Mapping.ToPhysical(c.Mesh.CoordLinear(k))))
	}
	if ip.RThetaFrame {
		c.advRTheta = c.toRTheta(c.advXY)
	}
	c.Log.WithFields(logrus.Fields{
		"mapping":  ip.Mapping,
		"domain":   c.Domain.Name(),
		"stepper":  ip.TimeStepper,
		"nr":       c.Mesh.NR(),
		"ntheta":   c.Mesh.NTheta(),
		"o_point":  c.Mesh.HasOPoint(),
		"rtheta":   ip.RThetaFrame,
		"timestep": ip.DT,
	}).Info("polar advection initialised")
	return
}

func (c *PolarAdvection) newMesh() (err error) {
	var (
		ip       = c.Params
		br, bth  *bsplines.BSplines
		periodic = true
	)
	if br, err = bsplines.NewUniformBSplines(ip.SplineDegree, ip.RMin, ip.RMax, ip.NR, !periodic); err != nil {
		return
	}
	if bth, err = bsplines.NewUniformBSplines(ip.SplineDegree, 0, 2*math.Pi, ip.NTheta, periodic); err != nil {
		return
	}
	if _, err = c.Context.AddSplineGrid("r", "r", br); err != nil {
		return
	}
	if _, err = c.Context.AddSplineGrid("theta", "theta", bth); err != nil {
		return
	}
	c.Context.Freeze()
	c.Mesh, err = advection.NewPolarMeshFromContext(c.Context, "r", "theta")
	return
}

func newMapping(ip *InputParameters.AdvectionParameters) (m mapping.Mapping, err error) {
	switch strings.ToLower(ip.Mapping) {
	case "circular":
		m = mapping.NewCircular(0, 0)
	case "czarny":
		m, err = mapping.NewCzarny(ip.Epsilon, ip.Elongation)
	default:
		err = fmt.Errorf("unknown mapping %q", ip.Mapping)
	}
	return
}

func (c *PolarAdvection) newDomain() (d advection.AdvectionDomain, err error) {
	if strings.EqualFold(c.Params.Domain, "pseudocartesian") {
		if _, circular := c.Mapping.(*mapping.Circular); !circular {
			return advection.NewPseudoCartesianDomain(c.Mesh, c.Mapping, advection.DefaultPseudoCartesianEpsilon)
		}
		c.Log.Info("circular mapping, advecting in the physical domain")
	}
	return advection.NewPhysicalDomain(c.Mesh, c.Mapping), nil
}

func (c *PolarAdvection) rotating() bool { return strings.EqualFold(c.Params.Advection, "rotation") }

func (c *PolarAdvection) velocity(xy types.Coord2D) types.Coord2D {
	if !c.rotating() {
		return types.Coord2D(c.Params.Velocity)
	}
	var (
		omega = c.Params.Omega
		d     = xy.Sub(c.centre)
	)
	return types.Coord2D{-omega * d[1], omega * d[0]}
}

// toRTheta expresses the physical field in the logical frame, leaving the
// O-point ring at zero
func (c *PolarAdvection) toRTheta(advXY *types.VectorField2D) (adv *types.VectorField2D) {
	var (
		mesh  = c.Mesh
		first = 0
	)
	adv = mesh.NewVectorField()
	if mesh.HasOPoint() {
		first = mesh.NTheta()
	}
	for k := first; k < mesh.Size(); k++ {
		var (
			pos = mesh.CoordLinear(k)
			N   types.Matrix2x2
		)
		// Columns are the images of the logical unit vectors
		for d := 0; d < 2; d++ {
			var e types.Coord2D
			e[d] = 1
			col := c.Advection.ToXY(pos, e)
			N[0][d], N[1][d] = col[0], col[1]
		}
		adv.SetLinear(k, N.Inverse().MulVec(advXY.GetLinear(k)))
	}
	return
}

// Exact is the transported initial condition at time t
func (c *PolarAdvection) Exact(t float64) (field *types.Field2D) {
	var (
		g     = c.Params.InitialCondition
		gc    = types.Coord2D{g.CenterX, g.CenterY}
		s2    = 2 * g.Sigma * g.Sigma
		cs    = math.Cos(c.Params.Omega * t)
		sn    = math.Sin(c.Params.Omega * t)
		shift = types.Coord2D(c.Params.Velocity).Scale(t)
	)
	field = c.Mesh.NewField()
	utils.ParallelFor(field.Size(), func(kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			xy := c.Mapping.ToPhysical(c.Mesh.CoordLinear(k))
			if c.rotating() {
				d := xy.Sub(c.centre)
				xy = c.centre.Add(types.Coord2D{cs*d[0] + sn*d[1], -sn*d[0] + cs*d[1]})
			} else {
				xy = xy.Sub(shift)
			}
			d := xy.Sub(gc)
			field.Data[k] = math.Exp(-(d[0]*d[0] + d[1]*d[1]) / s2)
		}
	})
	return
}

// Step advects the field over dt
func (c *PolarAdvection) Step(dt float64) {
	if c.advRTheta != nil {
		c.Advection.AdvectRTheta(c.Field, c.advRTheta, c.velocity(c.centre), dt)
	} else {
		c.Advection.AdvectXY(c.Field, c.advXY, dt)
	}
	c.Time += dt
	c.Steps++
}

// Error is the maximum distance to the exact solution
func (c *PolarAdvection) Error() float64 {
	exact := c.Exact(c.Time)
	return utils.ParallelMax(c.Field.Size(), func(k int) float64 {
		return math.Abs(c.Field.Data[k] - exact.Data[k])
	})
}

// Run steps to FinalTime, shortening the last step to land on it, and
// returns the final error
func (c *PolarAdvection) Run() float64 {
	var (
		ip       = c.Params
		logEvery = ip.LogEvery
		nSteps   = ip.Steps()
	)
	for n := 0; n < nSteps; n++ {
		dt := math.Min(ip.DT, ip.FinalTime-c.Time)
		c.Step(dt)
		isDone := n == nSteps-1
		if (logEvery > 0 && c.Steps%logEvery == 0) || isDone {
			utils.IsNanPanic(c.Field.Data)
			c.Log.WithFields(logrus.Fields{
				"step":  c.Steps,
				"time":  fmt.Sprintf("%8.4f", c.Time),
				"min":   floats.Min(c.Field.Data),
				"max":   floats.Max(c.Field.Data),
				"error": c.Error(),
			}).Info("advection step")
		}
	}
	return c.Error()
}
