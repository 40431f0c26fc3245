package multipatch

import (
	"errors"
	"fmt"

	"github.com/notargets/gobsl/bsplines"
	"github.com/notargets/gobsl/grid"
	"github.com/notargets/gobsl/types"
)

// ErrInvalidArgument is wrapped by every geometry setup error
var ErrInvalidArgument = errors.New("invalid argument")

// Patch is one logical rectangle Grid1 x Grid2 of a multipatch domain
type Patch struct {
	Name                 string
	Grid1, Grid2         *grid.Grid1D
	BSplines1, BSplines2 *bsplines.BSplines
}

// NewPatch accepts nil bases for patches that are never interpolated on
func NewPatch(name string, g1, g2 *grid.Grid1D, b1, b2 *bsplines.BSplines) (p *Patch, err error) {
	if g1 == nil || g2 == nil {
		err = fmt.Errorf("%w: patch %s needs two grids", ErrInvalidArgument, name)
		return
	}
	if g1 == g2 || g1.Dim == g2.Dim {
		err = fmt.Errorf("%w: patch %s grids %s and %s must sample different dimensions",
			ErrInvalidArgument, name, g1.Name, g2.Name)
		return
	}
	p = &Patch{
		Name:      name,
		Grid1:     g1,
		Grid2:     g2,
		BSplines1: b1,
		BSplines2: b2,
	}
	return
}

func (p *Patch) HasGrid(g *grid.Grid1D) bool { return g == p.Grid1 || g == p.Grid2 }

// OtherGrid is the grid of p orthogonal to g
func (p *Patch) OtherGrid(g *grid.Grid1D) *grid.Grid1D {
	switch g {
	case p.Grid1:
		return p.Grid2
	case p.Grid2:
		return p.Grid1
	}
	panic(fmt.Errorf("grid %s is not on patch %s", g.Name, p.Name))
}

// Dims are the names of the logical dimensions of the patch
func (p *Patch) Dims() [2]string { return [2]string{p.Grid1.Dim, p.Grid2.Dim} }

func (p *Patch) IdxRange() types.IdxRange2D {
	return types.NewIdxRange2D(p.Grid1.IdxRange(), p.Grid2.IdxRange())
}

// Select returns the component of a patch index range along g
func (p *Patch) Select(r types.IdxRange2D, g *grid.Grid1D) types.IdxRange1D {
	switch g {
	case p.Grid1:
		return r.R1
	case p.Grid2:
		return r.R2
	}
	panic(fmt.Errorf("grid %s is not on patch %s", g.Name, p.Name))
}

func (p *Patch) String() string { return p.Name }

type Extremity uint8

const (
	FRONT Extremity = iota
	BACK
)

func (e Extremity) Opposite() Extremity {
	if e == FRONT {
		return BACK
	}
	return FRONT
}

func (e Extremity) String() string {
	if e == FRONT {
		return "FRONT"
	}
	return "BACK"
}

// Edge is one of the four sides of a patch: the side where the
// perpendicular Grid takes its FRONT or BACK value.
type Edge struct {
	Patch     *Patch
	Grid      *grid.Grid1D
	Extremity Extremity
}

// OutsideEdge stands for the exterior of the whole domain
var OutsideEdge = Edge{}

func NewEdge(p *Patch, perpendicular *grid.Grid1D, ext Extremity) Edge {
	return Edge{Patch: p, Grid: perpendicular, Extremity: ext}
}

func (e Edge) IsOutside() bool { return e.Patch == nil }

// ParallelGrid samples the edge itself
func (e Edge) ParallelGrid() *grid.Grid1D { return e.Patch.OtherGrid(e.Grid) }

func (e Edge) String() string {
	if e.IsOutside() {
		return "OutsideEdge"
	}
	return fmt.Sprintf("Edge{%s, %s, %s}", e.Patch.Name, e.Grid.Name, e.Extremity)
}

// Interface glues two edges. OrientationsAgree is false when the edges'
// parallel grids run in opposite directions along the shared curve.
type Interface struct {
	Edge1, Edge2      Edge
	OrientationsAgree bool
}

func NewInterface(e1, e2 Edge, orientationsAgree bool) (iface *Interface, err error) {
	if e1.IsOutside() && e2.IsOutside() {
		err = fmt.Errorf("%w: an interface cannot join two outside edges", ErrInvalidArgument)
		return
	}
	for _, e := range []Edge{e1, e2} {
		if !e.IsOutside() && !e.Patch.HasGrid(e.Grid) {
			err = fmt.Errorf("%w: grid %s of %v is not on patch %s",
				ErrInvalidArgument, e.Grid.Name, e, e.Patch.Name)
			return
		}
	}
	if e1 == e2 {
		err = fmt.Errorf("%w: an interface cannot join %v to itself", ErrInvalidArgument, e1)
		return
	}
	iface = &Interface{
		Edge1:             e1,
		Edge2:             e2,
		OrientationsAgree: orientationsAgree,
	}
	return
}

func (iface *Interface) Contains(e Edge) bool { return e == iface.Edge1 || e == iface.Edge2 }

// OtherEdge is the edge glued to e, which may be OutsideEdge
func (iface *Interface) OtherEdge(e Edge) (other Edge, ok bool) {
	switch e {
	case iface.Edge1:
		return iface.Edge2, true
	case iface.Edge2:
		return iface.Edge1, true
	}
	return
}

// Touches is true when one side of the interface is on p
func (iface *Interface) Touches(p *Patch) bool {
	return p != nil && (iface.Edge1.Patch == p || iface.Edge2.Patch == p)
}

func (iface *Interface) String() string {
	return fmt.Sprintf("Interface{%v, %v, agree %v}", iface.Edge1, iface.Edge2, iface.OrientationsAgree)
}
