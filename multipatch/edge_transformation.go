package multipatch

import (
	"fmt"
	"math"

	"github.com/notargets/gobsl/grid"
	"github.com/notargets/gobsl/types"
	"github.com/notargets/gobsl/utils"
)

// EdgeTransformation maps coordinates and indices between the two edges of
// an interface, in either direction. The direction is selected by the grid
// the input lives on.
type EdgeTransformation struct {
	Interface *Interface
	grids     [2]*grid.Grid1D
	ranges    [2]types.IdxRange1D
}

// NewEdgeTransformation takes the index ranges along the parallel grids of
// Edge1 and Edge2 of the interface.
func NewEdgeTransformation(iface *Interface, range1, range2 types.IdxRange1D) (et *EdgeTransformation, err error) {
	if iface.Edge1.IsOutside() || iface.Edge2.IsOutside() {
		err = fmt.Errorf("%w: no transformation across %v", ErrInvalidArgument, iface)
		return
	}
	et = &EdgeTransformation{
		Interface: iface,
		grids:     [2]*grid.Grid1D{iface.Edge1.ParallelGrid(), iface.Edge2.ParallelGrid()},
		ranges:    [2]types.IdxRange1D{range1, range2},
	}
	for k, g := range et.grids {
		r := et.ranges[k]
		if r.Size < 2 && !g.Periodic() {
			err = fmt.Errorf("%w: range %v on grid %s holds less than one cell", ErrInvalidArgument, r, g.Name)
			return nil, err
		}
		if !g.Periodic() && (r.Front < 0 || r.Back() >= g.Size()) {
			err = fmt.Errorf("%w: range %v exceeds grid %s", ErrInvalidArgument, r, g.Name)
			return nil, err
		}
	}
	return
}

// Grids are the parallel grids of Edge1 and Edge2
func (et *EdgeTransformation) Grids() [2]*grid.Grid1D { return et.grids }

func (et *EdgeTransformation) side(from *grid.Grid1D) (cur, tgt int) {
	switch from {
	case et.grids[0]:
		return 0, 1
	case et.grids[1]:
		return 1, 0
	}
	panic(fmt.Errorf("grid %s is not along an edge of %v", from.Name, et.Interface))
}

// origin is the index the edge is anchored at: the front of the range, or
// the first point of the period on a periodic grid.
func (et *EdgeTransformation) origin(k int) int {
	if et.grids[k].Periodic() {
		return 0
	}
	return et.ranges[k].Front
}

// extent is the start and length of the edge in grid coordinates; the
// length of a periodic edge is the period.
func (et *EdgeTransformation) extent(k int) (min, length float64) {
	g := et.grids[k]
	min = g.Coordinate(et.origin(k))
	if g.Periodic() {
		length = g.Length()
	} else {
		length = g.Coordinate(et.ranges[k].Back()) - min
	}
	return
}

// wrap brings a periodic index back into the range
func (et *EdgeTransformation) wrap(k, idx int) int {
	if !et.grids[k].Periodic() {
		return idx
	}
	r := et.ranges[k]
	return r.Front + utils.Mod(idx-r.Front, et.nCells(k))
}

func (et *EdgeTransformation) nCells(k int) int {
	if et.grids[k].Periodic() {
		return et.ranges[k].Size
	}
	return et.ranges[k].Size - 1
}

func (et *EdgeTransformation) periodic() bool {
	return et.grids[0].Periodic() || et.grids[1].Periodic()
}

// Coord maps a coordinate along grid from onto the other edge
func (et *EdgeTransformation) Coord(from *grid.Grid1D, c float64) float64 {
	cur, tgt := et.side(from)
	return et.coord(cur, tgt, c)
}

func (et *EdgeTransformation) coord(cur, tgt int, c float64) float64 {
	var (
		cmin, clen = et.extent(cur)
		tmin, tlen = et.extent(tgt)
		s          = (c - cmin) / clen
	)
	if !et.Interface.OrientationsAgree {
		s = 1 - s
	}
	if et.periodic() {
		s -= math.Floor(s)
	}
	return tmin + s*tlen
}

// SearchForMatch looks for the index on the other edge at exactly the same
// position as idx. Without a match, target is the nearest guess.
func (et *EdgeTransformation) SearchForMatch(from *grid.Grid1D, idx int) (target int, ok bool) {
	cur, tgt := et.side(from)
	if et.grids[cur].Uniform() && et.grids[tgt].Uniform() {
		return et.uniformMatch(cur, tgt, idx)
	}
	return et.bisectionMatch(cur, tgt, idx)
}

func (et *EdgeTransformation) uniformMatch(cur, tgt, idx int) (target int, ok bool) {
	var (
		nCur, nTgt = et.nCells(cur), et.nCells(tgt)
		gcd        = utils.GCD(nCur, nTgt)
		step       = nCur / gcd
		offset     = idx - et.origin(cur)
	)
	if et.grids[cur].Periodic() {
		offset = utils.Mod(offset, nCur)
	}
	ok = utils.Mod(offset, step) == 0
	t := utils.FloorDiv(offset, step) * (nTgt / gcd)
	if !et.Interface.OrientationsAgree {
		t = nTgt - t
	}
	target = et.wrap(tgt, et.origin(tgt)+t)
	return
}

// bisectionMatch assumes the target grid coordinates increase with the index
func (et *EdgeTransformation) bisectionMatch(cur, tgt, idx int) (target int, ok bool) {
	var (
		g      = et.grids[tgt]
		t      = et.coord(cur, tgt, et.grids[cur].Coordinate(idx))
		lo, hi = et.origin(tgt), et.origin(tgt) + et.nCells(tgt)
	)
	for hi-lo > 1 {
		mid := (lo + hi) / 2
		if g.Coordinate(mid) <= t {
			lo = mid
		} else {
			hi = mid
		}
	}
	target = lo
	if math.Abs(g.Coordinate(hi)-t) < math.Abs(g.Coordinate(lo)-t) {
		target = hi
	}
	ok = math.Abs(g.Coordinate(target)-t) < utils.MATCHTOL
	target = et.wrap(tgt, target)
	return
}

func (et *EdgeTransformation) IsMatchAvailable(from *grid.Grid1D, idx int) bool {
	_, ok := et.SearchForMatch(from, idx)
	return ok
}

// Transform is for indices known to be conforming; it panics otherwise
func (et *EdgeTransformation) Transform(from *grid.Grid1D, idx int) int {
	target, ok := et.SearchForMatch(from, idx)
	if !ok {
		panic(fmt.Errorf("index %d on grid %s has no match across %v", idx, from.Name, et.Interface))
	}
	return target
}
