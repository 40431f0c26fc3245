package multipatch

import (
	"fmt"
	"sort"

	"github.com/notargets/gobsl/grid"
	"github.com/notargets/gobsl/types"
	"github.com/notargets/gobsl/utils"
)

// MatchingIdxSlice holds, for each side of an interface, the strided slice
// of edge indices that coincide with an index on the other side.
type MatchingIdxSlice struct {
	Interface *Interface
	slices    [2]types.IdxRangeSlice
	grids     [2]*grid.Grid1D
}

// NewMatchingIdxSlice takes the index ranges along the parallel grids of
// Edge1 and Edge2.
func NewMatchingIdxSlice(iface *Interface, range1, range2 types.IdxRange1D) (mis *MatchingIdxSlice, err error) {
	var (
		et *EdgeTransformation
	)
	if et, err = NewEdgeTransformation(iface, range1, range2); err != nil {
		return
	}
	mis = &MatchingIdxSlice{
		Interface: iface,
		grids:     et.Grids(),
	}
	if mis.grids[0].Uniform() && mis.grids[1].Uniform() {
		var (
			n1, n2 = et.nCells(0), et.nCells(1)
			gcd    = utils.GCD(n1, n2)
		)
		for k, stride := range [2]int{n1 / gcd, n2 / gcd} {
			var (
				r     = et.ranges[k]
				front = r.Front + utils.Mod(et.origin(k)-r.Front, stride)
			)
			mis.slices[k] = types.NewIdxRangeSlice1D(front, (r.Back()-front)/stride+1, stride)
		}
		return
	}
	var (
		conforming [2][]int
	)
	for _, idx1 := range range1.Indices() {
		if idx2, ok := et.SearchForMatch(mis.grids[0], idx1); ok {
			conforming[0] = append(conforming[0], idx1)
			conforming[1] = append(conforming[1], idx2)
		}
	}
	for k := range conforming {
		var stride int
		// Reversed orientations and periodic wrapping leave side 2 out of order
		sort.Ints(conforming[k])
		if stride, err = uniformStep(conforming[k]); err != nil {
			return nil, fmt.Errorf("%w across %v", err, iface)
		}
		mis.slices[k] = types.NewIdxRangeSlice1D(conforming[k][0], len(conforming[k]), stride)
	}
	return
}

// NewMatchingIdxSliceFromPatches selects the edge ranges out of the 2D
// index ranges of the two patches.
func NewMatchingIdxSliceFromPatches(iface *Interface, r1, r2 types.IdxRange2D) (mis *MatchingIdxSlice, err error) {
	if iface.Edge1.IsOutside() || iface.Edge2.IsOutside() {
		err = fmt.Errorf("%w: no matching indices across %v", ErrInvalidArgument, iface)
		return
	}
	var (
		e1, e2 = iface.Edge1, iface.Edge2
	)
	return NewMatchingIdxSlice(iface,
		e1.Patch.Select(r1, e1.ParallelGrid()),
		e2.Patch.Select(r2, e2.ParallelGrid()))
}

func uniformStep(conforming []int) (step int, err error) {
	if len(conforming) < 2 {
		err = fmt.Errorf("%w: found %d conforming indices, need at least two",
			ErrInvalidArgument, len(conforming))
		return
	}
	step = conforming[1] - conforming[0]
	for i := 2; i < len(conforming); i++ {
		if conforming[i]-conforming[i-1] != step {
			err = fmt.Errorf("%w: the steps between conforming indexes must be uniform, have %v",
				ErrInvalidArgument, conforming)
			return
		}
	}
	return
}

// Get returns the slice along the parallel grid g
func (mis *MatchingIdxSlice) Get(g *grid.Grid1D) types.IdxRangeSlice {
	switch g {
	case mis.grids[0]:
		return mis.slices[0]
	case mis.grids[1]:
		return mis.slices[1]
	}
	panic(fmt.Errorf("grid %s is not along an edge of %v", g.Name, mis.Interface))
}

// GetFromPerp returns the slice on the edge perpendicular to g
func (mis *MatchingIdxSlice) GetFromPerp(g *grid.Grid1D) types.IdxRangeSlice {
	switch g {
	case mis.Interface.Edge1.Grid:
		return mis.slices[0]
	case mis.Interface.Edge2.Grid:
		return mis.slices[1]
	}
	panic(fmt.Errorf("grid %s is not perpendicular to an edge of %v", g.Name, mis.Interface))
}
