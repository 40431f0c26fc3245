package multipatch

import (
	"fmt"
	"math"

	"github.com/notargets/gobsl/mapping"
	"github.com/notargets/gobsl/types"
	"github.com/notargets/gobsl/utils"
)

const (
	OutsideRminDomain = -1
	OutsideRmaxDomain = -2
)

// OnionPatchLocator finds the patch holding a physical point when the
// patches are nested annuli sharing the logical dimensions (r, theta),
// listed from the innermost. It is read only after construction.
type OnionPatchLocator struct {
	Patches []*Patch
	Mapping mapping.Mapping
	radii   []float64
}

func NewOnionPatchLocator(patches []*Patch, m mapping.Mapping) (l *OnionPatchLocator, err error) {
	n := len(patches)
	if n == 0 {
		err = fmt.Errorf("%w: an onion needs at least one patch", ErrInvalidArgument)
		return
	}
	l = &OnionPatchLocator{
		Patches: patches,
		Mapping: m,
		radii:   make([]float64, n+1),
	}
	dims := patches[0].Dims()
	for i, p := range patches {
		if p.Dims() != dims {
			err = fmt.Errorf("%w: patch %s is on %v, patch %s on %v",
				ErrInvalidArgument, p.Name, p.Dims(), patches[0].Name, dims)
			return nil, err
		}
		if p.Grid1.Periodic() || !p.Grid2.Periodic() {
			err = fmt.Errorf("%w: patch %s needs a radial first grid and a periodic second grid",
				ErrInvalidArgument, p.Name)
			return nil, err
		}
		if i > 0 && math.Abs(p.Grid1.Min()-patches[i-1].Grid1.Max()) > utils.MATCHTOL {
			err = fmt.Errorf("%w: the patches must be ordered, rmin of %s = %g, rmax of %s = %g",
				ErrInvalidArgument, p.Name, p.Grid1.Min(), patches[i-1].Name, patches[i-1].Grid1.Max())
			return nil, err
		}
		l.radii[i] = p.Grid1.Min()
	}
	l.radii[n] = patches[n-1].Grid1.Max()
	return
}

func (l *OnionPatchLocator) Radii() []float64 { return append([]float64{}, l.radii...) }

func (l *OnionPatchLocator) NPatches() int { return len(l.Patches) }

func (l *OnionPatchLocator) ToPhysical(c types.Coord2D) types.Coord2D { return l.Mapping.ToPhysical(c) }

func (l *OnionPatchLocator) ToLogical(xy types.Coord2D) types.Coord2D { return l.Mapping.ToLogical(xy) }

// Locate returns the index of the patch holding xy, or one of
// OutsideRminDomain and OutsideRmaxDomain.
func (l *OnionPatchLocator) Locate(xy types.Coord2D) int {
	return l.LocateRadius(l.Mapping.ToLogical(xy)[0])
}

// LocateRadius brackets r with radii[i] <= r < radii[i+1]; r on the outer
// boundary belongs to the last patch.
func (l *OnionPatchLocator) LocateRadius(r float64) int {
	var (
		n      = len(l.Patches)
		lo, hi = 0, n - 1
	)
	switch {
	case r < l.radii[0]:
		return OutsideRminDomain
	case r > l.radii[n]:
		return OutsideRmaxDomain
	case r == l.radii[n]:
		return n - 1
	}
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case l.radii[mid] <= r && r < l.radii[mid+1]:
			return mid
		case r < l.radii[mid]:
			hi = mid - 1
		default:
			lo = mid + 1
		}
	}
	panic(fmt.Errorf("radius %g not bracketed by radii %v", r, l.radii))
}
