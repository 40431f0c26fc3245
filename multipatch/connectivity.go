package multipatch

import (
	"fmt"

	"github.com/notargets/gobsl/grid"
	"github.com/notargets/gobsl/types"
)

// Connectivity is the registry of the interfaces of one geometry. Every
// edge of every patch appears in exactly one interface.
type Connectivity struct {
	Patches    []*Patch
	Interfaces []*Interface
	byEdge     map[Edge]*Interface
}

func NewConnectivity(patches []*Patch, interfaces []*Interface) (c *Connectivity, err error) {
	var (
		known      = make(map[*Patch]bool, len(patches))
		innerEdges int
	)
	c = &Connectivity{
		Patches:    patches,
		Interfaces: interfaces,
		byEdge:     make(map[Edge]*Interface),
	}
	for _, p := range patches {
		known[p] = true
	}
	for _, iface := range interfaces {
		for _, e := range []Edge{iface.Edge1, iface.Edge2} {
			if e.IsOutside() {
				continue
			}
			if !known[e.Patch] {
				err = fmt.Errorf("%w: %v is on unregistered patch %s", ErrInvalidArgument, e, e.Patch.Name)
				return nil, err
			}
			if prev, present := c.byEdge[e]; present {
				err = fmt.Errorf("%w: %v is in both %v and %v", ErrInvalidArgument, e, prev, iface)
				return nil, err
			}
			c.byEdge[e] = iface
			innerEdges++
		}
	}
	if innerEdges != 4*len(patches) {
		err = fmt.Errorf("%w: %d patches need %d edges, the interfaces hold %d",
			ErrInvalidArgument, len(patches), 4*len(patches), innerEdges)
		return nil, err
	}
	return
}

// PatchConnections are the interfaces touching p, in registration order
func (c *Connectivity) PatchConnections(p *Patch) (conn []*Interface) {
	for _, iface := range c.Interfaces {
		if iface.Touches(p) {
			conn = append(conn, iface)
		}
	}
	return
}

func (c *Connectivity) FindInterface(e Edge) (iface *Interface, ok bool) {
	iface, ok = c.byEdge[e]
	return
}

// neighbour steps across the interface of e
func (c *Connectivity) neighbour(e Edge) (next Edge, ok bool) {
	var (
		iface *Interface
	)
	if iface, ok = c.byEdge[e]; !ok {
		return
	}
	if next, ok = iface.OtherEdge(e); !ok || next.IsOutside() {
		return next, false
	}
	return
}

// CollectGridsOnDim returns the grids met along the logical line through g
// on start, in order from the FRONT end to the BACK end. The walk stops at
// the outside of the domain or when a grid repeats.
func (c *Connectivity) CollectGridsOnDim(start *Patch, g *grid.Grid1D) (grids []*grid.Grid1D) {
	if !start.HasGrid(g) {
		panic(fmt.Errorf("grid %s is not on patch %s", g.Name, start.Name))
	}
	var (
		seen = map[*grid.Grid1D]bool{g: true}
		walk = func(from Extremity, add func(*grid.Grid1D)) {
			e := NewEdge(start, g, from)
			for {
				next, ok := c.neighbour(e)
				if !ok || seen[next.Grid] {
					return
				}
				seen[next.Grid] = true
				add(next.Grid)
				e = NewEdge(next.Patch, next.Grid, next.Extremity.Opposite())
			}
		}
	)
	grids = []*grid.Grid1D{g}
	walk(FRONT, func(h *grid.Grid1D) { grids = append([]*grid.Grid1D{h}, grids...) })
	walk(BACK, func(h *grid.Grid1D) { grids = append(grids, h) })
	return
}

// IdxRangesAlongDirection projects per-grid index ranges onto the grids
// collected along the line through g.
func (c *Connectivity) IdxRangesAlongDirection(start *Patch, g *grid.Grid1D,
	allIdxRanges map[*grid.Grid1D]types.IdxRange1D) (ranges []types.IdxRange1D, err error) {
	for _, h := range c.CollectGridsOnDim(start, g) {
		r, present := allIdxRanges[h]
		if !present {
			err = fmt.Errorf("%w: no index range for grid %s", ErrInvalidArgument, h.Name)
			return nil, err
		}
		ranges = append(ranges, r)
	}
	return
}
