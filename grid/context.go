package grid

import (
	"fmt"
	"sort"

	"github.com/notargets/gobsl/bsplines"
)

// Context holds the grid and B-spline metadata of one problem. It is filled
// during setup, then frozen and only read.
type Context struct {
	grids    map[string]*Grid1D
	bsplines map[string]*bsplines.BSplines
	frozen   bool
}

func NewContext() *Context {
	return &Context{
		grids:    make(map[string]*Grid1D),
		bsplines: make(map[string]*bsplines.BSplines),
	}
}

func (c *Context) AddGrid(g *Grid1D) error {
	if c.frozen {
		return fmt.Errorf("context is frozen, cannot add grid %s", g.Name)
	}
	if _, present := c.grids[g.Name]; present {
		return fmt.Errorf("grid %s already registered", g.Name)
	}
	c.grids[g.Name] = g
	return nil
}

func (c *Context) AddBSplines(name string, b *bsplines.BSplines) error {
	if c.frozen {
		return fmt.Errorf("context is frozen, cannot add B-splines %s", name)
	}
	if _, present := c.bsplines[name]; present {
		return fmt.Errorf("B-splines %s already registered", name)
	}
	c.bsplines[name] = b
	return nil
}

// AddSplineGrid registers a basis and the grid of its interpolation points
// under the same name.
func (c *Context) AddSplineGrid(name, dim string, b *bsplines.BSplines) (g *Grid1D, err error) {
	if g, err = NewGridFromBSplines(name, dim, b); err != nil {
		return
	}
	if err = c.AddBSplines(name, b); err != nil {
		return
	}
	err = c.AddGrid(g)
	return
}

func (c *Context) Freeze() { c.frozen = true }

func (c *Context) Frozen() bool { return c.frozen }

func (c *Context) Grid(name string) (g *Grid1D, err error) {
	var present bool
	if g, present = c.grids[name]; !present {
		err = fmt.Errorf("no grid named %s, have %v", name, c.GridNames())
	}
	return
}

func (c *Context) BSplines(name string) (b *bsplines.BSplines, err error) {
	var present bool
	if b, present = c.bsplines[name]; !present {
		err = fmt.Errorf("no B-splines named %s", name)
	}
	return
}

func (c *Context) GridNames() (names []string) {
	for name := range c.grids {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}
